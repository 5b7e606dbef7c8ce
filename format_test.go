package tradepnl

import "testing"

func TestFormatHoldingPeriod(t *testing.T) {
	tests := []struct {
		name    string
		seconds Amount
		want    string
	}{
		{"zero", A(0), "0d 00:00:00"},
		{"under a minute", A(42), "0d 00:00:42"},
		{"hours and minutes", A(2*3600 + 5*60 + 9), "0d 02:05:09"},
		{"more than a day", A(3*86400 + 3661), "3d 01:01:01"},
		{"fractional seconds truncate", A(61.9), "0d 00:01:01"},
		{"negative clamps to zero", A(-5), "0d 00:00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatHoldingPeriod(tt.seconds); got != tt.want {
				t.Errorf("formatHoldingPeriod(%s) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}
