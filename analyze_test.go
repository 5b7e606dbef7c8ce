package tradepnl

import (
	"errors"
	"testing"
)

func TestAnalyze_DispatchesByColumnSignature(t *testing.T) {
	spot := spotTable("balances.csv",
		[]string{"2024-01-01 10:00:00", "BTC", "trade", "10"},
		[]string{"2024-01-01 10:00:00", "USDT", "trade", "-20"},
		[]string{"2024-01-02 10:00:00", "BTC", "trade", "-10"},
		[]string{"2024-01-02 10:00:00", "USDT", "trade", "30"},
	)
	a, err := Analyze([]*Table{spot}, Options{})
	if err != nil {
		t.Fatalf("Analyze spot: %v", err)
	}
	if a.Instrument != InstrumentSpot {
		t.Errorf("instrument = %v, want spot", a.Instrument)
	}

	contract := contractTable("positions.csv",
		[]string{"2024-03-01 08:00:00", "BTCUSDT", "TRADE", "OPEN", "1", "65000", "0", "0", "0"},
		[]string{"2024-03-01 10:00:00", "BTCUSDT", "TRADE", "CLOSE", "1", "65010", "0", "10", "0"},
	)
	a, err = Analyze([]*Table{contract}, Options{})
	if err != nil {
		t.Fatalf("Analyze contract: %v", err)
	}
	if a.Instrument != InstrumentContract {
		t.Errorf("instrument = %v, want contract", a.Instrument)
	}
	if got := a.KPI[KPITotalPnL]; !got.Equal(A(10)) {
		t.Errorf("totalPnl = %s, want 10", got)
	}
}

func TestAnalyze_PropagatesInputErrors(t *testing.T) {
	_, err := Analyze([]*Table{NewTable("x.csv", []string{"Foo"}, []string{"bar"})}, Options{})
	if !errors.Is(err, ErrNoValidData) {
		t.Errorf("Analyze = %v, want ErrNoValidData", err)
	}
	if !IsInputError(err) {
		t.Error("ErrNoValidData must classify as an input error")
	}
	if IsInputError(ErrNoClassifiableTrades) {
		t.Error("ErrNoClassifiableTrades must not classify as an input error")
	}
}
