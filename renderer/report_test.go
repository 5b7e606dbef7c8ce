package renderer

import (
	"strings"
	"testing"

	"tradepnl"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name string
		a    tradepnl.Amount
		want string
	}{
		{"whole", tradepnl.A(10), "10.0000 USDT"},
		{"thousands", tradepnl.A(1234567.89), "1,234,567.8900 USDT"},
		{"negative", tradepnl.A(-2.5), "-2.5000 USDT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatMoney(tt.a); got != tt.want {
				t.Errorf("FormatMoney(%s) = %q, want %q", tt.a, got, tt.want)
			}
		})
	}
}

func TestSignedMoney(t *testing.T) {
	if got := SignedMoney(tradepnl.A(3)); got != "+3.0000 USDT" {
		t.Errorf("SignedMoney(3) = %q, want +3.0000 USDT", got)
	}
	if got := SignedMoney(tradepnl.A(0)); got != "-" {
		t.Errorf("SignedMoney(0) = %q, want -", got)
	}
}

func TestMarkdown_Contract(t *testing.T) {
	funding := tradepnl.A(-4)
	fees := tradepnl.A(-1)
	cum := tradepnl.A(6)
	a := &tradepnl.Analysis{
		Instrument: tradepnl.InstrumentContract,
		KPI: map[string]tradepnl.Amount{
			tradepnl.KPITotalPnL:      tradepnl.A(6),
			tradepnl.KPITradeCount:    tradepnl.A(1),
			tradepnl.KPIDayTradePnL:   tradepnl.A(6),
			tradepnl.KPISwingTradePnL: tradepnl.A(0),
		},
		Trades: []tradepnl.TradeRow{{
			ID:             "T-1",
			Contract:       "ETHUSDT",
			Type:           "Day Trade",
			PnL:            tradepnl.A(6),
			Quantity:       tradepnl.A(1),
			OpenTime:       "2024-03-01 00:00:00",
			CloseTime:      "2024-03-01 08:00:00",
			HoldingPeriod:  "0d 08:00:00",
			FundingFee:     &funding,
			TradeFees:      &fees,
			CumulativePnL:  &cum,
			CumulativeFees: &fees,
		}},
	}

	md := Markdown(a)
	for _, want := range []string{
		"# Contract PnL Report",
		"| Total PnL | +6.0000 USDT |",
		"| T-1 | ETHUSDT | Day Trade |",
		"0d 08:00:00",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report is missing %q:\n%s", want, md)
		}
	}
}

func TestMarkdown_DiagnosticsSorted(t *testing.T) {
	a := &tradepnl.Analysis{
		Instrument: tradepnl.InstrumentContract,
		KPI: map[string]tradepnl.Amount{
			tradepnl.KPITotalPnL:   tradepnl.A(0),
			tradepnl.KPITradeCount: tradepnl.A(0),
		},
		Diagnostics: &tradepnl.Diagnostics{
			UnmatchedQuantity: map[string]tradepnl.Amount{
				"XRPUSDT": tradepnl.A(1),
				"BTCUSDT": tradepnl.A(2),
				"ETHUSDT": tradepnl.A(3),
			},
		},
	}
	md := Markdown(a)
	btc := strings.Index(md, "BTCUSDT")
	eth := strings.Index(md, "ETHUSDT")
	xrp := strings.Index(md, "XRPUSDT")
	if btc < 0 || eth < 0 || xrp < 0 {
		t.Fatalf("diagnostics lines missing:\n%s", md)
	}
	if !(btc < eth && eth < xrp) {
		t.Errorf("diagnostics not sorted by symbol:\n%s", md)
	}
}

func TestMarkdown_SpotDiagnostics(t *testing.T) {
	buy := tradepnl.A(2)
	sell := tradepnl.A(3)
	a := &tradepnl.Analysis{
		Instrument: tradepnl.InstrumentSpot,
		KPI: map[string]tradepnl.Amount{
			tradepnl.KPITotalPnL:   tradepnl.A(9.5),
			tradepnl.KPITradeCount: tradepnl.A(1),
			tradepnl.KPITotalFees:  tradepnl.A(0.5),
		},
		Trades: []tradepnl.TradeRow{{
			ID:        "S-1",
			Contract:  "BTC",
			PnL:       tradepnl.A(10),
			Quantity:  tradepnl.A(10),
			OpenTime:  "2024-01-01 10:00:00",
			CloseTime: "2024-01-02 10:00:00",
			BuyPrice:  &buy,
			SellPrice: &sell,
		}},
		Diagnostics: &tradepnl.Diagnostics{UnpricedLegs: 2},
	}

	md := Markdown(a)
	for _, want := range []string{
		"# Spot Realized PnL Report",
		"| Total Fees | 0.5000 USDT |",
		"| S-1 | BTC |",
		"legs skipped without a quote leg: 2",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report is missing %q:\n%s", want, md)
		}
	}
}
