package tradepnl

import (
	"errors"
	"testing"
	"time"
)

func at(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		panic(err)
	}
	return t
}

func spotTrade(when, coin string, quantity float64) Record {
	return Record{Time: at(when), Symbol: coin, Kind: KindTrade, Quantity: A(quantity)}
}

func spotFee(when, coin string, quantity float64) Record {
	return Record{Time: at(when), Symbol: coin, Kind: KindFee, Quantity: A(quantity)}
}

func TestAnalyzeSpot_RoundTrip(t *testing.T) {
	// Buy 10 BTC for 20 USDT, sell them the next day for 30 USDT.
	records := []Record{
		spotTrade("2024-01-01 10:00:00", "BTC", 10),
		spotTrade("2024-01-01 10:00:00", "USDT", -20),
		spotTrade("2024-01-02 10:00:00", "BTC", -10),
		spotTrade("2024-01-02 10:00:00", "USDT", 30),
		spotFee("2024-01-02 10:00:00", "USDT", -0.5),
	}
	a, err := analyzeSpot(records)
	if err != nil {
		t.Fatalf("analyzeSpot: %v", err)
	}

	if len(a.Trades) != 1 {
		t.Fatalf("len(Trades) = %d, want 1", len(a.Trades))
	}
	row := a.Trades[0]
	if row.ID != "S-1" || row.Contract != "BTC" {
		t.Errorf("row = %s %s, want S-1 BTC", row.ID, row.Contract)
	}
	if !row.PnL.Equal(A(10)) {
		t.Errorf("PnL = %s, want 10 ((3-2)*10)", row.PnL)
	}
	if !row.BuyPrice.Equal(A(2)) || !row.SellPrice.Equal(A(3)) {
		t.Errorf("prices = %s/%s, want 2/3", row.BuyPrice, row.SellPrice)
	}

	if got := a.KPI[KPITotalPnL]; !got.Equal(A(9.5)) {
		t.Errorf("totalPnl = %s, want 9.5 (10 - 0.5 fees)", got)
	}
	if got := a.KPI[KPITotalFees]; !got.Equal(A(0.5)) {
		t.Errorf("totalFees = %s, want 0.5", got)
	}
	if got := a.KPI[KPITradeCount]; !got.Equal(A(1)) {
		t.Errorf("tradeCount = %s, want 1", got)
	}

	// The chart starts with a zero anchored at the first fill's open time.
	if len(a.PnLChart.Labels) != 2 {
		t.Fatalf("chart length = %d, want 2", len(a.PnLChart.Labels))
	}
	if a.PnLChart.Labels[0] != "2024-01-01 10:00" || !a.PnLChart.Data[0].IsZero() {
		t.Errorf("chart[0] = %s %s, want 2024-01-01 10:00 0", a.PnLChart.Labels[0], a.PnLChart.Data[0])
	}
	if !a.PnLChart.Data[1].Equal(A(10)) {
		t.Errorf("chart[1] = %s, want 10", a.PnLChart.Data[1])
	}
}

func TestAnalyzeSpot_FIFO(t *testing.T) {
	// Two buys at different prices, one sell consuming the older lot first.
	records := []Record{
		spotTrade("2024-01-01 10:00:00", "BTC", 5),
		spotTrade("2024-01-01 10:00:00", "USDT", -10), // 5 @ 2
		spotTrade("2024-01-02 10:00:00", "BTC", 5),
		spotTrade("2024-01-02 10:00:00", "USDT", -20), // 5 @ 4
		spotTrade("2024-01-03 10:00:00", "BTC", -8),
		spotTrade("2024-01-03 10:00:00", "USDT", 24), // 8 @ 3
	}
	a, err := analyzeSpot(records)
	if err != nil {
		t.Fatalf("analyzeSpot: %v", err)
	}
	if len(a.Trades) != 2 {
		t.Fatalf("len(Trades) = %d, want 2 (one per consumed lot)", len(a.Trades))
	}
	first, second := a.Trades[0], a.Trades[1]
	if !first.Quantity.Equal(A(5)) || !first.PnL.Equal(A(5)) {
		t.Errorf("first fill = qty %s pnl %s, want 5 and 5 (oldest lot @2)", first.Quantity, first.PnL)
	}
	if !second.Quantity.Equal(A(3)) || !second.PnL.Equal(A(-3)) {
		t.Errorf("second fill = qty %s pnl %s, want 3 and -3 (lot @4)", second.Quantity, second.PnL)
	}
}

func TestAnalyzeSpot_UnpricedLegSkipped(t *testing.T) {
	records := []Record{
		spotTrade("2024-01-01 10:00:00", "BTC", 10),
		spotTrade("2024-01-01 10:00:00", "USDT", -20),
		// No USDT row shares this timestamp: the leg cannot be priced.
		spotTrade("2024-01-01 15:00:00", "BTC", 5),
		spotTrade("2024-01-02 10:00:00", "BTC", -10),
		spotTrade("2024-01-02 10:00:00", "USDT", 30),
	}
	a, err := analyzeSpot(records)
	if err != nil {
		t.Fatalf("analyzeSpot: %v", err)
	}
	if a.Diagnostics.UnpricedLegs != 1 {
		t.Errorf("UnpricedLegs = %d, want 1", a.Diagnostics.UnpricedLegs)
	}
	if len(a.Trades) != 1 || !a.Trades[0].PnL.Equal(A(10)) {
		t.Errorf("Trades = %v, want the single priced round trip", a.Trades)
	}
}

func TestAnalyzeSpot_OversoldQuantityDropped(t *testing.T) {
	records := []Record{
		spotTrade("2024-01-01 10:00:00", "BTC", 5),
		spotTrade("2024-01-01 10:00:00", "USDT", -10),
		spotTrade("2024-01-02 10:00:00", "BTC", -8), // 3 more than held
		spotTrade("2024-01-02 10:00:00", "USDT", 24),
	}
	a, err := analyzeSpot(records)
	if err != nil {
		t.Fatalf("analyzeSpot: %v", err)
	}
	if len(a.Trades) != 1 || !a.Trades[0].Quantity.Equal(A(5)) {
		t.Fatalf("Trades = %v, want one fill of 5", a.Trades)
	}
	if got := a.Diagnostics.UnmatchedQuantity["BTC"]; !got.Equal(A(3)) {
		t.Errorf("unmatched BTC = %s, want 3", got)
	}
}

func TestAnalyzeSpot_SubEpsilonResidueExhaustsLot(t *testing.T) {
	// The first sell leaves 5e-10 on its lot, below the exhaustion
	// threshold: the next sell must consume the second lot, not the
	// residue.
	records := []Record{
		spotTrade("2024-01-01 10:00:00", "BTC", 1),
		spotTrade("2024-01-01 10:00:00", "USDT", -2), // 1 @ 2
		spotTrade("2024-01-02 10:00:00", "BTC", 1),
		spotTrade("2024-01-02 10:00:00", "USDT", -4), // 1 @ 4
		spotTrade("2024-01-03 10:00:00", "BTC", -0.9999999995),
		spotTrade("2024-01-03 10:00:00", "USDT", 2.9999999985), // @ 3
		spotTrade("2024-01-04 10:00:00", "BTC", -1),
		spotTrade("2024-01-04 10:00:00", "USDT", 5), // @ 5
	}
	a, err := analyzeSpot(records)
	if err != nil {
		t.Fatalf("analyzeSpot: %v", err)
	}
	if len(a.Trades) != 2 {
		t.Fatalf("len(Trades) = %d, want 2 (residue lot never matched)", len(a.Trades))
	}
	second := a.Trades[1]
	if !second.Quantity.Equal(A(1)) || !second.PnL.Equal(A(1)) {
		t.Errorf("second fill = qty %s pnl %s, want 1 and 1 (second lot @4)", second.Quantity, second.PnL)
	}
	if !second.BuyPrice.Equal(A(4)) {
		t.Errorf("second buy price = %s, want 4, not the residue lot's 2", second.BuyPrice)
	}
}

func TestAnalyzeSpot_NoRealizedPnL(t *testing.T) {
	records := []Record{
		spotTrade("2024-01-01 10:00:00", "BTC", 10),
		spotTrade("2024-01-01 10:00:00", "USDT", -20),
	}
	_, err := analyzeSpot(records)
	if !errors.Is(err, ErrNoRealizedPnL) {
		t.Errorf("analyzeSpot buys-only = %v, want ErrNoRealizedPnL", err)
	}
}
