package tradepnl

import (
	"sort"
	"time"
)

// TradeType classifies a closed position by holding duration.
type TradeType int

const (
	DayTrade TradeType = iota
	SwingTrade
)

func (t TradeType) String() string {
	switch t {
	case SwingTrade:
		return "SWING"
	default:
		return "DAY_TRADE"
	}
}

// AggregatedTrade merges every fill sharing one close event into the
// externally visible trade row. Fills share a close event exactly when
// their close timestamps are identical: they originate from the same
// closing order.
type AggregatedTrade struct {
	Contract       string
	PnL            Amount
	TradeFees      Amount
	FundingFee     Amount
	Quantity       Amount
	OpenTime       time.Time // earliest member open
	CloseTime      time.Time
	HoldingSeconds Amount // quantity-weighted average of member holdings

	Type           TradeType
	CumulativePnL  Amount
	CumulativeFees Amount
}

// aggregateFills groups fills by exact close timestamp and returns the
// merged trades sorted by close time ascending.
func aggregateFills(fills []Fill) []*AggregatedTrade {
	byClose := make(map[int64]*AggregatedTrade)
	weighted := make(map[int64]Amount) // sum of holding*quantity per group
	var order []int64

	for _, f := range fills {
		key := f.CloseTime.UnixNano()
		t, ok := byClose[key]
		if !ok {
			t = &AggregatedTrade{
				Contract:  f.Symbol,
				OpenTime:  f.OpenTime,
				CloseTime: f.CloseTime,
			}
			byClose[key] = t
			order = append(order, key)
		}
		t.PnL = t.PnL.Add(f.PnL)
		t.TradeFees = t.TradeFees.Add(f.TradeFees)
		t.FundingFee = t.FundingFee.Add(f.FundingFee)
		t.Quantity = t.Quantity.Add(f.Quantity)
		if f.OpenTime.Before(t.OpenTime) {
			t.OpenTime = f.OpenTime
		}
		weighted[key] = weighted[key].Add(f.HoldingSeconds.Mul(f.Quantity))
	}

	trades := make([]*AggregatedTrade, 0, len(order))
	for _, key := range order {
		t := byClose[key]
		// Zero total weight yields a zero holding period; Div guards the
		// division itself.
		t.HoldingSeconds = weighted[key].Div(t.Quantity)
		trades = append(trades, t)
	}
	sort.Slice(trades, func(i, j int) bool {
		return trades[i].CloseTime.Before(trades[j].CloseTime)
	})
	return trades
}

// classifyTrades assigns the day/swing classification and the running
// cumulative PnL and fees over the sorted sequence. A holding period of
// exactly the threshold is a day trade; strictly above is a swing.
func classifyTrades(trades []*AggregatedTrade, thresholdHours int) {
	threshold := A(thresholdHours).Mul(A(3600))
	var pnl, fees Amount
	for _, t := range trades {
		if t.HoldingSeconds.GreaterThan(threshold) {
			t.Type = SwingTrade
		} else {
			t.Type = DayTrade
		}
		pnl = pnl.Add(t.PnL)
		fees = fees.Add(t.TradeFees)
		t.CumulativePnL = pnl
		t.CumulativeFees = fees
	}
}
