package tradepnl

import "time"

// Fill is the realized outcome of matching part of a closing record
// against one lot. One closing record produces one fill per lot it
// consumes; one lot can be split across several closing records. Fills are
// immutable once emitted.
type Fill struct {
	Symbol    string
	Quantity  Amount // matched quantity
	PnL       Amount
	OpenTime  time.Time
	CloseTime time.Time

	// Spot only: the implied unit prices of the matched legs.
	BuyPrice  Amount
	SellPrice Amount

	// Contract only.
	HoldingSeconds Amount
	FundingFee     Amount
	TradeFees      Amount
}

// Diagnostics counts the per-row anomalies that were absorbed during
// matching. They never abort a batch but callers may want to see them.
type Diagnostics struct {
	// UnmatchedQuantity is, per symbol, the closing quantity that found
	// no open inventory and was dropped.
	UnmatchedQuantity map[string]Amount `json:"unmatched_quantity,omitempty"`
	// UnpricedLegs counts spot legs skipped for lack of a same-timestamp
	// USDT quote leg.
	UnpricedLegs int `json:"unpriced_legs,omitempty"`
}

func (d *Diagnostics) addUnmatched(symbol string, quantity Amount) {
	if d.UnmatchedQuantity == nil {
		d.UnmatchedQuantity = make(map[string]Amount)
	}
	d.UnmatchedQuantity[symbol] = d.UnmatchedQuantity[symbol].Add(quantity)
}
