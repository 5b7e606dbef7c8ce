package tradepnl

// Analysis is the complete result of one batch run: summary KPIs, the
// cumulative-PnL chart series, and the per-trade rows. It is built whole;
// a failed run produces an error and no partial Analysis.
type Analysis struct {
	Instrument  InstrumentType    `json:"-"`
	KPI         map[string]Amount `json:"kpi"`
	PnLChart    Chart             `json:"pnlChart"`
	Trades      []TradeRow        `json:"trades"`
	Diagnostics *Diagnostics      `json:"diagnostics,omitempty"`
}

// Chart is an index-aligned pair of timestamp labels and cumulative-PnL
// values. The first point is always zero, anchored at the earliest
// relevant time of the batch.
type Chart struct {
	Labels []string `json:"labels"`
	Data   []Amount `json:"data"`
}

func (c *Chart) add(label string, value Amount) {
	c.Labels = append(c.Labels, label)
	c.Data = append(c.Data, value)
}

// TradeRow is one externally visible trade. Spot rows carry the implied
// leg prices; contract rows carry the classification, holding period and
// fee/funding breakdown.
type TradeRow struct {
	ID        string `json:"id"`
	Contract  string `json:"contract"`
	Type      string `json:"type,omitempty"`
	PnL       Amount `json:"pnl"`
	Quantity  Amount `json:"quantity"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`

	BuyPrice  *Amount `json:"buy_price,omitempty"`
	SellPrice *Amount `json:"sell_price,omitempty"`

	HoldingPeriod  string  `json:"holding_period,omitempty"`
	FundingFee     *Amount `json:"funding_fee,omitempty"`
	TradeFees      *Amount `json:"trade_fees,omitempty"`
	CumulativePnL  *Amount `json:"cumulative_pnl,omitempty"`
	CumulativeFees *Amount `json:"cumulative_fees,omitempty"`
}

// KPI field names. The spot and contract results expose different sets.
const (
	KPITotalPnL      = "totalPnl"
	KPITradeCount    = "tradeCount"
	KPITotalFees     = "totalFees"
	KPIDayTradePnL   = "dayTradePnl"
	KPISwingTradePnL = "swingTradePnl"
)

func ref(a Amount) *Amount { return &a }
