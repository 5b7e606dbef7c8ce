// Package renderer turns an Analysis into a markdown report suitable for
// terminal rendering.
package renderer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Rhymond/go-money"

	"tradepnl"
)

// Results are denominated in the quote asset. go-money does not know
// stablecoins, so the currency is registered once with four fraction
// digits.
const reportCurrency = "USDT"

func init() {
	money.AddCurrency(reportCurrency, "USDT", "1 $", ".", ",", 4)
}

// FormatMoney renders an amount in the reporting currency, e.g.
// "1,234.5000 USDT".
func FormatMoney(a tradepnl.Amount) string {
	cur := money.GetCurrency(reportCurrency)
	minor := a.Decimal().Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}

// SignedMoney is FormatMoney with an explicit sign; zero renders as "-".
func SignedMoney(a tradepnl.Amount) string {
	if a.IsZero() {
		return "-"
	}
	if a.IsPositive() {
		return "+" + FormatMoney(a)
	}
	return FormatMoney(a)
}

// Markdown renders the whole analysis as a markdown report.
func Markdown(a *tradepnl.Analysis) string {
	var b strings.Builder

	switch a.Instrument {
	case tradepnl.InstrumentSpot:
		fmt.Fprint(&b, "# Spot Realized PnL Report\n\n")
	default:
		fmt.Fprint(&b, "# Contract PnL Report\n\n")
	}

	fmt.Fprint(&b, "## Summary\n\n")
	fmt.Fprintln(&b, "| KPI | Value |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Total PnL | %s |\n", SignedMoney(a.KPI[tradepnl.KPITotalPnL]))
	fmt.Fprintf(&b, "| Trades | %s |\n", a.KPI[tradepnl.KPITradeCount])
	if fees, ok := a.KPI[tradepnl.KPITotalFees]; ok {
		fmt.Fprintf(&b, "| Total Fees | %s |\n", FormatMoney(fees))
	}
	if day, ok := a.KPI[tradepnl.KPIDayTradePnL]; ok {
		fmt.Fprintf(&b, "| Day-Trade PnL | %s |\n", SignedMoney(day))
	}
	if swing, ok := a.KPI[tradepnl.KPISwingTradePnL]; ok {
		fmt.Fprintf(&b, "| Swing PnL | %s |\n", SignedMoney(swing))
	}
	fmt.Fprintln(&b)

	fmt.Fprint(&b, "## Trades\n\n")
	if a.Instrument == tradepnl.InstrumentSpot {
		spotTrades(&b, a.Trades)
	} else {
		contractTrades(&b, a.Trades)
	}

	if d := a.Diagnostics; d != nil && (len(d.UnmatchedQuantity) > 0 || d.UnpricedLegs > 0) {
		fmt.Fprint(&b, "\n## Diagnostics\n\n")
		symbols := make([]string, 0, len(d.UnmatchedQuantity))
		for symbol := range d.UnmatchedQuantity {
			symbols = append(symbols, symbol)
		}
		sort.Strings(symbols)
		for _, symbol := range symbols {
			fmt.Fprintf(&b, "- unmatched close quantity on %s: %s\n", symbol, d.UnmatchedQuantity[symbol])
		}
		if d.UnpricedLegs > 0 {
			fmt.Fprintf(&b, "- legs skipped without a quote leg: %d\n", d.UnpricedLegs)
		}
	}
	return b.String()
}

func spotTrades(b *strings.Builder, trades []tradepnl.TradeRow) {
	fmt.Fprintln(b, "| # | Coin | PnL | Quantity | Buy Price | Sell Price | Open | Close |")
	fmt.Fprintln(b, "|:---|:---|---:|---:|---:|---:|:---|:---|")
	for _, t := range trades {
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			t.ID, t.Contract, SignedMoney(t.PnL), t.Quantity,
			*t.BuyPrice, *t.SellPrice, t.OpenTime, t.CloseTime)
	}
}

func contractTrades(b *strings.Builder, trades []tradepnl.TradeRow) {
	fmt.Fprintln(b, "| # | Contract | Type | PnL | Holding | Funding | Fees | Cum. PnL | Open | Close |")
	fmt.Fprintln(b, "|:---|:---|:---|---:|:---|---:|---:|---:|:---|:---|")
	for _, t := range trades {
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			t.ID, t.Contract, t.Type, SignedMoney(t.PnL), t.HoldingPeriod,
			SignedMoney(*t.FundingFee), FormatMoney(*t.TradeFees),
			SignedMoney(*t.CumulativePnL), t.OpenTime, t.CloseTime)
	}
}
