package tradepnl

import (
	"fmt"
	"sort"

	"tradepnl/i18n"
)

// analyzeContract FIFO-matches OPEN/CLOSE contract rows into fills,
// allocating fees and funding proportionally across partial matches, then
// aggregates fills sharing a close event into classified trades.
func analyzeContract(records []Record, opts Options) (*Analysis, error) {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})

	// Funding settlements, one slice per contract.
	settlements := make(map[string][]Record)
	// Matchable trade rows, grouped by contract.
	groups := make(map[string][]Record)
	for _, r := range sorted {
		switch {
		case r.Kind == KindSettlement:
			settlements[r.Symbol] = append(settlements[r.Symbol], r)
		case r.Kind == KindTrade && r.Action != ActionNone:
			groups[r.Symbol] = append(groups[r.Symbol], r)
		}
	}

	contracts := make([]string, 0, len(groups))
	for c := range groups {
		contracts = append(contracts, c)
	}
	sort.Strings(contracts)

	diag := &Diagnostics{}
	var fills []Fill
	for _, contract := range contracts {
		fills = append(fills, matchContract(contract, groups[contract], settlements[contract], diag)...)
	}

	if len(fills) == 0 {
		return nil, ErrNoClassifiableTrades
	}

	trades := aggregateFills(fills)
	classifyTrades(trades, opts.threshold())

	var totalPnL, dayPnL, swingPnL Amount
	for _, t := range trades {
		totalPnL = totalPnL.Add(t.PnL)
		switch t.Type {
		case SwingTrade:
			swingPnL = swingPnL.Add(t.PnL)
		default:
			dayPnL = dayPnL.Add(t.PnL)
		}
	}

	a := &Analysis{
		Instrument: InstrumentContract,
		KPI: map[string]Amount{
			KPITotalPnL:      totalPnL,
			KPITradeCount:    A(len(trades)),
			KPIDayTradePnL:   dayPnL,
			KPISwingTradePnL: swingPnL,
		},
		Diagnostics: diag,
	}

	a.PnLChart.add(earliestTime(sorted).Format(chartLabelLayout), A(0))
	for i, t := range trades {
		a.PnLChart.add(t.CloseTime.Format(chartLabelLayout), t.CumulativePnL)
		a.Trades = append(a.Trades, TradeRow{
			ID:             fmt.Sprintf("T-%d", i+1),
			Contract:       t.Contract,
			Type:           i18n.TradeTypeLabel(opts.Language, t.Type.String()),
			PnL:            t.PnL,
			Quantity:       t.Quantity,
			OpenTime:       t.OpenTime.Format(tradeTimeLayout),
			CloseTime:      t.CloseTime.Format(tradeTimeLayout),
			HoldingPeriod:  formatHoldingPeriod(t.HoldingSeconds),
			FundingFee:     ref(t.FundingFee),
			TradeFees:      ref(t.TradeFees),
			CumulativePnL:  ref(t.CumulativePnL),
			CumulativeFees: ref(t.CumulativeFees),
		})
	}
	return a, nil
}

// matchContract runs the FIFO matching loop for one contract group. Rows
// arrive in ascending time order. The opens slice keeps the OPEN rows'
// original quantities: funding allocation ratios use those, never the
// live lot remainders.
func matchContract(contract string, rows, funding []Record, diag *Diagnostics) []Fill {
	opens := make([]Record, 0, len(rows))
	for _, r := range rows {
		if r.Action == ActionOpen {
			opens = append(opens, r)
		}
	}

	queue := &lotQueue{}
	var fills []Fill
	for _, row := range rows {
		switch row.Action {
		case ActionOpen:
			queue.push(&lot{
				remaining: row.Quantity,
				fee:       row.FeePaid,
				openTime:  row.Time,
			})
		case ActionClose:
			toClose := row.Quantity
			for toClose.IsPositive() && !queue.empty() {
				l := queue.head()
				matched := toClose.Min(l.remaining)

				// The close row's cash flow and fee are shared across
				// its fills by matched fraction of the row's full
				// intended quantity.
				closeRatio := matched.Div(row.Quantity)
				closePnLPart := row.CashFlow.Mul(closeRatio)
				closeFeePart := row.FeePaid.Mul(closeRatio)

				// The opening fee is ratioed against the lot's quantity
				// remaining at this match, not its original size. A lot
				// split across several closes allocates its full fee to
				// each successive remaining balance. Documented policy,
				// kept as is.
				openFeePart := l.fee.Mul(matched.Div(l.remaining))

				fundingPart := fundingShare(l, row, matched, funding, opens)

				netPnL := closePnLPart.Add(openFeePart).Add(closeFeePart).Add(fundingPart)
				fills = append(fills, Fill{
					Symbol:         contract,
					Quantity:       matched,
					PnL:            netPnL,
					OpenTime:       l.openTime,
					CloseTime:      row.Time,
					HoldingSeconds: A(row.Time.Sub(l.openTime).Seconds()),
					FundingFee:     fundingPart,
					TradeFees:      openFeePart.Add(closeFeePart),
				})

				l.remaining = l.remaining.Sub(matched)
				toClose = toClose.Sub(matched)
				if l.exhausted() {
					queue.pop()
				}
			}
			if toClose.Decimal().GreaterThan(lotEpsilon) {
				diag.addUnmatched(contract, toClose)
			}
		}
	}
	return fills
}

// fundingShare allocates funding payments to one match. Every settlement
// of the contract falling in (lot open, close] is summed and shared by the
// match's fraction of the total quantity opened during [lot open, close]:
// funding is charged against the contract's open interest at settlement
// time, not against one lot.
func fundingShare(l *lot, closeRow Record, matched Amount, funding, opens []Record) Amount {
	var sum Amount
	for _, s := range funding {
		if s.Time.After(l.openTime) && !s.Time.After(closeRow.Time) {
			sum = sum.Add(s.Funding)
		}
	}

	var totalOpen Amount
	for _, o := range opens {
		if !o.Time.Before(l.openTime) && !o.Time.After(closeRow.Time) {
			totalOpen = totalOpen.Add(o.Quantity)
		}
	}
	if !totalOpen.IsPositive() {
		return A(0)
	}
	return sum.Mul(matched.Div(totalOpen))
}
