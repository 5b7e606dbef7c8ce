package tradepnl

import (
	"fmt"
	"sort"
	"time"
)

// quoteSymbol is the cash leg every spot trade settles against. Spot
// ledgers record each side of a trade as separate rows sharing an exact
// timestamp; the price of a coin leg is implied by the quote leg.
const quoteSymbol = "USDT"

type spotLeg struct {
	record   Record
	quantity Amount // magnitude
	buy      bool
}

// analyzeSpot FIFO-matches the spot balance log into realized-PnL fills.
func analyzeSpot(records []Record) (*Analysis, error) {
	var trades, fees []Record
	for _, r := range records {
		switch r.Kind {
		case KindTrade:
			trades = append(trades, r)
		case KindFee:
			fees = append(fees, r)
		}
	}

	// Trading fees are reported per coin (absolute value of the signed
	// sum) but never matched against lots.
	feeTotal := make(map[string]Amount)
	for _, r := range fees {
		feeTotal[r.Symbol] = feeTotal[r.Symbol].Add(r.Quantity)
	}
	for coin, sum := range feeTotal {
		feeTotal[coin] = sum.Abs()
	}

	// Index the first quote-leg trade row per timestamp, in file order.
	quoteAt := make(map[int64]Record)
	for _, r := range trades {
		if r.Symbol != quoteSymbol {
			continue
		}
		key := r.Time.UnixNano()
		if _, ok := quoteAt[key]; !ok {
			quoteAt[key] = r
		}
	}

	var legs []spotLeg
	for _, r := range trades {
		switch {
		case r.Quantity.IsPositive():
			legs = append(legs, spotLeg{record: r, quantity: r.Quantity, buy: true})
		case r.Quantity.IsNegative():
			legs = append(legs, spotLeg{record: r, quantity: r.Quantity.Abs(), buy: false})
		}
	}
	sort.SliceStable(legs, func(i, j int) bool {
		return legs[i].record.Time.Before(legs[j].record.Time)
	})

	inv := make(inventory)
	diag := &Diagnostics{}
	var fills []Fill

	for _, leg := range legs {
		quote, ok := quoteAt[leg.record.Time.UnixNano()]
		if !ok {
			// No quote leg at this timestamp: the leg cannot be
			// priced. Skipped, not an error.
			diag.UnpricedLegs++
			continue
		}
		coin := leg.record.Symbol
		if leg.buy {
			price := quote.Quantity.Abs().Div(leg.quantity)
			inv.queue(coin).push(&lot{
				remaining: leg.quantity,
				price:     price,
				openTime:  leg.record.Time,
			})
			continue
		}

		sellPrice := quote.Quantity.Div(leg.quantity)
		queue := inv.queue(coin)
		remaining := leg.quantity
		for remaining.IsPositive() && !queue.empty() {
			l := queue.head()
			matched := remaining.Min(l.remaining)
			fills = append(fills, Fill{
				Symbol:    coin,
				Quantity:  matched,
				PnL:       sellPrice.Sub(l.price).Mul(matched),
				BuyPrice:  l.price,
				SellPrice: sellPrice,
				OpenTime:  l.openTime,
				CloseTime: leg.record.Time,
			})
			l.remaining = l.remaining.Sub(matched)
			remaining = remaining.Sub(matched)
			if l.exhausted() {
				queue.pop()
			}
		}
		if remaining.Decimal().GreaterThan(lotEpsilon) {
			// Sell exceeds open inventory: the excess is dropped, no
			// negative-inventory borrowing.
			diag.addUnmatched(coin, remaining)
		}
	}

	if len(fills) == 0 {
		return nil, ErrNoRealizedPnL
	}

	var totalFees Amount
	for _, sum := range feeTotal {
		totalFees = totalFees.Add(sum)
	}
	var totalPnL Amount
	for _, f := range fills {
		totalPnL = totalPnL.Add(f.PnL)
	}

	a := &Analysis{
		Instrument: InstrumentSpot,
		KPI: map[string]Amount{
			KPITotalPnL:   totalPnL.Sub(totalFees),
			KPITradeCount: A(len(fills)),
			KPITotalFees:  totalFees,
		},
		Diagnostics: diag,
	}

	earliest := fills[0].OpenTime
	for _, f := range fills[1:] {
		if f.OpenTime.Before(earliest) {
			earliest = f.OpenTime
		}
	}
	a.PnLChart.add(earliest.Format(chartLabelLayout), A(0))

	var cumulative Amount
	for i, f := range fills {
		cumulative = cumulative.Add(f.PnL)
		a.PnLChart.add(f.CloseTime.Format(chartLabelLayout), cumulative)
		a.Trades = append(a.Trades, TradeRow{
			ID:        fmt.Sprintf("S-%d", i+1),
			Contract:  f.Symbol,
			PnL:       f.PnL,
			Quantity:  f.Quantity,
			OpenTime:  f.OpenTime.Format(tradeTimeLayout),
			CloseTime: f.CloseTime.Format(tradeTimeLayout),
			BuyPrice:  ref(f.BuyPrice),
			SellPrice: ref(f.SellPrice),
		})
	}
	return a, nil
}

// earliestTime returns the smallest record timestamp of the batch.
func earliestTime(records []Record) time.Time {
	earliest := records[0].Time
	for _, r := range records[1:] {
		if r.Time.Before(earliest) {
			earliest = r.Time
		}
	}
	return earliest
}
