package tradepnl

import (
	"time"

	"github.com/shopspring/decimal"
)

// lotEpsilon is the exhaustion threshold: repeated decimal subtraction can
// leave residue on a lot, so a remaining quantity at or below this value
// counts as fully consumed.
var lotEpsilon = decimal.New(1, -9) // 1e-9

// lot is one open inventory unit, created by a buy (spot) or an OPEN
// (contract) row. It is owned exclusively by the FIFO queue of its symbol
// and mutated in place as it is consumed.
type lot struct {
	remaining Amount
	price     Amount // implied unit price (spot only)
	fee       Amount // opening fee (contract only); never reduced by matching
	openTime  time.Time
}

func (l *lot) exhausted() bool {
	return l.remaining.Decimal().LessThanOrEqual(lotEpsilon)
}

// lotQueue is a FIFO queue of open lots for one symbol. Matching always
// consumes the head, which is the lot with the earliest open time.
type lotQueue struct {
	lots []*lot
}

func (q *lotQueue) push(l *lot) { q.lots = append(q.lots, l) }
func (q *lotQueue) head() *lot  { return q.lots[0] }
func (q *lotQueue) pop()        { q.lots = q.lots[1:] }
func (q *lotQueue) empty() bool { return len(q.lots) == 0 }

// inventory holds one lot queue per symbol, created on demand. It lives
// for the duration of one analysis and is never shared.
type inventory map[string]*lotQueue

func (inv inventory) queue(symbol string) *lotQueue {
	q, ok := inv[symbol]
	if !ok {
		q = &lotQueue{}
		inv[symbol] = q
	}
	return q
}
