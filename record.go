package tradepnl

import (
	"strings"
	"time"
)

// Kind classifies a normalized ledger row.
type Kind int

const (
	// KindOther marks a row type the engines do not match (e.g. transfers).
	KindOther Kind = iota
	// KindTrade is a balance-changing trade leg (spot) or an executed
	// order (contract).
	KindTrade
	// KindSettlement is a periodic funding payment on a contract.
	KindSettlement
	// KindFee is a spot trading-fee charge, reported but never matched.
	KindFee
)

func (k Kind) String() string {
	switch k {
	case KindTrade:
		return "TRADE"
	case KindSettlement:
		return "SETTLEMENT"
	case KindFee:
		return "FEE"
	default:
		return "OTHER"
	}
}

// parseSpotKind maps a spot export type label to a Kind. Spot exports use
// lower camel-case labels and the match is exact.
func parseSpotKind(s string) Kind {
	switch strings.TrimSpace(s) {
	case "trade":
		return KindTrade
	case "tradingFee":
		return KindFee
	default:
		return KindOther
	}
}

// parseContractKind maps a contract export type label to a Kind. Labels are
// upper-cased first, and the legacy "FUNDING" label is remapped to
// SETTLEMENT.
func parseContractKind(s string) Kind {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRADE":
		return KindTrade
	case "SETTLEMENT", "FUNDING":
		return KindSettlement
	default:
		return KindOther
	}
}

// Action is the position effect of a contract trade row.
type Action int

const (
	// ActionNone excludes the row from matching. Parsing fails closed:
	// any direction text that is not recognized yields ActionNone.
	ActionNone Action = iota
	ActionOpen
	ActionClose
)

func (a Action) String() string {
	switch a {
	case ActionOpen:
		return "OPEN"
	case ActionClose:
		return "CLOSE"
	default:
		return "NONE"
	}
}

// parseAction parses a canonical Action column value ("OPEN"/"CLOSE").
func parseAction(s string) Action {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "OPEN":
		return ActionOpen
	case "CLOSE":
		return ActionClose
	default:
		return ActionNone
	}
}

// deriveAction derives an Action from a legacy free-text direction label
// ("Open Long", "Close Short", ...) by substring match, checking Open first
// exactly like the legacy adapter it replaces.
func deriveAction(direction string) Action {
	if strings.Contains(direction, "Open") {
		return ActionOpen
	}
	if strings.Contains(direction, "Close") {
		return ActionClose
	}
	return ActionNone
}

// Record is the canonical row shape shared by both engines. It is created
// once by the normalizer and read-only afterwards.
type Record struct {
	Time     time.Time
	Symbol   string // coin ticker (spot) or contract identifier
	Kind     Kind
	Action   Action
	Quantity Amount // signed: positive = buy/open, negative = sell
	Price    Amount
	FeePaid  Amount
	CashFlow Amount
	Funding  Amount
}

// recordTimeLayouts are the timestamp formats seen in exchange exports.
var recordTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05Z07:00",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006-01-02",
}

// parseRecordTime parses a timestamp cell. The ok result is false when the
// cell is empty or matches no known layout; such rows are skipped, not
// fatal.
func parseRecordTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range recordTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
