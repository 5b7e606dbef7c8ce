package tradepnl

// Canonical column names of the current ("UTA") contract export format, and
// the spot balance-log format. Legacy contract exports are mapped onto the
// canonical set row by row; only the columns below ever reach the engines.
const (
	colTime        = "Time(UTC)"
	colTimeLegacy  = "Time"
	colContract    = "Contract"
	colType        = "Type"
	colDirection   = "Direction"
	colAction      = "Action"
	colQuantity    = "Quantity"
	colFilledPrice = "Filled Price"
	colFeePaid     = "Fee Paid"
	colCashFlow    = "Cash Flow"
	colFunding     = "Funding"
	colChange      = "Change"

	colCoin   = "Coin"
	colAmount = "Amount"
)

// InstrumentType tags a batch as spot balances or contract positions.
type InstrumentType int

const (
	InstrumentUnknown InstrumentType = iota
	InstrumentSpot
	InstrumentContract
)

func (t InstrumentType) String() string {
	switch t {
	case InstrumentSpot:
		return "spot"
	case InstrumentContract:
		return "contract"
	default:
		return "unknown"
	}
}

// Batch is the normalized input of one analysis run: all records from all
// uploaded files, concatenated in file order, under a single instrument
// classification.
type Batch struct {
	Instrument InstrumentType
	Records    []Record
	// SkippedFiles lists uploads matching neither column signature. They
	// are excluded, not fatal.
	SkippedFiles []string
}

// classify tags a table by its column signature. A balance log carries a
// coin and a balance-change amount; a position log carries a contract
// identifier or a direction column.
func classify(t *Table) InstrumentType {
	switch {
	case t.Has(colCoin) && t.Has(colAmount):
		return InstrumentSpot
	case t.Has(colContract) || t.Has(colDirection):
		return InstrumentContract
	default:
		return InstrumentUnknown
	}
}

// Normalize maps a set of parsed tables onto one batch of canonical
// records. It fails with ErrMixedInstrumentTypes when the tables disagree
// on the instrument family, and with ErrNoValidData when nothing usable
// remains.
func Normalize(tables []*Table) (*Batch, error) {
	b := &Batch{}
	for _, t := range tables {
		class := classify(t)
		switch class {
		case InstrumentUnknown:
			b.SkippedFiles = append(b.SkippedFiles, t.Name)
			continue
		default:
			if b.Instrument != InstrumentUnknown && b.Instrument != class {
				return nil, ErrMixedInstrumentTypes
			}
			b.Instrument = class
		}
		switch class {
		case InstrumentSpot:
			b.Records = append(b.Records, normalizeSpot(t)...)
		case InstrumentContract:
			b.Records = append(b.Records, normalizeContract(t)...)
		}
	}
	if b.Instrument == InstrumentUnknown || len(b.Records) == 0 {
		return nil, ErrNoValidData
	}
	return b, nil
}

// normalizeSpot maps a balance-log table onto canonical records.
func normalizeSpot(t *Table) []Record {
	records := make([]Record, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		cell, _ := t.Cell(i, colTime)
		when, ok := parseRecordTime(cell)
		if !ok {
			continue
		}
		coin, _ := t.Cell(i, colCoin)
		kind, _ := t.Cell(i, colType)
		records = append(records, Record{
			Time:     when,
			Symbol:   coin,
			Kind:     parseSpotKind(kind),
			Quantity: t.amountAt(i, colAmount),
		})
	}
	return records
}

// normalizeContract maps a position-log table onto canonical records,
// adapting the legacy schema on the fly: the time column is renamed, the
// action is derived from the free-text direction, type labels are
// upper-cased with FUNDING remapped to SETTLEMENT, and columns the file
// does not carry stay explicitly absent.
func normalizeContract(t *Table) []Record {
	legacy := !t.Has(colAction) && t.Has(colDirection)

	timeColumn := colTime
	if !t.Has(colTime) && t.Has(colTimeLegacy) {
		timeColumn = colTimeLegacy
	}

	records := make([]Record, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		if emptyEssentials(t, i, timeColumn) {
			continue
		}
		cell, _ := t.Cell(i, timeColumn)
		when, ok := parseRecordTime(cell)
		if !ok {
			continue
		}

		var action Action
		if legacy {
			direction, _ := t.Cell(i, colDirection)
			action = deriveAction(direction)
		} else {
			cell, _ := t.Cell(i, colAction)
			action = parseAction(cell)
		}

		contract, _ := t.Cell(i, colContract)
		kind, _ := t.Cell(i, colType)

		// Funding settlements record their cash movement in the Change
		// column; the Funding column holds the rate, not the payment.
		funding := t.amountAt(i, colChange)

		records = append(records, Record{
			Time:     when,
			Symbol:   contract,
			Kind:     parseContractKind(kind),
			Action:   action,
			Quantity: t.amountAt(i, colQuantity),
			Price:    t.amountAt(i, colFilledPrice),
			FeePaid:  t.amountAt(i, colFeePaid),
			CashFlow: t.amountAt(i, colCashFlow),
			Funding:  funding,
		})
	}
	return records
}

// emptyEssentials reports whether the row is blank across every essential
// column: a CSV artifact line, dropped before normalization.
func emptyEssentials(t *Table, i int, timeColumn string) bool {
	for _, col := range []string{timeColumn, colContract, colType, colQuantity, colFilledPrice} {
		if cell, ok := t.Cell(i, col); ok && cell != "" {
			return false
		}
	}
	return true
}
