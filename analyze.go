package tradepnl

import (
	"fmt"
	"runtime/debug"
)

// defaultThresholdHours separates day trades from swing trades unless the
// caller picks another boundary.
const defaultThresholdHours = 24

// Options tunes one analysis run.
type Options struct {
	// ThresholdHours is the day/swing boundary in hours; 0 means the
	// default of 24. Only the contract classifier uses it.
	ThresholdHours int
	// Language selects the locale of classification labels ("en", "ko").
	// Empty means the default language.
	Language string
}

func (o Options) threshold() int {
	if o.ThresholdHours <= 0 {
		return defaultThresholdHours
	}
	return o.ThresholdHours
}

// Analyze runs the whole pipeline on one batch of parsed tables:
// normalize, match (spot or contract, decided by the column signatures),
// aggregate. It either returns a complete Analysis or an error; partial
// results are never returned, and an unexpected failure inside matching is
// reported as an error instead of crashing the host process.
func Analyze(tables []*Table, opts Options) (a *Analysis, err error) {
	defer func() {
		if r := recover(); r != nil {
			a = nil
			err = fmt.Errorf("analysis failed unexpectedly: %v\n%s", r, debug.Stack())
		}
	}()

	batch, err := Normalize(tables)
	if err != nil {
		return nil, err
	}
	switch batch.Instrument {
	case InstrumentSpot:
		return analyzeSpot(batch.Records)
	case InstrumentContract:
		return analyzeContract(batch.Records, opts)
	default:
		return nil, ErrNoValidData
	}
}
