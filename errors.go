package tradepnl

import "errors"

// Structural failures abort the whole request; per-row anomalies (bad
// numbers, missing quote legs, unmatched remainders) are absorbed locally
// and surface only through Diagnostics.

var (
	// ErrMixedInstrumentTypes is returned when one upload mixes spot and
	// contract exports. The two families must be analyzed separately.
	ErrMixedInstrumentTypes = errors.New("spot and contract exports cannot be analyzed together, upload them separately")

	// ErrNoValidData is returned when no uploaded file matches a known
	// column signature, or every row was discarded.
	ErrNoValidData = errors.New("no valid trade data found in uploaded files")

	// ErrNoRealizedPnL is returned when spot matching produced no fills.
	ErrNoRealizedPnL = errors.New("no realized PnL from spot trades could be calculated")

	// ErrNoClassifiableTrades is returned when contract matching produced
	// no fills.
	ErrNoClassifiableTrades = errors.New("no trades could be classified from the uploaded files")
)

// IsInputError reports whether err is the caller's fault (unusable or
// inconsistent upload) rather than a computation failure. The HTTP layer
// maps input errors to 400 and everything else to 500.
func IsInputError(err error) bool {
	return errors.Is(err, ErrMixedInstrumentTypes) || errors.Is(err, ErrNoValidData)
}
