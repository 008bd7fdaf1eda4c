package scan

import "errors"

// Domain errors for engine construction and configuration.
var (
	// ErrNoGenerator indicates a setup without a sample generator.
	ErrNoGenerator = errors.New("scan: setup has no sample generator")

	// ErrNoTipModel indicates a setup without a tip physics model.
	ErrNoTipModel = errors.New("scan: setup has no tip model")

	// ErrEmptyProfile indicates a non-positive sample length.
	ErrEmptyProfile = errors.New("scan: sample length must be positive")

	// ErrBadPhaseTable indicates a phase table that does not partition [0,1).
	ErrBadPhaseTable = errors.New("scan: phase table does not partition [0,1)")

	// ErrBadSetup indicates a setup whose parts cannot be combined.
	ErrBadSetup = errors.New("scan: inconsistent setup")

	// ErrUnknownParam indicates a configuration name no component owns.
	ErrUnknownParam = errors.New("scan: unknown parameter")

	// ErrParameterBounds indicates a parameter value outside its valid range.
	ErrParameterBounds = errors.New("scan: parameter out of valid bounds")
)
