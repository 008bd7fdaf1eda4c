// Package scan provides the core scan-simulation engine for scanning-probe
// instruments.
//
// The package defines the shared primitives every instrument is built from:
//
//   - [Profile]: fixed-length 1-D sample with a height channel and optional
//     property channels (stiffness, resistance, potential, ...)
//   - [PhaseTable]: the lift/move/approach/measure/retract state machine as
//     an explicit table of sub-ranges of the cycle phase
//   - [ScanState]: cycle phase and scan position advanced once per tick
//   - [Generator]: procedural sample generator
//   - [TipModel]: tip physics law producing a [TipState] each tick
//   - [Engine]: owns one instrument's profile, state and recorder
//   - [Runner]: frame scheduler calling Tick then Render
//
// # Example
//
//	e, _ := scan.New(setup)
//	e.Init()
//	for i := 0; i < 1000; i++ {
//	    snap := e.Tick()
//	    _ = snap.Tip.Readout.Value
//	}
//
// # Thread Safety
//
// Engine instances are NOT thread-safe. Each engine is owned by exactly one
// goroutine; run several instruments by creating several engines.
package scan
