// Package viz renders a running instrument in the terminal.
//
// The live view uses Bubble Tea and draws the sample profile and tip on a
// Braille [Canvas], with the recorded curve plotted beside it.
//
// # Key Bindings
//
//	Space  - Pause/Resume scanning
//	R      - Rewind the scan and clear recordings
//	Tab    - Select next parameter
//	Up/K   - Increase selected parameter by 5%
//	Down/J - Decrease selected parameter by 5%
//	S      - Save the view and curve as SVG
//	?      - Show help
package viz
