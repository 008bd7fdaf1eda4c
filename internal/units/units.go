// Package units formats readouts with SI magnitude prefixes.
package units

import (
	"fmt"
	"math"

	"github.com/san-kum/probesim/internal/scan"
)

var prefixes = []struct {
	factor float64
	symbol string
}{
	{1e12, "T"},
	{1e9, "G"},
	{1e6, "M"},
	{1e3, "k"},
}

// Format picks the largest prefix that keeps the magnitude at or above one.
// Values under 1e3 stay in base units.
func Format(v float64, unit string) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprintf("%v %s", v, unit)
	}
	a := math.Abs(v)
	for _, p := range prefixes {
		if a >= p.factor {
			return fmt.Sprintf("%.2f %s%s", v/p.factor, p.symbol, unit)
		}
	}
	return fmt.Sprintf("%.2f %s", v, unit)
}

// Resistance formats a log10 resistance in ohms.
func Resistance(rlog float64) string {
	return Format(math.Pow(10, rlog), "Ω")
}

func Force(nN float64) string { return fmt.Sprintf("%.2f nN", nN) }

func Potential(mV float64) string { return fmt.Sprintf("%.1f mV", mV) }

func Temperature(k float64) string { return fmt.Sprintf("%.1f K", k) }

func HeatFlow(uW float64) string { return fmt.Sprintf("%.3f µW", uW) }

func Length(nm float64) string { return fmt.Sprintf("%.2f nm", nm) }

// Readout formats a value by the quantity it carries.
func Readout(q scan.Quantity, v float64) string {
	switch q {
	case scan.QuantityHeight, scan.QuantityDeformation:
		return Length(v)
	case scan.QuantityForce:
		return Force(v)
	case scan.QuantityResistanceLog:
		return Resistance(v)
	case scan.QuantityPotential:
		return Potential(v)
	case scan.QuantityHeatFlow:
		return HeatFlow(v)
	}
	return fmt.Sprintf("%.3f", v)
}
