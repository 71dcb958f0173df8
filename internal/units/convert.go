package units

import "fmt"

// Quantity is an amount expressed in a unit.
type Quantity struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// Convert expresses value in the target unit. Mass and volume are bridged with
// density in g/ml; a non-positive density falls back to DefaultDensity.
func Convert(value float64, from, to Unit, density float64) (float64, error) {
	if from == to {
		return value, nil
	}
	if density <= 0 {
		density = DefaultDensity
	}

	src, ok := unitTable[from]
	if !ok {
		return 0, fmt.Errorf("%w: %s to %s", ErrUnsupportedConversion, from, to)
	}
	dst, ok := unitTable[to]
	if !ok {
		return 0, fmt.Errorf("%w: %s to %s", ErrUnsupportedConversion, from, to)
	}

	base := value * src.toBase
	switch {
	case src.family == dst.family:
	case src.family == Mass && dst.family == Volume:
		base = base / density
	case src.family == Volume && dst.family == Mass:
		base = base * density
	default:
		return 0, fmt.Errorf("%w: %s to %s", ErrUnsupportedConversion, from, to)
	}
	return base / dst.toBase, nil
}

// ConvertDefault converts assuming water density.
func ConvertDefault(value float64, from, to Unit) (float64, error) {
	return Convert(value, from, to, DefaultDensity)
}

var metricTargets = map[Unit]Unit{
	Ounce:      Gram,
	Pound:      Gram,
	FluidOunce: Milliliter,
	Cup:        Milliliter,
}

var imperialTargets = map[Unit]Unit{
	Gram:       Ounce,
	Kilogram:   Pound,
	Milliliter: FluidOunce,
	Liter:      Cup,
}

// ToMetric returns the metric equivalent of an imperial quantity. Units that
// have no entry in the lookup are returned unchanged.
func ToMetric(value float64, u Unit) Quantity {
	return lookupConvert(metricTargets, value, u)
}

// ToImperial is the counterpart of ToMetric.
func ToImperial(value float64, u Unit) Quantity {
	return lookupConvert(imperialTargets, value, u)
}

func lookupConvert(table map[Unit]Unit, value float64, u Unit) Quantity {
	target, ok := table[u]
	if !ok {
		return Quantity{Value: value, Unit: u}
	}
	// Every pair in the tables is same-family, so conversion cannot fail.
	converted, err := ConvertDefault(value, u, target)
	if err != nil {
		return Quantity{Value: value, Unit: u}
	}
	return Quantity{Value: converted, Unit: target}
}
