// Package units converts serving amounts between mass and volume units.
//
// The vocabulary defined here is the only set of unit identifiers accepted at
// the service boundary. Handlers, views, the importer and the workspace store
// all refer to these constants instead of keeping their own lists.
package units

import (
	"errors"
	"fmt"
	"strings"
)

// Unit identifies a serving unit.
type Unit string

// Family groups units that can be related by a fixed factor.
type Family string

const (
	Milligram  Unit = "mg"
	Gram       Unit = "g"
	Kilogram   Unit = "kg"
	Ounce      Unit = "oz"
	Pound      Unit = "lb"
	Milliliter Unit = "ml"
	Liter      Unit = "l"
	Teaspoon   Unit = "tsp"
	Tablespoon Unit = "tbsp"
	FluidOunce Unit = "floz"
	Cup        Unit = "cup"
)

const (
	Mass   Family = "mass"
	Volume Family = "volume"
)

// DefaultDensity is the density of water in g/ml. It is assumed whenever a
// caller bridges mass and volume without knowing the food's real density.
const DefaultDensity = 1.0

var (
	// ErrUnsupportedConversion reports a unit pair that cannot be related by
	// mass, volume or density rules.
	ErrUnsupportedConversion = errors.New("unsupported unit conversion")
	// ErrUnsupportedUnit reports an identifier outside the unit vocabulary.
	ErrUnsupportedUnit = errors.New("unsupported unit")
)

type unitDef struct {
	family Family
	toBase float64
	label  string
}

// base is grams for mass and millilitres for volume.
var unitTable = map[Unit]unitDef{
	Milligram: {family: Mass, toBase: 0.001, label: "milligram"},
	Gram:      {family: Mass, toBase: 1, label: "gram"},
	Kilogram:  {family: Mass, toBase: 1000, label: "kilogram"},
	Ounce:     {family: Mass, toBase: 28.3495231, label: "ounce"},
	Pound:     {family: Mass, toBase: 453.59237, label: "pound"},

	Milliliter: {family: Volume, toBase: 1, label: "milliliter"},
	Liter:      {family: Volume, toBase: 1000, label: "liter"},
	Teaspoon:   {family: Volume, toBase: 4.92892, label: "teaspoon"},
	Tablespoon: {family: Volume, toBase: 14.7868, label: "tablespoon"},
	FluidOunce: {family: Volume, toBase: 29.5735, label: "fluid ounce"},
	Cup:        {family: Volume, toBase: 236.588, label: "cup"},
}

var (
	massUnits   = []Unit{Milligram, Gram, Kilogram, Ounce, Pound}
	volumeUnits = []Unit{Milliliter, Liter, Teaspoon, Tablespoon, FluidOunce, Cup}
)

// Parse validates an identifier received from outside the core.
func Parse(value string) (Unit, error) {
	u := Unit(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := unitTable[u]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedUnit, value)
	}
	return u, nil
}

// Valid reports whether u belongs to the vocabulary.
func (u Unit) Valid() bool {
	_, ok := unitTable[u]
	return ok
}

// Family returns the unit's family, or the empty string for unknown units.
func (u Unit) Family() Family {
	return unitTable[u].family
}

// Label is the human readable singular name of the unit.
func (u Unit) Label() string {
	if def, ok := unitTable[u]; ok {
		return def.label
	}
	return string(u)
}

func (u Unit) String() string {
	return string(u)
}

// IsMass reports whether u is a mass unit.
func IsMass(u Unit) bool {
	return u.Family() == Mass
}

// IsVolume reports whether u is a volume unit.
func IsVolume(u Unit) bool {
	return u.Family() == Volume
}

// All returns every supported unit, mass units first.
func All() []Unit {
	out := make([]Unit, 0, len(massUnits)+len(volumeUnits))
	out = append(out, massUnits...)
	return append(out, volumeUnits...)
}

// MassUnits returns the mass family in display order.
func MassUnits() []Unit {
	return append([]Unit(nil), massUnits...)
}

// VolumeUnits returns the volume family in display order.
func VolumeUnits() []Unit {
	return append([]Unit(nil), volumeUnits...)
}

// Canonical returns grams for mass units and millilitres for volume units.
func Canonical(u Unit) (Unit, error) {
	switch u.Family() {
	case Mass:
		return Gram, nil
	case Volume:
		return Milliliter, nil
	default:
		return "", fmt.Errorf("%w: no canonical unit for %q", ErrUnsupportedConversion, u)
	}
}
