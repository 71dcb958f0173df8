package units

import (
	"errors"
	"math"
	"testing"
)

func approxEqual(a, b, tolerance float64) bool {
	if b == 0 {
		return math.Abs(a) <= tolerance
	}
	return math.Abs(a-b)/math.Abs(b) <= tolerance
}

func TestConvertIdentityIsExact(t *testing.T) {
	t.Parallel()

	values := []float64{0, 1, 0.1, 3.14159, 1e-9, 123456.789, -2.5}
	for _, u := range All() {
		for _, v := range values {
			got, err := Convert(v, u, u, DefaultDensity)
			if err != nil {
				t.Fatalf("Convert(%v, %s, %s) returned error: %v", v, u, u, err)
			}
			if got != v {
				t.Fatalf("Convert(%v, %s, %s) = %v, want exact identity", v, u, u, got)
			}
		}
	}
}

func TestConvertKnownValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value float64
		from  Unit
		to    Unit
		want  float64
	}{
		{"grams to ounces", 100, Gram, Ounce, 3.5274},
		{"ounces to grams", 3.5274, Ounce, Gram, 100},
		{"cup to millilitres", 1, Cup, Milliliter, 236.588},
		{"millilitres to cup", 236.588, Milliliter, Cup, 1},
		{"kilogram to pounds", 1, Kilogram, Pound, 2.20462},
		{"tablespoon to teaspoons", 1, Tablespoon, Teaspoon, 3},
		{"milligrams to grams", 2500, Milligram, Gram, 2.5},
		{"grams to millilitres with water", 250, Gram, Milliliter, 250},
		{"cup to grams with water", 1, Cup, Gram, 236.588},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ConvertDefault(tt.value, tt.from, tt.to)
			if err != nil {
				t.Fatalf("ConvertDefault returned error: %v", err)
			}
			if !approxEqual(got, tt.want, 1e-3) {
				t.Fatalf("ConvertDefault(%v, %s, %s) = %v, want ~%v", tt.value, tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestConvertVolumeLiteral(t *testing.T) {
	t.Parallel()

	got, err := ConvertDefault(500, Milliliter, Liter)
	if err != nil {
		t.Fatalf("ConvertDefault returned error: %v", err)
	}
	if got != 0.5 {
		t.Fatalf("500 ml = %v l, want exactly 0.5", got)
	}
}

func TestConvertRoundTripWithinFamily(t *testing.T) {
	t.Parallel()

	for _, family := range [][]Unit{MassUnits(), VolumeUnits()} {
		for _, a := range family {
			for _, b := range family {
				there, err := ConvertDefault(42.5, a, b)
				if err != nil {
					t.Fatalf("ConvertDefault(42.5, %s, %s) returned error: %v", a, b, err)
				}
				back, err := ConvertDefault(there, b, a)
				if err != nil {
					t.Fatalf("ConvertDefault(%v, %s, %s) returned error: %v", there, b, a, err)
				}
				if !approxEqual(back, 42.5, 1e-9) {
					t.Fatalf("round trip %s -> %s -> %s = %v, want 42.5", a, b, a, back)
				}
			}
		}
	}
}

func TestConvertUsesDensityAcrossFamilies(t *testing.T) {
	t.Parallel()

	// Honey is roughly 1.42 g/ml.
	grams, err := Convert(1, Cup, Gram, 1.42)
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if !approxEqual(grams, 236.588*1.42, 1e-12) {
		t.Fatalf("1 cup of honey = %v g, want %v", grams, 236.588*1.42)
	}

	cups, err := Convert(grams, Gram, Cup, 1.42)
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if !approxEqual(cups, 1, 1e-12) {
		t.Fatalf("%v g of honey = %v cup, want 1", grams, cups)
	}
}

func TestConvertNonPositiveDensityFallsBackToWater(t *testing.T) {
	t.Parallel()

	for _, density := range []float64{0, -3} {
		got, err := Convert(10, Milliliter, Gram, density)
		if err != nil {
			t.Fatalf("Convert returned error: %v", err)
		}
		if got != 10 {
			t.Fatalf("Convert(10, ml, g, %v) = %v, want 10", density, got)
		}
	}
}

func TestConvertRejectsUnsupportedUnits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		from Unit
		to   Unit
	}{
		{"piece to grams", Unit("piece"), Gram},
		{"cup to slice", Cup, Unit("slice")},
		{"unknown pair", Unit("pc"), Unit("box")},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ConvertDefault(1, tt.from, tt.to)
			if !errors.Is(err, ErrUnsupportedConversion) {
				t.Fatalf("expected ErrUnsupportedConversion, got value %v err %v", got, err)
			}
		})
	}
}

func TestToMetric(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value float64
		unit  Unit
		want  Quantity
	}{
		{"ounce", 1, Ounce, Quantity{Value: 28.3495231, Unit: Gram}},
		{"pound", 1, Pound, Quantity{Value: 453.59237, Unit: Gram}},
		{"fluid ounce", 2, FluidOunce, Quantity{Value: 59.147, Unit: Milliliter}},
		{"cup", 1, Cup, Quantity{Value: 236.588, Unit: Milliliter}},
		{"already metric", 12, Gram, Quantity{Value: 12, Unit: Gram}},
		{"teaspoon passes through", 3, Teaspoon, Quantity{Value: 3, Unit: Teaspoon}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ToMetric(tt.value, tt.unit)
			if got.Unit != tt.want.Unit || !approxEqual(got.Value, tt.want.Value, 1e-9) {
				t.Fatalf("ToMetric(%v, %s) = %+v, want %+v", tt.value, tt.unit, got, tt.want)
			}
		})
	}
}

func TestToImperial(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value float64
		unit  Unit
		want  Quantity
	}{
		{"gram", 100, Gram, Quantity{Value: 3.527396, Unit: Ounce}},
		{"small kilogram stays in pounds", 0.01, Kilogram, Quantity{Value: 0.0220462, Unit: Pound}},
		{"millilitre", 29.5735, Milliliter, Quantity{Value: 1, Unit: FluidOunce}},
		{"litre", 1, Liter, Quantity{Value: 4.226753, Unit: Cup}},
		{"milligram passes through", 5, Milligram, Quantity{Value: 5, Unit: Milligram}},
		{"already imperial", 2, Ounce, Quantity{Value: 2, Unit: Ounce}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ToImperial(tt.value, tt.unit)
			if got.Unit != tt.want.Unit || !approxEqual(got.Value, tt.want.Value, 1e-5) {
				t.Fatalf("ToImperial(%v, %s) = %+v, want %+v", tt.value, tt.unit, got, tt.want)
			}
		})
	}
}
