package components

import (
	"io"
	"math"
	"strconv"

	"nutrisync/internal/nutrition"
	"nutrisync/internal/units"
)

// FormatAmount renders a nutrient or serving amount: two decimals below one,
// integers as-is, one decimal otherwise.
func FormatAmount(value float64) string {
	switch {
	case value > 0 && value < 1:
		return strconv.FormatFloat(value, 'f', 2, 64)
	case value == math.Trunc(value):
		return strconv.FormatFloat(value, 'f', 0, 64)
	default:
		return strconv.FormatFloat(value, 'f', 1, 64)
	}
}

// UnitLabel returns the short display form of a unit identifier.
func UnitLabel(u units.Unit) string {
	switch u {
	case units.FluidOunce:
		return "fl oz"
	case units.Liter:
		return "L"
	default:
		return string(u)
	}
}

// QuantityText renders a quantity such as "1.5 cup".
func QuantityText(q units.Quantity) string {
	return FormatAmount(q.Value) + " " + UnitLabel(q.Unit)
}

// NutrientRow is one line of the nutrient table.
type NutrientRow struct {
	Section string
	Label   string
	Value   float64
	Unit    string
}

// NutrientRows lists the record in display order.
func NutrientRows(r nutrition.Record) []NutrientRow {
	return []NutrientRow{
		{"Energy", "Calories", r.Calories, "kcal"},
		{"Energy", "Energy", r.EnergyKJ, "kJ"},
		{"Macronutrients", "Protein", r.Protein, "g"},
		{"Macronutrients", "Carbohydrates", r.Carbs.Total, "g"},
		{"Macronutrients", "Fiber", r.Carbs.Fiber, "g"},
		{"Macronutrients", "Sugars", r.Carbs.Sugar, "g"},
		{"Macronutrients", "Added sugars", r.Carbs.AddedSugar, "g"},
		{"Macronutrients", "Fat", r.Fats.Total, "g"},
		{"Macronutrients", "Saturated fat", r.Fats.Saturated, "g"},
		{"Macronutrients", "Trans fat", r.Fats.Trans, "g"},
		{"Macronutrients", "Monounsaturated fat", r.Fats.MUFA, "g"},
		{"Macronutrients", "Polyunsaturated fat", r.Fats.PUFA, "g"},
		{"Macronutrients", "Omega-3 ALA", r.Fats.Omega3.ALA, "g"},
		{"Macronutrients", "Omega-3 EPA", r.Fats.Omega3.EPA, "g"},
		{"Macronutrients", "Omega-3 DHA", r.Fats.Omega3.DHA, "g"},
		{"Macronutrients", "Cholesterol", r.Cholesterol, "mg"},
		{"Macronutrients", "Water", r.Water, "g"},
		{"Minerals", "Sodium", r.Micronutrients.Sodium, "mg"},
		{"Minerals", "Potassium", r.Micronutrients.Potassium, "mg"},
		{"Minerals", "Calcium", r.Micronutrients.Calcium, "mg"},
		{"Minerals", "Iron", r.Micronutrients.Iron, "mg"},
		{"Minerals", "Magnesium", r.Micronutrients.Magnesium, "mg"},
		{"Minerals", "Phosphorus", r.Micronutrients.Phosphorus, "mg"},
		{"Minerals", "Zinc", r.Micronutrients.Zinc, "mg"},
		{"Minerals", "Iodine", r.Micronutrients.Iodine, "µg"},
		{"Minerals", "Selenium", r.Micronutrients.Selenium, "µg"},
		{"Minerals", "Copper", r.Micronutrients.Copper, "mg"},
		{"Vitamins", "Vitamin A", r.Vitamins.A, "µg"},
		{"Vitamins", "Vitamin D", r.Vitamins.D, "µg"},
		{"Vitamins", "Vitamin E", r.Vitamins.E, "mg"},
		{"Vitamins", "Vitamin K", r.Vitamins.K, "µg"},
		{"Vitamins", "Vitamin B6", r.Vitamins.B6, "mg"},
		{"Vitamins", "Vitamin B12", r.Vitamins.B12, "µg"},
		{"Vitamins", "Folate", r.Vitamins.Folate, "µg"},
		{"Amino acids", "Leucine", r.AminoAcids.Leucine, "g"},
		{"Amino acids", "Lysine", r.AminoAcids.Lysine, "g"},
		{"Amino acids", "Methionine", r.AminoAcids.Methionine, "g"},
		{"Amino acids", "Cystine", r.AminoAcids.Cystine, "g"},
		{"Other", "Choline", r.Choline, "mg"},
	}
}

func writeAll(w io.Writer, parts ...string) error {
	for _, part := range parts {
		if _, err := io.WriteString(w, part); err != nil {
			return err
		}
	}
	return nil
}
