package usda

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"nutrisync/internal/nutrition"
	"nutrisync/internal/units"
)

func nutrient(number string, amount float64) FoodNutrient {
	return FoodNutrient{Amount: amount, Nutrient: Nutrient{Number: number}}
}

func TestProcessMapsNutrientNumbers(t *testing.T) {
	t.Parallel()

	details := FoodDetails{
		FDCID:        173904,
		Description:  " Oats ",
		BrandOwner:   "Harvest Mill",
		DataType:     "Foundation",
		FoodCategory: "Cereal Grains and Pasta",
		FoodNutrients: []FoodNutrient{
			nutrient("208", 379),
			nutrient("203", 13.2),
			nutrient("205", 67.7),
			nutrient("291", 10.1),
			nutrient("298", 6.5),
			nutrient("851", 0.11),
			nutrient("307", 6),
			nutrient("418", 0),
			nutrient("504", 1.01),
			nutrient("421", 40.4),
			{Value: 2.5, NutrientNumber: "255"},
		},
	}

	item := Process(details)

	want := nutrition.Record{}
	want.Calories = 379
	want.Protein = 13.2
	want.Water = 2.5
	want.Carbs.Total = 67.7
	want.Carbs.Fiber = 10.1
	want.Fats.Total = 6.5
	want.Fats.Omega3.ALA = 0.11
	want.Micronutrients.Sodium = 6
	want.AminoAcids.Leucine = 1.01
	want.Choline = 40.4
	if diff := cmp.Diff(want, item.Nutrients); diff != "" {
		t.Fatalf("nutrients mismatch (-want +got):\n%s", diff)
	}
	if item.Description != "Oats" || item.FDCID != 173904 || item.FoodCategory != "Cereal Grains and Pasta" {
		t.Fatalf("unexpected identity fields: %+v", item)
	}
	if item.Serving != (nutrition.ServingSpec{Quantity: 100, Unit: units.Gram}) {
		t.Fatalf("expected default 100 g serving, got %+v", item.Serving)
	}
}

func TestProcessPrefersFatOver298AndEnergyFallback(t *testing.T) {
	t.Parallel()

	details := FoodDetails{
		FoodNutrients: []FoodNutrient{
			nutrient("204", 3),
			nutrient("298", 9),
			{Amount: 418, Nutrient: Nutrient{Number: "268", Name: "Energy", UnitName: "kJ"}},
			{Amount: 100, Nutrient: Nutrient{Number: "957", Name: "Energy (Atwater General Factors)", UnitName: "KCAL"}},
		},
	}

	item := Process(details)
	if item.Nutrients.Fats.Total != 3 {
		t.Fatalf("Fats.Total = %v, want 3", item.Nutrients.Fats.Total)
	}
	if item.Nutrients.Calories != 100 {
		t.Fatalf("Calories = %v, want 100", item.Nutrients.Calories)
	}
	if item.Nutrients.EnergyKJ != 418 {
		t.Fatalf("EnergyKJ = %v, want 418", item.Nutrients.EnergyKJ)
	}
}

func TestProcessServing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		size  float64
		unit  string
		label string
		want  nutrition.ServingSpec
	}{
		{"grams", 30, "GRM", "1 cup", nutrition.ServingSpec{Quantity: 30, Unit: units.Gram, Label: "1 cup"}},
		{"millilitres", 240, "MLT", "", nutrition.ServingSpec{Quantity: 240, Unit: units.Milliliter}},
		{"lowercase", 12, "g", "", nutrition.ServingSpec{Quantity: 12, Unit: units.Gram}},
		{"unsupported", 1, "piece", "1 piece", nutrition.ServingSpec{Quantity: 100, Unit: units.Gram, Label: "1 piece"}},
		{"missing", 0, "", "", nutrition.ServingSpec{Quantity: 100, Unit: units.Gram}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			item := Process(FoodDetails{ServingSize: tt.size, ServingSizeUnit: tt.unit, HouseholdServingFullText: tt.label})
			if item.Serving != tt.want {
				t.Fatalf("Serving = %+v, want %+v", item.Serving, tt.want)
			}
		})
	}
}

func TestCategoryUnmarshal(t *testing.T) {
	t.Parallel()

	var payload struct {
		A Category `json:"a"`
		B Category `json:"b"`
		C Category `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a":"Beverages","b":{"description":"Spices and Herbs"},"c":null}`), &payload); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if payload.A != "Beverages" || payload.B != "Spices and Herbs" || payload.C != "" {
		t.Fatalf("unexpected categories: %+v", payload)
	}
}
