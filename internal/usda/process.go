package usda

import (
	"strings"

	"nutrisync/internal/nutrition"
	"nutrisync/internal/units"
)

// FoodData Central reports nutrient amounts per 100 g unless a serving size
// is given.
const defaultServingQuantity = 100

// nutrientPaths maps USDA nutrient numbers onto record leaves. Fat total is
// handled separately because it falls back from 204 to the NLEA value 298.
var nutrientPaths = map[string]string{
	"268": "energyKj",
	"255": "water",
	"203": "protein",
	"205": "carbs.total",
	"291": "carbs.fiber",
	"269": "carbs.sugar",
	"539": "carbs.addedSugar",
	"606": "fats.saturated",
	"605": "fats.trans",
	"645": "fats.mufa",
	"646": "fats.pufa",
	"851": "fats.omega3.ala",
	"629": "fats.omega3.epa",
	"631": "fats.omega3.dha",
	"601": "cholesterol",
	"307": "micronutrients.sodium",
	"306": "micronutrients.potassium",
	"301": "micronutrients.calcium",
	"303": "micronutrients.iron",
	"304": "micronutrients.magnesium",
	"305": "micronutrients.phosphorus",
	"309": "micronutrients.zinc",
	"314": "micronutrients.iodine",
	"317": "micronutrients.selenium",
	"312": "micronutrients.copper",
	"320": "vitamins.a",
	"328": "vitamins.d",
	"323": "vitamins.e",
	"430": "vitamins.k",
	"415": "vitamins.b6",
	"418": "vitamins.b12",
	"417": "vitamins.folate",
	"504": "aminoAcids.leucine",
	"505": "aminoAcids.lysine",
	"506": "aminoAcids.methionine",
	"526": "aminoAcids.cystine",
	"421": "choline",
}

var servingUnitAliases = map[string]units.Unit{
	"grm": units.Gram,
	"mlt": units.Milliliter,
	"mg":  units.Milligram,
}

// Process turns a FoodData Central record into a food item. Nutrients that
// the record does not report are zero.
func Process(details FoodDetails) nutrition.FoodItem {
	byNumber := make(map[string]float64, len(details.FoodNutrients))
	for _, n := range details.FoodNutrients {
		number := n.number()
		if number == "" {
			continue
		}
		if _, seen := byNumber[number]; !seen {
			byNumber[number] = n.amount()
		}
	}

	var record nutrition.Record
	for number, path := range nutrientPaths {
		record.Set(path, byNumber[number])
	}
	record.Calories = calories(details.FoodNutrients, byNumber)
	record.Fats.Total = byNumber["204"]
	if record.Fats.Total == 0 {
		record.Fats.Total = byNumber["298"]
	}

	return nutrition.FoodItem{
		FDCID:        details.FDCID,
		Description:  strings.TrimSpace(details.Description),
		BrandOwner:   strings.TrimSpace(details.BrandOwner),
		BrandName:    strings.TrimSpace(details.BrandName),
		DataType:     strings.TrimSpace(details.DataType),
		FoodCategory: strings.TrimSpace(string(details.FoodCategory)),
		Ingredients:  strings.TrimSpace(details.Ingredients),
		Serving:      serving(details),
		Nutrients:    record,
	}
}

func calories(nutrients []FoodNutrient, byNumber map[string]float64) float64 {
	if v, ok := byNumber["208"]; ok {
		return v
	}
	for _, n := range nutrients {
		if strings.Contains(n.Nutrient.Name, "Energy") && strings.EqualFold(n.Nutrient.UnitName, "kcal") {
			return n.amount()
		}
	}
	return 0
}

func serving(details FoodDetails) nutrition.ServingSpec {
	spec := nutrition.ServingSpec{
		Quantity: defaultServingQuantity,
		Unit:     units.Gram,
		Label:    strings.TrimSpace(details.HouseholdServingFullText),
	}
	if details.ServingSize <= 0 {
		return spec
	}
	unit, ok := parseServingUnit(details.ServingSizeUnit)
	if !ok {
		return spec
	}
	spec.Quantity = details.ServingSize
	spec.Unit = unit
	return spec
}

func parseServingUnit(raw string) (units.Unit, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if unit, ok := servingUnitAliases[key]; ok {
		return unit, true
	}
	unit, err := units.Parse(key)
	if err != nil {
		return "", false
	}
	return unit, true
}
