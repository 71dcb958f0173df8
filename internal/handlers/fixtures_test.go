package handlers

import (
	"nutrisync/internal/nutrition"
	"nutrisync/internal/units"
)

func oatsItem() nutrition.FoodItem {
	item := nutrition.FoodItem{
		FDCID:        173904,
		Description:  "Oats, rolled",
		FoodCategory: "Cereal Grains and Pasta",
		Serving:      nutrition.ServingSpec{Quantity: 40, Unit: units.Gram},
	}
	item.Nutrients.Calories = 150
	item.Nutrients.Protein = 5
	item.Nutrients.Carbs.Total = 27
	return item
}
