package workspace

import "strings"

type foodGroupRule struct {
	name     string
	keywords []string
}

// Rules are checked in order; the first match wins, so "pepper" lands in
// Vegetables before it can reach Herbs & Spices.
var foodGroupRules = []foodGroupRule{
	{"Fruits", []string{"fruit", "berry", "citrus", "apple", "banana", "grape"}},
	{"Vegetables", []string{"vegetable", "lettuce", "carrot", "tomato", "onion", "pepper", "broccoli", "spinach"}},
	{"Meat", []string{"beef", "pork", "chicken", "turkey", "lamb", "meat", "poultry"}},
	{"Seafood", []string{"fish", "seafood", "salmon", "tuna", "shrimp", "crab", "lobster"}},
	{"Tree Nuts", []string{"nut", "almond", "walnut", "pecan", "cashew", "pistachio"}},
	{"Legumes", []string{"bean", "pea", "lentil", "chickpea", "legume", "soy"}},
	{"Grains", []string{"grain", "cereal", "bread", "rice", "wheat", "oat", "pasta"}},
	{"Dairy", []string{"dairy", "milk", "cheese", "yogurt", "butter", "cream"}},
	{"Herbs & Spices", []string{"spice", "herb", "seasoning", "pepper", "salt"}},
}

// FoodGroup maps a FoodData Central category onto the workspace's food group
// options. It returns "" when nothing matches.
func FoodGroup(category string) string {
	lower := strings.ToLower(strings.TrimSpace(category))
	if lower == "" {
		return ""
	}
	for _, rule := range foodGroupRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.name
			}
		}
	}
	return ""
}
