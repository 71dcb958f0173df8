package usda

import (
	"bytes"
	"encoding/json"
)

// SearchResponse is the body of GET /foods/search.
type SearchResponse struct {
	Foods       []SearchFood `json:"foods"`
	TotalHits   int          `json:"totalHits"`
	CurrentPage int          `json:"currentPage"`
	TotalPages  int          `json:"totalPages"`
}

// SearchFood is a single search hit.
type SearchFood struct {
	FDCID           int              `json:"fdcId"`
	Description     string           `json:"description"`
	DataType        string           `json:"dataType"`
	GTINUPC         string           `json:"gtinUpc,omitempty"`
	PublishedDate   string           `json:"publishedDate,omitempty"`
	BrandOwner      string           `json:"brandOwner,omitempty"`
	BrandName       string           `json:"brandName,omitempty"`
	Ingredients     string           `json:"ingredients,omitempty"`
	FoodCategory    string           `json:"foodCategory,omitempty"`
	ServingSize     float64          `json:"servingSize,omitempty"`
	ServingSizeUnit string           `json:"servingSizeUnit,omitempty"`
	FoodNutrients   []SearchNutrient `json:"foodNutrients,omitempty"`
}

// SearchNutrient is the flattened nutrient shape used by search hits.
type SearchNutrient struct {
	NutrientID     int     `json:"nutrientId"`
	NutrientName   string  `json:"nutrientName"`
	NutrientNumber string  `json:"nutrientNumber"`
	UnitName       string  `json:"unitName"`
	Value          float64 `json:"value"`
}

// FoodDetails is the body of GET /food/{fdcId}.
type FoodDetails struct {
	FDCID                    int            `json:"fdcId"`
	Description              string         `json:"description"`
	DataType                 string         `json:"dataType,omitempty"`
	BrandOwner               string         `json:"brandOwner,omitempty"`
	BrandName                string         `json:"brandName,omitempty"`
	Ingredients              string         `json:"ingredients,omitempty"`
	FoodCategory             Category       `json:"foodCategory,omitempty"`
	ServingSize              float64        `json:"servingSize,omitempty"`
	ServingSizeUnit          string         `json:"servingSizeUnit,omitempty"`
	HouseholdServingFullText string         `json:"householdServingFullText,omitempty"`
	FoodNutrients            []FoodNutrient `json:"foodNutrients"`
}

// FoodNutrient is one entry of a food's nutrient list. Search results and
// abridged records report the number and value at the top level, full
// records nest them under Nutrient.
type FoodNutrient struct {
	Amount         float64  `json:"amount"`
	Value          float64  `json:"value,omitempty"`
	Number         string   `json:"number,omitempty"`
	NutrientNumber string   `json:"nutrientNumber,omitempty"`
	Nutrient       Nutrient `json:"nutrient"`
}

// Nutrient describes what a FoodNutrient measures.
type Nutrient struct {
	ID       int    `json:"id"`
	Number   string `json:"number"`
	Name     string `json:"name"`
	Rank     int    `json:"rank,omitempty"`
	UnitName string `json:"unitName"`
}

// Category holds a food category that FoodData Central reports either as a
// plain string or as an object with a description.
type Category string

func (c *Category) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Category(s)
		return nil
	}
	var obj struct {
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*c = Category(obj.Description)
	return nil
}

func (n FoodNutrient) number() string {
	switch {
	case n.Nutrient.Number != "":
		return n.Nutrient.Number
	case n.Number != "":
		return n.Number
	default:
		return n.NutrientNumber
	}
}

func (n FoodNutrient) amount() float64 {
	if n.Amount != 0 {
		return n.Amount
	}
	return n.Value
}
