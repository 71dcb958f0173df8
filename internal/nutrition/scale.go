// Package nutrition holds food items and rescales their nutrient records
// when the serving size changes.
package nutrition

import (
	"errors"
	"fmt"

	"nutrisync/internal/units"
)

// ErrInvalidServingSpecification reports a serving that cannot anchor a scale
// ratio: a non-positive quantity or a unit outside the vocabulary.
var ErrInvalidServingSpecification = errors.New("invalid serving specification")

// ServingSpec is the amount a nutrient record is valid for. Label carries a
// household description such as "1 slice" and is never used in the math.
type ServingSpec struct {
	Quantity float64    `json:"quantity"`
	Unit     units.Unit `json:"unit"`
	Label    string     `json:"label,omitempty"`
}

// Validate checks that s can be used as the reference of a scale ratio.
func (s ServingSpec) Validate() error {
	if !(s.Quantity > 0) {
		return fmt.Errorf("%w: quantity %v must be greater than zero", ErrInvalidServingSpecification, s.Quantity)
	}
	if !s.Unit.Valid() {
		return fmt.Errorf("%w: unknown unit %q", ErrInvalidServingSpecification, s.Unit)
	}
	return nil
}

// FoodItem couples a serving with the nutrients it contains.
type FoodItem struct {
	FDCID        int    `json:"id"`
	Description  string `json:"description"`
	BrandOwner   string `json:"brandOwner,omitempty"`
	BrandName    string `json:"brandName,omitempty"`
	DataType     string `json:"dataType,omitempty"`
	FoodCategory string `json:"foodCategory,omitempty"`
	Ingredients  string `json:"ingredients,omitempty"`

	Serving   ServingSpec `json:"serving"`
	Nutrients Record      `json:"nutrients"`

	ServingMetric   *units.Quantity `json:"servingMetric,omitempty"`
	ServingImperial *units.Quantity `json:"servingImperial,omitempty"`
}

// Ratio returns the multiplier that turns nutrients valid for from into
// nutrients valid for newQty of newUnit. Both amounts are first projected onto
// their own canonical unit; density bridges families and defaults to water.
func Ratio(from ServingSpec, newQty float64, newUnit units.Unit, density float64) (float64, error) {
	if err := from.Validate(); err != nil {
		return 0, err
	}

	originalBase, err := canonicalFactor(from.Unit, density)
	if err != nil {
		return 0, err
	}
	newBase, err := canonicalFactor(newUnit, density)
	if err != nil {
		return 0, err
	}

	return (newQty * newBase) / (from.Quantity * originalBase), nil
}

func canonicalFactor(u units.Unit, density float64) (float64, error) {
	canonical, err := units.Canonical(u)
	if err != nil {
		return 0, err
	}
	return units.Convert(1, u, canonical, density)
}

// Scale returns a copy of item whose serving is newQty of newUnit and whose
// nutrients have been rescaled to match. item is never modified.
func Scale(item FoodItem, newQty float64, newUnit units.Unit, density float64) (FoodItem, error) {
	if item.Serving.Quantity == newQty && item.Serving.Unit == newUnit {
		if err := item.Serving.Validate(); err != nil {
			return FoodItem{}, err
		}
		return item.clone(), nil
	}

	ratio, err := Ratio(item.Serving, newQty, newUnit, density)
	if err != nil {
		return FoodItem{}, err
	}

	scaled := item.clone()
	scaled.Serving.Quantity = newQty
	scaled.Serving.Unit = newUnit
	scaled.Nutrients = item.Nutrients.Scaled(ratio)
	scaled.ServingMetric = nil
	scaled.ServingImperial = nil
	return scaled, nil
}

// WithDualServing fills the metric and imperial equivalents of the serving
// for display.
func WithDualServing(item FoodItem) FoodItem {
	out := item.clone()
	metric := units.ToMetric(item.Serving.Quantity, item.Serving.Unit)
	imperial := units.ToImperial(item.Serving.Quantity, item.Serving.Unit)
	out.ServingMetric = &metric
	out.ServingImperial = &imperial
	return out
}

func (f FoodItem) clone() FoodItem {
	out := f
	if f.ServingMetric != nil {
		m := *f.ServingMetric
		out.ServingMetric = &m
	}
	if f.ServingImperial != nil {
		i := *f.ServingImperial
		out.ServingImperial = &i
	}
	return out
}
