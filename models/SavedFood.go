package models

import (
	"gorm.io/gorm"

	"nutrisync/internal/nutrition"
)

// SavedFood is a food page in a user's workspace. Nutrient values are stored
// already rounded for the workspace and are valid for the stored serving.
type SavedFood struct {
	gorm.Model
	PageID          string           `gorm:"type:varchar(36);uniqueIndex;not null" json:"page_id"`
	OwnerID         uint             `gorm:"not null;index" json:"owner_id"`
	Owner           *User            `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	FDCID           int              `gorm:"column:fdc_id;index" json:"fdc_id"`
	Description     string           `gorm:"not null" json:"description"`
	Brand           string           `json:"brand"`
	FoodCategory    string           `json:"food_category"`
	FoodGroup       string           `gorm:"type:varchar(32)" json:"food_group"`
	DataType        string           `json:"data_type"`
	Ingredients     string           `gorm:"type:text" json:"ingredients"`
	ServingQuantity float64          `gorm:"not null" json:"serving_quantity"`
	ServingUnit     string           `gorm:"type:varchar(8);not null" json:"serving_unit"`
	ServingLabel    string           `json:"serving_label"`
	Nutrients       nutrition.Record `gorm:"serializer:json;type:text" json:"nutrients"`
}
