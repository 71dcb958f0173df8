package models

import (
	"strings"

	"gorm.io/gorm"
)

const (
	DisplayMetric   = "metric"
	DisplayImperial = "imperial"
	DisplayBoth     = "both"

	// DefaultDisplaySystem shows the serving in both systems.
	DefaultDisplaySystem = DisplayBoth
)

// User represents an account that owns saved foods.
type User struct {
	gorm.Model
	Email         string `gorm:"uniqueIndex;not null"`
	PasswordHash  string `gorm:"not null"`
	Name          string
	DisplaySystem string `gorm:"type:varchar(16);default:both"`
}

// ValidDisplaySystem reports whether value is a supported serving display preference.
func ValidDisplaySystem(value string) bool {
	switch value {
	case DisplayMetric, DisplayImperial, DisplayBoth:
		return true
	}
	return false
}

// NormalizeDisplaySystem trims value and falls back to the default when it is unsupported.
func NormalizeDisplaySystem(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if ValidDisplaySystem(value) {
		return value
	}
	return DefaultDisplaySystem
}
