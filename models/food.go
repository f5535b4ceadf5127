package models

import "gorm.io/gorm"

// Food is a catalog entry with fixed per-serving nutrient values.
// Reference data; this backend never mutates it.
type Food struct {
	gorm.Model
	Code         *int64
	Name         string `gorm:"not null"`
	CategoryCode *int
	ServingSize  float64 `gorm:"not null"`
	Calorie      float64 `gorm:"not null"`
	Carbohydrate float64 `gorm:"not null"`
	Protein      float64 `gorm:"not null"`
	Fat          float64 `gorm:"not null"`
	Sugars       float64 `gorm:"not null"`
	DietaryFiber float64 `gorm:"not null"`
	Sodium       float64 `gorm:"not null"`
	MemberID     *uint // set for member-registered foods, nil for the shared catalog
}
