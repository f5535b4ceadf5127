package models

import (
	"gorm.io/gorm"
)

// Meal is one logged eating event (breakfast/lunch/…).
type Meal struct {
	gorm.Model
	MemberID uint   // FK → members.id
	Type     string `gorm:"not null"`
	Foods    []MealFood
}

// MealFood links a meal to a catalog food with a consumed amount. The amount
// is either a serving multiple or a gram quantity; Multiple wins when both
// are set.
type MealFood struct {
	gorm.Model
	MealID   uint
	FoodID   uint
	Multiple *float64
	Grams    *float64
}

// EffectiveMultiplier resolves the consumed amount against the food's serving
// size. Defaults to one serving when neither field is set.
func (mf *MealFood) EffectiveMultiplier(servingSize float64) float64 {
	if mf.Multiple != nil {
		return *mf.Multiple
	}
	if mf.Grams != nil && servingSize > 0 {
		return *mf.Grams / servingSize
	}
	return 1
}
