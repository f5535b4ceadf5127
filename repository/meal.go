package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/JNU-econovation/EATceed-AI/models"
)

// MealRepository reads meal logs and the food catalog for the aggregation
// window. Read-only: meal creation belongs to the logging service.
type MealRepository struct {
	db *gorm.DB
}

func NewMealRepository(db *gorm.DB) *MealRepository {
	return &MealRepository{db: db}
}

// MealsBetween returns a member's meals created in [from, to).
func (r *MealRepository) MealsBetween(ctx context.Context, memberID uint, from, to time.Time) ([]models.Meal, error) {
	var meals []models.Meal
	if err := r.db.WithContext(ctx).
		Where("member_id = ? AND created_at >= ? AND created_at < ?", memberID, from, to).
		Order("created_at ASC").
		Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

// MealFoods returns the food entries linked to one meal.
func (r *MealRepository) MealFoods(ctx context.Context, mealID uint) ([]models.MealFood, error) {
	var foods []models.MealFood
	if err := r.db.WithContext(ctx).
		Where("meal_id = ?", mealID).
		Find(&foods).Error; err != nil {
		return nil, err
	}
	return foods, nil
}

// GetFood returns (nil, nil) when the catalog entry does not exist.
func (r *MealRepository) GetFood(ctx context.Context, foodID uint) (*models.Food, error) {
	var food models.Food
	if err := r.db.WithContext(ctx).First(&food, foodID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &food, nil
}
