package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/JNU-econovation/EATceed-AI/apperrors"
	"github.com/JNU-econovation/EATceed-AI/logger"
	"github.com/JNU-econovation/EATceed-AI/models"
	"github.com/JNU-econovation/EATceed-AI/utils"
)

// MemberStore reads member records.
type MemberStore interface {
	GetMember(ctx context.Context, memberID uint) (*models.Member, error)
	AllMemberIDs(ctx context.Context) ([]uint, error)
}

// MealStore reads meal logs and the food catalog.
type MealStore interface {
	MealsBetween(ctx context.Context, memberID uint, from, to time.Time) ([]models.Meal, error)
	MealFoods(ctx context.Context, mealID uint) ([]models.MealFood, error)
	GetFood(ctx context.Context, foodID uint) (*models.Food, error)
}

// NutritionService reduces a member's trailing-week meal log into per-entry
// nutrient averages and assembles the advice-generator payload.
type NutritionService struct {
	members MemberStore
	meals   MealStore
	now     func() time.Time
}

func NewNutritionService(members MemberStore, meals MealStore) *NutritionService {
	return &NutritionService{
		members: members,
		meals:   meals,
		now:     time.Now,
	}
}

// weekWindow returns [previous Monday 00:00, this Monday 00:00) relative to
// now, with Monday as the start of the week.
func weekWindow(now time.Time) (time.Time, time.Time) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	// time.Weekday counts from Sunday; shift so Monday is day zero.
	sinceMonday := (int(day.Weekday()) + 6) % 7
	thisMonday := day.AddDate(0, 0, -sinceMonday)
	return thisMonday.AddDate(0, 0, -7), thisMonday
}

// WeeklyAverage computes the eight per-food-entry nutrient averages over the
// previous ISO week. A window with no meals yields the zero struct; that is a
// designed default, not an error.
func (s *NutritionService) WeeklyAverage(ctx context.Context, memberID uint) (utils.AvgNutrition, error) {
	var total utils.AvgNutrition

	member, err := s.members.GetMember(ctx, memberID)
	if err != nil {
		return total, apperrors.NewDatabaseError("get member", err)
	}
	if member == nil {
		return total, apperrors.NewUserDataError("member does not exist")
	}

	from, to := weekWindow(s.now())
	meals, err := s.meals.MealsBetween(ctx, memberID, from, to)
	if err != nil {
		return total, apperrors.NewDatabaseError("list meals", err)
	}

	totalFoods := 0
	for _, meal := range meals {
		mealFoods, err := s.meals.MealFoods(ctx, meal.ID)
		if err != nil {
			return total, apperrors.NewDatabaseError("list meal foods", err)
		}
		if len(mealFoods) == 0 {
			// A meal without food entries is a data-integrity fault, not a
			// skippable row.
			return total, apperrors.NewUserDataError("meal has no linked food entries")
		}

		for _, mf := range mealFoods {
			food, err := s.meals.GetFood(ctx, mf.FoodID)
			if err != nil {
				return total, apperrors.NewDatabaseError("get food", err)
			}
			if food == nil {
				logger.Warn("meal references unknown food",
					zap.Uint("meal_id", meal.ID), zap.Uint("food_id", mf.FoodID))
				continue
			}

			multiplier := mf.EffectiveMultiplier(food.ServingSize)
			total.Calorie += food.Calorie * multiplier
			total.Carbohydrate += food.Carbohydrate * multiplier
			total.Fat += food.Fat * multiplier
			total.Protein += food.Protein * multiplier
			total.ServingSize += food.ServingSize * multiplier
			total.Sugars += food.Sugars * multiplier
			total.DietaryFiber += food.DietaryFiber * multiplier
			total.Sodium += food.Sodium * multiplier
			totalFoods++
		}
	}

	if totalFoods == 0 {
		return total, nil
	}

	n := float64(totalFoods)
	total.Calorie /= n
	total.Carbohydrate /= n
	total.Fat /= n
	total.Protein /= n
	total.ServingSize /= n
	total.Sugars /= n
	total.DietaryFiber /= n
	total.Sodium /= n
	return total, nil
}

// BodyInfo reads the member attributes the metabolic formulas need. Any
// missing required field means the member cannot be analyzed.
func (s *NutritionService) BodyInfo(ctx context.Context, memberID uint) (utils.BodyInfo, error) {
	var info utils.BodyInfo

	member, err := s.members.GetMember(ctx, memberID)
	if err != nil {
		return info, apperrors.NewDatabaseError("get member", err)
	}
	if member == nil {
		return info, apperrors.NewUserDataError("member does not exist")
	}
	if member.Gender == nil || member.Age == nil || member.Height == nil || member.Weight == nil {
		return info, apperrors.NewUserDataError("member body information is incomplete")
	}

	activity := ""
	if member.Activity != nil {
		activity = *member.Activity
	}

	info = utils.BodyInfo{
		Gender:                *member.Gender,
		Age:                   *member.Age,
		Height:                *member.Height,
		Weight:                *member.Weight,
		PhysicalActivityIndex: utils.ActivityMultiplier(activity),
	}
	return info, nil
}

// UserPayload assembles the full advice-generator feature set for one member
// and returns the averaged calorie figure alongside it. A member whose week
// aggregates to zero nutrition has nothing to analyze.
func (s *NutritionService) UserPayload(ctx context.Context, memberID uint) (utils.AnalysisPayload, float64, error) {
	body, err := s.BodyInfo(ctx, memberID)
	if err != nil {
		return utils.AnalysisPayload{}, 0, err
	}

	avg, err := s.WeeklyAverage(ctx, memberID)
	if err != nil {
		return utils.AnalysisPayload{}, 0, err
	}
	if avg.IsZero() {
		return utils.AnalysisPayload{}, 0, apperrors.NewUserDataError("not enough meal data to analyze")
	}

	return utils.AssemblePayload(body, avg), avg.Calorie, nil
}
