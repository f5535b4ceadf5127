package utils

import "github.com/JNU-econovation/EATceed-AI/models"

// Activity multipliers for TDEE, keyed by the member's activity tier.
var activityMultipliers = map[string]float64{
	models.ActivityNotActive:       1.2,
	models.ActivityLightlyActive:   1.3,
	models.ActivityNormalActive:    1.5,
	models.ActivityVeryActive:      1.7,
	models.ActivityExtremelyActive: 1.9,
}

// ActivityMultiplier maps an activity tier to its TDEE multiplier. Unknown or
// empty tiers fall back to the sedentary multiplier.
func ActivityMultiplier(tier string) float64 {
	if m, ok := activityMultipliers[tier]; ok {
		return m
	}
	return 1.2
}

// BMR computes the Harris-Benedict basal metabolic rate. Gender code 0 is
// male, anything else female. Weight in kg, height in cm.
func BMR(gender int, weightKg, heightCm float64, ageYears int) float64 {
	if gender == models.GenderMale {
		return 66 + 13.7*weightKg + 5*heightCm - 6.8*float64(ageYears)
	}
	return 655 + 9.6*weightKg + 1.7*heightCm - 4.7*float64(ageYears)
}

// TDEE scales a basal rate by the activity multiplier.
func TDEE(bmr, activity float64) float64 {
	return bmr * activity
}

// GenderLabel converts the 0/1 gender code to the label the advice generator
// was prompted with.
func GenderLabel(gender int) string {
	if gender == models.GenderMale {
		return "Male"
	}
	return "Female"
}

// AvgNutrition holds the eight averaged per-food-entry nutrient values over
// the trailing week.
type AvgNutrition struct {
	Calorie      float64 `json:"calorie"`
	Carbohydrate float64 `json:"carbohydrate"`
	Fat          float64 `json:"fat"`
	Protein      float64 `json:"protein"`
	ServingSize  float64 `json:"serving_size"`
	Sugars       float64 `json:"sugars"`
	DietaryFiber float64 `json:"dietary_fiber"`
	Sodium       float64 `json:"sodium"`
}

// IsZero reports whether every nutrient field is zero, i.e. the member has no
// usable log data for the window.
func (a AvgNutrition) IsZero() bool {
	return a.Calorie == 0 && a.Carbohydrate == 0 && a.Fat == 0 && a.Protein == 0 &&
		a.ServingSize == 0 && a.Sugars == 0 && a.DietaryFiber == 0 && a.Sodium == 0
}

// AnalysisPayload is the fixed feature set handed to the advice generator.
// Field order matters: the prompts were written against this exact shape.
type AnalysisPayload struct {
	Gender                string  `json:"gender"`
	Age                   int     `json:"age"`
	Height                float64 `json:"height"`
	Weight                float64 `json:"weight"`
	ServingSize           float64 `json:"serving_size"`
	Calorie               float64 `json:"calorie"`
	Protein               float64 `json:"protein"`
	Fat                   float64 `json:"fat"`
	Carbohydrate          float64 `json:"carbohydrate"`
	DietaryFiber          float64 `json:"dietary_fiber"`
	Sugars                float64 `json:"sugars"`
	Sodium                float64 `json:"sodium"`
	PhysicalActivityIndex float64 `json:"physical_activity_index"`
	TDEE                  float64 `json:"tdee"`
}

// BodyInfo is the subset of member attributes the metabolic formulas need.
type BodyInfo struct {
	Gender                int
	Age                   int
	Height                float64
	Weight                float64
	PhysicalActivityIndex float64
}

// AssemblePayload combines body attributes with the averaged nutrition into
// the advice-generator feature set, computing BMR and TDEE on the way.
func AssemblePayload(body BodyInfo, avg AvgNutrition) AnalysisPayload {
	bmr := BMR(body.Gender, body.Weight, body.Height, body.Age)
	return AnalysisPayload{
		Gender:                GenderLabel(body.Gender),
		Age:                   body.Age,
		Height:                body.Height,
		Weight:                body.Weight,
		ServingSize:           avg.ServingSize,
		Calorie:               avg.Calorie,
		Protein:               avg.Protein,
		Fat:                   avg.Fat,
		Carbohydrate:          avg.Carbohydrate,
		DietaryFiber:          avg.DietaryFiber,
		Sugars:                avg.Sugars,
		Sodium:                avg.Sodium,
		PhysicalActivityIndex: body.PhysicalActivityIndex,
		TDEE:                  TDEE(bmr, body.PhysicalActivityIndex),
	}
}
