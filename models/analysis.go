package models

import (
	"time"

	"gorm.io/gorm"
)

// AnalysisStatus is the single live status row per member. It decouples the
// nightly analysis job from reads: a member is readable only when a run has
// completed and no newer run is in flight.
type AnalysisStatus struct {
	gorm.Model
	MemberID     uint `gorm:"uniqueIndex;not null"`
	IsAnalyzed   bool `gorm:"not null;default:false"`
	IsPending    bool `gorm:"not null;default:true"`
	AnalysisDate time.Time
}

// EatHabits is a persisted diet-analysis result, keyed by the status row that
// produced it rather than by member.
type EatHabits struct {
	gorm.Model
	AnalysisStatusID   uint   `gorm:"not null;index"`
	WeightPrediction   string `gorm:"type:text;not null"`
	AdviceCarbohydrate string `gorm:"type:text;not null"`
	AdviceProtein      string `gorm:"type:text;not null"`
	AdviceFat          string `gorm:"type:text;not null"`
	SynthesisAdvice    string `gorm:"type:text;not null"`
	AvgCalorie         float64
}
