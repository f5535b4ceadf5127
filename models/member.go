package models

import (
	"gorm.io/gorm"
)

// Activity tiers stored on the member record.
const (
	ActivityNotActive       = "NOT_ACTIVE"
	ActivityLightlyActive   = "LIGHTLY_ACTIVE"
	ActivityNormalActive    = "NORMAL_ACTIVE"
	ActivityVeryActive      = "VERY_ACTIVE"
	ActivityExtremelyActive = "EXTREMELY_ACTIVE"
)

// Gender codes on the member record: 0 = male, anything else = female.
const (
	GenderMale   = 0
	GenderFemale = 1
)

// Member is owned by the account service; this backend only reads it.
// The physical attributes are nullable because onboarding fills them in later.
type Member struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null"`
	Password     string `gorm:"not null"`
	Role         string `gorm:"not null;default:MEMBER"`
	Gender       *int
	Age          *int
	Height       *float64
	Weight       *float64
	TargetWeight *float64
	Activity     *string
	Etc          string
	Checked      bool `gorm:"not null;default:false"`
}
