package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/JNU-econovation/EATceed-AI/models"
)

// MemberRepository reads member records. Members are owned by the account
// service; nothing here writes them.
type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// GetMember returns (nil, nil) when the member does not exist.
func (r *MemberRepository) GetMember(ctx context.Context, memberID uint) (*models.Member, error) {
	var member models.Member
	if err := r.db.WithContext(ctx).First(&member, memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

// AllMemberIDs lists every registered member for the batch sweep.
func (r *MemberRepository) AllMemberIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Order("id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
