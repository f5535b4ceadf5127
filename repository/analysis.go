package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/JNU-econovation/EATceed-AI/models"
)

// AnalysisRepository persists analysis status rows and their results. Status
// transitions for one member go through single statements or a transaction so
// a concurrent guarded read never observes a torn state.
type AnalysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// GetStatus returns (nil, nil) when the member has no status row yet.
func (r *AnalysisRepository) GetStatus(ctx context.Context, memberID uint) (*models.AnalysisStatus, error) {
	var status models.AnalysisStatus
	if err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		First(&status).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &status, nil
}

// CreateStatus inserts the lazily-created first status row for a member.
func (r *AnalysisRepository) CreateStatus(ctx context.Context, status *models.AnalysisStatus) error {
	return r.db.WithContext(ctx).Create(status).Error
}

// UpdateStatus writes the flag fields of an existing status row.
func (r *AnalysisRepository) UpdateStatus(ctx context.Context, status *models.AnalysisStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.AnalysisStatus{}).
		Where("id = ?", status.ID).
		Updates(map[string]interface{}{
			"is_pending":    status.IsPending,
			"is_analyzed":   status.IsAnalyzed,
			"analysis_date": status.AnalysisDate,
		}).Error
}

// SaveResult completes a run in one transaction: the result row is inserted
// and the status flipped to analyzed/not-pending together, so a read either
// sees the previous completed state or the new one, never a half-write.
func (r *AnalysisRepository) SaveResult(ctx context.Context, memberID uint, analyzedAt time.Time, habits *models.EatHabits) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var status models.AnalysisStatus
		if err := tx.Where("member_id = ?", memberID).First(&status).Error; err != nil {
			return fmt.Errorf("analysis status not found for member %d: %w", memberID, err)
		}

		habits.AnalysisStatusID = status.ID
		if err := tx.Create(habits).Error; err != nil {
			return err
		}

		return tx.Model(&models.AnalysisStatus{}).
			Where("id = ?", status.ID).
			Updates(map[string]interface{}{
				"is_pending":    false,
				"is_analyzed":   true,
				"analysis_date": analyzedAt,
			}).Error
	})
}

// LatestResult returns the newest result linked to a status row.
func (r *AnalysisRepository) LatestResult(ctx context.Context, statusID uint) (*models.EatHabits, error) {
	var habits models.EatHabits
	if err := r.db.WithContext(ctx).
		Where("analysis_status_id = ?", statusID).
		Order("created_at DESC").
		First(&habits).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &habits, nil
}
