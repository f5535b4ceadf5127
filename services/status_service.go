package services

import (
	"context"
	"time"

	"github.com/JNU-econovation/EATceed-AI/apperrors"
	"github.com/JNU-econovation/EATceed-AI/models"
)

// AnalysisStore persists status rows and completed results. SaveResult must
// write the result and the status flip in one transaction.
type AnalysisStore interface {
	GetStatus(ctx context.Context, memberID uint) (*models.AnalysisStatus, error)
	CreateStatus(ctx context.Context, status *models.AnalysisStatus) error
	UpdateStatus(ctx context.Context, status *models.AnalysisStatus) error
	SaveResult(ctx context.Context, memberID uint, analyzedAt time.Time, habits *models.EatHabits) error
	LatestResult(ctx context.Context, statusID uint) (*models.EatHabits, error)
}

// AnalysisStatusService is the per-member state machine between the nightly
// analysis job and on-demand reads: NO_RECORD → PENDING → ANALYZED, with
// PENDING re-armed on every new run.
type AnalysisStatusService struct {
	store AnalysisStore
}

func NewAnalysisStatusService(store AnalysisStore) *AnalysisStatusService {
	return &AnalysisStatusService{store: store}
}

// BeginRun marks a background run as in flight. The first run for a member
// creates the status row; later runs re-arm the pending flag and keep the
// analyzed flag so a failed rerun does not hide the previous result state.
func (s *AnalysisStatusService) BeginRun(ctx context.Context, memberID uint) error {
	status, err := s.store.GetStatus(ctx, memberID)
	if err != nil {
		return apperrors.NewDatabaseError("get analysis status", err)
	}

	if status == nil {
		status = &models.AnalysisStatus{
			MemberID:   memberID,
			IsPending:  true,
			IsAnalyzed: false,
		}
		if err := s.store.CreateStatus(ctx, status); err != nil {
			return apperrors.NewDatabaseError("create analysis status", err)
		}
		return nil
	}

	if status.IsPending {
		return nil
	}
	status.IsPending = true
	if err := s.store.UpdateStatus(ctx, status); err != nil {
		return apperrors.NewDatabaseError("update analysis status", err)
	}
	return nil
}

// CompleteRun persists the result and transitions the member to ANALYZED,
// clearing the pending flag in the same transaction. Called exactly once per
// successful run; a failed run leaves the member PENDING for the next sweep.
func (s *AnalysisStatusService) CompleteRun(ctx context.Context, memberID uint, analyzedAt time.Time, habits *models.EatHabits) error {
	if err := s.store.SaveResult(ctx, memberID, analyzedAt, habits); err != nil {
		return apperrors.NewDatabaseError("save analysis result", err)
	}
	return nil
}

// GuardedRead returns the status row only when a completed analysis is
// readable. Pending wins over analyzed: a rerun in flight must not serve the
// stale previous result as current.
func (s *AnalysisStatusService) GuardedRead(ctx context.Context, memberID uint) (*models.AnalysisStatus, error) {
	status, err := s.store.GetStatus(ctx, memberID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("get analysis status", err)
	}
	if status == nil {
		return nil, apperrors.NewUserDataError("no analysis record for member")
	}
	if status.IsPending {
		return nil, apperrors.NewAnalysisInProgress()
	}
	if !status.IsAnalyzed {
		return nil, apperrors.NewAnalysisNotCompleted()
	}
	return status, nil
}

// LatestResult performs a guarded read and fetches the linked result row.
func (s *AnalysisStatusService) LatestResult(ctx context.Context, memberID uint) (*models.EatHabits, error) {
	status, err := s.GuardedRead(ctx, memberID)
	if err != nil {
		return nil, err
	}

	habits, err := s.store.LatestResult(ctx, status.ID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("get analysis result", err)
	}
	if habits == nil {
		return nil, apperrors.NewAnalysisNotCompleted()
	}
	return habits, nil
}
