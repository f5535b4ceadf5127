package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JNU-econovation/EATceed-AI/apperrors"
	"github.com/JNU-econovation/EATceed-AI/models"
)

func TestBeginRunCreatesStatus(t *testing.T) {
	store := newFakeAnalysisStore()
	svc := NewAnalysisStatusService(store)

	require.NoError(t, svc.BeginRun(context.Background(), 1))

	st := store.statuses[1]
	require.NotNil(t, st)
	assert.True(t, st.IsPending)
	assert.False(t, st.IsAnalyzed)
}

func TestBeginRunReArmsAnalyzedMember(t *testing.T) {
	store := newFakeAnalysisStore()
	store.statuses[1] = &models.AnalysisStatus{MemberID: 1, IsAnalyzed: true}
	svc := NewAnalysisStatusService(store)

	require.NoError(t, svc.BeginRun(context.Background(), 1))

	st := store.statuses[1]
	assert.True(t, st.IsPending)
	// Re-arming keeps the analyzed flag; a rerun failure must not erase the
	// fact that a previous result exists.
	assert.True(t, st.IsAnalyzed)
}

func TestBeginRunAlreadyPendingIsNoOp(t *testing.T) {
	store := newFakeAnalysisStore()
	store.statuses[1] = &models.AnalysisStatus{MemberID: 1, IsPending: true}
	svc := NewAnalysisStatusService(store)

	require.NoError(t, svc.BeginRun(context.Background(), 1))
	assert.True(t, store.statuses[1].IsPending)
}

func TestCompleteRunFlipsStatusAndStoresResult(t *testing.T) {
	store := newFakeAnalysisStore()
	svc := NewAnalysisStatusService(store)
	ctx := context.Background()

	require.NoError(t, svc.BeginRun(ctx, 1))

	analyzedAt := time.Date(2025, 3, 10, 1, 0, 0, 0, time.Local)
	habits := &models.EatHabits{WeightPrediction: "stable", AvgCalorie: 1800}
	require.NoError(t, svc.CompleteRun(ctx, 1, analyzedAt, habits))

	st := store.statuses[1]
	assert.False(t, st.IsPending)
	assert.True(t, st.IsAnalyzed)
	assert.Equal(t, analyzedAt, st.AnalysisDate)

	got, err := svc.LatestResult(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "stable", got.WeightPrediction)
	assert.Equal(t, st.ID, got.AnalysisStatusID)
}

func TestGuardedRead(t *testing.T) {
	tests := []struct {
		name    string
		status  *models.AnalysisStatus
		wantErr error
	}{
		{"no record", nil, apperrors.NewUserDataError("")},
		{"pending", &models.AnalysisStatus{MemberID: 1, IsPending: true}, apperrors.NewAnalysisInProgress()},
		{"pending rerun over old result", &models.AnalysisStatus{MemberID: 1, IsPending: true, IsAnalyzed: true}, apperrors.NewAnalysisInProgress()},
		{"never analyzed", &models.AnalysisStatus{MemberID: 1}, apperrors.NewAnalysisNotCompleted()},
		{"analyzed", &models.AnalysisStatus{MemberID: 1, IsAnalyzed: true}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeAnalysisStore()
			if tt.status != nil {
				store.statuses[1] = tt.status
			}
			svc := NewAnalysisStatusService(store)

			st, err := svc.GuardedRead(context.Background(), 1)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint(1), st.MemberID)
		})
	}
}

func TestLatestResultMissingRow(t *testing.T) {
	store := newFakeAnalysisStore()
	store.nextID = 5
	store.statuses[1] = &models.AnalysisStatus{MemberID: 1, IsAnalyzed: true}
	svc := NewAnalysisStatusService(store)

	// Status says analyzed but no result row exists.
	_, err := svc.LatestResult(context.Background(), 1)
	assert.ErrorIs(t, err, apperrors.NewAnalysisNotCompleted())
}

func TestLatestResultReturnsMostRecent(t *testing.T) {
	store := newFakeAnalysisStore()
	svc := NewAnalysisStatusService(store)
	ctx := context.Background()

	require.NoError(t, svc.BeginRun(ctx, 1))
	require.NoError(t, svc.CompleteRun(ctx, 1, time.Now(), &models.EatHabits{WeightPrediction: "first"}))
	require.NoError(t, svc.BeginRun(ctx, 1))
	require.NoError(t, svc.CompleteRun(ctx, 1, time.Now(), &models.EatHabits{WeightPrediction: "second"}))

	got, err := svc.LatestResult(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "second", got.WeightPrediction)
}
