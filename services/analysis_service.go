package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/JNU-econovation/EATceed-AI/apperrors"
	"github.com/JNU-econovation/EATceed-AI/logger"
	"github.com/JNU-econovation/EATceed-AI/models"
)

// AnalysisService runs the periodic diet analysis across every member:
// aggregate the week, compute the metabolic figures, generate advice and
// persist the result behind the status machine.
type AnalysisService struct {
	members   MemberStore
	nutrition *NutritionService
	status    *AnalysisStatusService
	advice    AdviceGenerator
	now       func() time.Time
}

func NewAnalysisService(members MemberStore, nutrition *NutritionService, status *AnalysisStatusService, advice AdviceGenerator) *AnalysisService {
	return &AnalysisService{
		members:   members,
		nutrition: nutrition,
		status:    status,
		advice:    advice,
		now:       time.Now,
	}
}

// RunForAllMembers sweeps every registered member. One member's failure is
// logged and isolated; that member stays PENDING until the next sweep.
func (s *AnalysisService) RunForAllMembers(ctx context.Context) error {
	ids, err := s.members.AllMemberIDs(ctx)
	if err != nil {
		return apperrors.NewDatabaseError("list members", err)
	}
	if len(ids) == 0 {
		return apperrors.NewNoMembersFound()
	}

	logger.Info("diet analysis sweep started", zap.Int("members", len(ids)))

	failed := 0
	for _, memberID := range ids {
		if err := s.RunForMember(ctx, memberID); err != nil {
			failed++
			logger.Error("diet analysis failed for member",
				zap.Uint("member_id", memberID), zap.Error(err))
		}
	}

	logger.Info("diet analysis sweep finished",
		zap.Int("members", len(ids)), zap.Int("failed", failed))
	return nil
}

// RunForMember executes one member's analysis end to end. An error after
// BeginRun leaves the member PENDING on purpose: a guarded read then reports
// "in progress" instead of serving the stale previous result.
func (s *AnalysisService) RunForMember(ctx context.Context, memberID uint) error {
	if err := s.status.BeginRun(ctx, memberID); err != nil {
		return err
	}

	payload, avgCalorie, err := s.nutrition.UserPayload(ctx, memberID)
	if err != nil {
		return err
	}

	advice, err := s.advice.Generate(ctx, payload)
	if err != nil {
		return err
	}

	habits := &models.EatHabits{
		WeightPrediction:   advice.WeightPrediction,
		AdviceCarbohydrate: advice.AdviceCarbohydrate,
		AdviceProtein:      advice.AdviceProtein,
		AdviceFat:          advice.AdviceFat,
		SynthesisAdvice:    advice.SynthesisAdvice,
		AvgCalorie:         avgCalorie,
	}

	return s.status.CompleteRun(ctx, memberID, s.now(), habits)
}
