package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/JNU-econovation/EATceed-AI/llm"
	"github.com/JNU-econovation/EATceed-AI/models"
	"github.com/JNU-econovation/EATceed-AI/utils"
	"github.com/JNU-econovation/EATceed-AI/vectordb"
)

// fakeMemberStore serves members out of a map.
type fakeMemberStore struct {
	members map[uint]*models.Member
}

func (f *fakeMemberStore) GetMember(_ context.Context, memberID uint) (*models.Member, error) {
	return f.members[memberID], nil
}

func (f *fakeMemberStore) AllMemberIDs(_ context.Context) ([]uint, error) {
	ids := make([]uint, 0, len(f.members))
	for id := range f.members {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// fakeMealStore serves meals, meal foods and catalog entries out of maps.
type fakeMealStore struct {
	meals     map[uint][]models.Meal     // keyed by member ID
	mealFoods map[uint][]models.MealFood // keyed by meal ID
	foods     map[uint]*models.Food      // keyed by food ID
}

func (f *fakeMealStore) MealsBetween(_ context.Context, memberID uint, from, to time.Time) ([]models.Meal, error) {
	var out []models.Meal
	for _, m := range f.meals[memberID] {
		if !m.CreatedAt.Before(from) && m.CreatedAt.Before(to) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMealStore) MealFoods(_ context.Context, mealID uint) ([]models.MealFood, error) {
	return f.mealFoods[mealID], nil
}

func (f *fakeMealStore) GetFood(_ context.Context, foodID uint) (*models.Food, error) {
	return f.foods[foodID], nil
}

// fakeAnalysisStore implements AnalysisStore in memory, mirroring the
// transactional SaveResult semantics of the gorm repository.
type fakeAnalysisStore struct {
	statuses map[uint]*models.AnalysisStatus // keyed by member ID
	results  map[uint][]*models.EatHabits    // keyed by status ID
	nextID   uint
	saveErr  error
}

func newFakeAnalysisStore() *fakeAnalysisStore {
	return &fakeAnalysisStore{
		statuses: make(map[uint]*models.AnalysisStatus),
		results:  make(map[uint][]*models.EatHabits),
	}
}

func (f *fakeAnalysisStore) GetStatus(_ context.Context, memberID uint) (*models.AnalysisStatus, error) {
	st, ok := f.statuses[memberID]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (f *fakeAnalysisStore) CreateStatus(_ context.Context, status *models.AnalysisStatus) error {
	f.nextID++
	status.ID = f.nextID
	cp := *status
	f.statuses[status.MemberID] = &cp
	return nil
}

func (f *fakeAnalysisStore) UpdateStatus(_ context.Context, status *models.AnalysisStatus) error {
	cp := *status
	f.statuses[status.MemberID] = &cp
	return nil
}

func (f *fakeAnalysisStore) SaveResult(_ context.Context, memberID uint, analyzedAt time.Time, habits *models.EatHabits) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	st, ok := f.statuses[memberID]
	if !ok {
		return errors.New("analysis status not found")
	}
	habits.AnalysisStatusID = st.ID
	f.results[st.ID] = append(f.results[st.ID], habits)
	st.IsPending = false
	st.IsAnalyzed = true
	st.AnalysisDate = analyzedAt
	return nil
}

func (f *fakeAnalysisStore) LatestResult(_ context.Context, statusID uint) (*models.EatHabits, error) {
	rs := f.results[statusID]
	if len(rs) == 0 {
		return nil, nil
	}
	return rs[len(rs)-1], nil
}

// fakeChat returns a canned reply or error.
type fakeChat struct {
	reply string
	err   error
	calls int
}

func (f *fakeChat) Chat(_ context.Context, _ []llm.Message, _ int, _ float64) (string, error) {
	f.calls++
	return f.reply, f.err
}

// fakeEmbedder returns a fixed vector.
type fakeEmbedder struct {
	vector   []float32
	err      error
	lastText string
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.lastText = text
	return f.vector, f.err
}

// fakeIndex returns canned matches.
type fakeIndex struct {
	matches []vectordb.Match
	err     error
	topK    int
}

func (f *fakeIndex) Query(_ context.Context, _ []float32, topK int) ([]vectordb.Match, error) {
	f.topK = topK
	return f.matches, f.err
}

// fakeAdvice returns canned advice or an error.
type fakeAdvice struct {
	result *AdviceResult
	err    error
	calls  int
}

func (f *fakeAdvice) Generate(_ context.Context, _ utils.AnalysisPayload) (*AdviceResult, error) {
	f.calls++
	return f.result, f.err
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }
