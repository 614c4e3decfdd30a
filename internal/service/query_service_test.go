package service

import (
	"caschools/internal/model"
	"caschools/internal/query"
	"caschools/internal/registry"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSchoolRepo struct {
	results []*model.SchoolRecord
	err     error
	calls   int
	preds   []query.Predicate
}

func (s *stubSchoolRepo) Search(ctx context.Context, pred query.Predicate, limit int64) ([]*model.SchoolRecord, error) {
	s.calls++
	s.preds = append(s.preds, pred)
	return s.results, s.err
}

func (s *stubSchoolRepo) Insert(ctx context.Context, records []*model.SchoolRecord) error {
	return nil
}

type stubAnswerCache struct {
	stored map[string]*model.QueryAnswer
	getErr error
	setErr error
}

func newStubAnswerCache() *stubAnswerCache {
	return &stubAnswerCache{stored: make(map[string]*model.QueryAnswer)}
}

func (c *stubAnswerCache) Get(ctx context.Context, q string) (*model.QueryAnswer, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.stored[q], nil
}

func (c *stubAnswerCache) Set(ctx context.Context, q string, answer *model.QueryAnswer) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.stored[q] = answer
	return nil
}

// newTestQueryService wires a pattern-only intent service and a disabled AI
// explainer around the given repo and cache.
func newTestQueryService(repo *stubSchoolRepo, answers *stubAnswerCache) *QueryService {
	reg := registry.Default()
	cfg := testAIConfig()
	cfg.APIKey = ""
	intents := NewIntentService(NewPatternParser(reg))
	explainer := NewExplainerService(cfg, nil, reg)
	if answers == nil {
		return NewQueryService(intents, repo, explainer, nil, reg)
	}
	return NewQueryService(intents, repo, explainer, answers, reg)
}

func TestQueryService_AnswerEndToEnd(t *testing.T) {
	repo := &stubSchoolRepo{results: []*model.SchoolRecord{
		{
			DistrictName: "Sunnyvale Elementary",
			SchoolName:   "Bishop Elementary",
			DashboardIndicators: map[string]model.IndicatorResult{
				registry.MathPerformance: {Status: model.StatusRed, PointsFromStandard: fptr(-42.0)},
			},
		},
	}}
	svc := newTestQueryService(repo, nil)

	answer, err := svc.Answer(context.Background(), "Which schools in Sunnyvale have red math performance?")
	require.NoError(t, err)

	assert.Equal(t, 1, repo.calls)
	require.Len(t, answer.Schools, 1)
	assert.Equal(t, "Bishop Elementary", answer.Schools[0].SchoolName)
	assert.Contains(t, answer.Response, "Bishop Elementary")
	assert.Contains(t, answer.Response, "42.0 points below standard")

	// The repo received the compiled district+color filter, not MatchAll.
	require.Len(t, repo.preds, 1)
	assert.IsType(t, query.And{}, repo.preds[0])
}

func TestQueryService_NotAvailableSkipsStore(t *testing.T) {
	repo := &stubSchoolRepo{}
	reg := registry.Subset(registry.ChronicAbsenteeism, registry.ELAPerformance)
	cfg := testAIConfig()
	cfg.APIKey = ""
	svc := NewQueryService(
		NewIntentService(NewPatternParser(reg)),
		repo,
		NewExplainerService(cfg, nil, reg),
		nil,
		reg,
	)

	answer, err := svc.Answer(context.Background(), "What are the suspension rates in Fresno?")
	require.NoError(t, err)

	assert.Zero(t, repo.calls)
	assert.Contains(t, answer.Response, "Data Not Available")
	assert.NotNil(t, answer.Schools)
	assert.Empty(t, answer.Schools)
}

func TestQueryService_StoreErrorSurfaces(t *testing.T) {
	repo := &stubSchoolRepo{err: errors.New("connection reset")}
	svc := newTestQueryService(repo, nil)

	answer, err := svc.Answer(context.Background(), "schools in oakland")

	require.Error(t, err)
	assert.Nil(t, answer)
	assert.Contains(t, err.Error(), "school search")
}

func TestQueryService_EmptyResultsStillAnswer(t *testing.T) {
	repo := &stubSchoolRepo{}
	svc := newTestQueryService(repo, nil)

	answer, err := svc.Answer(context.Background(), "schools in sunnyvale")
	require.NoError(t, err)

	assert.Contains(t, answer.Response, "no schools matching")
	assert.NotNil(t, answer.Schools)
	assert.Empty(t, answer.Schools)
}

func TestQueryService_CachesAnswers(t *testing.T) {
	repo := &stubSchoolRepo{results: []*model.SchoolRecord{
		{SchoolName: "Bishop Elementary", DistrictName: "Sunnyvale Elementary"},
	}}
	answers := newStubAnswerCache()
	svc := newTestQueryService(repo, answers)

	text := "schools in sunnyvale"
	first, err := svc.Answer(context.Background(), text)
	require.NoError(t, err)
	second, err := svc.Answer(context.Background(), text)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.calls, "second answer should come from the cache")
	assert.Equal(t, first, second)
}

func TestQueryService_CacheFailuresAreNonFatal(t *testing.T) {
	repo := &stubSchoolRepo{results: []*model.SchoolRecord{
		{SchoolName: "Mission High", DistrictName: "San Francisco Unified"},
	}}
	answers := newStubAnswerCache()
	answers.getErr = errors.New("redis down")
	answers.setErr = errors.New("redis down")
	svc := newTestQueryService(repo, answers)

	answer, err := svc.Answer(context.Background(), "schools in san francisco")
	require.NoError(t, err)
	assert.Contains(t, answer.Response, "Mission High")
}
