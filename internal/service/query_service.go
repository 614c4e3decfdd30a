package service

import (
	"caschools/internal/cache"
	"caschools/internal/model"
	"caschools/internal/query"
	"caschools/internal/registry"
	"caschools/internal/repository"
	"context"
	"fmt"
	"log"
)

// QueryService orchestrates one query end to end: extract intent, compile
// the filter, look up schools, explain the result. Stateless per request;
// the registry and lexicons it reads are never mutated after startup.
type QueryService struct {
	intents   *IntentService
	schools   repository.SchoolRepo
	explainer *ExplainerService
	answers   cache.AnswerCache
	reg       *registry.Registry
}

// NewQueryService creates a new query service. The answer cache is optional.
func NewQueryService(intents *IntentService, schools repository.SchoolRepo, explainer *ExplainerService, answers cache.AnswerCache, reg *registry.Registry) *QueryService {
	return &QueryService{
		intents:   intents,
		schools:   schools,
		explainer: explainer,
		answers:   answers,
		reg:       reg,
	}
}

// Answer processes a free-text query. The only error it returns is a store
// failure; extraction and narration failures are recovered internally by
// their fallbacks.
func (s *QueryService) Answer(ctx context.Context, text string) (*model.QueryAnswer, error) {
	if s.answers != nil {
		if cached, err := s.answers.Get(ctx, text); err != nil {
			log.Printf("answer cache read failed: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	intent := s.intents.Extract(ctx, text)

	// Requested data outside the deployed registry: answer directly,
	// never touching the store.
	if !intent.Available() {
		return &model.QueryAnswer{
			Response: s.explainer.Explain(ctx, text, nil, intent),
			Schools:  []*model.SchoolRecord{},
		}, nil
	}

	pred := query.Compile(intent, s.reg)
	results, err := s.schools.Search(ctx, pred, repository.MaxResults)
	if err != nil {
		return nil, fmt.Errorf("school search: %w", err)
	}

	answer := &model.QueryAnswer{
		Response: s.explainer.Explain(ctx, text, results, intent),
		Schools:  results,
	}
	if answer.Schools == nil {
		answer.Schools = []*model.SchoolRecord{}
	}

	if s.answers != nil {
		if err := s.answers.Set(ctx, text, answer); err != nil {
			log.Printf("answer cache write failed: %v", err)
		}
	}
	return answer, nil
}
