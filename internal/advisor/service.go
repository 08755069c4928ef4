// Package advisor turns free-text questions into structured outcomes: a
// grounded conversational answer over the caller's purchased plans, or a
// taxonomy-constrained filter set for narrowing the catalog.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/insurehub/insurehub/internal/domain"
	"github.com/insurehub/insurehub/internal/llm"
)

// Completion request bounds, shared by both pipelines.
const answerMaxTokens = 500

// Temperatures: contextual answers allow a little variety, filter extraction
// must be deterministic.
const (
	answerTemperature = 0.3
	filterTemperature = 0
)

// PlanSource is the slice of the user store this service needs.
type PlanSource interface {
	FindPurchasedPlans(ctx context.Context, userID uuid.UUID) ([]domain.PurchasedPlan, error)
}

// Service runs the two question pipelines
type Service struct {
	plans    PlanSource
	provider llm.Provider
	model    string
	prompter *Prompter
}

// NewService creates a new advisor service
func NewService(plans PlanSource, provider llm.Provider, model string) *Service {
	return &Service{
		plans:    plans,
		provider: provider,
		model:    model,
		prompter: NewPrompter(),
	}
}

// Answer is the result of the contextual Q&A pipeline.
type Answer struct {
	Text  string
	Plans []domain.PurchasedPlan
}

// Answer resolves a question against the user's purchased plans. One
// completion attempt per call; any upstream failure fails the request.
func (s *Service) Answer(ctx context.Context, userID uuid.UUID, question string) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, domain.ErrInvalidInput
	}

	plans, err := s.plans.FindPurchasedPlans(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp, err := s.provider.Generate(ctx, &llm.Request{
		Model:       s.model,
		System:      s.prompter.GroundingPrompt(plans),
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: question}},
		MaxTokens:   answerMaxTokens,
		Temperature: answerTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("completion: %w", err)
	}
	if resp.Content == "" {
		return nil, fmt.Errorf("completion: empty response")
	}

	return &Answer{Text: resp.Content, Plans: plans}, nil
}

// ExtractFilters resolves a question into a structured filter set. A response
// that does not parse as a filter object degrades to the empty FilterQuery
// rather than failing: absent filters mean "no constraint", never an error.
// Transport-level upstream failures still fail the request.
func (s *Service) ExtractFilters(ctx context.Context, question string) (domain.FilterQuery, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return domain.FilterQuery{}, domain.ErrInvalidInput
	}

	resp, err := s.provider.Generate(ctx, &llm.Request{
		Model:       s.model,
		System:      s.prompter.FilterPrompt(),
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: question}},
		MaxTokens:   answerMaxTokens,
		Temperature: filterTemperature,
	})
	if err != nil {
		return domain.FilterQuery{}, fmt.Errorf("completion: %w", err)
	}

	return parseFilters(resp.Content), nil
}

// parseFilters decodes the model output, tolerating surrounding code fences.
// Anything unparseable yields the zero FilterQuery.
func parseFilters(content string) domain.FilterQuery {
	trimmed := strings.TrimSpace(content)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var filters domain.FilterQuery
	if err := json.Unmarshal([]byte(trimmed), &filters); err != nil {
		slog.Warn("filter extraction did not parse, degrading to empty result", "error", err)
		return domain.FilterQuery{}
	}
	return filters
}
