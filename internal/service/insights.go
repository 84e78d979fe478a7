package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/castlebridge/expensetrackr/backend/internal/ai"
	"github.com/castlebridge/expensetrackr/backend/internal/auth"
	"github.com/castlebridge/expensetrackr/backend/internal/model"
	"github.com/castlebridge/expensetrackr/backend/internal/store"
)

const (
	recentWindowDays = 30
	recentWindowCap  = 50
)

// FallbackAnswer is returned verbatim whenever AnswerQuestion cannot produce
// a real answer.
const FallbackAnswer = "I'm unable to provide a detailed answer at the moment. Please try refreshing the insights or check your connection."

// InsightGenerator produces insight content from shaped records. Implemented
// by ai.GeminiClient; faked in tests.
type InsightGenerator interface {
	GenerateInsights(ctx context.Context, records []ai.PromptRecord) ([]model.Insight, error)
	AnswerQuestion(ctx context.Context, question string, records []ai.PromptRecord) (string, error)
}

// InsightService derives advisory content from an owner's recent spending.
//
// Insights are advisory, not security-sensitive, so this service never
// surfaces an error: every failure path maps to deterministic,
// user-presentable fallback content.
type InsightService struct {
	store    store.Store
	resolver *IdentityResolver
	gen      InsightGenerator

	// now is stubbed in tests.
	now func() time.Time
}

// NewInsightService creates a new InsightService.
func NewInsightService(s store.Store, resolver *IdentityResolver, gen InsightGenerator) *InsightService {
	return &InsightService{store: s, resolver: resolver, gen: gen, now: time.Now}
}

// Insights returns ranked insights for the caller. Signed-out visitors,
// owners with no local row and owners with no recent records all get a fixed
// welcome pair; a generator or datastore failure gets a single retry warning.
// Never errors, never returns an empty list.
func (s *InsightService) Insights(ctx context.Context) []model.Insight {
	claims, ok := auth.GetUserClaims(ctx)
	if !ok {
		return welcomeSignedOut()
	}

	owner, err := s.store.GetOwnerByExternalID(ctx, claims.UID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("[Insights] owner lookup failed: %v", err)
			return fallbackInsights()
		}
		// Authenticated but never stored anything yet.
		return welcomeNoData()
	}

	since := s.now().AddDate(0, 0, -recentWindowDays)
	records, err := s.store.ListRecentRecords(ctx, owner.ID, since, recentWindowCap)
	if err != nil {
		log.Printf("[Insights] recent records query failed: %v", err)
		return fallbackInsights()
	}
	if len(records) == 0 {
		return welcomeNoData()
	}

	insights, err := s.gen.GenerateInsights(ctx, shapeForPrompt(records))
	if err != nil || len(insights) == 0 {
		log.Printf("[Insights] generation failed: %v", err)
		return fallbackInsights()
	}
	return insights
}

// AnswerQuestion answers a free-form question about the caller's recent
// spending. Never errors: any failure returns FallbackAnswer.
func (s *InsightService) AnswerQuestion(ctx context.Context, question string) string {
	owner, err := s.resolver.EnsureOwner(ctx)
	if err != nil {
		log.Printf("[Insights] answer unavailable, identity: %v", err)
		return FallbackAnswer
	}

	since := s.now().AddDate(0, 0, -recentWindowDays)
	records, err := s.store.ListRecentRecords(ctx, owner.ID, since, recentWindowCap)
	if err != nil {
		log.Printf("[Insights] answer unavailable, store: %v", err)
		return FallbackAnswer
	}

	answer, err := s.gen.AnswerQuestion(ctx, question, shapeForPrompt(records))
	if err != nil {
		log.Printf("[Insights] answer generation failed: %v", err)
		return FallbackAnswer
	}
	return answer
}

// shapeForPrompt converts records to the provider-agnostic prompt shape.
// The date sent is the creation instant: the recent window is a
// creation-time window, and that is the axis the generator reasons over.
func shapeForPrompt(records []*model.ExpenseRecord) []ai.PromptRecord {
	shaped := make([]ai.PromptRecord, 0, len(records))
	for _, r := range records {
		category := r.Category
		if category == "" {
			category = "Other"
		}
		shaped = append(shaped, ai.PromptRecord{
			ID:          r.ID,
			Amount:      r.Amount,
			Category:    category,
			Description: r.Description,
			Date:        r.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return shaped
}

func welcomeSignedOut() []model.Insight {
	return []model.Insight{
		{
			ID:         "welcome-1",
			Kind:       model.InsightInfo,
			Title:      "Welcome to ExpenseTrackr AI!",
			Message:    "Sign in and start adding your expenses to get personalized AI insights.",
			Action:     "Sign in",
			Confidence: 1.0,
		},
		{
			ID:         "welcome-2",
			Kind:       model.InsightTip,
			Title:      "Track Regularly",
			Message:    "For best results, try to log expenses daily. This helps our AI provide more accurate insights.",
			Action:     "Set daily reminders",
			Confidence: 1.0,
		},
	}
}

func welcomeNoData() []model.Insight {
	return []model.Insight{
		{
			ID:         "welcome-1",
			Kind:       model.InsightInfo,
			Title:      "Welcome to ExpenseTrackr AI!",
			Message:    "Start adding your expenses to get personalized AI insights about your spending patterns.",
			Action:     "Add your first expense",
			Confidence: 1.0,
		},
		{
			ID:         "welcome-2",
			Kind:       model.InsightTip,
			Title:      "Track Regularly",
			Message:    "For best results, try to log expenses daily. This helps our AI provide more accurate insights.",
			Action:     "Set daily reminders",
			Confidence: 1.0,
		},
	}
}

func fallbackInsights() []model.Insight {
	return []model.Insight{
		{
			ID:         "error-1",
			Kind:       model.InsightWarning,
			Title:      "Insights Temporarily Unavailable",
			Message:    "We're having trouble analyzing your expenses right now. Please try again in a few minutes.",
			Action:     "Retry analysis",
			Confidence: 0.5,
		},
	}
}
