package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/castlebridge/expensetrackr/backend/internal/apperr"
	"github.com/castlebridge/expensetrackr/backend/internal/model"
	"github.com/castlebridge/expensetrackr/backend/internal/store"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// ExpenseService is the caller-facing surface for expense CRUD and the
// derived aggregations.
type ExpenseService struct {
	store    store.Store
	resolver *IdentityResolver
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(s store.Store, resolver *IdentityResolver) *ExpenseService {
	return &ExpenseService{store: s, resolver: resolver}
}

// AddRecordInput carries raw form fields; amount and date arrive as strings
// and are validated here.
type AddRecordInput struct {
	Description string
	Amount      string
	Category    string
	Date        string // YYYY-MM-DD
}

// Me resolves the calling identity to its Owner, creating it on first sight.
func (s *ExpenseService) Me(ctx context.Context) (*model.Owner, error) {
	return s.resolver.EnsureOwner(ctx)
}

// AddRecord validates and persists a new expense record for the caller.
func (s *ExpenseService) AddRecord(ctx context.Context, in AddRecordInput) (*model.ExpenseRecord, error) {
	owner, err := s.resolver.EnsureOwner(ctx)
	if err != nil {
		return nil, err
	}

	description := strings.TrimSpace(in.Description)
	category := strings.TrimSpace(in.Category)
	if description == "" {
		return nil, apperr.Validationf("description is required")
	}
	if category == "" {
		return nil, apperr.Validationf("category is required")
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(in.Amount))
	if err != nil {
		return nil, apperr.Validationf("amount must be a number")
	}

	date, err := parseOccurrenceDate(strings.TrimSpace(in.Date))
	if err != nil {
		return nil, err
	}

	record := &model.ExpenseRecord{
		ID:          uuid.New().String(),
		OwnerID:     owner.ID,
		Description: description,
		Amount:      amount.InexactFloat64(),
		Category:    category,
		Date:        date,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.store.CreateRecord(ctx, record); err != nil {
		return nil, storeFailure("create record", err)
	}
	return record, nil
}

// ListRecords returns the caller's latest records by occurrence date. The
// limit is clamped to a safe range regardless of caller input.
func (s *ExpenseService) ListRecords(ctx context.Context, limit int) ([]*model.ExpenseRecord, error) {
	owner, err := s.resolver.EnsureOwner(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.store.ListRecords(ctx, owner.ID, clampLimit(limit))
	if err != nil {
		return nil, storeFailure("list records", err)
	}
	return records, nil
}

// DeleteRecord deletes one of the caller's records. A record that does not
// exist and a record owned by someone else fail identically.
func (s *ExpenseService) DeleteRecord(ctx context.Context, recordID string) error {
	owner, err := s.resolver.EnsureOwner(ctx)
	if err != nil {
		return err
	}

	if err := s.store.DeleteRecord(ctx, owner.ID, recordID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.ErrNotFoundOrForbidden
		}
		return storeFailure("delete record", err)
	}
	return nil
}

// BestWorst holds the extreme expense amounts.
type BestWorst struct {
	Best  float64 `json:"best"`
	Worst float64 `json:"worst"`
}

// BestWorst returns the caller's highest and lowest expense amounts, zero
// for both when there are no records.
func (s *ExpenseService) BestWorst(ctx context.Context) (BestWorst, error) {
	summary, err := s.summarizeAll(ctx)
	if err != nil {
		return BestWorst{}, err
	}
	return BestWorst{Best: summary.Best, Worst: summary.Worst}, nil
}

// Totals holds total spend and the active-record count.
type Totals struct {
	Total       float64 `json:"total"`
	ActiveCount int     `json:"activeCount"`
}

// Totals returns the caller's total spend and the count of records with a
// positive amount. The count is per record, not per distinct day: two
// expenses on the same day count twice.
func (s *ExpenseService) Totals(ctx context.Context) (Totals, error) {
	summary, err := s.summarizeAll(ctx)
	if err != nil {
		return Totals{}, err
	}
	return Totals{Total: summary.Total, ActiveCount: summary.ActiveCount}, nil
}

// DailyBuckets returns the caller's records aggregated into per-day chart
// buckets.
func (s *ExpenseService) DailyBuckets(ctx context.Context) ([]model.DateBucket, error) {
	owner, err := s.resolver.EnsureOwner(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.store.ListAllRecords(ctx, owner.ID)
	if err != nil {
		return nil, storeFailure("list records", err)
	}
	return AggregateDaily(records), nil
}

func (s *ExpenseService) summarizeAll(ctx context.Context) (Summary, error) {
	owner, err := s.resolver.EnsureOwner(ctx)
	if err != nil {
		return Summary{}, err
	}

	records, err := s.store.ListAllRecords(ctx, owner.ID)
	if err != nil {
		return Summary{}, storeFailure("list records", err)
	}
	return Summarize(records), nil
}

// parseOccurrenceDate parses a YYYY-MM-DD calendar date and pins it to midday
// UTC. Midday keeps the date from rolling to an adjacent calendar day when a
// client renders it at any real-world zone offset. time.Parse rejects
// impossible dates like 2024-02-30 outright, so nothing silently normalizes.
func parseOccurrenceDate(s string) (time.Time, error) {
	day, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, apperr.Validationf("invalid date format, use YYYY-MM-DD")
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, time.UTC), nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
