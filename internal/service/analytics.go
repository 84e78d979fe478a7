package service

import (
	"sort"
	"time"

	"github.com/castlebridge/expensetrackr/backend/internal/model"
)

// UncategorizedLabel is the bucket label for records without a category.
const UncategorizedLabel = "Uncategorized"

// AggregateDaily groups records into calendar-day buckets keyed by the UTC
// date, so two records on the same UTC day always share a bucket regardless
// of the viewer's zone. Records with no usable occurrence date are skipped
// rather than failing the whole aggregation: malformed historical rows must
// not break the chart. Single pass, O(n) with O(d) auxiliary space for d
// distinct days.
func AggregateDaily(records []*model.ExpenseRecord) []model.DateBucket {
	type bucket struct {
		total      float64
		categories map[string]struct{}
		firstSeen  time.Time
	}
	buckets := make(map[string]*bucket)

	for _, r := range records {
		if r == nil || r.Date.IsZero() {
			continue
		}

		key := r.Date.UTC().Format("2006-01-02")
		category := r.Category
		if category == "" {
			category = UncategorizedLabel
		}

		b, ok := buckets[key]
		if !ok {
			b = &bucket{
				categories: make(map[string]struct{}),
				firstSeen:  r.Date,
			}
			buckets[key] = b
		}
		b.total += r.Amount
		b.categories[category] = struct{}{}
	}

	out := make([]model.DateBucket, 0, len(buckets))
	for key, b := range buckets {
		categories := make([]string, 0, len(b.categories))
		for c := range b.categories {
			categories = append(categories, c)
		}
		sort.Strings(categories)

		out = append(out, model.DateBucket{
			Day:        key,
			Total:      b.total,
			Categories: categories,
			FirstSeen:  b.firstSeen,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].FirstSeen.Before(out[j].FirstSeen)
	})
	return out
}

// Summary is the scalar reduction over a record set.
type Summary struct {
	Total       float64
	Best        float64
	Worst       float64
	ActiveCount int
}

// Summarize computes total, max, min and positive-amount count over records.
// All fields are defined zero for empty input, which keeps rendering simple.
// Pure and total: it cannot fail.
func Summarize(records []*model.ExpenseRecord) Summary {
	var s Summary
	for i, r := range records {
		s.Total += r.Amount
		if i == 0 || r.Amount > s.Best {
			s.Best = r.Amount
		}
		if i == 0 || r.Amount < s.Worst {
			s.Worst = r.Amount
		}
		if r.Amount > 0 {
			s.ActiveCount++
		}
	}
	return s
}
