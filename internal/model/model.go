// Package model holds the domain types shared across the service, store and
// API layers.
package model

import "time"

// Owner is the app-side representation of an authenticated user. Owners are
// created lazily on first sight of an external identity and are keyed
// internally by a generated UUID; the external provider id is used only for
// lookup.
type Owner struct {
	ID         string    `json:"id"`
	ExternalID string    `json:"externalId"`
	Email      string    `json:"email"`
	Name       string    `json:"name,omitempty"`
	AvatarURL  string    `json:"avatarUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ExpenseRecord is a single monetary event belonging to an Owner.
//
// Date is the occurrence date normalized to 12:00 UTC of the entered calendar
// day so that rendering in any client zone cannot roll it to a neighboring
// day. CreatedAt is when the row was written and drives "recent window"
// queries, which is a different axis than Date.
type ExpenseRecord struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"-"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DateBucket is one calendar day (UTC) of aggregated spending, produced for
// charting. It is derived on demand and never persisted.
type DateBucket struct {
	Day        string   `json:"day"` // YYYY-MM-DD, UTC fields
	Total      float64  `json:"total"`
	Categories []string `json:"categories"`

	// FirstSeen anchors chronological ordering of buckets. It is the
	// occurrence instant of the first record encountered for the day.
	FirstSeen time.Time `json:"-"`
}

// InsightKind classifies an Insight.
type InsightKind string

const (
	InsightInfo    InsightKind = "info"
	InsightTip     InsightKind = "tip"
	InsightWarning InsightKind = "warning"
)

// Insight is an advisory message derived from recent spending. Ephemeral,
// never persisted.
type Insight struct {
	ID         string      `json:"id"`
	Kind       InsightKind `json:"type"`
	Title      string      `json:"title"`
	Message    string      `json:"message"`
	Action     string      `json:"action,omitempty"`
	Confidence float64     `json:"confidence"`
}
