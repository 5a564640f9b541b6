package models

import (
	"time"

	"github.com/google/uuid"
)

// ContributionStats holds derived per-contributor counters. The row is a
// materialized cache recomputed from word_submissions; it is never the
// source of truth. TotalSubmissions == 0 means "never computed".
type ContributionStats struct {
	UserID            uuid.UUID  `json:"user_id"`
	ApprovedCount     int        `json:"approved_count"`
	PendingCount      int        `json:"pending_count"`
	RejectedCount     int        `json:"rejected_count"`
	TotalSubmissions  int        `json:"total_submissions"`
	FirstContribution *time.Time `json:"first_contribution"`
	LastContribution  *time.Time `json:"last_contribution"`
	UpdatedAt         time.Time  `json:"updated_at"`

	UserName string `json:"user_name,omitempty"`
}
