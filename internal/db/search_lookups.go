package db

import (
	"context"
	"strings"
)

// SearchLookup is a counter of how often a search term was looked up and
// whether it found anything. Feeds the metrics collector and gives editors
// a view of vocabulary gaps.
type SearchLookup struct {
	Term    string `json:"term"`
	Outcome string `json:"outcome"`
	Count   int64  `json:"count"`
}

// Search outcome values.
const (
	LookupHit  = "hit"
	LookupMiss = "miss"
)

// IncrementSearchLookup bumps the counter for a search term and outcome.
func (d *DB) IncrementSearchLookup(ctx context.Context, term, outcome string) error {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	query := `
		INSERT INTO search_lookups (term, outcome, count)
		VALUES ($1, $2, 1)
		ON CONFLICT (term, outcome) DO UPDATE SET count = search_lookups.count + 1
	`
	_, err := d.Pool.Exec(ctx, query, term, outcome)
	return err
}

// GetAllSearchLookups retrieves every search counter, most frequent first.
func (d *DB) GetAllSearchLookups(ctx context.Context) ([]SearchLookup, error) {
	query := `SELECT term, outcome, count FROM search_lookups ORDER BY count DESC`

	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lookups []SearchLookup
	for rows.Next() {
		var l SearchLookup
		if err := rows.Scan(&l.Term, &l.Outcome, &l.Count); err != nil {
			return nil, err
		}
		lookups = append(lookups, l)
	}

	return lookups, rows.Err()
}

// GetSubmissionStatusCounts returns how many word submissions exist in each
// status. Used by the metrics collector.
func (d *DB) GetSubmissionStatusCounts(ctx context.Context) (map[string]int64, error) {
	query := `SELECT status, COUNT(*) FROM word_submissions GROUP BY status`

	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}

	return counts, rows.Err()
}
