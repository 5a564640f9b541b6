package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"lexipedia/internal/models"
)

// RecomputeContributionStats rebuilds a contributor's ledger row from their
// word submissions in a single aggregate upsert. The ledger carries no
// incremental counters; this full recompute is the only writer, so it can
// run after any review decision, from the reconciler, or lazily on a
// dashboard read without ordering concerns.
func (d *DB) RecomputeContributionStats(ctx context.Context, userID uuid.UUID) error {
	query := `
		INSERT INTO contribution_stats
			(user_id, approved_count, pending_count, rejected_count,
			 total_submissions, first_contribution, last_contribution, updated_at)
		SELECT
			$1,
			COUNT(*) FILTER (WHERE status = 'approved'),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'rejected'),
			COUNT(*),
			MIN(submitted_at),
			MAX(submitted_at),
			NOW()
		FROM word_submissions
		WHERE submitted_by = $2
		ON CONFLICT (user_id) DO UPDATE SET
			approved_count = EXCLUDED.approved_count,
			pending_count = EXCLUDED.pending_count,
			rejected_count = EXCLUDED.rejected_count,
			total_submissions = EXCLUDED.total_submissions,
			first_contribution = EXCLUDED.first_contribution,
			last_contribution = EXCLUDED.last_contribution,
			updated_at = EXCLUDED.updated_at
	`
	_, err := d.Pool.Exec(ctx, query, userID, userID)
	return err
}

// GetContributionStats retrieves a contributor's ledger row.
func (d *DB) GetContributionStats(ctx context.Context, userID uuid.UUID) (*models.ContributionStats, error) {
	query := `
		SELECT s.user_id, s.approved_count, s.pending_count, s.rejected_count,
			s.total_submissions, s.first_contribution, s.last_contribution, s.updated_at,
			COALESCE(u.name, '')
		FROM contribution_stats s
		JOIN users u ON u.id = s.user_id
		WHERE s.user_id = $1
	`

	var stats models.ContributionStats
	err := d.Pool.QueryRow(ctx, query, userID).Scan(
		&stats.UserID, &stats.ApprovedCount, &stats.PendingCount, &stats.RejectedCount,
		&stats.TotalSubmissions, &stats.FirstContribution, &stats.LastContribution, &stats.UpdatedAt,
		&stats.UserName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrStatsNotFound
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetLeaderboard retrieves the top contributors by approved submissions.
func (d *DB) GetLeaderboard(ctx context.Context, limit int) ([]models.ContributionStats, error) {
	query := `
		SELECT s.user_id, s.approved_count, s.pending_count, s.rejected_count,
			s.total_submissions, s.first_contribution, s.last_contribution, s.updated_at,
			COALESCE(u.name, '')
		FROM contribution_stats s
		JOIN users u ON u.id = s.user_id
		WHERE s.total_submissions > 0
		ORDER BY s.approved_count DESC, s.total_submissions DESC, s.user_id
		LIMIT $1
	`

	rows, err := d.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var board []models.ContributionStats
	for rows.Next() {
		var s models.ContributionStats
		if err := rows.Scan(
			&s.UserID, &s.ApprovedCount, &s.PendingCount, &s.RejectedCount,
			&s.TotalSubmissions, &s.FirstContribution, &s.LastContribution, &s.UpdatedAt,
			&s.UserName,
		); err != nil {
			return nil, err
		}
		board = append(board, s)
	}

	return board, rows.Err()
}

// GetStaleStatsUserIDs returns contributors whose ledger row is older than
// maxAge, or who have submissions but no ledger row at all. Feeds the
// background reconciler.
func (d *DB) GetStaleStatsUserIDs(ctx context.Context, maxAge time.Duration) ([]uuid.UUID, error) {
	cutoff := time.Now().Add(-maxAge)
	query := `
		SELECT DISTINCT ws.submitted_by
		FROM word_submissions ws
		LEFT JOIN contribution_stats cs ON cs.user_id = ws.submitted_by
		WHERE cs.user_id IS NULL OR cs.updated_at < $1
	`

	rows, err := d.Pool.Query(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
