package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"lexipedia/internal/models"
)

const contributionColumns = `c.id, c.meaning_id, c.example_text, c.translation,
	c.submitted_by, c.submitted_at, c.status, c.reviewed_by, c.reviewed_at,
	c.review_notes, c.approved_example_id`

// contributionJoins decorates each row with submitter and word context so
// moderation and dashboard views need no follow-up queries.
const contributionJoins = `
	JOIN users u ON u.id = c.submitted_by
	JOIN meanings m ON m.id = c.meaning_id
	JOIN words w ON w.id = m.word_id`

func scanContribution(row pgx.Row) (*models.ExampleContribution, error) {
	var c models.ExampleContribution
	err := row.Scan(
		&c.ID,
		&c.MeaningID,
		&c.ExampleText,
		&c.Translation,
		&c.SubmittedBy,
		&c.SubmittedAt,
		&c.Status,
		&c.ReviewedBy,
		&c.ReviewedAt,
		&c.ReviewNotes,
		&c.ApprovedExampleID,
		&c.SubmitterName,
		&c.SubmitterEmail,
		&c.WordText,
		&c.WordSlug,
		&c.MeaningText,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSubmissionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanContributions(rows pgx.Rows) ([]models.ExampleContribution, error) {
	defer rows.Close()

	var contributions []models.ExampleContribution
	for rows.Next() {
		var c models.ExampleContribution
		if err := rows.Scan(
			&c.ID, &c.MeaningID, &c.ExampleText, &c.Translation,
			&c.SubmittedBy, &c.SubmittedAt, &c.Status, &c.ReviewedBy, &c.ReviewedAt,
			&c.ReviewNotes, &c.ApprovedExampleID,
			&c.SubmitterName, &c.SubmitterEmail, &c.WordText, &c.WordSlug, &c.MeaningText,
		); err != nil {
			return nil, err
		}
		contributions = append(contributions, c)
	}

	return contributions, rows.Err()
}

// CreateExampleContribution inserts a pending example contribution against a
// published meaning.
func (d *DB) CreateExampleContribution(ctx context.Context, c *models.ExampleContribution) error {
	query := `
		INSERT INTO example_contributions (meaning_id, example_text, translation, submitted_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, submitted_at, status
	`
	return d.Pool.QueryRow(ctx, query,
		c.MeaningID, c.ExampleText, c.Translation, c.SubmittedBy,
	).Scan(&c.ID, &c.SubmittedAt, &c.Status)
}

// GetExampleContributionByID retrieves an example contribution with its
// submitter and word context.
func (d *DB) GetExampleContributionByID(ctx context.Context, id uuid.UUID) (*models.ExampleContribution, error) {
	query := `
		SELECT ` + contributionColumns + `,
			COALESCE(u.name, ''), COALESCE(u.email, ''), w.word, w.slug, m.meaning
		FROM example_contributions c` + contributionJoins + `
		WHERE c.id = $1
	`
	return scanContribution(d.Pool.QueryRow(ctx, query, id))
}

// GetPendingExampleContributions retrieves the example review queue, oldest
// first.
func (d *DB) GetPendingExampleContributions(ctx context.Context) ([]models.ExampleContribution, error) {
	query := `
		SELECT ` + contributionColumns + `,
			COALESCE(u.name, ''), COALESCE(u.email, ''), w.word, w.slug, m.meaning
		FROM example_contributions c` + contributionJoins + `
		WHERE c.status = $1
		ORDER BY c.submitted_at ASC
	`

	rows, err := d.Pool.Query(ctx, query, models.StatusPending)
	if err != nil {
		return nil, err
	}
	return scanContributions(rows)
}

// GetExampleContributionsByUser retrieves all example contributions by a
// contributor, newest first.
func (d *DB) GetExampleContributionsByUser(ctx context.Context, userID uuid.UUID) ([]models.ExampleContribution, error) {
	query := `
		SELECT ` + contributionColumns + `,
			COALESCE(u.name, ''), COALESCE(u.email, ''), w.word, w.slug, m.meaning
		FROM example_contributions c` + contributionJoins + `
		WHERE c.submitted_by = $1
		ORDER BY c.submitted_at DESC
	`

	rows, err := d.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return scanContributions(rows)
}

// ApproveExampleContribution publishes a pending example contribution: in
// one transaction it creates the shared example, links it to the meaning,
// and marks the contribution approved with the reviewer and back-link.
//
// Returns ErrAlreadyProcessed if the contribution is no longer pending and
// ErrSubmissionNotFound if it does not exist.
func (d *DB) ApproveExampleContribution(ctx context.Context, contributionID, reviewerID uuid.UUID) (*models.Example, error) {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var c models.ExampleContribution
	err = tx.QueryRow(ctx, `
		SELECT id, meaning_id, example_text, translation
		FROM example_contributions
		WHERE id = $1 AND status = $2
		FOR UPDATE
	`, contributionID, models.StatusPending).Scan(&c.ID, &c.MeaningID, &c.ExampleText, &c.Translation)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, d.classifyContributionMiss(ctx, contributionID)
	}
	if err != nil {
		return nil, err
	}

	example := &models.Example{
		ExampleText: c.ExampleText,
		Translation: c.Translation,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO examples (example_text, translation)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, example.ExampleText, example.Translation).Scan(&example.ID, &example.CreatedAt)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO meaning_examples (meaning_id, example_id)
		VALUES ($1, $2)
	`, c.MeaningID, example.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	_, err = tx.Exec(ctx, `
		UPDATE example_contributions
		SET status = $1, reviewed_by = $2, reviewed_at = $3, approved_example_id = $4
		WHERE id = $5
	`, models.StatusApproved, reviewerID, now, example.ID, contributionID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return example, nil
}

// RejectExampleContribution marks a pending example contribution rejected.
// Guarded on status like word submissions: repeat calls are no-ops.
func (d *DB) RejectExampleContribution(ctx context.Context, contributionID, reviewerID uuid.UUID, notes string) error {
	if notes == "" {
		notes = models.DefaultRejectionNotes
	}

	now := time.Now()
	result, err := d.Pool.Exec(ctx, `
		UPDATE example_contributions
		SET status = $1, reviewed_by = $2, reviewed_at = $3, review_notes = $4
		WHERE id = $5 AND status = $6
	`, models.StatusRejected, reviewerID, now, notes, contributionID, models.StatusPending)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return d.classifyContributionMiss(ctx, contributionID)
	}
	return nil
}

func (d *DB) classifyContributionMiss(ctx context.Context, contributionID uuid.UUID) error {
	var status string
	err := d.Pool.QueryRow(ctx,
		`SELECT status FROM example_contributions WHERE id = $1`, contributionID,
	).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrSubmissionNotFound
	}
	if err != nil {
		return err
	}
	return ErrAlreadyProcessed
}
