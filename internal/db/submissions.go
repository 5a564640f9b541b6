package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"lexipedia/internal/models"
)

// submissionColumns is the standard column list for word submission queries.
const submissionColumns = `s.id, s.word, s.pronunciation_url, s.dialects, s.related_terms,
	s.submitted_by, s.submitted_at, s.status, s.reviewed_by, s.reviewed_at,
	s.review_notes, s.approved_word_id`

func scanSubmission(row pgx.Row) (*models.WordSubmission, error) {
	var sub models.WordSubmission
	err := row.Scan(
		&sub.ID,
		&sub.Word,
		&sub.PronunciationURL,
		&sub.Dialects,
		&sub.RelatedTerms,
		&sub.SubmittedBy,
		&sub.SubmittedAt,
		&sub.Status,
		&sub.ReviewedBy,
		&sub.ReviewedAt,
		&sub.ReviewNotes,
		&sub.ApprovedWordID,
		&sub.SubmitterName,
		&sub.SubmitterEmail,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSubmissionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func scanSubmissions(rows pgx.Rows) ([]models.WordSubmission, error) {
	defer rows.Close()

	var subs []models.WordSubmission
	for rows.Next() {
		var s models.WordSubmission
		if err := rows.Scan(
			&s.ID, &s.Word, &s.PronunciationURL, &s.Dialects, &s.RelatedTerms,
			&s.SubmittedBy, &s.SubmittedAt, &s.Status, &s.ReviewedBy, &s.ReviewedAt,
			&s.ReviewNotes, &s.ApprovedWordID,
			&s.SubmitterName, &s.SubmitterEmail,
		); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}

	return subs, rows.Err()
}

// CreateWordSubmission inserts a pending word submission together with its
// nested meaning and example submissions in one transaction.
func (d *DB) CreateWordSubmission(ctx context.Context, sub *models.WordSubmission) error {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO word_submissions (word, pronunciation_url, dialects, related_terms, submitted_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, submitted_at, status
	`, sub.Word, sub.PronunciationURL, sub.Dialects, sub.RelatedTerms, sub.SubmittedBy,
	).Scan(&sub.ID, &sub.SubmittedAt, &sub.Status)
	if err != nil {
		return err
	}

	for i := range sub.Meanings {
		m := &sub.Meanings[i]
		m.WordSubmissionID = sub.ID
		m.Position = i

		err = tx.QueryRow(ctx, `
			INSERT INTO meaning_submissions (word_submission_id, meaning, part_of_speech_id, position)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, m.WordSubmissionID, m.Meaning, m.PartOfSpeechID, m.Position).Scan(&m.ID)
		if err != nil {
			return err
		}

		for j := range m.Examples {
			e := &m.Examples[j]
			e.MeaningSubmissionID = m.ID

			err = tx.QueryRow(ctx, `
				INSERT INTO example_submissions (meaning_submission_id, example_text, translation)
				VALUES ($1, $2, $3)
				RETURNING id
			`, e.MeaningSubmissionID, e.ExampleText, e.Translation).Scan(&e.ID)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}

// GetWordSubmissionByID retrieves a word submission with submitter info and
// its nested meaning and example submissions.
func (d *DB) GetWordSubmissionByID(ctx context.Context, id uuid.UUID) (*models.WordSubmission, error) {
	query := `
		SELECT ` + submissionColumns + `, COALESCE(u.name, ''), COALESCE(u.email, '')
		FROM word_submissions s
		JOIN users u ON u.id = s.submitted_by
		WHERE s.id = $1
	`
	sub, err := scanSubmission(d.Pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	meanings, err := d.GetMeaningSubmissions(ctx, sub.ID)
	if err != nil {
		return nil, err
	}
	sub.Meanings = meanings

	return sub, nil
}

// GetMeaningSubmissions retrieves the pending meanings of a word submission
// in position order, each with its pending examples.
func (d *DB) GetMeaningSubmissions(ctx context.Context, wordSubmissionID uuid.UUID) ([]models.MeaningSubmission, error) {
	query := `
		SELECT m.id, m.word_submission_id, m.meaning, m.part_of_speech_id, m.position, p.name
		FROM meaning_submissions m
		JOIN parts_of_speech p ON p.id = m.part_of_speech_id
		WHERE m.word_submission_id = $1
		ORDER BY m.position ASC
	`

	rows, err := d.Pool.Query(ctx, query, wordSubmissionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meanings []models.MeaningSubmission
	for rows.Next() {
		var m models.MeaningSubmission
		if err := rows.Scan(
			&m.ID, &m.WordSubmissionID, &m.Meaning, &m.PartOfSpeechID, &m.Position,
			&m.PartOfSpeech,
		); err != nil {
			return nil, err
		}
		meanings = append(meanings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range meanings {
		examples, err := d.getExampleSubmissions(ctx, meanings[i].ID)
		if err != nil {
			return nil, err
		}
		meanings[i].Examples = examples
	}

	return meanings, nil
}

func (d *DB) getExampleSubmissions(ctx context.Context, meaningSubmissionID uuid.UUID) ([]models.ExampleSubmission, error) {
	query := `
		SELECT id, meaning_submission_id, example_text, translation
		FROM example_submissions
		WHERE meaning_submission_id = $1
		ORDER BY id
	`

	rows, err := d.Pool.Query(ctx, query, meaningSubmissionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var examples []models.ExampleSubmission
	for rows.Next() {
		var e models.ExampleSubmission
		if err := rows.Scan(&e.ID, &e.MeaningSubmissionID, &e.ExampleText, &e.Translation); err != nil {
			return nil, err
		}
		examples = append(examples, e)
	}

	return examples, rows.Err()
}

// GetPendingWordSubmissions retrieves the moderation queue, oldest first.
func (d *DB) GetPendingWordSubmissions(ctx context.Context) ([]models.WordSubmission, error) {
	query := `
		SELECT ` + submissionColumns + `, COALESCE(u.name, ''), COALESCE(u.email, '')
		FROM word_submissions s
		JOIN users u ON u.id = s.submitted_by
		WHERE s.status = $1
		ORDER BY s.submitted_at ASC
	`

	rows, err := d.Pool.Query(ctx, query, models.StatusPending)
	if err != nil {
		return nil, err
	}
	return scanSubmissions(rows)
}

// GetPendingWordSubmissionsByIDs re-filters a set of submission IDs to those
// still pending. Moderation can race another reviewer, so the confirmation
// step of a bulk action must not trust the IDs it was given.
func (d *DB) GetPendingWordSubmissionsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.WordSubmission, error) {
	if len(ids) == 0 {
		return []models.WordSubmission{}, nil
	}

	query := `
		SELECT ` + submissionColumns + `, COALESCE(u.name, ''), COALESCE(u.email, '')
		FROM word_submissions s
		JOIN users u ON u.id = s.submitted_by
		WHERE s.id = ANY($1) AND s.status = $2
		ORDER BY LOWER(s.word) ASC
	`

	rows, err := d.Pool.Query(ctx, query, ids, models.StatusPending)
	if err != nil {
		return nil, err
	}
	return scanSubmissions(rows)
}

// GetWordSubmissionsByUser retrieves all submissions by a contributor,
// newest first.
func (d *DB) GetWordSubmissionsByUser(ctx context.Context, userID uuid.UUID) ([]models.WordSubmission, error) {
	query := `
		SELECT ` + submissionColumns + `, COALESCE(u.name, ''), COALESCE(u.email, '')
		FROM word_submissions s
		JOIN users u ON u.id = s.submitted_by
		WHERE s.submitted_by = $1
		ORDER BY s.submitted_at DESC
	`

	rows, err := d.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return scanSubmissions(rows)
}

// ApproveWordSubmission publishes a pending word submission: in one
// transaction it creates the published word and marks the submission
// approved with the reviewer and back-link. The word text uniqueness is
// enforced by the store's unique index, not an application-level check, so
// two reviewers approving near-duplicate submissions concurrently cannot
// both publish; the second writer gets ErrDuplicateWord.
//
// Returns ErrAlreadyProcessed if the submission is no longer pending and
// ErrSubmissionNotFound if it does not exist. Neither alters the row.
func (d *DB) ApproveWordSubmission(ctx context.Context, submissionID, reviewerID uuid.UUID, slug string) (*models.Word, error) {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock the submission row so a racing decision on the same submission
	// serializes here.
	var sub models.WordSubmission
	err = tx.QueryRow(ctx, `
		SELECT id, word, pronunciation_url, dialects, related_terms, submitted_by
		FROM word_submissions
		WHERE id = $1 AND status = $2
		FOR UPDATE
	`, submissionID, models.StatusPending).Scan(
		&sub.ID, &sub.Word, &sub.PronunciationURL, &sub.Dialects, &sub.RelatedTerms, &sub.SubmittedBy,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, d.classifyWordSubmissionMiss(ctx, submissionID)
	}
	if err != nil {
		return nil, err
	}

	word := &models.Word{
		Word:             sub.Word,
		Slug:             slug,
		PronunciationURL: sub.PronunciationURL,
		Dialects:         sub.Dialects,
		RelatedTerms:     sub.RelatedTerms,
		ContributorID:    &sub.SubmittedBy,
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO words (word, slug, pronunciation_url, dialects, related_terms, contributor_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, word.Word, word.Slug, word.PronunciationURL, word.Dialects, word.RelatedTerms, word.ContributorID,
	).Scan(&word.ID, &word.CreatedAt, &word.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateWord
		}
		return nil, err
	}

	now := time.Now()
	_, err = tx.Exec(ctx, `
		UPDATE word_submissions
		SET status = $1, reviewed_by = $2, reviewed_at = $3, approved_word_id = $4
		WHERE id = $5
	`, models.StatusApproved, reviewerID, now, word.ID, submissionID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return word, nil
}

// RejectWordSubmission marks a pending word submission rejected with the
// reviewer and notes. Guarded on status, so a repeat call is a no-op that
// does not overwrite the original decision.
func (d *DB) RejectWordSubmission(ctx context.Context, submissionID, reviewerID uuid.UUID, notes string) error {
	if notes == "" {
		notes = models.DefaultRejectionNotes
	}

	now := time.Now()
	result, err := d.Pool.Exec(ctx, `
		UPDATE word_submissions
		SET status = $1, reviewed_by = $2, reviewed_at = $3, review_notes = $4
		WHERE id = $5 AND status = $6
	`, models.StatusRejected, reviewerID, now, notes, submissionID, models.StatusPending)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return d.classifyWordSubmissionMiss(ctx, submissionID)
	}
	return nil
}

// classifyWordSubmissionMiss distinguishes "no such submission" from
// "submission exists but was already decided" after a guarded write
// matched zero rows.
func (d *DB) classifyWordSubmissionMiss(ctx context.Context, submissionID uuid.UUID) error {
	var status string
	err := d.Pool.QueryRow(ctx,
		`SELECT status FROM word_submissions WHERE id = $1`, submissionID,
	).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrSubmissionNotFound
	}
	if err != nil {
		return err
	}
	return ErrAlreadyProcessed
}
