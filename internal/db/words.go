package db

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"lexipedia/internal/models"
	"lexipedia/internal/validation"
)

// wordColumns is the standard column list for word queries.
const wordColumns = `w.id, w.word, w.slug, w.pronunciation_url, w.dialects,
	w.related_terms, w.contributor_id, w.created_at, w.updated_at`

// scanWord scans a row into a Word struct, including the contributor name
// which every word query joins in.
func scanWord(row pgx.Row) (*models.Word, error) {
	var word models.Word
	err := row.Scan(
		&word.ID,
		&word.Word,
		&word.Slug,
		&word.PronunciationURL,
		&word.Dialects,
		&word.RelatedTerms,
		&word.ContributorID,
		&word.CreatedAt,
		&word.UpdatedAt,
		&word.ContributorName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrWordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &word, nil
}

func scanWords(rows pgx.Rows) ([]models.Word, error) {
	defer rows.Close()

	var words []models.Word
	for rows.Next() {
		var w models.Word
		if err := rows.Scan(
			&w.ID, &w.Word, &w.Slug, &w.PronunciationURL, &w.Dialects,
			&w.RelatedTerms, &w.ContributorID, &w.CreatedAt, &w.UpdatedAt,
			&w.ContributorName,
		); err != nil {
			return nil, err
		}
		words = append(words, w)
	}

	return words, rows.Err()
}

// GetWordByID retrieves a published word by its ID.
func (d *DB) GetWordByID(ctx context.Context, id uuid.UUID) (*models.Word, error) {
	query := `
		SELECT ` + wordColumns + `, COALESCE(u.name, '')
		FROM words w
		LEFT JOIN users u ON u.id = w.contributor_id
		WHERE w.id = $1
	`
	return scanWord(d.Pool.QueryRow(ctx, query, id))
}

// GetWordBySlug retrieves a published word by slug, with its meanings and
// their examples populated.
func (d *DB) GetWordBySlug(ctx context.Context, slug string) (*models.Word, error) {
	query := `
		SELECT ` + wordColumns + `, COALESCE(u.name, '')
		FROM words w
		LEFT JOIN users u ON u.id = w.contributor_id
		WHERE w.slug = $1
	`
	word, err := scanWord(d.Pool.QueryRow(ctx, query, slug))
	if err != nil {
		return nil, err
	}

	meanings, err := d.GetMeaningsForWord(ctx, word.ID)
	if err != nil {
		return nil, err
	}
	word.Meanings = meanings

	return word, nil
}

// GetWordByText retrieves a published word by its text, case-insensitively.
// Used to reference the existing entry when a duplicate approval is rejected.
func (d *DB) GetWordByText(ctx context.Context, text string) (*models.Word, error) {
	query := `
		SELECT ` + wordColumns + `, COALESCE(u.name, '')
		FROM words w
		LEFT JOIN users u ON u.id = w.contributor_id
		WHERE LOWER(w.word) = $1
	`
	return scanWord(d.Pool.QueryRow(ctx, query, validation.NormalizeWord(text)))
}

// SearchWords searches published words by text, meaning, or related terms.
func (d *DB) SearchWords(ctx context.Context, queryStr string, limit int) ([]models.Word, error) {
	if strings.TrimSpace(queryStr) == "" {
		return d.GetNewestWords(ctx, limit)
	}

	pattern := "%" + queryStr + "%"
	query := `
		SELECT DISTINCT ` + wordColumns + `, COALESCE(u.name, '')
		FROM words w
		LEFT JOIN users u ON u.id = w.contributor_id
		LEFT JOIN meanings m ON m.word_id = w.id
		WHERE w.word ILIKE $1 OR w.related_terms ILIKE $1 OR m.meaning ILIKE $1
		ORDER BY w.word ASC
		LIMIT $2
	`

	rows, err := d.Pool.Query(ctx, query, pattern, limit)
	if err != nil {
		return nil, err
	}
	return scanWords(rows)
}

// BrowseWords retrieves published words for the browse page, optionally
// filtered to those starting with a letter, with offset pagination.
func (d *DB) BrowseWords(ctx context.Context, letter string, limit, offset int) ([]models.Word, error) {
	var sql string
	var args []any

	if letter != "" {
		sql = `
			SELECT ` + wordColumns + `, COALESCE(u.name, '')
			FROM words w
			LEFT JOIN users u ON u.id = w.contributor_id
			WHERE w.word ILIKE $1 || '%'
			ORDER BY LOWER(w.word) ASC
			LIMIT $2 OFFSET $3
		`
		args = []any{letter, limit, offset}
	} else {
		sql = `
			SELECT ` + wordColumns + `, COALESCE(u.name, '')
			FROM words w
			LEFT JOIN users u ON u.id = w.contributor_id
			ORDER BY LOWER(w.word) ASC
			LIMIT $1 OFFSET $2
		`
		args = []any{limit, offset}
	}

	rows, err := d.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return scanWords(rows)
}

// CountWords returns the number of published words, optionally filtered by
// starting letter.
func (d *DB) CountWords(ctx context.Context, letter string) (int, error) {
	var count int
	var err error
	if letter != "" {
		err = d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM words WHERE word ILIKE $1 || '%'`, letter).Scan(&count)
	} else {
		err = d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM words`).Scan(&count)
	}
	return count, err
}

// GetNewestWords retrieves the most recently published words.
func (d *DB) GetNewestWords(ctx context.Context, limit int) ([]models.Word, error) {
	query := `
		SELECT ` + wordColumns + `, COALESCE(u.name, '')
		FROM words w
		LEFT JOIN users u ON u.id = w.contributor_id
		ORDER BY w.created_at DESC
		LIMIT $1
	`

	rows, err := d.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return scanWords(rows)
}
