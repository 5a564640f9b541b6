package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"lexipedia/internal/models"
)

// CreateMeaning inserts a meaning for a published word.
func (d *DB) CreateMeaning(ctx context.Context, meaning *models.Meaning) error {
	query := `
		INSERT INTO meanings (word_id, meaning, part_of_speech_id, position)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return d.Pool.QueryRow(ctx, query,
		meaning.WordID,
		meaning.Meaning,
		meaning.PartOfSpeechID,
		meaning.Position,
	).Scan(&meaning.ID, &meaning.CreatedAt)
}

// GetMeaningByID retrieves a meaning with its part of speech name.
func (d *DB) GetMeaningByID(ctx context.Context, id uuid.UUID) (*models.Meaning, error) {
	query := `
		SELECT m.id, m.word_id, m.meaning, m.part_of_speech_id, m.position, m.created_at, p.name
		FROM meanings m
		JOIN parts_of_speech p ON p.id = m.part_of_speech_id
		WHERE m.id = $1
	`

	var m models.Meaning
	err := d.Pool.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.WordID, &m.Meaning, &m.PartOfSpeechID, &m.Position, &m.CreatedAt,
		&m.PartOfSpeech,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrMeaningNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetMeaningsForWord retrieves a word's meanings in position order, with
// part of speech names and attached examples.
func (d *DB) GetMeaningsForWord(ctx context.Context, wordID uuid.UUID) ([]models.Meaning, error) {
	query := `
		SELECT m.id, m.word_id, m.meaning, m.part_of_speech_id, m.position, m.created_at, p.name
		FROM meanings m
		JOIN parts_of_speech p ON p.id = m.part_of_speech_id
		WHERE m.word_id = $1
		ORDER BY m.position ASC, m.created_at ASC
	`

	rows, err := d.Pool.Query(ctx, query, wordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meanings []models.Meaning
	for rows.Next() {
		var m models.Meaning
		if err := rows.Scan(
			&m.ID, &m.WordID, &m.Meaning, &m.PartOfSpeechID, &m.Position, &m.CreatedAt,
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
		examples, err := d.GetExamplesForMeaning(ctx, meanings[i].ID)
		if err != nil {
			return nil, err
		}
		meanings[i].Examples = examples
	}

	return meanings, nil
}
