package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"lexipedia/internal/models"
)

// ListPartsOfSpeech retrieves all parts of speech ordered by name.
func (d *DB) ListPartsOfSpeech(ctx context.Context) ([]models.PartOfSpeech, error) {
	query := `SELECT id, name, description FROM parts_of_speech ORDER BY name ASC`

	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parts []models.PartOfSpeech
	for rows.Next() {
		var p models.PartOfSpeech
		if err := rows.Scan(&p.ID, &p.Name, &p.Description); err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}

	return parts, rows.Err()
}

// GetPartOfSpeechByID retrieves a single part of speech.
func (d *DB) GetPartOfSpeechByID(ctx context.Context, id uuid.UUID) (*models.PartOfSpeech, error) {
	query := `SELECT id, name, description FROM parts_of_speech WHERE id = $1`

	var p models.PartOfSpeech
	err := d.Pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPartOfSpeechNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SeedPartsOfSpeech inserts parts of speech from the site config,
// skipping any that already exist.
func (d *DB) SeedPartsOfSpeech(ctx context.Context, parts []models.PartOfSpeech) error {
	query := `
		INSERT INTO parts_of_speech (name, description)
		VALUES ($1, $2)
		ON CONFLICT (name) DO NOTHING
	`

	for _, p := range parts {
		if _, err := d.Pool.Exec(ctx, query, p.Name, p.Description); err != nil {
			return err
		}
	}

	return nil
}
