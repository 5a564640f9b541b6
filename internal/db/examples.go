package db

import (
	"context"

	"github.com/google/uuid"

	"lexipedia/internal/models"
)

// CreateExampleForMeaning inserts a shared example record and attaches it
// to a meaning in one transaction.
func (d *DB) CreateExampleForMeaning(ctx context.Context, meaningID uuid.UUID, example *models.Example) error {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO examples (example_text, translation)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, example.ExampleText, example.Translation).Scan(&example.ID, &example.CreatedAt)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO meaning_examples (meaning_id, example_id)
		VALUES ($1, $2)
	`, meaningID, example.ID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetExamplesForMeaning retrieves all examples attached to a meaning.
func (d *DB) GetExamplesForMeaning(ctx context.Context, meaningID uuid.UUID) ([]models.Example, error) {
	query := `
		SELECT e.id, e.example_text, e.translation, e.created_at
		FROM examples e
		JOIN meaning_examples me ON me.example_id = e.id
		WHERE me.meaning_id = $1
		ORDER BY e.created_at ASC
	`

	rows, err := d.Pool.Query(ctx, query, meaningID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var examples []models.Example
	for rows.Next() {
		var e models.Example
		if err := rows.Scan(&e.ID, &e.ExampleText, &e.Translation, &e.CreatedAt); err != nil {
			return nil, err
		}
		examples = append(examples, e)
	}

	return examples, rows.Err()
}
