package db

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestGetPartOfSpeechByID(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	id := anyPartOfSpeech(t, database)

	part, err := database.GetPartOfSpeechByID(ctx, id)
	if err != nil {
		t.Fatalf("GetPartOfSpeechByID() error = %v", err)
	}
	if part.ID != id {
		t.Error("GetPartOfSpeechByID() returned the wrong row")
	}
	if part.Name == "" {
		t.Error("part of speech is missing its name")
	}
}

func TestGetPartOfSpeechByID_NotFound(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := database.GetPartOfSpeechByID(context.Background(), uuid.New())
	if !errors.Is(err, ErrPartOfSpeechNotFound) {
		t.Fatalf("GetPartOfSpeechByID() error = %v, want ErrPartOfSpeechNotFound", err)
	}
}
