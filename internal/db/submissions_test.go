package db

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"lexipedia/internal/models"
)

func insertTestWord(t *testing.T, database *DB, word, slug string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := database.Pool.QueryRow(context.Background(), `
		INSERT INTO words (word, slug) VALUES ($1, $2) RETURNING id
	`, word, slug).Scan(&id)
	if err != nil {
		t.Fatalf("failed to insert word: %v", err)
	}
	return id
}

func TestCreateWordSubmission(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	user := createTestUser(t, database, "submitter", models.RoleUser)

	sub := createTestSubmission(t, database, "agba", user)

	if sub.ID == uuid.Nil {
		t.Error("CreateWordSubmission() did not set ID")
	}
	if sub.Status != models.StatusPending {
		t.Errorf("CreateWordSubmission() status = %q, want %q", sub.Status, models.StatusPending)
	}
	if sub.SubmittedAt.IsZero() {
		t.Error("CreateWordSubmission() did not set SubmittedAt")
	}

	got, err := database.GetWordSubmissionByID(ctx, sub.ID)
	if err != nil {
		t.Fatalf("GetWordSubmissionByID() error = %v", err)
	}
	if got.Word != "agba" {
		t.Errorf("Word = %q, want %q", got.Word, "agba")
	}
	if len(got.Meanings) != 1 {
		t.Fatalf("len(Meanings) = %d, want 1", len(got.Meanings))
	}
	if len(got.Meanings[0].Examples) != 1 {
		t.Fatalf("len(Examples) = %d, want 1", len(got.Meanings[0].Examples))
	}
	if got.SubmitterName == "" {
		t.Error("GetWordSubmissionByID() did not join submitter name")
	}
}

func TestApproveWordSubmission(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	user := createTestUser(t, database, "submitter", models.RoleUser)
	mod := createTestUser(t, database, "moderator", models.RoleModerator)

	sub := createTestSubmission(t, database, "ojo", user)

	word, err := database.ApproveWordSubmission(ctx, sub.ID, mod.ID, "ojo")
	if err != nil {
		t.Fatalf("ApproveWordSubmission() error = %v", err)
	}
	if word.Word != "ojo" {
		t.Errorf("word = %q, want %q", word.Word, "ojo")
	}
	if word.ContributorID == nil || *word.ContributorID != user.ID {
		t.Error("approved word does not credit the submitter")
	}

	got, err := database.GetWordSubmissionByID(ctx, sub.ID)
	if err != nil {
		t.Fatalf("GetWordSubmissionByID() error = %v", err)
	}
	if got.Status != models.StatusApproved {
		t.Errorf("status = %q, want %q", got.Status, models.StatusApproved)
	}
	if got.ReviewedBy == nil || *got.ReviewedBy != mod.ID {
		t.Error("submission does not record the reviewer")
	}
	if got.ReviewedAt == nil {
		t.Error("submission does not record the review time")
	}
	if got.ApprovedWordID == nil || *got.ApprovedWordID != word.ID {
		t.Error("submission does not link the published word")
	}
}

func TestApproveWordSubmission_DuplicateWord(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	user := createTestUser(t, database, "submitter", models.RoleUser)
	mod := createTestUser(t, database, "moderator", models.RoleModerator)

	// An entry with the same text, different case, already exists.
	insertTestWord(t, database, "Uka", "uka")

	sub := createTestSubmission(t, database, "uka", user)

	_, err := database.ApproveWordSubmission(ctx, sub.ID, mod.ID, "uka-2")
	if !errors.Is(err, ErrDuplicateWord) {
		t.Fatalf("ApproveWordSubmission() error = %v, want ErrDuplicateWord", err)
	}

	// The failed approval must not have touched the submission.
	got, err := database.GetWordSubmissionByID(ctx, sub.ID)
	if err != nil {
		t.Fatalf("GetWordSubmissionByID() error = %v", err)
	}
	if got.Status != models.StatusPending {
		t.Errorf("status after duplicate conflict = %q, want %q", got.Status, models.StatusPending)
	}
	if got.ReviewedBy != nil {
		t.Error("duplicate conflict should not record a reviewer")
	}
}

func TestApproveWordSubmission_AlreadyProcessed(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	user := createTestUser(t, database, "submitter", models.RoleUser)
	mod := createTestUser(t, database, "moderator", models.RoleModerator)

	sub := createTestSubmission(t, database, "ewo", user)

	if err := database.RejectWordSubmission(ctx, sub.ID, mod.ID, "not a real word"); err != nil {
		t.Fatalf("RejectWordSubmission() error = %v", err)
	}

	_, err := database.ApproveWordSubmission(ctx, sub.ID, mod.ID, "ewo")
	if !errors.Is(err, ErrAlreadyProcessed) {
		t.Fatalf("ApproveWordSubmission() error = %v, want ErrAlreadyProcessed", err)
	}

	// The original decision stands.
	got, err := database.GetWordSubmissionByID(ctx, sub.ID)
	if err != nil {
		t.Fatalf("GetWordSubmissionByID() error = %v", err)
	}
	if got.Status != models.StatusRejected {
		t.Errorf("status = %q, want %q", got.Status, models.StatusRejected)
	}
	if got.ReviewNotes == nil || *got.ReviewNotes != "not a real word" {
		t.Error("approval attempt overwrote the rejection notes")
	}
}

func TestApproveWordSubmission_NotFound(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()

	mod := createTestUser(t, database, "moderator", models.RoleModerator)

	_, err := database.ApproveWordSubmission(context.Background(), uuid.New(), mod.ID, "nope")
	if !errors.Is(err, ErrSubmissionNotFound) {
		t.Fatalf("ApproveWordSubmission() error = %v, want ErrSubmissionNotFound", err)
	}
}

func TestRejectWordSubmission_DefaultNotes(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	user := createTestUser(t, database, "submitter", models.RoleUser)
	mod := createTestUser(t, database, "moderator", models.RoleModerator)

	sub := createTestSubmission(t, database, "ole", user)

	if err := database.RejectWordSubmission(ctx, sub.ID, mod.ID, ""); err != nil {
		t.Fatalf("RejectWordSubmission() error = %v", err)
	}

	got, err := database.GetWordSubmissionByID(ctx, sub.ID)
	if err != nil {
		t.Fatalf("GetWordSubmissionByID() error = %v", err)
	}
	if got.ReviewNotes == nil || *got.ReviewNotes != models.DefaultRejectionNotes {
		t.Errorf("notes = %v, want default rejection notes", got.ReviewNotes)
	}
}

func TestRejectWordSubmission_RepeatIsNoOp(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	user := createTestUser(t, database, "submitter", models.RoleUser)
	mod := createTestUser(t, database, "moderator", models.RoleModerator)
	mod2 := createTestUser(t, database, "moderator2", models.RoleModerator)

	sub := createTestSubmission(t, database, "ata", user)

	if err := database.RejectWordSubmission(ctx, sub.ID, mod.ID, "first decision"); err != nil {
		t.Fatalf("RejectWordSubmission() error = %v", err)
	}

	err := database.RejectWordSubmission(ctx, sub.ID, mod2.ID, "second decision")
	if !errors.Is(err, ErrAlreadyProcessed) {
		t.Fatalf("second RejectWordSubmission() error = %v, want ErrAlreadyProcessed", err)
	}

	got, err := database.GetWordSubmissionByID(ctx, sub.ID)
	if err != nil {
		t.Fatalf("GetWordSubmissionByID() error = %v", err)
	}
	if *got.ReviewNotes != "first decision" {
		t.Errorf("notes = %q, the first decision should stand", *got.ReviewNotes)
	}
	if *got.ReviewedBy != mod.ID {
		t.Error("reviewer should be the first moderator")
	}
}

func TestGetPendingWordSubmissionsByIDs(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	user := createTestUser(t, database, "submitter", models.RoleUser)
	mod := createTestUser(t, database, "moderator", models.RoleModerator)

	first := createTestSubmission(t, database, "abo", user)
	second := createTestSubmission(t, database, "ibi", user)

	// Another moderator decides one of them in the meantime.
	if err := database.RejectWordSubmission(ctx, second.ID, mod.ID, "raced"); err != nil {
		t.Fatalf("RejectWordSubmission() error = %v", err)
	}

	pending, err := database.GetPendingWordSubmissionsByIDs(ctx, []uuid.UUID{first.ID, second.ID})
	if err != nil {
		t.Fatalf("GetPendingWordSubmissionsByIDs() error = %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("len(pending) = %d, want 1", len(pending))
	}
	if pending[0].ID != first.ID {
		t.Error("wrong submission survived the re-filter")
	}

	none, err := database.GetPendingWordSubmissionsByIDs(ctx, nil)
	if err != nil {
		t.Fatalf("GetPendingWordSubmissionsByIDs(nil) error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("len(pending) for empty input = %d, want 0", len(none))
	}
}

func TestGetPendingWordSubmissions_OldestFirst(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	user := createTestUser(t, database, "submitter", models.RoleUser)

	first := createTestSubmission(t, database, "aaa", user)
	second := createTestSubmission(t, database, "bbb", user)

	pending, err := database.GetPendingWordSubmissions(ctx)
	if err != nil {
		t.Fatalf("GetPendingWordSubmissions() error = %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("len(pending) = %d, want 2", len(pending))
	}
	if pending[0].ID != first.ID || pending[1].ID != second.ID {
		t.Error("queue is not ordered oldest first")
	}
}
