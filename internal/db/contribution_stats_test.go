package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"lexipedia/internal/models"
)

func TestRecomputeContributionStats(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	user := createTestUser(t, database, "counter", models.RoleUser)
	mod := createTestUser(t, database, "moderator", models.RoleModerator)

	approved := createTestSubmission(t, database, "one", user)
	createTestSubmission(t, database, "two", user)
	rejected := createTestSubmission(t, database, "three", user)

	if _, err := database.ApproveWordSubmission(ctx, approved.ID, mod.ID, "one"); err != nil {
		t.Fatalf("ApproveWordSubmission() error = %v", err)
	}
	if err := database.RejectWordSubmission(ctx, rejected.ID, mod.ID, "no"); err != nil {
		t.Fatalf("RejectWordSubmission() error = %v", err)
	}

	if err := database.RecomputeContributionStats(ctx, user.ID); err != nil {
		t.Fatalf("RecomputeContributionStats() error = %v", err)
	}

	stats, err := database.GetContributionStats(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetContributionStats() error = %v", err)
	}

	if stats.ApprovedCount != 1 {
		t.Errorf("ApprovedCount = %d, want 1", stats.ApprovedCount)
	}
	if stats.PendingCount != 1 {
		t.Errorf("PendingCount = %d, want 1", stats.PendingCount)
	}
	if stats.RejectedCount != 1 {
		t.Errorf("RejectedCount = %d, want 1", stats.RejectedCount)
	}
	if stats.TotalSubmissions != 3 {
		t.Errorf("TotalSubmissions = %d, want 3", stats.TotalSubmissions)
	}
	if stats.FirstContribution == nil || stats.LastContribution == nil {
		t.Error("contribution timestamps not set")
	}
}

func TestRecomputeContributionStats_Overwrites(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	user := createTestUser(t, database, "counter", models.RoleUser)

	createTestSubmission(t, database, "first", user)
	if err := database.RecomputeContributionStats(ctx, user.ID); err != nil {
		t.Fatalf("RecomputeContributionStats() error = %v", err)
	}

	createTestSubmission(t, database, "second", user)
	if err := database.RecomputeContributionStats(ctx, user.ID); err != nil {
		t.Fatalf("RecomputeContributionStats() error = %v", err)
	}

	stats, err := database.GetContributionStats(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetContributionStats() error = %v", err)
	}
	if stats.TotalSubmissions != 2 {
		t.Errorf("TotalSubmissions = %d, want 2", stats.TotalSubmissions)
	}
	if stats.PendingCount != 2 {
		t.Errorf("PendingCount = %d, want 2", stats.PendingCount)
	}
}

func TestRecomputeContributionStats_NoSubmissions(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	user := createTestUser(t, database, "empty", models.RoleUser)

	if err := database.RecomputeContributionStats(ctx, user.ID); err != nil {
		t.Fatalf("RecomputeContributionStats() error = %v", err)
	}

	stats, err := database.GetContributionStats(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetContributionStats() error = %v", err)
	}
	if stats.TotalSubmissions != 0 {
		t.Errorf("TotalSubmissions = %d, want 0", stats.TotalSubmissions)
	}
	if stats.FirstContribution != nil {
		t.Error("FirstContribution should be nil with no submissions")
	}
}

func TestGetContributionStats_NotFound(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()

	user := createTestUser(t, database, "noledger", models.RoleUser)

	_, err := database.GetContributionStats(context.Background(), user.ID)
	if !errors.Is(err, ErrStatsNotFound) {
		t.Fatalf("GetContributionStats() error = %v, want ErrStatsNotFound", err)
	}
}

func TestGetLeaderboard(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	mod := createTestUser(t, database, "moderator", models.RoleModerator)

	// heavy has two approved words, light has one.
	heavy := createTestUser(t, database, "heavy", models.RoleUser)
	light := createTestUser(t, database, "light", models.RoleUser)

	for i, word := range []string{"alpha", "beta"} {
		sub := createTestSubmission(t, database, word, heavy)
		if _, err := database.ApproveWordSubmission(ctx, sub.ID, mod.ID, word); err != nil {
			t.Fatalf("ApproveWordSubmission() %d error = %v", i, err)
		}
	}
	sub := createTestSubmission(t, database, "gamma", light)
	if _, err := database.ApproveWordSubmission(ctx, sub.ID, mod.ID, "gamma"); err != nil {
		t.Fatalf("ApproveWordSubmission() error = %v", err)
	}

	for _, u := range []*models.User{heavy, light} {
		if err := database.RecomputeContributionStats(ctx, u.ID); err != nil {
			t.Fatalf("RecomputeContributionStats() error = %v", err)
		}
	}

	board, err := database.GetLeaderboard(ctx, 10)
	if err != nil {
		t.Fatalf("GetLeaderboard() error = %v", err)
	}
	if len(board) != 2 {
		t.Fatalf("len(board) = %d, want 2", len(board))
	}
	if board[0].UserID != heavy.ID {
		t.Error("leaderboard should rank the heavier contributor first")
	}
	if board[0].UserName == "" {
		t.Error("leaderboard should join user names")
	}
}

func TestGetStaleStatsUserIDs(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	user := createTestUser(t, database, "stale", models.RoleUser)
	createTestSubmission(t, database, "word", user)

	// No ledger row yet: the user counts as stale.
	ids, err := database.GetStaleStatsUserIDs(ctx, time.Hour)
	if err != nil {
		t.Fatalf("GetStaleStatsUserIDs() error = %v", err)
	}
	if len(ids) != 1 || ids[0] != user.ID {
		t.Fatalf("stale ids = %v, want [%s]", ids, user.ID)
	}

	// Fresh ledger row: no longer stale.
	if err := database.RecomputeContributionStats(ctx, user.ID); err != nil {
		t.Fatalf("RecomputeContributionStats() error = %v", err)
	}
	ids, err = database.GetStaleStatsUserIDs(ctx, time.Hour)
	if err != nil {
		t.Fatalf("GetStaleStatsUserIDs() error = %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("stale ids after recompute = %v, want none", ids)
	}
}
