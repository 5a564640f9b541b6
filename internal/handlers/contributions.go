package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"lexipedia/internal/config"
	"lexipedia/internal/db"
	"lexipedia/internal/models"
)

const leaderboardSize = 25

// ContributionHandler serves the contributor dashboard and leaderboard.
type ContributionHandler struct {
	db  *db.DB
	cfg *config.Config
}

// NewContributionHandler creates a new contribution handler.
func NewContributionHandler(database *db.DB, cfg *config.Config) *ContributionHandler {
	return &ContributionHandler{db: database, cfg: cfg}
}

// Dashboard renders the my-submissions page with the contributor's ledger
// card. A missing or never-computed ledger row is rebuilt on the spot.
func (h *ContributionHandler) Dashboard(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	submissions, err := h.db.GetWordSubmissionsByUser(c.Context(), user.ID)
	if err != nil {
		return err
	}

	examples, err := h.db.GetExampleContributionsByUser(c.Context(), user.ID)
	if err != nil {
		return err
	}

	stats, err := h.db.GetContributionStats(c.Context(), user.ID)
	if errors.Is(err, db.ErrStatsNotFound) || (err == nil && stats.TotalSubmissions == 0 && len(submissions) > 0) {
		if err := h.db.RecomputeContributionStats(c.Context(), user.ID); err != nil {
			return err
		}
		stats, err = h.db.GetContributionStats(c.Context(), user.ID)
	}
	if err != nil {
		return err
	}

	return c.Render("contributions", MergeBranding(fiber.Map{
		"User":        user,
		"Submissions": submissions,
		"Examples":    examples,
		"Stats":       stats,
		"Submitted":   c.Query("submitted") == "1",
	}, h.cfg))
}

// Leaderboard renders the community page of top contributors.
func (h *ContributionHandler) Leaderboard(c fiber.Ctx) error {
	user, _ := c.Locals("user").(*models.User)

	board, err := h.db.GetLeaderboard(c.Context(), leaderboardSize)
	if err != nil {
		return err
	}

	return c.Render("contributors", MergeBranding(fiber.Map{
		"User":        user,
		"Leaderboard": board,
	}, h.cfg))
}
