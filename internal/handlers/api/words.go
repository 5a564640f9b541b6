package api

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"lexipedia/internal/config"
	"lexipedia/internal/db"
	"lexipedia/internal/metrics"
)

// WordHandler serves dictionary entries via JSON API.
type WordHandler struct {
	db  *db.DB
	cfg *config.Config
}

// NewWordHandler creates a new API word handler.
func NewWordHandler(database *db.DB, cfg *config.Config) *WordHandler {
	return &WordHandler{db: database, cfg: cfg}
}

// List returns words, optionally filtered by search query.
func (h *WordHandler) List(c fiber.Ctx) error {
	query := c.Query("q", "")
	words, err := h.db.SearchWords(c.Context(), query, 100)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch words")
	}

	if query != "" {
		outcome := db.LookupHit
		if len(words) == 0 {
			outcome = db.LookupMiss
		}
		metrics.RecordSearchLookup(query, outcome)
	}

	return jsonSuccess(c, words)
}

// Get returns a single word by ID, with meanings and examples.
func (h *WordHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid word id")
	}

	word, err := h.db.GetWordByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrWordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "word not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch word")
	}

	meanings, err := h.db.GetMeaningsForWord(c.Context(), word.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch meanings")
	}
	word.Meanings = meanings

	return jsonSuccess(c, word)
}

// GetBySlug returns a single word by slug, with meanings and examples.
func (h *WordHandler) GetBySlug(c fiber.Ctx) error {
	word, err := h.db.GetWordBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		if errors.Is(err, db.ErrWordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "word not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch word")
	}

	return jsonSuccess(c, word)
}
