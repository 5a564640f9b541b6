package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"lexipedia/internal/config"
	"lexipedia/internal/db"
	"lexipedia/internal/metrics"
	"lexipedia/internal/models"
)

const browsePageSize = 50

// DictionaryHandler serves the public dictionary pages.
type DictionaryHandler struct {
	db  *db.DB
	cfg *config.Config
}

// NewDictionaryHandler creates a new dictionary handler.
func NewDictionaryHandler(database *db.DB, cfg *config.Config) *DictionaryHandler {
	return &DictionaryHandler{db: database, cfg: cfg}
}

// Index renders the home page with search results or the newest entries.
func (h *DictionaryHandler) Index(c fiber.Ctx) error {
	user, _ := c.Locals("user").(*models.User)
	query := strings.TrimSpace(c.Query("q", ""))

	words, err := h.db.SearchWords(c.Context(), query, 50)
	if err != nil {
		return err
	}

	if query != "" {
		outcome := db.LookupHit
		if len(words) == 0 {
			outcome = db.LookupMiss
		}
		metrics.RecordSearchLookup(query, outcome)
	}

	total, err := h.db.CountWords(c.Context(), "")
	if err != nil {
		return err
	}

	return c.Render("index", MergeBranding(fiber.Map{
		"User":       user,
		"Query":      query,
		"Words":      words,
		"TotalWords": total,
	}, h.cfg))
}

// Browse renders the A-Z word listing with pagination.
func (h *DictionaryHandler) Browse(c fiber.Ctx) error {
	user, _ := c.Locals("user").(*models.User)

	letter := strings.TrimSpace(c.Query("letter", ""))
	if len(letter) > 1 {
		letter = letter[:1]
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * browsePageSize

	words, err := h.db.BrowseWords(c.Context(), letter, browsePageSize, offset)
	if err != nil {
		return err
	}

	total, err := h.db.CountWords(c.Context(), letter)
	if err != nil {
		return err
	}

	totalPages := (total + browsePageSize - 1) / browsePageSize
	if totalPages < 1 {
		totalPages = 1
	}

	letters := make([]string, 0, 26)
	for r := 'A'; r <= 'Z'; r++ {
		letters = append(letters, string(r))
	}

	return c.Render("browse", MergeBranding(fiber.Map{
		"User":       user,
		"Words":      words,
		"Letter":     letter,
		"Letters":    letters,
		"Page":       page,
		"TotalPages": totalPages,
		"Total":      total,
	}, h.cfg))
}

// Show renders a single dictionary entry with its meanings and examples.
func (h *DictionaryHandler) Show(c fiber.Ctx) error {
	user, _ := c.Locals("user").(*models.User)
	slug := c.Params("slug")

	word, err := h.db.GetWordBySlug(c.Context(), slug)
	if err != nil {
		if errors.Is(err, db.ErrWordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "word not found")
		}
		return err
	}

	return c.Render("word", MergeBranding(fiber.Map{
		"User": user,
		"Word": word,
	}, h.cfg))
}
