package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"lexipedia/internal/config"
	"lexipedia/internal/db"
	"lexipedia/internal/email"
	"lexipedia/internal/models"
	"lexipedia/internal/validation"
)

// SubmissionHandler handles contributor word and example submissions.
type SubmissionHandler struct {
	db       *db.DB
	cfg      *config.Config
	notifier *email.Notifier
}

// NewSubmissionHandler creates a new submission handler.
func NewSubmissionHandler(database *db.DB, cfg *config.Config, notifier *email.Notifier) *SubmissionHandler {
	return &SubmissionHandler{db: database, cfg: cfg, notifier: notifier}
}

// New renders the word submission form.
func (h *SubmissionHandler) New(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	parts, err := h.db.ListPartsOfSpeech(c.Context())
	if err != nil {
		return err
	}

	return c.Render("submit", MergeBranding(fiber.Map{
		"User":          user,
		"PartsOfSpeech": parts,
		"MaxMeanings":   h.cfg.MaxMeaningsPerWord,
		"MaxExamples":   h.cfg.MaxExamplesPerMeaning,
	}, h.cfg))
}

// Create accepts a word submission form: the word itself plus indexed
// meaning and example fields (meaning_0, pos_0, example_0_1, ...). The
// submission lands in the moderation queue as pending.
func (h *SubmissionHandler) Create(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	word := strings.TrimSpace(c.FormValue("word"))
	if valid, msg := validation.ValidateWord(word); !valid {
		return htmxError(c, msg)
	}
	if !validation.HasLetter(word) {
		return htmxError(c, "Word must contain at least one letter")
	}

	meanings, errMsg := h.parseMeanings(c)
	if errMsg != "" {
		return htmxError(c, errMsg)
	}
	if len(meanings) == 0 {
		return htmxError(c, "At least one meaning is required")
	}

	sub := &models.WordSubmission{
		Word:             word,
		PronunciationURL: strings.TrimSpace(c.FormValue("pronunciation_url")),
		Dialects:         strings.TrimSpace(c.FormValue("dialects")),
		RelatedTerms:     strings.TrimSpace(c.FormValue("related_terms")),
		SubmittedBy:      user.ID,
		SubmitterName:    user.DisplayName(),
		SubmitterEmail:   user.Email,
		Meanings:         meanings,
	}

	if err := h.db.CreateWordSubmission(c.Context(), sub); err != nil {
		return err
	}

	if err := h.db.RecomputeContributionStats(c.Context(), user.ID); err != nil {
		// Ledger is rebuilt lazily on the dashboard, so this is not fatal.
		log.Printf("Failed to recompute contribution stats for %s: %v", user.ID, err)
	}

	h.notifier.NotifyWordSubmitted(c.Context(), sub)

	return c.Redirect().To("/contributions?submitted=1")
}

// parseMeanings extracts the indexed meaning and example fields from the
// submission form, enforcing the configured limits.
func (h *SubmissionHandler) parseMeanings(c fiber.Ctx) ([]models.MeaningSubmission, string) {
	var meanings []models.MeaningSubmission

	for i := 0; i < h.cfg.MaxMeaningsPerWord; i++ {
		text := strings.TrimSpace(c.FormValue(fmt.Sprintf("meaning_%d", i)))
		posStr := strings.TrimSpace(c.FormValue(fmt.Sprintf("pos_%d", i)))
		if text == "" && posStr == "" {
			continue
		}

		if valid, msg := validation.ValidateMeaning(text); !valid {
			return nil, msg
		}

		posID, err := uuid.Parse(posStr)
		if err != nil {
			return nil, "Each meaning needs a part of speech"
		}

		meaning := models.MeaningSubmission{
			Meaning:        text,
			PartOfSpeechID: posID,
		}

		for j := 0; j < h.cfg.MaxExamplesPerMeaning; j++ {
			exampleText := strings.TrimSpace(c.FormValue(fmt.Sprintf("example_%d_%d", i, j)))
			translation := strings.TrimSpace(c.FormValue(fmt.Sprintf("translation_%d_%d", i, j)))
			if exampleText == "" && translation == "" {
				continue
			}

			if valid, msg := validation.ValidateExample(exampleText, translation); !valid {
				return nil, msg
			}

			meaning.Examples = append(meaning.Examples, models.ExampleSubmission{
				ExampleText: exampleText,
				Translation: translation,
			})
		}

		meanings = append(meanings, meaning)
	}

	return meanings, ""
}

// NewExample renders the example contribution form for a published meaning.
func (h *SubmissionHandler) NewExample(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	meaningID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid meaning id")
	}

	meaning, err := h.db.GetMeaningByID(c.Context(), meaningID)
	if err != nil {
		if errors.Is(err, db.ErrMeaningNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "meaning not found")
		}
		return err
	}

	word, err := h.db.GetWordByID(c.Context(), meaning.WordID)
	if err != nil {
		return err
	}

	return c.Render("submit_example", MergeBranding(fiber.Map{
		"User":    user,
		"Word":    word,
		"Meaning": meaning,
	}, h.cfg))
}

// CreateExample accepts a usage example contribution against a published
// meaning.
func (h *SubmissionHandler) CreateExample(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	meaningID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid meaning id")
	}

	meaning, err := h.db.GetMeaningByID(c.Context(), meaningID)
	if err != nil {
		if errors.Is(err, db.ErrMeaningNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "meaning not found")
		}
		return err
	}

	exampleText := strings.TrimSpace(c.FormValue("example_text"))
	translation := strings.TrimSpace(c.FormValue("translation"))
	if valid, msg := validation.ValidateExample(exampleText, translation); !valid {
		return htmxError(c, msg)
	}

	contribution := &models.ExampleContribution{
		MeaningID:   meaning.ID,
		ExampleText: exampleText,
		Translation: translation,
		SubmittedBy: user.ID,
	}

	if err := h.db.CreateExampleContribution(c.Context(), contribution); err != nil {
		return err
	}

	word, err := h.db.GetWordByID(c.Context(), meaning.WordID)
	if err != nil {
		return err
	}

	return c.Redirect().To("/words/" + word.Slug + "?example_submitted=1")
}
