package api

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"lexipedia/internal/config"
	"lexipedia/internal/db"
	"lexipedia/internal/email"
	"lexipedia/internal/models"
	"lexipedia/internal/validation"
)

// SubmissionHandler handles word submissions via JSON API.
type SubmissionHandler struct {
	db       *db.DB
	cfg      *config.Config
	notifier *email.Notifier
}

// NewSubmissionHandler creates a new API submission handler.
func NewSubmissionHandler(database *db.DB, cfg *config.Config, notifier *email.Notifier) *SubmissionHandler {
	return &SubmissionHandler{db: database, cfg: cfg, notifier: notifier}
}

// ListMine returns the authenticated user's word submissions.
func (h *SubmissionHandler) ListMine(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	subs, err := h.db.GetWordSubmissionsByUser(c.Context(), user.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch submissions")
	}

	return jsonSuccess(c, subs)
}

// GetStats returns a contributor's ledger. Contributors can read their own
// row; moderators can read anyone's.
func (h *SubmissionHandler) GetStats(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid user id")
	}

	if userID != user.ID && !user.IsModerator() {
		return jsonError(c, fiber.StatusForbidden, "forbidden")
	}

	stats, err := h.db.GetContributionStats(c.Context(), userID)
	if errors.Is(err, db.ErrStatsNotFound) {
		if err := h.db.RecomputeContributionStats(c.Context(), userID); err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "failed to compute stats")
		}
		stats, err = h.db.GetContributionStats(c.Context(), userID)
	}
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch stats")
	}

	return jsonSuccess(c, stats)
}

// Create accepts a word submission with nested meanings and examples.
func (h *SubmissionHandler) Create(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var body struct {
		Word             string `json:"word"`
		PronunciationURL string `json:"pronunciation_url"`
		Dialects         string `json:"dialects"`
		RelatedTerms     string `json:"related_terms"`
		Meanings         []struct {
			Meaning        string    `json:"meaning"`
			PartOfSpeechID uuid.UUID `json:"part_of_speech_id"`
			Examples       []struct {
				ExampleText string `json:"example_text"`
				Translation string `json:"translation"`
			} `json:"examples"`
		} `json:"meanings"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if valid, msg := validation.ValidateWord(body.Word); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}
	if !validation.HasLetter(body.Word) {
		return jsonError(c, fiber.StatusBadRequest, "word must contain at least one letter")
	}
	if len(body.Meanings) == 0 {
		return jsonError(c, fiber.StatusBadRequest, "at least one meaning is required")
	}
	if len(body.Meanings) > h.cfg.MaxMeaningsPerWord {
		return jsonError(c, fiber.StatusBadRequest, "too many meanings")
	}

	sub := &models.WordSubmission{
		Word:             body.Word,
		PronunciationURL: body.PronunciationURL,
		Dialects:         body.Dialects,
		RelatedTerms:     body.RelatedTerms,
		SubmittedBy:      user.ID,
		SubmitterName:    user.DisplayName(),
		SubmitterEmail:   user.Email,
	}

	for _, m := range body.Meanings {
		if valid, msg := validation.ValidateMeaning(m.Meaning); !valid {
			return jsonError(c, fiber.StatusBadRequest, msg)
		}
		if _, err := h.db.GetPartOfSpeechByID(c.Context(), m.PartOfSpeechID); err != nil {
			if errors.Is(err, db.ErrPartOfSpeechNotFound) {
				return jsonError(c, fiber.StatusBadRequest, "unknown part of speech")
			}
			return jsonError(c, fiber.StatusInternalServerError, "failed to validate part of speech")
		}
		if len(m.Examples) > h.cfg.MaxExamplesPerMeaning {
			return jsonError(c, fiber.StatusBadRequest, "too many examples")
		}

		meaning := models.MeaningSubmission{
			Meaning:        m.Meaning,
			PartOfSpeechID: m.PartOfSpeechID,
		}
		for _, e := range m.Examples {
			if valid, msg := validation.ValidateExample(e.ExampleText, e.Translation); !valid {
				return jsonError(c, fiber.StatusBadRequest, msg)
			}
			meaning.Examples = append(meaning.Examples, models.ExampleSubmission{
				ExampleText: e.ExampleText,
				Translation: e.Translation,
			})
		}
		sub.Meanings = append(sub.Meanings, meaning)
	}

	if err := h.db.CreateWordSubmission(c.Context(), sub); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to create submission")
	}

	if err := h.db.RecomputeContributionStats(c.Context(), user.ID); err != nil {
		log.Printf("Failed to recompute contribution stats for %s: %v", user.ID, err)
	}

	h.notifier.NotifyWordSubmitted(c.Context(), sub)

	return jsonCreated(c, sub)
}
