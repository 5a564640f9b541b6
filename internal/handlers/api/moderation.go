package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"lexipedia/internal/db"
	"lexipedia/internal/models"
	"lexipedia/internal/review"
)

// ModerationHandler exposes the review queue and decisions via JSON API.
type ModerationHandler struct {
	db     *db.DB
	engine *review.Engine
}

// NewModerationHandler creates a new API moderation handler.
func NewModerationHandler(database *db.DB, engine *review.Engine) *ModerationHandler {
	return &ModerationHandler{db: database, engine: engine}
}

// Queue returns the pending word submissions and example contributions.
func (h *ModerationHandler) Queue(c fiber.Ctx) error {
	words, err := h.db.GetPendingWordSubmissions(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch queue")
	}

	examples, err := h.db.GetPendingExampleContributions(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch queue")
	}

	return jsonSuccess(c, fiber.Map{
		"words":    words,
		"examples": examples,
	})
}

// outcomeLabel maps an engine outcome to its wire representation.
func outcomeLabel(kind review.OutcomeKind) string {
	switch kind {
	case review.OutcomeCreated:
		return "created"
	case review.OutcomeDuplicateRejected:
		return "duplicate_rejected"
	case review.OutcomeAlreadyProcessed:
		return "already_processed"
	case review.OutcomeRejected:
		return "rejected"
	}
	return "unknown"
}

// ApproveWord approves a single pending word submission.
func (h *ModerationHandler) ApproveWord(c fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid submission id")
	}

	outcome, err := h.engine.ApproveWord(c.Context(), id, user.ID)
	if err != nil {
		if errors.Is(err, db.ErrSubmissionNotFound) {
			return jsonError(c, fiber.StatusNotFound, "submission not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to approve submission")
	}

	data := fiber.Map{"outcome": outcomeLabel(outcome.Kind)}
	if outcome.Word != nil {
		data["word"] = outcome.Word
	}
	if outcome.ExistingWordID != uuid.Nil {
		data["existing_word_id"] = outcome.ExistingWordID
	}

	return jsonSuccess(c, data)
}

// RejectWord rejects a single pending word submission with optional notes.
func (h *ModerationHandler) RejectWord(c fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid submission id")
	}

	var body struct {
		Notes string `json:"notes"`
	}
	if len(c.Body()) > 0 {
		if err := json.Unmarshal(c.Body(), &body); err != nil {
			return jsonError(c, fiber.StatusBadRequest, "invalid request body")
		}
	}

	outcome, err := h.engine.RejectWord(c.Context(), id, user.ID, body.Notes)
	if err != nil {
		if errors.Is(err, db.ErrSubmissionNotFound) {
			return jsonError(c, fiber.StatusNotFound, "submission not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to reject submission")
	}

	return jsonSuccess(c, fiber.Map{"outcome": outcomeLabel(outcome.Kind)})
}

// BulkApproveWords approves a batch of submissions and reports the counts.
func (h *ModerationHandler) BulkApproveWords(c fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var body struct {
		IDs []uuid.UUID `json:"ids"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if len(body.IDs) == 0 {
		return jsonError(c, fiber.StatusBadRequest, "no submission ids provided")
	}

	result, err := h.engine.BulkApproveWords(c.Context(), body.IDs, user.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to approve submissions")
	}

	return jsonSuccess(c, fiber.Map{
		"approved":   result.Approved,
		"duplicates": result.Duplicates,
		"skipped":    result.Skipped,
	})
}

// BulkRejectWords rejects a batch of submissions with shared notes.
func (h *ModerationHandler) BulkRejectWords(c fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var body struct {
		IDs   []uuid.UUID `json:"ids"`
		Notes string      `json:"notes"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if len(body.IDs) == 0 {
		return jsonError(c, fiber.StatusBadRequest, "no submission ids provided")
	}

	result, err := h.engine.BulkRejectWords(c.Context(), body.IDs, user.ID, body.Notes)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to reject submissions")
	}

	return jsonSuccess(c, fiber.Map{
		"rejected": result.Rejected,
		"skipped":  result.Skipped,
	})
}

// ApproveExample approves a pending example contribution.
func (h *ModerationHandler) ApproveExample(c fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid contribution id")
	}

	outcome, err := h.engine.ApproveExample(c.Context(), id, user.ID)
	if err != nil {
		if errors.Is(err, db.ErrSubmissionNotFound) {
			return jsonError(c, fiber.StatusNotFound, "contribution not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to approve contribution")
	}

	data := fiber.Map{"outcome": outcomeLabel(outcome.Kind)}
	if outcome.Example != nil {
		data["example"] = outcome.Example
	}

	return jsonSuccess(c, data)
}

// RejectExample rejects a pending example contribution.
func (h *ModerationHandler) RejectExample(c fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid contribution id")
	}

	var body struct {
		Notes string `json:"notes"`
	}
	if len(c.Body()) > 0 {
		if err := json.Unmarshal(c.Body(), &body); err != nil {
			return jsonError(c, fiber.StatusBadRequest, "invalid request body")
		}
	}

	outcome, err := h.engine.RejectExample(c.Context(), id, user.ID, body.Notes)
	if err != nil {
		if errors.Is(err, db.ErrSubmissionNotFound) {
			return jsonError(c, fiber.StatusNotFound, "contribution not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to reject contribution")
	}

	return jsonSuccess(c, fiber.Map{"outcome": outcomeLabel(outcome.Kind)})
}
