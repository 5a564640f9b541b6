package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"lexipedia/internal/config"
	"lexipedia/internal/db"
	"lexipedia/internal/models"
	"lexipedia/internal/review"
)

// ModerationHandler handles the review queue and moderation decisions.
type ModerationHandler struct {
	db     *db.DB
	cfg    *config.Config
	engine *review.Engine
}

// NewModerationHandler creates a new moderation handler.
func NewModerationHandler(database *db.DB, cfg *config.Config, engine *review.Engine) *ModerationHandler {
	return &ModerationHandler{db: database, cfg: cfg, engine: engine}
}

// Index renders the moderation dashboard with pending words and pending
// example contributions.
func (h *ModerationHandler) Index(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	pendingWords, err := h.db.GetPendingWordSubmissions(c.Context())
	if err != nil {
		return err
	}

	pendingExamples, err := h.db.GetPendingExampleContributions(c.Context())
	if err != nil {
		return err
	}

	return c.Render("moderation", MergeBranding(fiber.Map{
		"User":            user,
		"PendingWords":    pendingWords,
		"PendingExamples": pendingExamples,
	}, h.cfg))
}

// parseSubmissionIDs reads the checked submission ids from a bulk form.
// The intent phase arrives as query args, the confirmation as form values.
func parseSubmissionIDs(c fiber.Ctx) ([]uuid.UUID, error) {
	var raw []string
	collect := func(key, value []byte) {
		if string(key) == "submission_ids" {
			raw = append(raw, string(value))
		}
	}
	c.Request().PostArgs().VisitAll(collect)
	c.Request().URI().QueryArgs().VisitAll(collect)

	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(strings.TrimSpace(s))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// BulkApproveWords approves the selected pending submissions. Duplicates
// are auto-rejected and reported separately; rows another moderator got to
// first are skipped.
func (h *ModerationHandler) BulkApproveWords(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	ids, err := parseSubmissionIDs(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid submission id")
	}
	if len(ids) == 0 {
		return h.renderFlash(c, "No submissions selected.")
	}

	result, err := h.engine.BulkApproveWords(c.Context(), ids, user.ID)
	if err != nil {
		return err
	}

	return c.Render("partials/moderation_result", fiber.Map{
		"Approved":   result.Approved,
		"Duplicates": result.Duplicates,
		"Skipped":    result.Skipped,
	}, "")
}

// RejectWordsConfirm is the intent phase of a bulk rejection: it re-checks
// which of the selected submissions are still pending and renders the
// confirmation form where the moderator enters shared notes.
func (h *ModerationHandler) RejectWordsConfirm(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	ids, err := parseSubmissionIDs(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid submission id")
	}

	pending, err := h.engine.PendingWordsByIDs(c.Context(), ids)
	if err != nil {
		return err
	}

	return c.Render("moderation_reject", MergeBranding(fiber.Map{
		"User":        user,
		"Submissions": pending,
		"NoneLeft":    len(pending) == 0,
	}, h.cfg))
}

// BulkRejectWords is the confirmation phase of a bulk rejection: it applies
// the shared notes to every submission that is still pending.
func (h *ModerationHandler) BulkRejectWords(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	ids, err := parseSubmissionIDs(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid submission id")
	}
	if len(ids) == 0 {
		return h.renderFlash(c, "No submissions selected.")
	}

	notes := strings.TrimSpace(c.FormValue("review_notes"))

	result, err := h.engine.BulkRejectWords(c.Context(), ids, user.ID, notes)
	if err != nil {
		return err
	}

	return c.Render("partials/moderation_result", fiber.Map{
		"Rejected": result.Rejected,
		"Skipped":  result.Skipped,
	}, "")
}

// ApproveExample approves a single pending example contribution.
func (h *ModerationHandler) ApproveExample(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid contribution id")
	}

	outcome, err := h.engine.ApproveExample(c.Context(), id, user.ID)
	if err != nil {
		if errors.Is(err, db.ErrSubmissionNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "contribution not found")
		}
		return err
	}

	action := "approved"
	if outcome.Kind == review.OutcomeAlreadyProcessed {
		action = "already processed"
	}

	return c.Render("partials/moderation_success", fiber.Map{
		"Action": action,
	}, "")
}

// RejectExample rejects a single pending example contribution.
func (h *ModerationHandler) RejectExample(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid contribution id")
	}

	notes := strings.TrimSpace(c.FormValue("review_notes"))

	outcome, err := h.engine.RejectExample(c.Context(), id, user.ID, notes)
	if err != nil {
		if errors.Is(err, db.ErrSubmissionNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "contribution not found")
		}
		return err
	}

	action := "rejected"
	if outcome.Kind == review.OutcomeAlreadyProcessed {
		action = "already processed"
	}

	return c.Render("partials/moderation_success", fiber.Map{
		"Action": action,
	}, "")
}

func (h *ModerationHandler) renderFlash(c fiber.Ctx, message string) error {
	return c.Render("partials/moderation_result", fiber.Map{
		"Message": message,
	}, "")
}
