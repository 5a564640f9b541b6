package review

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"lexipedia/internal/db"
	"lexipedia/internal/models"
	"lexipedia/internal/validation"
)

// Notifier is the slice of email notifications the engine fires after a
// decision. Notifications are best-effort: the engine never fails a
// decision because an email could not be sent.
type Notifier interface {
	NotifyWordApproved(ctx context.Context, sub *models.WordSubmission, word *models.Word)
	NotifyWordRejected(ctx context.Context, sub *models.WordSubmission, notes string)
	NotifyExampleApproved(ctx context.Context, c *models.ExampleContribution)
	NotifyExampleRejected(ctx context.Context, c *models.ExampleContribution, notes string)
}

// Engine applies moderation decisions to pending submissions. It owns the
// duplicate auto-rejection policy and the follow-up work a decision
// triggers: materializing approved content, recomputing the submitter's
// ledger, and firing notifications.
type Engine struct {
	db       *db.DB
	notifier Notifier
}

// NewEngine creates a review engine. notifier may be nil, in which case no
// emails are sent.
func NewEngine(database *db.DB, notifier Notifier) *Engine {
	return &Engine{db: database, notifier: notifier}
}

// ApproveWord approves a pending word submission, publishing it as a
// dictionary entry. If the word already exists the submission is
// auto-rejected instead and the outcome references the existing entry.
// A submission another reviewer already decided yields
// OutcomeAlreadyProcessed and is left untouched.
func (e *Engine) ApproveWord(ctx context.Context, submissionID, reviewerID uuid.UUID) (*Outcome, error) {
	sub, err := e.db.GetWordSubmissionByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	slug := validation.Slugify(sub.Word)
	word, err := e.db.ApproveWordSubmission(ctx, submissionID, reviewerID, slug)
	if errors.Is(err, db.ErrAlreadyProcessed) {
		return &Outcome{Kind: OutcomeAlreadyProcessed}, nil
	}
	if errors.Is(err, db.ErrDuplicateWord) {
		return e.rejectDuplicate(ctx, sub, reviewerID)
	}
	if err != nil {
		return nil, err
	}

	e.materializeMeanings(ctx, sub, word)
	e.recomputeStats(ctx, sub.SubmittedBy)

	if e.notifier != nil {
		e.notifier.NotifyWordApproved(ctx, sub, word)
	}

	return &Outcome{Kind: OutcomeCreated, Word: word}, nil
}

// rejectDuplicate converts a failed approval into a rejection that names
// the entry blocking it. The rejection is a separate guarded write: if a
// racing reviewer decided the submission in the meantime, their decision
// stands.
func (e *Engine) rejectDuplicate(ctx context.Context, sub *models.WordSubmission, reviewerID uuid.UUID) (*Outcome, error) {
	outcome := &Outcome{Kind: OutcomeDuplicateRejected}

	notes := fmt.Sprintf("Duplicate: word %q already exists", sub.Word)
	existing, err := e.db.GetWordByText(ctx, sub.Word)
	if err == nil {
		outcome.ExistingWordID = existing.ID
		notes = fmt.Sprintf("Duplicate: word %q already exists (entry %s)", sub.Word, existing.Slug)
	} else if !errors.Is(err, db.ErrWordNotFound) {
		return nil, err
	}

	err = e.db.RejectWordSubmission(ctx, sub.ID, reviewerID, notes)
	if errors.Is(err, db.ErrAlreadyProcessed) {
		return &Outcome{Kind: OutcomeAlreadyProcessed}, nil
	}
	if err != nil {
		return nil, err
	}

	e.recomputeStats(ctx, sub.SubmittedBy)

	if e.notifier != nil {
		e.notifier.NotifyWordRejected(ctx, sub, notes)
	}

	return outcome, nil
}

// materializeMeanings publishes a submission's meanings and examples under
// the newly created word. The word is already approved at this point, so
// failures here are logged and do not undo the decision.
func (e *Engine) materializeMeanings(ctx context.Context, sub *models.WordSubmission, word *models.Word) {
	for _, ms := range sub.Meanings {
		meaning := &models.Meaning{
			WordID:         word.ID,
			Meaning:        ms.Meaning,
			PartOfSpeechID: ms.PartOfSpeechID,
			Position:       ms.Position,
		}
		if err := e.db.CreateMeaning(ctx, meaning); err != nil {
			log.Printf("Review: failed to publish meaning for word %s: %v", word.Slug, err)
			continue
		}

		for _, es := range ms.Examples {
			example := &models.Example{
				ExampleText: es.ExampleText,
				Translation: es.Translation,
			}
			if err := e.db.CreateExampleForMeaning(ctx, meaning.ID, example); err != nil {
				log.Printf("Review: failed to publish example for word %s: %v", word.Slug, err)
			}
		}
	}
}

// RejectWord rejects a pending word submission with the given notes. Blank
// notes fall back to a default. A submission that is no longer pending is
// left untouched and reported as OutcomeAlreadyProcessed.
func (e *Engine) RejectWord(ctx context.Context, submissionID, reviewerID uuid.UUID, notes string) (*Outcome, error) {
	err := e.db.RejectWordSubmission(ctx, submissionID, reviewerID, notes)
	if errors.Is(err, db.ErrAlreadyProcessed) {
		return &Outcome{Kind: OutcomeAlreadyProcessed}, nil
	}
	if err != nil {
		return nil, err
	}

	sub, err := e.db.GetWordSubmissionByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	e.recomputeStats(ctx, sub.SubmittedBy)

	if e.notifier != nil {
		if notes == "" {
			notes = models.DefaultRejectionNotes
		}
		e.notifier.NotifyWordRejected(ctx, sub, notes)
	}

	return &Outcome{Kind: OutcomeRejected}, nil
}

// ApproveExample approves a pending example contribution, publishing the
// example under its target meaning. Examples have no uniqueness rule, so
// there is no duplicate path.
func (e *Engine) ApproveExample(ctx context.Context, contributionID, reviewerID uuid.UUID) (*Outcome, error) {
	c, err := e.db.GetExampleContributionByID(ctx, contributionID)
	if err != nil {
		return nil, err
	}

	example, err := e.db.ApproveExampleContribution(ctx, contributionID, reviewerID)
	if errors.Is(err, db.ErrAlreadyProcessed) {
		return &Outcome{Kind: OutcomeAlreadyProcessed}, nil
	}
	if err != nil {
		return nil, err
	}

	if e.notifier != nil {
		e.notifier.NotifyExampleApproved(ctx, c)
	}

	return &Outcome{Kind: OutcomeCreated, Example: example}, nil
}

// RejectExample rejects a pending example contribution.
func (e *Engine) RejectExample(ctx context.Context, contributionID, reviewerID uuid.UUID, notes string) (*Outcome, error) {
	err := e.db.RejectExampleContribution(ctx, contributionID, reviewerID, notes)
	if errors.Is(err, db.ErrAlreadyProcessed) {
		return &Outcome{Kind: OutcomeAlreadyProcessed}, nil
	}
	if err != nil {
		return nil, err
	}

	if e.notifier != nil {
		c, err := e.db.GetExampleContributionByID(ctx, contributionID)
		if err != nil {
			log.Printf("Review: failed to load contribution %s for notification: %v", contributionID, err)
		} else {
			if notes == "" {
				notes = models.DefaultRejectionNotes
			}
			e.notifier.NotifyExampleRejected(ctx, c, notes)
		}
	}

	return &Outcome{Kind: OutcomeRejected}, nil
}

// BulkApproveWords approves each submission in turn and aggregates the
// outcomes. A failing id aborts the batch; everything decided before it
// stays decided.
func (e *Engine) BulkApproveWords(ctx context.Context, ids []uuid.UUID, reviewerID uuid.UUID) (*BulkApproveResult, error) {
	result := &BulkApproveResult{}
	for _, id := range ids {
		outcome, err := e.ApproveWord(ctx, id, reviewerID)
		if errors.Is(err, db.ErrSubmissionNotFound) {
			result.Skipped++
			continue
		}
		if err != nil {
			return result, err
		}

		switch outcome.Kind {
		case OutcomeCreated:
			result.Approved++
		case OutcomeDuplicateRejected:
			result.Duplicates++
		case OutcomeAlreadyProcessed:
			result.Skipped++
		}
	}
	return result, nil
}

// BulkRejectWords rejects each submission with the shared notes and
// aggregates the outcomes.
func (e *Engine) BulkRejectWords(ctx context.Context, ids []uuid.UUID, reviewerID uuid.UUID, notes string) (*BulkRejectResult, error) {
	result := &BulkRejectResult{}
	for _, id := range ids {
		outcome, err := e.RejectWord(ctx, id, reviewerID, notes)
		if errors.Is(err, db.ErrSubmissionNotFound) {
			result.Skipped++
			continue
		}
		if err != nil {
			return result, err
		}

		if outcome.Kind == OutcomeAlreadyProcessed {
			result.Skipped++
		} else {
			result.Rejected++
		}
	}
	return result, nil
}

// PendingWordsByIDs re-filters a set of submission IDs to those still
// pending. This is the intent phase of a two-phase bulk rejection: the
// confirmation form is built from the survivors, since another reviewer
// may have decided some of them in the meantime.
func (e *Engine) PendingWordsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.WordSubmission, error) {
	return e.db.GetPendingWordSubmissionsByIDs(ctx, ids)
}

func (e *Engine) recomputeStats(ctx context.Context, userID uuid.UUID) {
	if err := e.db.RecomputeContributionStats(ctx, userID); err != nil {
		log.Printf("Review: failed to recompute contribution stats for %s: %v", userID, err)
	}
}
