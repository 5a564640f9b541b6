package review

import (
	"github.com/google/uuid"

	"lexipedia/internal/models"
)

// OutcomeKind tags what a review decision actually did.
type OutcomeKind int

const (
	// OutcomeCreated means the submission was approved and its content
	// published.
	OutcomeCreated OutcomeKind = iota

	// OutcomeDuplicateRejected means approval hit an existing entry and the
	// submission was auto-rejected instead.
	OutcomeDuplicateRejected

	// OutcomeAlreadyProcessed means another reviewer decided this submission
	// first; nothing was changed.
	OutcomeAlreadyProcessed

	// OutcomeRejected means the submission was rejected by the reviewer.
	OutcomeRejected
)

// Outcome is the result of a single review decision.
type Outcome struct {
	Kind OutcomeKind

	// Word is the published entry, set when Kind is OutcomeCreated for a
	// word submission.
	Word *models.Word

	// Example is the published example, set when Kind is OutcomeCreated for
	// an example contribution.
	Example *models.Example

	// ExistingWordID references the entry that blocked a duplicate, set
	// when Kind is OutcomeDuplicateRejected and the entry could be resolved.
	ExistingWordID uuid.UUID
}

// BulkApproveResult aggregates the per-submission outcomes of a bulk
// approval for the moderator.
type BulkApproveResult struct {
	Approved   int
	Duplicates int
	Skipped    int
}

// BulkRejectResult aggregates the outcomes of a bulk rejection.
type BulkRejectResult struct {
	Rejected int
	Skipped  int
}
