package review

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"lexipedia/internal/db"
	"lexipedia/internal/models"
	"lexipedia/internal/testutil"
)

// recordingNotifier captures notifications instead of sending email.
type recordingNotifier struct {
	mu               sync.Mutex
	wordApproved     int
	wordRejected     int
	exampleApproved  int
	exampleRejected  int
	lastRejectionMsg string
}

func (n *recordingNotifier) NotifyWordApproved(ctx context.Context, sub *models.WordSubmission, word *models.Word) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.wordApproved++
}

func (n *recordingNotifier) NotifyWordRejected(ctx context.Context, sub *models.WordSubmission, notes string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.wordRejected++
	n.lastRejectionMsg = notes
}

func (n *recordingNotifier) NotifyExampleApproved(ctx context.Context, c *models.ExampleContribution) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.exampleApproved++
}

func (n *recordingNotifier) NotifyExampleRejected(ctx context.Context, c *models.ExampleContribution, notes string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.exampleRejected++
}

func setupEngineTest(t *testing.T) (*Engine, *db.DB, *recordingNotifier, func()) {
	t.Helper()
	database, cleanup := testutil.TestDB(t)
	notifier := &recordingNotifier{}
	engine := NewEngine(database, notifier)
	return engine, database, notifier, cleanup
}

func submitWord(t *testing.T, database *db.DB, word string, submitterID uuid.UUID) *models.WordSubmission {
	t.Helper()

	sub := &models.WordSubmission{
		Word:        word,
		SubmittedBy: submitterID,
		Meanings: []models.MeaningSubmission{
			{
				Meaning:        "meaning of " + word,
				PartOfSpeechID: testutil.AnyPartOfSpeechID(t, database),
				Examples: []models.ExampleSubmission{
					{ExampleText: word + " used in a sentence", Translation: "the translation"},
				},
			},
		},
	}
	if err := database.CreateWordSubmission(context.Background(), sub); err != nil {
		t.Fatalf("CreateWordSubmission() error = %v", err)
	}
	return sub
}

func TestApproveWord_PublishesEntry(t *testing.T) {
	engine, database, notifier, cleanup := setupEngineTest(t)
	defer cleanup()

	ctx := context.Background()
	userID := testutil.CreateTestUser(t, database, "author", "author@example.com", models.RoleUser)
	modID := testutil.CreateTestUser(t, database, "mod", "mod@example.com", models.RoleModerator)

	sub := submitWord(t, database, "Ugbo", userID)

	outcome, err := engine.ApproveWord(ctx, sub.ID, modID)
	if err != nil {
		t.Fatalf("ApproveWord() error = %v", err)
	}
	if outcome.Kind != OutcomeCreated {
		t.Fatalf("outcome = %v, want OutcomeCreated", outcome.Kind)
	}
	if outcome.Word == nil || outcome.Word.Slug != "ugbo" {
		t.Fatalf("published word = %+v, want slug %q", outcome.Word, "ugbo")
	}

	// Meanings and examples are materialized under the published word.
	word, err := database.GetWordBySlug(ctx, "ugbo")
	if err != nil {
		t.Fatalf("GetWordBySlug() error = %v", err)
	}
	if len(word.Meanings) != 1 {
		t.Fatalf("len(Meanings) = %d, want 1", len(word.Meanings))
	}
	if len(word.Meanings[0].Examples) != 1 {
		t.Fatalf("len(Examples) = %d, want 1", len(word.Meanings[0].Examples))
	}

	// The submitter's ledger reflects the approval.
	stats, err := database.GetContributionStats(ctx, userID)
	if err != nil {
		t.Fatalf("GetContributionStats() error = %v", err)
	}
	if stats.ApprovedCount != 1 {
		t.Errorf("ApprovedCount = %d, want 1", stats.ApprovedCount)
	}

	if notifier.wordApproved != 1 {
		t.Errorf("wordApproved notifications = %d, want 1", notifier.wordApproved)
	}
}

func TestApproveWord_DuplicateAutoRejects(t *testing.T) {
	engine, database, notifier, cleanup := setupEngineTest(t)
	defer cleanup()

	ctx := context.Background()
	userID := testutil.CreateTestUser(t, database, "author", "author@example.com", models.RoleUser)
	modID := testutil.CreateTestUser(t, database, "mod", "mod@example.com", models.RoleModerator)

	// First submission publishes the word.
	first := submitWord(t, database, "Ogbo", userID)
	if _, err := engine.ApproveWord(ctx, first.ID, modID); err != nil {
		t.Fatalf("ApproveWord() first error = %v", err)
	}

	// Second submission of the same word, different case.
	second := submitWord(t, database, "ogbo", userID)

	outcome, err := engine.ApproveWord(ctx, second.ID, modID)
	if err != nil {
		t.Fatalf("ApproveWord() second error = %v", err)
	}
	if outcome.Kind != OutcomeDuplicateRejected {
		t.Fatalf("outcome = %v, want OutcomeDuplicateRejected", outcome.Kind)
	}
	if outcome.ExistingWordID == uuid.Nil {
		t.Error("outcome should reference the existing entry")
	}

	// The submission was auto-rejected with notes naming the duplicate.
	got, err := database.GetWordSubmissionByID(ctx, second.ID)
	if err != nil {
		t.Fatalf("GetWordSubmissionByID() error = %v", err)
	}
	if got.Status != models.StatusRejected {
		t.Errorf("status = %q, want %q", got.Status, models.StatusRejected)
	}
	if got.ReviewNotes == nil || !strings.Contains(*got.ReviewNotes, "Duplicate") {
		t.Errorf("notes = %v, want duplicate explanation", got.ReviewNotes)
	}
	if got.ReviewNotes != nil && !strings.Contains(*got.ReviewNotes, "ogbo") {
		t.Errorf("notes = %q, should name the existing entry", *got.ReviewNotes)
	}

	if notifier.wordRejected != 1 {
		t.Errorf("wordRejected notifications = %d, want 1", notifier.wordRejected)
	}
	if !strings.Contains(notifier.lastRejectionMsg, "already exists") {
		t.Errorf("rejection message = %q, want duplicate wording", notifier.lastRejectionMsg)
	}
}

func TestApproveWord_ConcurrentSameWord(t *testing.T) {
	engine, database, _, cleanup := setupEngineTest(t)
	defer cleanup()

	ctx := context.Background()
	userA := testutil.CreateTestUser(t, database, "authora", "authora@example.com", models.RoleUser)
	userB := testutil.CreateTestUser(t, database, "authorb", "authorb@example.com", models.RoleUser)
	modID := testutil.CreateTestUser(t, database, "mod", "mod@example.com", models.RoleModerator)

	// Two contributors submit the same word, different case.
	subs := []*models.WordSubmission{
		submitWord(t, database, "Olu", userA),
		submitWord(t, database, "olu", userB),
	}

	var (
		wg       sync.WaitGroup
		outcomes [2]*Outcome
		errs     [2]error
	)
	for i := range subs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcomes[i], errs[i] = engine.ApproveWord(ctx, subs[i].ID, modID)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("ApproveWord() %d error = %v", i, err)
		}
	}

	// Exactly one wins; the loser is auto-rejected as a duplicate.
	var created, duplicates int
	for _, outcome := range outcomes {
		switch outcome.Kind {
		case OutcomeCreated:
			created++
		case OutcomeDuplicateRejected:
			duplicates++
		default:
			t.Errorf("unexpected outcome kind %v", outcome.Kind)
		}
	}
	if created != 1 || duplicates != 1 {
		t.Fatalf("outcomes = %d created / %d duplicates, want 1/1", created, duplicates)
	}

	count, err := database.CountWords(ctx, "o")
	if err != nil {
		t.Fatalf("CountWords() error = %v", err)
	}
	if count != 1 {
		t.Errorf("published word count = %d, want exactly 1", count)
	}
}

func TestApproveWord_AlreadyProcessed(t *testing.T) {
	engine, database, notifier, cleanup := setupEngineTest(t)
	defer cleanup()

	ctx := context.Background()
	userID := testutil.CreateTestUser(t, database, "author", "author@example.com", models.RoleUser)
	modID := testutil.CreateTestUser(t, database, "mod", "mod@example.com", models.RoleModerator)

	sub := submitWord(t, database, "Eju", userID)

	if _, err := engine.RejectWord(ctx, sub.ID, modID, "not suitable"); err != nil {
		t.Fatalf("RejectWord() error = %v", err)
	}
	rejections := notifier.wordRejected

	outcome, err := engine.ApproveWord(ctx, sub.ID, modID)
	if err != nil {
		t.Fatalf("ApproveWord() error = %v", err)
	}
	if outcome.Kind != OutcomeAlreadyProcessed {
		t.Fatalf("outcome = %v, want OutcomeAlreadyProcessed", outcome.Kind)
	}

	// No word was published and no further notification fired.
	if _, err := database.GetWordBySlug(ctx, "eju"); err == nil {
		t.Error("a word was published despite the earlier rejection")
	}
	if notifier.wordApproved != 0 || notifier.wordRejected != rejections {
		t.Error("already-processed outcome should not notify")
	}
}

func TestRejectWord(t *testing.T) {
	engine, database, notifier, cleanup := setupEngineTest(t)
	defer cleanup()

	ctx := context.Background()
	userID := testutil.CreateTestUser(t, database, "author", "author@example.com", models.RoleUser)
	modID := testutil.CreateTestUser(t, database, "mod", "mod@example.com", models.RoleModerator)

	sub := submitWord(t, database, "Aje", userID)

	outcome, err := engine.RejectWord(ctx, sub.ID, modID, "needs a source")
	if err != nil {
		t.Fatalf("RejectWord() error = %v", err)
	}
	if outcome.Kind != OutcomeRejected {
		t.Fatalf("outcome = %v, want OutcomeRejected", outcome.Kind)
	}

	got, err := database.GetWordSubmissionByID(ctx, sub.ID)
	if err != nil {
		t.Fatalf("GetWordSubmissionByID() error = %v", err)
	}
	if got.Status != models.StatusRejected {
		t.Errorf("status = %q, want %q", got.Status, models.StatusRejected)
	}
	if got.ReviewNotes == nil || *got.ReviewNotes != "needs a source" {
		t.Errorf("notes = %v, want the reviewer's notes", got.ReviewNotes)
	}

	stats, err := database.GetContributionStats(ctx, userID)
	if err != nil {
		t.Fatalf("GetContributionStats() error = %v", err)
	}
	if stats.RejectedCount != 1 {
		t.Errorf("RejectedCount = %d, want 1", stats.RejectedCount)
	}

	if notifier.wordRejected != 1 {
		t.Errorf("wordRejected notifications = %d, want 1", notifier.wordRejected)
	}
}

func TestBulkApproveWords_MixedOutcomes(t *testing.T) {
	engine, database, _, cleanup := setupEngineTest(t)
	defer cleanup()

	ctx := context.Background()
	userID := testutil.CreateTestUser(t, database, "author", "author@example.com", models.RoleUser)
	modID := testutil.CreateTestUser(t, database, "mod", "mod@example.com", models.RoleModerator)

	clean := submitWord(t, database, "Ofe", userID)

	// This one will hit an existing entry.
	published := submitWord(t, database, "Ela", userID)
	if _, err := engine.ApproveWord(ctx, published.ID, modID); err != nil {
		t.Fatalf("ApproveWord() error = %v", err)
	}
	duplicate := submitWord(t, database, "ela", userID)

	// This one was already decided.
	decided := submitWord(t, database, "Uwo", userID)
	if _, err := engine.RejectWord(ctx, decided.ID, modID, "no"); err != nil {
		t.Fatalf("RejectWord() error = %v", err)
	}

	result, err := engine.BulkApproveWords(ctx, []uuid.UUID{clean.ID, duplicate.ID, decided.ID}, modID)
	if err != nil {
		t.Fatalf("BulkApproveWords() error = %v", err)
	}
	if result.Approved != 1 {
		t.Errorf("Approved = %d, want 1", result.Approved)
	}
	if result.Duplicates != 1 {
		t.Errorf("Duplicates = %d, want 1", result.Duplicates)
	}
	if result.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", result.Skipped)
	}
}

func TestBulkRejectWords(t *testing.T) {
	engine, database, _, cleanup := setupEngineTest(t)
	defer cleanup()

	ctx := context.Background()
	userID := testutil.CreateTestUser(t, database, "author", "author@example.com", models.RoleUser)
	modID := testutil.CreateTestUser(t, database, "mod", "mod@example.com", models.RoleModerator)

	first := submitWord(t, database, "Aka", userID)
	second := submitWord(t, database, "Oda", userID)

	// Another reviewer gets to one of them first.
	if _, err := engine.RejectWord(ctx, second.ID, modID, "raced"); err != nil {
		t.Fatalf("RejectWord() error = %v", err)
	}

	// Intent phase: only the undecided one survives.
	pending, err := engine.PendingWordsByIDs(ctx, []uuid.UUID{first.ID, second.ID})
	if err != nil {
		t.Fatalf("PendingWordsByIDs() error = %v", err)
	}
	if len(pending) != 1 || pending[0].ID != first.ID {
		t.Fatalf("pending = %v, want only the undecided submission", pending)
	}

	// Confirmation phase.
	result, err := engine.BulkRejectWords(ctx, []uuid.UUID{first.ID, second.ID}, modID, "batch cleanup")
	if err != nil {
		t.Fatalf("BulkRejectWords() error = %v", err)
	}
	if result.Rejected != 1 {
		t.Errorf("Rejected = %d, want 1", result.Rejected)
	}
	if result.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", result.Skipped)
	}

	got, err := database.GetWordSubmissionByID(ctx, second.ID)
	if err != nil {
		t.Fatalf("GetWordSubmissionByID() error = %v", err)
	}
	if *got.ReviewNotes != "raced" {
		t.Errorf("notes = %q, the earlier decision should stand", *got.ReviewNotes)
	}
}

func TestApproveAndRejectExample(t *testing.T) {
	engine, database, notifier, cleanup := setupEngineTest(t)
	defer cleanup()

	ctx := context.Background()
	userID := testutil.CreateTestUser(t, database, "author", "author@example.com", models.RoleUser)
	modID := testutil.CreateTestUser(t, database, "mod", "mod@example.com", models.RoleModerator)

	// Publish a word to contribute examples against.
	sub := submitWord(t, database, "Ona", userID)
	outcome, err := engine.ApproveWord(ctx, sub.ID, modID)
	if err != nil {
		t.Fatalf("ApproveWord() error = %v", err)
	}
	word, err := database.GetWordBySlug(ctx, outcome.Word.Slug)
	if err != nil {
		t.Fatalf("GetWordBySlug() error = %v", err)
	}
	meaningID := word.Meanings[0].ID

	approved := &models.ExampleContribution{
		MeaningID:   meaningID,
		ExampleText: "Ona used another way",
		Translation: "another translation",
		SubmittedBy: userID,
	}
	if err := database.CreateExampleContribution(ctx, approved); err != nil {
		t.Fatalf("CreateExampleContribution() error = %v", err)
	}

	rejected := &models.ExampleContribution{
		MeaningID:   meaningID,
		ExampleText: "a bad example",
		Translation: "bad",
		SubmittedBy: userID,
	}
	if err := database.CreateExampleContribution(ctx, rejected); err != nil {
		t.Fatalf("CreateExampleContribution() error = %v", err)
	}

	approveOutcome, err := engine.ApproveExample(ctx, approved.ID, modID)
	if err != nil {
		t.Fatalf("ApproveExample() error = %v", err)
	}
	if approveOutcome.Kind != OutcomeCreated || approveOutcome.Example == nil {
		t.Fatalf("outcome = %+v, want created example", approveOutcome)
	}

	rejectOutcome, err := engine.RejectExample(ctx, rejected.ID, modID, "unclear")
	if err != nil {
		t.Fatalf("RejectExample() error = %v", err)
	}
	if rejectOutcome.Kind != OutcomeRejected {
		t.Fatalf("outcome = %v, want OutcomeRejected", rejectOutcome.Kind)
	}

	// The approved example is attached to the meaning; the rejected one is not.
	examples, err := database.GetExamplesForMeaning(ctx, meaningID)
	if err != nil {
		t.Fatalf("GetExamplesForMeaning() error = %v", err)
	}
	// One from the original submission plus the approved contribution.
	if len(examples) != 2 {
		t.Fatalf("len(examples) = %d, want 2", len(examples))
	}

	// Repeat decisions are no-ops.
	again, err := engine.ApproveExample(ctx, approved.ID, modID)
	if err != nil {
		t.Fatalf("ApproveExample() repeat error = %v", err)
	}
	if again.Kind != OutcomeAlreadyProcessed {
		t.Errorf("repeat outcome = %v, want OutcomeAlreadyProcessed", again.Kind)
	}

	if notifier.exampleApproved != 1 || notifier.exampleRejected != 1 {
		t.Errorf("example notifications = %d approved / %d rejected, want 1/1",
			notifier.exampleApproved, notifier.exampleRejected)
	}
}
