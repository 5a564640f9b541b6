package email

import (
	"context"
	"log"

	"lexipedia/internal/config"
	"lexipedia/internal/models"
)

// ModeratorEmailGetter is an interface for getting moderator emails.
type ModeratorEmailGetter interface {
	GetModeratorEmails(ctx context.Context) ([]string, error)
}

// Notifier sends email notifications for submission lifecycle events.
type Notifier struct {
	service   *Service
	templates *Templates
	cfg       *config.Config
	db        ModeratorEmailGetter
}

// NewNotifier creates a new email notifier.
func NewNotifier(cfg *config.Config, db ModeratorEmailGetter) *Notifier {
	return &Notifier{
		service:   NewService(cfg),
		templates: NewTemplates(cfg),
		cfg:       cfg,
		db:        db,
	}
}

// NotifyWordSubmitted notifies moderators that a new word needs review.
func (n *Notifier) NotifyWordSubmitted(ctx context.Context, sub *models.WordSubmission) {
	if !n.service.IsEnabled() || !n.cfg.EmailNotifyModeratorsOnSubmit {
		return
	}

	emails, err := n.db.GetModeratorEmails(ctx)
	if err != nil {
		log.Printf("Failed to get moderator emails: %v", err)
		return
	}

	if len(emails) == 0 {
		log.Println("No moderator emails found for notification")
		return
	}

	subject, htmlBody, textBody := n.templates.WordSubmittedForReview(sub)
	n.service.SendAsync(emails, subject, htmlBody, textBody)
}

// NotifyWordApproved notifies the submitter that their word was published.
func (n *Notifier) NotifyWordApproved(ctx context.Context, sub *models.WordSubmission, word *models.Word) {
	if !n.service.IsEnabled() || !n.cfg.EmailNotifyUserOnApproval {
		return
	}
	if sub.SubmitterEmail == "" {
		return
	}

	subject, htmlBody, textBody := n.templates.WordApproved(sub, word)
	n.service.SendAsync([]string{sub.SubmitterEmail}, subject, htmlBody, textBody)
}

// NotifyWordRejected notifies the submitter that their word was rejected,
// with the reviewer's notes.
func (n *Notifier) NotifyWordRejected(ctx context.Context, sub *models.WordSubmission, notes string) {
	if !n.service.IsEnabled() || !n.cfg.EmailNotifyUserOnRejection {
		return
	}
	if sub.SubmitterEmail == "" {
		return
	}

	subject, htmlBody, textBody := n.templates.WordRejected(sub, notes)
	n.service.SendAsync([]string{sub.SubmitterEmail}, subject, htmlBody, textBody)
}

// NotifyExampleApproved notifies the contributor that their usage example
// was published.
func (n *Notifier) NotifyExampleApproved(ctx context.Context, c *models.ExampleContribution) {
	if !n.service.IsEnabled() || !n.cfg.EmailNotifyUserOnApproval {
		return
	}
	if c.SubmitterEmail == "" {
		return
	}

	subject, htmlBody, textBody := n.templates.ExampleApproved(c)
	n.service.SendAsync([]string{c.SubmitterEmail}, subject, htmlBody, textBody)
}

// NotifyExampleRejected notifies the contributor that their usage example
// was rejected.
func (n *Notifier) NotifyExampleRejected(ctx context.Context, c *models.ExampleContribution, notes string) {
	if !n.service.IsEnabled() || !n.cfg.EmailNotifyUserOnRejection {
		return
	}
	if c.SubmitterEmail == "" {
		return
	}

	subject, htmlBody, textBody := n.templates.ExampleRejected(c, notes)
	n.service.SendAsync([]string{c.SubmitterEmail}, subject, htmlBody, textBody)
}
