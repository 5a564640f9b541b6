package email

import (
	"fmt"
	"html"

	"lexipedia/internal/config"
	"lexipedia/internal/models"
)

// Templates provides email template generation.
type Templates struct {
	cfg *config.Config
}

// NewTemplates creates a new templates instance.
func NewTemplates(cfg *config.Config) *Templates {
	return &Templates{cfg: cfg}
}

// baseHTML wraps content in a consistent HTML email template.
func (t *Templates) baseHTML(title, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #166534; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { background: #f9fafb; padding: 20px; border: 1px solid #e5e7eb; }
        .footer { background: #f3f4f6; padding: 15px; text-align: center; font-size: 12px; color: #6b7280; border-radius: 0 0 8px 8px; border: 1px solid #e5e7eb; border-top: none; }
        .button { display: inline-block; background: #166534; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; margin: 10px 0; }
        .button:hover { background: #14532d; }
        .info-box { background: white; border: 1px solid #e5e7eb; border-radius: 6px; padding: 15px; margin: 15px 0; }
        .label { font-weight: 600; color: #374151; }
        .value { color: #6b7280; }
        .success { color: #059669; }
        .error { color: #dc2626; }
        code { background: #e5e7eb; padding: 2px 6px; border-radius: 4px; font-family: monospace; }
    </style>
</head>
<body>
    <div class="header">
        <h1>%s</h1>
    </div>
    <div class="content">
        %s
    </div>
    <div class="footer">
        <p>This email was sent by %s</p>
        <p><a href="%s">%s</a></p>
    </div>
</body>
</html>`, html.EscapeString(title), html.EscapeString(t.cfg.SiteTitle), content, html.EscapeString(t.cfg.SiteTitle), t.cfg.BaseURL, t.cfg.BaseURL)
}

func (t *Templates) wordURL(slug string) string {
	return fmt.Sprintf("%s/words/%s", t.cfg.BaseURL, slug)
}

// WordSubmittedForReview generates email for moderators when a word needs review.
func (t *Templates) WordSubmittedForReview(sub *models.WordSubmission) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("[%s] New word pending review: %s", t.cfg.SiteTitle, sub.Word)

	content := fmt.Sprintf(`
        <p>A new word has been submitted and requires your review.</p>

        <div class="info-box">
            <p><span class="label">Word:</span> <code>%s</code></p>
            <p><span class="label">Meanings:</span> %d</p>
            <p><span class="label">Submitted by:</span> %s (%s)</p>
        </div>

        <p style="text-align: center;">
            <a href="%s/moderation" class="button">Review in Dashboard</a>
        </p>
    `,
		html.EscapeString(sub.Word),
		len(sub.Meanings),
		html.EscapeString(sub.SubmitterName),
		html.EscapeString(sub.SubmitterEmail),
		t.cfg.BaseURL,
	)

	htmlBody = t.baseHTML(subject, content)

	textBody = fmt.Sprintf(`New word pending review

Word: %s
Meanings: %d
Submitted by: %s (%s)

Review at: %s/moderation

--
%s
%s`,
		sub.Word,
		len(sub.Meanings),
		sub.SubmitterName,
		sub.SubmitterEmail,
		t.cfg.BaseURL,
		t.cfg.SiteTitle,
		t.cfg.BaseURL,
	)

	return subject, htmlBody, textBody
}

// WordApproved generates the congratulatory email when a submission is
// approved and published.
func (t *Templates) WordApproved(sub *models.WordSubmission, word *models.Word) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("[%s] Your word %q has been approved", t.cfg.SiteTitle, word.Word)
	wordURL := t.wordURL(word.Slug)

	content := fmt.Sprintf(`
        <p>Hello %s,</p>
        <p class="success">Great news! Your contribution has been approved and published to the dictionary.</p>

        <div class="info-box">
            <p><span class="label">Word:</span> <code>%s</code></p>
        </div>

        <p>Thank you for helping grow the dictionary. Keep contributing!</p>

        <p style="text-align: center;">
            <a href="%s" class="button">View Your Word</a>
        </p>
    `,
		html.EscapeString(sub.SubmitterName),
		html.EscapeString(word.Word),
		wordURL,
	)

	htmlBody = t.baseHTML(subject, content)

	textBody = fmt.Sprintf(`Hello %s,

Great news! Your contribution has been approved and published to the dictionary.

Word: %q

Thank you for helping grow the dictionary. View it here: %s

Keep contributing!

--
%s
%s`,
		sub.SubmitterName,
		word.Word,
		wordURL,
		t.cfg.SiteTitle,
		t.cfg.BaseURL,
	)

	return subject, htmlBody, textBody
}

// WordRejected generates the email sent when a submission is rejected,
// including the reviewer's notes.
func (t *Templates) WordRejected(sub *models.WordSubmission, notes string) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("[%s] Update on your submission %q", t.cfg.SiteTitle, sub.Word)
	submitURL := t.cfg.BaseURL + "/submit"

	content := fmt.Sprintf(`
        <p>Hello %s,</p>
        <p>We've reviewed your submission and unfortunately it could not be approved at this time.</p>

        <div class="info-box">
            <p><span class="label">Word submitted:</span> <code>%s</code></p>
            <p><span class="label">Feedback from our team:</span> %s</p>
        </div>

        <p style="text-align: center;">
            <a href="%s" class="button">Submit a Revised Entry</a>
        </p>
    `,
		html.EscapeString(sub.SubmitterName),
		html.EscapeString(sub.Word),
		html.EscapeString(notes),
		submitURL,
	)

	htmlBody = t.baseHTML(subject, content)

	textBody = fmt.Sprintf(`Hello %s,

We've reviewed your submission and unfortunately it could not be approved at this time.

Word submitted: %q

Feedback from our team:
%s

You can submit a new or revised entry: %s

--
%s
%s`,
		sub.SubmitterName,
		sub.Word,
		notes,
		submitURL,
		t.cfg.SiteTitle,
		t.cfg.BaseURL,
	)

	return subject, htmlBody, textBody
}

// ExampleApproved generates the email sent when a usage example
// contribution is approved.
func (t *Templates) ExampleApproved(c *models.ExampleContribution) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("[%s] Your usage example for %q has been approved", t.cfg.SiteTitle, c.WordText)
	wordURL := t.wordURL(c.WordSlug)

	content := fmt.Sprintf(`
        <p>Hello %s,</p>
        <p class="success">Great news! Your usage example has been approved and added to the dictionary.</p>

        <div class="info-box">
            <p><span class="label">Word:</span> <code>%s</code></p>
            <p><span class="label">Meaning:</span> %s</p>
            <p><span class="label">Example:</span> %s</p>
        </div>

        <p style="text-align: center;">
            <a href="%s" class="button">View the Entry</a>
        </p>
    `,
		html.EscapeString(c.SubmitterName),
		html.EscapeString(c.WordText),
		html.EscapeString(c.MeaningText),
		html.EscapeString(c.ExampleText),
		wordURL,
	)

	htmlBody = t.baseHTML(subject, content)

	textBody = fmt.Sprintf(`Hello %s,

Great news! Your usage example has been approved and added to the dictionary.

Word: %q
Meaning: %s

Thank you for helping improve the dictionary. View it here: %s

Keep contributing!

--
%s
%s`,
		c.SubmitterName,
		c.WordText,
		c.MeaningText,
		wordURL,
		t.cfg.SiteTitle,
		t.cfg.BaseURL,
	)

	return subject, htmlBody, textBody
}

// ExampleRejected generates the email sent when a usage example
// contribution is rejected.
func (t *Templates) ExampleRejected(c *models.ExampleContribution, notes string) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("[%s] Update on your example submission for %q", t.cfg.SiteTitle, c.WordText)
	wordURL := t.wordURL(c.WordSlug)

	content := fmt.Sprintf(`
        <p>Hello %s,</p>
        <p>We've reviewed your usage example submission and unfortunately it could not be approved at this time.</p>

        <div class="info-box">
            <p><span class="label">Word:</span> <code>%s</code></p>
            <p><span class="label">Example submitted:</span> %s</p>
            <p><span class="label">Feedback from our team:</span> %s</p>
        </div>

        <p style="text-align: center;">
            <a href="%s" class="button">Submit a Revised Example</a>
        </p>
    `,
		html.EscapeString(c.SubmitterName),
		html.EscapeString(c.WordText),
		html.EscapeString(c.ExampleText),
		html.EscapeString(notes),
		wordURL,
	)

	htmlBody = t.baseHTML(subject, content)

	textBody = fmt.Sprintf(`Hello %s,

We've reviewed your usage example submission and unfortunately it could not be approved at this time.

Word: %q
Example submitted: %q

Feedback from our team:
%s

You can try submitting a revised example: %s

--
%s
%s`,
		c.SubmitterName,
		c.WordText,
		c.ExampleText,
		notes,
		wordURL,
		t.cfg.SiteTitle,
		t.cfg.BaseURL,
	)

	return subject, htmlBody, textBody
}
