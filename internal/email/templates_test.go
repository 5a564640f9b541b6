package email

import (
	"strings"
	"testing"

	"lexipedia/internal/config"
	"lexipedia/internal/models"
)

func testTemplates() *Templates {
	return NewTemplates(&config.Config{
		SiteTitle: "Lexipedia",
		BaseURL:   "https://dict.example.com",
	})
}

func testWordSubmission() *models.WordSubmission {
	return &models.WordSubmission{
		Word:           "agbo",
		SubmitterName:  "Ada Example",
		SubmitterEmail: "ada@example.com",
		Meanings: []models.MeaningSubmission{
			{Meaning: "a herbal mixture"},
		},
	}
}

func TestBaseHTML(t *testing.T) {
	tmpl := testTemplates()

	body := tmpl.baseHTML("Test Title", "<p>hello</p>")

	for _, want := range []string{
		"<!DOCTYPE html>",
		"Test Title",
		"Lexipedia",
		"https://dict.example.com",
		"<p>hello</p>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("baseHTML() missing %q", want)
		}
	}
}

func TestBaseHTML_EscapesTitle(t *testing.T) {
	tmpl := testTemplates()

	body := tmpl.baseHTML(`<script>alert("x")</script>`, "content")

	if strings.Contains(body, `<script>alert`) {
		t.Error("baseHTML() did not escape the title")
	}
}

func TestWordSubmittedForReview(t *testing.T) {
	tmpl := testTemplates()
	sub := testWordSubmission()

	subject, htmlBody, textBody := tmpl.WordSubmittedForReview(sub)

	if !strings.Contains(subject, "agbo") {
		t.Errorf("subject = %q, want the word in it", subject)
	}
	if !strings.Contains(subject, "pending review") {
		t.Errorf("subject = %q, want review wording", subject)
	}
	if !strings.Contains(htmlBody, "Ada Example") {
		t.Error("html body missing the submitter name")
	}
	if !strings.Contains(htmlBody, "/moderation") {
		t.Error("html body missing the moderation link")
	}
	if !strings.Contains(textBody, "agbo") || !strings.Contains(textBody, "/moderation") {
		t.Error("text body missing the word or the moderation link")
	}
}

func TestWordApproved(t *testing.T) {
	tmpl := testTemplates()
	sub := testWordSubmission()
	word := &models.Word{Word: "agbo", Slug: "agbo"}

	subject, htmlBody, textBody := tmpl.WordApproved(sub, word)

	if !strings.HasPrefix(subject, "[Lexipedia]") {
		t.Errorf("subject = %q, want the site title prefix", subject)
	}
	if !strings.Contains(subject, "approved") {
		t.Errorf("subject = %q, want approval wording", subject)
	}
	if !strings.Contains(htmlBody, "Great news!") {
		t.Error("html body missing the congratulation")
	}
	if !strings.Contains(htmlBody, "https://dict.example.com/words/agbo") {
		t.Error("html body missing the link to the published entry")
	}
	if !strings.Contains(textBody, "https://dict.example.com/words/agbo") {
		t.Error("text body missing the link to the published entry")
	}
}

func TestWordRejected(t *testing.T) {
	tmpl := testTemplates()
	sub := testWordSubmission()

	subject, htmlBody, textBody := tmpl.WordRejected(sub, "Needs a citation.")

	if !strings.HasPrefix(subject, "[Lexipedia]") {
		t.Errorf("subject = %q, want the site title prefix", subject)
	}
	if !strings.Contains(subject, "agbo") {
		t.Errorf("subject = %q, want the word in it", subject)
	}
	if !strings.Contains(htmlBody, "could not be approved") {
		t.Error("html body missing the rejection wording")
	}
	if !strings.Contains(htmlBody, "Needs a citation.") {
		t.Error("html body missing the reviewer notes")
	}
	if !strings.Contains(textBody, "Needs a citation.") {
		t.Error("text body missing the reviewer notes")
	}
	if !strings.Contains(htmlBody, "/submit") {
		t.Error("html body missing the resubmission link")
	}
}

func TestWordRejected_EscapesNotes(t *testing.T) {
	tmpl := testTemplates()
	sub := testWordSubmission()

	_, htmlBody, _ := tmpl.WordRejected(sub, `<img src=x onerror=alert(1)>`)

	if strings.Contains(htmlBody, "<img src=x") {
		t.Error("WordRejected() did not escape the reviewer notes")
	}
}

func TestExampleApproved(t *testing.T) {
	tmpl := testTemplates()
	c := &models.ExampleContribution{
		ExampleText:   "Agbo is bitter.",
		SubmitterName: "Ada Example",
		WordText:      "agbo",
		WordSlug:      "agbo",
		MeaningText:   "a herbal mixture",
	}

	subject, htmlBody, textBody := tmpl.ExampleApproved(c)

	if !strings.HasPrefix(subject, "[Lexipedia]") {
		t.Errorf("subject = %q, want the site title prefix", subject)
	}
	if !strings.Contains(subject, "approved") {
		t.Errorf("subject = %q, want approval wording", subject)
	}
	if !strings.Contains(htmlBody, "Agbo is bitter.") {
		t.Error("html body missing the example text")
	}
	if !strings.Contains(textBody, "https://dict.example.com/words/agbo") {
		t.Error("text body missing the link to the entry")
	}
}

func TestExampleRejected(t *testing.T) {
	tmpl := testTemplates()
	c := &models.ExampleContribution{
		ExampleText:   "Agbo is bitter.",
		SubmitterName: "Ada Example",
		WordText:      "agbo",
		WordSlug:      "agbo",
	}

	subject, htmlBody, textBody := tmpl.ExampleRejected(c, "Unclear usage.")

	if !strings.HasPrefix(subject, "[Lexipedia]") {
		t.Errorf("subject = %q, want the site title prefix", subject)
	}
	if !strings.Contains(subject, "example submission") {
		t.Errorf("subject = %q, want example wording", subject)
	}
	if !strings.Contains(htmlBody, "Unclear usage.") {
		t.Error("html body missing the reviewer notes")
	}
	if !strings.Contains(textBody, "Unclear usage.") {
		t.Error("text body missing the reviewer notes")
	}
}
