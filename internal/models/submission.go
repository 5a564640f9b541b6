package models

import (
	"time"

	"github.com/google/uuid"
)

// Submission status constants. Transitions are one-way and terminal:
// pending -> approved or pending -> rejected, never back.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// DefaultRejectionNotes is used when a reviewer rejects without a reason.
const DefaultRejectionNotes = "No reason provided."

// WordSubmission is a contributor-submitted word awaiting review,
// together with its nested meaning and example submissions.
type WordSubmission struct {
	ID               uuid.UUID  `json:"id"`
	Word             string     `json:"word"`
	PronunciationURL string     `json:"pronunciation_url,omitempty"`
	Dialects         string     `json:"dialects,omitempty"`
	RelatedTerms     string     `json:"related_terms,omitempty"`
	SubmittedBy      uuid.UUID  `json:"submitted_by"`
	SubmittedAt      time.Time  `json:"submitted_at"`
	Status           string     `json:"status"`
	ReviewedBy       *uuid.UUID `json:"reviewed_by"`
	ReviewedAt       *time.Time `json:"reviewed_at"`
	ReviewNotes      *string    `json:"review_notes"`
	ApprovedWordID   *uuid.UUID `json:"approved_word_id"`

	SubmitterName  string              `json:"submitter_name,omitempty"`
	SubmitterEmail string              `json:"submitter_email,omitempty"`
	Meanings       []MeaningSubmission `json:"meanings,omitempty"`
}

// MeaningSubmission is a pending meaning owned by a word submission.
type MeaningSubmission struct {
	ID               uuid.UUID `json:"id"`
	WordSubmissionID uuid.UUID `json:"word_submission_id"`
	Meaning          string    `json:"meaning"`
	PartOfSpeechID   uuid.UUID `json:"part_of_speech_id"`
	Position         int       `json:"position"`

	PartOfSpeech string              `json:"part_of_speech,omitempty"`
	Examples     []ExampleSubmission `json:"examples,omitempty"`
}

// ExampleSubmission is a pending usage example owned by a meaning submission.
type ExampleSubmission struct {
	ID                  uuid.UUID `json:"id"`
	MeaningSubmissionID uuid.UUID `json:"meaning_submission_id"`
	ExampleText         string    `json:"example_text"`
	Translation         string    `json:"translation"`
}

// ExampleContribution is a standalone usage example submitted against an
// existing published meaning.
type ExampleContribution struct {
	ID                uuid.UUID  `json:"id"`
	MeaningID         uuid.UUID  `json:"meaning_id"`
	ExampleText       string     `json:"example_text"`
	Translation       string     `json:"translation"`
	SubmittedBy       uuid.UUID  `json:"submitted_by"`
	SubmittedAt       time.Time  `json:"submitted_at"`
	Status            string     `json:"status"`
	ReviewedBy        *uuid.UUID `json:"reviewed_by"`
	ReviewedAt        *time.Time `json:"reviewed_at"`
	ReviewNotes       *string    `json:"review_notes"`
	ApprovedExampleID *uuid.UUID `json:"approved_example_id"`

	SubmitterName  string `json:"submitter_name,omitempty"`
	SubmitterEmail string `json:"submitter_email,omitempty"`
	WordText       string `json:"word,omitempty"`
	WordSlug       string `json:"word_slug,omitempty"`
	MeaningText    string `json:"meaning,omitempty"`
}

// IsPending returns true if the submission still awaits review.
func (s *WordSubmission) IsPending() bool {
	return s.Status == StatusPending
}

// IsApproved returns true if the submission was approved and published.
func (s *WordSubmission) IsApproved() bool {
	return s.Status == StatusApproved
}

// IsRejected returns true if the submission was rejected.
func (s *WordSubmission) IsRejected() bool {
	return s.Status == StatusRejected
}

// IsPending returns true if the contribution still awaits review.
func (c *ExampleContribution) IsPending() bool {
	return c.Status == StatusPending
}
