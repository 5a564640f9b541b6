package models

import (
	"time"

	"github.com/google/uuid"
)

// Word represents a published dictionary entry.
type Word struct {
	ID               uuid.UUID  `json:"id"`
	Word             string     `json:"word"`
	Slug             string     `json:"slug"`
	PronunciationURL string     `json:"pronunciation_url,omitempty"`
	Dialects         string     `json:"dialects,omitempty"`
	RelatedTerms     string     `json:"related_terms,omitempty"`
	ContributorID    *uuid.UUID `json:"contributor_id"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// Populated by queries that join related rows
	ContributorName string    `json:"contributor_name,omitempty"`
	Meanings        []Meaning `json:"meanings,omitempty"`
}

// Meaning is one sense of a published word.
type Meaning struct {
	ID             uuid.UUID `json:"id"`
	WordID         uuid.UUID `json:"word_id"`
	Meaning        string    `json:"meaning"`
	PartOfSpeechID uuid.UUID `json:"part_of_speech_id"`
	Position       int       `json:"position"`
	CreatedAt      time.Time `json:"created_at"`

	PartOfSpeech string    `json:"part_of_speech,omitempty"`
	Examples     []Example `json:"examples,omitempty"`
}

// Example is a usage example. Examples are shared records attached to
// meanings through a many-to-many relation, so one example can illustrate
// several meanings.
type Example struct {
	ID          uuid.UUID `json:"id"`
	ExampleText string    `json:"example_text"`
	Translation string    `json:"translation"`
	CreatedAt   time.Time `json:"created_at"`
}

// PartOfSpeech is a grammatical category referenced by meanings.
type PartOfSpeech struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
}
