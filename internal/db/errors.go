package db

import "errors"

// Domain-level database error sentinels.
var (
	// Word errors
	ErrWordNotFound  = errors.New("word not found")
	ErrDuplicateWord = errors.New("word already exists")

	// Meaning errors
	ErrMeaningNotFound = errors.New("meaning not found")

	// Part of speech errors
	ErrPartOfSpeechNotFound = errors.New("part of speech not found")

	// Submission errors
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrAlreadyProcessed   = errors.New("submission already processed")

	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Stats errors
	ErrStatsNotFound = errors.New("contribution stats not found")
)
