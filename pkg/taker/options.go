package taker

import (
	"github.com/goliatone/go-qna/pkg/uischema"
	"github.com/goliatone/go-qna/pkg/validation"
)

// Option mutates session configuration.
type Option func(*Session)

// WithPromptDriver swaps the underlying prompt implementation (useful for
// tests).
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithValidator overrides the validator applied to the collected answers.
// Defaults to the native validator over the compiled schema.
func WithValidator(v validation.Validator) Option {
	return func(s *Session) {
		if v != nil {
			s.validator = v
		}
	}
}

// WithHints supplies a UI-hint document; placeholders become prompt help and
// widget hints are honoured for TrueOrFalse questions.
func WithHints(doc uischema.Document) Option {
	return func(s *Session) {
		s.hints = doc
	}
}

// WithPrefill seeds prompt defaults from a previous answer document keyed by
// question id.
func WithPrefill(values map[string]any) Option {
	return func(s *Session) {
		s.prefill = values
	}
}
