package query

import (
	"fmt"
	"strings"
)

// Accepted question length bounds.
const (
	minQuestionLen = 3
	maxQuestionLen = 10000
)

// ValidationError rejects bad input before any cache or network access.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// validateQuestion checks the question against the length bounds.
func validateQuestion(question string) error {
	trimmed := strings.TrimSpace(question)
	if trimmed == "" {
		return &ValidationError{Field: "question", Reason: "empty"}
	}
	if len(trimmed) < minQuestionLen {
		return &ValidationError{Field: "question", Reason: fmt.Sprintf("shorter than %d characters", minQuestionLen)}
	}
	if len(question) > maxQuestionLen {
		return &ValidationError{Field: "question", Reason: fmt.Sprintf("longer than %d characters", maxQuestionLen)}
	}
	return nil
}

// validateModel rejects empty names and shell metacharacters.
func validateModel(model string) error {
	if strings.TrimSpace(model) == "" {
		return &ValidationError{Field: "model", Reason: "empty"}
	}
	if i := strings.IndexAny(model, `<>"'&|;` + "`"); i >= 0 {
		return &ValidationError{Field: "model", Reason: fmt.Sprintf("contains %q", model[i])}
	}
	return nil
}
