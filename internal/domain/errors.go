package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrQuizNotFound indicates the quiz does not exist (or is inactive
	// on taker-facing reads).
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuestionNotFound indicates a question id does not resolve.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrAttemptNotFound indicates an attempt id does not resolve.
	ErrAttemptNotFound = errors.New("attempt not found")
)

// ValidationError carries per-field messages for multi-field validation
// failures. It maps to a 400 response at the transport boundary.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

// Validationf builds a single-message validation error.
func Validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
