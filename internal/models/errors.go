package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when no article matches the requested id
	ErrNotFound = errors.New("article not found")

	// ErrConfirmationRequired is returned when a delete arrives without confirmation
	ErrConfirmationRequired = errors.New("delete requires confirmation")

	// ErrNotEditing is returned when a form is submitted while not in the editing state
	ErrNotEditing = errors.New("submission is not in the editing state")
)

// ValidationError represents a single field validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects the field errors of one submission
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	messages := make([]string, 0, len(e))
	for _, v := range e {
		messages = append(messages, v.Error())
	}
	return "validation failed: " + strings.Join(messages, ", ")
}

// Fields returns the names of the failing fields
func (e ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(e))
	for _, v := range e {
		fields = append(fields, v.Field)
	}
	return fields
}

// StoreError wraps any failure of the article store
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// UploadError wraps a failed image write to object storage
type UploadError struct {
	Key string
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s: %v", e.Key, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// UpstreamSearchError wraps a failed call to the web search provider
type UpstreamSearchError struct {
	StatusCode int
	Err        error
}

func (e *UpstreamSearchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("web search: upstream returned status %d", e.StatusCode)
	}
	if e.StatusCode == 0 {
		return fmt.Sprintf("web search: %v", e.Err)
	}
	return fmt.Sprintf("web search: status %d: %v", e.StatusCode, e.Err)
}

func (e *UpstreamSearchError) Unwrap() error { return e.Err }
