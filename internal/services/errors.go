package services

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrUserNotFound     = errors.New("user not found")
	ErrPostNotFound     = errors.New("post not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrReplyNotFound    = errors.New("reply not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrMemoNotFound     = errors.New("memo not found")
	ErrEventNotFound    = errors.New("event not found")
	ErrPlayerNotFound   = errors.New("player not found")
)

// ValidationError collects the messages of every rejected form field.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records msg against field.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// Err returns e when at least one field was rejected and nil otherwise.
func (e *ValidationError) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// MsgInvalidImage rejects uploads that are not a supported image.
const MsgInvalidImage = "올바른 이미지를 업로드하세요."

// FieldError builds a ValidationError for a single field.
func FieldError(field, msg string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, msg)
	return v
}
