package validation

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Field limits applied to free-text payload fields.
const (
	MaxNoteLength    = 2000
	MaxTitleLength   = 200
	MaxContentLength = 50000
	MaxNameLength    = 120
	MaxTagLength     = 64
	MaxTags          = 50
)

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// First returns the first non-nil error, or nil.
func First(errs ...*ValidationError) *ValidationError {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// ValidateText runs the checks every stored string must pass.
func ValidateText(field, value string, max int) *ValidationError {
	return First(
		ValidateUTF8(field, value),
		ValidateNoNullBytes(field, value),
		ValidateMaxLength(field, value, max),
	)
}

// ValidateUTF8 returns an error if the value is not valid UTF-8.
func ValidateUTF8(field, value string) *ValidationError {
	if !utf8.ValidString(value) {
		return &ValidationError{
			Field:   field,
			Message: "must be valid UTF-8",
		}
	}
	return nil
}

// ValidateNoNullBytes returns an error if the value contains null bytes.
func ValidateNoNullBytes(field, value string) *ValidationError {
	if strings.Contains(value, "\x00") {
		return &ValidationError{
			Field:   field,
			Message: "must not contain null bytes",
		}
	}
	return nil
}

// ValidateMaxLength returns an error if the value exceeds max runes.
func ValidateMaxLength(field, value string, max int) *ValidationError {
	if utf8.RuneCountInString(value) > max {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("exceeds maximum length of %d characters", max),
		}
	}
	return nil
}

// ValidateRequired returns an error if the value is empty or whitespace-only.
func ValidateRequired(field, value string) *ValidationError {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   field,
			Message: "is required",
		}
	}
	return nil
}

// ValidateRange returns an error if the value is outside [min, max].
func ValidateRange(field string, value, min, max int) *ValidationError {
	if value < min || value > max {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be between %d and %d", min, max),
		}
	}
	return nil
}

// CoerceTags returns tags with every element that fails ValidateText at
// MaxTagLength dropped, truncated to the first MaxTags survivors. It never
// fails and never returns nil.
func CoerceTags(tags []string) []string {
	out := make([]string, 0, min(len(tags), MaxTags))
	for _, tag := range tags {
		if len(out) == MaxTags {
			break
		}
		if ValidateText("tag", tag, MaxTagLength) != nil {
			continue
		}
		out = append(out, tag)
	}
	return out
}

// ValidateClockTime returns an error unless value is a 24-hour HH:MM time.
func ValidateClockTime(field, value string) *ValidationError {
	if _, err := time.Parse("15:04", value); err != nil || len(value) != 5 {
		return &ValidationError{
			Field:   field,
			Message: "must be a time of day in HH:MM format",
		}
	}
	return nil
}
