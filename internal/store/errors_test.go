package store

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrNotFound_SurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("update mood entry: %w", ErrNotFound)

	if !errors.Is(wrapped, ErrNotFound) {
		t.Error("errors.Is should see ErrNotFound through wrapping")
	}
	if ErrNotFound.Error() == "" {
		t.Fatal("ErrNotFound should have a message")
	}
}
