package validation

import (
	"fmt"
	"strings"
	"testing"
)

// --- ValidateUTF8 Tests ---

func TestValidateUTF8_Valid(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"ascii", "hello world"},
		{"empty", ""},
		{"unicode", "Hello, 世界"},
		{"emoji", "Hello 👋🏻"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUTF8("field", tt.value)
			if err != nil {
				t.Errorf("ValidateUTF8(%q) = %v, want nil", tt.value, err)
			}
		})
	}
}

func TestValidateUTF8_Invalid(t *testing.T) {
	// Invalid UTF-8 byte sequence
	invalidUTF8 := string([]byte{0xff, 0xfe})

	err := ValidateUTF8("content", invalidUTF8)
	if err == nil {
		t.Error("ValidateUTF8(invalid) = nil, want error")
	}
	if err != nil && err.Field != "content" {
		t.Errorf("error.Field = %q, want %q", err.Field, "content")
	}
}

// --- ValidateNoNullBytes Tests ---

func TestValidateNoNullBytes_Clean(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"normal", "hello world"},
		{"empty", ""},
		{"unicode", "Hello, 世界"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNoNullBytes("field", tt.value)
			if err != nil {
				t.Errorf("ValidateNoNullBytes(%q) = %v, want nil", tt.value, err)
			}
		})
	}
}

func TestValidateNoNullBytes_WithNull(t *testing.T) {
	err := ValidateNoNullBytes("content", "hello\x00world")
	if err == nil {
		t.Error("ValidateNoNullBytes(with null) = nil, want error")
	}
	if err != nil && err.Field != "content" {
		t.Errorf("error.Field = %q, want %q", err.Field, "content")
	}
}

// --- ValidateMaxLength Tests ---

func TestValidateMaxLength_Within(t *testing.T) {
	value := strings.Repeat("a", 100)
	err := ValidateMaxLength("content", value, 4000)
	if err != nil {
		t.Errorf("ValidateMaxLength(100 chars, max 4000) = %v, want nil", err)
	}
}

func TestValidateMaxLength_AtLimit(t *testing.T) {
	value := strings.Repeat("a", 4000)
	err := ValidateMaxLength("content", value, 4000)
	if err != nil {
		t.Errorf("ValidateMaxLength(4000 chars, max 4000) = %v, want nil", err)
	}
}

func TestValidateMaxLength_Exceeds(t *testing.T) {
	value := strings.Repeat("a", 4001)
	err := ValidateMaxLength("content", value, 4000)
	if err == nil {
		t.Error("ValidateMaxLength(4001 chars, max 4000) = nil, want error")
	}
	if err != nil && err.Field != "content" {
		t.Errorf("error.Field = %q, want %q", err.Field, "content")
	}
}

func TestValidateMaxLength_MultibyteRunes(t *testing.T) {
	// 4000 emoji characters (each 4 bytes in UTF-8, but counts as 1 rune)
	value := strings.Repeat("👋", 4000)
	err := ValidateMaxLength("content", value, 4000)
	if err != nil {
		t.Errorf("ValidateMaxLength(4000 emoji, max 4000) = %v, want nil (counts runes)", err)
	}
}

func TestValidateMaxLength_MultibyteRunes_Exceeds(t *testing.T) {
	// 4001 emoji characters (exceeds 4000 rune limit)
	value := strings.Repeat("👋", 4001)
	err := ValidateMaxLength("content", value, 4000)
	if err == nil {
		t.Error("ValidateMaxLength(4001 emoji, max 4000) = nil, want error")
	}
}

// --- ValidateULID Tests ---

// --- ValidateRequired Tests ---

func TestValidateRequired_NonEmpty(t *testing.T) {
	err := ValidateRequired("field", "value")
	if err != nil {
		t.Errorf("ValidateRequired(value) = %v, want nil", err)
	}
}

func TestValidateRequired_Empty(t *testing.T) {
	err := ValidateRequired("source_id", "")
	if err == nil {
		t.Error("ValidateRequired(empty) = nil, want error")
	}
	if err != nil && err.Field != "source_id" {
		t.Errorf("error.Field = %q, want %q", err.Field, "source_id")
	}
}

func TestValidateRequired_WhitespaceOnly(t *testing.T) {
	tests := []string{" ", "   ", "\t", "\n", "  \t\n  "}
	for _, value := range tests {
		t.Run("whitespace", func(t *testing.T) {
			err := ValidateRequired("field", value)
			if err == nil {
				t.Errorf("ValidateRequired(%q) = nil, want error", value)
			}
		})
	}
}


// --- ValidateRange Tests ---

func TestValidateRange(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		wantErr bool
	}{
		{"min", 1, false},
		{"max", 10, false},
		{"middle", 5, false},
		{"below", 0, true},
		{"above", 11, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRange("intensity", tt.value, 1, 10)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRange(%d) = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

// --- CoerceTags Tests ---

func TestCoerceTags_CapsCount(t *testing.T) {
	tags := make([]string, MaxTags+1)
	for i := range tags {
		tags[i] = fmt.Sprintf("t%d", i)
	}
	got := CoerceTags(tags)
	if len(got) != MaxTags {
		t.Fatalf("len(CoerceTags) = %d, want %d", len(got), MaxTags)
	}
	if got[0] != "t0" || got[MaxTags-1] != fmt.Sprintf("t%d", MaxTags-1) {
		t.Errorf("CoerceTags kept %q..%q, want the first %d", got[0], got[MaxTags-1], MaxTags)
	}
}

func TestCoerceTags_DropsInvalidElements(t *testing.T) {
	got := CoerceTags([]string{"ok", strings.Repeat("x", MaxTagLength+1), "nul\x00byte", "\xff\xfe", "fine"})
	want := []string{"ok", "fine"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("CoerceTags() = %q, want %q", got, want)
	}
}

func TestCoerceTags_DroppedElementsDoNotCountTowardCap(t *testing.T) {
	tags := []string{strings.Repeat("x", MaxTagLength+1)}
	for i := 0; i < MaxTags; i++ {
		tags = append(tags, "t")
	}
	if got := CoerceTags(tags); len(got) != MaxTags {
		t.Errorf("len(CoerceTags) = %d, want %d", len(got), MaxTags)
	}
}

func TestCoerceTags_Empty(t *testing.T) {
	got := CoerceTags(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("CoerceTags(nil) = %#v, want empty non-nil slice", got)
	}
}

// --- ValidateClockTime Tests ---

func TestValidateClockTime(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"07:30", false},
		{"23:59", false},
		{"00:00", false},
		{"24:00", true},
		{"7:30", true},
		{"07:30:00", true},
		{"morning", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := ValidateClockTime("reminderTime", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateClockTime(%q) = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

// --- First / ValidateText Tests ---

func TestFirst_ReturnsFirstNonNil(t *testing.T) {
	a := &ValidationError{Field: "a", Message: "first"}
	b := &ValidationError{Field: "b", Message: "second"}

	if got := First(nil, a, b); got != a {
		t.Errorf("First() = %v, want %v", got, a)
	}
	if got := First(nil, nil); got != nil {
		t.Errorf("First(nil, nil) = %v, want nil", got)
	}
}

func TestValidateText_ChecksNullBytesBeforeLength(t *testing.T) {
	err := ValidateText("note", "a\x00b", 1)
	if err == nil {
		t.Fatal("ValidateText() = nil, want error")
	}
	if err.Message != "must not contain null bytes" {
		t.Errorf("error.Message = %q, want null byte error", err.Message)
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Field: "content", Message: "is required"}
	if err.Error() != "content: is required" {
		t.Errorf("Error() = %q", err.Error())
	}
}
