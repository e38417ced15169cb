package types

import (
	"strings"
	"time"
)

// Mood is the coarse emotional state recorded by a mood entry.
type Mood string

const (
	MoodAwful Mood = "AWFUL"
	MoodBad   Mood = "BAD"
	MoodOkay  Mood = "OKAY"
	MoodGood  Mood = "GOOD"
	MoodGreat Mood = "GREAT"
)

// Moods lists every accepted mood value.
var Moods = []Mood{MoodAwful, MoodBad, MoodOkay, MoodGood, MoodGreat}

// ParseMood matches s case-insensitively against Moods.
func ParseMood(s string) (Mood, bool) {
	for _, m := range Moods {
		if strings.EqualFold(s, string(m)) {
			return m, true
		}
	}
	return "", false
}

// MoodContext records what prompted a mood entry.
type MoodContext string

const (
	ContextManual   MoodContext = "manual"
	ContextCheckIn  MoodContext = "checkin"
	ContextJournal  MoodContext = "journal"
	ContextRitual   MoodContext = "ritual"
	ContextReminder MoodContext = "reminder"
	ContextWidget   MoodContext = "widget"
)

// MoodContexts lists every accepted mood context.
var MoodContexts = []MoodContext{
	ContextManual, ContextCheckIn, ContextJournal, ContextRitual, ContextReminder, ContextWidget,
}

// ParseMoodContext matches s case-insensitively against MoodContexts.
func ParseMoodContext(s string) (MoodContext, bool) {
	for _, c := range MoodContexts {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return "", false
}

// RitualFrequency is how often a ritual is meant to be performed.
type RitualFrequency string

const (
	FrequencyDaily   RitualFrequency = "daily"
	FrequencyWeekly  RitualFrequency = "weekly"
	FrequencyMonthly RitualFrequency = "monthly"
)

// RitualFrequencies lists every accepted ritual frequency.
var RitualFrequencies = []RitualFrequency{FrequencyDaily, FrequencyWeekly, FrequencyMonthly}

// ParseRitualFrequency matches s case-insensitively against RitualFrequencies.
func ParseRitualFrequency(s string) (RitualFrequency, bool) {
	for _, f := range RitualFrequencies {
		if strings.EqualFold(s, string(f)) {
			return f, true
		}
	}
	return "", false
}

// MoodEntry is a persisted mood check-in.
type MoodEntry struct {
	ID         string      `json:"id"`
	OwnerID    string      `json:"ownerId"`
	Mood       Mood        `json:"mood"`
	Context    MoodContext `json:"context"`
	Note       string      `json:"note"`
	Intensity  *int        `json:"intensity,omitempty"`
	Tags       []string    `json:"tags"`
	Factors    []string    `json:"factors"`
	RecordedAt time.Time   `json:"recordedAt"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
	DeletedAt  *time.Time  `json:"deletedAt,omitempty"`
}

// NewMoodEntry holds the fields for inserting a mood entry.
type NewMoodEntry struct {
	Mood       Mood
	Context    MoodContext
	Note       string
	Intensity  *int
	Tags       []string
	Factors    []string
	RecordedAt time.Time
}

// MoodPatch lists the mood entry fields to change. Nil fields are left untouched.
type MoodPatch struct {
	Mood       *Mood
	Context    *MoodContext
	Note       *string
	Intensity  *int
	Tags       *[]string
	Factors    *[]string
	RecordedAt *time.Time
}

// JournalEntry is a persisted journal entry.
type JournalEntry struct {
	ID        string     `json:"id"`
	OwnerID   string     `json:"ownerId"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Mood      *Mood      `json:"mood,omitempty"`
	Tags      []string   `json:"tags"`
	IsLocked  bool       `json:"isLocked"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// NewJournalEntry holds the fields for inserting a journal entry.
type NewJournalEntry struct {
	Title    string
	Content  string
	Mood     *Mood
	Tags     []string
	IsLocked bool
}

// JournalPatch lists the journal entry fields to change. Nil fields are left untouched.
type JournalPatch struct {
	Title    *string
	Content  *string
	Mood     *Mood
	Tags     *[]string
	IsLocked *bool
}

// Ritual is a recurring self-care practice defined by the owner.
type Ritual struct {
	ID           string          `json:"id"`
	OwnerID      string          `json:"ownerId"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Frequency    RitualFrequency `json:"frequency"`
	ReminderTime *string         `json:"reminderTime,omitempty"`
	IsActive     bool            `json:"isActive"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
	DeletedAt    *time.Time      `json:"deletedAt,omitempty"`
}

// NewRitual holds the fields for inserting a ritual.
type NewRitual struct {
	Name         string
	Description  string
	Frequency    RitualFrequency
	ReminderTime *string
	IsActive     bool
}

// RitualPatch lists the ritual fields to change. Nil fields are left untouched.
type RitualPatch struct {
	Name         *string
	Description  *string
	Frequency    *RitualFrequency
	ReminderTime *string
	IsActive     *bool
}

// RitualCompletion records one performance of a ritual.
type RitualCompletion struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"ownerId"`
	RitualID    string     `json:"ritualId"`
	CompletedAt time.Time  `json:"completedAt"`
	Note        string     `json:"note"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
}

// NewRitualCompletion holds the fields for inserting a ritual completion.
type NewRitualCompletion struct {
	RitualID    string
	CompletedAt time.Time
	Note        string
}

// CompletionPatch lists the completion fields to change. Nil fields are left untouched.
type CompletionPatch struct {
	CompletedAt *time.Time
	Note        *string
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
