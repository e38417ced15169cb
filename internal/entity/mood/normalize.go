package mood

import (
	"github.com/hyperengineering/solace/internal/entity"
	"github.com/hyperengineering/solace/internal/types"
	"github.com/hyperengineering/solace/internal/validation"
)

type updateInput struct {
	id    string
	patch types.MoodPatch
}

func parseCreate(p entity.Payload) (types.NewMoodEntry, error) {
	var in types.NewMoodEntry

	mood, err := parseMood(p)
	if err != nil {
		return in, err
	}
	in.Mood = mood

	in.Context = types.ContextManual
	if p.Has("context") {
		if in.Context, err = parseContext(p); err != nil {
			return in, err
		}
	}

	if note, ok := p.String("note"); ok {
		if err := entity.FromValidation(validation.ValidateText("note", note, validation.MaxNoteLength)); err != nil {
			return in, err
		}
		in.Note = note
	}

	if p.Has("intensity") {
		v, err := parseIntensity(p)
		if err != nil {
			return in, err
		}
		in.Intensity = &v
	}

	in.Tags = parseList(p, "tags")
	in.Factors = parseList(p, "factors")

	if p.Has("recordedAt") {
		t, ok := p.Time("recordedAt")
		if !ok {
			return in, entity.Invalid("Invalid recordedAt: %s", entity.Describe(p.Raw("recordedAt")))
		}
		in.RecordedAt = t
	}

	return in, nil
}

func parseUpdate(p entity.Payload) (updateInput, error) {
	var in updateInput

	id, err := p.ServerID()
	if err != nil {
		return in, err
	}
	in.id = id

	if p.Has("mood") {
		m, err := parseMood(p)
		if err != nil {
			return in, err
		}
		in.patch.Mood = &m
	}

	if p.Has("context") {
		c, err := parseContext(p)
		if err != nil {
			return in, err
		}
		in.patch.Context = &c
	}

	if note, ok := p.String("note"); ok {
		if err := entity.FromValidation(validation.ValidateText("note", note, validation.MaxNoteLength)); err != nil {
			return in, err
		}
		in.patch.Note = &note
	}

	if p.Has("intensity") {
		v, err := parseIntensity(p)
		if err != nil {
			return in, err
		}
		in.patch.Intensity = &v
	}

	if _, ok := p.StringList("tags"); ok {
		tags := parseList(p, "tags")
		in.patch.Tags = &tags
	}
	if _, ok := p.StringList("factors"); ok {
		factors := parseList(p, "factors")
		in.patch.Factors = &factors
	}

	if p.Has("recordedAt") {
		t, ok := p.Time("recordedAt")
		if !ok {
			return in, entity.Invalid("Invalid recordedAt: %s", entity.Describe(p.Raw("recordedAt")))
		}
		in.patch.RecordedAt = &t
	}

	return in, nil
}

func parseDelete(p entity.Payload) (string, error) {
	return p.ServerID()
}

func parseMood(p entity.Payload) (types.Mood, error) {
	raw := p.Raw("mood")
	if s, ok := raw.(string); ok {
		if m, ok := types.ParseMood(s); ok {
			return m, nil
		}
	}
	return "", entity.Invalid("Invalid mood: %s", entity.Describe(raw))
}

func parseContext(p entity.Payload) (types.MoodContext, error) {
	raw := p.Raw("context")
	if s, ok := raw.(string); ok {
		if c, ok := types.ParseMoodContext(s); ok {
			return c, nil
		}
	}
	return "", entity.Invalid("Invalid mood context: %s", entity.Describe(raw))
}

func parseIntensity(p entity.Payload) (int, error) {
	v, ok := p.Int("intensity")
	if !ok || validation.ValidateRange("intensity", v, 1, 10) != nil {
		return 0, entity.Invalid("Invalid intensity: %s", entity.Describe(p.Raw("intensity")))
	}
	return v, nil
}

// parseList returns the strings under key, or an empty list when the value is
// absent or not a list. Oversized lists and invalid elements are trimmed.
func parseList(p entity.Payload, key string) []string {
	items, ok := p.StringList(key)
	if !ok {
		return []string{}
	}
	return validation.CoerceTags(items)
}
