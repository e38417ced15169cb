package journal

import (
	"github.com/hyperengineering/solace/internal/entity"
	"github.com/hyperengineering/solace/internal/types"
	"github.com/hyperengineering/solace/internal/validation"
)

type updateInput struct {
	id    string
	patch types.JournalPatch
}

func parseCreate(p entity.Payload) (types.NewJournalEntry, error) {
	var in types.NewJournalEntry

	content, ok := p.String("content")
	if !ok || content == "" {
		return in, entity.Invalid("Missing journal content")
	}
	if err := checkContent(content); err != nil {
		return in, err
	}
	in.Content = content

	if title, ok := p.String("title"); ok {
		if err := checkTitle(title); err != nil {
			return in, err
		}
		in.Title = title
	}

	if p.Has("mood") {
		m, err := parseMood(p)
		if err != nil {
			return in, err
		}
		in.Mood = &m
	}

	in.Tags = []string{}
	if tags, ok := p.StringList("tags"); ok {
		in.Tags = validation.CoerceTags(tags)
	}

	if locked, ok := parseLocked(p); ok {
		in.IsLocked = locked
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

	if p.Present("content") {
		content, ok := p.String("content")
		if !ok || content == "" {
			return in, entity.Invalid("Invalid journal content")
		}
		if err := checkContent(content); err != nil {
			return in, err
		}
		in.patch.Content = &content
	}

	if title, ok := p.String("title"); ok {
		if err := checkTitle(title); err != nil {
			return in, err
		}
		in.patch.Title = &title
	}

	if p.Has("mood") {
		m, err := parseMood(p)
		if err != nil {
			return in, err
		}
		in.patch.Mood = &m
	}

	if tags, ok := p.StringList("tags"); ok {
		tags = validation.CoerceTags(tags)
		in.patch.Tags = &tags
	}

	if locked, ok := parseLocked(p); ok {
		in.patch.IsLocked = &locked
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

// parseLocked reads isLocked, falling back to the legacy isPrivate flag when
// isLocked is absent.
func parseLocked(p entity.Payload) (bool, bool) {
	if p.Has("isLocked") {
		return p.Bool("isLocked")
	}
	return p.Bool("isPrivate")
}

func checkContent(content string) error {
	return entity.FromValidation(validation.ValidateText("content", content, validation.MaxContentLength))
}

func checkTitle(title string) error {
	return entity.FromValidation(validation.ValidateText("title", title, validation.MaxTitleLength))
}
