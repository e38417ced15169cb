package completion

import (
	"time"

	"github.com/hyperengineering/solace/internal/entity"
	"github.com/hyperengineering/solace/internal/types"
	"github.com/hyperengineering/solace/internal/validation"
)

type updateInput struct {
	id    string
	patch types.CompletionPatch
}

func parseCreate(p entity.Payload) (types.NewRitualCompletion, error) {
	var in types.NewRitualCompletion

	ritualID, ok := p.String("ritualId")
	if !ok || ritualID == "" {
		return in, entity.Invalid("Missing ritualId")
	}
	in.RitualID = ritualID

	if p.Has("completedAt") {
		t, err := parseCompletedAt(p)
		if err != nil {
			return in, err
		}
		in.CompletedAt = t
	}

	if note, ok := p.String("note"); ok {
		if err := checkNote(note); err != nil {
			return in, err
		}
		in.Note = note
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

	if p.Has("completedAt") {
		t, err := parseCompletedAt(p)
		if err != nil {
			return in, err
		}
		in.patch.CompletedAt = &t
	}

	if note, ok := p.String("note"); ok {
		if err := checkNote(note); err != nil {
			return in, err
		}
		in.patch.Note = &note
	}

	return in, nil
}

func parseDelete(p entity.Payload) (string, error) {
	return p.ServerID()
}

func parseCompletedAt(p entity.Payload) (time.Time, error) {
	t, ok := p.Time("completedAt")
	if !ok {
		return t, entity.Invalid("Invalid completedAt: %s", entity.Describe(p.Raw("completedAt")))
	}
	return t, nil
}

func checkNote(note string) error {
	return entity.FromValidation(validation.ValidateText("note", note, validation.MaxNoteLength))
}
