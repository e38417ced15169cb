package ritual

import (
	"github.com/hyperengineering/solace/internal/entity"
	"github.com/hyperengineering/solace/internal/types"
	"github.com/hyperengineering/solace/internal/validation"
)

type updateInput struct {
	id    string
	patch types.RitualPatch
}

func parseCreate(p entity.Payload) (types.NewRitual, error) {
	in := types.NewRitual{
		Frequency: types.FrequencyDaily,
		IsActive:  true,
	}

	name, ok := p.String("name")
	if !ok || validation.ValidateRequired("name", name) != nil {
		return in, entity.Invalid("Missing ritual name")
	}
	if err := checkName(name); err != nil {
		return in, err
	}
	in.Name = name

	if desc, ok := p.String("description"); ok {
		if err := checkDescription(desc); err != nil {
			return in, err
		}
		in.Description = desc
	}

	if p.Has("frequency") {
		f, err := parseFrequency(p)
		if err != nil {
			return in, err
		}
		in.Frequency = f
	}

	if p.Has("reminderTime") {
		rt, err := parseReminderTime(p)
		if err != nil {
			return in, err
		}
		in.ReminderTime = &rt
	}

	if active, ok := p.Bool("isActive"); ok {
		in.IsActive = active
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

	if p.Present("name") {
		name, ok := p.String("name")
		if !ok || validation.ValidateRequired("name", name) != nil {
			return in, entity.Invalid("Invalid ritual name")
		}
		if err := checkName(name); err != nil {
			return in, err
		}
		in.patch.Name = &name
	}

	if desc, ok := p.String("description"); ok {
		if err := checkDescription(desc); err != nil {
			return in, err
		}
		in.patch.Description = &desc
	}

	if p.Has("frequency") {
		f, err := parseFrequency(p)
		if err != nil {
			return in, err
		}
		in.patch.Frequency = &f
	}

	if p.Has("reminderTime") {
		rt, err := parseReminderTime(p)
		if err != nil {
			return in, err
		}
		in.patch.ReminderTime = &rt
	}

	if active, ok := p.Bool("isActive"); ok {
		in.patch.IsActive = &active
	}

	return in, nil
}

func parseDelete(p entity.Payload) (string, error) {
	return p.ServerID()
}

func parseFrequency(p entity.Payload) (types.RitualFrequency, error) {
	raw := p.Raw("frequency")
	if s, ok := raw.(string); ok {
		if f, ok := types.ParseRitualFrequency(s); ok {
			return f, nil
		}
	}
	return "", entity.Invalid("Invalid ritual frequency: %s", entity.Describe(raw))
}

func parseReminderTime(p entity.Payload) (string, error) {
	raw := p.Raw("reminderTime")
	if s, ok := raw.(string); ok && validation.ValidateClockTime("reminderTime", s) == nil {
		return s, nil
	}
	return "", entity.Invalid("Invalid reminderTime: %s", entity.Describe(raw))
}

func checkName(name string) error {
	return entity.FromValidation(validation.ValidateText("name", name, validation.MaxNameLength))
}

func checkDescription(desc string) error {
	return entity.FromValidation(validation.ValidateText("description", desc, validation.MaxNoteLength))
}
