package entity

import "strings"

// Kind identifies the type of record a sync operation targets.
type Kind string

const (
	KindMood       Kind = "mood"
	KindJournal    Kind = "journal"
	KindRitual     Kind = "ritual"
	KindCompletion Kind = "completion"
)

// kindAliases maps separator-free, lower-cased client spellings to kinds.
var kindAliases = map[string]Kind{
	"mood":             KindMood,
	"moodentry":        KindMood,
	"journal":          KindJournal,
	"journalentry":     KindJournal,
	"ritual":           KindRitual,
	"completion":       KindCompletion,
	"ritualcompletion": KindCompletion,
}

// ParseKind resolves a client-supplied entity name.
func ParseKind(raw string) (Kind, bool) {
	k, ok := kindAliases[squash(raw)]
	return k, ok
}

// OperationKind is the mutation a sync operation requests.
type OperationKind string

const (
	OpCreate OperationKind = "create"
	OpUpdate OperationKind = "update"
	OpDelete OperationKind = "delete"
)

var operationKinds = []OperationKind{OpCreate, OpUpdate, OpDelete}

// ParseOperationKind resolves a client-supplied operation type for kind k.
// Entity-specific spellings ("create_mood", "moodCreate", "mood.delete") reduce
// to the base kind.
func ParseOperationKind(raw string, k Kind) (OperationKind, bool) {
	s := squash(raw)
	if op, ok := baseOperation(s); ok {
		return op, true
	}

	for alias, aliasKind := range kindAliases {
		if aliasKind != k {
			continue
		}
		if rest, ok := strings.CutPrefix(s, alias); ok {
			if op, ok := baseOperation(rest); ok {
				return op, true
			}
		}
		if rest, ok := strings.CutSuffix(s, alias); ok {
			if op, ok := baseOperation(rest); ok {
				return op, true
			}
		}
	}
	return "", false
}

func baseOperation(s string) (OperationKind, bool) {
	for _, op := range operationKinds {
		if s == string(op) {
			return op, true
		}
	}
	return "", false
}

// squash lower-cases s and drops separators so "Mood_Entry" matches "moodentry".
func squash(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', '.', ' ':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}
