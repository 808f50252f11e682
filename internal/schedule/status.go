package schedule

import "strings"

// StatusKind is the normalized game state. The feed vocabulary is open, so
// anything unrecognized maps to StatusOther and Status.Raw keeps the text.
type StatusKind string

const (
	StatusScheduled  StatusKind = "scheduled"
	StatusPreGame    StatusKind = "pregame"
	StatusWarmup     StatusKind = "warmup"
	StatusInProgress StatusKind = "in_progress"
	StatusDelayed    StatusKind = "delayed"
	StatusFinal      StatusKind = "final"
	StatusPostponed  StatusKind = "postponed"
	StatusSuspended  StatusKind = "suspended"
	StatusCancelled  StatusKind = "cancelled"
	StatusOther      StatusKind = "other"
)

// Status is a game state as published, plus its normalized kind.
type Status struct {
	Kind StatusKind `json:"kind"`
	Raw  string     `json:"raw"`
}

// ParseStatus normalizes a feed status string such as "Final",
// "In Progress", "Delayed Start: Rain" or "Postponed".
func ParseStatus(raw string) Status {
	raw = strings.TrimSpace(raw)
	s := strings.ToLower(raw)

	var kind StatusKind
	switch {
	case s == "":
		kind = StatusOther
	case s == "preview" || s == "scheduled":
		kind = StatusScheduled
	case s == "pre-game" || s == "pregame":
		kind = StatusPreGame
	case s == "warmup":
		kind = StatusWarmup
	case s == "in progress" || s == "manager challenge" || strings.HasPrefix(s, "review"):
		kind = StatusInProgress
	case strings.HasPrefix(s, "delayed"):
		kind = StatusDelayed
	case s == "final" || s == "game over" || s == "completed early" || strings.HasPrefix(s, "final:"):
		kind = StatusFinal
	case strings.HasPrefix(s, "postponed"):
		kind = StatusPostponed
	case strings.HasPrefix(s, "suspended"):
		kind = StatusSuspended
	case strings.HasPrefix(s, "cancelled") || strings.HasPrefix(s, "canceled"):
		kind = StatusCancelled
	default:
		kind = StatusOther
	}

	return Status{Kind: kind, Raw: raw}
}

// String returns the raw feed text, which is what a reader expects to see.
func (s Status) String() string {
	return s.Raw
}
