package activity

import (
	"strings"
	"time"
)

// Event is an auditable action performed through the survey admin.
type Event struct {
	Verb           string
	ActorID        string
	UserID         string
	TenantID       string
	ObjectType     string
	ObjectID       string
	Channel        string
	DefinitionCode string
	Recipients     []string
	Metadata       map[string]any
	OccurredAt     time.Time
}

// Valid reports whether the event carries the minimum identifying fields.
func (e Event) Valid() bool {
	return e.Verb != ""
}

// NormalizeEvent trims identifiers and deep-copies slices and maps so hooks
// cannot mutate the caller's event. A zero OccurredAt is set to now.
func NormalizeEvent(evt Event) Event {
	out := evt
	out.Verb = strings.TrimSpace(evt.Verb)
	out.ActorID = strings.TrimSpace(evt.ActorID)
	out.UserID = strings.TrimSpace(evt.UserID)
	out.TenantID = strings.TrimSpace(evt.TenantID)
	out.ObjectType = strings.TrimSpace(evt.ObjectType)
	out.ObjectID = strings.TrimSpace(evt.ObjectID)
	out.Channel = strings.TrimSpace(evt.Channel)
	out.DefinitionCode = strings.TrimSpace(evt.DefinitionCode)
	if len(evt.Recipients) > 0 {
		out.Recipients = append([]string(nil), evt.Recipients...)
	}
	if len(evt.Metadata) > 0 {
		out.Metadata = make(map[string]any, len(evt.Metadata))
		for key, value := range evt.Metadata {
			out.Metadata[key] = value
		}
	}
	if out.OccurredAt.IsZero() {
		out.OccurredAt = time.Now().UTC()
	}
	return out
}
