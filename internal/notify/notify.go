// Package notify announces platform events to chat channels (Slack,
// Discord). Announcements are one-way and best-effort: callers log
// failures but never fail the operation being announced.
package notify

import (
	"context"
	"errors"
	"fmt"
)

// Event is a structured announcement.
type Event struct {
	Title  string
	Body   string
	Fields []Field
}

// Field is a key-value pair displayed with the event.
type Field struct {
	Name  string
	Value string
}

// Notifier delivers events to one chat platform.
type Notifier interface {
	Announce(ctx context.Context, ev Event) error
}

// Multi fans an event out to several notifiers, collecting every failure.
type Multi []Notifier

// Announce delivers the event to all notifiers. Failures are joined so a
// broken platform does not hide the others.
func (m Multi) Announce(ctx context.Context, ev Event) error {
	var errs []error
	for _, n := range m {
		if err := n.Announce(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RegistrationEvent renders a successful team registration.
func RegistrationEvent(teamName, techStack, mentorName, repoURL string) Event {
	return Event{
		Title: fmt.Sprintf("Team %q registered", teamName),
		Body:  fmt.Sprintf("Assigned to mentor %s.", mentorName),
		Fields: []Field{
			{Name: "Tech Stack", Value: techStack},
			{Name: "Mentor", Value: mentorName},
			{Name: "Repository", Value: repoURL},
		},
	}
}
