package issue

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the lifecycle state of a ticket.
type Status string

const (
	StatusIssueRaised      Status = "ISSUE_RAISED"
	StatusInProgress       Status = "IN_PROGRESS"
	StatusMeetingScheduled Status = "MEETING_SCHEDULED"
	StatusResolved         Status = "RESOLVED"
	StatusOnHold           Status = "ON_HOLD"
	StatusBlocked          Status = "BLOCKED"
	StatusCancelled        Status = "CANCELLED"
)

// Category groups statuses for list views and terminal checks.
type Category string

const (
	CategoryActive  Category = "ACTIVE"
	CategoryPending Category = "PENDING"
	CategoryClosed  Category = "CLOSED"
)

var (
	ErrUnknownStatus     = errors.New("unknown status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrCommentRequired   = errors.New("a comment is required for this transition")
	// ErrNoChange reports a transition into the status the ticket already has.
	ErrNoChange = errors.New("status unchanged")
)

// AllStatuses lists every status in lifecycle order.
var AllStatuses = []Status{
	StatusIssueRaised,
	StatusInProgress,
	StatusMeetingScheduled,
	StatusResolved,
	StatusOnHold,
	StatusBlocked,
	StatusCancelled,
}

var categories = map[Status]Category{
	StatusIssueRaised:      CategoryActive,
	StatusInProgress:       CategoryActive,
	StatusMeetingScheduled: CategoryPending,
	StatusResolved:         CategoryClosed,
	StatusOnHold:           CategoryClosed,
	StatusBlocked:          CategoryClosed,
	StatusCancelled:        CategoryClosed,
}

// transitions holds the only legal forward edges. Terminal statuses have none.
var transitions = map[Status][]Status{
	StatusIssueRaised:      {StatusInProgress, StatusMeetingScheduled, StatusCancelled},
	StatusInProgress:       {StatusMeetingScheduled, StatusResolved, StatusOnHold, StatusBlocked, StatusCancelled},
	StatusMeetingScheduled: {StatusResolved, StatusOnHold},
}

// legacyNames maps the simplified four-state vocabulary used by older clients.
var legacyNames = map[string]Status{
	"PENDING":     StatusIssueRaised,
	"IN_PROGRESS": StatusInProgress,
	"MEETING":     StatusMeetingScheduled,
	"RESOLVED":    StatusResolved,
}

var legacyOut = map[Status]string{
	StatusIssueRaised:      "PENDING",
	StatusInProgress:       "IN_PROGRESS",
	StatusMeetingScheduled: "MEETING",
	StatusResolved:         "RESOLVED",
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	_, ok := categories[s]
	return ok
}

// Category returns the category of s. An unknown status is a programming
// error and panics.
func (s Status) Category() Category {
	c, ok := categories[s]
	if !ok {
		panic(fmt.Sprintf("issue: category of unknown status %q", string(s)))
	}
	return c
}

// IsTerminal reports whether no further transition is defined for s.
func (s Status) IsTerminal() bool {
	return s.Category() == CategoryClosed
}

// Legacy renders s in the simplified vocabulary. Statuses without a
// simplified form collapse to RESOLVED when terminal.
func (s Status) Legacy() string {
	if name, ok := legacyOut[s]; ok {
		return name
	}
	if s.IsTerminal() {
		return "RESOLVED"
	}
	return string(s)
}

// NextStatuses returns the statuses reachable from s in one step.
func (s Status) NextStatuses() []Status {
	next := transitions[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether from -> to is an edge of the transition table.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// RequiresComment reports whether the edge from -> to needs a non-empty comment.
func RequiresComment(from, to Status) bool {
	return from == StatusMeetingScheduled && to == StatusResolved
}

// ValidateTransition checks a requested status change against the table.
func ValidateTransition(from, to Status, comment string) error {
	if !to.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, string(to))
	}
	if from == to {
		return ErrNoChange
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	if RequiresComment(from, to) && strings.TrimSpace(comment) == "" {
		return fmt.Errorf("%w: %s -> %s", ErrCommentRequired, from, to)
	}
	return nil
}

// ParseStatus accepts canonical names, their lower-case or dashed spellings,
// and the simplified legacy names.
func ParseStatus(raw string) (Status, error) {
	name := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), "-", "_"))
	if s := Status(name); s.Valid() {
		return s, nil
	}
	if s, ok := legacyNames[name]; ok {
		return s, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
}
