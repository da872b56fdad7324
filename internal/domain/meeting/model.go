package meeting

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// AgendaStatus is the disposition of an agenda in the review queue.
type AgendaStatus string

const (
	AgendaPending   AgendaStatus = "pending"
	AgendaDiscussed AgendaStatus = "discussed"
	AgendaResolved  AgendaStatus = "resolved"
	AgendaOnHold    AgendaStatus = "on_hold"
)

// Settled reports whether the agenda has reached a final disposition.
func (s AgendaStatus) Settled() bool {
	return s == AgendaResolved || s == AgendaOnHold
}

// Outcome is the reviewer's decision on an agenda.
type Outcome string

const (
	OutcomeResolved Outcome = "resolved"
	OutcomeOnHold   Outcome = "on_hold"
)

var ErrUnknownOutcome = errors.New("unknown agenda outcome")

func ParseOutcome(raw string) (Outcome, error) {
	switch o := Outcome(strings.ToLower(strings.TrimSpace(raw))); o {
	case OutcomeResolved, OutcomeOnHold:
		return o, nil
	case "hold", "on-hold":
		return OutcomeOnHold, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOutcome, raw)
}

// AgendaStatus maps an outcome onto the agenda status it produces.
func (o Outcome) AgendaStatus() AgendaStatus {
	if o == OutcomeOnHold {
		return AgendaOnHold
	}
	return AgendaResolved
}

// Agenda is a ticket pulled into the weekly review queue.
type Agenda struct {
	ID          string       `json:"id" gorm:"primaryKey;size:36"`
	IssueID     string       `json:"issue_id" gorm:"size:36;uniqueIndex"`
	IssueTitle  string       `json:"issue_title" gorm:"size:255"`
	Status      AgendaStatus `json:"status" gorm:"size:20;index"`
	MeetingDate time.Time    `json:"meeting_date"`
	Notes       string       `json:"notes,omitempty" gorm:"type:text"`
	Escalated   bool         `json:"escalated"`
	UpdatedAt   time.Time    `json:"updated_at" gorm:"autoUpdateTime:false"`
}

func (Agenda) TableName() string {
	return "meeting_agendas"
}

func (a *Agenda) Clone() *Agenda {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}
