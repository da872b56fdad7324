package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/linskybing/issue-desk/internal/domain/archive"
	"github.com/linskybing/issue-desk/internal/domain/issue"
	"github.com/linskybing/issue-desk/internal/domain/meeting"
)

type AgendaService struct {
	session *Session
}

func NewAgendaService(session *Session) *AgendaService {
	return &AgendaService{session: session}
}

// Add puts the ticket on the review queue by moving it into the meeting
// state, which creates its agenda. A ticket already in the meeting state
// keeps its existing agenda; a missing one is created.
func (s *AgendaService) Add(ctx context.Context, issueID, notes string, d Decision) (*meeting.Agenda, error) {
	notes = strings.TrimSpace(notes)
	var out *meeting.Agenda
	err := s.session.commit(ctx, "agenda.add", func(tx *txn) error {
		iss, err := tx.st.issue(issueID)
		if err != nil {
			return err
		}
		if !d.Allowed {
			return fmt.Errorf("%w: %s cannot schedule %s", ErrForbidden, d.Actor.ID, issueID)
		}
		if iss.Status == issue.StatusMeetingScheduled {
			a, created := tx.ensureAgenda(iss, notes, false)
			out = a.Clone()
			if !created {
				return issue.ErrNoChange
			}
			return nil
		}
		prov := provenance{source: archive.SourceIssue, agendaNote: notes}
		if err := tx.transition(iss, issue.StatusMeetingScheduled, "", prov); err != nil {
			return err
		}
		out = tx.st.agendaForIssue(iss.ID).Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Resolve settles an agenda. The linked ticket is moved to RESOLVED or
// ON_HOLD through the regular transition, tagged as a meeting closure, and
// the agenda takes the outcome and notes.
func (s *AgendaService) Resolve(ctx context.Context, agendaID string, outcome meeting.Outcome, notes string, d Decision) (*meeting.Agenda, error) {
	if outcome != meeting.OutcomeResolved && outcome != meeting.OutcomeOnHold {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, meeting.ErrUnknownOutcome)
	}
	notes = strings.TrimSpace(notes)
	var out *meeting.Agenda
	err := s.session.commit(ctx, "agenda.resolve", func(tx *txn) error {
		a := tx.st.agenda(agendaID)
		if a == nil {
			return fmt.Errorf("%w: %s", ErrAgendaNotFound, agendaID)
		}
		if !d.Allowed {
			return fmt.Errorf("%w: %s cannot resolve agenda %s", ErrForbidden, d.Actor.ID, agendaID)
		}
		if a.Status.Settled() {
			return fmt.Errorf("%w: %s is %s", ErrAgendaSettled, agendaID, a.Status)
		}
		iss, err := tx.st.issue(a.IssueID)
		if err != nil {
			return err
		}

		to := issue.StatusResolved
		if outcome == meeting.OutcomeOnHold {
			to = issue.StatusOnHold
		}
		prov := provenance{source: archive.SourceMeeting, agendaID: a.ID, meetingDate: &a.MeetingDate}
		// A ticket already closed with this outcome only needs its agenda
		// brought in line.
		if err := tx.transition(iss, to, notes, prov); err != nil && !errors.Is(err, issue.ErrNoChange) {
			return err
		}

		// A ticket leaving the meeting state already settled its agenda.
		if !a.Status.Settled() {
			tx.emit(Event{Type: EventAgendaUpdated, IssueID: a.IssueID, AgendaID: a.ID, To: to})
		}
		a.Status = outcome.AgendaStatus()
		if notes != "" {
			a.Notes = notes
		}
		a.UpdatedAt = tx.now
		tx.markAgenda(a)
		out = a.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Annotate replaces the agenda notes. A pending agenda becomes discussed.
func (s *AgendaService) Annotate(ctx context.Context, agendaID, notes string) (*meeting.Agenda, error) {
	var out *meeting.Agenda
	err := s.session.commit(ctx, "agenda.annotate", func(tx *txn) error {
		a := tx.st.agenda(agendaID)
		if a == nil {
			return fmt.Errorf("%w: %s", ErrAgendaNotFound, agendaID)
		}
		if a.Status.Settled() {
			return fmt.Errorf("%w: %s is %s", ErrAgendaSettled, agendaID, a.Status)
		}
		a.Notes = strings.TrimSpace(notes)
		if a.Status == meeting.AgendaPending {
			a.Status = meeting.AgendaDiscussed
		}
		a.UpdatedAt = tx.now
		tx.markAgenda(a)
		tx.emit(Event{Type: EventAgendaUpdated, IssueID: a.IssueID, AgendaID: a.ID})
		out = a.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List returns agendas most recent first, optionally narrowed to one status.
func (s *AgendaService) List(ctx context.Context, status meeting.AgendaStatus) []meeting.Agenda {
	var out []meeting.Agenda
	s.session.read(func(st *state) {
		out = make([]meeting.Agenda, 0, len(st.agendas))
		for _, a := range st.agendas {
			if status != "" && a.Status != status {
				continue
			}
			out = append(out, *a)
		}
	})
	return out
}

func (s *AgendaService) Get(ctx context.Context, id string) (*meeting.Agenda, error) {
	var out *meeting.Agenda
	s.session.read(func(st *state) {
		out = st.agenda(id).Clone()
	})
	if out == nil {
		return nil, fmt.Errorf("%w: %s", ErrAgendaNotFound, id)
	}
	return out, nil
}
