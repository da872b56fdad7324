package application

import (
	"time"

	"github.com/linskybing/issue-desk/internal/domain/archive"
	"github.com/linskybing/issue-desk/internal/domain/comment"
	"github.com/linskybing/issue-desk/internal/domain/internalize"
	"github.com/linskybing/issue-desk/internal/domain/issue"
	"github.com/linskybing/issue-desk/internal/domain/meeting"
	"github.com/linskybing/issue-desk/internal/repository"
)

// provenance says how a terminal transition was reached.
type provenance struct {
	source      archive.Source
	agendaID    string
	meetingDate *time.Time
	agendaNote  string
	escalated   bool
}

var direct = provenance{source: archive.SourceIssue}

type statusChange struct {
	from, to issue.Status
}

// txn accumulates one operation's mutations, change set and events.
type txn struct {
	s   *Session
	st  *state
	now time.Time
	op  string

	issues       map[string]*issue.Issue
	issueOrder   []string
	deleted      []string
	agendas      map[string]*meeting.Agenda
	agendaOrder  []string
	archived     []*archive.ClosedTicket
	comments     []*comment.Comment
	internalized []*internalize.Record

	events      []Event
	changes     []statusChange
	escalations int
}

// touch bumps UpdatedAt strictly past its previous value and marks iss dirty.
func (tx *txn) touch(iss *issue.Issue) {
	ts := tx.now
	if !ts.After(iss.UpdatedAt) {
		ts = iss.UpdatedAt.Add(time.Nanosecond)
	}
	iss.UpdatedAt = ts
	tx.markIssue(iss)
}

func (tx *txn) markIssue(iss *issue.Issue) {
	if tx.issues == nil {
		tx.issues = make(map[string]*issue.Issue)
	}
	if _, ok := tx.issues[iss.ID]; !ok {
		tx.issueOrder = append(tx.issueOrder, iss.ID)
	}
	tx.issues[iss.ID] = iss
}

func (tx *txn) markAgenda(a *meeting.Agenda) {
	if tx.agendas == nil {
		tx.agendas = make(map[string]*meeting.Agenda)
	}
	if _, ok := tx.agendas[a.ID]; !ok {
		tx.agendaOrder = append(tx.agendaOrder, a.ID)
	}
	tx.agendas[a.ID] = a
}

func (tx *txn) emit(ev Event) {
	ev.At = tx.now
	tx.events = append(tx.events, ev)
}

// transition validates and applies a status change with all of its side
// effects, in order: status, timestamps, agenda, archive.
func (tx *txn) transition(iss *issue.Issue, to issue.Status, reason string, prov provenance) error {
	if err := issue.ValidateTransition(iss.Status, to, reason); err != nil {
		return err
	}
	from := tx.applyStatus(iss, to)
	if to == issue.StatusMeetingScheduled {
		tx.ensureAgenda(iss, prov.agendaNote, prov.escalated)
	}
	if from == issue.StatusMeetingScheduled || to.IsTerminal() {
		tx.settleAgenda(iss.ID, to, reason)
	}
	if to.IsTerminal() {
		tx.archive(iss, to, reason, prov)
	}
	tx.emit(Event{Type: EventStatusChanged, IssueID: iss.ID, From: from, To: to, Message: reason})
	return nil
}

// settleAgenda closes the ticket's open agenda when the ticket leaves the
// meeting queue or reaches a terminal status, so the queue never lists a
// closed ticket as pending.
func (tx *txn) settleAgenda(issueID string, to issue.Status, notes string) {
	a := tx.st.agendaForIssue(issueID)
	if a == nil || a.Status.Settled() {
		return
	}
	a.Status = meeting.AgendaResolved
	if to == issue.StatusOnHold {
		a.Status = meeting.AgendaOnHold
	}
	if notes != "" {
		a.Notes = notes
	}
	a.UpdatedAt = tx.now
	tx.markAgenda(a)
	tx.emit(Event{Type: EventAgendaUpdated, IssueID: issueID, AgendaID: a.ID})
}

// applyStatus sets the status, bumps UpdatedAt and stamps the meeting and
// resolved dates the first time those states are entered.
func (tx *txn) applyStatus(iss *issue.Issue, to issue.Status) issue.Status {
	from := iss.Status
	iss.Status = to
	tx.touch(iss)
	if to == issue.StatusMeetingScheduled && iss.MeetingDate == nil {
		t := tx.now
		iss.MeetingDate = &t
	}
	if to == issue.StatusResolved && iss.ResolvedDate == nil {
		t := tx.now
		iss.ResolvedDate = &t
	}
	tx.changes = append(tx.changes, statusChange{from: from, to: to})
	return from
}

// ensureAgenda returns the ticket's agenda, creating a pending one at the
// front of the queue when none exists.
func (tx *txn) ensureAgenda(iss *issue.Issue, notes string, escalated bool) (*meeting.Agenda, bool) {
	if a := tx.st.agendaForIssue(iss.ID); a != nil {
		return a, false
	}
	a := &meeting.Agenda{
		ID:          tx.s.newID(),
		IssueID:     iss.ID,
		IssueTitle:  iss.Title,
		Status:      meeting.AgendaPending,
		MeetingDate: tx.now,
		Notes:       notes,
		Escalated:   escalated,
		UpdatedAt:   tx.now,
	}
	tx.st.agendas = append([]*meeting.Agenda{a}, tx.st.agendas...)
	tx.markAgenda(a)
	tx.emit(Event{Type: EventAgendaCreated, IssueID: iss.ID, AgendaID: a.ID})
	return a, true
}

// archive appends a snapshot of iss unless (iss.ID, final) is already in the
// ledger.
func (tx *txn) archive(iss *issue.Issue, final issue.Status, reason string, prov provenance) (*archive.ClosedTicket, bool) {
	if e := tx.st.archived(iss.ID, final); e != nil {
		return e, false
	}
	e := archive.Snapshot(iss, final)
	e.ID = tx.s.newID()
	e.Source = prov.source
	e.ClosedReason = reason
	e.ClosedDate = tx.now
	e.MeetingAgendaID = prov.agendaID
	if prov.meetingDate != nil {
		t := *prov.meetingDate
		e.MeetingDate = &t
	}
	tx.st.archive = append([]*archive.ClosedTicket{e}, tx.st.archive...)
	tx.archived = append(tx.archived, e)
	tx.emit(Event{Type: EventArchived, IssueID: iss.ID, AgendaID: prov.agendaID, To: final})
	return e, true
}

func (tx *txn) changeSet() repository.ChangeSet {
	var cs repository.ChangeSet
	for _, id := range tx.issueOrder {
		if _, ok := tx.st.issues[id]; !ok {
			continue
		}
		cs.Issues = append(cs.Issues, tx.issues[id].Clone())
	}
	cs.DeletedIssues = append(cs.DeletedIssues, tx.deleted...)
	for _, id := range tx.agendaOrder {
		cs.Agendas = append(cs.Agendas, tx.agendas[id].Clone())
	}
	for _, e := range tx.archived {
		cs.Archive = append(cs.Archive, e.Clone())
	}
	for _, c := range tx.comments {
		v := *c
		cs.Comments = append(cs.Comments, &v)
	}
	for _, rec := range tx.internalized {
		v := *rec
		cs.Internalizations = append(cs.Internalizations, &v)
	}
	return cs
}

// record updates metrics once the change set is durable.
func (tx *txn) record() {
	m := tx.s.metrics
	for _, c := range tx.changes {
		m.transition(c.from, c.to)
	}
	for _, e := range tx.archived {
		m.archivedEntry(e.Source)
	}
	m.escalated(tx.escalations)
}
