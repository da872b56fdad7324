package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/linskybing/issue-desk/internal/domain/archive"
	"github.com/linskybing/issue-desk/internal/domain/comment"
	"github.com/linskybing/issue-desk/internal/domain/internalize"
	"github.com/linskybing/issue-desk/internal/domain/issue"
	"github.com/linskybing/issue-desk/internal/domain/meeting"
	"github.com/linskybing/issue-desk/internal/repository"
)

// Clock supplies the current time. Tests inject a fixed clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SessionOptions configures a Session. Zero values fall back to defaults.
type SessionOptions struct {
	Backend  repository.Backend
	Clock    Clock
	NewID    func() string
	Notifier Notifier
	Metrics  *Metrics
	Logger   *slog.Logger
}

// Session owns the ticket, agenda and archive collections. Every public
// operation runs as one critical section and one backend change set; a
// failed commit restores the pre-operation state.
type Session struct {
	mu sync.Mutex
	st *state

	backend  repository.Backend
	clock    Clock
	newID    func() string
	notifier Notifier
	metrics  *Metrics
	logger   *slog.Logger
}

func NewSession(opts SessionOptions) *Session {
	s := &Session{
		st:       newState(),
		backend:  opts.Backend,
		clock:    opts.Clock,
		newID:    opts.NewID,
		notifier: opts.Notifier,
		metrics:  opts.Metrics,
		logger:   opts.Logger,
	}
	if s.backend == nil {
		s.backend = repository.NopBackend{}
	}
	if s.clock == nil {
		s.clock = systemClock{}
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.notifier == nil {
		s.notifier = NopNotifier{}
	}
	if s.metrics == nil {
		s.metrics = NewMetrics(nil)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Hydrate replaces the in-memory state with what the backend has persisted.
func (s *Session) Hydrate(ctx context.Context) error {
	snap, err := s.backend.Load(ctx)
	if err != nil {
		return fmt.Errorf("hydrate session: %w", err)
	}
	st := newState()
	for i := range snap.Issues {
		iss := snap.Issues[i]
		st.issues[iss.ID] = &iss
	}
	for i := range snap.Agendas {
		a := snap.Agendas[i]
		st.agendas = append(st.agendas, &a)
	}
	for i := range snap.Archive {
		e := snap.Archive[i]
		st.archive = append(st.archive, &e)
	}
	for i := range snap.Comments {
		c := snap.Comments[i]
		st.comments[c.IssueID] = append(st.comments[c.IssueID], &c)
	}
	for i := range snap.Internalizations {
		rec := snap.Internalizations[i]
		st.internalized[rec.IssueID] = &rec
	}

	s.mu.Lock()
	s.st = st
	s.mu.Unlock()
	s.logger.Info("session hydrated",
		"issues", len(st.issues), "agendas", len(st.agendas), "archive", len(st.archive))
	return nil
}

// Seed adds fixture tickets that are not already present and persists them.
// It returns how many were added.
func (s *Session) Seed(ctx context.Context, issues []*issue.Issue) (int, error) {
	added := 0
	err := s.commit(ctx, "session.seed", func(tx *txn) error {
		for _, iss := range issues {
			if _, ok := tx.st.issues[iss.ID]; ok {
				continue
			}
			c := iss.Clone()
			tx.st.issues[c.ID] = c
			tx.markIssue(c)
			added++
		}
		if added == 0 {
			return issue.ErrNoChange
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}

func (s *Session) now() time.Time {
	return s.clock.Now()
}

// commit runs fn against the live state under the session lock and persists
// the resulting change set. fn returning issue.ErrNoChange is a successful
// no-op.
func (s *Session) commit(ctx context.Context, op string, fn func(tx *txn) error) error {
	s.mu.Lock()
	before := s.st.clone()
	tx := &txn{s: s, st: s.st, now: s.now(), op: op}

	if err := fn(tx); err != nil {
		s.st = before
		s.mu.Unlock()
		if errors.Is(err, issue.ErrNoChange) {
			return nil
		}
		s.metrics.rejected(op, err)
		s.logger.Warn("lifecycle operation rejected", "op", op, "error", err)
		return err
	}

	cs := tx.changeSet()
	if !cs.Empty() {
		if err := s.backend.Apply(ctx, cs); err != nil {
			s.st = before
			s.mu.Unlock()
			s.metrics.backendFailure(op)
			s.logger.Error("backend commit failed, state reverted", "op", op, "error", err)
			return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
		}
	}
	events := tx.events
	tx.record()
	s.mu.Unlock()

	for _, ev := range events {
		s.notifier.Notify(ev)
	}
	return nil
}

// read runs fn under the session lock without mutating.
func (s *Session) read(fn func(st *state)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.st)
}

type state struct {
	issues       map[string]*issue.Issue
	agendas      []*meeting.Agenda
	archive      []*archive.ClosedTicket
	comments     map[string][]*comment.Comment
	internalized map[string]*internalize.Record
}

func newState() *state {
	return &state{
		issues:       make(map[string]*issue.Issue),
		comments:     make(map[string][]*comment.Comment),
		internalized: make(map[string]*internalize.Record),
	}
}

func (st *state) clone() *state {
	c := newState()
	for id, iss := range st.issues {
		c.issues[id] = iss.Clone()
	}
	c.agendas = make([]*meeting.Agenda, len(st.agendas))
	for i, a := range st.agendas {
		c.agendas[i] = a.Clone()
	}
	c.archive = make([]*archive.ClosedTicket, len(st.archive))
	for i, e := range st.archive {
		c.archive[i] = e.Clone()
	}
	for id, list := range st.comments {
		cp := make([]*comment.Comment, len(list))
		for i, cm := range list {
			v := *cm
			cp[i] = &v
		}
		c.comments[id] = cp
	}
	for id, rec := range st.internalized {
		v := *rec
		c.internalized[id] = &v
	}
	return c
}

func (st *state) agendaForIssue(issueID string) *meeting.Agenda {
	for _, a := range st.agendas {
		if a.IssueID == issueID {
			return a
		}
	}
	return nil
}

func (st *state) agenda(id string) *meeting.Agenda {
	for _, a := range st.agendas {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (st *state) archived(issueID string, final issue.Status) *archive.ClosedTicket {
	for _, e := range st.archive {
		if e.IssueID == issueID && e.FinalStatus == final {
			return e
		}
	}
	return nil
}

func (st *state) issue(id string) (*issue.Issue, error) {
	iss, ok := st.issues[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrIssueNotFound, id)
	}
	return iss, nil
}
