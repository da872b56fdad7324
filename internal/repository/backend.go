package repository

import (
	"context"
	"fmt"

	"github.com/linskybing/issue-desk/internal/domain/archive"
	"github.com/linskybing/issue-desk/internal/domain/comment"
	"github.com/linskybing/issue-desk/internal/domain/internalize"
	"github.com/linskybing/issue-desk/internal/domain/issue"
	"github.com/linskybing/issue-desk/internal/domain/meeting"
)

// ChangeSet is everything one lifecycle operation changed. A backend applies
// it as a single transaction or not at all.
type ChangeSet struct {
	Issues           []*issue.Issue
	DeletedIssues    []string
	Agendas          []*meeting.Agenda
	Archive          []*archive.ClosedTicket
	Comments         []*comment.Comment
	Internalizations []*internalize.Record
}

func (cs ChangeSet) Empty() bool {
	return len(cs.Issues) == 0 &&
		len(cs.DeletedIssues) == 0 &&
		len(cs.Agendas) == 0 &&
		len(cs.Archive) == 0 &&
		len(cs.Comments) == 0 &&
		len(cs.Internalizations) == 0
}

// Snapshot is the persisted state used to hydrate a session at startup.
type Snapshot struct {
	Issues           []issue.Issue
	Agendas          []meeting.Agenda
	Archive          []archive.ClosedTicket
	Comments         []comment.Comment
	Internalizations []internalize.Record
}

// Backend is the persistence collaborator behind the in-memory session.
type Backend interface {
	Load(ctx context.Context) (*Snapshot, error)
	Apply(ctx context.Context, cs ChangeSet) error
}

// NopBackend accepts every change and persists nothing.
type NopBackend struct{}

func (NopBackend) Load(ctx context.Context) (*Snapshot, error) {
	return &Snapshot{}, nil
}

func (NopBackend) Apply(ctx context.Context, cs ChangeSet) error {
	return ctx.Err()
}

// GormBackend persists change sets through the repositories, one database
// transaction per change set.
type GormBackend struct {
	repos *Repos
}

func NewGormBackend(repos *Repos) *GormBackend {
	return &GormBackend{repos: repos}
}

func (b *GormBackend) Load(ctx context.Context) (*Snapshot, error) {
	var (
		snap Snapshot
		err  error
	)
	if snap.Issues, err = b.repos.Issue.FindAll(ctx); err != nil {
		return nil, fmt.Errorf("load issues: %w", err)
	}
	if snap.Agendas, err = b.repos.Agenda.FindAll(ctx); err != nil {
		return nil, fmt.Errorf("load agendas: %w", err)
	}
	if snap.Archive, err = b.repos.Archive.FindAll(ctx); err != nil {
		return nil, fmt.Errorf("load archive: %w", err)
	}
	if snap.Comments, err = b.repos.Comment.FindAll(ctx); err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}
	if snap.Internalizations, err = b.repos.Internalization.FindAll(ctx); err != nil {
		return nil, fmt.Errorf("load internalizations: %w", err)
	}
	return &snap, nil
}

func (b *GormBackend) Apply(ctx context.Context, cs ChangeSet) error {
	if cs.Empty() {
		return nil
	}
	return b.repos.ExecTx(ctx, func(tx *Repos) error {
		for _, id := range cs.DeletedIssues {
			if err := tx.Agenda.DeleteByIssueID(ctx, id); err != nil {
				return fmt.Errorf("delete agendas of %s: %w", id, err)
			}
			if err := tx.Comment.DeleteByIssueID(ctx, id); err != nil {
				return fmt.Errorf("delete comments of %s: %w", id, err)
			}
			if err := tx.Internalization.DeleteByIssueID(ctx, id); err != nil {
				return fmt.Errorf("delete internalizations of %s: %w", id, err)
			}
			if err := tx.Issue.Delete(ctx, id); err != nil {
				return fmt.Errorf("delete issue %s: %w", id, err)
			}
		}
		for _, iss := range cs.Issues {
			if err := tx.Issue.Save(ctx, iss); err != nil {
				return fmt.Errorf("save issue %s: %w", iss.ID, err)
			}
		}
		for _, a := range cs.Agendas {
			if err := tx.Agenda.Save(ctx, a); err != nil {
				return fmt.Errorf("save agenda %s: %w", a.ID, err)
			}
		}
		for _, e := range cs.Archive {
			if err := tx.Archive.Create(ctx, e); err != nil {
				return fmt.Errorf("archive %s: %w", e.IssueID, err)
			}
		}
		for _, c := range cs.Comments {
			if err := tx.Comment.Create(ctx, c); err != nil {
				return fmt.Errorf("save comment %s: %w", c.ID, err)
			}
		}
		for _, rec := range cs.Internalizations {
			if err := tx.Internalization.Create(ctx, rec); err != nil {
				return fmt.Errorf("save internalization %s: %w", rec.ID, err)
			}
		}
		return nil
	})
}
