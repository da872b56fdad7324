package repository

import (
	"context"

	"github.com/linskybing/issue-desk/internal/domain/archive"
	"github.com/linskybing/issue-desk/internal/domain/comment"
	"github.com/linskybing/issue-desk/internal/domain/internalize"
	"github.com/linskybing/issue-desk/internal/domain/issue"
	"github.com/linskybing/issue-desk/internal/domain/meeting"
	"gorm.io/gorm"
)

type Repos struct {
	Issue           IssueRepo
	Agenda          AgendaRepo
	Archive         ArchiveRepo
	Comment         CommentRepo
	Internalization InternalizationRepo

	db *gorm.DB
}

func NewRepositories(db *gorm.DB) *Repos {
	return &Repos{
		Issue:           NewIssueRepo(db),
		Agenda:          NewAgendaRepo(db),
		Archive:         NewArchiveRepo(db),
		Comment:         NewCommentRepo(db),
		Internalization: NewInternalizationRepo(db),
		db:              db,
	}
}

func (r *Repos) WithTx(tx *gorm.DB) *Repos {
	return &Repos{
		Issue:           r.Issue.WithTx(tx),
		Agenda:          r.Agenda.WithTx(tx),
		Archive:         r.Archive.WithTx(tx),
		Comment:         r.Comment.WithTx(tx),
		Internalization: r.Internalization.WithTx(tx),
		db:              tx,
	}
}

func (r *Repos) ExecTx(ctx context.Context, fn func(*Repos) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepos := r.WithTx(tx)
		return fn(txRepos)
	})
}

// Models lists every table the repositories manage, for AutoMigrate.
func Models() []any {
	return []any{
		&issue.Issue{},
		&meeting.Agenda{},
		&archive.ClosedTicket{},
		&comment.Comment{},
		&internalize.Record{},
	}
}
