package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/linskybing/issue-desk/internal/domain/archive"
	"github.com/linskybing/issue-desk/internal/domain/comment"
	"github.com/linskybing/issue-desk/internal/domain/issue"
	"github.com/linskybing/issue-desk/internal/domain/meeting"
	"github.com/linskybing/issue-desk/internal/repository"
	"github.com/linskybing/issue-desk/internal/repository/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repoMocks struct {
	issue    *mock.MockIssueRepo
	agenda   *mock.MockAgendaRepo
	archive  *mock.MockArchiveRepo
	comment  *mock.MockCommentRepo
	internal *mock.MockInternalizationRepo
}

func setupBackend(t *testing.T) (*repository.GormBackend, repoMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	m := repoMocks{
		issue:    mock.NewMockIssueRepo(ctrl),
		agenda:   mock.NewMockAgendaRepo(ctrl),
		archive:  mock.NewMockArchiveRepo(ctrl),
		comment:  mock.NewMockCommentRepo(ctrl),
		internal: mock.NewMockInternalizationRepo(ctrl),
	}
	repos := &repository.Repos{
		Issue:           m.issue,
		Agenda:          m.agenda,
		Archive:         m.archive,
		Comment:         m.comment,
		Internalization: m.internal,
	}
	return repository.NewGormBackend(repos), m
}

func TestGormBackend_Load(t *testing.T) {
	backend, m := setupBackend(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	m.issue.EXPECT().FindAll(ctx).Return([]issue.Issue{{ID: "i1", Status: issue.StatusInProgress, CreatedAt: now}}, nil)
	m.agenda.EXPECT().FindAll(ctx).Return([]meeting.Agenda{{ID: "a1", IssueID: "i1"}}, nil)
	m.archive.EXPECT().FindAll(ctx).Return([]archive.ClosedTicket{{ID: "c1", IssueID: "i0"}}, nil)
	m.comment.EXPECT().FindAll(ctx).Return([]comment.Comment{{ID: "m1", IssueID: "i1"}}, nil)
	m.internal.EXPECT().FindAll(ctx).Return(nil, nil)

	snap, err := backend.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Issues, 1)
	assert.Equal(t, "a1", snap.Agendas[0].ID)
	assert.Equal(t, "c1", snap.Archive[0].ID)
	assert.Len(t, snap.Comments, 1)
	assert.Empty(t, snap.Internalizations)
}

func TestGormBackend_LoadStopsAtFirstError(t *testing.T) {
	backend, m := setupBackend(t)
	ctx := context.Background()
	boom := errors.New("connection refused")

	m.issue.EXPECT().FindAll(ctx).Return(nil, nil)
	m.agenda.EXPECT().FindAll(ctx).Return(nil, boom)

	_, err := backend.Load(ctx)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "load agendas")
}

func TestGormBackend_ApplyEmptyChangeSet(t *testing.T) {
	backend, _ := setupBackend(t)
	// No repo calls are expected and no transaction is opened.
	assert.NoError(t, backend.Apply(context.Background(), repository.ChangeSet{}))
}

func TestNopBackend(t *testing.T) {
	var b repository.NopBackend

	snap, err := b.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Issues)

	cs := repository.ChangeSet{Issues: []*issue.Issue{{ID: "i1"}}}
	assert.NoError(t, b.Apply(context.Background(), cs))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, b.Apply(ctx, cs), context.Canceled)
}

func TestChangeSetEmpty(t *testing.T) {
	assert.True(t, repository.ChangeSet{}.Empty())
	assert.False(t, repository.ChangeSet{DeletedIssues: []string{"i1"}}.Empty())
	assert.False(t, repository.ChangeSet{Archive: []*archive.ClosedTicket{{ID: "c1"}}}.Empty())
}

func TestModelsCoverEveryTable(t *testing.T) {
	assert.Len(t, repository.Models(), 5)
}
