package application

import (
	"context"
	"testing"
	"time"

	"github.com/linskybing/issue-desk/internal/domain/archive"
	"github.com/linskybing/issue-desk/internal/domain/issue"
	"github.com/linskybing/issue-desk/internal/domain/meeting"
	"github.com/linskybing/issue-desk/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --------------------- Create ---------------------
func TestCreate_StartsRaisedWithEmptyCC(t *testing.T) {
	svc, _ := setupServices(t, nil)

	iss := createLeakTicket(t, svc)

	assert.Equal(t, issue.StatusIssueRaised, iss.Status)
	assert.Equal(t, "PENDING", iss.Status.Legacy())
	assert.False(t, iss.HasAssignee())
	assert.NotNil(t, iss.CC)
	assert.Empty(t, iss.CC)
	assert.Equal(t, juniorActor.ID, iss.Reporter.ID)
	assert.Equal(t, t0, iss.CreatedAt)
	assert.Equal(t, iss.CreatedAt, iss.UpdatedAt)
}

func TestCreate_RejectsInvalidInput(t *testing.T) {
	svc, _ := setupServices(t, nil)
	ctx := context.Background()

	_, err := svc.Ticket.Create(ctx, juniorActor, issue.CreateIssueDTO{Title: "  ", Priority: issue.PriorityLow})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Ticket.Create(ctx, juniorActor, issue.CreateIssueDTO{Title: "x", Priority: "SEVERE"})
	assert.ErrorIs(t, err, issue.ErrUnknownPriority)

	_, err = svc.Ticket.Create(ctx, juniorActor, issue.CreateIssueDTO{
		Title:    "x",
		Priority: issue.PriorityLow,
		CC:       []issue.Participant{{ID: "u-kim"}, {ID: "u-kim"}},
	})
	assert.ErrorIs(t, err, ErrDuplicateParticipant)

	assert.Empty(t, svc.Ticket.List(ctx, adminActor, issue.Filter{}))
}

// --------------------- Lifecycle ---------------------
func TestAssignAndStart_MovesToInProgress(t *testing.T) {
	svc, clock := setupServices(t, nil)
	ctx := context.Background()
	iss := createLeakTicket(t, svc)
	clock.Advance(time.Minute)

	lee := issue.Participant{ID: memberActor.ID, Name: memberActor.Name}
	got, err := svc.Ticket.AssignAndStart(ctx, iss.ID, lee, Allow(managerActor))
	require.NoError(t, err)

	assert.Equal(t, issue.StatusInProgress, got.Status)
	assert.Equal(t, memberActor.ID, got.Assignee.ID)
	assert.Equal(t, clock.Now(), got.UpdatedAt)

	clock.Advance(time.Minute)
	park := issue.Participant{ID: juniorActor.ID, Name: juniorActor.Name}
	got, err = svc.Ticket.AssignAndStart(ctx, iss.ID, park, Allow(managerActor))
	require.NoError(t, err)
	assert.Equal(t, issue.StatusInProgress, got.Status)
	assert.Equal(t, juniorActor.ID, got.Assignee.ID)
	assert.Equal(t, clock.Now(), got.UpdatedAt)
}

func TestResolveFromInProgress_ArchivesWithIssueSource(t *testing.T) {
	svc, clock := setupServices(t, nil)
	ctx := context.Background()
	iss := createLeakTicket(t, svc)
	_, err := svc.Ticket.AssignAndStart(ctx, iss.ID, issue.Participant{ID: memberActor.ID}, Allow(managerActor))
	require.NoError(t, err)
	clock.Advance(time.Hour)

	got, err := svc.Ticket.TransitionStatus(ctx, iss.ID, issue.StatusResolved, "fixed sensor", Allow(memberActor))
	require.NoError(t, err)

	assert.Equal(t, issue.StatusResolved, got.Status)
	require.NotNil(t, got.ResolvedDate)
	assert.Equal(t, clock.Now(), *got.ResolvedDate)

	entries := svc.Archive.List(ctx, archive.Filter{IssueID: iss.ID})
	require.Len(t, entries, 1)
	assert.Equal(t, issue.StatusResolved, entries[0].FinalStatus)
	assert.Equal(t, archive.SourceIssue, entries[0].Source)
	assert.Equal(t, "fixed sensor", entries[0].ClosedReason)
	assert.Equal(t, "누수 감지", entries[0].Title)
}

func TestResolveFromMeeting_RequiresComment(t *testing.T) {
	svc, _ := setupServices(t, nil)
	ctx := context.Background()
	iss := createLeakTicket(t, svc)
	_, err := svc.Ticket.TransitionStatus(ctx, iss.ID, issue.StatusMeetingScheduled, "", Allow(managerActor))
	require.NoError(t, err)

	_, err = svc.Ticket.TransitionStatus(ctx, iss.ID, issue.StatusResolved, "", Allow(managerActor))
	assert.ErrorIs(t, err, issue.ErrCommentRequired)

	got, err := svc.Ticket.Get(ctx, iss.ID)
	require.NoError(t, err)
	assert.Equal(t, issue.StatusMeetingScheduled, got.Status)
	assert.Empty(t, svc.Archive.List(ctx, archive.Filter{}))
}

func TestTransition_RejectsIllegalEdge(t *testing.T) {
	svc, _ := setupServices(t, nil)
	ctx := context.Background()
	iss := createLeakTicket(t, svc)

	_, err := svc.Ticket.TransitionStatus(ctx, iss.ID, issue.StatusResolved, "skip", Allow(adminActor))
	assert.ErrorIs(t, err, issue.ErrInvalidTransition)

	got, _ := svc.Ticket.Get(ctx, iss.ID)
	assert.Equal(t, issue.StatusIssueRaised, got.Status)
	assert.Equal(t, iss.UpdatedAt, got.UpdatedAt)
}

func TestTransition_Forbidden(t *testing.T) {
	svc, _ := setupServices(t, nil)
	ctx := context.Background()
	iss := createLeakTicket(t, svc)

	_, err := svc.Ticket.TransitionStatus(ctx, iss.ID, issue.StatusCancelled, "", Deny(memberActor))
	assert.ErrorIs(t, err, ErrForbidden)

	got, _ := svc.Ticket.Get(ctx, iss.ID)
	assert.Equal(t, issue.StatusIssueRaised, got.Status)
}

func TestTransition_NotFound(t *testing.T) {
	svc, _ := setupServices(t, nil)

	_, err := svc.Ticket.TransitionStatus(context.Background(), "missing", issue.StatusInProgress, "", Allow(adminActor))
	assert.ErrorIs(t, err, ErrIssueNotFound)
}

func TestTransition_SameStatusIsNoop(t *testing.T) {
	svc, clock := setupServices(t, nil)
	ctx := context.Background()
	iss := createLeakTicket(t, svc)
	clock.Advance(time.Minute)

	got, err := svc.Ticket.TransitionStatus(ctx, iss.ID, issue.StatusIssueRaised, "", Allow(adminActor))
	require.NoError(t, err)
	assert.Equal(t, iss.UpdatedAt, got.UpdatedAt)
}

func TestUpdatedAt_StrictlyIncreasesUnderFrozenClock(t *testing.T) {
	svc, _ := setupServices(t, nil)
	ctx := context.Background()
	iss := createLeakTicket(t, svc)

	prev := iss.UpdatedAt
	steps := []func() (*issue.Issue, error){
		func() (*issue.Issue, error) {
			return svc.Ticket.Update(ctx, iss.ID, issue.UpdateIssueDTO{Description: ptr("배관 교체 필요")})
		},
		func() (*issue.Issue, error) {
			return svc.Ticket.SetAssignee(ctx, iss.ID, memberActor.ID, memberActor.Name)
		},
		func() (*issue.Issue, error) {
			return svc.Ticket.TransitionStatus(ctx, iss.ID, issue.StatusInProgress, "", Allow(memberActor))
		},
		func() (*issue.Issue, error) {
			return svc.Ticket.TransitionStatus(ctx, iss.ID, issue.StatusBlocked, "부품 대기", Allow(managerActor))
		},
	}
	for i, step := range steps {
		got, err := step()
		require.NoError(t, err, "step %d", i)
		assert.True(t, got.UpdatedAt.After(prev), "step %d", i)
		assert.False(t, got.UpdatedAt.Before(got.CreatedAt))
		prev = got.UpdatedAt
	}
}

func TestUpdate_PartialMerge(t *testing.T) {
	svc, _ := setupServices(t, nil)
	ctx := context.Background()
	iss := createLeakTicket(t, svc)

	got, err := svc.Ticket.Update(ctx, iss.ID, issue.UpdateIssueDTO{
		Priority: ptr(issue.PriorityUrgent),
		CC:       &[]issue.Participant{{ID: managerActor.ID, Name: managerActor.Name}},
	})
	require.NoError(t, err)
	assert.Equal(t, issue.PriorityUrgent, got.Priority)
	assert.Equal(t, "누수 감지", got.Title)
	assert.Len(t, got.CC, 1)

	_, err = svc.Ticket.Update(ctx, iss.ID, issue.UpdateIssueDTO{Title: ptr(" ")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Ticket.Update(ctx, iss.ID, issue.UpdateIssueDTO{
		CC: &[]issue.Participant{{ID: "a"}, {ID: "a"}},
	})
	assert.ErrorIs(t, err, ErrDuplicateParticipant)
}

// --------------------- Delete ---------------------
func TestDelete_CascadesButKeepsArchive(t *testing.T) {
	svc, _ := setupServices(t, nil)
	ctx := context.Background()
	iss := createLeakTicket(t, svc)

	_, err := svc.Ticket.AddComment(ctx, iss.ID, memberActor, "확인 중입니다")
	require.NoError(t, err)
	_, err = svc.Ticket.TransitionStatus(ctx, iss.ID, issue.StatusMeetingScheduled, "", Allow(managerActor))
	require.NoError(t, err)
	_, err = svc.Agenda.Resolve(ctx, agendaFor(t, svc, iss.ID).ID, meeting.OutcomeOnHold, "예산 확보 후 재논의", Allow(managerActor))
	require.NoError(t, err)
	_, err = svc.Ticket.Internalize(ctx, iss.ID, managerActor, "점검 주기 단축")
	require.NoError(t, err)

	require.NoError(t, svc.Ticket.Delete(ctx, iss.ID))

	_, err = svc.Ticket.Get(ctx, iss.ID)
	assert.ErrorIs(t, err, ErrIssueNotFound)
	assert.Empty(t, svc.Agenda.List(ctx, ""))
	assert.False(t, svc.Ticket.IsInternalized(ctx, iss.ID))
	_, err = svc.Ticket.ListComments(ctx, iss.ID)
	assert.ErrorIs(t, err, ErrIssueNotFound)
	assert.Len(t, svc.Archive.List(ctx, archive.Filter{IssueID: iss.ID}), 1)

	assert.ErrorIs(t, svc.Ticket.Delete(ctx, iss.ID), ErrIssueNotFound)
}

// --------------------- Comments / Related / Internalize ---------------------
func TestComments_OldestFirst(t *testing.T) {
	svc, clock := setupServices(t, nil)
	ctx := context.Background()
	iss := createLeakTicket(t, svc)

	_, err := svc.Ticket.AddComment(ctx, iss.ID, memberActor, "first")
	require.NoError(t, err)
	clock.Advance(time.Minute)
	_, err = svc.Ticket.AddComment(ctx, iss.ID, managerActor, "second")
	require.NoError(t, err)
	_, err = svc.Ticket.AddComment(ctx, iss.ID, managerActor, "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	list, err := svc.Ticket.ListComments(ctx, iss.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Content)
	assert.Equal(t, managerActor.Name, list[1].AuthorName)
}

func TestAddRelated(t *testing.T) {
	svc, _ := setupServices(t, nil)
	ctx := context.Background()
	a := createLeakTicket(t, svc)
	b := createLeakTicket(t, svc)

	got, err := svc.Ticket.AddRelated(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, []string(got.RelatedIssues))

	got, err = svc.Ticket.AddRelated(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Len(t, got.RelatedIssues, 1)

	_, err = svc.Ticket.AddRelated(ctx, a.ID, a.ID)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Ticket.AddRelated(ctx, a.ID, "missing")
	assert.ErrorIs(t, err, ErrIssueNotFound)
}

func TestInternalize_IsIdempotent(t *testing.T) {
	svc, _ := setupServices(t, nil)
	ctx := context.Background()
	iss := createLeakTicket(t, svc)

	first, err := svc.Ticket.Internalize(ctx, iss.ID, managerActor, "점검 주기 단축")
	require.NoError(t, err)
	second, err := svc.Ticket.Internalize(ctx, iss.ID, adminActor, "다른 요약")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "점검 주기 단축", second.Summary)
	assert.True(t, svc.Ticket.IsInternalized(ctx, iss.ID))
}

// --------------------- Visibility ---------------------
func TestListAndGet_ApplyReadLevel(t *testing.T) {
	svc, clock := setupServices(t, nil)
	ctx := context.Background()
	open := createLeakTicket(t, svc)
	clock.Advance(time.Minute)
	restricted, err := svc.Ticket.Create(ctx, managerActor, issue.CreateIssueDTO{
		Title:     "보안 점검",
		Category:  "IT",
		Priority:  issue.PriorityUrgent,
		ReadLevel: 3,
		CC:        []issue.Participant{{ID: memberActor.ID, Name: memberActor.Name}},
	})
	require.NoError(t, err)

	all := svc.Ticket.List(ctx, adminActor, issue.Filter{})
	require.Len(t, all, 2)
	assert.Equal(t, restricted.ID, all[0].ID, "newest first")

	assert.Len(t, svc.Ticket.List(ctx, juniorActor, issue.Filter{}), 1)
	assert.Len(t, svc.Ticket.List(ctx, memberActor, issue.Filter{}), 2, "cc participant sees it")

	_, err = svc.Ticket.GetVisible(ctx, juniorActor, restricted.ID)
	assert.ErrorIs(t, err, ErrIssueNotFound)
	_, err = svc.Ticket.GetVisible(ctx, juniorActor, open.ID)
	assert.NoError(t, err)

	urgent := issue.PriorityUrgent
	filtered := svc.Ticket.List(ctx, adminActor, issue.Filter{Priority: &urgent})
	require.Len(t, filtered, 1)
	assert.Equal(t, restricted.ID, filtered[0].ID)
}

func TestPolicy(t *testing.T) {
	p := NewPolicy(3)
	iss := &issue.Issue{
		Reporter: issue.Participant{ID: juniorActor.ID},
		Assignee: issue.Participant{ID: memberActor.ID},
		Status:   issue.StatusInProgress,
	}
	outsider := user.Actor{ID: "u-out", Rank: 1, Role: user.RoleMember}

	assert.True(t, p.CanTransition(adminActor, iss, issue.StatusCancelled).Allowed)
	assert.True(t, p.CanTransition(memberActor, iss, issue.StatusMeetingScheduled).Allowed)
	assert.True(t, p.CanTransition(managerActor, iss, issue.StatusMeetingScheduled).Allowed)
	assert.False(t, p.CanTransition(outsider, iss, issue.StatusMeetingScheduled).Allowed)
	assert.True(t, p.CanTransition(juniorActor, iss, issue.StatusResolved).Allowed)
	assert.False(t, p.CanTransition(managerActor, iss, issue.StatusResolved).Allowed)
	assert.True(t, p.CanTransition(managerActor, iss, issue.StatusBlocked).Allowed)
	assert.False(t, p.CanTransition(juniorActor, iss, issue.StatusBlocked).Allowed)

	assert.True(t, p.CanResolveAgenda(managerActor, nil).Allowed)
	assert.False(t, p.CanResolveAgenda(memberActor, nil).Allowed)
	assert.True(t, p.CanDelete(juniorActor, iss).Allowed)
	assert.False(t, p.CanDelete(memberActor, iss).Allowed)
	assert.True(t, p.CanEdit(memberActor, iss).Allowed)
	assert.False(t, p.CanEdit(outsider, iss).Allowed)
	assert.True(t, p.CanAssign(juniorActor, iss).Allowed)
	assert.False(t, p.CanAssign(memberActor, iss).Allowed)
	assert.Equal(t, outsider, p.CanEdit(outsider, iss).Actor)

	iss.ReadLevel = 3
	iss.CC = []issue.Participant{{ID: "u-cc"}}
	snap := archive.Snapshot(iss, issue.StatusResolved)
	assert.Equal(t, 3, snap.ReadLevel)
	assert.False(t, p.CanViewArchived(outsider, snap))
	assert.True(t, p.CanViewArchived(user.Actor{ID: "u-cc", Rank: 1}, snap))
	assert.True(t, p.CanViewArchived(juniorActor, snap))
	assert.True(t, p.CanViewArchived(managerActor, snap))
	assert.True(t, p.CanViewArchived(user.Actor{ID: "u-root", Role: user.RoleAdmin}, snap))
}
