package application

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/linskybing/issue-desk/internal/domain/issue"
	"github.com/linskybing/issue-desk/internal/domain/user"
	"github.com/linskybing/issue-desk/internal/repository"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

var (
	adminActor   = user.Actor{ID: "u-admin", Name: "관리자", Rank: 5, Role: user.RoleAdmin}
	managerActor = user.Actor{ID: "u-kim", Name: "김팀장", Rank: 4, Role: user.RoleManager}
	memberActor  = user.Actor{ID: "u-lee", Name: "이대리", Rank: 2, Role: user.RoleMember}
	juniorActor  = user.Actor{ID: "u-park", Name: "박사원", Rank: 1, Role: user.RoleMember}
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{t: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func sequentialIDs() func() string {
	var (
		mu sync.Mutex
		n  int
	)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// --------------------- Setup ---------------------
func setupServices(t *testing.T, backend repository.Backend) (*Services, *fakeClock) {
	t.Helper()
	clock := newFakeClock(t0)
	svc := New(Options{
		Session: SessionOptions{
			Backend: backend,
			Clock:   clock,
			NewID:   sequentialIDs(),
		},
		Policy:              NewPolicy(3),
		EscalationThreshold: DefaultEscalationThreshold,
	})
	return svc, clock
}

func createLeakTicket(t *testing.T, svc *Services) *issue.Issue {
	t.Helper()
	iss, err := svc.Ticket.Create(context.Background(), juniorActor, issue.CreateIssueDTO{
		Title:       "누수 감지",
		Description: "지하 2층 기계실 배관에서 누수 발견",
		Category:    "설비관리",
		Priority:    issue.PriorityHigh,
	})
	require.NoError(t, err)
	return iss
}

func ptr[T any](v T) *T {
	return &v
}
