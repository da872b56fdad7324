package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/linskybing/issue-desk/internal/api/middleware"
	"github.com/linskybing/issue-desk/internal/application"
	"github.com/linskybing/issue-desk/internal/config"
	"github.com/linskybing/issue-desk/internal/domain/archive"
	"github.com/linskybing/issue-desk/internal/domain/issue"
	"github.com/linskybing/issue-desk/internal/domain/meeting"
	"github.com/linskybing/issue-desk/internal/domain/user"
	"github.com/linskybing/issue-desk/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var (
	admin   = user.User{ID: "u-admin", Username: "admin", Name: "관리자", Rank: 5, Role: user.RoleAdmin}
	manager = user.User{ID: "u-kim", Username: "kim", Name: "김팀장", Rank: 4, Role: user.RoleManager}
	member  = user.User{ID: "u-lee", Username: "lee", Name: "이대리", Rank: 2, Role: user.RoleMember}
	junior  = user.User{ID: "u-park", Username: "park", Name: "박사원", Rank: 1, Role: user.RoleMember}
)

type listBody[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// --------------------- Setup ---------------------
func setup(t *testing.T) (*gin.Engine, *application.Services) {
	t.Helper()
	config.JwtSecret = "handler-test-secret"
	middleware.Init()

	hash, err := bcrypt.GenerateFromPassword([]byte("desk1234"), bcrypt.MinCost)
	require.NoError(t, err)
	users := []user.User{admin, manager, member, junior}
	for i := range users {
		users[i].PasswordHash = string(hash)
	}

	svc := application.New(application.Options{
		Users:  users,
		Policy: application.NewPolicy(3),
	})
	return testutils.SetupRouter(svc), svc
}

func tokenFor(t *testing.T, u user.User) string {
	t.Helper()
	tok, err := middleware.GenerateToken(u.Actor(), time.Hour)
	require.NoError(t, err)
	return tok
}

func do(t *testing.T, r http.Handler, method, path string, as *user.User, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if as != nil {
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, *as))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func createIssue(t *testing.T, r http.Handler, as *user.User) issue.Issue {
	t.Helper()
	w := do(t, r, http.MethodPost, "/issues", as, issue.CreateIssueDTO{
		Title:       "누수 감지",
		Description: "기계실 배관 누수",
		Category:    "설비관리",
		Priority:    "high",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[issue.Issue](t, w)
}

// --------------------- Auth ---------------------
func TestRoutes_RequireToken(t *testing.T) {
	r, _ := setup(t)

	w := do(t, r, http.MethodGet, "/issues", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/issues", nil)
	req.Header.Set("Authorization", "Token abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, r, http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogin_SetsCookieAndMe(t *testing.T) {
	r, _ := setup(t)

	w := do(t, r, http.MethodPost, "/login", nil, user.LoginDTO{Username: "lee", Password: "desk1234"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decode[user.LoginResponse](t, w)
	assert.Equal(t, member.ID, res.User.ID)

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "token" {
			cookie = c
		}
	}
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "lee", decode[user.User](t, w).Username)

	w = do(t, r, http.MethodPost, "/login", nil, user.LoginDTO{Username: "lee", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListUsers_RoleGuard(t *testing.T) {
	r, _ := setup(t)

	assert.Equal(t, http.StatusForbidden, do(t, r, http.MethodGet, "/users", &member, nil).Code)

	w := do(t, r, http.MethodGet, "/users", &manager, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 4, decode[listBody[user.User]](t, w).Total)
	assert.NotContains(t, w.Body.String(), "$2a$", "hashes never leave the server")
}

// --------------------- Issues ---------------------
func TestIssueLifecycle_OverHTTP(t *testing.T) {
	r, svc := setup(t)
	created := createIssue(t, r, &junior)
	assert.Equal(t, issue.StatusIssueRaised, created.Status)
	assert.Equal(t, junior.ID, created.Reporter.ID)

	w := do(t, r, http.MethodPost, "/issues/"+created.ID+"/start", &manager,
		issue.AssignDTO{AssigneeID: member.ID, AssigneeName: member.Name})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	started := decode[issue.Issue](t, w)
	assert.Equal(t, issue.StatusInProgress, started.Status)
	assert.Equal(t, member.ID, started.Assignee.ID)

	w = do(t, r, http.MethodPost, "/issues/"+created.ID+"/transitions", &member,
		issue.TransitionDTO{Status: "resolved", Comment: "fixed sensor"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotNil(t, decode[issue.Issue](t, w).ResolvedDate)

	w = do(t, r, http.MethodGet, "/archive?issue_id="+created.ID, &member, nil)
	require.Equal(t, http.StatusOK, w.Code)
	entries := decode[listBody[archive.ClosedTicket]](t, w)
	require.Equal(t, 1, entries.Total)
	assert.Equal(t, archive.SourceIssue, entries.Items[0].Source)

	w = do(t, r, http.MethodGet, "/archive/"+entries.Items[0].ID, &member, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, svc.Archive.List(context.Background(), archive.Filter{}), 1)
}

func TestTransition_ErrorMapping(t *testing.T) {
	r, _ := setup(t)
	created := createIssue(t, r, &junior)
	path := "/issues/" + created.ID + "/transitions"

	w := do(t, r, http.MethodPost, path, &admin, issue.TransitionDTO{Status: "RESOLVED", Comment: "x"})
	assert.Equal(t, http.StatusConflict, w.Code, "raised cannot resolve directly")

	w = do(t, r, http.MethodPost, path, &admin, issue.TransitionDTO{Status: "DONE"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, r, http.MethodPost, path, &junior, issue.TransitionDTO{Status: "MEETING"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, r, http.MethodPost, path, &manager, issue.TransitionDTO{Status: "MEETING"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, r, http.MethodPost, path, &admin, issue.TransitionDTO{Status: "RESOLVED"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "comment required")

	w = do(t, r, http.MethodPost, "/issues/missing/transitions", &admin, issue.TransitionDTO{Status: "RESOLVED"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodPost, path, &admin, map[string]string{"comment": "no status"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreate_Validation(t *testing.T) {
	r, _ := setup(t)

	w := do(t, r, http.MethodPost, "/issues", &member, issue.CreateIssueDTO{
		Title: "x", Description: "y", Category: "IT", Priority: "SEVERE",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/issues", &member, issue.CreateIssueDTO{
		Title: "x", Description: "y", Category: "IT", Priority: "LOW",
		CC: []issue.Participant{{ID: "u-kim"}, {ID: "u-kim"}},
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestVisibility_HiddenTicketIsNotFound(t *testing.T) {
	r, _ := setup(t)
	w := do(t, r, http.MethodPost, "/issues", &manager, issue.CreateIssueDTO{
		Title: "보안 점검", Description: "접근 통제", Category: "IT", Priority: "URGENT", ReadLevel: 3,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	hidden := decode[issue.Issue](t, w)

	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/issues/"+hidden.ID, &junior, nil).Code)
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/issues/"+hidden.ID, &admin, nil).Code)

	w = do(t, r, http.MethodGet, "/issues", &junior, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, decode[listBody[issue.Issue]](t, w).Total)

	w = do(t, r, http.MethodGet, "/issues?status=bogus", &admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/agendas", &manager, meeting.AddAgendaDTO{IssueID: hidden.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	agenda := decode[meeting.Agenda](t, w)

	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/agendas/"+agenda.ID, &junior, nil).Code)
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/agendas/"+agenda.ID, &manager, nil).Code)
	w = do(t, r, http.MethodGet, "/agendas", &junior, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, decode[listBody[meeting.Agenda]](t, w).Total)
	assert.NotContains(t, w.Body.String(), "보안 점검")

	w = do(t, r, http.MethodPost, "/agendas/"+agenda.ID+"/resolve", &manager, meeting.ResolveAgendaDTO{Outcome: "resolved", Notes: "조치 완료"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, r, http.MethodGet, "/archive", &junior, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, decode[listBody[archive.ClosedTicket]](t, w).Total)
	assert.NotContains(t, w.Body.String(), "접근 통제")

	w = do(t, r, http.MethodGet, "/archive?issue_id="+hidden.ID, &admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	entries := decode[listBody[archive.ClosedTicket]](t, w)
	require.Equal(t, 1, entries.Total)
	assert.Equal(t, 3, entries.Items[0].ReadLevel)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/archive/"+entries.Items[0].ID, &junior, nil).Code)
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/archive/"+entries.Items[0].ID, &manager, nil).Code)
}

func TestDeleteAndEdit_Policy(t *testing.T) {
	r, _ := setup(t)
	created := createIssue(t, r, &junior)

	w := do(t, r, http.MethodPatch, "/issues/"+created.ID, &member, map[string]string{"title": "hijack"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, r, http.MethodPatch, "/issues/"+created.ID, &junior, map[string]string{"title": "배관 누수"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "배관 누수", decode[issue.Issue](t, w).Title)

	assert.Equal(t, http.StatusForbidden, do(t, r, http.MethodDelete, "/issues/"+created.ID, &manager, nil).Code)
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodDelete, "/issues/"+created.ID, &junior, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/issues/"+created.ID, &junior, nil).Code)
}

func TestCommentsRelatedInternalize(t *testing.T) {
	r, _ := setup(t)
	a := createIssue(t, r, &junior)
	b := createIssue(t, r, &junior)

	w := do(t, r, http.MethodPost, "/issues/"+a.ID+"/comments", &member, map[string]string{"content": "현장 확인"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = do(t, r, http.MethodGet, "/issues/"+a.ID+"/comments", &member, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[listBody[map[string]any]](t, w).Total)

	w = do(t, r, http.MethodPost, "/issues/"+a.ID+"/related", &junior, issue.RelateDTO{RelatedID: b.ID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{b.ID}, []string(decode[issue.Issue](t, w).RelatedIssues))
	w = do(t, r, http.MethodPost, "/issues/"+a.ID+"/related", &junior, issue.RelateDTO{RelatedID: a.ID})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, r, http.MethodPost, "/issues/"+a.ID+"/internalize", &member, map[string]string{"summary": "x"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = do(t, r, http.MethodPost, "/issues/"+a.ID+"/internalize", &manager, map[string]string{"summary": "점검 주기 단축"})
	assert.Equal(t, http.StatusOK, w.Code)
}

// --------------------- Agendas ---------------------
func TestAgendaResolve_OverHTTP(t *testing.T) {
	r, _ := setup(t)
	created := createIssue(t, r, &junior)
	w := do(t, r, http.MethodPost, "/issues/"+created.ID+"/transitions", &manager, issue.TransitionDTO{Status: "MEETING_SCHEDULED"})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/agendas?status=pending", &member, nil)
	require.Equal(t, http.StatusOK, w.Code)
	agendas := decode[listBody[meeting.Agenda]](t, w)
	require.Equal(t, 1, agendas.Total)
	agendaID := agendas.Items[0].ID

	w = do(t, r, http.MethodPost, "/agendas/"+agendaID+"/resolve", &member, meeting.ResolveAgendaDTO{Outcome: "resolved", Notes: "결정사항"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, r, http.MethodPost, "/agendas/"+agendaID+"/resolve", &manager, meeting.ResolveAgendaDTO{Outcome: "later"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, r, http.MethodPost, "/agendas/"+agendaID+"/resolve", &manager, meeting.ResolveAgendaDTO{Outcome: "resolved", Notes: "결정사항"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, meeting.AgendaResolved, decode[meeting.Agenda](t, w).Status)

	w = do(t, r, http.MethodPost, "/agendas/"+agendaID+"/resolve", &manager, meeting.ResolveAgendaDTO{Outcome: "on_hold", Notes: "again"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodGet, "/archive?source=meeting", &member, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[listBody[archive.ClosedTicket]](t, w).Total)

	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/agendas/missing", &member, nil).Code)
}

func TestAgendaAddAndAnnotate(t *testing.T) {
	r, _ := setup(t)
	created := createIssue(t, r, &junior)

	w := do(t, r, http.MethodPost, "/agendas", &member, meeting.AddAgendaDTO{IssueID: created.ID})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, r, http.MethodPost, "/agendas", &manager, meeting.AddAgendaDTO{IssueID: created.ID, Notes: "다음 회의"})
	require.Equal(t, http.StatusOK, w.Code)
	a := decode[meeting.Agenda](t, w)
	w = do(t, r, http.MethodGet, "/issues/"+created.ID, &junior, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, issue.StatusMeetingScheduled, decode[issue.Issue](t, w).Status)

	w = do(t, r, http.MethodPost, "/agendas", &manager, meeting.AddAgendaDTO{IssueID: created.ID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, a.ID, decode[meeting.Agenda](t, w).ID)

	w = do(t, r, http.MethodPatch, "/agendas/"+a.ID+"/notes", &manager, meeting.AnnotateAgendaDTO{Notes: "예산 검토"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, meeting.AgendaDiscussed, decode[meeting.Agenda](t, w).Status)
}

// --------------------- Escalation ---------------------
func TestSweep_AdminOnly(t *testing.T) {
	r, _ := setup(t)
	createIssue(t, r, &junior)

	assert.Equal(t, http.StatusForbidden, do(t, r, http.MethodPost, "/escalations/sweep", &manager, nil).Code)

	w := do(t, r, http.MethodPost, "/escalations/sweep", &admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[application.SweepResult](t, w)
	assert.Empty(t, res.Escalated, "fresh ticket is below the threshold")
	assert.Equal(t, 1, res.Examined)
}

// --------------------- Events ---------------------
func TestEventStream_FiltersByVisibility(t *testing.T) {
	r, svc := setup(t)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/events?token=" + tokenFor(t, junior)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return svc.Events.Subscribers() == 1 }, 2*time.Second, 10*time.Millisecond)

	w := do(t, r, http.MethodPost, "/issues", &manager, issue.CreateIssueDTO{
		Title: "보안 점검", Description: "접근 통제", Category: "IT", Priority: "URGENT", ReadLevel: 3,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	visible := createIssue(t, r, &junior)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev application.Event
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, application.EventIssueCreated, ev.Type)
	assert.Equal(t, visible.ID, ev.IssueID, "restricted ticket is filtered out")
}
