package application

import (
	"github.com/linskybing/issue-desk/internal/domain/archive"
	"github.com/linskybing/issue-desk/internal/domain/issue"
	"github.com/linskybing/issue-desk/internal/domain/meeting"
	"github.com/linskybing/issue-desk/internal/domain/user"
)

// Decision is the caller's authorization verdict for a change. The lifecycle
// core never re-derives it; it only refuses to act when Allowed is false.
type Decision struct {
	Actor   user.Actor
	Allowed bool
}

func Allow(a user.Actor) Decision { return Decision{Actor: a, Allowed: true} }
func Deny(a user.Actor) Decision  { return Decision{Actor: a} }

// Policy answers the rank and role questions the API layer asks before
// calling into the core.
type Policy struct {
	EscalateMinRank int
}

func NewPolicy(escalateMinRank int) Policy {
	return Policy{EscalateMinRank: escalateMinRank}
}

// CanView applies the read-level rule used by list and detail views.
func (p Policy) CanView(a user.Actor, iss *issue.Issue) bool {
	return a.IsAdmin() || iss.IsParticipant(a.ID) || iss.ReadLevel <= a.Rank
}

// CanViewArchived applies the read-level rule to a snapshot, using the
// participants and read level captured at archival time.
func (p Policy) CanViewArchived(a user.Actor, e *archive.ClosedTicket) bool {
	return a.IsAdmin() || e.IsParticipant(a.ID) || e.ReadLevel <= a.Rank
}

// CanTransition decides whether a may move iss to the target status.
func (p Policy) CanTransition(a user.Actor, iss *issue.Issue, to issue.Status) Decision {
	if a.IsAdmin() {
		return Allow(a)
	}
	owner := iss.Reporter.ID == a.ID || iss.Assignee.ID == a.ID
	switch to {
	case issue.StatusMeetingScheduled:
		if iss.Assignee.ID == a.ID || a.Rank >= p.EscalateMinRank {
			return Allow(a)
		}
	case issue.StatusInProgress, issue.StatusResolved:
		if owner {
			return Allow(a)
		}
	default:
		if a.HasRole(user.RoleManager) || iss.Assignee.ID == a.ID {
			return Allow(a)
		}
	}
	return Deny(a)
}

// CanResolveAgenda restricts agenda dispositions to managers and admins.
func (p Policy) CanResolveAgenda(a user.Actor, _ *meeting.Agenda) Decision {
	if a.HasRole(user.RoleAdmin, user.RoleManager) {
		return Allow(a)
	}
	return Deny(a)
}

// CanEdit covers content updates, comments aside.
func (p Policy) CanEdit(a user.Actor, iss *issue.Issue) Decision {
	if a.HasRole(user.RoleAdmin, user.RoleManager) || iss.Reporter.ID == a.ID || iss.Assignee.ID == a.ID {
		return Allow(a)
	}
	return Deny(a)
}

// CanDelete is limited to admins and the reporter.
func (p Policy) CanDelete(a user.Actor, iss *issue.Issue) Decision {
	if a.IsAdmin() || iss.Reporter.ID == a.ID {
		return Allow(a)
	}
	return Deny(a)
}

// CanAssign lets managers, admins and the reporter pick an assignee.
func (p Policy) CanAssign(a user.Actor, iss *issue.Issue) Decision {
	if a.HasRole(user.RoleAdmin, user.RoleManager) || iss.Reporter.ID == a.ID {
		return Allow(a)
	}
	return Deny(a)
}
