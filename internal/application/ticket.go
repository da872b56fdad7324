package application

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/linskybing/issue-desk/internal/domain/comment"
	"github.com/linskybing/issue-desk/internal/domain/internalize"
	"github.com/linskybing/issue-desk/internal/domain/issue"
	"github.com/linskybing/issue-desk/internal/domain/meeting"
	"github.com/linskybing/issue-desk/internal/domain/user"
)

type TicketService struct {
	session *Session
	policy  Policy
}

func NewTicketService(session *Session, policy Policy) *TicketService {
	return &TicketService{session: session, policy: policy}
}

func (s *TicketService) Policy() Policy {
	return s.policy
}

func (s *TicketService) Create(ctx context.Context, reporter user.Actor, input issue.CreateIssueDTO) (*issue.Issue, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if input.Priority.Rank() == 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, issue.ErrUnknownPriority)
	}
	if id, dup := issue.DuplicateParticipant(input.CC); dup {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateParticipant, id)
	}

	var created *issue.Issue
	err := s.session.commit(ctx, "issue.create", func(tx *txn) error {
		iss := &issue.Issue{
			ID:          tx.s.newID(),
			Title:       strings.TrimSpace(input.Title),
			Description: input.Description,
			Category:    input.Category,
			Tags:        slices.Clone(input.Tags),
			Priority:    input.Priority,
			Reporter:    issue.Participant{ID: reporter.ID, Name: reporter.Name},
			CC:          slices.Clone(input.CC),
			Status:      issue.StatusIssueRaised,
			ReadLevel:   input.ReadLevel,
			Attachments: slices.Clone(input.Attachments),
			CreatedAt:   tx.now,
			UpdatedAt:   tx.now,
		}
		if iss.CC == nil {
			iss.CC = []issue.Participant{}
		}
		tx.st.issues[iss.ID] = iss
		tx.markIssue(iss)
		tx.emit(Event{Type: EventIssueCreated, IssueID: iss.ID, To: iss.Status})
		created = iss.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update merges the non-nil fields of input into the ticket.
func (s *TicketService) Update(ctx context.Context, id string, input issue.UpdateIssueDTO) (*issue.Issue, error) {
	var updated *issue.Issue
	err := s.session.commit(ctx, "issue.update", func(tx *txn) error {
		iss, err := tx.st.issue(id)
		if err != nil {
			return err
		}
		if input.Title != nil {
			title := strings.TrimSpace(*input.Title)
			if title == "" {
				return fmt.Errorf("%w: title cannot be blank", ErrInvalidInput)
			}
			iss.Title = title
		}
		if input.Description != nil {
			iss.Description = *input.Description
		}
		if input.Category != nil {
			iss.Category = *input.Category
		}
		if input.Priority != nil {
			if input.Priority.Rank() == 0 {
				return fmt.Errorf("%w: %w", ErrInvalidInput, issue.ErrUnknownPriority)
			}
			iss.Priority = *input.Priority
		}
		if input.Tags != nil {
			iss.Tags = slices.Clone(*input.Tags)
		}
		if input.CC != nil {
			if pid, dup := issue.DuplicateParticipant(*input.CC); dup {
				return fmt.Errorf("%w: %s", ErrDuplicateParticipant, pid)
			}
			iss.CC = slices.Clone(*input.CC)
		}
		if input.ReadLevel != nil {
			iss.ReadLevel = *input.ReadLevel
		}
		if input.Attachments != nil {
			iss.Attachments = slices.Clone(*input.Attachments)
		}
		tx.touch(iss)
		tx.emit(Event{Type: EventIssueUpdated, IssueID: iss.ID})
		updated = iss.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the ticket with its agenda, comments and internalization
// record. Archive entries are kept.
func (s *TicketService) Delete(ctx context.Context, id string) error {
	return s.session.commit(ctx, "issue.delete", func(tx *txn) error {
		if _, err := tx.st.issue(id); err != nil {
			return err
		}
		delete(tx.st.issues, id)
		tx.st.agendas = slices.DeleteFunc(tx.st.agendas, func(a *meeting.Agenda) bool {
			return a.IssueID == id
		})
		delete(tx.st.comments, id)
		delete(tx.st.internalized, id)
		tx.deleted = append(tx.deleted, id)
		tx.emit(Event{Type: EventIssueDeleted, IssueID: id})
		return nil
	})
}

func (s *TicketService) SetAssignee(ctx context.Context, id, assigneeID, assigneeName string) (*issue.Issue, error) {
	if strings.TrimSpace(assigneeID) == "" {
		return nil, fmt.Errorf("%w: assignee id is required", ErrInvalidInput)
	}
	var updated *issue.Issue
	err := s.session.commit(ctx, "issue.assign", func(tx *txn) error {
		iss, err := tx.st.issue(id)
		if err != nil {
			return err
		}
		iss.Assignee = issue.Participant{ID: assigneeID, Name: assigneeName}
		tx.touch(iss)
		tx.emit(Event{Type: EventIssueUpdated, IssueID: iss.ID, Message: "assignee set"})
		updated = iss.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// AssignAndStart sets the assignee and moves a raised ticket to IN_PROGRESS
// as one change. A ticket already in progress only gets the new assignee.
func (s *TicketService) AssignAndStart(ctx context.Context, id string, assignee issue.Participant, d Decision) (*issue.Issue, error) {
	if strings.TrimSpace(assignee.ID) == "" {
		return nil, fmt.Errorf("%w: assignee id is required", ErrInvalidInput)
	}
	var updated *issue.Issue
	err := s.session.commit(ctx, "issue.assign_start", func(tx *txn) error {
		iss, err := tx.st.issue(id)
		if err != nil {
			return err
		}
		if !d.Allowed {
			return fmt.Errorf("%w: %s cannot start %s", ErrForbidden, d.Actor.ID, id)
		}
		iss.Assignee = assignee
		switch err := tx.transition(iss, issue.StatusInProgress, "", direct); {
		case errors.Is(err, issue.ErrNoChange):
			tx.touch(iss)
		case err != nil:
			return err
		}
		updated = iss.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// TransitionStatus moves a ticket along the transition table. Entering the
// meeting state registers an agenda; entering a terminal state archives a
// snapshot. A transition into the current status is a no-op.
func (s *TicketService) TransitionStatus(ctx context.Context, id string, to issue.Status, reason string, d Decision) (*issue.Issue, error) {
	var result *issue.Issue
	err := s.session.commit(ctx, "issue.transition", func(tx *txn) error {
		iss, err := tx.st.issue(id)
		if err != nil {
			return err
		}
		result = iss.Clone()
		if !d.Allowed {
			return fmt.Errorf("%w: %s cannot move %s to %s", ErrForbidden, d.Actor.ID, id, to)
		}
		if err := tx.transition(iss, to, reason, direct); err != nil {
			return err
		}
		result = iss.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *TicketService) AddComment(ctx context.Context, issueID string, author user.Actor, content string) (*comment.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment is empty", ErrInvalidInput)
	}
	var created *comment.Comment
	err := s.session.commit(ctx, "issue.comment", func(tx *txn) error {
		if _, err := tx.st.issue(issueID); err != nil {
			return err
		}
		c := &comment.Comment{
			ID:         tx.s.newID(),
			IssueID:    issueID,
			AuthorID:   author.ID,
			AuthorName: author.Name,
			Content:    content,
			CreatedAt:  tx.now,
		}
		tx.st.comments[issueID] = append(tx.st.comments[issueID], c)
		tx.comments = append(tx.comments, c)
		tx.emit(Event{Type: EventCommentAdded, IssueID: issueID, Message: author.Name})
		v := *c
		created = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ListComments returns the ticket's comments oldest first.
func (s *TicketService) ListComments(ctx context.Context, issueID string) ([]comment.Comment, error) {
	var (
		out []comment.Comment
		err error
	)
	s.session.read(func(st *state) {
		if _, err = st.issue(issueID); err != nil {
			return
		}
		out = make([]comment.Comment, 0, len(st.comments[issueID]))
		for _, c := range st.comments[issueID] {
			out = append(out, *c)
		}
	})
	return out, err
}

// AddRelated links relatedID from the ticket. The link is stored on one
// side only.
func (s *TicketService) AddRelated(ctx context.Context, id, relatedID string) (*issue.Issue, error) {
	if id == relatedID {
		return nil, fmt.Errorf("%w: a ticket cannot relate to itself", ErrInvalidInput)
	}
	var updated *issue.Issue
	err := s.session.commit(ctx, "issue.relate", func(tx *txn) error {
		iss, err := tx.st.issue(id)
		if err != nil {
			return err
		}
		if _, err := tx.st.issue(relatedID); err != nil {
			return err
		}
		updated = iss.Clone()
		if slices.Contains(iss.RelatedIssues, relatedID) {
			return issue.ErrNoChange
		}
		iss.RelatedIssues = append(iss.RelatedIssues, relatedID)
		tx.touch(iss)
		tx.emit(Event{Type: EventIssueUpdated, IssueID: id, Message: "related " + relatedID})
		updated = iss.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Internalize records that the ticket's outcome was adopted internally. The
// ticket is excluded from escalation from then on.
func (s *TicketService) Internalize(ctx context.Context, id string, actor user.Actor, summary string) (*internalize.Record, error) {
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return nil, fmt.Errorf("%w: summary is required", ErrInvalidInput)
	}
	var rec *internalize.Record
	err := s.session.commit(ctx, "issue.internalize", func(tx *txn) error {
		iss, err := tx.st.issue(id)
		if err != nil {
			return err
		}
		if existing, ok := tx.st.internalized[id]; ok {
			v := *existing
			rec = &v
			return issue.ErrNoChange
		}
		r := &internalize.Record{
			ID:         tx.s.newID(),
			IssueID:    id,
			IssueTitle: iss.Title,
			Summary:    summary,
			ActorID:    actor.ID,
			ActorName:  actor.Name,
			CreatedAt:  tx.now,
		}
		tx.st.internalized[id] = r
		tx.internalized = append(tx.internalized, r)
		tx.emit(Event{Type: EventInternalized, IssueID: id})
		v := *r
		rec = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *TicketService) Get(ctx context.Context, id string) (*issue.Issue, error) {
	var (
		out *issue.Issue
		err error
	)
	s.session.read(func(st *state) {
		var iss *issue.Issue
		if iss, err = st.issue(id); err == nil {
			out = iss.Clone()
		}
	})
	return out, err
}

// GetVisible is Get restricted to tickets the actor may view. A hidden
// ticket reports not found.
func (s *TicketService) GetVisible(ctx context.Context, actor user.Actor, id string) (*issue.Issue, error) {
	iss, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.policy.CanView(actor, iss) {
		return nil, fmt.Errorf("%w: %s", ErrIssueNotFound, id)
	}
	return iss, nil
}

// List returns the tickets visible to actor that match filter, newest first.
func (s *TicketService) List(ctx context.Context, actor user.Actor, filter issue.Filter) []issue.Issue {
	var out []issue.Issue
	s.session.read(func(st *state) {
		out = make([]issue.Issue, 0, len(st.issues))
		for _, iss := range st.issues {
			if !matches(iss, filter) || !s.policy.CanView(actor, iss) {
				continue
			}
			out = append(out, *iss.Clone())
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// IsInternalized reports whether the ticket has an internalization record.
func (s *TicketService) IsInternalized(ctx context.Context, id string) bool {
	var ok bool
	s.session.read(func(st *state) {
		_, ok = st.internalized[id]
	})
	return ok
}

func matches(iss *issue.Issue, f issue.Filter) bool {
	if f.Status != nil && iss.Status != *f.Status {
		return false
	}
	if f.Category != "" && iss.Category != f.Category {
		return false
	}
	if f.Priority != nil && iss.Priority != *f.Priority {
		return false
	}
	if f.AssigneeID != "" && iss.Assignee.ID != f.AssigneeID {
		return false
	}
	return true
}
