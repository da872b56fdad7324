package application

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/linskybing/issue-desk/internal/domain/issue"
)

// DefaultEscalationThreshold is the age after which an open ticket is moved
// to the meeting queue.
const DefaultEscalationThreshold = 7 * 24 * time.Hour

// SweepResult summarizes one escalation pass.
type SweepResult struct {
	At             time.Time `json:"at"`
	Escalated      []string  `json:"escalated"`
	AgendasCreated int       `json:"agendas_created"`
	Examined       int       `json:"examined"`
}

type EscalationService struct {
	session   *Session
	threshold time.Duration
}

func NewEscalationService(session *Session, threshold time.Duration) *EscalationService {
	if threshold <= 0 {
		threshold = DefaultEscalationThreshold
	}
	return &EscalationService{session: session, threshold: threshold}
}

func (s *EscalationService) Threshold() time.Duration {
	return s.threshold
}

// Sweep escalates every open ticket whose age has reached the threshold.
// Terminal, already scheduled and internalized tickets are skipped. Status
// changes are applied as one batch, then missing agendas are created, all in
// a single commit. Running it again without elapsed time changes nothing.
func (s *EscalationService) Sweep(ctx context.Context) (SweepResult, error) {
	var res SweepResult
	err := s.session.commit(ctx, "escalation.sweep", func(tx *txn) error {
		res.At = tx.now
		ids := make([]string, 0, len(tx.st.issues))
		for id := range tx.st.issues {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool {
			a, b := tx.st.issues[ids[i]], tx.st.issues[ids[j]]
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.ID < b.ID
		})

		var due []*issue.Issue
		for _, id := range ids {
			iss := tx.st.issues[id]
			res.Examined++
			if !s.eligible(tx, iss) {
				continue
			}
			if err := issue.ValidateTransition(iss.Status, issue.StatusMeetingScheduled, ""); err != nil {
				return fmt.Errorf("escalate %s: %w", iss.ID, err)
			}
			due = append(due, iss)
		}

		for _, iss := range due {
			from := tx.applyStatus(iss, issue.StatusMeetingScheduled)
			tx.emit(Event{Type: EventStatusChanged, IssueID: iss.ID, From: from, To: iss.Status, Message: "escalated"})
			res.Escalated = append(res.Escalated, iss.ID)
		}
		tx.escalations = len(due)

		for _, id := range ids {
			iss := tx.st.issues[id]
			if iss.Status != issue.StatusMeetingScheduled {
				continue
			}
			note := fmt.Sprintf("auto-escalated: open for %s without resolution", age(tx.now, iss).Truncate(time.Hour))
			if _, created := tx.ensureAgenda(iss, note, true); created {
				res.AgendasCreated++
			}
		}

		if len(due) == 0 && res.AgendasCreated == 0 {
			return issue.ErrNoChange
		}
		return nil
	})
	if err != nil {
		return SweepResult{}, err
	}
	if len(res.Escalated) > 0 || res.AgendasCreated > 0 {
		s.session.logger.Info("escalation sweep",
			"escalated", len(res.Escalated), "agendas_created", res.AgendasCreated, "examined", res.Examined)
	}
	return res, nil
}

func (s *EscalationService) eligible(tx *txn, iss *issue.Issue) bool {
	if iss.Status.IsTerminal() || iss.Status == issue.StatusMeetingScheduled {
		return false
	}
	if _, ok := tx.st.internalized[iss.ID]; ok {
		return false
	}
	return age(tx.now, iss) >= s.threshold
}

func age(now time.Time, iss *issue.Issue) time.Duration {
	return now.Sub(iss.CreatedAt)
}
