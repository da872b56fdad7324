package application

import (
	"errors"

	"github.com/linskybing/issue-desk/internal/domain/archive"
	"github.com/linskybing/issue-desk/internal/domain/issue"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the lifecycle counters. A nil registerer keeps them
// unregistered, which is what tests use.
type Metrics struct {
	Transitions     *prometheus.CounterVec
	Escalations     prometheus.Counter
	Archived        *prometheus.CounterVec
	Rejected        *prometheus.CounterVec
	BackendFailures *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Transitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "issuedesk",
			Name:      "status_transitions_total",
			Help:      "Committed ticket status transitions.",
		}, []string{"from", "to"}),
		Escalations: f.NewCounter(prometheus.CounterOpts{
			Namespace: "issuedesk",
			Name:      "escalations_total",
			Help:      "Tickets moved to the meeting queue by the escalation sweep.",
		}),
		Archived: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "issuedesk",
			Name:      "archive_entries_total",
			Help:      "Closed-ticket ledger entries appended.",
		}, []string{"source"}),
		Rejected: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "issuedesk",
			Name:      "rejected_operations_total",
			Help:      "Lifecycle operations rejected before commit.",
		}, []string{"op", "reason"}),
		BackendFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "issuedesk",
			Name:      "backend_failures_total",
			Help:      "Change sets the persistence backend refused; state was reverted.",
		}, []string{"op"}),
	}
}

func (m *Metrics) transition(from, to issue.Status) {
	m.Transitions.WithLabelValues(string(from), string(to)).Inc()
}

func (m *Metrics) archivedEntry(src archive.Source) {
	m.Archived.WithLabelValues(string(src)).Inc()
}

func (m *Metrics) escalated(n int) {
	if n > 0 {
		m.Escalations.Add(float64(n))
	}
}

func (m *Metrics) rejected(op string, err error) {
	m.Rejected.WithLabelValues(op, rejectReason(err)).Inc()
}

func (m *Metrics) backendFailure(op string) {
	m.BackendFailures.WithLabelValues(op).Inc()
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrIssueNotFound), errors.Is(err, ErrAgendaNotFound):
		return "not_found"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, issue.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, issue.ErrCommentRequired):
		return "comment_required"
	case errors.Is(err, ErrAgendaSettled):
		return "agenda_settled"
	case errors.Is(err, ErrDuplicateParticipant), errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	default:
		return "other"
	}
}
