package application

import (
	"log/slog"
	"sync"
	"time"

	"github.com/linskybing/issue-desk/internal/domain/issue"
)

type EventType string

const (
	EventIssueCreated  EventType = "issue.created"
	EventIssueUpdated  EventType = "issue.updated"
	EventIssueDeleted  EventType = "issue.deleted"
	EventStatusChanged EventType = "issue.status_changed"
	EventCommentAdded  EventType = "issue.comment_added"
	EventInternalized  EventType = "issue.internalized"
	EventAgendaCreated EventType = "agenda.created"
	EventAgendaUpdated EventType = "agenda.updated"
	EventArchived      EventType = "archive.appended"
)

// Event is a lifecycle change published after it has been committed.
type Event struct {
	Type     EventType    `json:"type"`
	IssueID  string       `json:"issue_id,omitempty"`
	AgendaID string       `json:"agenda_id,omitempty"`
	From     issue.Status `json:"from,omitempty"`
	To       issue.Status `json:"to,omitempty"`
	Message  string       `json:"message,omitempty"`
	At       time.Time    `json:"at"`
}

// Notifier receives committed lifecycle events. Implementations must not
// block for long; Notify is called on the mutating goroutine.
type Notifier interface {
	Notify(Event)
}

type NopNotifier struct{}

func (NopNotifier) Notify(Event) {}

// LogNotifier writes every event to a structured logger.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(ev Event) {
	l := n.Logger
	if l == nil {
		l = slog.Default()
	}
	l.Info("lifecycle event",
		"type", ev.Type, "issue_id", ev.IssueID, "agenda_id", ev.AgendaID,
		"from", ev.From, "to", ev.To)
}

// MultiNotifier fans an event out to several notifiers in order.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ev Event) {
	for _, n := range m {
		n.Notify(ev)
	}
}

// EventHub broadcasts events to live subscribers such as websocket clients.
// Slow subscribers drop events rather than stall the session.
type EventHub struct {
	mu     sync.Mutex
	subs   map[chan Event]struct{}
	buffer int
}

func NewEventHub(buffer int) *EventHub {
	if buffer <= 0 {
		buffer = 16
	}
	return &EventHub{subs: make(map[chan Event]struct{}), buffer: buffer}
}

// Subscribe registers a listener. The returned cancel func unregisters it and
// closes the channel.
func (h *EventHub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, h.buffer)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
}

func (h *EventHub) Notify(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribers returns the number of active listeners.
func (h *EventHub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
