package application

import (
	"time"

	"github.com/linskybing/issue-desk/internal/domain/user"
)

// Options wires the services around one session.
type Options struct {
	Session             SessionOptions
	Users               []user.User
	Policy              Policy
	EscalationThreshold time.Duration
	TokenTTL            time.Duration
}

type Services struct {
	Session    *Session
	Events     *EventHub
	Ticket     *TicketService
	Agenda     *AgendaService
	Archive    *ArchiveService
	Escalation *EscalationService
	User       *UserService
}

func New(opts Options) *Services {
	hub := NewEventHub(0)
	sessOpts := opts.Session
	if sessOpts.Notifier == nil {
		sessOpts.Notifier = hub
	} else {
		sessOpts.Notifier = MultiNotifier{sessOpts.Notifier, hub}
	}
	session := NewSession(sessOpts)

	return &Services{
		Session:    session,
		Events:     hub,
		Ticket:     NewTicketService(session, opts.Policy),
		Agenda:     NewAgendaService(session),
		Archive:    NewArchiveService(session),
		Escalation: NewEscalationService(session, opts.EscalationThreshold),
		User:       NewUserService(opts.Users, opts.TokenTTL),
	}
}
