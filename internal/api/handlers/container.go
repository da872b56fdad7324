package handlers

import (
	"log/slog"

	"github.com/linskybing/issue-desk/internal/application"
)

type Handlers struct {
	Issue      *IssueHandler
	Agenda     *AgendaHandler
	Archive    *ArchiveHandler
	Escalation *EscalationHandler
	User       *UserHandler
	Events     *EventsHandler
}

func New(svc *application.Services, logger *slog.Logger) *Handlers {
	return &Handlers{
		Issue:      NewIssueHandler(svc.Ticket),
		Agenda:     NewAgendaHandler(svc.Agenda, svc.Ticket, svc.Ticket.Policy()),
		Archive:    NewArchiveHandler(svc.Archive, svc.Ticket.Policy()),
		Escalation: NewEscalationHandler(svc.Escalation),
		User:       NewUserHandler(svc.User),
		Events:     NewEventsHandler(svc.Events, svc.Ticket, logger),
	}
}
