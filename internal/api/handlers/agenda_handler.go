package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/issue-desk/internal/api/middleware"
	"github.com/linskybing/issue-desk/internal/application"
	"github.com/linskybing/issue-desk/internal/domain/issue"
	"github.com/linskybing/issue-desk/internal/domain/meeting"
	"github.com/linskybing/issue-desk/internal/domain/user"
	"github.com/linskybing/issue-desk/pkg/response"
)

type AgendaHandler struct {
	service *application.AgendaService
	tickets *application.TicketService
	policy  application.Policy
}

func NewAgendaHandler(service *application.AgendaService, tickets *application.TicketService, policy application.Policy) *AgendaHandler {
	return &AgendaHandler{service: service, tickets: tickets, policy: policy}
}

// visible hides agendas whose ticket the actor may not view.
func (h *AgendaHandler) visible(c *gin.Context, actor user.Actor, a *meeting.Agenda) bool {
	_, err := h.tickets.GetVisible(c.Request.Context(), actor, a.IssueID)
	return err == nil
}

// ListAgendas lists the review queue.
// @Summary List agendas
// @Description Agendas most recent first, limited to tickets the caller can view.
// @Tags agendas
// @Produce json
// @Param status query string false "pending, discussed, resolved or on_hold"
// @Success 200 {object} response.ListResponse
// @Failure 401 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /agendas [get]
func (h *AgendaHandler) ListAgendas(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}
	all := h.service.List(c.Request.Context(), meeting.AgendaStatus(c.Query("status")))
	agendas := make([]meeting.Agenda, 0, len(all))
	for i := range all {
		if h.visible(c, actor, &all[i]) {
			agendas = append(agendas, all[i])
		}
	}
	c.JSON(http.StatusOK, response.ListResponse{Items: agendas, Total: len(agendas)})
}

// GetAgenda returns one agenda.
// @Summary Get agenda
// @Tags agendas
// @Produce json
// @Param id path string true "Agenda ID"
// @Success 200 {object} meeting.Agenda
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /agendas/{id} [get]
func (h *AgendaHandler) GetAgenda(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}
	a, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if !h.visible(c, actor, a) {
		writeError(c, fmt.Errorf("%w: %s", application.ErrAgendaNotFound, a.ID))
		return
	}
	c.JSON(http.StatusOK, a)
}

// AddAgenda schedules a ticket for the review meeting.
// @Summary Add agenda
// @Description Moves the ticket to MEETING_SCHEDULED and returns its agenda.
// @Tags agendas
// @Accept json
// @Produce json
// @Param body body meeting.AddAgendaDTO true "Ticket and optional notes"
// @Success 200 {object} meeting.Agenda
// @Failure 403 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /agendas [post]
func (h *AgendaHandler) AddAgenda(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}
	var input meeting.AddAgendaDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	iss, err := h.tickets.GetVisible(c.Request.Context(), actor, input.IssueID)
	if err != nil {
		writeError(c, err)
		return
	}
	d := h.policy.CanTransition(actor, iss, issue.StatusMeetingScheduled)
	a, err := h.service.Add(c.Request.Context(), iss.ID, input.Notes, d)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// ResolveAgenda records the meeting outcome.
// @Summary Resolve agenda
// @Description Outcome resolved moves the ticket to RESOLVED (notes required), on_hold to ON_HOLD.
// @Tags agendas
// @Accept json
// @Produce json
// @Param id path string true "Agenda ID"
// @Param body body meeting.ResolveAgendaDTO true "Outcome and notes"
// @Success 200 {object} meeting.Agenda
// @Failure 403 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /agendas/{id}/resolve [post]
func (h *AgendaHandler) ResolveAgenda(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}
	var input meeting.ResolveAgendaDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	outcome, err := meeting.ParseOutcome(input.Outcome)
	if err != nil {
		writeError(c, err)
		return
	}
	current, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if !h.visible(c, actor, current) {
		writeError(c, fmt.Errorf("%w: %s", application.ErrAgendaNotFound, current.ID))
		return
	}

	d := h.policy.CanResolveAgenda(actor, current)
	a, err := h.service.Resolve(c.Request.Context(), current.ID, outcome, input.Notes, d)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// AnnotateAgenda replaces the agenda notes.
// @Summary Annotate agenda
// @Tags agendas
// @Accept json
// @Produce json
// @Param id path string true "Agenda ID"
// @Param body body meeting.AnnotateAgendaDTO true "Notes"
// @Success 200 {object} meeting.Agenda
// @Failure 409 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /agendas/{id}/notes [patch]
func (h *AgendaHandler) AnnotateAgenda(c *gin.Context) {
	var input meeting.AnnotateAgendaDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	a, err := h.service.Annotate(c.Request.Context(), c.Param("id"), input.Notes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}
