package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/issue-desk/internal/api/middleware"
	"github.com/linskybing/issue-desk/internal/application"
	"github.com/linskybing/issue-desk/internal/domain/comment"
	"github.com/linskybing/issue-desk/internal/domain/internalize"
	"github.com/linskybing/issue-desk/internal/domain/issue"
	"github.com/linskybing/issue-desk/internal/domain/user"
	"github.com/linskybing/issue-desk/pkg/response"
)

type IssueHandler struct {
	service *application.TicketService
}

func NewIssueHandler(service *application.TicketService) *IssueHandler {
	return &IssueHandler{service: service}
}

// ListIssues handles GET /issues.
// @Summary List issues
// @Tags issues
// @Produce json
// @Param status query string false "Status filter"
// @Param category query string false "Category filter"
// @Success 200 {object} response.ListResponse
// @Security BearerAuth
// @Router /issues [get]
func (h *IssueHandler) ListIssues(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}

	var filter issue.Filter
	if raw := c.Query("status"); raw != "" {
		st, err := issue.ParseStatus(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
			return
		}
		filter.Status = &st
	}
	if raw := c.Query("priority"); raw != "" {
		p, err := issue.ParsePriority(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
			return
		}
		filter.Priority = &p
	}
	filter.Category = c.Query("category")
	filter.AssigneeID = c.Query("assignee_id")

	issues := h.service.List(c.Request.Context(), actor, filter)
	c.JSON(http.StatusOK, response.ListResponse{Items: issues, Total: len(issues)})
}

// CreateIssue handles POST /issues.
// @Summary Create issue
// @Tags issues
// @Accept json
// @Produce json
// @Param body body issue.CreateIssueDTO true "New ticket"
// @Success 201 {object} issue.Issue
// @Security BearerAuth
// @Router /issues [post]
func (h *IssueHandler) CreateIssue(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}

	var input issue.CreateIssueDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	p, err := issue.ParsePriority(string(input.Priority))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	input.Priority = p

	created, err := h.service.Create(c.Request.Context(), actor, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetIssue handles GET /issues/{id}.
// @Summary Get issue
// @Tags issues
// @Produce json
// @Param id path string true "Issue ID"
// @Success 200 {object} issue.Issue
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /issues/{id} [get]
func (h *IssueHandler) GetIssue(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}
	iss, err := h.service.GetVisible(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, iss)
}

// UpdateIssue handles PATCH /issues/{id}.
// @Summary Update issue
// @Tags issues
// @Accept json
// @Produce json
// @Param id path string true "Issue ID"
// @Param body body issue.UpdateIssueDTO true "Fields to change"
// @Success 200 {object} issue.Issue
// @Failure 403 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /issues/{id} [patch]
func (h *IssueHandler) UpdateIssue(c *gin.Context) {
	actor, iss, ok := h.load(c)
	if !ok {
		return
	}
	if !h.service.Policy().CanEdit(actor, iss).Allowed {
		forbidden(c)
		return
	}

	var input issue.UpdateIssueDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	if input.Priority != nil {
		p, err := issue.ParsePriority(string(*input.Priority))
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
			return
		}
		input.Priority = &p
	}

	updated, err := h.service.Update(c.Request.Context(), iss.ID, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteIssue handles DELETE /issues/{id}.
// @Summary Delete issue
// @Tags issues
// @Produce json
// @Param id path string true "Issue ID"
// @Success 200 {object} response.MessageResponse
// @Failure 403 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /issues/{id} [delete]
func (h *IssueHandler) DeleteIssue(c *gin.Context) {
	actor, iss, ok := h.load(c)
	if !ok {
		return
	}
	if !h.service.Policy().CanDelete(actor, iss).Allowed {
		forbidden(c)
		return
	}
	if err := h.service.Delete(c.Request.Context(), iss.ID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Issue deleted"})
}

// SetAssignee handles PUT /issues/{id}/assignee.
// @Summary Set assignee
// @Tags issues
// @Accept json
// @Produce json
// @Param id path string true "Issue ID"
// @Param body body issue.AssignDTO true "Assignee"
// @Success 200 {object} issue.Issue
// @Failure 403 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /issues/{id}/assignee [put]
func (h *IssueHandler) SetAssignee(c *gin.Context) {
	actor, iss, ok := h.load(c)
	if !ok {
		return
	}
	if !h.service.Policy().CanAssign(actor, iss).Allowed {
		forbidden(c)
		return
	}

	var input issue.AssignDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	updated, err := h.service.SetAssignee(c.Request.Context(), iss.ID, input.AssigneeID, input.AssigneeName)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// StartIssue assigns the ticket and moves it to IN_PROGRESS.
// @Summary Start issue
// @Tags issues
// @Accept json
// @Produce json
// @Param id path string true "Issue ID"
// @Param body body issue.AssignDTO true "Assignee"
// @Success 200 {object} issue.Issue
// @Failure 409 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /issues/{id}/start [post]
func (h *IssueHandler) StartIssue(c *gin.Context) {
	actor, iss, ok := h.load(c)
	if !ok {
		return
	}

	var input issue.AssignDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	assignee := issue.Participant{ID: input.AssigneeID, Name: input.AssigneeName}

	policy := h.service.Policy()
	d := policy.CanAssign(actor, iss)
	if d.Allowed {
		d = policy.CanTransition(actor, iss, issue.StatusInProgress)
		// The new assignee starting their own ticket is allowed.
		if !d.Allowed && assignee.ID == actor.ID {
			d = application.Allow(actor)
		}
	}
	updated, err := h.service.AssignAndStart(c.Request.Context(), iss.ID, assignee, d)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// TransitionIssue handles POST /issues/{id}/transitions.
// @Summary Transition issue
// @Tags issues
// @Accept json
// @Produce json
// @Param id path string true "Issue ID"
// @Param body body issue.TransitionDTO true "Target status and comment"
// @Success 200 {object} issue.Issue
// @Failure 409 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /issues/{id}/transitions [post]
func (h *IssueHandler) TransitionIssue(c *gin.Context) {
	actor, iss, ok := h.load(c)
	if !ok {
		return
	}

	var input issue.TransitionDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	to, err := issue.ParseStatus(input.Status)
	if err != nil {
		writeError(c, err)
		return
	}

	d := h.service.Policy().CanTransition(actor, iss, to)
	updated, err := h.service.TransitionStatus(c.Request.Context(), iss.ID, to, input.Comment, d)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// AddComment handles POST /issues/{id}/comments.
// @Summary Add comment
// @Tags issues
// @Accept json
// @Produce json
// @Param id path string true "Issue ID"
// @Param body body comment.CreateCommentDTO true "Comment"
// @Success 201 {object} comment.Comment
// @Security BearerAuth
// @Router /issues/{id}/comments [post]
func (h *IssueHandler) AddComment(c *gin.Context) {
	actor, iss, ok := h.load(c)
	if !ok {
		return
	}
	var input comment.CreateCommentDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	created, err := h.service.AddComment(c.Request.Context(), iss.ID, actor, input.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListComments handles GET /issues/{id}/comments.
// @Summary List comments
// @Tags issues
// @Produce json
// @Param id path string true "Issue ID"
// @Success 200 {object} response.ListResponse
// @Security BearerAuth
// @Router /issues/{id}/comments [get]
func (h *IssueHandler) ListComments(c *gin.Context) {
	_, iss, ok := h.load(c)
	if !ok {
		return
	}
	comments, err := h.service.ListComments(c.Request.Context(), iss.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.ListResponse{Items: comments, Total: len(comments)})
}

// AddRelated handles POST /issues/{id}/related.
// @Summary Link related issue
// @Tags issues
// @Accept json
// @Produce json
// @Param id path string true "Issue ID"
// @Param body body issue.RelateDTO true "Related issue"
// @Success 200 {object} issue.Issue
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /issues/{id}/related [post]
func (h *IssueHandler) AddRelated(c *gin.Context) {
	actor, iss, ok := h.load(c)
	if !ok {
		return
	}
	if !h.service.Policy().CanEdit(actor, iss).Allowed {
		forbidden(c)
		return
	}
	var input issue.RelateDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	updated, err := h.service.AddRelated(c.Request.Context(), iss.ID, input.RelatedID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Internalize handles POST /issues/{id}/internalize.
// @Summary Internalize issue
// @Tags issues
// @Accept json
// @Produce json
// @Param id path string true "Issue ID"
// @Param body body internalize.CreateRecordDTO true "Summary"
// @Success 200 {object} internalize.Record
// @Failure 403 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /issues/{id}/internalize [post]
func (h *IssueHandler) Internalize(c *gin.Context) {
	actor, iss, ok := h.load(c)
	if !ok {
		return
	}
	var input internalize.CreateRecordDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	rec, err := h.service.Internalize(c.Request.Context(), iss.ID, actor, input.Summary)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// load resolves the actor and the :id ticket, writing the error response
// itself when either is missing.
func (h *IssueHandler) load(c *gin.Context) (actor user.Actor, iss *issue.Issue, ok bool) {
	actor, ok = middleware.ActorFromContext(c)
	if !ok {
		unauthorized(c)
		return actor, nil, false
	}
	iss, err := h.service.GetVisible(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return actor, nil, false
	}
	return actor, iss, true
}
