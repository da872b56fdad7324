package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/issue-desk/internal/api/middleware"
	"github.com/linskybing/issue-desk/internal/application"
	"github.com/linskybing/issue-desk/internal/domain/archive"
	"github.com/linskybing/issue-desk/pkg/response"
)

type ArchiveHandler struct {
	service *application.ArchiveService
	policy  application.Policy
}

func NewArchiveHandler(service *application.ArchiveService, policy application.Policy) *ArchiveHandler {
	return &ArchiveHandler{service: service, policy: policy}
}

// ListArchive lists closed-ticket snapshots.
// @Summary List archive
// @Description Snapshots most recent first, limited to those the caller can view.
// @Tags archive
// @Produce json
// @Param issue_id query string false "Ticket ID"
// @Param source query string false "issue or meeting"
// @Success 200 {object} response.ListResponse
// @Security BearerAuth
// @Router /archive [get]
func (h *ArchiveHandler) ListArchive(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}
	filter := archive.Filter{
		IssueID: c.Query("issue_id"),
		Source:  archive.Source(c.Query("source")),
	}
	all := h.service.List(c.Request.Context(), filter)
	entries := make([]archive.ClosedTicket, 0, len(all))
	for i := range all {
		if h.policy.CanViewArchived(actor, &all[i]) {
			entries = append(entries, all[i])
		}
	}
	c.JSON(http.StatusOK, response.ListResponse{Items: entries, Total: len(entries)})
}

// GetArchiveEntry returns one snapshot.
// @Summary Get archive entry
// @Tags archive
// @Produce json
// @Param id path string true "Archive entry ID"
// @Success 200 {object} archive.ClosedTicket
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /archive/{id} [get]
func (h *ArchiveHandler) GetArchiveEntry(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}
	e, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if !h.policy.CanViewArchived(actor, e) {
		writeError(c, fmt.Errorf("%w: %s", application.ErrArchiveNotFound, e.ID))
		return
	}
	c.JSON(http.StatusOK, e)
}
