package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/issue-desk/internal/application"
)

type EscalationHandler struct {
	service *application.EscalationService
}

func NewEscalationHandler(service *application.EscalationService) *EscalationHandler {
	return &EscalationHandler{service: service}
}

// Sweep runs an escalation pass on demand.
// @Summary Run escalation sweep
// @Tags escalations
// @Produce json
// @Success 200 {object} application.SweepResult
// @Failure 403 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /escalations/sweep [post]
func (h *EscalationHandler) Sweep(c *gin.Context) {
	res, err := h.service.Sweep(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
