package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/issue-desk/internal/application"
	"github.com/linskybing/issue-desk/internal/domain/issue"
	"github.com/linskybing/issue-desk/internal/domain/meeting"
	"github.com/linskybing/issue-desk/pkg/response"
)

// statusFor maps lifecycle errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, application.ErrIssueNotFound),
		errors.Is(err, application.ErrAgendaNotFound),
		errors.Is(err, application.ErrArchiveNotFound),
		errors.Is(err, application.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, application.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, application.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, issue.ErrInvalidTransition),
		errors.Is(err, application.ErrAgendaSettled),
		errors.Is(err, application.ErrDuplicateParticipant):
		return http.StatusConflict
	case errors.Is(err, issue.ErrCommentRequired),
		errors.Is(err, issue.ErrUnknownStatus),
		errors.Is(err, issue.ErrUnknownPriority),
		errors.Is(err, meeting.ErrUnknownOutcome),
		errors.Is(err, application.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, application.ErrPersistence):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	c.JSON(statusFor(err), response.ErrorResponse{Error: err.Error()})
}

func forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, response.ErrorResponse{Error: application.ErrForbidden.Error()})
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
}
