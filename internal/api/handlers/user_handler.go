package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/issue-desk/internal/api/middleware"
	"github.com/linskybing/issue-desk/internal/application"
	"github.com/linskybing/issue-desk/internal/config"
	"github.com/linskybing/issue-desk/internal/domain/user"
	"github.com/linskybing/issue-desk/pkg/response"
)

type UserHandler struct {
	service *application.UserService
}

func NewUserHandler(service *application.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Login handles POST /login.
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param body body user.LoginDTO true "Credentials"
// @Success 200 {object} user.LoginResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var input user.LoginDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	res, err := h.service.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.SetCookie("token", res.Token, int(config.TokenTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, res)
}

// Logout handles POST /logout.
// @Summary Logout
// @Tags auth
// @Produce json
// @Success 200 {object} response.MessageResponse
// @Router /logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Logged out"})
}

// Me returns the account behind the current token.
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} user.User
// @Failure 401 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}
	u, err := h.service.FindByID(c.Request.Context(), actor.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// ListUsers handles GET /users.
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {object} response.ListResponse
// @Failure 403 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users := h.service.List(c.Request.Context())
	c.JSON(http.StatusOK, response.ListResponse{Items: users, Total: len(users)})
}
