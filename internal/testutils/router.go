package testutils

import (
	"github.com/gin-gonic/gin"
	"github.com/linskybing/issue-desk/internal/api/handlers"
	"github.com/linskybing/issue-desk/internal/api/routes"
	"github.com/linskybing/issue-desk/internal/application"
)

// SetupRouter mounts every route over svc in gin test mode.
func SetupRouter(svc *application.Services) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	routes.RegisterRoutes(r, handlers.New(svc, nil), nil)
	return r
}
