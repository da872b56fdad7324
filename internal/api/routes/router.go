package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/issue-desk/internal/api/handlers"
	"github.com/linskybing/issue-desk/internal/api/middleware"
	"github.com/linskybing/issue-desk/internal/domain/user"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes mounts the lifecycle API on r. gatherer backs /metrics.
func RegisterRoutes(r *gin.Engine, h *handlers.Handlers, gatherer prometheus.Gatherer) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	r.POST("/login", h.User.Login)
	r.POST("/logout", h.User.Logout)

	auth := r.Group("/")
	auth.Use(middleware.JWTAuthMiddleware())
	{
		auth.GET("/auth/me", h.User.Me)
		auth.GET("/users", middleware.RequireRole(user.RoleAdmin, user.RoleManager), h.User.ListUsers)
		auth.GET("/ws/events", h.Events.Stream)

		issues := auth.Group("/issues")
		{
			issues.GET("", h.Issue.ListIssues)
			issues.POST("", h.Issue.CreateIssue)
			issues.GET("/:id", h.Issue.GetIssue)
			issues.PATCH("/:id", h.Issue.UpdateIssue)
			issues.DELETE("/:id", h.Issue.DeleteIssue)
			issues.PUT("/:id/assignee", h.Issue.SetAssignee)
			issues.POST("/:id/start", h.Issue.StartIssue)
			issues.POST("/:id/transitions", h.Issue.TransitionIssue)
			issues.GET("/:id/comments", h.Issue.ListComments)
			issues.POST("/:id/comments", h.Issue.AddComment)
			issues.POST("/:id/related", h.Issue.AddRelated)
			issues.POST("/:id/internalize", middleware.RequireRole(user.RoleAdmin, user.RoleManager), h.Issue.Internalize)
		}

		agendas := auth.Group("/agendas")
		{
			agendas.GET("", h.Agenda.ListAgendas)
			agendas.POST("", middleware.RequireRole(user.RoleAdmin, user.RoleManager), h.Agenda.AddAgenda)
			agendas.GET("/:id", h.Agenda.GetAgenda)
			agendas.POST("/:id/resolve", h.Agenda.ResolveAgenda)
			agendas.PATCH("/:id/notes", middleware.RequireRole(user.RoleAdmin, user.RoleManager), h.Agenda.AnnotateAgenda)
		}

		archive := auth.Group("/archive")
		{
			archive.GET("", h.Archive.ListArchive)
			archive.GET("/:id", h.Archive.GetArchiveEntry)
		}

		auth.POST("/escalations/sweep", middleware.RequireRole(user.RoleAdmin), h.Escalation.Sweep)
	}
}
