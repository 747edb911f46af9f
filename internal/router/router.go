// Package router assembles the HTTP route table.
package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/team-task-api/internal/authz"
	"github.com/yukikurage/team-task-api/internal/constants"
	"github.com/yukikurage/team-task-api/internal/handlers"
	"github.com/yukikurage/team-task-api/internal/logger"
	"github.com/yukikurage/team-task-api/internal/middleware"
	"github.com/yukikurage/team-task-api/internal/repository"
	"github.com/yukikurage/team-task-api/internal/services"
)

// Options holds everything the route table depends on.
type Options struct {
	Store        repository.Store
	Tokens       *services.TokenService
	SessionStore sessions.Store
	Logger       *slog.Logger
	AdminKey     string
}

// New builds a gin engine serving the API.
func New(opts Options) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	// Initialize services
	userService := services.NewUserService(opts.Store, opts.AdminKey)
	authService := services.NewAuthService(opts.Store, opts.Tokens)
	teamService := services.NewTeamService(opts.Store)
	memberService := services.NewTeamMemberService(opts.Store)
	taskService := services.NewTaskService(opts.Store)

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	teamHandler := handlers.NewTeamHandler(teamService, memberService)
	memberHandler := handlers.NewTeamMemberHandler(memberService)
	taskHandler := handlers.NewTaskHandler(taskService)

	r := gin.New()
	r.Use(logger.GinMiddleware(log), gin.Recovery())
	r.Use(sessions.Sessions(constants.SessionCookieName, opts.SessionStore))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Team Task API is running",
		})
	})

	requireAuth := middleware.RequireAuth(opts.Tokens, userService)
	role := middleware.RequireRole

	api := r.Group("/api")
	{
		// Sessions (public)
		api.POST("/sessions", sessionHandler.Login)
		api.DELETE("/sessions", sessionHandler.Logout)

		// Users
		api.POST("/users", userHandler.CreateUser)
		api.PATCH("/users/:id", requireAuth, role(authz.OpUserUpdate), userHandler.UpdateUser)
		api.GET("/users", requireAuth, role(authz.OpUserList), userHandler.ListUsers)

		// Teams
		teams := api.Group("/teams")
		teams.Use(requireAuth)
		{
			teams.POST("", role(authz.OpTeamCreate), teamHandler.CreateTeam)
			teams.PUT("/:id", role(authz.OpTeamUpdate), teamHandler.UpdateTeam)
			teams.GET("", role(authz.OpTeamList), teamHandler.ListTeams)
			teams.GET("/:id/members", role(authz.OpTeamMembers), teamHandler.ListMembers)
		}

		// Team members
		members := api.Group("/team-members")
		members.Use(requireAuth)
		{
			members.POST("", role(authz.OpTeamMemberAdd), memberHandler.AddMember)
			members.DELETE("/:id", role(authz.OpTeamMemberRemove), memberHandler.RemoveMember)
		}

		// Tasks
		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("", role(authz.OpTaskList), taskHandler.ListTasks)
			tasks.POST("", role(authz.OpTaskCreate), taskHandler.CreateTask)
			tasks.GET("/:id", role(authz.OpTaskShow), taskHandler.ShowTasks)
			tasks.PATCH("/:id", role(authz.OpTaskUpdate), taskHandler.UpdateTask)
			tasks.DELETE("/:id", role(authz.OpTaskDelete), taskHandler.DeleteTask)
			tasks.GET("/:id/history", role(authz.OpTaskHistory), taskHandler.TaskHistory)
		}
	}

	return r
}
