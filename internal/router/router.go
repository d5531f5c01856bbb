package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/internal/handlers"
	"github.com/taskhive-dev/taskhive/internal/middleware"
	"github.com/taskhive-dev/taskhive/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Accept", "X-Requested-With", types.AuthHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.RegisterUser)
			auth.POST("/login", handlers.LoginUser)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.PUT("/update", middleware.AuthMiddleware(), handlers.UpdateUser)
			auth.POST("/change-password", middleware.AuthMiddleware(), handlers.ChangePassword)
		}

		projects := api.Group("/projects", middleware.AuthMiddleware())
		{
			projects.GET("", handlers.ListProjects)
			projects.POST("", handlers.CreateProject)
			projects.GET("/:project_id", middleware.RequireProjectMember(), handlers.GetProject)
			projects.POST("/:project_id/share", middleware.RequireProjectOwner(), handlers.ShareProject)
			projects.DELETE("/:project_id", middleware.RequireProjectOwner(), handlers.DeleteProject)

			// Board endpoints
			projects.GET("/:project_id/tasks", middleware.RequireProjectMember(), handlers.ListTasks)
			projects.POST("/:project_id/tasks", middleware.RequireProjectEditor(), handlers.CreateTask)
			projects.PUT("/:project_id/tasks/:task_id", middleware.RequireProjectEditor(), handlers.UpdateTask)
			projects.DELETE("/:project_id/tasks/:task_id", middleware.RequireProjectEditor(), handlers.DeleteTask)
		}

		notifications := api.Group("/notifications", middleware.AuthMiddleware())
		{
			notifications.GET("", handlers.ListNotifications)
			notifications.POST("/mark-read", handlers.MarkNotificationsRead)
		}
	}

	return r
}
