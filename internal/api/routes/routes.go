package routes

import (
	"github.com/careerlink/jobboard/internal/api/handlers"
	"github.com/careerlink/jobboard/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

type Deps struct {
	Application  *handlers.ApplicationHandler
	Notification *handlers.NotificationHandler
	Job          *handlers.JobHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	v1 := r.Group("/api/v1")

	// Public job browsing
	v1.GET("/job/getall", d.Job.ListRecent)
	v1.GET("/job/:id", d.Job.Get)

	auth := v1.Group("/")
	auth.Use(middleware.JWTAuth())

	auth.POST("/job/post", middleware.RequireEmployer(), d.Job.Post)
	auth.GET("/job/mine", middleware.RequireEmployer(), d.Job.ListMine)

	auth.POST("/application/post", middleware.RequireJobSeeker(), d.Application.Submit)
	auth.GET("/application/jobseeker/getall", middleware.RequireJobSeeker(), d.Application.ListForJobSeeker)
	auth.GET("/application/employer/getall", middleware.RequireEmployer(), d.Application.ListForEmployer)
	auth.DELETE("/application/delete/:id", middleware.RequireJobSeeker(), d.Application.Delete)
	auth.PUT("/application/status", middleware.RequireEmployer(), d.Application.UpdateStatus)
	auth.PUT("/application/interview", middleware.RequireEmployer(), d.Application.ScheduleInterview)
	auth.POST("/application/followup", d.Application.SendFollowUp)

	auth.GET("/notifications", d.Notification.List)
	auth.PUT("/notifications/read", d.Notification.MarkRead)
}
