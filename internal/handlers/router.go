package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/learnhub-service/internal/models"
	"github.com/SAP-F-2025/learnhub-service/internal/repositories"
	"github.com/SAP-F-2025/learnhub-service/internal/services"
	"github.com/SAP-F-2025/learnhub-service/internal/utils"
)

type HandlerManager struct {
	authHandler      *AuthHandler
	userHandler      *UserHandler
	courseHandler    *CourseHandler
	dashboardHandler *DashboardHandler
	feedbackHandler  *FeedbackHandler
	authMiddleware   *SessionAuthMiddleware
	serviceManager   services.ServiceManager
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	accounts repositories.AccountRepository,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:      NewAuthHandler(serviceManager.Sessions(), logger),
		userHandler:      NewUserHandler(serviceManager.Account(), logger),
		courseHandler:    NewCourseHandler(serviceManager.Course(), serviceManager.Enrollment(), serviceManager.Analytics(), logger),
		dashboardHandler: NewDashboardHandler(serviceManager.Analytics(), logger),
		feedbackHandler:  NewFeedbackHandler(serviceManager.Feedback(), logger),
		authMiddleware:   NewSessionAuthMiddleware(serviceManager.Sessions(), accounts, logger),
		serviceManager:   serviceManager,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.HealthCheck)

	// every API route resolves the caller's session; groups below decide what they require
	v1 := router.Group("/api/v1")
	v1.Use(hm.authMiddleware.SessionMiddleware())

	requireAuth := hm.authMiddleware.AuthMiddleware()
	requireAdmin := hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin)
	requireFaculty := hm.authMiddleware.RequireRoleMiddleware(models.RoleFaculty)
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", hm.authHandler.Register)
			auth.POST("/login", hm.authHandler.Login)
			auth.POST("/logout", hm.authHandler.Logout)
			auth.GET("/me", hm.authHandler.Me)
		}

		users := v1.Group("/users")
		users.Use(requireAuth)
		{
			users.GET("", requireAdmin, hm.userHandler.ListUsers)
			users.GET("/:id", hm.userHandler.GetUser)
			users.PUT("/:id", hm.userHandler.UpdateUser)
			users.DELETE("/:id", requireAdmin, hm.userHandler.DeleteUser)
		}

		courses := v1.Group("/courses")
		{
			// Public catalogue
			courses.GET("", hm.courseHandler.ListCourses)
			courses.GET("/categories", hm.courseHandler.GetCategories)
			courses.GET("/:id", hm.courseHandler.GetCourse)

			// Admin only
			courses.GET("/all", requireAuth, requireAdmin, hm.courseHandler.ListAllCourses)

			// Faculty and admins; ownership is checked by the service
			courses.POST("", requireAuth, requireFaculty, hm.courseHandler.CreateCourse)
			courses.PUT("/:id", requireAuth, requireFaculty, hm.courseHandler.UpdateCourse)
			courses.DELETE("/:id", requireAuth, requireFaculty, hm.courseHandler.DeleteCourse)
			courses.GET("/:id/students", requireAuth, requireFaculty, hm.courseHandler.GetCourseStudents)

			// Any signed-in account
			courses.POST("/:id/enroll", requireAuth, hm.courseHandler.Enroll)
			courses.DELETE("/:id/enroll", requireAuth, hm.courseHandler.Unenroll)
		}

		v1.GET("/faculty/:id/courses", requireAuth, requireFaculty, hm.courseHandler.GetInstructorCourses)
		v1.GET("/me/courses", requireAuth, hm.courseHandler.MyCourses)

		admin := v1.Group("/admin")
		admin.Use(requireAuth, requireAdmin)
		{
			admin.GET("/stats", hm.dashboardHandler.GetDashboardStats)
			admin.GET("/analytics", hm.dashboardHandler.GetAnalytics)
			admin.GET("/analytics/export", hm.dashboardHandler.ExportAnalytics)
		}

		feedback := v1.Group("/feedback")
		{
			feedback.GET("", hm.feedbackHandler.ListFeedback)
			feedback.POST("", hm.feedbackHandler.CreateFeedback)
			feedback.PUT("/:id", hm.feedbackHandler.UpdateFeedback)
			feedback.DELETE("/:id", hm.feedbackHandler.DeleteFeedback)
		}
	}
}

// HealthCheck reports whether the record cache and optional redis are reachable
func (hm *HandlerManager) HealthCheck(c *gin.Context) {
	status, code := "healthy", http.StatusOK
	body := gin.H{
		"service":   "learnhub-service",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
		status, code = "unhealthy", http.StatusServiceUnavailable
		body["error"] = err.Error()
	}
	body["status"] = status
	c.JSON(code, body)
}
