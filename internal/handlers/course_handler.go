package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/learnhub-service/internal/models"
	"github.com/SAP-F-2025/learnhub-service/internal/services"
	"github.com/SAP-F-2025/learnhub-service/internal/utils"
)

type CourseHandler struct {
	BaseHandler
	courses     services.CourseService
	enrollments services.EnrollmentService
	analytics   services.AnalyticsService
}

func NewCourseHandler(courses services.CourseService, enrollments services.EnrollmentService, analytics services.AnalyticsService, logger utils.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler: NewBaseHandler(logger),
		courses:     courses,
		enrollments: enrollments,
		analytics:   analytics,
	}
}

// ===== CATALOGUE =====

// ListCourses returns published courses
// @Summary List published courses
// @Tags courses
// @Produce json
// @Success 200 {array} models.Course
// @Router /courses [get]
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courses.ListPublished(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

// ListAllCourses returns every course including drafts
// @Summary List all courses
// @Tags courses
// @Produce json
// @Success 200 {array} models.Course
// @Failure 403 {object} ErrorResponse
// @Router /courses/all [get]
func (h *CourseHandler) ListAllCourses(c *gin.Context) {
	h.LogRequest(c, "Listing all courses")

	courses, err := h.courses.ListAll(c.Request.Context(), GetUserFromContext(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

// GetCategories returns distinct categories of published courses
// @Summary List categories
// @Tags courses
// @Produce json
// @Success 200 {array} string
// @Router /courses/categories [get]
func (h *CourseHandler) GetCategories(c *gin.Context) {
	categories, err := h.analytics.Categories(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetCourse returns one course
// @Summary Get course
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} models.Course
// @Failure 404 {object} ErrorResponse
// @Router /courses/{id} [get]
func (h *CourseHandler) GetCourse(c *gin.Context) {
	course, err := h.courses.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// ===== MANAGEMENT =====

// CreateCourse creates a course owned by the caller
// @Summary Create course
// @Description Price accepts numbers or numeric strings; anything else is stored as 0
// @Tags courses
// @Accept json
// @Produce json
// @Param request body models.CreateCourseRequest true "Course data"
// @Success 201 {object} models.Course
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /courses [post]
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req models.CreateCourseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	h.LogRequest(c, "Creating course", "title", req.Title)

	course, err := h.courses.Create(c.Request.Context(), GetUserFromContext(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

// UpdateCourse applies a partial update
// @Summary Update course
// @Description An unparsable price leaves the stored price unchanged
// @Tags courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param request body models.UpdateCourseRequest true "Fields to change"
// @Success 200 {object} models.Course
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /courses/{id} [put]
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id := c.Param("id")
	h.LogRequest(c, "Updating course", "course_id", id)

	var req models.UpdateCourseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	course, err := h.courses.Update(c.Request.Context(), GetUserFromContext(c), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// DeleteCourse removes a course and every enrollment in it
// @Summary Delete course
// @Tags courses
// @Param id path string true "Course ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /courses/{id} [delete]
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id := c.Param("id")
	h.LogRequest(c, "Deleting course", "course_id", id)

	if err := h.courses.Delete(c.Request.Context(), GetUserFromContext(c), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetCourseStudents lists accounts enrolled in a course
// @Summary Course students
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {array} models.Account
// @Failure 403 {object} ErrorResponse
// @Router /courses/{id}/students [get]
func (h *CourseHandler) GetCourseStudents(c *gin.Context) {
	students, err := h.courses.Students(c.Request.Context(), GetUserFromContext(c), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, students)
}

// GetInstructorCourses lists the courses taught by a faculty member
// @Summary Instructor courses
// @Tags courses
// @Produce json
// @Param id path string true "Instructor ID"
// @Success 200 {array} models.Course
// @Failure 403 {object} ErrorResponse
// @Router /faculty/{id}/courses [get]
func (h *CourseHandler) GetInstructorCourses(c *gin.Context) {
	courses, err := h.courses.ListByInstructor(c.Request.Context(), GetUserFromContext(c), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

// ===== ENROLLMENT =====

// Enroll adds the course to the caller's enrollment set
// @Summary Enroll
// @Tags enrollment
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} models.Account
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already enrolled"
// @Router /courses/{id}/enroll [post]
func (h *CourseHandler) Enroll(c *gin.Context) {
	id := c.Param("id")
	h.LogRequest(c, "Enrolling", "course_id", id)

	acc, err := h.enrollments.Enroll(c.Request.Context(), GetUserFromContext(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.refreshSession(c, acc)
	c.JSON(http.StatusOK, acc)
}

// Unenroll removes the course from the caller's enrollment set
// @Summary Unenroll
// @Tags enrollment
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} models.Account
// @Failure 404 {object} ErrorResponse "Not enrolled"
// @Router /courses/{id}/enroll [delete]
func (h *CourseHandler) Unenroll(c *gin.Context) {
	id := c.Param("id")
	h.LogRequest(c, "Unenrolling", "course_id", id)

	acc, err := h.enrollments.Unenroll(c.Request.Context(), GetUserFromContext(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.refreshSession(c, acc)
	c.JSON(http.StatusOK, acc)
}

// MyCourses returns the caller's enrolled courses
// @Summary Enrolled courses
// @Tags enrollment
// @Produce json
// @Success 200 {array} models.Course
// @Router /me/courses [get]
func (h *CourseHandler) MyCourses(c *gin.Context) {
	courses, err := h.enrollments.EnrolledCourses(c.Request.Context(), GetUserFromContext(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

// refreshSession keeps the persisted identity in step with enrollment changes
func (h *CourseHandler) refreshSession(c *gin.Context, acc *models.Account) {
	session, err := GetSessionFromContext(c)
	if err != nil {
		return
	}
	if err := session.Refresh(c.Request.Context(), acc); err != nil {
		h.LogError(c, err, "Failed to refresh session")
	}
}
