package models

// ===== AUTH DTOs =====

type RegisterRequest struct {
	Username string      `json:"username" validate:"required"`
	Password string      `json:"password" validate:"required,min=6,max=128"`
	Email    string      `json:"email" validate:"required,email"`
	Role     AccountRole `json:"role" validate:"omitempty,account_role"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	SessionID string   `json:"session_id"`
	User      *Account `json:"user"`
}

// ===== ACCOUNT DTOs =====

type UpdateAccountRequest struct {
	Username *string        `json:"username" validate:"omitnil,min=1"`
	Password *string        `json:"password" validate:"omitempty,min=6,max=128"`
	Email    *string        `json:"email" validate:"omitempty,email"`
	Role     *AccountRole   `json:"role" validate:"omitempty,account_role"`
	Status   *AccountStatus `json:"status" validate:"omitempty,account_status"`
}

func (r UpdateAccountRequest) Patch() AccountPatch {
	return AccountPatch{
		Username: r.Username,
		Password: r.Password,
		Email:    r.Email,
		Role:     r.Role,
		Status:   r.Status,
	}
}

// ===== COURSE DTOs =====

type CreateCourseRequest struct {
	Title       string       `json:"title" validate:"required,min=1,max=200"`
	Description string       `json:"description" validate:"max=5000"`
	Category    string       `json:"category" validate:"required,max=100"`
	Price       any          `json:"price"`
	Duration    string       `json:"duration" validate:"max=100"`
	Status      CourseStatus `json:"status" validate:"omitempty,course_status"`
	Image       string       `json:"image" validate:"max=500"`
}

func (r CreateCourseRequest) Input() CourseInput {
	return CourseInput{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Price:       r.Price,
		Duration:    r.Duration,
		Status:      r.Status,
		Image:       r.Image,
	}
}

type UpdateCourseRequest struct {
	Title       *string       `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string       `json:"description" validate:"omitempty,max=5000"`
	Category    *string       `json:"category" validate:"omitempty,min=1,max=100"`
	Price       any           `json:"price"`
	Duration    *string       `json:"duration" validate:"omitempty,max=100"`
	Status      *CourseStatus `json:"status" validate:"omitempty,course_status"`
	Image       *string       `json:"image" validate:"omitempty,max=500"`
}

func (r UpdateCourseRequest) Patch() CoursePatch {
	return CoursePatch{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Price:       r.Price,
		Duration:    r.Duration,
		Status:      r.Status,
		Image:       r.Image,
	}
}

// ===== FEEDBACK DTOs =====

type CreateFeedbackRequest struct {
	Author  string `json:"author" validate:"required,min=1,max=100"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Message string `json:"message" validate:"required,min=10,max=2000"`
}

// ===== STATISTICS & ANALYTICS DTOs =====

// ChartSeries is a labelled series, one value per label
type ChartSeries struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

type DashboardStats struct {
	TotalUsers       int     `json:"totalUsers"`
	ActiveCourses    int     `json:"activeCourses"`
	TotalEnrollments int     `json:"totalEnrollments"`
	TotalRevenue     float64 `json:"totalRevenue"`
	FacultyCount     int     `json:"facultyCount"`
	StudentCount     int     `json:"studentCount"`
}

type DashboardResponse struct {
	Stats                 DashboardStats `json:"stats"`
	RegistrationChartData ChartSeries    `json:"registrationChartData"`
}

type AnalyticsData struct {
	RegistrationTrend          ChartSeries `json:"registrationTrend"`
	CourseCategoryDistribution ChartSeries `json:"courseCategoryDistribution"`
	TopCoursesByEnrollment     ChartSeries `json:"topCoursesByEnrollment"`
	UserRoleDistribution       ChartSeries `json:"userRoleDistribution"`
}

// ===== ERROR RESPONSES =====

type ErrorResponse struct {
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}
