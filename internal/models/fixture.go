package models

// Fixture is the static seed document (db.json)
type Fixture struct {
	Users     []FixtureUser   `json:"users"`
	Courses   []FixtureCourse `json:"courses"`
	SiteStats SiteStats       `json:"siteStats"`
}

// FixtureUser mirrors Account but carries the plaintext seed password
type FixtureUser struct {
	ID              string        `json:"id"`
	Username        string        `json:"username"`
	Password        string        `json:"password"`
	Email           string        `json:"email"`
	Role            AccountRole   `json:"role"`
	Status          AccountStatus `json:"status"`
	Joined          string        `json:"joined"`
	EnrolledCourses []string      `json:"enrolledCourses"`
}

// FixtureCourse accepts loosely typed prices the same way course creation does
type FixtureCourse struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Category       string       `json:"category"`
	Price          any          `json:"price"`
	Duration       string       `json:"duration"`
	Status         CourseStatus `json:"status"`
	InstructorID   string       `json:"instructorId"`
	InstructorName string       `json:"instructorName"`
	Image          string       `json:"image"`
}

// Course converts the seed row; an unusable price becomes 0
func (f FixtureCourse) Course() *Course {
	price, _ := ParsePrice(f.Price)
	status := f.Status
	if !status.Valid() {
		status = CourseDraft
	}
	return &Course{
		ID:             f.ID,
		Title:          f.Title,
		Description:    f.Description,
		Category:       f.Category,
		Price:          price,
		Duration:       f.Duration,
		Status:         status,
		InstructorID:   f.InstructorID,
		InstructorName: f.InstructorName,
		Image:          f.Image,
	}
}

type SiteStats struct {
	TotalRevenue float64 `json:"totalRevenue"`
}
