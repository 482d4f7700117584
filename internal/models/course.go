package models

type CourseStatus string

const (
	CourseDraft     CourseStatus = "Draft"
	CoursePublished CourseStatus = "Published"
)

func (s CourseStatus) Valid() bool {
	return s == CourseDraft || s == CoursePublished
}

type Course struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Category       string       `json:"category"`
	Price          float64      `json:"price"`
	Duration       string       `json:"duration"`
	Status         CourseStatus `json:"status"`
	InstructorID   string       `json:"instructorId"`
	InstructorName string       `json:"instructorName"`
	Image          string       `json:"image,omitempty"`

	// Unowned is set on read when InstructorID no longer resolves to an account
	Unowned bool `json:"unowned,omitempty"`
}

func (c *Course) Clone() *Course {
	if c == nil {
		return nil
	}
	out := *c
	return &out
}

func (c *Course) IsPublished() bool {
	return c.Status == CoursePublished
}

// CourseInput is used for creation. Price is untyped on purpose: it is coerced by ParsePrice.
type CourseInput struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Price       any          `json:"price"`
	Duration    string       `json:"duration"`
	Status      CourseStatus `json:"status"`
	Image       string       `json:"image"`
}

// CoursePatch is a partial course update; nil fields are left untouched.
// A nil Price keeps the stored price, same as an unparsable one.
type CoursePatch struct {
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	Category    *string       `json:"category"`
	Price       any           `json:"price"`
	Duration    *string       `json:"duration"`
	Status      *CourseStatus `json:"status"`
	Image       *string       `json:"image"`
}

func (p CoursePatch) Apply(c *Course) {
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Category != nil {
		c.Category = *p.Category
	}
	if p.Duration != nil {
		c.Duration = *p.Duration
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.Image != nil {
		c.Image = *p.Image
	}
	if price, ok := ParsePrice(p.Price); ok {
		c.Price = price
	}
}
