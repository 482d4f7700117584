package models

import "slices"

type AccountRole string

const (
	RoleUser    AccountRole = "user"
	RoleFaculty AccountRole = "faculty"
	RoleAdmin   AccountRole = "admin"
)

// Roles lists every role in display order
var Roles = []AccountRole{RoleAdmin, RoleFaculty, RoleUser}

func (r AccountRole) Valid() bool {
	return slices.Contains(Roles, r)
}

type AccountStatus string

const (
	AccountActive   AccountStatus = "active"
	AccountInactive AccountStatus = "inactive"
)

func (s AccountStatus) Valid() bool {
	return s == AccountActive || s == AccountInactive
}

// Account is a registered principal. PasswordHash never leaves the process.
type Account struct {
	ID              string        `json:"id"`
	Username        string        `json:"username"`
	PasswordHash    string        `json:"-"`
	Email           string        `json:"email"`
	Role            AccountRole   `json:"role"`
	Status          AccountStatus `json:"status"`
	Joined          string        `json:"joined"`
	EnrolledCourses []string      `json:"enrolledCourses"`
}

// Clone returns a deep copy so callers never alias cache-owned slices
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	out := *a
	out.EnrolledCourses = slices.Clone(a.EnrolledCourses)
	if out.EnrolledCourses == nil {
		out.EnrolledCourses = []string{}
	}
	return &out
}

func (a *Account) IsEnrolled(courseID string) bool {
	return slices.Contains(a.EnrolledCourses, courseID)
}

func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// AccountPatch carries a partial account update; nil fields are left untouched
type AccountPatch struct {
	Username *string        `json:"username,omitempty"`
	Password *string        `json:"password,omitempty"`
	Email    *string        `json:"email,omitempty"`
	Role     *AccountRole   `json:"role,omitempty"`
	Status   *AccountStatus `json:"status,omitempty"`
}

// Apply merges the patch into a. The password field is ignored here;
// hashing is the caller's concern.
func (p AccountPatch) Apply(a *Account) {
	if p.Username != nil {
		a.Username = *p.Username
	}
	if p.Email != nil {
		a.Email = *p.Email
	}
	if p.Role != nil {
		a.Role = *p.Role
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
}

// NewAccount is the input for account creation
type NewAccount struct {
	Username string
	Password string
	Email    string
	Role     AccountRole
}
