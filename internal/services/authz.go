package services

import "github.com/SAP-F-2025/learnhub-service/internal/models"

func requireActor(actor *models.Account) error {
	if actor == nil {
		return newServiceError(ErrUnauthorized, MsgNotAuthenticated)
	}
	return nil
}

func requireAdmin(actor *models.Account, resource, action string) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return NewPermissionError(actor.ID, "", resource, action, "admin role required")
	}
	return nil
}

// canManageCourse allows admins, and the owning faculty unless the course is unowned
func canManageCourse(actor *models.Account, course *models.Course) bool {
	if actor == nil {
		return false
	}
	if actor.IsAdmin() {
		return true
	}
	return !course.Unowned && actor.Role == models.RoleFaculty && course.InstructorID == actor.ID
}
