package services

import (
	"errors"
	"fmt"
)

// Generic service errors
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account inactive")
)

// Feedback errors
var (
	ErrFeedbackNotFound = errors.New("feedback not found")
)

// Messages surfaced to callers
const (
	MsgInvalidCredentials = "Invalid username or password"
	MsgAccountInactive    = "Your account is inactive. Please contact support."
	MsgNotAuthenticated   = "User not authenticated"
	MsgFeedbackNotFound   = "Feedback not found"
)

// ServiceError pairs an error kind with the message shown to the caller
type ServiceError struct {
	Kind    error
	Message string
}

func (e *ServiceError) Error() string { return e.Message }

func (e *ServiceError) Unwrap() error { return e.Kind }

func newServiceError(kind error, message string) error {
	return &ServiceError{Kind: kind, Message: message}
}

// PermissionError describes a denied action on a resource
type PermissionError struct {
	UserID     string
	ResourceID string
	Resource   string
	Action     string
	Reason     string
}

func NewPermissionError(userID, resourceID, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}

func (e *PermissionError) Error() string {
	if e.ResourceID == "" {
		return fmt.Sprintf("user %s cannot %s %s: %s", e.UserID, e.Action, e.Resource, e.Reason)
	}
	return fmt.Sprintf("user %s cannot %s %s %s: %s", e.UserID, e.Action, e.Resource, e.ResourceID, e.Reason)
}

func (e *PermissionError) Is(target error) bool {
	return target == ErrForbidden
}
