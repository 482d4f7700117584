package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/learnhub-service/internal/models"
	"github.com/SAP-F-2025/learnhub-service/internal/repositories"
	"github.com/SAP-F-2025/learnhub-service/internal/services"
	"github.com/SAP-F-2025/learnhub-service/internal/utils"
	"github.com/SAP-F-2025/learnhub-service/internal/validator"
)

type ErrorResponse = models.ErrorResponse

// BaseHandler carries the logger shared by every handler
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs an incoming operation with the request-scoped logger
func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	l := utils.FromContext(c, h.logger)
	if userID, ok := c.Get("user_id"); ok {
		args = append(args, "user_id", userID)
	}
	l.Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	utils.FromContext(c, h.logger).Error(msg, append(args, "error", err)...)
}

func (h *BaseHandler) bindJSON(c *gin.Context, dest any) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return false
	}
	return true
}

// parseInt64Param reads a numeric path parameter, writing a 400 on failure
func (h *BaseHandler) parseInt64Param(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + name + " parameter",
			Details: err.Error(),
		})
		return 0, false
	}
	return id, true
}

// handleServiceError maps service and repository errors onto HTTP responses
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	if validationErrors, ok := validator.AsValidationErrors(err); ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrors,
		})
		return
	}

	var permissionError *services.PermissionError
	if errors.As(err, &permissionError) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Access denied",
			Details: map[string]any{
				"resource": permissionError.Resource,
				"action":   permissionError.Action,
				"reason":   permissionError.Reason,
			},
		})
		return
	}

	var recordError *repositories.RecordError
	if errors.As(err, &recordError) {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, repositories.ErrConflict):
			status = http.StatusConflict
		}
		c.JSON(status, ErrorResponse{Message: recordError.Message})
		return
	}

	var serviceError *services.ServiceError
	if errors.As(err, &serviceError) {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrUnauthorized):
			status = http.StatusUnauthorized
		case errors.Is(err, services.ErrAccountInactive), errors.Is(err, services.ErrForbidden):
			status = http.StatusForbidden
		case errors.Is(err, services.ErrFeedbackNotFound):
			status = http.StatusNotFound
		}
		c.JSON(status, ErrorResponse{Message: serviceError.Message})
		return
	}

	h.LogError(c, err, "Unexpected service error")
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Message: "Internal server error",
	})
}
