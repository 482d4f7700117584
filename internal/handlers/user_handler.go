package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/learnhub-service/internal/models"
	"github.com/SAP-F-2025/learnhub-service/internal/services"
	"github.com/SAP-F-2025/learnhub-service/internal/utils"
)

type UserHandler struct {
	BaseHandler
	service services.AccountService
}

func NewUserHandler(service services.AccountService, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ListUsers lists every account
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} models.Account
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	h.LogRequest(c, "Listing users")

	users, err := h.service.List(c.Request.Context(), GetUserFromContext(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetUser returns one account
// @Summary Get user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.Account
// @Failure 404 {object} ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id := c.Param("id")
	h.LogRequest(c, "Getting user", "target_id", id)

	user, err := h.service.Get(c.Request.Context(), GetUserFromContext(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateUser applies a partial update
// @Summary Update user
// @Description Admins may update anyone; users may update themselves but not their role or status
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body models.UpdateAccountRequest true "Fields to change"
// @Success 200 {object} models.Account
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id := c.Param("id")
	h.LogRequest(c, "Updating user", "target_id", id)

	var req models.UpdateAccountRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.service.Update(c.Request.Context(), GetUserFromContext(c), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	// Editing your own record updates the signed-in identity in place
	if actor := GetUserFromContext(c); actor != nil && actor.ID == user.ID {
		if session, err := GetSessionFromContext(c); err == nil {
			if err := session.UpdateCurrent(c.Request.Context(), req.Patch()); err != nil {
				h.LogError(c, err, "Failed to update session after self edit")
			}
		}
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser removes an account. Courses it taught are kept.
// @Summary Delete user
// @Tags users
// @Param id path string true "User ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	h.LogRequest(c, "Deleting user", "target_id", id)

	if err := h.service.Delete(c.Request.Context(), GetUserFromContext(c), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
