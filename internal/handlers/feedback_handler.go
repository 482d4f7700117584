package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/learnhub-service/internal/models"
	"github.com/SAP-F-2025/learnhub-service/internal/services"
	"github.com/SAP-F-2025/learnhub-service/internal/utils"
)

type FeedbackHandler struct {
	BaseHandler
	service services.FeedbackService
}

func NewFeedbackHandler(service services.FeedbackService, logger utils.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ListFeedback returns all feedback, newest first
// @Summary List feedback
// @Tags feedback
// @Produce json
// @Success 200 {array} models.FeedbackItem
// @Router /feedback [get]
func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateFeedback
// @Summary Submit feedback
// @Tags feedback
// @Accept json
// @Produce json
// @Param request body models.CreateFeedbackRequest true "Feedback"
// @Success 201 {object} models.FeedbackItem
// @Failure 400 {object} ErrorResponse
// @Router /feedback [post]
func (h *FeedbackHandler) CreateFeedback(c *gin.Context) {
	var req models.CreateFeedbackRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateFeedback
// @Summary Update feedback
// @Tags feedback
// @Accept json
// @Produce json
// @Param id path int true "Feedback ID"
// @Param request body models.FeedbackPatch true "Fields to change"
// @Success 200 {object} models.FeedbackItem
// @Failure 404 {object} ErrorResponse
// @Router /feedback/{id} [put]
func (h *FeedbackHandler) UpdateFeedback(c *gin.Context) {
	id, ok := h.parseInt64Param(c, "id")
	if !ok {
		return
	}

	var patch models.FeedbackPatch
	if !h.bindJSON(c, &patch) {
		return
	}

	item, err := h.service.Update(c.Request.Context(), id, &patch)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteFeedback
// @Summary Delete feedback
// @Tags feedback
// @Param id path int true "Feedback ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /feedback/{id} [delete]
func (h *FeedbackHandler) DeleteFeedback(c *gin.Context) {
	id, ok := h.parseInt64Param(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
