package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/SAP-F-2025/learnhub-service/internal/models"
	"github.com/SAP-F-2025/learnhub-service/internal/services"
	"github.com/SAP-F-2025/learnhub-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	sessions *services.SessionManager
}

func NewAuthHandler(sessions *services.SessionManager, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		sessions:    sessions,
	}
}

// sessionFor returns the caller's session, or a fresh one when no session id was sent
func (h *AuthHandler) sessionFor(c *gin.Context) *services.Session {
	if id := c.GetHeader(SessionHeader); id != "" {
		if session, err := GetSessionFromContext(c); err == nil {
			return session
		}
		return h.sessions.Open(c.Request.Context(), id)
	}
	return h.sessions.Open(c.Request.Context(), uuid.NewString())
}

// Register creates an account and signs it in
// @Summary Register
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration data"
// @Success 201 {object} models.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !h.bindJSON(c, &req) {
		return
	}

	h.LogRequest(c, "Registering account", "username", req.Username)

	session := h.sessionFor(c)
	acc, err := session.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header(SessionHeader, session.Scope())
	c.JSON(http.StatusCreated, models.AuthResponse{SessionID: session.Scope(), User: acc})
}

// Login signs in with username and password
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.AuthResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Account inactive"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	h.LogRequest(c, "Login", "username", req.Username)

	session := h.sessionFor(c)
	acc, err := session.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header(SessionHeader, session.Scope())
	c.JSON(http.StatusOK, models.AuthResponse{SessionID: session.Scope(), User: acc})
}

// Logout clears the session
// @Summary Logout
// @Tags auth
// @Success 204
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	session, err := GetSessionFromContext(c)
	if err != nil {
		c.Status(http.StatusNoContent)
		return
	}

	if err := session.Logout(c.Request.Context()); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Me returns the signed-in account
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} models.Account
// @Failure 401 {object} ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	acc := GetUserFromContext(c)
	if acc == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: services.MsgNotAuthenticated})
		return
	}
	c.JSON(http.StatusOK, acc)
}
