package handlers

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/learnhub-service/internal/models"
	"github.com/SAP-F-2025/learnhub-service/internal/repositories"
	"github.com/SAP-F-2025/learnhub-service/internal/services"
	"github.com/SAP-F-2025/learnhub-service/internal/utils"
)

// SessionHeader names the header carrying the session scope
const SessionHeader = "X-Session-ID"

// SessionAuthMiddleware resolves the caller's session from SessionHeader
type SessionAuthMiddleware struct {
	sessions *services.SessionManager
	accounts repositories.AccountRepository
	logger   utils.Logger
}

func NewSessionAuthMiddleware(sessions *services.SessionManager, accounts repositories.AccountRepository, logger utils.Logger) *SessionAuthMiddleware {
	return &SessionAuthMiddleware{
		sessions: sessions,
		accounts: accounts,
		logger:   logger,
	}
}

// SessionMiddleware opens the session for every request. A persisted identity
// is reloaded from the record cache so role or enrollment changes show up at
// once; an identity whose account is gone is logged out.
func (m *SessionAuthMiddleware) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		session := m.sessions.Open(ctx, c.GetHeader(SessionHeader))
		c.Set("session", session)

		if current := session.Current(); current != nil {
			acc, err := m.accounts.GetByID(ctx, current.ID)
			switch {
			case err == nil:
				if err := session.Refresh(ctx, acc); err != nil {
					utils.FromContext(c, m.logger).Warn("Failed to refresh session", "error", err)
				}
				setUser(c, session.Current())
			case repositories.IsNotFoundError(err):
				if err := session.Logout(ctx); err != nil {
					utils.FromContext(c, m.logger).Warn("Failed to drop stale session", "error", err)
				}
			default:
				utils.FromContext(c, m.logger).Error("Failed to load session account", "error", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"})
				return
			}
		}

		c.Next()
	}
}

// AuthMiddleware rejects anonymous callers
func (m *SessionAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("user"); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: services.MsgNotAuthenticated,
			})
			return
		}
		c.Next()
	}
}

// RequireRoleMiddleware checks if user has required role. Admins always pass.
func (m *SessionAuthMiddleware) RequireRoleMiddleware(requiredRoles ...models.AccountRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := GetUserRoleFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: services.MsgNotAuthenticated,
			})
			return
		}

		if role != models.RoleAdmin && !slices.Contains(requiredRoles, role) {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Message: "Access denied",
				Details: fmt.Sprintf("insufficient permissions, required role: %v", requiredRoles),
			})
			return
		}

		c.Next()
	}
}

func setUser(c *gin.Context, acc *models.Account) {
	if acc == nil {
		return
	}
	c.Set("user", acc)
	c.Set("user_id", acc.ID)
	c.Set("user_role", acc.Role)
}

// GetSessionFromContext returns the session opened by SessionMiddleware
func GetSessionFromContext(c *gin.Context) (*services.Session, error) {
	v, exists := c.Get("session")
	if !exists {
		return nil, fmt.Errorf("session not found in context")
	}
	session, ok := v.(*services.Session)
	if !ok {
		return nil, fmt.Errorf("invalid session type in context")
	}
	return session, nil
}

// GetUserFromContext returns the signed-in account, or nil when anonymous
func GetUserFromContext(c *gin.Context) *models.Account {
	v, exists := c.Get("user")
	if !exists {
		return nil
	}
	acc, _ := v.(*models.Account)
	return acc
}

// GetUserRoleFromContext extracts user role from Gin context
func GetUserRoleFromContext(c *gin.Context) (models.AccountRole, error) {
	userRole, exists := c.Get("user_role")
	if !exists {
		return "", fmt.Errorf("user role not found in context")
	}

	role, ok := userRole.(models.AccountRole)
	if !ok {
		return "", fmt.Errorf("invalid user role type in context")
	}

	return role, nil
}
