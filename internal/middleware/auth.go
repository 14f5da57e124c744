package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/homebase/internal/constants"
	"github.com/yukikurage/homebase/internal/database"
	"github.com/yukikurage/homebase/internal/models"
)

const (
	MsgStaffOnly     = "Staff이상 사용자만 접근이 가능합니다."
	MsgSuperuserOnly = "관리자만 접근이 가능합니다."
)

// LoginURL returns the login page with next pointing back at the current request.
func LoginURL(c *gin.Context) string {
	return constants.LoginPath + "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
}

// loadUser resolves the session user. A session pointing at a deleted user
// is cleared.
func loadUser(c *gin.Context) (*models.User, bool) {
	session := sessions.Default(c)
	id, ok := session.Get(constants.ContextKeyUserID).(uint64)
	if !ok || id == 0 {
		return nil, false
	}

	var user models.User
	if err := database.GetDB().Preload("Profile").First(&user, id).Error; err != nil {
		session.Delete(constants.ContextKeyUserID)
		saveSession(c, session)
		return nil, false
	}

	c.Set(constants.ContextKeyUserID, user.ID)
	c.Set(constants.ContextKeyUser, &user)
	return &user, true
}

// RequireAuth checks if the user is authenticated via session. Anonymous
// callers are redirected to the login page.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := loadUser(c); !ok {
			c.Redirect(http.StatusFound, LoginURL(c))
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth loads the session user when there is one and never blocks.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		loadUser(c)
		c.Next()
	}
}

// RequireStaff must run after RequireAuth.
func RequireStaff() gin.HandlerFunc {
	return requireRole(func(u *models.User) bool { return u.IsStaff || u.IsSuperuser }, MsgStaffOnly)
}

// RequireSuperuser must run after RequireAuth.
func RequireSuperuser() gin.HandlerFunc {
	return requireRole(func(u *models.User) bool { return u.IsSuperuser }, MsgSuperuserOnly)
}

func requireRole(allowed func(*models.User) bool, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUser(c)
		if !ok {
			c.Redirect(http.StatusFound, LoginURL(c))
			c.Abort()
			return
		}
		if !allowed(user) {
			RedirectWithNotice(c, NoticeError, message, RefererOr(c, constants.RootPath))
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetUser retrieves the user loaded by RequireAuth or OptionalAuth
func GetUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok && user != nil
}

// RefererOr returns the Referer header, or fallback when the request has none.
func RefererOr(c *gin.Context, fallback string) string {
	if referer := c.GetHeader("Referer"); referer != "" {
		return referer
	}
	return fallback
}
