package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Notice levels double as flash keys in the session.
const (
	NoticeSuccess = "success"
	NoticeError   = "error"
	NoticeWarning = "warning"
	NoticeInfo    = "info"
)

var noticeLevels = []string{NoticeSuccess, NoticeError, NoticeWarning, NoticeInfo}

// AddNotice queues a one-shot message for the next request.
func AddNotice(c *gin.Context, level, message string) {
	sessions.Default(c).AddFlash(message, level)
}

// RedirectWithNotice queues message, saves the session and redirects with 303.
func RedirectWithNotice(c *gin.Context, level, message, location string) {
	AddNotice(c, level, message)
	Redirect(c, location)
}

// Redirect saves the session and redirects with 303 See Other.
func Redirect(c *gin.Context, location string) {
	saveSession(c, sessions.Default(c))
	c.Redirect(http.StatusSeeOther, location)
}

// saveSession persists session. A failure is attached to the request so
// RequestLogger reports it.
func saveSession(c *gin.Context, session sessions.Session) {
	if err := session.Save(); err != nil {
		_ = c.Error(fmt.Errorf("save session: %w", err))
	}
}

// Notice is a popped flash message.
type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// PopNotices drains every queued message. Each message is returned once.
func PopNotices(c *gin.Context) ([]Notice, error) {
	session := sessions.Default(c)
	notices := make([]Notice, 0)
	for _, level := range noticeLevels {
		for _, flash := range session.Flashes(level) {
			if message, ok := flash.(string); ok {
				notices = append(notices, Notice{Level: level, Message: message})
			}
		}
	}
	return notices, session.Save()
}
