package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/homebase/internal/database"
	apierrors "github.com/yukikurage/homebase/internal/errors"
	"github.com/yukikurage/homebase/internal/middleware"
)

// Notices pops every queued flash message of the session.
func Notices(c *gin.Context) {
	notices, err := middleware.PopNotices(c)
	if err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"notices": notices})
}

// Health reports ok once the database answers a ping.
func Health(c *gin.Context) {
	db := database.GetDB()
	if db == nil {
		apierrors.ServiceUnavailable(c, "database is not connected")
		return
	}
	sqlDB, err := db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		apierrors.ServiceUnavailable(c, "database is unreachable")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Homebase is running",
	})
}
