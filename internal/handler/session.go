package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionIDKey = "session_id"

// FlashStore keeps one-shot messages per session.
type FlashStore interface {
	PushFlash(ctx context.Context, sessionID string, message string) error
	PopFlashes(ctx context.Context, sessionID string) ([]string, error)
}

// Session makes sure every request carries a session id cookie.
func Session(cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(cookieName)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cookieName, id, 0, "/", "", false, true)
		}
		c.Set(sessionIDKey, id)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}
