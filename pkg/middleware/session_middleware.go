package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"neuroscreen-backend/internal/model"
	"neuroscreen-backend/internal/repository"
)

// SessionHeader names the request header carrying the session identifier.
const SessionHeader = "X-Session-ID"

// SessionMiddleware resolves the caller's session and puts it on the gin
// context under "session". Unknown or missing IDs stop the request with 404.
func SessionMiddleware(sessionRepo repository.SessionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": model.ErrUnknownSession.Error()})
			return
		}
		sess, err := sessionRepo.Get(id)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": model.ErrUnknownSession.Error()})
			return
		}
		c.Set("session", sess)
		c.Next()
	}
}
