package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"neuroscreen-backend/internal/repository"
)

type SessionController struct {
	sessionRepo repository.SessionRepository
}

func NewSessionController(sessionRepo repository.SessionRepository) *SessionController {
	return &SessionController{sessionRepo: sessionRepo}
}

// Create handles POST /sessions: starts a fresh screening session on the
// welcome page and hands back its identifier.
func (sc *SessionController) Create(c *gin.Context) {
	sess := sc.sessionRepo.Create()
	c.JSON(http.StatusCreated, gin.H{"session_id": sess.ID, "page": sess.Page})
}
