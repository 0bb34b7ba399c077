package controller

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"neuroscreen-backend/internal/config"
	"neuroscreen-backend/internal/model"
	"neuroscreen-backend/internal/service"
	"neuroscreen-backend/utilities"
)

type ScreeningController struct {
	screeningService service.ScreeningService
	upload           config.UploadConfig
}

func NewScreeningController(screeningService service.ScreeningService, upload config.UploadConfig) *ScreeningController {
	return &ScreeningController{screeningService: screeningService, upload: upload}
}

type submitRequest struct {
	Page    model.Page          `json:"page" binding:"required"`
	Payload model.SubmitPayload `json:"payload"`
}

type navigateRequest struct {
	Page model.Page `json:"page" binding:"required"`
}

// Submit handles POST /screening/submit
func (sc *ScreeningController) Submit(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		return
	}
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	page, err := sc.screeningService.Submit(sess, req.Page, req.Payload)
	if err != nil {
		respondScreeningError(c, page, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page})
}

// Navigate handles POST /screening/navigate
func (sc *ScreeningController) Navigate(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		return
	}
	var req navigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	page, err := sc.screeningService.Navigate(sess, req.Page)
	if err != nil {
		respondScreeningError(c, page, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page})
}

// Reset handles POST /screening/reset
func (sc *ScreeningController) Reset(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		return
	}
	page := sc.screeningService.Reset(sess)
	c.JSON(http.StatusOK, gin.H{"page": page})
}

// State handles GET /screening/state
func (sc *ScreeningController) State(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		return
	}
	sess.Lock()
	defer sess.Unlock()
	c.JSON(http.StatusOK, sess)
}

// PageView handles GET /screening/pages/:page
func (sc *ScreeningController) PageView(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		return
	}
	page := model.Page(c.Param("page"))
	view, err := sc.screeningService.PageView(sess, page)
	if err != nil {
		respondScreeningError(c, page, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UploadAudio handles POST /screening/audio. It is the file upload
// collaborator: format filtering and size capping happen here, and only the
// already-read bytes reach the core.
func (sc *ScreeningController) UploadAudio(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		return
	}
	question := c.PostForm("question")
	if question == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing question field"})
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing audio file"})
		return
	}
	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != sc.upload.AllowedExtension {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Only " + sc.upload.AllowedExtension + " uploads are accepted"})
		return
	}
	if header.Size > sc.upload.MaxAudioBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Audio file too large"})
		return
	}
	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, sc.upload.MaxAudioBytes+1))
	if err != nil || int64(len(data)) > sc.upload.MaxAudioBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Audio file too large"})
		return
	}
	if err := sc.screeningService.StoreAudio(sess, question, data); err != nil {
		respondScreeningError(c, sess.Page, err)
		return
	}
	utilities.Info("stored audio answer (%d bytes) for session %s", len(data), sess.ID)
	c.JSON(http.StatusOK, gin.H{"uploaded": true, "question": question})
}

// respondScreeningError maps the error taxonomy onto HTTP statuses:
// guard failures are 422, results-not-ready is a 409 warning, everything
// else is a 500. The unchanged current page rides along.
func respondScreeningError(c *gin.Context, page model.Page, err error) {
	switch {
	case model.IsValidation(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "page": page})
	case errors.Is(err, model.ErrResultsNotReady):
		c.JSON(http.StatusConflict, gin.H{"warning": err.Error(), "page": page})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// sessionFromContext pulls the session the middleware resolved; a miss means
// the middleware already wrote the response.
func sessionFromContext(c *gin.Context) *model.Session {
	val, exists := c.Get("session")
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": model.ErrUnknownSession.Error()})
		return nil
	}
	sess, ok := val.(*model.Session)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid session context"})
		return nil
	}
	return sess
}
