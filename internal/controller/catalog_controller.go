package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"neuroscreen-backend/internal/catalog"
)

type CatalogController struct{}

func NewCatalogController() *CatalogController {
	return &CatalogController{}
}

// GetCatalog handles GET /catalog: the full read-only instrument definition.
func (cc *CatalogController) GetCatalog(c *gin.Context) {
	var instruments []gin.H
	for _, disorder := range catalog.Disorders {
		spec := catalog.MustSpec(disorder)
		instruments = append(instruments, gin.H{
			"disorder":  disorder,
			"questions": catalog.MustQuestions(disorder),
			"max_score": spec.MaxScore,
			"threshold": spec.Threshold,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"instruments":   instruments,
		"rating_labels": catalog.RatingLabels,
	})
}
