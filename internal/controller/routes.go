package controller

import (
	"github.com/gin-gonic/gin"

	"neuroscreen-backend/internal/config"
	"neuroscreen-backend/internal/repository"
	"neuroscreen-backend/internal/service"
	"neuroscreen-backend/pkg/middleware"
)

// RegisterRoutes registers all route groups and their endpoints.
func RegisterRoutes(r *gin.Engine,
	cfg *config.APIConfig,
	sessionRepo repository.SessionRepository,
	screeningService service.ScreeningService,
	reportService service.ReportService,
) {
	sessionCtrl := NewSessionController(sessionRepo)
	r.POST("/sessions", sessionCtrl.Create)

	catalogCtrl := NewCatalogController()
	r.GET("/catalog", catalogCtrl.GetCatalog)

	withSession := middleware.SessionMiddleware(sessionRepo)

	screeningCtrl := NewScreeningController(screeningService, cfg.Upload)
	screeningRoutes := r.Group("/screening", withSession)
	{
		screeningRoutes.GET("/state", screeningCtrl.State)
		screeningRoutes.GET("/pages/:page", screeningCtrl.PageView)
		screeningRoutes.POST("/submit", screeningCtrl.Submit)
		screeningRoutes.POST("/navigate", screeningCtrl.Navigate)
		screeningRoutes.POST("/reset", screeningCtrl.Reset)
		screeningRoutes.POST("/audio", screeningCtrl.UploadAudio)
	}

	resultsCtrl := NewResultsController(reportService)
	resultsRoutes := r.Group("/results", withSession)
	{
		resultsRoutes.GET("/", resultsCtrl.GetResults)
		resultsRoutes.GET("/chart", resultsCtrl.GetChart)
		resultsRoutes.GET("/report.csv", resultsCtrl.DownloadCSV)
		resultsRoutes.GET("/report.pdf", resultsCtrl.DownloadPDF)
	}
}
