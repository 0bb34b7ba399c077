package controller

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"neuroscreen-backend/internal/model"
	"neuroscreen-backend/internal/service"
)

type ResultsController struct {
	reportService service.ReportService
}

func NewResultsController(reportService service.ReportService) *ResultsController {
	return &ResultsController{reportService: reportService}
}

// GetResults handles GET /results
func (rc *ResultsController) GetResults(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		return
	}
	sess.Lock()
	defer sess.Unlock()
	if sess.Results == nil {
		c.JSON(http.StatusConflict, gin.H{"warning": model.ErrResultsNotReady.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"age":                  sess.Age,
		"gender":               sess.Gender,
		"selected_assessments": sess.Selected,
		"results":              sess.Results,
	})
}

// GetChart handles GET /results/chart
func (rc *ResultsController) GetChart(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		return
	}
	data, err := rc.reportService.ChartData(sess)
	if err != nil {
		respondReportError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// DownloadCSV handles GET /results/report.csv
func (rc *ResultsController) DownloadCSV(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		return
	}
	rows, err := rc.reportService.BuildReport(sess)
	if err != nil {
		respondReportError(c, err)
		return
	}
	var buf bytes.Buffer
	if err := rc.reportService.WriteCSV(&buf, rows); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", "attachment; filename=assessment_results.csv")
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// DownloadPDF handles GET /results/report.pdf
func (rc *ResultsController) DownloadPDF(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		return
	}
	content, err := rc.reportService.GeneratePDF(sess)
	if err != nil {
		respondReportError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=assessment_report.pdf")
	c.Data(http.StatusOK, "application/pdf", content)
}

func respondReportError(c *gin.Context, err error) {
	if errors.Is(err, model.ErrResultsNotReady) {
		c.JSON(http.StatusConflict, gin.H{"warning": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
