package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"

	"neuroscreen-backend/internal/model"
)

// ReportService projects a session's result set into exportable forms: the
// flat CSV record, the chart data handed to the bar-chart renderer, and a
// printable PDF. Nothing is cached; every export re-derives from the session.
type ReportService interface {
	BuildReport(sess *model.Session) ([]model.ReportRow, error)
	WriteCSV(w io.Writer, rows []model.ReportRow) error
	ChartData(sess *model.Session) (*ChartData, error)
	GeneratePDF(sess *model.Session) ([]byte, error)
}

// ChartData carries the two parallel sequences the bar chart consumes, in the
// order of the current assessment selection.
type ChartData struct {
	Disorders []model.Disorder `json:"disorders"`
	Scores    []float64        `json:"scores"`
	Colors    []string         `json:"colors"`
}

// CSVHeader is the fixed header row of the downloadable report.
var CSVHeader = []string{"Disorder", "Risk_Score", "Confidence", "Assessment_Date"}

var chartColors = map[model.Disorder]string{
	model.DisorderADHD:       "#4A90E2",
	model.DisorderSPCD:       "#E67E22",
	model.DisorderASD:        "#9B59B6",
	model.DisorderAnxiety:    "#F39C12",
	model.DisorderDepression: "#50C878",
}

type reportService struct{}

func NewReportService() ReportService {
	return &reportService{}
}

// BuildReport returns one row per disorder in the current result set, in
// selection order. The Confidence column stays unset: no scoring path
// produces one.
func (s *reportService) BuildReport(sess *model.Session) ([]model.ReportRow, error) {
	sess.Lock()
	defer sess.Unlock()

	if sess.Results == nil {
		return nil, model.ErrResultsNotReady
	}
	date := time.Now().Format("2006-01-02")
	rows := make([]model.ReportRow, 0, len(sess.Selected))
	for _, disorder := range sess.Selected {
		score, ok := sess.Results.Scores[disorder]
		if !ok {
			continue
		}
		rows = append(rows, model.ReportRow{
			Disorder:       disorder,
			RiskScore:      score,
			AssessmentDate: date,
		})
	}
	return rows, nil
}

// WriteCSV serializes report rows with the fixed header. A never-populated
// Confidence serializes as an empty cell.
func (s *reportService) WriteCSV(w io.Writer, rows []model.ReportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, row := range rows {
		confidence := ""
		if row.Confidence != nil {
			confidence = strconv.FormatFloat(*row.Confidence, 'g', -1, 64)
		}
		record := []string{
			string(row.Disorder),
			strconv.FormatFloat(row.RiskScore, 'g', -1, 64),
			confidence,
			row.AssessmentDate,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ChartData extracts the disorder/score parallel sequences for the risk
// profile bar chart.
func (s *reportService) ChartData(sess *model.Session) (*ChartData, error) {
	sess.Lock()
	defer sess.Unlock()

	if sess.Results == nil {
		return nil, model.ErrResultsNotReady
	}
	data := &ChartData{}
	for _, disorder := range sess.Selected {
		score, ok := sess.Results.Scores[disorder]
		if !ok {
			continue
		}
		data.Disorders = append(data.Disorders, disorder)
		data.Scores = append(data.Scores, score)
		data.Colors = append(data.Colors, chartColors[disorder])
	}
	return data, nil
}

// GeneratePDF renders the printable report: participant demographics, the
// per-disorder severity table and the horizontal risk-profile bars.
func (s *reportService) GeneratePDF(sess *model.Session) ([]byte, error) {
	sess.Lock()
	if sess.Results == nil {
		sess.Unlock()
		return nil, model.ErrResultsNotReady
	}
	age := sess.Age
	gender := sess.Gender
	mode := sess.Results.Mode
	type entry struct {
		disorder model.Disorder
		score    float64
		result   model.SeverityResult
	}
	var entries []entry
	for _, disorder := range sess.Selected {
		result, ok := sess.Results.Severities[disorder]
		if !ok {
			continue
		}
		entries = append(entries, entry{disorder, sess.Results.Scores[disorder], result})
	}
	sess.Unlock()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Cognitive Disorder Screening Report")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Date: %s    Mode: %s", time.Now().Format("2006-01-02"), mode))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Age: %d    Gender: %s", age, gender))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Disorder Assessment Results")
	pdf.Ln(9)

	pdf.SetFont("Arial", "B", 10)
	headers := []struct {
		label string
		width float64
	}{
		{"Disorder", 35}, {"Severity", 25}, {"Score", 25}, {"Percentage", 28}, {"Threshold", 25}, {"Threshold Met", 32},
	}
	for _, h := range headers {
		pdf.CellFormat(h.width, 8, h.label, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, e := range entries {
		met := "No"
		if e.result.MeetsThreshold {
			met = "Yes"
		}
		pdf.CellFormat(35, 8, string(e.disorder), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, string(e.result.Severity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%d/%d", e.result.RawScore, e.result.MaxScore), "1", 0, "C", false, 0, "")
		pdf.CellFormat(28, 8, fmt.Sprintf("%.1f%%", e.result.Percentage), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 8, strconv.Itoa(e.result.Threshold), "1", 0, "C", false, 0, "")
		pdf.CellFormat(32, 8, met, "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Disorder Risk Profile")
	pdf.Ln(10)

	// Horizontal bars, one per disorder, width proportional to the
	// normalized score on a 120mm full scale.
	const fullBar = 120.0
	pdf.SetFont("Arial", "", 10)
	for _, e := range entries {
		r, g, b := hexToRGB(chartColors[e.disorder])
		pdf.Cell(30, 7, string(e.disorder))
		x, y := pdf.GetXY()
		pdf.SetFillColor(r, g, b)
		pdf.Rect(x, y+1, fullBar*e.score, 5, "F")
		pdf.SetDrawColor(120, 120, 120)
		pdf.Rect(x, y+1, fullBar, 5, "D")
		pdf.SetXY(x+fullBar+4, y)
		pdf.Cell(20, 7, fmt.Sprintf("%.1f%%", e.score*100))
		pdf.Ln(9)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF report: %w", err)
	}
	return buf.Bytes(), nil
}

func hexToRGB(hex string) (int, int, int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 74, 144, 226
	}
	r, _ := strconv.ParseInt(hex[1:3], 16, 0)
	g, _ := strconv.ParseInt(hex[3:5], 16, 0)
	b, _ := strconv.ParseInt(hex[5:7], 16, 0)
	return int(r), int(g), int(b)
}
