package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neuroscreen-backend/internal/catalog"
	"neuroscreen-backend/internal/model"
)

func severityRank(s model.Severity) int {
	switch s {
	case model.SeverityLow:
		return 0
	case model.SeverityMedium:
		return 1
	default:
		return 2
	}
}

func TestCalculateSeverity(t *testing.T) {
	t.Run("boundaries land on Medium", func(t *testing.T) {
		// Exactly 33% is Medium, not Low.
		severity, percentage := CalculateSeverity(33, 100)
		assert.Equal(t, model.SeverityMedium, severity)
		assert.InDelta(t, 33.0, percentage, 1e-9)

		// Exactly 66% is Medium, not High.
		severity, percentage = CalculateSeverity(66, 100)
		assert.Equal(t, model.SeverityMedium, severity)
		assert.InDelta(t, 66.0, percentage, 1e-9)
	})

	t.Run("clear buckets", func(t *testing.T) {
		severity, _ := CalculateSeverity(32, 100)
		assert.Equal(t, model.SeverityLow, severity)

		severity, _ = CalculateSeverity(67, 100)
		assert.Equal(t, model.SeverityHigh, severity)

		severity, _ = CalculateSeverity(0, 28)
		assert.Equal(t, model.SeverityLow, severity)

		severity, _ = CalculateSeverity(28, 28)
		assert.Equal(t, model.SeverityHigh, severity)
	})

	t.Run("monotonic in the score ratio", func(t *testing.T) {
		prev := -1
		for raw := 0; raw <= 28; raw++ {
			severity, _ := CalculateSeverity(raw, 28)
			rank := severityRank(severity)
			assert.GreaterOrEqual(t, rank, prev, "severity dropped at raw=%d", raw)
			prev = rank
		}
	})
}

func TestAnalyzeQuestionnaire(t *testing.T) {
	adhd := []model.Disorder{model.DisorderADHD}

	t.Run("all items rated 3 meets the ADHD threshold", func(t *testing.T) {
		responses := make(model.RatingResponses)
		for _, q := range catalog.MustQuestions(model.DisorderADHD) {
			responses[q] = 3
		}
		scores, severities := AnalyzeQuestionnaire(responses, adhd)

		result := severities[model.DisorderADHD]
		assert.Equal(t, 21, result.RawScore)
		assert.Equal(t, 28, result.MaxScore)
		assert.InDelta(t, 75.0, result.Percentage, 1e-9)
		assert.Equal(t, model.SeverityHigh, result.Severity)
		assert.Equal(t, 19, result.Threshold)
		assert.True(t, result.MeetsThreshold)
		assert.InDelta(t, 21.0/28.0, scores[model.DisorderADHD], 1e-12)
	})

	t.Run("entirely unanswered scores zero everywhere", func(t *testing.T) {
		all := append([]model.Disorder(nil), catalog.Disorders...)
		scores, severities := AnalyzeQuestionnaire(model.RatingResponses{}, all)
		for _, disorder := range all {
			result := severities[disorder]
			assert.Equal(t, 0, result.RawScore, "disorder %s", disorder)
			assert.Equal(t, model.SeverityLow, result.Severity, "disorder %s", disorder)
			assert.False(t, result.MeetsThreshold, "disorder %s", disorder)
			assert.Zero(t, scores[disorder], "disorder %s", disorder)
		}
	})

	t.Run("summation is order independent", func(t *testing.T) {
		questions := catalog.MustQuestions(model.DisorderDepression)
		forward := make(model.RatingResponses)
		for i, q := range questions {
			forward[q] = i % 5
		}
		backward := make(model.RatingResponses)
		for i := len(questions) - 1; i >= 0; i-- {
			backward[questions[i]] = i % 5
		}
		depression := []model.Disorder{model.DisorderDepression}
		_, a := AnalyzeQuestionnaire(forward, depression)
		_, b := AnalyzeQuestionnaire(backward, depression)
		assert.Equal(t, a, b)
	})

	t.Run("pure and repeatable", func(t *testing.T) {
		responses := model.RatingResponses{}
		for i, q := range catalog.MustQuestions(model.DisorderAnxiety) {
			responses[q] = (i + 1) % 5
		}
		anxiety := []model.Disorder{model.DisorderAnxiety}
		s1, r1 := AnalyzeQuestionnaire(responses, anxiety)
		s2, r2 := AnalyzeQuestionnaire(responses, anxiety)
		assert.Equal(t, s1, s2)
		assert.Equal(t, r1, r2)
	})

	t.Run("panics on an uncatalogued disorder", func(t *testing.T) {
		assert.Panics(t, func() {
			AnalyzeQuestionnaire(model.RatingResponses{}, []model.Disorder{"Insomnia"})
		})
	})
}

func TestAnalyzeText(t *testing.T) {
	adhd := []model.Disorder{model.DisorderADHD}
	questions := catalog.MustQuestions(model.DisorderADHD)

	t.Run("full-length answers score 1.0", func(t *testing.T) {
		responses := make(model.TextResponses)
		for _, q := range questions {
			responses[q] = strings.Repeat("a", 100)
		}
		scores, severities := AnalyzeText(responses, adhd)

		assert.Equal(t, 1.0, scores[model.DisorderADHD])
		result := severities[model.DisorderADHD]
		assert.Equal(t, 28, result.RawScore)
		assert.Equal(t, model.SeverityHigh, result.Severity)
		assert.True(t, result.MeetsThreshold)
	})

	t.Run("half-length answers land on Medium below threshold", func(t *testing.T) {
		responses := make(model.TextResponses)
		for _, q := range questions {
			responses[q] = strings.Repeat("x", 50)
		}
		scores, severities := AnalyzeText(responses, adhd)

		assert.Equal(t, 0.5, scores[model.DisorderADHD])
		result := severities[model.DisorderADHD]
		assert.Equal(t, 14, result.RawScore)
		assert.InDelta(t, 50.0, result.Percentage, 1e-9)
		assert.Equal(t, model.SeverityMedium, result.Severity)
		assert.False(t, result.MeetsThreshold)
	})

	t.Run("overlong answers clamp to 1.0", func(t *testing.T) {
		responses := make(model.TextResponses)
		for _, q := range questions {
			responses[q] = strings.Repeat("b", 500)
		}
		scores, _ := AnalyzeText(responses, adhd)
		assert.Equal(t, 1.0, scores[model.DisorderADHD])
	})

	t.Run("multibyte answers are counted in characters", func(t *testing.T) {
		responses := make(model.TextResponses)
		for _, q := range questions {
			responses[q] = strings.Repeat("é", 100)
		}
		scores, _ := AnalyzeText(responses, adhd)
		assert.Equal(t, 1.0, scores[model.DisorderADHD])
	})

	t.Run("pure and repeatable", func(t *testing.T) {
		responses := make(model.TextResponses)
		for _, q := range questions {
			responses[q] = strings.Repeat("z", 73)
		}
		s1, r1 := AnalyzeText(responses, adhd)
		s2, r2 := AnalyzeText(responses, adhd)
		assert.Equal(t, s1, s2)
		assert.Equal(t, r1, r2)
	})
}

func TestAnalyzeAudio(t *testing.T) {
	t.Run("every question uploaded scores 1.0", func(t *testing.T) {
		asd := []model.Disorder{model.DisorderASD}
		responses := make(model.AudioResponses)
		for _, q := range catalog.MustQuestions(model.DisorderASD) {
			responses[q] = []byte{0x52, 0x49, 0x46, 0x46}
		}
		scores, severities := AnalyzeAudio(responses, asd)

		assert.Equal(t, 1.0, scores[model.DisorderASD])
		result := severities[model.DisorderASD]
		assert.Equal(t, 24, result.RawScore)
		assert.Equal(t, model.SeverityHigh, result.Severity)
	})

	t.Run("no uploads scores 0.0", func(t *testing.T) {
		spcd := []model.Disorder{model.DisorderSPCD}
		scores, severities := AnalyzeAudio(model.AudioResponses{}, spcd)

		assert.Equal(t, 0.0, scores[model.DisorderSPCD])
		result := severities[model.DisorderSPCD]
		assert.Equal(t, 0, result.RawScore)
		assert.Equal(t, model.SeverityLow, result.Severity)
		assert.False(t, result.MeetsThreshold)
	})

	t.Run("empty payloads do not count as uploads", func(t *testing.T) {
		depression := []model.Disorder{model.DisorderDepression}
		questions := catalog.MustQuestions(model.DisorderDepression)
		responses := make(model.AudioResponses)
		for i, q := range questions {
			if i < 3 {
				responses[q] = []byte("riff")
			} else {
				responses[q] = nil
			}
		}
		scores, severities := AnalyzeAudio(responses, depression)

		require.InDelta(t, 0.6, scores[model.DisorderDepression], 1e-12)
		result := severities[model.DisorderDepression]
		assert.Equal(t, 12, result.RawScore)
		assert.Equal(t, model.SeverityMedium, result.Severity)
	})

	t.Run("pure and repeatable", func(t *testing.T) {
		anxiety := []model.Disorder{model.DisorderAnxiety}
		responses := model.AudioResponses{
			catalog.MustQuestions(model.DisorderAnxiety)[0]: []byte("riff"),
		}
		s1, r1 := AnalyzeAudio(responses, anxiety)
		s2, r2 := AnalyzeAudio(responses, anxiety)
		assert.Equal(t, s1, s2)
		assert.Equal(t, r1, r2)
	})
}
