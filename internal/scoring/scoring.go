// Package scoring converts raw screening responses into normalized scores
// and severity classifications. Every function here is pure: identical input
// yields identical output, with no session or catalog mutation.
package scoring

import (
	"unicode/utf8"

	"neuroscreen-backend/internal/catalog"
	"neuroscreen-backend/internal/model"
)

// charsPerQuestion is the expected answer length used to normalize free-text
// scores: a disorder's answers totalling questionCount*100 characters score 1.0.
const charsPerQuestion = 100

// CalculateSeverity buckets a raw score against its maximum.
// percentage < 33 is Low, 33..66 inclusive is Medium, above 66 is High.
func CalculateSeverity(rawScore, maxScore int) (model.Severity, float64) {
	percentage := float64(rawScore) / float64(maxScore) * 100
	switch {
	case percentage < 33:
		return model.SeverityLow, percentage
	case percentage <= 66:
		return model.SeverityMedium, percentage
	default:
		return model.SeverityHigh, percentage
	}
}

// AnalyzeQuestionnaire sums the 0-4 rating of every catalogued question per
// selected disorder. A question missing from responses contributes 0, the
// same as an explicit "Never"; the state machine's guard normally prevents
// unanswered questions from reaching this point.
func AnalyzeQuestionnaire(responses model.RatingResponses, selected []model.Disorder) (map[model.Disorder]float64, map[model.Disorder]model.SeverityResult) {
	scores := make(map[model.Disorder]float64, len(selected))
	severities := make(map[model.Disorder]model.SeverityResult, len(selected))

	for _, disorder := range selected {
		raw := 0
		for _, question := range catalog.MustQuestions(disorder) {
			// absent question -> zero value -> contributes 0
			raw += responses[question]
		}
		spec := catalog.MustSpec(disorder)
		scores[disorder] = float64(raw) / float64(spec.MaxScore)
		severities[disorder] = buildResult(raw, spec)
	}
	return scores, severities
}

// AnalyzeText proxy-scores by input volume: total answer characters for a
// disorder over questionCount*100, clamped to [0,1]. The displayed raw score
// is that fraction scaled back onto the rating scale, truncated.
func AnalyzeText(responses model.TextResponses, selected []model.Disorder) (map[model.Disorder]float64, map[model.Disorder]model.SeverityResult) {
	scores := make(map[model.Disorder]float64, len(selected))
	severities := make(map[model.Disorder]model.SeverityResult, len(selected))

	for _, disorder := range selected {
		questions := catalog.MustQuestions(disorder)
		totalChars := 0
		for _, question := range questions {
			totalChars += utf8.RuneCountInString(responses[question])
		}
		normalized := float64(totalChars) / float64(len(questions)*charsPerQuestion)
		if normalized > 1.0 {
			normalized = 1.0
		}
		spec := catalog.MustSpec(disorder)
		raw := int(normalized * float64(spec.MaxScore))
		scores[disorder] = normalized
		severities[disorder] = buildResult(raw, spec)
	}
	return scores, severities
}

// AnalyzeAudio proxy-scores by upload completeness: the fraction of a
// disorder's questions carrying a non-empty payload. Raw score scales up the
// same truncating way as text.
func AnalyzeAudio(responses model.AudioResponses, selected []model.Disorder) (map[model.Disorder]float64, map[model.Disorder]model.SeverityResult) {
	scores := make(map[model.Disorder]float64, len(selected))
	severities := make(map[model.Disorder]model.SeverityResult, len(selected))

	for _, disorder := range selected {
		questions := catalog.MustQuestions(disorder)
		uploaded := 0
		for _, question := range questions {
			if len(responses[question]) > 0 {
				uploaded++
			}
		}
		normalized := float64(uploaded) / float64(len(questions))
		spec := catalog.MustSpec(disorder)
		raw := int(normalized * float64(spec.MaxScore))
		scores[disorder] = normalized
		severities[disorder] = buildResult(raw, spec)
	}
	return scores, severities
}

func buildResult(raw int, spec catalog.Spec) model.SeverityResult {
	severity, percentage := CalculateSeverity(raw, spec.MaxScore)
	return model.SeverityResult{
		Severity:       severity,
		RawScore:       raw,
		MaxScore:       spec.MaxScore,
		Percentage:     percentage,
		Threshold:      spec.Threshold,
		MeetsThreshold: raw >= spec.Threshold,
	}
}
