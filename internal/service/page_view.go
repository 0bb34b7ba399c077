package service

import (
	"unicode/utf8"

	"neuroscreen-backend/internal/catalog"
	"neuroscreen-backend/internal/model"
)

// PageView is the render data the presentation layer needs for one wizard
// page. Only the fields relevant to the requested page are populated.
type PageView struct {
	Page  model.Page `json:"page"`
	Title string     `json:"title"`

	Intro      string `json:"intro,omitempty"`
	Disclaimer string `json:"disclaimer,omitempty"`

	Age           *int           `json:"age,omitempty"`
	AgeMin        int            `json:"age_min,omitempty"`
	AgeMax        int            `json:"age_max,omitempty"`
	Gender        model.Gender   `json:"gender,omitempty"`
	GenderOptions []model.Gender `json:"gender_options,omitempty"`

	Modes []ModeCard `json:"modes,omitempty"`

	Mode      model.Mode       `json:"mode,omitempty"`
	Disorders []DisorderOption `json:"disorders,omitempty"`

	RatingLabels []string       `json:"rating_labels,omitempty"`
	Questions    []QuestionView `json:"questions,omitempty"`
}

// ModeCard describes one assessment mode on the mode-selection page.
type ModeCard struct {
	Mode        model.Mode `json:"mode"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Duration    string     `json:"duration"`
}

// DisorderOption is one checkbox on an assessment-selection page.
type DisorderOption struct {
	Disorder model.Disorder `json:"disorder"`
	Selected bool           `json:"selected"`
}

// QuestionView is one question plus the session's stored answer state,
// numbered across all selected disorders in display order.
type QuestionView struct {
	Number   int            `json:"number"`
	Disorder model.Disorder `json:"disorder"`
	Text     string         `json:"text"`

	Rating        *int   `json:"rating,omitempty"`
	Answer        string `json:"answer,omitempty"`
	CharCount     int    `json:"char_count,omitempty"`
	AnswerValid   bool   `json:"answer_valid,omitempty"`
	AudioUploaded bool   `json:"audio_uploaded,omitempty"`
}

const (
	welcomeIntro = "This system is designed as a research prototype to assist healthcare " +
		"professionals in screening for potential cognitive and mental health disorders " +
		"through multimodal assessment."
	welcomeDisclaimer = "This system provides support for self-assessment and clinical diagnosis. " +
		"Results should be interpreted by qualified healthcare professionals. This tool supports " +
		"but does not replace comprehensive clinical evaluation. Data is processed locally and " +
		"not stored or transmitted."
)

// PageView assembles the render data for a page against the current session
// state. Requesting the results page before a result set exists is rejected
// the same way navigation is.
func (s *screeningService) PageView(sess *model.Session, page model.Page) (*PageView, error) {
	sess.Lock()
	defer sess.Unlock()

	if !model.KnownPage(page) {
		return nil, model.NewValidationError("page", "unknown page %q", page)
	}

	view := &PageView{Page: page}
	switch page {
	case model.PageWelcome:
		view.Title = "Multimodal Cognitive Disorder Screening System"
		view.Intro = welcomeIntro
		view.Disclaimer = welcomeDisclaimer

	case model.PageDemographics:
		view.Title = "Demographic Information"
		age := sess.Age
		view.Age = &age
		view.AgeMin = model.MinAge
		view.AgeMax = model.MaxAge
		view.Gender = sess.Gender
		view.GenderOptions = []model.Gender{model.GenderMale, model.GenderFemale, model.GenderPreferNotToSay}

	case model.PageModeSelection:
		view.Title = "Select Assessment Mode"
		view.Modes = []ModeCard{
			{Mode: model.ModeQuestionnaire, Title: "Questionnaire", Description: "Answer structured questions about your experiences", Duration: "~5-7 minutes"},
			{Mode: model.ModeText, Title: "Free Text Input", Description: "Answer questions in text format (min 80 characters per answer)", Duration: "~5-10 minutes"},
			{Mode: model.ModeAudio, Title: "Voice Input", Description: "Answer questions via audio recording (WAV format)", Duration: "~5-10 minutes"},
		}

	case model.PageAssessmentSelection, model.PageTextAssessmentSelection, model.PageAudioAssessmentSelection:
		view.Title = "Select Assessment Type"
		view.Mode = modeForSelectionPage(page)
		view.Disorders = disorderOptions(sess.Selected)

	case model.PageQuestionnaire:
		view.Title = "Behavioral Questionnaire"
		view.Mode = model.ModeQuestionnaire
		view.RatingLabels = catalog.RatingLabels
		view.Questions = questionViews(sess, model.ModeQuestionnaire)

	case model.PageTextInput:
		view.Title = "Text Input Assessment"
		view.Mode = model.ModeText
		view.Questions = questionViews(sess, model.ModeText)

	case model.PageAudioInput:
		view.Title = "Voice Input Assessment"
		view.Mode = model.ModeAudio
		view.Questions = questionViews(sess, model.ModeAudio)

	case model.PageResults:
		if sess.Results == nil {
			return nil, model.ErrResultsNotReady
		}
		view.Title = "Assessment Results Dashboard"
		view.Mode = sess.Results.Mode
	}

	return view, nil
}

func disorderOptions(selected []model.Disorder) []DisorderOption {
	chosen := make(map[model.Disorder]bool, len(selected))
	for _, d := range selected {
		chosen[d] = true
	}
	opts := make([]DisorderOption, 0, len(catalog.Disorders))
	for _, d := range catalog.Disorders {
		opts = append(opts, DisorderOption{Disorder: d, Selected: chosen[d]})
	}
	return opts
}

// questionViews numbers questions consecutively across the selected
// disorders, mirroring the original wizard's running counter, and echoes any
// stored answer state for the mode.
func questionViews(sess *model.Session, mode model.Mode) []QuestionView {
	var views []QuestionView
	number := 1
	for _, disorder := range sess.Selected {
		for _, question := range catalog.MustQuestions(disorder) {
			qv := QuestionView{Number: number, Disorder: disorder, Text: question}
			switch mode {
			case model.ModeQuestionnaire:
				if rating, ok := sess.QuestionnaireData[question]; ok {
					r := rating
					qv.Rating = &r
				}
			case model.ModeText:
				answer := sess.TextData[question]
				qv.Answer = answer
				qv.CharCount = utf8.RuneCountInString(answer)
				qv.AnswerValid = qv.CharCount >= model.MinTextAnswerLen
			case model.ModeAudio:
				qv.AudioUploaded = len(sess.AudioData[question]) > 0
			}
			views = append(views, qv)
			number++
		}
	}
	return views
}
