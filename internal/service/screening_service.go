package service

import (
	"time"
	"unicode/utf8"

	"neuroscreen-backend/internal/catalog"
	"neuroscreen-backend/internal/model"
	"neuroscreen-backend/internal/scoring"
	"neuroscreen-backend/utilities"
)

// ScreeningService drives the page state machine of one screening session.
// Every operation takes the session explicitly, checks the page's guard,
// mutates state and transitions atomically under the session lock.
type ScreeningService interface {
	Submit(sess *model.Session, page model.Page, payload model.SubmitPayload) (model.Page, error)
	Navigate(sess *model.Session, target model.Page) (model.Page, error)
	Reset(sess *model.Session) model.Page
	StoreAudio(sess *model.Session, question string, data []byte) error
	PageView(sess *model.Session, page model.Page) (*PageView, error)
}

// CompletionEvent is published on the event bus when an assessment finishes.
type CompletionEvent struct {
	SessionID string
	Mode      model.Mode
	Disorders []model.Disorder
}

type screeningService struct {
	bus *utilities.EventBus
}

func NewScreeningService(bus *utilities.EventBus) ScreeningService {
	if bus == nil {
		bus = utilities.GlobalEventBus
	}
	return &screeningService{bus: bus}
}

// Submit applies one page's form submission. On a guard failure the session
// is left untouched and the current page is returned alongside the error.
func (s *screeningService) Submit(sess *model.Session, page model.Page, payload model.SubmitPayload) (model.Page, error) {
	sess.Lock()
	defer sess.Unlock()
	sess.Touch()

	if !model.KnownPage(page) {
		return sess.Page, model.NewValidationError("page", "unknown page %q", page)
	}
	if page != sess.Page {
		return sess.Page, model.NewValidationError("page", "submission for %q but session is on %q", page, sess.Page)
	}

	switch page {
	case model.PageWelcome:
		sess.Page = model.PageDemographics

	case model.PageDemographics:
		if err := s.applyDemographics(sess, payload); err != nil {
			return sess.Page, err
		}
		sess.Page = model.PageModeSelection

	case model.PageModeSelection:
		if payload.Mode == nil {
			return sess.Page, model.NewValidationError("mode", "choose an assessment mode")
		}
		target := payload.Mode.SelectionPage()
		if target == "" {
			return sess.Page, model.NewValidationError("mode", "unknown assessment mode %q", *payload.Mode)
		}
		sess.Page = target

	case model.PageAssessmentSelection, model.PageTextAssessmentSelection, model.PageAudioAssessmentSelection:
		selected, err := validateSelection(payload.Selected)
		if err != nil {
			return sess.Page, err
		}
		sess.Selected = selected
		sess.Page = modeForSelectionPage(page).InputPage()

	case model.PageQuestionnaire:
		ratings, err := collectRatings(sess.Selected, payload.Ratings)
		if err != nil {
			return sess.Page, err
		}
		sess.QuestionnaireData = ratings
		sess.QuestionnaireCompleted = true
		scores, severities := scoring.AnalyzeQuestionnaire(ratings, sess.Selected)
		s.finishAssessment(sess, model.ModeQuestionnaire, scores, severities)

	case model.PageTextInput:
		texts, err := collectTexts(sess.Selected, payload.Texts)
		if err != nil {
			return sess.Page, err
		}
		sess.TextData = texts
		sess.TextCompleted = true
		scores, severities := scoring.AnalyzeText(texts, sess.Selected)
		s.finishAssessment(sess, model.ModeText, scores, severities)

	case model.PageAudioInput:
		if err := checkAudioComplete(sess.Selected, sess.AudioData); err != nil {
			return sess.Page, err
		}
		sess.AudioCompleted = true
		scores, severities := scoring.AnalyzeAudio(sess.AudioData, sess.Selected)
		s.finishAssessment(sess, model.ModeAudio, scores, severities)

	case model.PageResults:
		return sess.Page, model.NewValidationError("page", "the results page has no form submission")
	}

	return sess.Page, nil
}

// Navigate jumps to any page via the side menu, except Results, which is
// only reachable once a result set exists.
func (s *screeningService) Navigate(sess *model.Session, target model.Page) (model.Page, error) {
	sess.Lock()
	defer sess.Unlock()
	sess.Touch()

	if !model.KnownPage(target) {
		return sess.Page, model.NewValidationError("page", "unknown page %q", target)
	}
	if target == model.PageResults && sess.Results == nil {
		return sess.Page, model.ErrResultsNotReady
	}
	sess.Page = target
	return sess.Page, nil
}

// Reset clears all demographic, selection, response, completion and result
// state and returns to the welcome page. Always available.
func (s *screeningService) Reset(sess *model.Session) model.Page {
	sess.Lock()
	defer sess.Unlock()

	sess.ResetState()
	s.bus.Publish(utilities.EventSessionReset, sess.ID)
	return sess.Page
}

// StoreAudio records an already-read upload payload for a question. The
// upload collaborator has performed format filtering before this point.
func (s *screeningService) StoreAudio(sess *model.Session, question string, data []byte) error {
	sess.Lock()
	defer sess.Unlock()
	sess.Touch()

	if len(data) == 0 {
		return model.NewValidationError("file", "uploaded audio is empty")
	}
	if !questionSelected(sess.Selected, question) {
		return model.NewValidationError("question", "question is not part of the current assessment")
	}
	sess.AudioData[question] = data
	return nil
}

// finishAssessment installs a freshly computed result set, replacing any
// previous modality's results wholesale, and moves to the results page.
func (s *screeningService) finishAssessment(sess *model.Session, mode model.Mode, scores map[model.Disorder]float64, severities map[model.Disorder]model.SeverityResult) {
	sess.Results = &model.ResultSet{
		Mode:       mode,
		Scores:     scores,
		Severities: severities,
		ComputedAt: time.Now(),
	}
	sess.Page = model.PageResults
	s.bus.Publish(utilities.EventAssessmentCompleted, CompletionEvent{
		SessionID: sess.ID,
		Mode:      mode,
		Disorders: append([]model.Disorder(nil), sess.Selected...),
	})
}

func (s *screeningService) applyDemographics(sess *model.Session, payload model.SubmitPayload) error {
	age := sess.Age
	if payload.Age != nil {
		age = *payload.Age
	}
	if age < model.MinAge || age > model.MaxAge {
		return model.NewValidationError("age", "age must be between %d and %d", model.MinAge, model.MaxAge)
	}
	if payload.Gender == nil || !model.ValidGender(*payload.Gender) {
		return model.NewValidationError("gender", "select a gender to continue")
	}
	sess.Age = age
	sess.Gender = *payload.Gender
	return nil
}

func validateSelection(selected []model.Disorder) ([]model.Disorder, error) {
	if len(selected) == 0 {
		return nil, model.NewValidationError("assessments", "select at least one assessment to continue")
	}
	out := make([]model.Disorder, 0, len(selected))
	seen := make(map[model.Disorder]bool, len(selected))
	for _, d := range selected {
		if !catalog.Known(d) {
			return nil, model.NewValidationError("assessments", "unknown assessment %q", d)
		}
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	return out, nil
}

// collectRatings keeps only the displayed questions and requires each of them
// to carry a rating on the 0-4 scale.
func collectRatings(selected []model.Disorder, ratings model.RatingResponses) (model.RatingResponses, error) {
	out := make(model.RatingResponses)
	for _, disorder := range selected {
		for _, question := range catalog.MustQuestions(disorder) {
			rating, ok := ratings[question]
			if !ok {
				return nil, model.NewValidationError("ratings", "answer every question before viewing results")
			}
			if rating < 0 || rating > model.RatingMax {
				return nil, model.NewValidationError("ratings", "rating for %q must be between 0 and %d", question, model.RatingMax)
			}
			out[question] = rating
		}
	}
	return out, nil
}

func collectTexts(selected []model.Disorder, texts model.TextResponses) (model.TextResponses, error) {
	out := make(model.TextResponses)
	for _, disorder := range selected {
		for _, question := range catalog.MustQuestions(disorder) {
			answer := texts[question]
			if utf8.RuneCountInString(answer) < model.MinTextAnswerLen {
				return nil, model.NewValidationError("texts", "each answer needs at least %d characters", model.MinTextAnswerLen)
			}
			out[question] = answer
		}
	}
	return out, nil
}

func checkAudioComplete(selected []model.Disorder, audio model.AudioResponses) error {
	for _, disorder := range selected {
		for _, question := range catalog.MustQuestions(disorder) {
			if len(audio[question]) == 0 {
				return model.NewValidationError("audio", "upload an audio answer for every question")
			}
		}
	}
	return nil
}

func modeForSelectionPage(page model.Page) model.Mode {
	switch page {
	case model.PageAssessmentSelection:
		return model.ModeQuestionnaire
	case model.PageTextAssessmentSelection:
		return model.ModeText
	case model.PageAudioAssessmentSelection:
		return model.ModeAudio
	}
	return ""
}

func questionSelected(selected []model.Disorder, question string) bool {
	for _, disorder := range selected {
		for _, q := range catalog.MustQuestions(disorder) {
			if q == question {
				return true
			}
		}
	}
	return false
}
