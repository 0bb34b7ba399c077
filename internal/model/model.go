package model

import (
	"sync"
	"time"
)

// Page identifies one screen of the screening wizard. The set is closed;
// transition logic switches exhaustively over these values.
type Page string

const (
	PageWelcome                  Page = "welcome"
	PageDemographics             Page = "demographics"
	PageModeSelection            Page = "mode_selection"
	PageAssessmentSelection      Page = "assessment_selection"
	PageTextAssessmentSelection  Page = "text_assessment_selection"
	PageAudioAssessmentSelection Page = "audio_assessment_selection"
	PageQuestionnaire            Page = "questionnaire"
	PageTextInput                Page = "text_input"
	PageAudioInput               Page = "audio_input"
	PageResults                  Page = "results"
)

// KnownPage reports whether p is one of the wizard pages.
func KnownPage(p Page) bool {
	switch p {
	case PageWelcome, PageDemographics, PageModeSelection,
		PageAssessmentSelection, PageTextAssessmentSelection, PageAudioAssessmentSelection,
		PageQuestionnaire, PageTextInput, PageAudioInput, PageResults:
		return true
	}
	return false
}

// Mode is the input modality used to answer the screening questions.
type Mode string

const (
	ModeQuestionnaire Mode = "questionnaire"
	ModeText          Mode = "text"
	ModeAudio         Mode = "audio"
)

// SelectionPage returns the assessment-selection page for the mode.
func (m Mode) SelectionPage() Page {
	switch m {
	case ModeQuestionnaire:
		return PageAssessmentSelection
	case ModeText:
		return PageTextAssessmentSelection
	case ModeAudio:
		return PageAudioAssessmentSelection
	}
	return ""
}

// InputPage returns the answer-entry page for the mode.
func (m Mode) InputPage() Page {
	switch m {
	case ModeQuestionnaire:
		return PageQuestionnaire
	case ModeText:
		return PageTextInput
	case ModeAudio:
		return PageAudioInput
	}
	return ""
}

// Disorder is one of the five screening categories.
type Disorder string

const (
	DisorderADHD       Disorder = "ADHD"
	DisorderDepression Disorder = "Depression"
	DisorderAnxiety    Disorder = "Anxiety"
	DisorderSPCD       Disorder = "SPCD"
	DisorderASD        Disorder = "ASD"
)

// Gender options offered on the demographics page. GenderUnset is the
// placeholder and never passes validation.
type Gender string

const (
	GenderUnset          Gender = ""
	GenderMale           Gender = "Male"
	GenderFemale         Gender = "Female"
	GenderPreferNotToSay Gender = "Prefer not to say"
)

// ValidGender reports whether g is a selectable, non-placeholder value.
func ValidGender(g Gender) bool {
	switch g {
	case GenderMale, GenderFemale, GenderPreferNotToSay:
		return true
	}
	return false
}

// Severity is the coarse three-level classification of a disorder's score.
type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// SeverityResult is the per-disorder outcome of one scored assessment.
type SeverityResult struct {
	Severity       Severity `json:"severity"`
	RawScore       int      `json:"raw_score"`
	MaxScore       int      `json:"max_score"`
	Percentage     float64  `json:"percentage"`
	Threshold      int      `json:"threshold"`
	MeetsThreshold bool     `json:"meets_threshold"`
}

// ResultSet holds the outcome of the most recent completed assessment.
// Exactly one modality populates it at a time; resubmitting in any modality
// replaces it wholesale.
type ResultSet struct {
	Mode       Mode                        `json:"mode"`
	Scores     map[Disorder]float64        `json:"scores"`
	Severities map[Disorder]SeverityResult `json:"severity_levels"`
	ComputedAt time.Time                   `json:"computed_at"`
}

// RatingResponses maps question text to a 0-4 rating. A question absent from
// the map is unanswered.
type RatingResponses map[string]int

// TextResponses maps question text to a free-text answer.
type TextResponses map[string]string

// AudioResponses maps question text to the raw uploaded payload. A missing or
// empty payload means no recording has been provided yet.
type AudioResponses map[string][]byte

const (
	// DefaultAge is the demographics widget default; the age field therefore
	// never blocks the demographics guard.
	DefaultAge = 18
	MinAge     = 5
	MaxAge     = 100

	// MinTextAnswerLen is the minimum character count per free-text answer.
	MinTextAnswerLen = 80

	// RatingMax is the top of the 0-4 questionnaire rating scale.
	RatingMax = 4
)

// Session is the whole mutable state of one screening flow. It is owned by a
// single user flow; every page action holds the lock across the guard check,
// mutation and transition.
type Session struct {
	mu sync.Mutex

	ID   string `json:"id"`
	Page Page   `json:"page"`

	Age    int    `json:"age"`
	Gender Gender `json:"gender"`

	Selected []Disorder `json:"selected_assessments"`

	QuestionnaireCompleted bool `json:"questionnaire_completed"`
	TextCompleted          bool `json:"text_completed"`
	AudioCompleted         bool `json:"audio_completed"`

	QuestionnaireData RatingResponses `json:"-"`
	TextData          TextResponses   `json:"-"`
	AudioData         AudioResponses  `json:"-"`

	Results *ResultSet `json:"results,omitempty"`

	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`
}

// NewSession returns a session at its documented defaults.
func NewSession(id string) *Session {
	now := time.Now()
	s := &Session{ID: id, CreatedAt: now}
	s.applyDefaults(now)
	return s
}

// Lock serializes page actions on the session.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session.
func (s *Session) Unlock() { s.mu.Unlock() }

// ResetState returns every field except identity and creation time to its
// initial default and puts the session back on the welcome page.
func (s *Session) ResetState() {
	s.applyDefaults(time.Now())
}

func (s *Session) applyDefaults(now time.Time) {
	s.Page = PageWelcome
	s.Age = DefaultAge
	s.Gender = GenderUnset
	s.Selected = nil
	s.QuestionnaireCompleted = false
	s.TextCompleted = false
	s.AudioCompleted = false
	s.QuestionnaireData = make(RatingResponses)
	s.TextData = make(TextResponses)
	s.AudioData = make(AudioResponses)
	s.Results = nil
	s.LastActive = now
}

// Touch refreshes the activity timestamp used for expiry.
func (s *Session) Touch() { s.LastActive = time.Now() }

// SubmitPayload carries one page's worth of form input. Only the fields for
// the submitted page are consulted; the rest stay zero.
type SubmitPayload struct {
	Age      *int            `json:"age,omitempty"`
	Gender   *Gender         `json:"gender,omitempty"`
	Mode     *Mode           `json:"mode,omitempty"`
	Selected []Disorder      `json:"selected,omitempty"`
	Ratings  RatingResponses `json:"ratings,omitempty"`
	Texts    TextResponses   `json:"texts,omitempty"`
}

// ReportRow is one line of the exportable assessment report. Confidence is
// carried but never populated by any scoring path.
type ReportRow struct {
	Disorder       Disorder `json:"disorder"`
	RiskScore      float64  `json:"risk_score"`
	Confidence     *float64 `json:"confidence"`
	AssessmentDate string   `json:"assessment_date"`
}
