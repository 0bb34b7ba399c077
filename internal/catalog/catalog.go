// Package catalog holds the static screening instrument: the per-disorder
// question lists and their scoring constants. The catalog is defined at
// compile time and never mutated; asking it about a disorder it does not know
// is a programming error and panics rather than defaulting.
package catalog

import (
	"fmt"

	"neuroscreen-backend/internal/model"
)

// Spec carries a disorder's scoring constants. MaxScore is always
// QuestionCount * 4 (ratings run 0-4); Threshold is the fixed clinical
// cutoff, not derived.
type Spec struct {
	QuestionCount int `json:"questions"`
	MaxScore      int `json:"max_score"`
	Threshold     int `json:"threshold"`
}

// Disorders lists the screening categories in display order.
var Disorders = []model.Disorder{
	model.DisorderADHD,
	model.DisorderDepression,
	model.DisorderAnxiety,
	model.DisorderSPCD,
	model.DisorderASD,
}

var questionnaireItems = map[model.Disorder][]string{
	model.DisorderADHD: {
		"I have difficulty starting tasks that require a lot of thinking.",
		"I lose focus during lectures, meetings, or reading.",
		"I forget deadlines or appointments even when they are important.",
		"I struggle to organize my work or study materials.",
		"I postpone until the last moment, even for important tasks.",
		"I feel mentally restless or unable to slow my thoughts.",
		"I make careless mistakes even when I know the material.",
	},
	model.DisorderDepression: {
		"I feel little interest or pleasure in doing things.",
		"I feel down, hopeless, or emotionally numb.",
		"I feel tired or low on energy most days.",
		"I feel like I am not good enough or have failed.",
		"I have difficulty concentrating because of low mood.",
	},
	model.DisorderAnxiety: {
		"I feel nervous, anxious, or on edge.",
		"I worry too much about academic or social situations.",
		"I find it hard to relax, even when I have time.",
		"My anxiety interferes with my studies or relationships.",
		"I avoid situations because they make me anxious.",
	},
	model.DisorderSPCD: {
		"People tell me I sound blunt, awkward, or unclear when I speak.",
		"I struggle to adjust how I speak depending on who I am talking to.",
		"I find it difficult to stay on topic in conversations.",
		"I misunderstand what others expect from me socially.",
	},
	model.DisorderASD: {
		"I find it hard to know when it is my turn to speak in conversations.",
		"I struggle to understand jokes, sarcasm, or indirect hints.",
		"I feel unsure how much detail to give when explaining something.",
		"I find group discussions confusing or exhausting.",
		"I prefer clear rules and predictable routines.",
		"I miss social cues like tone of voice or facial expressions.",
	},
}

var disorderSpecs = map[model.Disorder]Spec{
	model.DisorderADHD:       {QuestionCount: 7, MaxScore: 28, Threshold: 19},
	model.DisorderASD:        {QuestionCount: 6, MaxScore: 24, Threshold: 16},
	model.DisorderSPCD:       {QuestionCount: 4, MaxScore: 16, Threshold: 11},
	model.DisorderDepression: {QuestionCount: 5, MaxScore: 20, Threshold: 13},
	model.DisorderAnxiety:    {QuestionCount: 5, MaxScore: 20, Threshold: 14},
}

// RatingLabels are the questionnaire scale labels, indexed by rating value.
var RatingLabels = []string{
	"0 - Never",
	"1 - Rarely",
	"2 - Sometimes",
	"3 - Often",
	"4 - Very Often",
}

// Questions returns the ordered question list for a disorder.
func Questions(d model.Disorder) ([]string, bool) {
	qs, ok := questionnaireItems[d]
	return qs, ok
}

// MustQuestions is Questions for callers that have already validated the
// disorder; an unknown disorder indicates a catalog/state inconsistency.
func MustQuestions(d model.Disorder) []string {
	qs, ok := questionnaireItems[d]
	if !ok {
		panic(fmt.Sprintf("catalog: unknown disorder %q", d))
	}
	return qs
}

// DisorderSpec returns the scoring constants for a disorder.
func DisorderSpec(d model.Disorder) (Spec, bool) {
	sp, ok := disorderSpecs[d]
	return sp, ok
}

// MustSpec panics on an unknown disorder, matching MustQuestions.
func MustSpec(d model.Disorder) Spec {
	sp, ok := disorderSpecs[d]
	if !ok {
		panic(fmt.Sprintf("catalog: unknown disorder %q", d))
	}
	return sp
}

// Known reports whether d is a catalogued disorder.
func Known(d model.Disorder) bool {
	_, ok := disorderSpecs[d]
	return ok
}
