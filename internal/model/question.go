package model

import (
	"fmt"
	"sort"
	"time"
)

// QuestionType defines the type of question
type QuestionType string

const (
	QuestionTypeSingleChoice QuestionType = "SINGLE_CHOICE" // one option
	QuestionTypeYesNo        QuestionType = "YES_NO"        // single choice over Yes/No
	QuestionTypeMultiChoice  QuestionType = "MULTI_CHOICE"  // any number of options
)

// YesNoOptions are the conventional options for YES_NO questions.
var YesNoOptions = []string{"Yes", "No"}

// Condition gates a question's visibility on an earlier answer.
// The question is shown only when the controlling question's answer
// equals (scalar) or contains (multi-select) Value.
type Condition struct {
	QuestionKey string `json:"questionKey" bson:"questionKey"`
	Value       string `json:"value" bson:"value"`
}

// Question is one item of a questionnaire section
type Question struct {
	Key        string       `json:"key" bson:"key"` // e.g., "Q1", "Q2"
	SectionKey string       `json:"sectionKey" bson:"sectionKey"`
	Text       string       `json:"text" bson:"text"`
	Type       QuestionType `json:"type" bson:"type"`
	Options    []string     `json:"options,omitempty" bson:"options,omitempty"`
	Position   int          `json:"position" bson:"position"` // order within section
	Condition  *Condition   `json:"condition,omitempty" bson:"condition,omitempty"`
}

// Section owns an ordered set of questions
type Section struct {
	Key       string     `json:"key" bson:"key"`
	Title     string     `json:"title" bson:"title"`
	Position  int        `json:"position" bson:"position"`
	Questions []Question `json:"questions" bson:"questions"`
}

// Questionnaire is the configured question catalog, edited by admins
// and read-only for respondents.
type Questionnaire struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Title     string    `json:"title" bson:"title"`
	Sections  []Section `json:"sections" bson:"sections"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// FlatQuestions returns the canonical flat question sequence: sections
// ordered by position, then questions within each section by position.
func (q *Questionnaire) FlatQuestions() []Question {
	sections := make([]Section, len(q.Sections))
	copy(sections, q.Sections)
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Position < sections[j].Position
	})

	var flat []Question
	for _, sec := range sections {
		questions := make([]Question, len(sec.Questions))
		copy(questions, sec.Questions)
		sort.SliceStable(questions, func(i, j int) bool {
			return questions[i].Position < questions[j].Position
		})
		for i := range questions {
			questions[i].SectionKey = sec.Key
		}
		flat = append(flat, questions...)
	}
	return flat
}

// QuestionByKey looks up a question in the canonical sequence.
func (q *Questionnaire) QuestionByKey(key string) (Question, bool) {
	for _, question := range q.FlatQuestions() {
		if question.Key == key {
			return question, true
		}
	}
	return Question{}, false
}

// HasOption reports whether label is one of the question's options.
// YES_NO questions accept the conventional Yes/No labels even when
// options were left empty in the configuration.
func (qn Question) HasOption(label string) bool {
	options := qn.Options
	if qn.Type == QuestionTypeYesNo && len(options) == 0 {
		options = YesNoOptions
	}
	for _, opt := range options {
		if opt == label {
			return true
		}
	}
	return false
}

// Validate checks the questionnaire's structural integrity: unique keys,
// unique positions per section, options present where the type needs them,
// and conditions referencing strictly earlier questions. Violations are
// configuration errors and must be rejected at write time.
func (q *Questionnaire) Validate() error {
	seenSections := map[string]bool{}
	for _, sec := range q.Sections {
		if sec.Key == "" {
			return fmt.Errorf("section %q: missing key", sec.Title)
		}
		if seenSections[sec.Key] {
			return fmt.Errorf("duplicate section key %q", sec.Key)
		}
		seenSections[sec.Key] = true

		positions := map[int]bool{}
		for _, question := range sec.Questions {
			if positions[question.Position] {
				return fmt.Errorf("section %q: duplicate question position %d", sec.Key, question.Position)
			}
			positions[question.Position] = true
		}
	}

	flat := q.FlatQuestions()
	earlier := map[string]bool{}
	seenQuestions := map[string]bool{}
	for _, question := range flat {
		if question.Key == "" {
			return fmt.Errorf("section %q: question with empty key", question.SectionKey)
		}
		if seenQuestions[question.Key] {
			return fmt.Errorf("duplicate question key %q", question.Key)
		}
		seenQuestions[question.Key] = true

		switch question.Type {
		case QuestionTypeSingleChoice, QuestionTypeMultiChoice:
			if len(question.Options) == 0 {
				return fmt.Errorf("question %q: %s requires options", question.Key, question.Type)
			}
		case QuestionTypeYesNo:
			// options optional, Yes/No implied
		default:
			return fmt.Errorf("question %q: unknown type %q", question.Key, question.Type)
		}

		if cond := question.Condition; cond != nil {
			if cond.QuestionKey == question.Key {
				return fmt.Errorf("question %q: condition references itself", question.Key)
			}
			if !earlier[cond.QuestionKey] {
				return fmt.Errorf("question %q: condition references %q which does not occur earlier in flow order", question.Key, cond.QuestionKey)
			}
		}
		earlier[question.Key] = true
	}
	return nil
}
