package service

import "advisor-api/internal/model"

// The question flow evaluator is a pure function over the canonical
// question sequence and the answers collected so far. It is recomputed
// on every answer change; it never holds the cursor itself.

// VisibleQuestions returns the ordered subset of questions currently
// visible. A question with no condition is always included; a
// conditional question is included iff the controlling question has an
// answer that equals (scalar) or contains (multi-select) the required
// value.
func VisibleQuestions(questions []model.Question, answers map[string]model.AnswerValue) []model.Question {
	visible := make([]model.Question, 0, len(questions))
	for _, q := range questions {
		if q.Condition == nil {
			visible = append(visible, q)
			continue
		}
		if v, ok := answers[q.Condition.QuestionKey]; ok && v.Matches(q.Condition.Value) {
			visible = append(visible, q)
		}
	}
	return visible
}

// ClampCursor keeps a caller-owned cursor inside the visible sequence
// after the sequence changed. An empty sequence yields -1 ("no
// question").
func ClampCursor(cursor, length int) int {
	if length == 0 {
		return -1
	}
	if cursor < 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	return cursor
}

// IsAnswered reports whether a question has a non-empty recorded value.
// Advancing is only permitted from an answered question.
func IsAnswered(q model.Question, answers map[string]model.AnswerValue) bool {
	v, ok := answers[q.Key]
	return ok && !v.IsEmpty()
}

// FirstUnanswered returns the index of the first visible question
// without a non-empty answer, or len(visible) when everything is
// answered. Used to rebuild a lost cursor.
func FirstUnanswered(visible []model.Question, answers map[string]model.AnswerValue) int {
	for i, q := range visible {
		if !IsAnswered(q, answers) {
			return i
		}
	}
	return len(visible)
}

// FlowState is the evaluator's full output for one recomputation
type FlowState struct {
	Visible []model.Question `json:"visible"`
	Cursor  int              `json:"cursor"`
	AtEnd   bool             `json:"atEnd"`
}

// EvaluateFlow recomputes the visible sequence and clamps the given
// cursor against it.
func EvaluateFlow(questions []model.Question, answers map[string]model.AnswerValue, cursor int) FlowState {
	visible := VisibleQuestions(questions, answers)
	clamped := ClampCursor(cursor, len(visible))
	return FlowState{
		Visible: visible,
		Cursor:  clamped,
		AtEnd:   len(visible) == 0 || clamped == len(visible)-1,
	}
}
