package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advisor-api/internal/model"
)

func flowQuestions() []model.Question {
	return []model.Question{
		{Key: "Q1", Type: model.QuestionTypeYesNo, Position: 1},
		{
			Key:       "Q2",
			Type:      model.QuestionTypeMultiChoice,
			Options:   []string{"X", "Y"},
			Position:  2,
			Condition: &model.Condition{QuestionKey: "Q1", Value: "Yes"},
		},
		{Key: "Q3", Type: model.QuestionTypeYesNo, Position: 3},
	}
}

func questionKeys(questions []model.Question) []string {
	keys := make([]string, len(questions))
	for i, q := range questions {
		keys[i] = q.Key
	}
	return keys
}

func TestVisibleQuestionsConditionUnmet(t *testing.T) {
	questions := flowQuestions()[:2]

	visible := VisibleQuestions(questions, map[string]model.AnswerValue{
		"Q1": model.ScalarValue("No"),
	})
	assert.Equal(t, []string{"Q1"}, questionKeys(visible))

	visible = VisibleQuestions(questions, map[string]model.AnswerValue{
		"Q1": model.ScalarValue("Yes"),
	})
	assert.Equal(t, []string{"Q1", "Q2"}, questionKeys(visible))
}

func TestVisibleQuestionsNoAnswerHidesConditional(t *testing.T) {
	visible := VisibleQuestions(flowQuestions(), map[string]model.AnswerValue{})
	assert.Equal(t, []string{"Q1", "Q3"}, questionKeys(visible))
}

func TestVisibleQuestionsMultiSelectController(t *testing.T) {
	questions := []model.Question{
		{Key: "Q1", Type: model.QuestionTypeMultiChoice, Options: []string{"A", "B", "C"}},
		{Key: "Q2", Type: model.QuestionTypeYesNo, Condition: &model.Condition{QuestionKey: "Q1", Value: "B"}},
	}

	visible := VisibleQuestions(questions, map[string]model.AnswerValue{
		"Q1": model.SetValue("A", "C"),
	})
	assert.Equal(t, []string{"Q1"}, questionKeys(visible))

	visible = VisibleQuestions(questions, map[string]model.AnswerValue{
		"Q1": model.SetValue("A", "B"),
	})
	assert.Equal(t, []string{"Q1", "Q2"}, questionKeys(visible))
}

func TestVisibleQuestionsIdempotent(t *testing.T) {
	questions := flowQuestions()
	answers := map[string]model.AnswerValue{
		"Q1": model.ScalarValue("Yes"),
		"Q2": model.SetValue("X"),
	}

	first := VisibleQuestions(questions, answers)
	second := VisibleQuestions(questions, answers)
	assert.Equal(t, first, second)
}

func TestVisibleQuestionsKeepsUnconditionalOrder(t *testing.T) {
	questions := flowQuestions()

	withoutConditional := VisibleQuestions(questions, nil)
	withConditional := VisibleQuestions(questions, map[string]model.AnswerValue{
		"Q1": model.ScalarValue("Yes"),
	})

	assert.Equal(t, []string{"Q1", "Q3"}, questionKeys(withoutConditional))
	assert.Equal(t, []string{"Q1", "Q2", "Q3"}, questionKeys(withConditional))
}

func TestClampCursor(t *testing.T) {
	tests := []struct {
		name   string
		cursor int
		length int
		want   int
	}{
		{"inside", 1, 3, 1},
		{"past end", 5, 3, 2},
		{"at end", 2, 3, 2},
		{"negative", -2, 3, 0},
		{"empty sequence", 1, 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampCursor(tt.cursor, tt.length))
		})
	}
}

func TestCursorClampWhenSequenceShrinks(t *testing.T) {
	questions := flowQuestions()

	// Respondent answered Q1=Yes and sits on Q3 (index 2 of [Q1 Q2 Q3])
	answers := map[string]model.AnswerValue{"Q1": model.ScalarValue("Yes")}
	state := EvaluateFlow(questions, answers, 2)
	require.Equal(t, 2, state.Cursor)
	require.True(t, state.AtEnd)

	// Changing Q1 to No hides Q2; index 2 now points past [Q1 Q3]
	answers["Q1"] = model.ScalarValue("No")
	state = EvaluateFlow(questions, answers, 2)
	assert.Equal(t, 1, state.Cursor)
	assert.Equal(t, "Q3", state.Visible[state.Cursor].Key)
	assert.True(t, state.AtEnd)
}

func TestIsAnswered(t *testing.T) {
	q := model.Question{Key: "Q1", Type: model.QuestionTypeYesNo}
	multi := model.Question{Key: "Q2", Type: model.QuestionTypeMultiChoice, Options: []string{"X"}}

	assert.False(t, IsAnswered(q, map[string]model.AnswerValue{}))
	assert.False(t, IsAnswered(q, map[string]model.AnswerValue{"Q1": model.ScalarValue("")}))
	assert.True(t, IsAnswered(q, map[string]model.AnswerValue{"Q1": model.ScalarValue("Yes")}))
	assert.False(t, IsAnswered(multi, map[string]model.AnswerValue{"Q2": model.SetValue()}))
	assert.True(t, IsAnswered(multi, map[string]model.AnswerValue{"Q2": model.SetValue("X")}))
}

func TestFirstUnanswered(t *testing.T) {
	questions := flowQuestions()
	visible := VisibleQuestions(questions, map[string]model.AnswerValue{
		"Q1": model.ScalarValue("Yes"),
	})
	require.Equal(t, 3, len(visible))

	answers := map[string]model.AnswerValue{"Q1": model.ScalarValue("Yes")}
	assert.Equal(t, 1, FirstUnanswered(visible, answers))

	answers["Q2"] = model.SetValue("X")
	answers["Q3"] = model.ScalarValue("No")
	assert.Equal(t, 3, FirstUnanswered(visible, answers))
}

func TestEvaluateFlowEmptyCatalog(t *testing.T) {
	state := EvaluateFlow(nil, nil, 0)
	assert.Equal(t, -1, state.Cursor)
	assert.True(t, state.AtEnd)
	assert.Empty(t, state.Visible)
}
