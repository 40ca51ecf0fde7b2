package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advisor-api/internal/model"
)

func answer(questionKey string, value model.AnswerValue) model.Answer {
	return model.Answer{QuestionKey: questionKey, Value: value}
}

func TestScoreWeightedScenario(t *testing.T) {
	rules := []model.DecisionRule{
		{QuestionKey: "Q1", AnswerValue: "Yes", OfferingKey: "O1", Weight: 5},
		{QuestionKey: "Q2", AnswerValue: "X", OfferingKey: "O1", Weight: 2},
		{QuestionKey: "Q2", AnswerValue: "Y", OfferingKey: "O2", Weight: 3},
	}
	answers := []model.Answer{
		answer("Q1", model.ScalarValue("Yes")),
		answer("Q2", model.SetValue("X", "Y")),
	}

	result := Score(answers, rules, ScoreParams{MinScore: 3})
	require.Equal(t, 2, len(result))
	assert.Equal(t, model.OfferingScore{OfferingKey: "O1", Score: 7}, result[0])
	assert.Equal(t, model.OfferingScore{OfferingKey: "O2", Score: 3}, result[1])
}

func TestScoreCutoff(t *testing.T) {
	rules := []model.DecisionRule{
		{QuestionKey: "Q1", AnswerValue: "Yes", OfferingKey: "O1", Weight: 5},
		{QuestionKey: "Q1", AnswerValue: "Yes", OfferingKey: "O2", Weight: 2},
	}
	answers := []model.Answer{answer("Q1", model.ScalarValue("Yes"))}

	result := Score(answers, rules, ScoreParams{MinScore: 3})
	require.Equal(t, 1, len(result))
	assert.Equal(t, "O1", result[0].OfferingKey)

	for _, sc := range result {
		assert.GreaterOrEqual(t, sc.Score, 3)
	}
}

func TestScoreUnmatchedOfferingAbsent(t *testing.T) {
	rules := []model.DecisionRule{
		{QuestionKey: "Q1", AnswerValue: "Yes", OfferingKey: "O1", Weight: 5},
		{QuestionKey: "Q9", AnswerValue: "Yes", OfferingKey: "O2", Weight: 5},
	}
	answers := []model.Answer{answer("Q1", model.ScalarValue("Yes"))}

	result := Score(answers, rules, ScoreParams{MinScore: 0})
	require.Equal(t, 1, len(result))
	assert.Equal(t, "O1", result[0].OfferingKey)
}

func TestScoreTiesKeepFirstEncounterOrder(t *testing.T) {
	rules := []model.DecisionRule{
		{QuestionKey: "Q1", AnswerValue: "A", OfferingKey: "O1", Weight: 2},
		{QuestionKey: "Q1", AnswerValue: "A", OfferingKey: "O2", Weight: 2},
		{QuestionKey: "Q1", AnswerValue: "A", OfferingKey: "O3", Weight: 2},
	}
	answers := []model.Answer{answer("Q1", model.ScalarValue("A"))}

	result := Score(answers, rules, ScoreParams{MinScore: 0})
	require.Equal(t, 3, len(result))
	assert.Equal(t, "O1", result[0].OfferingKey)
	assert.Equal(t, "O2", result[1].OfferingKey)
	assert.Equal(t, "O3", result[2].OfferingKey)
}

func TestScoreCommutativeOverAnswerOrder(t *testing.T) {
	rules := []model.DecisionRule{
		{QuestionKey: "Q1", AnswerValue: "Yes", OfferingKey: "O1", Weight: 5},
		{QuestionKey: "Q2", AnswerValue: "X", OfferingKey: "O1", Weight: 2},
		{QuestionKey: "Q2", AnswerValue: "Y", OfferingKey: "O2", Weight: 3},
	}
	forward := []model.Answer{
		answer("Q1", model.ScalarValue("Yes")),
		answer("Q2", model.SetValue("X", "Y")),
	}
	backward := []model.Answer{
		answer("Q2", model.SetValue("Y", "X")),
		answer("Q1", model.ScalarValue("Yes")),
	}

	scoresOf := func(result []model.OfferingScore) map[string]int {
		m := map[string]int{}
		for _, sc := range result {
			m[sc.OfferingKey] = sc.Score
		}
		return m
	}

	a := Score(forward, rules, ScoreParams{MinScore: 0})
	b := Score(backward, rules, ScoreParams{MinScore: 0})
	assert.Equal(t, scoresOf(a), scoresOf(b))
}

func TestScoreMonotoneUnderAddedRule(t *testing.T) {
	rules := []model.DecisionRule{
		{QuestionKey: "Q1", AnswerValue: "Yes", OfferingKey: "O1", Weight: 3},
	}
	answers := []model.Answer{answer("Q1", model.ScalarValue("Yes"))}

	before := Score(answers, rules, ScoreParams{MinScore: 0})
	require.Equal(t, 3, before[0].Score)

	rules = append(rules, model.DecisionRule{QuestionKey: "Q1", AnswerValue: "Yes", OfferingKey: "O1", Weight: 2})
	after := Score(answers, rules, ScoreParams{MinScore: 0})
	assert.GreaterOrEqual(t, after[0].Score, before[0].Score)
	assert.Equal(t, 5, after[0].Score)
}

func TestScoreLegacyMode(t *testing.T) {
	rules := []model.DecisionRule{
		{QuestionKey: "Q1", AnswerValue: "Yes", OfferingKey: "O1", Weight: 5},
		{QuestionKey: "Q2", AnswerValue: "X", OfferingKey: "O1", Weight: 4},
		{QuestionKey: "Q2", AnswerValue: "X", OfferingKey: "O2", Weight: 1},
	}
	answers := []model.Answer{
		answer("Q1", model.ScalarValue("Yes")),
		answer("Q2", model.SetValue("X")),
	}

	result := Score(answers, rules, LegacyScoreParams())
	require.Equal(t, 2, len(result))
	// Every weight flattens to 1; any match qualifies
	assert.Equal(t, model.OfferingScore{OfferingKey: "O1", Score: 2}, result[0])
	assert.Equal(t, model.OfferingScore{OfferingKey: "O2", Score: 1}, result[1])
}

func TestScoreEmptyInputs(t *testing.T) {
	rules := []model.DecisionRule{
		{QuestionKey: "Q1", AnswerValue: "Yes", OfferingKey: "O1", Weight: 5},
	}

	assert.Empty(t, Score(nil, rules, DefaultScoreParams()))
	assert.Empty(t, Score([]model.Answer{answer("Q1", model.ScalarValue("Yes"))}, nil, DefaultScoreParams()))
}

func TestDefaultScoreParams(t *testing.T) {
	assert.Equal(t, ScoreParams{MinScore: 3}, DefaultScoreParams())
	assert.Equal(t, ScoreParams{MinScore: 0, UniformWeights: true}, LegacyScoreParams())
}
