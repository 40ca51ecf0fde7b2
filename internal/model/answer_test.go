package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnswerValueIsEmpty(t *testing.T) {
	assert.True(t, ScalarValue("").IsEmpty())
	assert.False(t, ScalarValue("Yes").IsEmpty())
	assert.True(t, SetValue().IsEmpty())
	assert.False(t, SetValue("X").IsEmpty())
}

func TestAnswerValueValues(t *testing.T) {
	assert.Equal(t, []string{"Yes"}, ScalarValue("Yes").Values())
	assert.Nil(t, ScalarValue("").Values())
	assert.Equal(t, []string{"X", "Y"}, SetValue("X", "Y").Values())
}

func TestAnswerValueMatches(t *testing.T) {
	assert.True(t, ScalarValue("Yes").Matches("Yes"))
	assert.False(t, ScalarValue("No").Matches("Yes"))
	assert.True(t, SetValue("X", "Y").Matches("Y"))
	assert.False(t, SetValue("X").Matches("Y"))
}

func TestValidateAnswerScalar(t *testing.T) {
	q := Question{Key: "Q1", Type: QuestionTypeSingleChoice, Options: []string{"A", "B"}}

	assert.NoError(t, ValidateAnswer(q, ScalarValue("A")))
	assert.Error(t, ValidateAnswer(q, ScalarValue("C")), "unknown option")
	assert.Error(t, ValidateAnswer(q, ScalarValue("")), "missing value")
	assert.Error(t, ValidateAnswer(q, SetValue("A")), "wrong shape")
}

func TestValidateAnswerYesNo(t *testing.T) {
	q := Question{Key: "Q1", Type: QuestionTypeYesNo}

	assert.NoError(t, ValidateAnswer(q, ScalarValue("Yes")))
	assert.NoError(t, ValidateAnswer(q, ScalarValue("No")))
	assert.Error(t, ValidateAnswer(q, ScalarValue("Perhaps")))
}

func TestValidateAnswerMultiChoice(t *testing.T) {
	q := Question{Key: "Q2", Type: QuestionTypeMultiChoice, Options: []string{"X", "Y", "Z"}}

	assert.NoError(t, ValidateAnswer(q, SetValue("X", "Z")))
	assert.Error(t, ValidateAnswer(q, SetValue()), "empty set")
	assert.Error(t, ValidateAnswer(q, SetValue("X", "W")), "unknown option")
	assert.Error(t, ValidateAnswer(q, SetValue("X", "X")), "duplicate value")
	assert.Error(t, ValidateAnswer(q, ScalarValue("X")), "wrong shape")
}

func TestAnswerMap(t *testing.T) {
	answers := []*Answer{
		{QuestionKey: "Q1", Value: ScalarValue("Yes")},
		{QuestionKey: "Q2", Value: SetValue("X")},
	}
	m := AnswerMap(answers)
	assert.Equal(t, 2, len(m))
	assert.Equal(t, ScalarValue("Yes"), m["Q1"])
}
