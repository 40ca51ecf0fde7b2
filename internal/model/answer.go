package model

import (
	"fmt"
	"time"
)

// ValueKind discriminates scalar and set answer values
type ValueKind string

const (
	ValueKindScalar ValueKind = "scalar" // SINGLE_CHOICE, YES_NO
	ValueKindSet    ValueKind = "set"    // MULTI_CHOICE, order irrelevant
)

// AnswerValue is a tagged union: either a single string or a set of
// strings. Keeping the two shapes explicit avoids the coercion ambiguity
// between single- and multi-valued answers.
type AnswerValue struct {
	Kind   ValueKind `json:"kind" bson:"kind"`
	Scalar string    `json:"scalar,omitempty" bson:"scalar,omitempty"`
	Set    []string  `json:"set,omitempty" bson:"set,omitempty"`
}

// ScalarValue builds a scalar answer value
func ScalarValue(v string) AnswerValue {
	return AnswerValue{Kind: ValueKindScalar, Scalar: v}
}

// SetValue builds a multi-select answer value
func SetValue(vs ...string) AnswerValue {
	return AnswerValue{Kind: ValueKindSet, Set: vs}
}

// IsEmpty reports whether the value counts as unanswered
func (v AnswerValue) IsEmpty() bool {
	if v.Kind == ValueKindSet {
		return len(v.Set) == 0
	}
	return v.Scalar == ""
}

// Values expands the value into its constituent strings: a scalar is a
// singleton, a set is returned as-is.
func (v AnswerValue) Values() []string {
	if v.Kind == ValueKindSet {
		return v.Set
	}
	if v.Scalar == "" {
		return nil
	}
	return []string{v.Scalar}
}

// Matches reports whether the value satisfies a required condition value:
// equality for scalars, membership for sets.
func (v AnswerValue) Matches(required string) bool {
	for _, val := range v.Values() {
		if val == required {
			return true
		}
	}
	return false
}

// Answer associates a submission with a question and a value. Exactly one
// answer exists per (submission, question); a resubmission replaces it.
type Answer struct {
	ID           string      `json:"id" bson:"_id,omitempty"`
	SubmissionID string      `json:"submissionId" bson:"submissionId"`
	QuestionKey  string      `json:"questionKey" bson:"questionKey"`
	Value        AnswerValue `json:"value" bson:"value"`
	AnsweredAt   time.Time   `json:"answeredAt" bson:"answeredAt"`
}

// ValidateAnswer checks an answer value against its question's declared
// type and options. Input errors are rejected here, at submission time,
// not later at scoring time.
func ValidateAnswer(q Question, v AnswerValue) error {
	switch q.Type {
	case QuestionTypeSingleChoice, QuestionTypeYesNo:
		if v.Kind != ValueKindScalar {
			return fmt.Errorf("question %q expects a single value", q.Key)
		}
		if v.Scalar == "" {
			return fmt.Errorf("question %q: missing value", q.Key)
		}
		if !q.HasOption(v.Scalar) {
			return fmt.Errorf("question %q: %q is not an option", q.Key, v.Scalar)
		}
	case QuestionTypeMultiChoice:
		if v.Kind != ValueKindSet {
			return fmt.Errorf("question %q expects a set of values", q.Key)
		}
		if len(v.Set) == 0 {
			return fmt.Errorf("question %q: missing value", q.Key)
		}
		seen := map[string]bool{}
		for _, val := range v.Set {
			if !q.HasOption(val) {
				return fmt.Errorf("question %q: %q is not an option", q.Key, val)
			}
			if seen[val] {
				return fmt.Errorf("question %q: duplicate value %q", q.Key, val)
			}
			seen[val] = true
		}
	default:
		return fmt.Errorf("question %q: unknown type %q", q.Key, q.Type)
	}
	return nil
}

// AnswerMap indexes answers by question key
func AnswerMap(answers []*Answer) map[string]AnswerValue {
	m := make(map[string]AnswerValue, len(answers))
	for _, a := range answers {
		m[a.QuestionKey] = a.Value
	}
	return m
}
