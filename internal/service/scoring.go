package service

import (
	"sort"

	"advisor-api/internal/model"
)

// ScoreParams configures the single scoring function. The weighted mode
// with the default cutoff is canonical; the legacy mode flattens every
// weight to 1 and keeps any match.
type ScoreParams struct {
	MinScore       int
	UniformWeights bool
}

// DefaultScoreParams is the canonical weighted mode
func DefaultScoreParams() ScoreParams {
	return ScoreParams{MinScore: 3}
}

// LegacyScoreParams is the superseded unweighted mode: weight 1
// uniformly, any match qualifies.
func LegacyScoreParams() ScoreParams {
	return ScoreParams{MinScore: 0, UniformWeights: true}
}

// Score accumulates matched rule weights per offering and returns the
// offerings at or above the cutoff, ordered by descending score. Ties
// keep the stable order in which offerings were first matched. Multi-
// select answers are expanded into their constituent values before
// matching. Offerings with no matching rule are absent, not zero-scored.
// Empty answers or rules yield an empty result, not an error.
func Score(answers []model.Answer, rules []model.DecisionRule, params ScoreParams) []model.OfferingScore {
	// Index the matrix by (question, value), preserving rule order
	index := make(map[string][]model.DecisionRule, len(rules))
	for _, r := range rules {
		k := r.QuestionKey + "\x00" + r.AnswerValue
		index[k] = append(index[k], r)
	}

	totals := make(map[string]int)
	var order []string
	for _, a := range answers {
		for _, v := range a.Value.Values() {
			for _, r := range index[a.QuestionKey+"\x00"+v] {
				if _, seen := totals[r.OfferingKey]; !seen {
					order = append(order, r.OfferingKey)
				}
				w := r.Weight
				if params.UniformWeights {
					w = 1
				}
				totals[r.OfferingKey] += w
			}
		}
	}

	out := make([]model.OfferingScore, 0, len(order))
	for _, key := range order {
		if totals[key] >= params.MinScore {
			out = append(out, model.OfferingScore{OfferingKey: key, Score: totals[key]})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}
