package service

import (
	"math"
	"sort"

	"advisor-api/internal/model"
)

// expandedPerGroup is the presentation default: the first entries of
// each sub-category group are always shown in full detail, the rest
// start collapsed. The same flag drives the static notification output.
const expandedPerGroup = 3

// Compose groups scored offerings into the phased roadmap. Phases come
// out in the fixed A, B, C order with empty phases omitted; an unset
// phase buckets into B. Within a phase, sub-category groups are ordered
// by their maximum score, descending; entries keep the scoring engine's
// global order. Relevance is normalized against the maximum score of
// the entire result set, with the denominator clamped to 1 so an
// all-zero legacy result does not divide by zero.
func Compose(scored []model.ScoredOffering) []model.PhaseGroup {
	denom := MaxScore(scored)
	if denom < 1 {
		denom = 1
	}

	groupsByPhase := make(map[model.Phase][]*model.SubGroup)
	for _, so := range scored {
		phase := so.Offering.Phase
		if phase == "" {
			phase = model.PhaseB
		}

		var group *model.SubGroup
		for _, g := range groupsByPhase[phase] {
			if g.SubCategory == so.Offering.SubCategory {
				group = g
				break
			}
		}
		if group == nil {
			group = &model.SubGroup{SubCategory: so.Offering.SubCategory}
			groupsByPhase[phase] = append(groupsByPhase[phase], group)
		}

		entry := model.RoadmapEntry{
			Offering:  so.Offering,
			Score:     so.Score,
			Relevance: int(math.Round(100 * float64(so.Score) / float64(denom))),
			Expanded:  len(group.Offerings) < expandedPerGroup,
		}
		group.Offerings = append(group.Offerings, entry)
		if so.Score > group.MaxScore {
			group.MaxScore = so.Score
		}
	}

	var phases []model.PhaseGroup
	for _, phase := range model.PhaseOrder {
		groups := groupsByPhase[phase]
		if len(groups) == 0 {
			continue
		}
		sort.SliceStable(groups, func(i, j int) bool {
			return groups[i].MaxScore > groups[j].MaxScore
		})
		pg := model.PhaseGroup{Phase: phase, Groups: make([]model.SubGroup, len(groups))}
		for i, g := range groups {
			pg.Groups[i] = *g
		}
		phases = append(phases, pg)
	}
	return phases
}

// MaxScore returns the highest score in the result set, 0 when empty
func MaxScore(scored []model.ScoredOffering) int {
	max := 0
	for _, so := range scored {
		if so.Score > max {
			max = so.Score
		}
	}
	return max
}
