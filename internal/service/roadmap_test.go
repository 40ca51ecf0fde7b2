package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advisor-api/internal/model"
)

func scoredOffering(key string, phase model.Phase, subCategory string, score int) model.ScoredOffering {
	return model.ScoredOffering{
		Offering: model.Offering{Key: key, Title: key, Phase: phase, SubCategory: subCategory},
		Score:    score,
	}
}

func TestComposeGroupOrderByMaxScore(t *testing.T) {
	scored := []model.ScoredOffering{
		scoredOffering("O3", model.PhaseA, "Data", 10),
		scoredOffering("O4", model.PhaseA, "Security", 2),
		scoredOffering("O5", model.PhaseA, "Data", 1),
	}

	phases := Compose(scored)
	require.Equal(t, 1, len(phases))
	require.Equal(t, model.PhaseA, phases[0].Phase)

	groups := phases[0].Groups
	require.Equal(t, 2, len(groups))
	assert.Equal(t, "Data", groups[0].SubCategory)
	assert.Equal(t, 10, groups[0].MaxScore)
	assert.Equal(t, "Security", groups[1].SubCategory)
	assert.Equal(t, 2, groups[1].MaxScore)

	// Within "Data", global score order is preserved
	require.Equal(t, 2, len(groups[0].Offerings))
	assert.Equal(t, "O3", groups[0].Offerings[0].Offering.Key)
	assert.Equal(t, "O5", groups[0].Offerings[1].Offering.Key)
}

func TestComposeRelevancePercentages(t *testing.T) {
	scored := []model.ScoredOffering{
		scoredOffering("O1", model.PhaseA, "Data", 7),
		scoredOffering("O2", model.PhaseA, "Data", 3),
	}

	phases := Compose(scored)
	require.Equal(t, 1, len(phases))
	entries := phases[0].Groups[0].Offerings
	require.Equal(t, 2, len(entries))

	// Top offering is always exactly 100
	assert.Equal(t, 100, entries[0].Relevance)
	// round(100 * 3 / 7) = 43
	assert.Equal(t, 43, entries[1].Relevance)
}

func TestComposeRelevanceUsesGlobalDenominator(t *testing.T) {
	scored := []model.ScoredOffering{
		scoredOffering("O1", model.PhaseA, "Data", 8),
		scoredOffering("O2", model.PhaseC, "Ops", 4),
	}

	phases := Compose(scored)
	require.Equal(t, 2, len(phases))
	// Phase C's entry is normalized against the global max, not its own phase
	assert.Equal(t, 50, phases[1].Groups[0].Offerings[0].Relevance)
}

func TestComposeUnsetPhaseDefaultsToB(t *testing.T) {
	scored := []model.ScoredOffering{
		scoredOffering("O1", "", "Ops", 5),
	}

	phases := Compose(scored)
	require.Equal(t, 1, len(phases))
	assert.Equal(t, model.PhaseB, phases[0].Phase)
}

func TestComposeOmitsEmptyPhases(t *testing.T) {
	scored := []model.ScoredOffering{
		scoredOffering("O1", model.PhaseC, "Data", 5),
	}

	phases := Compose(scored)
	require.Equal(t, 1, len(phases))
	assert.Equal(t, model.PhaseC, phases[0].Phase)
}

func TestComposePhaseOrderFixed(t *testing.T) {
	scored := []model.ScoredOffering{
		scoredOffering("O1", model.PhaseC, "Data", 9),
		scoredOffering("O2", model.PhaseA, "Data", 5),
		scoredOffering("O3", model.PhaseB, "Data", 7),
	}

	phases := Compose(scored)
	require.Equal(t, 3, len(phases))
	assert.Equal(t, model.PhaseA, phases[0].Phase)
	assert.Equal(t, model.PhaseB, phases[1].Phase)
	assert.Equal(t, model.PhaseC, phases[2].Phase)
}

func TestComposeExpandedFlags(t *testing.T) {
	scored := []model.ScoredOffering{
		scoredOffering("O1", model.PhaseA, "Data", 9),
		scoredOffering("O2", model.PhaseA, "Data", 8),
		scoredOffering("O3", model.PhaseA, "Data", 7),
		scoredOffering("O4", model.PhaseA, "Data", 6),
		scoredOffering("O5", model.PhaseA, "Data", 5),
	}

	phases := Compose(scored)
	entries := phases[0].Groups[0].Offerings
	require.Equal(t, 5, len(entries))

	for i, entry := range entries {
		if i < 3 {
			assert.True(t, entry.Expanded, "entry %d should be expanded", i)
		} else {
			assert.False(t, entry.Expanded, "entry %d should be collapsed", i)
		}
	}
}

func TestComposeAllZeroScores(t *testing.T) {
	// Legacy mode can produce zero scores; the denominator clamps to 1
	scored := []model.ScoredOffering{
		scoredOffering("O1", model.PhaseA, "Data", 0),
	}

	phases := Compose(scored)
	require.Equal(t, 1, len(phases))
	assert.Equal(t, 0, phases[0].Groups[0].Offerings[0].Relevance)
}

func TestComposeEmptyInput(t *testing.T) {
	assert.Empty(t, Compose(nil))
}

func TestMaxScore(t *testing.T) {
	assert.Equal(t, 0, MaxScore(nil))
	assert.Equal(t, 9, MaxScore([]model.ScoredOffering{
		scoredOffering("O1", model.PhaseA, "Data", 4),
		scoredOffering("O2", model.PhaseA, "Data", 9),
		scoredOffering("O3", model.PhaseA, "Data", 1),
	}))
}
