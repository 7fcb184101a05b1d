package scenario_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opensift/credence/errors"
	"github.com/opensift/credence/scenario"
)

func TestLoadAndBuild(t *testing.T) {
	s, err := scenario.Load(filepath.Join("testdata", "coin.toml"))
	require.NoError(t, err)

	assert.Equal(t, "dubois-prade", s.Method)
	require.Len(t, s.Slots, 1)
	assert.Equal(t, "face", s.Slots[0].Name)
	require.Len(t, s.Witnesses, 1)
	require.Len(t, s.Witnesses[0].Claims, 2)

	compiled, err := s.Build()
	require.NoError(t, err)
	assert.Equal(t, 1, compiled.Frame.Slots())
	assert.Equal(t, 1, compiled.Engine.Sources())
	require.Len(t, compiled.Queries, 1)

	// Single source with focal elements {heads, Ω}: Bel = 0.6, Pl = 1.
	res, err := compiled.Engine.Coarse(compiled.Queries[0].Constraint)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, res.Belief, 1e-12)
	assert.InDelta(t, 1.0, res.Plausibility, 1e-12)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := scenario.Load(filepath.Join("testdata", "does-not-exist.toml"))
	assert.Error(t, err)
}

func TestBuildRejectsUnknownMethod(t *testing.T) {
	s := &scenario.Scenario{
		Method: "consensus",
		Slots:  []scenario.Slot{{Name: "face", Options: []string{"heads", "tails"}}},
	}
	_, err := s.Build()
	assert.True(t, errors.IsConfiguration(err))
}

func TestBuildRejectsDuplicateSlot(t *testing.T) {
	s := &scenario.Scenario{
		Method: "yager",
		Slots: []scenario.Slot{
			{Name: "face", Options: []string{"heads"}},
			{Name: "face", Options: []string{"tails"}},
		},
	}
	_, err := s.Build()
	assert.True(t, errors.IsConfiguration(err))
}

func TestBuildRejectsUnknownSlotInClaim(t *testing.T) {
	s := &scenario.Scenario{
		Method: "yager",
		Slots:  []scenario.Slot{{Name: "face", Options: []string{"heads", "tails"}}},
		Witnesses: []scenario.Witness{{
			Name: "observer",
			Claims: []scenario.Claim{{
				Weight: 1.0,
				Allow:  map[string][]string{"coin": {"heads"}},
			}},
		}},
	}
	_, err := s.Build()
	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))
	assert.Contains(t, err.Error(), "observer")
}

func TestBuildRejectsUnnormalizedWitness(t *testing.T) {
	s := &scenario.Scenario{
		Method: "yager",
		Slots:  []scenario.Slot{{Name: "face", Options: []string{"heads", "tails"}}},
		Witnesses: []scenario.Witness{{
			Name: "observer",
			Claims: []scenario.Claim{{
				Weight: 0.5,
				Allow:  map[string][]string{"face": {"heads"}},
			}},
		}},
	}
	_, err := s.Build()
	assert.True(t, errors.IsNormalization(err))
}

func TestCluedoExampleScenario(t *testing.T) {
	s, err := scenario.Load(filepath.Join("..", "examples", "cluedo.toml"))
	require.NoError(t, err)

	compiled, err := s.Build()
	require.NoError(t, err)
	assert.Equal(t, 3, compiled.Frame.Slots())
	assert.Equal(t, 3, compiled.Engine.Sources())
	require.Len(t, compiled.Queries, 3)

	for _, q := range compiled.Queries {
		res, err := compiled.Engine.Coarse(q.Constraint)
		require.NoError(t, err, "query %q", q.Name)
		assert.GreaterOrEqual(t, res.Plausibility, res.Belief, "query %q", q.Name)
	}
}
