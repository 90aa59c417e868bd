package matching_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fightstation/backend/internal/matching"
)

func TestCriteria_MergeNilKeepsDefaults(t *testing.T) {
	def := matching.DefaultCriteria()
	assert.Equal(t, def, def.Merge(nil))
}

func TestCriteria_MergeIsFieldByField(t *testing.T) {
	merged := matching.DefaultCriteria().Merge(&matching.Overrides{
		DistanceWeight: ptr(0.5),
		MaxDistanceKm:  ptr(25.0),
		RequiredSport:  ptr("boxing"),
	})

	def := matching.DefaultCriteria()
	assert.Equal(t, 0.5, merged.DistanceWeight)
	assert.Equal(t, 25.0, merged.MaxDistanceKm)
	assert.Equal(t, "boxing", merged.RequiredSport)
	// untouched fields keep their defaults
	assert.Equal(t, def.WeightClassWeight, merged.WeightClassWeight)
	assert.Equal(t, def.ExperienceWeight, merged.ExperienceWeight)
	assert.Equal(t, def.SportWeight, merged.SportWeight)
	assert.Equal(t, def.MaxClassGap, merged.MaxClassGap)
}

func TestCriteria_MergeAllowsZeroValues(t *testing.T) {
	// an explicit zero override is not the same as "no override"
	merged := matching.DefaultCriteria().Merge(&matching.Overrides{
		SportWeight: ptr(0.0),
	})
	assert.Equal(t, 0.0, merged.SportWeight)
}

func TestCriteria_ValidateDefaults(t *testing.T) {
	require.NoError(t, matching.DefaultCriteria().Validate())
}

func TestCriteria_ValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*matching.Criteria)
	}{
		{"negative weight", func(c *matching.Criteria) { c.DistanceWeight = -0.1 }},
		{"all weights zero", func(c *matching.Criteria) {
			c.WeightClassWeight, c.ExperienceWeight, c.DistanceWeight, c.SportWeight = 0, 0, 0, 0
		}},
		{"negative max distance", func(c *matching.Criteria) { c.MaxDistanceKm = -5 }},
		{"non-positive class gap", func(c *matching.Criteria) { c.MaxClassGap = 0 }},
		{"non-positive level gap", func(c *matching.Criteria) { c.MaxLevelGap = -1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := matching.DefaultCriteria()
			tc.mutate(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, matching.ErrInvalidCriteria)
		})
	}
}
