package matching_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fightstation/backend/internal/db"
	"github.com/fightstation/backend/internal/matching"
)

func TestWeightClassProximity(t *testing.T) {
	// identical classes are a perfect signal
	score, ok := matching.WeightClassProximity(db.WeightMiddleweight, db.WeightMiddleweight, 3)
	require.True(t, ok)
	assert.Equal(t, 1.0, score)

	// adjacent classes decay but stay positive
	adjacent, ok := matching.WeightClassProximity(db.WeightMiddleweight, db.WeightWelterweight, 3)
	require.True(t, ok)
	assert.Greater(t, adjacent, 0.0)
	assert.Less(t, adjacent, 1.0)

	// two apart scores lower than one apart
	twoApart, ok := matching.WeightClassProximity(db.WeightMiddleweight, db.WeightLightweight, 3)
	require.True(t, ok)
	assert.Less(t, twoApart, adjacent)

	// at or beyond the gap floor the signal is zero
	floor, ok := matching.WeightClassProximity(db.WeightFlyweight, db.WeightWelterweight, 3)
	require.True(t, ok)
	assert.Equal(t, 0.0, floor)
}

func TestWeightClassProximity_MissingAttribute(t *testing.T) {
	_, ok := matching.WeightClassProximity("", db.WeightMiddleweight, 3)
	assert.False(t, ok)

	_, ok = matching.WeightClassProximity(db.WeightMiddleweight, "cruiserweight", 3)
	assert.False(t, ok)
}

func TestExperienceProximity(t *testing.T) {
	same, ok := matching.ExperienceProximity(db.ExperienceIntermediate, db.ExperienceIntermediate, 3)
	require.True(t, ok)
	assert.Equal(t, 1.0, same)

	// intermediate vs advanced beats beginner vs professional
	adjacent, ok := matching.ExperienceProximity(db.ExperienceIntermediate, db.ExperienceAdvanced, 3)
	require.True(t, ok)
	farApart, ok2 := matching.ExperienceProximity(db.ExperienceBeginner, db.ExperienceProfessional, 3)
	require.True(t, ok2)
	assert.Greater(t, adjacent, farApart)
}

func TestWeightClassFit(t *testing.T) {
	// empty accepted set means open on the dimension
	score, ok := matching.WeightClassFit(db.WeightMiddleweight, nil, 3)
	require.True(t, ok)
	assert.Equal(t, 1.0, score)

	// membership in the accepted set is a perfect fit
	accepted := db.StringList{string(db.WeightWelterweight), string(db.WeightMiddleweight)}
	score, ok = matching.WeightClassFit(db.WeightMiddleweight, accepted, 3)
	require.True(t, ok)
	assert.Equal(t, 1.0, score)

	// near miss decays by distance to the closest accepted class
	score, ok = matching.WeightClassFit(db.WeightLightHeavyweight, accepted, 3)
	require.True(t, ok)
	assert.Greater(t, score, 0.0)
	assert.Less(t, score, 1.0)

	// unknown subject class cannot be scored
	_, ok = matching.WeightClassFit("", accepted, 3)
	assert.False(t, ok)
}

func TestSportOverlap(t *testing.T) {
	boxing := db.StringList{"boxing"}
	striking := db.StringList{"boxing", "kickboxing"}
	grappling := db.StringList{"bjj", "wrestling"}

	// identical sets
	score, ok := matching.SportOverlap(striking, striking)
	require.True(t, ok)
	assert.Equal(t, 1.0, score)

	// disjoint sets
	score, ok = matching.SportOverlap(striking, grappling)
	require.True(t, ok)
	assert.Equal(t, 0.0, score)

	// partial credit: {boxing} vs {boxing, kickboxing} = 1/2
	score, ok = matching.SportOverlap(boxing, striking)
	require.True(t, ok)
	assert.InDelta(t, 0.5, score, 1e-9)

	// empty on either side is a missing attribute, not zero overlap
	_, ok = matching.SportOverlap(nil, striking)
	assert.False(t, ok)
	_, ok = matching.SportOverlap(striking, nil)
	assert.False(t, ok)
}

func TestHaversineKm(t *testing.T) {
	// London to Manchester is roughly 262 km
	km := matching.HaversineKm(51.5072, -0.1276, 53.4808, -2.2426)
	assert.InDelta(t, 262, km, 5)

	// zero distance for identical points
	assert.InDelta(t, 0, matching.HaversineKm(51.5, -0.12, 51.5, -0.12), 1e-9)
}

func TestGeoProximity(t *testing.T) {
	lat1, lng1 := 51.5072, -0.1276
	lat2, lng2 := 51.5172, -0.1276 // about 1.1 km north

	score, km, ok := matching.GeoProximity(&lat1, &lng1, &lat2, &lng2)
	require.True(t, ok)
	assert.Less(t, km, 2.0)
	assert.Greater(t, score, 0.95)

	// further away scores strictly lower
	lat3, lng3 := 53.4808, -2.2426
	far, _, ok := matching.GeoProximity(&lat1, &lng1, &lat3, &lng3)
	require.True(t, ok)
	assert.Less(t, far, score)

	// missing coordinates on either side
	_, _, ok = matching.GeoProximity(nil, &lng1, &lat2, &lng2)
	assert.False(t, ok)
	_, _, ok = matching.GeoProximity(&lat1, &lng1, &lat2, nil)
	assert.False(t, ok)
}

func TestCommonSports(t *testing.T) {
	subject := db.StringList{"boxing", "kickboxing", "bjj"}
	candidate := db.StringList{"bjj", "boxing"}

	common := matching.CommonSports(subject, candidate)
	// subject declaration order is preserved
	assert.Equal(t, []string{"boxing", "bjj"}, common)
}
