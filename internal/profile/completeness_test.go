package profile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fightstation/backend/internal/db"
	"github.com/fightstation/backend/internal/profile"
)

func ptr[T any](v T) *T { return &v }

func fullFighter() *db.Fighter {
	gymID := "gym-1"
	return &db.Fighter{
		ID:              "f-1",
		Name:            "Arlo Mensah",
		Nickname:        "The Anvil",
		WeightClass:     db.WeightMiddleweight,
		ExperienceLevel: db.ExperienceAdvanced,
		Sports:          db.StringList{"boxing", "kickboxing"},
		City:            "London",
		Country:         "UK",
		Bio:             "Southpaw with ten years of amateur boxing behind me.",
		AvatarURL:       "https://cdn.example/avatars/f-1.jpg",
		GymID:           &gymID,
		Latitude:        ptr(51.5072),
		Longitude:       ptr(-0.1276),
	}
}

func TestScoreFighter_FullProfile(t *testing.T) {
	res := profile.ScoreFighter(fullFighter())

	assert.Equal(t, 100, res.Percentage)
	assert.True(t, res.IsComplete)
	assert.Empty(t, profile.NextAction(res))
}

func TestScoreFighter_MissingRequiredNeverComplete(t *testing.T) {
	f := fullFighter()
	f.City = ""

	res := profile.ScoreFighter(f)

	assert.False(t, res.IsComplete)
	assert.Less(t, res.Percentage, 100)
	assert.Equal(t, "Add your city to find fighters near you", profile.NextAction(res))
}

// Onboarding pre-fills welterweight, so an untouched weight class does not
// count as answered.
func TestScoreFighter_DefaultWeightClassIsNotAnswered(t *testing.T) {
	f := fullFighter()
	f.WeightClass = db.DefaultWeightClass

	res := profile.ScoreFighter(f)

	assert.False(t, res.IsComplete)
	for _, field := range res.Required {
		if field.Name == "weight_class" {
			assert.False(t, field.Completed)
		}
	}
	assert.Equal(t, "Pick your weight class to get matched fairly", profile.NextAction(res))
}

func TestScoreFighter_ShortBioDoesNotCount(t *testing.T) {
	f := fullFighter()
	f.Bio = "I box."

	res := profile.ScoreFighter(f)

	assert.True(t, res.IsComplete)
	assert.Less(t, res.Percentage, 100)
}

func TestScoreFighter_EmptyProfile(t *testing.T) {
	res := profile.ScoreFighter(&db.Fighter{})

	assert.False(t, res.IsComplete)
	assert.GreaterOrEqual(t, res.Percentage, 0)
	// the first required gap surfaces first
	assert.Equal(t, "Add your name so other fighters can find you", profile.NextAction(res))
}

func TestScoreGym_RequiredOnlyIsExactlyHalf(t *testing.T) {
	g := &db.Gym{
		Name:    "Iron Temple",
		City:    "Manchester",
		Country: "UK",
	}

	res := profile.ScoreGym(g)

	assert.Equal(t, 50, res.Percentage)
	assert.True(t, res.IsComplete)
	assert.Equal(t, "Describe your gym and its training style", profile.NextAction(res))
}

func TestScoreGym_FullProfile(t *testing.T) {
	g := &db.Gym{
		Name:         "Iron Temple",
		Description:  "Striking-focused gym with daily open sparring.",
		City:         "Manchester",
		Country:      "UK",
		Address:      "14 Canal Street",
		ContactPhone: "+44 161 555 0101",
		LogoURL:      "https://cdn.example/gyms/iron-temple.png",
		Photos:       db.StringList{"https://cdn.example/gyms/ring.jpg"},
	}

	res := profile.ScoreGym(g)

	assert.Equal(t, 100, res.Percentage)
	assert.True(t, res.IsComplete)
	assert.Empty(t, profile.NextAction(res))
}

// An address that only repeats the city is treated as missing.
func TestScoreGym_AddressMustBeMoreThanCity(t *testing.T) {
	g := &db.Gym{
		Name:    "Iron Temple",
		City:    "Manchester",
		Country: "UK",
		Address: "Manchester",
	}

	res := profile.ScoreGym(g)

	var addr *profile.FieldStatus
	for i := range res.Recommended {
		if res.Recommended[i].Name == "address" {
			addr = &res.Recommended[i]
		}
	}
	require.NotNil(t, addr)
	assert.False(t, addr.Completed)
}

func TestNextAction_TierOrder(t *testing.T) {
	// all required done, recommended and optional gaps remain; the first
	// recommended gap wins over every optional one
	f := fullFighter()
	f.Bio = ""
	f.Nickname = ""

	res := profile.ScoreFighter(f)
	assert.Equal(t, "Write a short bio about your fight background", profile.NextAction(res))
}
