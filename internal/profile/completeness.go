package profile

import (
	"math"

	"github.com/fightstation/backend/internal/db"
)

// Importance tiers a profile field into the completeness formula.
type Importance string

const (
	ImportanceRequired    Importance = "required"
	ImportanceRecommended Importance = "recommended"
	ImportanceOptional    Importance = "optional"
)

// Tier weights: required fields carry half of the percentage, recommended a
// bit over a third, optional the rest.
const (
	requiredWeight    = 50.0
	recommendedWeight = 35.0
	optionalWeight    = 15.0
)

// FieldStatus reports one profile field's completion state.
type FieldStatus struct {
	Name       string     `json:"name"`
	Label      string     `json:"label"`
	Completed  bool       `json:"completed"`
	Importance Importance `json:"importance"`
}

// Result is computed on demand from a live record and never persisted.
// IsComplete depends only on the required tier, not on the percentage.
type Result struct {
	Percentage  int           `json:"percentage"`
	Required    []FieldStatus `json:"required"`
	Recommended []FieldStatus `json:"recommended"`
	Optional    []FieldStatus `json:"optional"`
	IsComplete  bool          `json:"is_complete"`
}

// nextActions maps field name to the call-to-action shown in the app.
// Declaration order of the field tables decides which one surfaces first.
var nextActions = map[string]string{
	"name":             "Add your name so other fighters can find you",
	"weight_class":     "Pick your weight class to get matched fairly",
	"experience_level": "Set your experience level",
	"sports":           "Add the combat sports you practice",
	"city":             "Add your city to find fighters near you",
	"bio":              "Write a short bio about your fight background",
	"country":          "Add your country",
	"avatar":           "Upload a profile photo",
	"gym":              "Link your gym to meet training partners there",
	"nickname":         "Add your fight nickname",
	"coordinates":      "Pin your location for distance-based matches",
	"gym_name":         "Add your gym's name",
	"gym_city":         "Add the city your gym is in",
	"gym_country":      "Add your gym's country",
	"description":      "Describe your gym and its training style",
	"address":          "Add your gym's street address",
	"contact_phone":    "Add a phone number fighters can reach you on",
	"logo":             "Upload your gym's logo",
	"photos":           "Add photos of your facilities",
}

type fighterField struct {
	name       string
	label      string
	importance Importance
	completed  func(*db.Fighter) bool
}

// fighterFields is the static completeness table for fighter profiles.
// Order matters: NextAction scans it top to bottom within each tier.
//
// The weight-class predicate is differs-from-default on purpose: onboarding
// pre-fills welterweight, so an untouched value is not a meaningful answer.
var fighterFields = []fighterField{
	{"name", "Name", ImportanceRequired, func(f *db.Fighter) bool {
		return f.Name != ""
	}},
	{"weight_class", "Weight class", ImportanceRequired, func(f *db.Fighter) bool {
		_, ok := f.WeightClass.Ordinal()
		return ok && f.WeightClass != db.DefaultWeightClass
	}},
	{"experience_level", "Experience level", ImportanceRequired, func(f *db.Fighter) bool {
		_, ok := f.ExperienceLevel.Ordinal()
		return ok
	}},
	{"sports", "Combat sports", ImportanceRequired, func(f *db.Fighter) bool {
		return len(f.Sports) > 0
	}},
	{"city", "City", ImportanceRequired, func(f *db.Fighter) bool {
		return f.City != ""
	}},

	{"bio", "Bio", ImportanceRecommended, func(f *db.Fighter) bool {
		return len(f.Bio) >= 20
	}},
	{"country", "Country", ImportanceRecommended, func(f *db.Fighter) bool {
		return f.Country != ""
	}},
	{"avatar", "Profile photo", ImportanceRecommended, func(f *db.Fighter) bool {
		return f.AvatarURL != ""
	}},
	{"gym", "Gym", ImportanceRecommended, func(f *db.Fighter) bool {
		return f.GymID != nil && *f.GymID != ""
	}},

	{"nickname", "Nickname", ImportanceOptional, func(f *db.Fighter) bool {
		return f.Nickname != ""
	}},
	{"coordinates", "Location pin", ImportanceOptional, func(f *db.Fighter) bool {
		return f.Latitude != nil && f.Longitude != nil
	}},
}

type gymField struct {
	name       string
	label      string
	importance Importance
	completed  func(*db.Gym) bool
}

// gymFields is the static completeness table for gym profiles.
var gymFields = []gymField{
	{"gym_name", "Gym name", ImportanceRequired, func(g *db.Gym) bool {
		return g.Name != ""
	}},
	{"gym_city", "City", ImportanceRequired, func(g *db.Gym) bool {
		return g.City != ""
	}},
	{"gym_country", "Country", ImportanceRequired, func(g *db.Gym) bool {
		return g.Country != ""
	}},

	{"description", "Description", ImportanceRecommended, func(g *db.Gym) bool {
		return g.Description != ""
	}},
	{"address", "Street address", ImportanceRecommended, func(g *db.Gym) bool {
		// an address that just repeats the city is not a street address
		return g.Address != "" && g.Address != g.City
	}},
	{"contact_phone", "Contact phone", ImportanceRecommended, func(g *db.Gym) bool {
		return g.ContactPhone != ""
	}},

	{"logo", "Logo", ImportanceOptional, func(g *db.Gym) bool {
		return g.LogoURL != ""
	}},
	{"photos", "Photos", ImportanceOptional, func(g *db.Gym) bool {
		return len(g.Photos) > 0
	}},
}

// ScoreFighter computes completeness for a fighter profile.
func ScoreFighter(f *db.Fighter) Result {
	statuses := make([]FieldStatus, 0, len(fighterFields))
	for _, field := range fighterFields {
		statuses = append(statuses, FieldStatus{
			Name:       field.name,
			Label:      field.label,
			Completed:  field.completed(f),
			Importance: field.importance,
		})
	}
	return buildResult(statuses)
}

// ScoreGym computes completeness for a gym profile.
func ScoreGym(g *db.Gym) Result {
	statuses := make([]FieldStatus, 0, len(gymFields))
	for _, field := range gymFields {
		statuses = append(statuses, FieldStatus{
			Name:       field.name,
			Label:      field.label,
			Completed:  field.completed(g),
			Importance: field.importance,
		})
	}
	return buildResult(statuses)
}

// NextAction returns the call-to-action for the first incomplete field,
// scanning required, then recommended, then optional, each in declaration
// order. Empty string means the profile is fully complete.
func NextAction(r Result) string {
	for _, tier := range [][]FieldStatus{r.Required, r.Recommended, r.Optional} {
		for _, f := range tier {
			if !f.Completed {
				return nextActions[f.Name]
			}
		}
	}
	return ""
}

func buildResult(statuses []FieldStatus) Result {
	var res Result
	for _, s := range statuses {
		switch s.Importance {
		case ImportanceRequired:
			res.Required = append(res.Required, s)
		case ImportanceRecommended:
			res.Recommended = append(res.Recommended, s)
		default:
			res.Optional = append(res.Optional, s)
		}
	}

	score := tierScore(res.Required, requiredWeight) +
		tierScore(res.Recommended, recommendedWeight) +
		tierScore(res.Optional, optionalWeight)

	res.Percentage = int(math.Round(score))
	if res.Percentage > 100 {
		res.Percentage = 100
	}
	if res.Percentage < 0 {
		res.Percentage = 0
	}

	res.IsComplete = true
	for _, f := range res.Required {
		if !f.Completed {
			res.IsComplete = false
			break
		}
	}
	return res
}

func tierScore(fields []FieldStatus, weight float64) float64 {
	if len(fields) == 0 {
		return weight
	}
	done := 0
	for _, f := range fields {
		if f.Completed {
			done++
		}
	}
	return float64(done) / float64(len(fields)) * weight
}
