package matching

import "fmt"

// TargetKind selects what a ranking request is ranking.
type TargetKind string

const (
	KindEvents   TargetKind = "events"
	KindPartners TargetKind = "partners"
	KindGyms     TargetKind = "gyms"
)

// Criteria controls how much each compatibility dimension contributes and
// which hard filters apply. Weights do not need to sum to 1; the aggregator
// normalizes by the sum of active weights.
type Criteria struct {
	WeightClassWeight float64 `json:"weight_class_weight"`
	ExperienceWeight  float64 `json:"experience_weight"`
	DistanceWeight    float64 `json:"distance_weight"`
	SportWeight       float64 `json:"sport_weight"`

	// MaxDistanceKm is a hard cutoff; 0 disables it. Candidates beyond the
	// cutoff are excluded, not scored low.
	MaxDistanceKm float64 `json:"max_distance_km"`
	// RequiredSport is a hard filter; empty matches any sport.
	RequiredSport string `json:"required_sport"`

	// MaxClassGap / MaxLevelGap floor the ordinal decay: candidates further
	// apart than this score zero on the dimension.
	MaxClassGap int `json:"max_class_gap"`
	MaxLevelGap int `json:"max_level_gap"`
}

// DefaultCriteria returns the weights the mobile app ships with.
func DefaultCriteria() Criteria {
	return Criteria{
		WeightClassWeight: 0.30,
		ExperienceWeight:  0.25,
		DistanceWeight:    0.25,
		SportWeight:       0.20,
		MaxClassGap:       3,
		MaxLevelGap:       3,
	}
}

// Overrides is a partial criteria supplied by the caller. Only non-nil
// fields replace the defaults; merging is field by field, never deep.
type Overrides struct {
	WeightClassWeight *float64 `json:"weight_class_weight"`
	ExperienceWeight  *float64 `json:"experience_weight"`
	DistanceWeight    *float64 `json:"distance_weight"`
	SportWeight       *float64 `json:"sport_weight"`
	MaxDistanceKm     *float64 `json:"max_distance_km"`
	RequiredSport     *string  `json:"required_sport"`
	MaxClassGap       *int     `json:"max_class_gap"`
	MaxLevelGap       *int     `json:"max_level_gap"`
}

// Merge applies non-nil override fields on top of c.
func (c Criteria) Merge(o *Overrides) Criteria {
	if o == nil {
		return c
	}
	if o.WeightClassWeight != nil {
		c.WeightClassWeight = *o.WeightClassWeight
	}
	if o.ExperienceWeight != nil {
		c.ExperienceWeight = *o.ExperienceWeight
	}
	if o.DistanceWeight != nil {
		c.DistanceWeight = *o.DistanceWeight
	}
	if o.SportWeight != nil {
		c.SportWeight = *o.SportWeight
	}
	if o.MaxDistanceKm != nil {
		c.MaxDistanceKm = *o.MaxDistanceKm
	}
	if o.RequiredSport != nil {
		c.RequiredSport = *o.RequiredSport
	}
	if o.MaxClassGap != nil {
		c.MaxClassGap = *o.MaxClassGap
	}
	if o.MaxLevelGap != nil {
		c.MaxLevelGap = *o.MaxLevelGap
	}
	return c
}

// Validate rejects criteria before any fetch happens.
func (c Criteria) Validate() error {
	for name, w := range map[string]float64{
		"weight_class_weight": c.WeightClassWeight,
		"experience_weight":   c.ExperienceWeight,
		"distance_weight":     c.DistanceWeight,
		"sport_weight":        c.SportWeight,
	} {
		if w < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidCriteria, name)
		}
	}
	if c.WeightClassWeight+c.ExperienceWeight+c.DistanceWeight+c.SportWeight == 0 {
		return fmt.Errorf("%w: at least one weight must be positive", ErrInvalidCriteria)
	}
	if c.MaxDistanceKm < 0 {
		return fmt.Errorf("%w: max_distance_km must not be negative", ErrInvalidCriteria)
	}
	if c.MaxClassGap <= 0 {
		return fmt.Errorf("%w: max_class_gap must be positive", ErrInvalidCriteria)
	}
	if c.MaxLevelGap <= 0 {
		return fmt.Errorf("%w: max_level_gap must be positive", ErrInvalidCriteria)
	}
	return nil
}
