package matching

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/fightstation/backend/internal/db"
)

// Dimension names used in score breakdowns.
const (
	DimWeightClass = "weight_class"
	DimExperience  = "experience"
	DimDistance    = "distance"
	DimSports      = "sports"
)

// notableSignal gates reason strings: a dimension only explains a match when
// its raw signal clears this threshold.
const notableSignal = 0.6

// maxReasons caps how many reason strings a single match carries.
const maxReasons = 3

// MatchScore is the transient output of scoring one candidate against one
// subject. Never persisted; recomputed per ranking request.
type MatchScore struct {
	EntityID     string     `json:"entity_id"`
	Kind         TargetKind `json:"kind"`
	OverallScore float64    `json:"overall_score"`
	// Breakdown holds each dimension's share of the overall 0-100 score.
	Breakdown map[string]float64 `json:"breakdown"`
	// Reasons explain the top contributing dimensions, strongest first.
	// Empty when nothing clears the notable threshold.
	Reasons []string `json:"reasons"`
	// DistanceKm is set when both sides had coordinates.
	DistanceKm *float64 `json:"distance_km,omitempty"`

	Fighter *db.Fighter       `json:"fighter,omitempty"`
	Event   *db.SparringEvent `json:"event,omitempty"`
	Gym     *db.Gym           `json:"gym,omitempty"`
}

// signal is one dimension's raw 0..1 compatibility plus its configured
// weight and the reason string to surface if it turns out notable.
type signal struct {
	dim    string
	raw    float64
	weight float64
	reason string
}

// ScorePartner scores a candidate fighter against the subject.
func ScorePartner(subject, cand *db.Fighter, c Criteria) MatchScore {
	var signals []signal

	if raw, ok := WeightClassProximity(subject.WeightClass, cand.WeightClass, c.MaxClassGap); ok {
		reason := "Close weight class"
		if subject.WeightClass == cand.WeightClass {
			reason = "Same weight class"
		}
		signals = append(signals, signal{DimWeightClass, raw, c.WeightClassWeight, reason})
	}

	if raw, ok := ExperienceProximity(subject.ExperienceLevel, cand.ExperienceLevel, c.MaxLevelGap); ok {
		reason := "Similar experience level"
		if subject.ExperienceLevel == cand.ExperienceLevel {
			reason = "Same experience level"
		}
		signals = append(signals, signal{DimExperience, raw, c.ExperienceWeight, reason})
	}

	ms := MatchScore{EntityID: cand.ID, Kind: KindPartners, Fighter: cand}

	if raw, km, ok := GeoProximity(subject.Latitude, subject.Longitude, cand.Latitude, cand.Longitude); ok {
		d := km
		ms.DistanceKm = &d
		signals = append(signals, signal{DimDistance, raw, c.DistanceWeight, distanceReason(km)})
	}

	if raw, ok := SportOverlap(subject.Sports, cand.Sports); ok {
		signals = append(signals, signal{DimSports, raw, c.SportWeight, sharedSportsReason("Shares", subject.Sports, cand.Sports)})
	}

	finishScore(&ms, signals)
	return ms
}

// ScoreEvent scores a sparring event against the subject. Weight and
// experience use the event's accepted sets; geo uses the hosting gym's
// position; the sport dimension uses the gym's offered sports.
func ScoreEvent(subject *db.Fighter, ev *db.SparringEvent, c Criteria) MatchScore {
	var signals []signal

	if raw, ok := WeightClassFit(subject.WeightClass, ev.WeightClasses, c.MaxClassGap); ok {
		reason := "Close to the accepted weight classes"
		if raw == 1 {
			reason = "Your weight class is accepted"
		}
		signals = append(signals, signal{DimWeightClass, raw, c.WeightClassWeight, reason})
	}

	if raw, ok := ExperienceFit(subject.ExperienceLevel, ev.ExperienceLevels, c.MaxLevelGap); ok {
		reason := "Close to the accepted experience levels"
		if raw == 1 {
			reason = "Open to your experience level"
		}
		signals = append(signals, signal{DimExperience, raw, c.ExperienceWeight, reason})
	}

	ms := MatchScore{EntityID: ev.ID, Kind: KindEvents, Event: ev}

	if ev.Gym != nil {
		if raw, km, ok := GeoProximity(subject.Latitude, subject.Longitude, ev.Gym.Latitude, ev.Gym.Longitude); ok {
			d := km
			ms.DistanceKm = &d
			signals = append(signals, signal{DimDistance, raw, c.DistanceWeight, distanceReason(km)})
		}
		if raw, ok := SportOverlap(subject.Sports, ev.Gym.Sports); ok {
			signals = append(signals, signal{DimSports, raw, c.SportWeight, sharedSportsReason("Hosted by a gym offering", subject.Sports, ev.Gym.Sports)})
		}
	}

	finishScore(&ms, signals)
	return ms
}

// ScoreGym scores a gym against the subject. Weight-class and experience
// rules do not apply to gyms and are skipped entirely, leaving sport overlap
// and distance to carry the score.
func ScoreGym(subject *db.Fighter, gym *db.Gym, c Criteria) MatchScore {
	var signals []signal

	ms := MatchScore{EntityID: gym.ID, Kind: KindGyms, Gym: gym}

	if raw, km, ok := GeoProximity(subject.Latitude, subject.Longitude, gym.Latitude, gym.Longitude); ok {
		d := km
		ms.DistanceKm = &d
		signals = append(signals, signal{DimDistance, raw, c.DistanceWeight, distanceReason(km)})
	}

	if raw, ok := SportOverlap(subject.Sports, gym.Sports); ok {
		signals = append(signals, signal{DimSports, raw, c.SportWeight, sharedSportsReason("Offers", subject.Sports, gym.Sports)})
	}

	finishScore(&ms, signals)
	return ms
}

// finishScore aggregates the collected signals into the overall 0-100 score,
// the per-dimension breakdown and the reason list.
//
// Dimensions that produced no signal (missing attribute on either side) are
// excluded from the normalization denominator, so an incomplete profile is
// not punished with zero-scored dead weight.
func finishScore(ms *MatchScore, signals []signal) {
	ms.Breakdown = make(map[string]float64, len(signals))

	var activeWeight float64
	for _, s := range signals {
		activeWeight += s.weight
	}
	if activeWeight == 0 {
		ms.OverallScore = 0
		return
	}

	var total float64
	for _, s := range signals {
		contribution := s.raw * s.weight / activeWeight * 100
		ms.Breakdown[s.dim] = round2(contribution)
		total += contribution
	}
	ms.OverallScore = round2(total)
	ms.Reasons = topReasons(signals)
}

// topReasons picks at most maxReasons dimensions, ordered by weighted
// contribution, keeping only those whose raw signal is notable. It never
// fabricates a reason for a weak match.
func topReasons(signals []signal) []string {
	sorted := make([]signal, len(signals))
	copy(sorted, signals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].raw*sorted[i].weight > sorted[j].raw*sorted[j].weight
	})

	var reasons []string
	for _, s := range sorted {
		if s.raw <= notableSignal || s.reason == "" {
			continue
		}
		reasons = append(reasons, s.reason)
		if len(reasons) == maxReasons {
			break
		}
	}
	return reasons
}

func distanceReason(km float64) string {
	if km < 1 {
		return "Less than 1 km away"
	}
	return fmt.Sprintf("%.0f km away", km)
}

func sharedSportsReason(prefix string, subject, candidate db.StringList) string {
	common := CommonSports(subject, candidate)
	if len(common) == 0 {
		return ""
	}
	if len(common) > 3 {
		common = common[:3]
	}
	return prefix + " " + strings.Join(common, ", ")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
