package matching

import (
	"math"

	"github.com/fightstation/backend/internal/db"
)

const (
	earthRadiusKm = 6371

	// geoHalfDistanceKm calibrates the exponential distance decay:
	// exp(-km/50) keeps a 2 km candidate near 1.0 and a 50 km candidate
	// around 0.37.
	geoHalfDistanceKm = 50
)

// Every rule in this file is total: a missing or unknown attribute on either
// side reports ok=false instead of failing, so partial profiles never break a
// scoring pass. Dimensions with ok=false are excluded from weight
// normalization by the aggregator.

// WeightClassProximity scores two weight classes by ordinal distance.
// Identical classes score 1.0, decaying linearly and flooring at 0 once the
// gap reaches maxGap.
func WeightClassProximity(a, b db.WeightClass, maxGap int) (float64, bool) {
	ai, ok := a.Ordinal()
	if !ok {
		return 0, false
	}
	bi, ok := b.Ordinal()
	if !ok {
		return 0, false
	}
	return ordinalDecay(absInt(ai-bi), maxGap), true
}

// WeightClassFit scores a fighter's class against an event's accepted set.
// An empty set means the event is open on this dimension. Otherwise the
// closest accepted class wins: membership scores 1.0, near misses decay.
func WeightClassFit(subject db.WeightClass, accepted db.StringList, maxGap int) (float64, bool) {
	si, ok := subject.Ordinal()
	if !ok {
		return 0, false
	}
	if len(accepted) == 0 {
		return 1, true
	}
	best := -1
	for _, raw := range accepted {
		ci, ok := db.WeightClass(raw).Ordinal()
		if !ok {
			continue
		}
		if gap := absInt(si - ci); best < 0 || gap < best {
			best = gap
		}
	}
	if best < 0 {
		return 0, false
	}
	return ordinalDecay(best, maxGap), true
}

// ExperienceProximity scores two experience levels by ordinal distance, with
// the same decay shape as weight classes. Adjacent levels score higher than
// levels further apart.
func ExperienceProximity(a, b db.ExperienceLevel, maxGap int) (float64, bool) {
	ai, ok := a.Ordinal()
	if !ok {
		return 0, false
	}
	bi, ok := b.Ordinal()
	if !ok {
		return 0, false
	}
	return ordinalDecay(absInt(ai-bi), maxGap), true
}

// ExperienceFit scores a fighter's level against an event's accepted set.
func ExperienceFit(subject db.ExperienceLevel, accepted db.StringList, maxGap int) (float64, bool) {
	si, ok := subject.Ordinal()
	if !ok {
		return 0, false
	}
	if len(accepted) == 0 {
		return 1, true
	}
	best := -1
	for _, raw := range accepted {
		ci, ok := db.ExperienceLevel(raw).Ordinal()
		if !ok {
			continue
		}
		if gap := absInt(si - ci); best < 0 || gap < best {
			best = gap
		}
	}
	if best < 0 {
		return 0, false
	}
	return ordinalDecay(best, maxGap), true
}

// SportOverlap is the Jaccard similarity of two practiced-sports sets:
// 0 for disjoint sets, 1.0 for identical sets, partial credit in between.
func SportOverlap(subject, candidate db.StringList) (float64, bool) {
	if len(subject) == 0 || len(candidate) == 0 {
		return 0, false
	}
	seen := make(map[string]bool, len(subject))
	for _, s := range subject {
		seen[s] = true
	}
	shared := 0
	for _, s := range candidate {
		if seen[s] {
			shared++
			seen[s] = false // count each sport once
		}
	}
	union := len(subject) + len(candidate) - shared
	if union == 0 {
		return 0, false
	}
	return float64(shared) / float64(union), true
}

// CommonSports returns the sports both sides practice, in the subject's
// declaration order.
func CommonSports(subject, candidate db.StringList) []string {
	var common []string
	for _, s := range subject {
		if candidate.Contains(s) {
			common = append(common, s)
		}
	}
	return common
}

// GeoProximity converts great-circle distance between two positions into a
// 0..1 score via exponential decay. km carries the raw distance for reason
// strings and hard-cutoff checks.
func GeoProximity(subjectLat, subjectLng, candLat, candLng *float64) (score, km float64, ok bool) {
	if subjectLat == nil || subjectLng == nil || candLat == nil || candLng == nil {
		return 0, 0, false
	}
	km = HaversineKm(*subjectLat, *subjectLng, *candLat, *candLng)
	score = math.Exp(-km / geoHalfDistanceKm)
	if score > 1 {
		score = 1
	}
	return score, km, true
}

// HaversineKm computes the great-circle distance between two points.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// ordinalDecay maps an ordinal gap to 1 - gap/maxGap, floored at 0.
func ordinalDecay(gap, maxGap int) float64 {
	if maxGap <= 0 {
		maxGap = 1
	}
	if gap >= maxGap {
		return 0
	}
	return 1 - float64(gap)/float64(maxGap)
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
