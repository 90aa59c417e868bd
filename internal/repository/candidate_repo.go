package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/fightstation/backend/internal/db"
	"github.com/fightstation/backend/internal/matching"
)

// CandidateRepository implements matching.Store on top of gorm. It applies
// only hard filters (required sport, distance bounding box, event status and
// capacity); soft ranking belongs to the score aggregator.
type CandidateRepository struct {
	db *gorm.DB
}

// NewCandidateRepository creates a repository bound to the given DB connection.
func NewCandidateRepository(database *gorm.DB) *CandidateRepository {
	return &CandidateRepository{db: database}
}

var _ matching.Store = (*CandidateRepository)(nil)

// FetchFighterByID loads one fighter. A missing row maps to
// matching.ErrSubjectNotFound so the pipeline can fail fast.
func (r *CandidateRepository) FetchFighterByID(ctx context.Context, id string) (*db.Fighter, error) {
	var fighter db.Fighter
	err := r.db.WithContext(ctx).First(&fighter, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", matching.ErrSubjectNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &fighter, nil
}

// FetchCandidateFighters returns potential sparring partners, always
// excluding the subject's own id.
func (r *CandidateRepository) FetchCandidateFighters(ctx context.Context, excludeID string, f matching.Filters) ([]db.Fighter, error) {
	query := r.db.WithContext(ctx).
		Model(&db.Fighter{}).
		Where("id <> ?", excludeID)

	query = applySportFilter(query, "fighters.sports", f.RequiredSport)
	query = applyBoundingBox(query, "fighters.latitude", "fighters.longitude", f)

	var fighters []db.Fighter
	if err := query.Limit(f.FetchLimit).Find(&fighters).Error; err != nil {
		return nil, err
	}
	return dedupeFighters(fighters), nil
}

// FetchCandidateEvents returns published, not-yet-started events with spare
// capacity, with the hosting gym preloaded for geo and sport scoring.
func (r *CandidateRepository) FetchCandidateEvents(ctx context.Context, f matching.Filters) ([]db.SparringEvent, error) {
	query := r.db.WithContext(ctx).
		Model(&db.SparringEvent{}).
		Preload("Gym").
		Joins("JOIN gyms ON gyms.id = sparring_events.gym_id").
		Where("sparring_events.status = ?", db.EventStatusPublished).
		Where("sparring_events.starts_at > ?", time.Now().UTC()).
		Where("sparring_events.max_participants = 0 OR sparring_events.participant_count < sparring_events.max_participants")

	query = applySportFilter(query, "gyms.sports", f.RequiredSport)
	query = applyBoundingBox(query, "gyms.latitude", "gyms.longitude", f)

	var events []db.SparringEvent
	if err := query.Limit(f.FetchLimit).Find(&events).Error; err != nil {
		return nil, err
	}
	return dedupeEvents(events), nil
}

// FetchCandidateGyms returns gyms passing the hard filters.
func (r *CandidateRepository) FetchCandidateGyms(ctx context.Context, f matching.Filters) ([]db.Gym, error) {
	query := r.db.WithContext(ctx).Model(&db.Gym{})

	query = applySportFilter(query, "gyms.sports", f.RequiredSport)
	query = applyBoundingBox(query, "gyms.latitude", "gyms.longitude", f)

	var gyms []db.Gym
	if err := query.Limit(f.FetchLimit).Find(&gyms).Error; err != nil {
		return nil, err
	}
	return dedupeGyms(gyms), nil
}

// applySportFilter matches the quoted sport inside the JSON-serialized list
// column. Works on both MySQL and SQLite text columns.
func applySportFilter(query *gorm.DB, column, sport string) *gorm.DB {
	if sport == "" {
		return query
	}
	return query.Where(column+" LIKE ?", "%\""+sport+"\"%")
}

// applyBoundingBox narrows candidates to a lat/lng box around the origin.
// The box over-approximates the circular cutoff; the pipeline re-checks the
// exact great-circle distance after scoring. Rows without coordinates stay
// in the result (scoring treats their distance as unknown, and a configured
// cutoff cannot prove them out of range).
func applyBoundingBox(query *gorm.DB, latCol, lngCol string, f matching.Filters) *gorm.DB {
	if f.MaxDistanceKm <= 0 || f.OriginLat == nil || f.OriginLng == nil {
		return query
	}

	latDelta := f.MaxDistanceKm / 110.574
	lngDelta := f.MaxDistanceKm / (111.320 * math.Cos(*f.OriginLat*math.Pi/180))
	if lngDelta < 0 {
		lngDelta = -lngDelta
	}

	return query.Where(
		fmt.Sprintf("(%s IS NULL OR %s IS NULL OR (%s BETWEEN ? AND ? AND %s BETWEEN ? AND ?))",
			latCol, lngCol, latCol, lngCol),
		*f.OriginLat-latDelta, *f.OriginLat+latDelta,
		*f.OriginLng-lngDelta, *f.OriginLng+lngDelta,
	)
}

func dedupeFighters(in []db.Fighter) []db.Fighter {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, f := range in {
		if seen[f.ID] {
			continue
		}
		seen[f.ID] = true
		out = append(out, f)
	}
	return out
}

func dedupeEvents(in []db.SparringEvent) []db.SparringEvent {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, e := range in {
		if seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		out = append(out, e)
	}
	return out
}

func dedupeGyms(in []db.Gym) []db.Gym {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, g := range in {
		if seen[g.ID] {
			continue
		}
		seen[g.ID] = true
		out = append(out, g)
	}
	return out
}
