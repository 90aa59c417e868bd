package matching

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/fightstation/backend/internal/cache"
	"github.com/fightstation/backend/internal/db"
	"github.com/fightstation/backend/internal/metrics"
)

// DefaultLimit is used when a caller does not ask for a specific result count.
const DefaultLimit = 10

// Filters carries the hard filters a fetch applies in the data source.
// Soft ranking is entirely the aggregator's job; over-fetching is bounded by
// FetchLimit, a hint rather than a contract.
type Filters struct {
	RequiredSport string
	MaxDistanceKm float64
	OriginLat     *float64
	OriginLng     *float64
	FetchLimit    int
}

// Store is the narrow read surface the pipeline needs from the data source.
// Implementations must return ErrSubjectNotFound (possibly wrapped) when the
// subject id does not resolve, and deduplicated candidate sets.
type Store interface {
	FetchFighterByID(ctx context.Context, id string) (*db.Fighter, error)
	FetchCandidateFighters(ctx context.Context, excludeID string, f Filters) ([]db.Fighter, error)
	FetchCandidateEvents(ctx context.Context, f Filters) ([]db.SparringEvent, error)
	FetchCandidateGyms(ctx context.Context, f Filters) ([]db.Gym, error)
}

// Pipeline orchestrates fetch → score → sort → truncate for each target kind.
// It is stateless between calls; rankings are recomputed per request and only
// default-criteria results are cached.
type Pipeline struct {
	store     Store
	cache     *cache.RedisCache // optional
	log       *slog.Logger
	resultTTL time.Duration
}

// NewPipeline wires a pipeline. rc may be nil to disable result caching.
func NewPipeline(store Store, rc *cache.RedisCache, log *slog.Logger, resultTTL time.Duration) *Pipeline {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if resultTTL <= 0 {
		resultTTL = 5 * time.Minute
	}
	return &Pipeline{store: store, cache: rc, log: log, resultTTL: resultTTL}
}

// RankEvents ranks published sparring events for the fighter.
func (p *Pipeline) RankEvents(ctx context.Context, fighterID string, o *Overrides, limit int) ([]MatchScore, error) {
	return p.Rank(ctx, KindEvents, fighterID, o, limit)
}

// RankPartners ranks potential sparring partners for the fighter. The
// fighter's own profile is never part of the result.
func (p *Pipeline) RankPartners(ctx context.Context, fighterID string, o *Overrides, limit int) ([]MatchScore, error) {
	return p.Rank(ctx, KindPartners, fighterID, o, limit)
}

// RankGyms ranks gyms for the fighter.
func (p *Pipeline) RankGyms(ctx context.Context, fighterID string, o *Overrides, limit int) ([]MatchScore, error) {
	return p.Rank(ctx, KindGyms, fighterID, o, limit)
}

// Rank runs one ranking pass for the given target kind.
//
// Steps: merge overrides over defaults → validate → load subject (fail fast
// when it cannot be loaded) → fetch candidates with hard filters → score →
// stable sort descending → truncate to limit. An empty candidate set yields
// an empty slice, not an error.
func (p *Pipeline) Rank(ctx context.Context, kind TargetKind, fighterID string, o *Overrides, limit int) ([]MatchScore, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", ErrInvalidCriteria)
	}
	crit := DefaultCriteria().Merge(o)
	if err := crit.Validate(); err != nil {
		return nil, err
	}

	// Overridden criteria bypass the cache: the key space only covers the
	// defaults every app session starts from.
	cacheable := o == nil && p.cache != nil
	var key string
	if cacheable {
		key = p.cache.KeyForRanking(string(kind), fighterID, limit)
		var cached []MatchScore
		hit, err := p.cache.GetRanking(ctx, key, p.resultTTL, &cached)
		if err != nil {
			p.log.Warn("ranking cache read failed", "kind", kind, "err", err)
		} else if hit {
			metrics.RankCacheHits.WithLabelValues(string(kind)).Inc()
			return cached, nil
		}
	}

	subject, err := p.store.FetchFighterByID(ctx, fighterID)
	if err != nil {
		if errors.Is(err, ErrSubjectNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load subject fighter: %w", err)
	}

	start := time.Now()
	scores, err := p.scoreCandidates(ctx, kind, subject, crit, limit)
	if err != nil {
		return nil, err
	}
	metrics.ScoringDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())

	// Stable sort keeps the candidate-fetch order on equal scores, so
	// repeated calls over unchanged data return identical orderings.
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].OverallScore > scores[j].OverallScore
	})
	if len(scores) > limit {
		scores = scores[:limit]
	}

	p.log.Debug("ranking computed",
		"kind", kind, "fighter_id", fighterID, "results", len(scores))

	if cacheable {
		if err := p.cache.SetRanking(ctx, key, scores, p.resultTTL); err != nil {
			p.log.Warn("ranking cache write failed", "kind", kind, "err", err)
		}
	}
	return scores, nil
}

func (p *Pipeline) scoreCandidates(ctx context.Context, kind TargetKind, subject *db.Fighter, crit Criteria, limit int) ([]MatchScore, error) {
	f := Filters{
		RequiredSport: crit.RequiredSport,
		MaxDistanceKm: crit.MaxDistanceKm,
		OriginLat:     subject.Latitude,
		OriginLng:     subject.Longitude,
		FetchLimit:    fetchHint(limit),
	}

	scores := make([]MatchScore, 0, limit)
	keep := func(ms MatchScore) {
		// The bounding query upstream is approximate; enforce the exact
		// great-circle cutoff here.
		if crit.MaxDistanceKm > 0 && ms.DistanceKm != nil && *ms.DistanceKm > crit.MaxDistanceKm {
			return
		}
		scores = append(scores, ms)
	}

	switch kind {
	case KindEvents:
		events, err := p.store.FetchCandidateEvents(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch candidate events: %w", err)
		}
		for i := range events {
			keep(ScoreEvent(subject, &events[i], crit))
		}
	case KindPartners:
		fighters, err := p.store.FetchCandidateFighters(ctx, subject.ID, f)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch candidate fighters: %w", err)
		}
		for i := range fighters {
			if fighters[i].ID == subject.ID {
				continue
			}
			keep(ScorePartner(subject, &fighters[i], crit))
		}
	case KindGyms:
		gyms, err := p.store.FetchCandidateGyms(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch candidate gyms: %w", err)
		}
		for i := range gyms {
			keep(ScoreGym(subject, &gyms[i], crit))
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return scores, nil
}

// KindResult is one target kind's slot in a combined ranking response.
type KindResult struct {
	Scores []MatchScore
	Err    error
}

// RankAllResult carries the three independent rankings of a combined call.
type RankAllResult struct {
	Events   KindResult
	Partners KindResult
	Gyms     KindResult
}

// RankAll ranks all three target kinds concurrently. The kinds are
// independent reads: a failed or timed-out fetch for one kind never prevents
// the others from completing, which is why this does not use a
// cancel-on-first-error group.
func (p *Pipeline) RankAll(ctx context.Context, fighterID string, o *Overrides, limit int) RankAllResult {
	var res RankAllResult
	var wg sync.WaitGroup

	run := func(kind TargetKind, slot *KindResult) {
		defer wg.Done()
		slot.Scores, slot.Err = p.Rank(ctx, kind, fighterID, o, limit)
	}

	wg.Add(3)
	go run(KindEvents, &res.Events)
	go run(KindPartners, &res.Partners)
	go run(KindGyms, &res.Gyms)
	wg.Wait()

	return res
}

// fetchHint bounds how many raw candidates a fetch should return. The
// aggregator re-ranks everything, so we over-fetch a few multiples of the
// requested limit without pulling whole tables.
func fetchHint(limit int) int {
	hint := limit * 5
	if hint < 50 {
		hint = 50
	}
	if hint > 200 {
		hint = 200
	}
	return hint
}
