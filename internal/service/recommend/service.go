package recommend

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fightstation/backend/internal/app"
	svcErr "github.com/fightstation/backend/internal/errors"
	"github.com/fightstation/backend/internal/matching"
	"github.com/fightstation/backend/internal/metrics"
	"github.com/fightstation/backend/internal/repository"
)

// Service exposes the ranking pipeline over HTTP. It contains the request
// parsing and response shaping on top of the pipeline and repository layers.
type Service struct {
	appCtx   *app.AppContext
	pipeline *matching.Pipeline
}

// NewService wires a recommendation service with dependencies from
// AppContext: the candidate repository over its DB connection and the
// ranking cache over its Redis client.
func NewService(appCtx *app.AppContext, resultTTL time.Duration) *Service {
	store := repository.NewCandidateRepository(appCtx.DB)
	return &Service{
		appCtx:   appCtx,
		pipeline: matching.NewPipeline(store, appCtx.RedisCache, appCtx.Logger, resultTTL),
	}
}

// Routes mounts the recommendation endpoints.
func (s *Service) Routes(r *gin.RouterGroup) {
	rec := r.Group("/recommendations")
	{
		rec.GET("/all", s.RankAll)
		rec.GET("/:kind", s.List)
		rec.POST("/:kind/search", s.Search)
	}
}

// List ranks one target kind with default criteria.
//
// GET /api/v1/recommendations/:kind?fighter_id=&limit=
func (s *Service) List(c *gin.Context) {
	kind := matching.TargetKind(c.Param("kind"))
	fighterID := c.Query("fighter_id")
	if fighterID == "" {
		svcErr.BadRequest(c, "fighter_id is required")
		return
	}
	limit := queryInt(c, "limit", matching.DefaultLimit)

	scores, err := s.pipeline.Rank(c.Request.Context(), kind, fighterID, nil, limit)
	if err != nil {
		s.appCtx.Logger.Error("ranking failed", "kind", kind, "fighter_id", fighterID, "err", err)
		metrics.RankRequests.WithLabelValues(string(kind), "error").Inc()
		svcErr.Respond(c, err)
		return
	}
	metrics.RankRequests.WithLabelValues(string(kind), "ok").Inc()

	c.JSON(http.StatusOK, gin.H{
		"matches": scores,
		"total":   len(scores),
	})
}

type searchRequest struct {
	FighterID string              `json:"fighter_id" binding:"required"`
	Limit     int                 `json:"limit"`
	Criteria  *matching.Overrides `json:"criteria"`
}

// Search ranks one target kind with caller-supplied criteria overrides.
//
// POST /api/v1/recommendations/:kind/search
func (s *Service) Search(c *gin.Context) {
	kind := matching.TargetKind(c.Param("kind"))

	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		svcErr.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if req.Limit == 0 {
		req.Limit = matching.DefaultLimit
	}

	scores, err := s.pipeline.Rank(c.Request.Context(), kind, req.FighterID, req.Criteria, req.Limit)
	if err != nil {
		s.appCtx.Logger.Error("ranking search failed", "kind", kind, "fighter_id", req.FighterID, "err", err)
		metrics.RankRequests.WithLabelValues(string(kind), "error").Inc()
		svcErr.Respond(c, err)
		return
	}
	metrics.RankRequests.WithLabelValues(string(kind), "ok").Inc()

	c.JSON(http.StatusOK, gin.H{
		"matches": scores,
		"total":   len(scores),
	})
}

type kindSection struct {
	Matches []matching.MatchScore `json:"matches"`
	Total   int                   `json:"total"`
	Error   string                `json:"error,omitempty"`
}

// RankAll ranks events, partners and gyms concurrently. Each section fails
// or succeeds on its own; a missing subject fails the whole call since no
// section can be scored without it.
//
// GET /api/v1/recommendations/all?fighter_id=&limit=
func (s *Service) RankAll(c *gin.Context) {
	fighterID := c.Query("fighter_id")
	if fighterID == "" {
		svcErr.BadRequest(c, "fighter_id is required")
		return
	}
	limit := queryInt(c, "limit", matching.DefaultLimit)

	res := s.pipeline.RankAll(c.Request.Context(), fighterID, nil, limit)

	for _, err := range []error{res.Events.Err, res.Partners.Err, res.Gyms.Err} {
		if errors.Is(err, matching.ErrSubjectNotFound) || errors.Is(err, matching.ErrInvalidCriteria) {
			svcErr.Respond(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"events":   sectionFor(res.Events),
		"partners": sectionFor(res.Partners),
		"gyms":     sectionFor(res.Gyms),
	})
}

func sectionFor(kr matching.KindResult) kindSection {
	section := kindSection{Matches: kr.Scores, Total: len(kr.Scores)}
	if section.Matches == nil {
		section.Matches = []matching.MatchScore{}
	}
	if kr.Err != nil {
		section.Error = kr.Err.Error()
	}
	return section
}

func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
