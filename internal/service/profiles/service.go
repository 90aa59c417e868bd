package profiles

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fightstation/backend/internal/app"
	"github.com/fightstation/backend/internal/db"
	svcErr "github.com/fightstation/backend/internal/errors"
	"github.com/fightstation/backend/internal/metrics"
	"github.com/fightstation/backend/internal/profile"
)

// Service exposes profile-completeness scoring over HTTP.
type Service struct {
	appCtx *app.AppContext
}

// NewService creates a new profile service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{appCtx: appCtx}
}

// Routes mounts the completeness endpoints.
func (s *Service) Routes(r *gin.RouterGroup) {
	r.GET("/fighters/:id/completeness", s.FighterCompleteness)
	r.GET("/gyms/:id/completeness", s.GymCompleteness)
}

// FighterCompleteness scores a fighter profile and returns the percentage,
// tiered field lists and the next best action.
//
// GET /api/v1/fighters/:id/completeness
func (s *Service) FighterCompleteness(c *gin.Context) {
	var fighter db.Fighter
	if err := s.load(c.Request.Context(), &fighter, c.Param("id")); err != nil {
		svcErr.Respond(c, err)
		return
	}

	result := profile.ScoreFighter(&fighter)
	metrics.CompletenessRequests.WithLabelValues("fighter").Inc()
	respond(c, result)
}

// GymCompleteness scores a gym profile.
//
// GET /api/v1/gyms/:id/completeness
func (s *Service) GymCompleteness(c *gin.Context) {
	var gym db.Gym
	if err := s.load(c.Request.Context(), &gym, c.Param("id")); err != nil {
		svcErr.Respond(c, err)
		return
	}

	result := profile.ScoreGym(&gym)
	metrics.CompletenessRequests.WithLabelValues("gym").Inc()
	respond(c, result)
}

func (s *Service) load(ctx context.Context, dest any, id string) error {
	err := s.appCtx.DB.WithContext(ctx).First(dest, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.appCtx.Logger.Debug("profile not found", "id", id)
	}
	return err
}

func respond(c *gin.Context, result profile.Result) {
	var nextAction *string
	if action := profile.NextAction(result); action != "" {
		nextAction = &action
	}
	c.JSON(http.StatusOK, gin.H{
		"completeness": result,
		"next_action":  nextAction,
	})
}
