package recommend

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fightstation/backend/internal/app"
)

// Registrar ties the recommendation service into the HTTP server.
type Registrar struct {
	appCtx    *app.AppContext
	resultTTL time.Duration
}

// NewRegistrar creates a new Registrar for the recommendation service.
func NewRegistrar(appCtx *app.AppContext, resultTTL time.Duration) *Registrar {
	return &Registrar{appCtx: appCtx, resultTTL: resultTTL}
}

// Register attaches the recommendation routes to the API group.
func (r *Registrar) Register(g *gin.RouterGroup) {
	NewService(r.appCtx, r.resultTTL).Routes(g)
}
