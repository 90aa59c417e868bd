package profiles

import (
	"github.com/gin-gonic/gin"

	"github.com/fightstation/backend/internal/app"
)

// Registrar ties the profile service into the HTTP server.
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the profile service.
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the profile routes to the API group.
func (r *Registrar) Register(g *gin.RouterGroup) {
	NewService(r.appCtx).Routes(g)
}
