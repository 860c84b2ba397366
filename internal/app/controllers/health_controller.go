package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/coursehub/internal/app/models/dto"
)

// Pinger reports whether a backing service is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController reports liveness of the API and its database
type HealthController struct {
	db     Pinger
	logger zerolog.Logger
}

// NewHealthController creates a new HealthController
func NewHealthController(db Pinger, logger zerolog.Logger) *HealthController {
	return &HealthController{db: db, logger: logger}
}

// Health pings the database
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.SuccessResponse "ok"
// @Failure 503 {object} dto.SuccessResponse "database unavailable"
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	if err := c.db.Ping(pingCtx); err != nil {
		c.logger.Error().Err(err).Msg("Health check failed")
		ctx.JSON(http.StatusServiceUnavailable, dto.Envelope{
			"isSuccess": false,
			"message":   "database unavailable",
		})
		return
	}
	ctx.JSON(http.StatusOK, dto.NewEnvelope("ok", "", nil))
}
