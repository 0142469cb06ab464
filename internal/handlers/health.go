package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type healthResponse struct {
	Status       string `json:"status"`
	SessionStore string `json:"sessionStore"`
	Repository   string `json:"repository"`
	Environment  string `json:"environment"`
}

func (h HandlerSet) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	c.JSON(http.StatusOK, healthResponse{
		Status:       "ok",
		SessionStore: h.probe(ctx, "session store", h.sessionPinger),
		Repository:   h.probe(ctx, "repository", h.repositoryPinger),
		Environment:  h.cfg.Environment,
	})
}

// probe returns "memory" for in-process backends, which have nothing to ping.
func (h HandlerSet) probe(ctx context.Context, name string, p Pinger) string {
	if p == nil {
		return "memory"
	}
	if err := p.Ping(ctx); err != nil {
		h.log.Error().Err(err).Str("component", name).Msg("health ping failed")
		return "error"
	}
	return "ok"
}
