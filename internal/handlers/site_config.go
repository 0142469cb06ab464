package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type siteConfigResponse struct {
	SupabaseURL     string `json:"supabaseUrl"`
	SupabaseAnonKey string `json:"supabaseAnonKey"`
}

// SiteConfig exposes the public client-side connection parameters.
func (h HandlerSet) SiteConfig(c *gin.Context) {
	c.JSON(http.StatusOK, siteConfigResponse{
		SupabaseURL:     h.cfg.Supabase.URL,
		SupabaseAnonKey: h.cfg.Supabase.AnonKey,
	})
}
