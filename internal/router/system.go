package router

import (
	"github.com/JoshuaHenriques/store-management-rest-api/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes mounts health, docs and the static docs assets.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
	r.Static("/static", handler.StaticDir)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
