package health

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"larana.GO/api"
	"larana.GO/config"
)

func init() {
	api.RegisterRoute(RegisterHealthRoutes)
}

// RegisterHealthRoutes mounts GET /health, reporting database and cache status.
func RegisterHealthRoutes(e *echo.Echo, deps *api.Deps) {
	e.GET("/health", func(c echo.Context) error {
		status := http.StatusOK
		body := echo.Map{"status": "ok", "redis": "disabled"}
		if deps != nil && deps.DB != nil {
			sqlDB, err := deps.DB.DB()
			if err == nil {
				ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
				err = sqlDB.PingContext(ctx)
				cancel()
			}
			if err != nil {
				status = http.StatusServiceUnavailable
				body["status"] = "degraded"
				body["database"] = err.Error()
			} else {
				body["database"] = "ok"
			}
		}
		if config.RedisClient != nil {
			body["redis"] = "ok"
			if err := config.RedisClient.Ping(c.Request().Context()).Err(); err != nil {
				body["redis"] = err.Error()
			}
		}
		if deps != nil && deps.Store != nil {
			body["products"] = deps.Store.Len()
		}
		return c.JSON(status, body)
	})
}
