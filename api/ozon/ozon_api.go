package ozon

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"larana.GO/api"
	"larana.GO/model/entity/catalog"
	ozonService "larana.GO/service/ozon"
)

func init() {
	api.RegisterModule(RegisterOzonRoutes)
}

type handler struct {
	deps *api.Deps
	log  *zap.Logger
}

func RegisterOzonRoutes(apiGroup *echo.Group, deps *api.Deps) {
	h := &handler{deps: deps, log: deps.Logger("api.ozon")}
	g := apiGroup.Group("/ozon")

	g.POST("/preview", h.preview)
	g.POST("/commit", h.commit)
	g.GET("/mappings", h.getMappings)
	g.PUT("/mappings", h.saveMappings)
	g.DELETE("/mappings", h.resetMappings)
}

func (h *handler) importer() (*ozonService.Importer, bool) {
	if h.deps.Ozon == nil {
		return nil, false
	}
	return h.deps.Ozon, true
}

// POST /api/ozon/preview loads the seller catalog into a preview session.
func (h *handler) preview(c echo.Context) error {
	start := time.Now()
	im, ok := h.importer()
	if !ok {
		return api.Error(c, ozonService.ErrNoCredentials)
	}
	p, err := im.Preview(c.Request().Context())
	duration := api.Since(c, start)
	if err != nil {
		h.log.Error("ozon preview failed", zap.Error(err))
		return api.Error(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"preview":             p,
		"request_duration_ms": duration,
	})
}

type commitRequest struct {
	SessionID string                 `json:"session_id"`
	Mappings  []catalog.FieldMapping `json:"mappings"`
	Selected  []int64                `json:"selected"`
}

// POST /api/ozon/commit imports a preview session with the confirmed mapping.
func (h *handler) commit(c echo.Context) error {
	start := time.Now()
	im, ok := h.importer()
	if !ok {
		return api.Error(c, ozonService.ErrNoCredentials)
	}
	var req commitRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if req.SessionID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "session_id is required"})
	}
	res, err := im.Commit(req.SessionID, req.Mappings, req.Selected)
	duration := api.Since(c, start)
	if err != nil {
		h.log.Warn("ozon commit failed", zap.String("session", req.SessionID), zap.Error(err))
		return api.Error(c, err)
	}
	h.log.Info("ozon import committed",
		zap.Int("created", res.Created),
		zap.Int("skipped", res.Skipped()))
	return c.JSON(http.StatusOK, echo.Map{
		"outcome":             res.Outcome(),
		"result":              res,
		"request_duration_ms": duration,
	})
}

func (h *handler) getMappings(c echo.Context) error {
	im, ok := h.importer()
	if !ok {
		return api.Error(c, ozonService.ErrNoCredentials)
	}
	m, err := im.Mappings()
	if err != nil {
		return api.Error(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"mappings": m})
}

func (h *handler) saveMappings(c echo.Context) error {
	im, ok := h.importer()
	if !ok {
		return api.Error(c, ozonService.ErrNoCredentials)
	}
	var body struct {
		Mappings []catalog.FieldMapping `json:"mappings"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	m, err := im.SaveMappings(body.Mappings)
	if err != nil {
		return api.Error(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"mappings": m})
}

func (h *handler) resetMappings(c echo.Context) error {
	im, ok := h.importer()
	if !ok {
		return api.Error(c, ozonService.ErrNoCredentials)
	}
	m, err := im.ResetMappings()
	if err != nil {
		return api.Error(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"mappings": m})
}
