package bundles

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"larana.GO/api"
	"larana.GO/model/entity/catalog"
	"larana.GO/service/product"
)

func init() {
	api.RegisterModule(RegisterBundleRoutes)
}

type handler struct {
	deps *api.Deps
	log  *zap.Logger
}

func RegisterBundleRoutes(apiGroup *echo.Group, deps *api.Deps) {
	h := &handler{deps: deps, log: deps.Logger("api.bundles")}
	g := apiGroup.Group("/bundles")

	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *handler) list(c echo.Context) error {
	start := time.Now()
	bundles, err := h.deps.Bundles.FindAll()
	if err != nil {
		return api.Error(c, err)
	}
	duration := api.Since(c, start)
	return c.JSON(http.StatusOK, echo.Map{
		"bundles":             bundles,
		"total":               len(bundles),
		"request_duration_ms": duration,
	})
}

func parseID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func (h *handler) get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	b, err := h.deps.Bundles.FindByID(id)
	if err != nil {
		return api.Error(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *handler) create(c echo.Context) error {
	b, err := bind(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	b.ID = 0
	if err := h.deps.Bundles.Create(b); err != nil {
		h.log.Error("create bundle", zap.Error(err))
		return api.Error(c, err)
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *handler) update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	b, err := bind(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	b.ID = id
	if err := h.deps.Bundles.Update(b); err != nil {
		return api.Error(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *handler) delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.deps.Bundles.Delete(id); err != nil {
		return api.Error(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

var errNameRequired = errors.New("name is required")

// bind decodes and cleans a bundle body. Items without an article are dropped.
func bind(c echo.Context) (*catalog.Bundle, error) {
	var b catalog.Bundle
	if err := c.Bind(&b); err != nil {
		return nil, err
	}
	b.Name = strings.TrimSpace(b.Name)
	if b.Name == "" {
		return nil, errNameRequired
	}
	if b.Price != "" {
		b.Price = product.FormatPrice(b.Price)
	}
	b.ImageURL = product.CleanImageURL(b.ImageURL)
	items := b.Items[:0]
	for _, it := range b.Items {
		it.SupplierArticle = strings.TrimSpace(it.SupplierArticle)
		if it.SupplierArticle == "" {
			continue
		}
		it.ID = 0
		items = append(items, it)
	}
	b.Items = items
	return &b, nil
}
