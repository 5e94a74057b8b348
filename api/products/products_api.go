package products

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"larana.GO/api"
	"larana.GO/model/entity/catalog"
	"larana.GO/service/product"
	"larana.GO/service/spreadsheet"
)

func init() {
	api.RegisterModule(RegisterProductRoutes)
}

type handler struct {
	deps *api.Deps
	log  *zap.Logger
}

func RegisterProductRoutes(apiGroup *echo.Group, deps *api.Deps) {
	h := &handler{deps: deps, log: deps.Logger("api.products")}
	g := apiGroup.Group("/products")

	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/export", h.export)
	g.GET("/templates/:kind", h.template)
	g.POST("/bulk/prices", h.bulkPrices)
	g.POST("/bulk/stock", h.bulkStock)
	g.POST("/bulk/images", h.bulkImages)
	g.POST("/bulk/import", h.bulkImport)
	g.POST("/persist", h.persist)
	g.POST("/repair", h.repair)
	g.GET("/:id", h.get)
	g.GET("/:id/variants", h.variants)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

// GET /api/products?category=&in_stock=
func (h *handler) list(c echo.Context) error {
	start := time.Now()
	snap := h.deps.Lists.Get(c.Request().Context(), h.deps.Store.VersionedSnapshot)

	category := c.QueryParam("category")
	inStock := c.QueryParam("in_stock")
	out := make([]catalog.Product, 0, len(snap.Products))
	for _, p := range snap.Products {
		if category != "" && p.Category != category {
			continue
		}
		if inStock == "true" && !p.InStock {
			continue
		}
		out = append(out, p)
	}
	duration := api.Since(c, start)
	return c.JSON(http.StatusOK, echo.Map{
		"products":            out,
		"total":               len(out),
		"timestamp":           snap.StoredAt,
		"request_duration_ms": duration,
	})
}

func (h *handler) get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	p, ok := h.deps.Store.Get(id)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}
	return c.JSON(http.StatusOK, p)
}

// GET /api/products/:id/variants lists the color variants sharing the product's group.
func (h *handler) variants(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	group := h.deps.Store.Variants(id)
	if group == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}
	current, _ := h.deps.Store.Get(id)
	return c.JSON(http.StatusOK, echo.Map{
		"variants":     group,
		"has_variants": len(group) > 1,
		"all_colors":   product.AllColors(current, group),
	})
}

func (h *handler) create(c echo.Context) error {
	var p catalog.Product
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if strings.TrimSpace(p.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	p.ID = 0
	saved, err := h.deps.Store.Upsert(normalize(p))
	if err != nil {
		return api.Error(c, err)
	}
	return c.JSON(http.StatusCreated, saved)
}

func (h *handler) update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if _, ok := h.deps.Store.Get(id); !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}
	var p catalog.Product
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	p.ID = id
	saved, err := h.deps.Store.Upsert(normalize(p))
	if err != nil {
		return api.Error(c, err)
	}
	return c.JSON(http.StatusOK, saved)
}

func (h *handler) delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.deps.Store.Delete(id); err != nil {
		return api.Error(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// normalize applies the manual-edit stock policy: a given quantity decides InStock.
func normalize(p catalog.Product) catalog.Product {
	if p.StockQuantity != nil {
		p.SetStock(*p.StockQuantity)
	}
	if p.Price != "" {
		p.Price = product.FormatPrice(p.Price)
	}
	p.Images = product.SanitizeImages(p.Images)
	if clean := product.CleanImageURL(p.Image); clean != "" {
		p.Image = clean
	} else if len(p.Images) > 0 {
		p.Image = p.Images[0]
	}
	if p.Items == nil {
		p.Items = []string{}
	}
	if p.Colors == nil {
		p.Colors = []string{}
	}
	return p
}

func (h *handler) persist(c echo.Context) error {
	if err := h.deps.Store.Persist(); err != nil {
		return api.Error(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"persisted": h.deps.Store.Len()})
}

func (h *handler) repair(c echo.Context) error {
	changed, err := h.deps.Store.Repair()
	if err != nil {
		return api.Error(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"repaired": changed})
}

func (h *handler) export(c echo.Context) error {
	f, err := product.ExportCatalog(h.deps.Store.Snapshot(), time.Now())
	if err != nil {
		return api.Error(c, err)
	}
	return attachment(c, f)
}

func (h *handler) template(c echo.Context) error {
	f, err := product.Template(c.Param("kind"), h.deps.Store.Snapshot())
	if err != nil {
		return api.Error(c, err)
	}
	return attachment(c, f)
}

func attachment(c echo.Context, f spreadsheet.File) error {
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(f.Name)))
	return c.Blob(http.StatusOK, spreadsheet.ContentTypeXLSX, f.Data)
}
