package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"larana.GO/config"
	"larana.GO/model/repository"
	bundleRepo "larana.GO/model/repository/bundle"
	"larana.GO/service/listcache"
	"larana.GO/service/ozon"
	"larana.GO/service/product"
	"larana.GO/service/spreadsheet"
)

// Deps carries the services route modules are built on.
type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Store   *product.Store
	Bundles *bundleRepo.BundleRepository
	Ozon    *ozon.Importer
	Lists   *listcache.ListCache
	Log     *zap.Logger
}

// Logger returns the named logger, or a no-op one in tests.
func (d *Deps) Logger(name string) *zap.Logger {
	if d == nil || d.Log == nil {
		return zap.NewNop()
	}
	return d.Log.Named(name)
}

// Since writes the X-Request-Duration-ms header and returns the duration.
func Since(c echo.Context, start time.Time) int64 {
	duration := time.Since(start).Milliseconds()
	c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
	return duration
}

// ErrorStatus maps service errors to HTTP status codes.
func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, spreadsheet.ErrBadFormat):
		return http.StatusBadRequest
	case errors.Is(err, ozon.ErrSessionExpired):
		return http.StatusGone
	case errors.Is(err, ozon.ErrNoCredentials):
		return http.StatusServiceUnavailable
	case errors.Is(err, product.ErrUnknownTemplate):
		return http.StatusNotFound
	case errors.Is(err, product.ErrInvalidMapping):
		return http.StatusBadRequest
	default:
		var apiErr *ozon.APIError
		if errors.As(err, &apiErr) {
			return http.StatusBadGateway
		}
		return http.StatusInternalServerError
	}
}

// Error writes err as {"error": ...} with its mapped status.
func Error(c echo.Context, err error) error {
	return c.JSON(ErrorStatus(err), echo.Map{"error": err.Error()})
}
