package products

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"larana.GO/api"
	"larana.GO/service/product"
	"larana.GO/service/spreadsheet"
)

// readUpload returns the rows of the multipart "file" field.
func readUpload(c echo.Context) ([][]string, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("%w: file is required", spreadsheet.ErrBadFormat)
	}
	if fh.Size > spreadsheet.MaxUploadSize {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", spreadsheet.ErrBadFormat, spreadsheet.MaxUploadSize)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return spreadsheet.ReadRows(f)
}

func columns(c echo.Context) product.ColumnOptions {
	return product.ColumnOptions{
		ArticleColumn: c.FormValue("article_column"),
		ValueColumn:   c.FormValue("value_column"),
	}
}

func (h *handler) bulkPrices(c echo.Context) error {
	return h.bulk(c, "prices", func(rows [][]string) (*product.Result, error) {
		return product.UpdatePrices(h.deps.Store, rows, columns(c))
	})
}

func (h *handler) bulkStock(c echo.Context) error {
	return h.bulk(c, "stock", func(rows [][]string) (*product.Result, error) {
		return product.UpdateStock(h.deps.Store, rows, columns(c))
	})
}

func (h *handler) bulkImages(c echo.Context) error {
	return h.bulk(c, "images", func(rows [][]string) (*product.Result, error) {
		return product.ImportImages(h.deps.Store, spreadsheet.ToRecords(rows))
	})
}

func (h *handler) bulkImport(c echo.Context) error {
	opts := product.ImportOptions{}
	if h.deps.Config != nil {
		opts.PlaceholderImage = h.deps.Config.PlaceholderImage
	}
	return h.bulk(c, "import", func(rows [][]string) (*product.Result, error) {
		return product.ImportProducts(h.deps.Store, rows, opts)
	})
}

func (h *handler) bulk(c echo.Context, kind string, run func([][]string) (*product.Result, error)) error {
	start := time.Now()
	rows, err := readUpload(c)
	if err != nil {
		h.log.Warn("bulk upload rejected", zap.String("kind", kind), zap.Error(err))
		return api.Error(c, err)
	}
	res, err := run(rows)
	duration := api.Since(c, start)
	if err != nil {
		h.log.Error("bulk update failed", zap.String("kind", kind), zap.Error(err))
		return c.JSON(api.ErrorStatus(err), echo.Map{"error": err.Error(), "request_duration_ms": duration})
	}
	h.log.Info("bulk update",
		zap.String("kind", kind),
		zap.Int("rows", res.TotalRows),
		zap.Int("applied", res.Applied()),
		zap.Int("skipped", res.Skipped()))
	return c.JSON(http.StatusOK, echo.Map{
		"outcome":             res.Outcome(),
		"result":              res,
		"request_duration_ms": duration,
	})
}
