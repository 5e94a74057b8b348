package ozon

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Source is the part of the seller API FetchAll needs.
type Source interface {
	ListPage(ctx context.Context, lastID string, limit int) (*Page, error)
	Details(ctx context.Context, ids []int64) ([]map[string]interface{}, error)
}

// FetchOptions sizes list pages and detail batches.
type FetchOptions struct {
	PageSize  int
	BatchSize int
}

func (o FetchOptions) withDefaults() FetchOptions {
	if o.PageSize <= 0 {
		o.PageSize = 1000
	}
	if o.BatchSize <= 0 {
		o.BatchSize = 100
	}
	return o
}

// FetchAll pages through the product list and loads details batch by batch.
// A failed list page aborts the run; a failed detail batch or an undecodable
// item is logged and skipped.
func FetchAll(ctx context.Context, src Source, opts FetchOptions, log *zap.Logger) ([]Item, error) {
	if log == nil {
		log = zap.NewNop()
	}
	opts = opts.withDefaults()

	ids, err := listIDs(ctx, src, opts.PageSize, log)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []Item{}, nil
	}
	log.Info("ozon: loading details", zap.Int("products", len(ids)))

	items := make([]Item, 0, len(ids))
	for start := 0; start < len(ids); start += opts.BatchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := start + opts.BatchSize
		if end > len(ids) {
			end = len(ids)
		}
		raw, err := src.Details(ctx, ids[start:end])
		if err != nil {
			log.Warn("ozon: detail batch failed", zap.Int("offset", start), zap.Error(err))
			continue
		}
		for _, r := range raw {
			it, err := DecodeItem(r, log)
			if err != nil {
				log.Warn("ozon: skip item", zap.Error(err))
				continue
			}
			items = append(items, it)
		}
		log.Debug("ozon: details loaded", zap.Int("loaded", len(items)), zap.Int("total", len(ids)))
	}
	return items, nil
}

func listIDs(ctx context.Context, src Source, limit int, log *zap.Logger) ([]int64, error) {
	var ids []int64
	lastID := ""
	for {
		page, err := src.ListPage(ctx, lastID, limit)
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		if len(page.Items) == 0 {
			break
		}
		for _, it := range page.Items {
			ids = append(ids, it.ProductID)
		}
		log.Debug("ozon: list page", zap.Int("loaded", len(ids)))
		lastID = page.LastID
		if lastID == "" || len(page.Items) < limit {
			break
		}
	}
	return ids, nil
}
