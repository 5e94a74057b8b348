// Package jobs registers the catalog's scheduled jobs.
package jobs

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"larana.GO/api"
	"larana.GO/config"
	"larana.GO/core/cache"
	"larana.GO/cron"
	"larana.GO/service/ozon"
)

// Names of the registered jobs.
const (
	OzonSync  = "ozonsync"
	CacheWarm = "cachewarm"
)

// syncTimeout bounds one marketplace import run.
const syncTimeout = 10 * time.Minute

// Register adds the jobs bound to deps. Schedules come from config.
func Register(deps *api.Deps) {
	log := deps.Logger("cron")
	cron.Register(OzonSync, config.OzonSyncSchedule(), func(ctx context.Context) {
		RunOzonSync(ctx, deps, log)
	})
	cron.Register(CacheWarm, config.CacheWarmSchedule(), func(ctx context.Context) {
		RunCacheWarm(ctx, deps, log)
	})
}

// RunOzonSync imports new marketplace products with the saved mapping set.
func RunOzonSync(ctx context.Context, deps *api.Deps, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(ctx, syncTimeout)
	defer cancel()
	res, err := deps.Ozon.Run(ctx)
	if errors.Is(err, ozon.ErrNoCredentials) {
		log.Debug("ozonsync skipped: no credentials")
		return
	}
	if err != nil {
		log.Error("ozonsync failed", zap.Error(err))
		return
	}
	log.Info("ozonsync finished",
		zap.String("outcome", string(res.Outcome())),
		zap.Int("created", res.Created),
		zap.Int("skipped", res.Skipped()))
}

// RunCacheWarm reloads the storefront product list into the cache and drops
// expired preview sessions.
func RunCacheWarm(ctx context.Context, deps *api.Deps, log *zap.Logger) {
	products, version := deps.Store.VersionedSnapshot()
	snap, stored := deps.Lists.Put(ctx, products, version)
	purged := cache.GetInstance().Purge()
	log.Info("cachewarm finished", zap.Int("products", len(snap.Products)), zap.Bool("stored", stored), zap.Int("purged", purged))
}
