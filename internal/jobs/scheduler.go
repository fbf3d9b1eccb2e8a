// Package jobs runs the background maintenance work: reconciling cached
// storefront snapshots with the shop registry so a deactivated shop does not
// keep serving from cache until its TTL runs out.
package jobs

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"

	"dukaan/internal/caching"
	"dukaan/internal/repositories"
)

type Scheduler struct {
	scheduler gocron.Scheduler
	shopRepo  repositories.ShopRepository
	cache     caching.CacheService
	logger    *zap.Logger
}

func NewScheduler(shopRepo repositories.ShopRepository, cache caching.CacheService, logger *zap.Logger) (*Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	s := &Scheduler{
		scheduler: scheduler,
		shopRepo:  shopRepo,
		cache:     cache,
		logger:    logger,
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(10*time.Minute),
		gocron.NewTask(s.sweepInactiveShops, context.Background()),
		gocron.WithName("inactive-shop-cache-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.logger.Info("starting background job scheduler")
	s.scheduler.Start()
}

func (s *Scheduler) Stop() error {
	s.logger.Info("stopping background job scheduler")
	return s.scheduler.Shutdown()
}

// sweepInactiveShops drops cached snapshots and catalogs for shops that were
// deactivated since they were cached.
func (s *Scheduler) sweepInactiveShops(ctx context.Context) {
	shops, err := s.shopRepo.List(ctx)
	if err != nil {
		s.logger.Warn("cache sweep: listing shops failed", zap.Error(err))
		return
	}

	swept := 0
	for _, shop := range shops {
		if shop.IsActive {
			continue
		}
		if err := s.cache.InvalidateShopCache(ctx, shop.ID, shop.Domains); err != nil {
			s.logger.Warn("cache sweep: invalidation failed",
				zap.String("shop_id", shop.ID.String()), zap.Error(err))
			continue
		}
		swept++
	}
	if swept > 0 {
		s.logger.Info("cache sweep dropped inactive shop snapshots", zap.Int("count", swept))
	}
}
