package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	catalogdomain "github.com/revendahq/revenda/internal/catalog/domain"
	"github.com/revendahq/revenda/internal/clock"
	feedomain "github.com/revendahq/revenda/internal/feesettings/domain"
	"github.com/revendahq/revenda/internal/metrics"
	"github.com/revendahq/revenda/internal/pricing/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Clock   clock.Clock
	Catalog catalogdomain.Repository
	Fees    feedomain.Repository
	Metrics *metrics.Metrics `optional:"true"`
	Config  Config           `optional:"true"`
}

type run struct {
	snapshot domain.FeeSnapshot
	products []catalogdomain.Product
	variants []catalogdomain.Variant
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	cfg     Config
	clock   clock.Clock
	catalog catalogdomain.Repository
	fees    feedomain.Repository
	metrics *metrics.Metrics

	runs chan run
	wg   sync.WaitGroup
	once sync.Once
}

func New(p Params) domain.Service {
	cfg := p.Config.withDefaults()
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("pricing.service"),
		cfg:     cfg,
		clock:   p.Clock,
		catalog: p.Catalog,
		fees:    p.Fees,
		metrics: p.Metrics,
		runs:    make(chan run, cfg.QueueSize),
	}
}

// Start launches the background worker draining queued runs.
func (s *Service) Start() {
	s.once.Do(func() {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			for r := range s.runs {
				s.execute(r)
			}
		}()
	})
}

// Stop closes the run queue and waits for in-flight runs to drain or the
// context to expire, whichever comes first.
func (s *Service) Stop(ctx context.Context) error {
	close(s.runs)
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) Recalculate(ctx context.Context, req domain.RecalculateRequest) (*domain.RecalculateResponse, error) {
	if !feedomain.ValidFeeType(req.PlatformFeeType) {
		return nil, domain.ErrInvalidFeeType
	}
	// The divisor 1 - fee/100 must stay positive: 100 divides by zero and
	// anything above flips the sign of the adjustment.
	if req.GatewayFeePercentage < 0 || req.GatewayFeePercentage >= 100 {
		return nil, domain.ErrInvalidGatewayFee
	}

	settings, err := s.fees.Get(ctx, s.db)
	if err != nil {
		return nil, err
	}

	settings.PlatformFeeValue = req.PlatformFeeValue
	settings.PlatformFeeType = req.PlatformFeeType
	settings.GatewayFeePercentage = req.GatewayFeePercentage
	settings.UpdatedAt = s.clock.Now()
	if err := s.fees.UpdateFees(ctx, s.db, settings); err != nil {
		return nil, err
	}

	// Snapshot the configuration once; every item in this run sees the same
	// fee values and additional cost list.
	snapshot := domain.FeeSnapshot{
		PlatformFeeValue:     settings.PlatformFeeValue,
		PlatformFeeType:      settings.PlatformFeeType,
		GatewayFeePercentage: settings.GatewayFeePercentage,
		AdditionalCosts:      settings.AdditionalCosts,
	}

	products, err := s.catalog.FindPricedProducts(ctx, s.db)
	if err != nil {
		return nil, err
	}
	variants, err := s.catalog.FindPricedVariants(ctx, s.db)
	if err != nil {
		return nil, err
	}

	total := len(products) + len(variants)

	select {
	case s.runs <- run{snapshot: snapshot, products: products, variants: variants}:
	default:
		return nil, domain.ErrRunQueueFull
	}

	if s.metrics != nil {
		s.metrics.IncPricingRun()
	}
	s.log.Info("recalculation scheduled",
		zap.Int("products", len(products)),
		zap.Int("variants", len(variants)),
		zap.String("platform_fee_type", snapshot.PlatformFeeType),
		zap.Float64("platform_fee_value", snapshot.PlatformFeeValue),
		zap.Float64("gateway_fee_percentage", snapshot.GatewayFeePercentage),
	)

	return &domain.RecalculateResponse{
		ItemsToUpdate:       total,
		EstimatedCompletion: s.estimateCompletion(total),
	}, nil
}

func (s *Service) estimateCompletion(total int) string {
	if total == 0 {
		return "immediate"
	}
	batches := (total + s.cfg.BatchSize - 1) / s.cfg.BatchSize
	estimate := time.Duration(batches) * s.cfg.BatchDelay
	if estimate < time.Second {
		estimate = time.Second
	}
	return fmt.Sprintf("~%s", estimate.Round(time.Second))
}

func (s *Service) execute(r run) {
	// Background writes deliberately outlive the triggering request, so a
	// fresh context is used rather than the request's.
	ctx := context.Background()
	start := time.Now()

	for batchStart := 0; batchStart < len(r.products); batchStart += s.cfg.BatchSize {
		if batchStart > 0 {
			time.Sleep(s.cfg.BatchDelay)
		}
		end := min(batchStart+s.cfg.BatchSize, len(r.products))
		for _, p := range r.products[batchStart:end] {
			s.writeProduct(ctx, p, r.snapshot)
		}
	}

	for batchStart := 0; batchStart < len(r.variants); batchStart += s.cfg.BatchSize {
		if batchStart > 0 || len(r.products) > 0 {
			time.Sleep(s.cfg.BatchDelay)
		}
		end := min(batchStart+s.cfg.BatchSize, len(r.variants))
		for _, v := range r.variants[batchStart:end] {
			s.writeVariant(ctx, v, r.snapshot)
		}
	}

	if s.metrics != nil {
		s.metrics.ObservePricingRun(time.Since(start))
	}
	s.log.Info("recalculation run finished",
		zap.Int("products", len(r.products)),
		zap.Int("variants", len(r.variants)),
		zap.Duration("elapsed", time.Since(start)),
	)
}

func (s *Service) writeProduct(ctx context.Context, p catalogdomain.Product, snap domain.FeeSnapshot) {
	if p.CostPrice == nil {
		s.incItem(metrics.KindProduct, metrics.OutcomeSkipped)
		return
	}
	price := domain.Compute(*p.CostPrice, snap)
	if err := s.catalog.UpdateProductPrice(ctx, s.db, p.ID, price, s.clock.Now()); err != nil {
		s.incItem(metrics.KindProduct, metrics.OutcomeFailed)
		s.log.Warn("product price write failed", zap.Int64("product_id", p.ID), zap.Error(err))
		return
	}
	s.incItem(metrics.KindProduct, metrics.OutcomeUpdated)
}

func (s *Service) writeVariant(ctx context.Context, v catalogdomain.Variant, snap domain.FeeSnapshot) {
	if v.CostPrice == nil {
		s.incItem(metrics.KindVariant, metrics.OutcomeSkipped)
		return
	}
	price := domain.Compute(*v.CostPrice, snap)
	if err := s.catalog.UpdateVariantModifier(ctx, s.db, v.ID, price, s.clock.Now()); err != nil {
		s.incItem(metrics.KindVariant, metrics.OutcomeFailed)
		s.log.Warn("variant price write failed", zap.Int64("variant_id", v.ID), zap.Error(err))
		return
	}
	s.incItem(metrics.KindVariant, metrics.OutcomeUpdated)
}

func (s *Service) incItem(kind, outcome string) {
	if s.metrics != nil {
		s.metrics.IncPricingItem(kind, outcome)
	}
}
