package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/revendahq/revenda/internal/clock"
	inactivitydomain "github.com/revendahq/revenda/internal/inactivity/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ErrInvalidConfig = errors.New("scheduler requires a logger, clock and inactivity service")

type Params struct {
	fx.In

	Log           *zap.Logger
	Clock         clock.Clock
	InactivitySvc inactivitydomain.Service
	Config        Config `optional:"true"`
}

type Scheduler struct {
	log           *zap.Logger
	cfg           Config
	clock         clock.Clock
	inactivitySvc inactivitydomain.Service
}

func New(p Params) (*Scheduler, error) {
	if p.Log == nil || p.Clock == nil || p.InactivitySvc == nil {
		return nil, ErrInvalidConfig
	}
	return &Scheduler{
		log:           p.Log.Named("scheduler").With(zap.String("component", "scheduler")),
		cfg:           p.Config.withDefaults(),
		clock:         p.Clock,
		inactivitySvc: p.InactivitySvc,
	}, nil
}

func (s *Scheduler) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.RunInterval)
	defer ticker.Stop()

	for {
		if err := s.RunOnce(ctx); err != nil {
			s.log.Warn("scheduler run failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Scheduler) RunOnce(ctx context.Context) error {
	return s.runJob(ctx, "inactivity_scan", func(ctx context.Context) error {
		result, err := s.inactivitySvc.Scan(ctx)
		if err != nil {
			return err
		}
		for _, tr := range result.Thresholds {
			s.log.Info("inactivity threshold scanned",
				zap.String("event_type", tr.EventType),
				zap.Int("scanned", tr.Scanned),
				zap.Int("dispatched", tr.Dispatched),
				zap.Int("skipped", tr.Skipped),
			)
		}
		return nil
	})
}

func (s *Scheduler) runJob(parent context.Context, name string, fn func(ctx context.Context) error) error {
	start := s.clock.Now()
	ctx, cancel := context.WithTimeout(parent, s.cfg.JobTimeout)
	defer cancel()

	log := s.log.With(zap.String("job", name))
	log.Info("job started")

	err := fn(ctx)
	elapsed := s.clock.Now().Sub(start)
	if err != nil {
		log.Warn("job failed", zap.Duration("elapsed", elapsed), zap.Error(err))
		return err
	}
	log.Info("job finished", zap.Duration("elapsed", elapsed))
	return nil
}
