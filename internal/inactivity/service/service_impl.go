package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/revendahq/revenda/internal/account/domain"
	"github.com/revendahq/revenda/internal/clock"
	"github.com/revendahq/revenda/internal/inactivity/domain"
	"github.com/revendahq/revenda/internal/metrics"
	webhookdomain "github.com/revendahq/revenda/internal/webhook/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	Clock      clock.Clock
	GenID      *snowflake.Node
	Users      accountdomain.Repository
	Webhooks   webhookdomain.Repository
	Dispatcher webhookdomain.Service
	Metrics    *metrics.Metrics `optional:"true"`
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	clock      clock.Clock
	genID      *snowflake.Node
	users      accountdomain.Repository
	webhooks   webhookdomain.Repository
	dispatcher webhookdomain.Service
	metrics    *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("inactivity.service"),
		clock:      p.Clock,
		genID:      p.GenID,
		users:      p.Users,
		webhooks:   p.Webhooks,
		dispatcher: p.Dispatcher,
		metrics:    p.Metrics,
	}
}

func (s *Service) Scan(ctx context.Context) (*domain.ScanResult, error) {
	now := s.clock.Now()
	result := &domain.ScanResult{}
	if s.metrics != nil {
		s.metrics.IncInactivityScan()
	}

	for _, threshold := range domain.Thresholds() {
		sub, err := s.webhooks.FindByEventType(ctx, s.db, threshold.EventType)
		if err != nil {
			return nil, err
		}
		// Thresholds nobody subscribes to are not worth scanning.
		if sub == nil || !sub.Active || sub.URL == nil || strings.TrimSpace(*sub.URL) == "" {
			continue
		}

		tr, err := s.scanThreshold(ctx, threshold, now)
		if err != nil {
			return nil, err
		}
		result.Thresholds = append(result.Thresholds, *tr)
	}

	return result, nil
}

func (s *Service) scanThreshold(ctx context.Context, threshold domain.Threshold, now time.Time) (*domain.ThresholdResult, error) {
	cutoff := now.AddDate(0, 0, -threshold.Days)
	users, err := s.users.FindSignedInBefore(ctx, s.db, cutoff)
	if err != nil {
		return nil, err
	}

	tr := &domain.ThresholdResult{EventType: threshold.EventType, Scanned: len(users)}

	for _, user := range users {
		daysInactive := int(now.Sub(*user.LastSignInAt).Hours() / 24)
		if !threshold.Matches(daysInactive) {
			tr.Skipped++
			continue
		}

		notified, err := s.webhooks.HasDispatchRecord(ctx, s.db, user.ID, threshold.EventType)
		if err != nil {
			return nil, err
		}
		if notified {
			tr.Skipped++
			continue
		}

		payload := map[string]any{
			"user_id":         strconv.FormatInt(user.ID, 10),
			"email":           user.Email,
			"display_name":    user.DisplayName,
			"role":            user.Role,
			"last_sign_in_at": user.LastSignInAt,
			"days_inactive":   daysInactive,
			"created_at":      user.CreatedAt,
		}

		outcome, err := s.dispatcher.Dispatch(ctx, threshold.EventType, payload, false)
		if err != nil {
			s.log.Warn("inactivity dispatch errored",
				zap.Int64("user_id", user.ID),
				zap.String("event_type", threshold.EventType),
				zap.Error(err),
			)
			continue
		}

		// The marker is written whether or not delivery succeeded: one
		// attempt per (user, threshold), ever. Not spamming the user wins
		// over delivery guarantees.
		record := &webhookdomain.DispatchRecord{
			ID:        s.genID.Generate().Int64(),
			UserID:    user.ID,
			EventType: threshold.EventType,
			CreatedAt: now,
		}
		if err := s.webhooks.CreateDispatchRecord(ctx, s.db, record); err != nil {
			s.log.Warn("dedup marker write failed",
				zap.Int64("user_id", user.ID),
				zap.String("event_type", threshold.EventType),
				zap.Error(err),
			)
		}

		tr.Dispatched++
		if s.metrics != nil {
			s.metrics.IncInactivityEvent(threshold.EventType)
		}
		if !outcome.Success {
			s.log.Warn("inactivity notification not delivered",
				zap.Int64("user_id", user.ID),
				zap.String("event_type", threshold.EventType),
				zap.Stringp("reason", outcome.Error),
			)
		}
	}

	return tr, nil
}
