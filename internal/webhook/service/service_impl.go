package service

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/revendahq/revenda/internal/clock"
	"github.com/revendahq/revenda/internal/metrics"
	"github.com/revendahq/revenda/internal/webhook/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Clock   clock.Clock
	Repo    domain.Repository
	Client  *http.Client     `optional:"true"`
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	clock   clock.Clock
	repo    domain.Repository
	client  *http.Client
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	client := p.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("webhook.service"),
		clock:   p.Clock,
		repo:    p.Repo,
		client:  client,
		metrics: p.Metrics,
	}
}

// envelope is the published request body shape. External subscribers depend
// on it byte-for-byte; do not change field names or nesting.
type envelope struct {
	EventType string         `json:"event_type"`
	Test      bool           `json:"test"`
	Data      map[string]any `json:"data"`
}

func (s *Service) Dispatch(ctx context.Context, eventType string, payload map[string]any, isTest bool) (*domain.DispatchResult, error) {
	sub, err := s.repo.FindByEventType(ctx, s.db, eventType)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return failure(fmt.Sprintf("no subscription configured for event type %q", eventType)), nil
	}
	if !sub.Active {
		return failure(fmt.Sprintf("subscription for %q is inactive", eventType)), nil
	}
	if sub.URL == nil || strings.TrimSpace(*sub.URL) == "" {
		return failure(fmt.Sprintf("subscription for %q has no webhook url", eventType)), nil
	}

	body, err := json.Marshal(envelope{
		EventType: eventType,
		Test:      isTest,
		Data:      payload,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, *sub.URL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if sub.SecretToken != nil && *sub.SecretToken != "" {
		req.Header.Set(domain.SignatureHeader, domain.Sign(*sub.SecretToken, body))
	}

	result := &domain.DispatchResult{}
	resp, err := s.client.Do(req)
	if err != nil {
		msg := err.Error()
		result.Error = &msg
	} else {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		code := resp.StatusCode
		result.StatusCode = &code
		if code >= 200 && code < 300 {
			result.Success = true
		} else {
			msg := fmt.Sprintf("unexpected status %d", code)
			result.Error = &msg
		}
	}

	// Last-delivery fields are overwritten on every attempt, success or not.
	if recordErr := s.repo.RecordDelivery(ctx, s.db, eventType, s.clock.Now(), result.StatusCode, result.Error); recordErr != nil {
		s.log.Warn("recording delivery outcome failed",
			zap.String("event_type", eventType),
			zap.Error(recordErr),
		)
	}

	outcome := metrics.OutcomeFailure
	if result.Success {
		outcome = metrics.OutcomeSuccess
	}
	if s.metrics != nil {
		s.metrics.IncWebhookDelivery(eventType, outcome)
	}
	s.log.Info("webhook dispatched",
		zap.String("event_type", eventType),
		zap.Bool("success", result.Success),
		zap.Bool("test", isTest),
	)

	return result, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Subscription, error) {
	return s.repo.FindAll(ctx, s.db)
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Subscription, error) {
	eventType := strings.TrimSpace(req.EventType)
	if !domain.IsKnownEventType(eventType) {
		return nil, domain.ErrUnknownEventType
	}

	sub, err := s.repo.FindByEventType(ctx, s.db, eventType)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, domain.ErrUnknownEventType
	}

	url := sub.URL
	if req.URL != nil {
		trimmed := strings.TrimSpace(*req.URL)
		if trimmed == "" {
			url = nil
		} else {
			url = &trimmed
		}
	}

	active := sub.Active
	if req.Active != nil {
		active = *req.Active
	}

	// Activation requires a destination; the store does not enforce this.
	if active && (url == nil || *url == "") {
		return nil, domain.ErrURLRequired
	}

	if err := s.repo.UpdateConfig(ctx, s.db, eventType, url, active, s.clock.Now()); err != nil {
		return nil, err
	}

	return s.repo.FindByEventType(ctx, s.db, eventType)
}

func (s *Service) RegenerateSecret(ctx context.Context, eventType string) (string, error) {
	eventType = strings.TrimSpace(eventType)
	if !domain.IsKnownEventType(eventType) {
		return "", domain.ErrUnknownEventType
	}

	sub, err := s.repo.FindByEventType(ctx, s.db, eventType)
	if err != nil {
		return "", err
	}
	if sub == nil {
		return "", domain.ErrUnknownEventType
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	secret := hex.EncodeToString(raw)

	if err := s.repo.UpdateSecret(ctx, s.db, eventType, secret, s.clock.Now()); err != nil {
		return "", err
	}
	return secret, nil
}

func failure(reason string) *domain.DispatchResult {
	return &domain.DispatchResult{Success: false, Error: &reason}
}
