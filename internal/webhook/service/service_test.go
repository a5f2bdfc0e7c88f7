package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/revendahq/revenda/internal/clock"
	"github.com/revendahq/revenda/internal/webhook/domain"
	"github.com/revendahq/revenda/internal/webhook/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type countingTransport struct {
	calls atomic.Int64
}

func (t *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.calls.Add(1)
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       http.NoBody,
		Header:     make(http.Header),
	}, nil
}

func newTestService(t *testing.T, client *http.Client) (domain.Service, *gorm.DB, *clock.FakeClock) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	// A fresh pool connection would see an empty in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.Subscription{}, &domain.DispatchRecord{}))

	fake := clock.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	svc := New(Params{
		DB:     db,
		Log:    zap.NewNop(),
		Clock:  fake,
		Repo:   repository.Provide(),
		Client: client,
	})
	return svc, db, fake
}

func seedSubscription(t *testing.T, db *gorm.DB, eventType string, url *string, active bool, secret *string) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, db.Create(&domain.Subscription{
		ID:          time.Now().UnixNano(),
		EventType:   eventType,
		URL:         url,
		Active:      active,
		SecretToken: secret,
		CreatedAt:   now,
		UpdatedAt:   now,
	}).Error)
}

func strp(s string) *string { return &s }

func TestDispatchDeliversSignedPayload(t *testing.T) {
	var gotBody []byte
	var gotSignature string
	var gotContentType string
	receiver := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotSignature = r.Header.Get(domain.SignatureHeader)
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer receiver.Close()

	svc, db, fake := newTestService(t, receiver.Client())
	secret := "super-secret"
	seedSubscription(t, db, domain.EventOrderPaid, strp(receiver.URL), true, &secret)

	result, err := svc.Dispatch(context.Background(), domain.EventOrderPaid, map[string]any{
		"order_id": "123",
		"amount":   49.90,
	}, false)
	require.NoError(t, err)

	assert.True(t, result.Success)
	require.NotNil(t, result.StatusCode)
	assert.Equal(t, http.StatusOK, *result.StatusCode)
	assert.Nil(t, result.Error)

	var envelope struct {
		EventType string         `json:"event_type"`
		Test      bool           `json:"test"`
		Data      map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(gotBody, &envelope))
	assert.Equal(t, domain.EventOrderPaid, envelope.EventType)
	assert.False(t, envelope.Test)
	assert.Equal(t, "123", envelope.Data["order_id"])

	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, domain.Sign(secret, gotBody), gotSignature)

	var sub domain.Subscription
	require.NoError(t, db.Where("event_type = ?", domain.EventOrderPaid).First(&sub).Error)
	require.NotNil(t, sub.LastTriggeredAt)
	assert.WithinDuration(t, fake.Now(), *sub.LastTriggeredAt, time.Second)
	require.NotNil(t, sub.LastStatusCode)
	assert.Equal(t, http.StatusOK, *sub.LastStatusCode)
	assert.Nil(t, sub.LastErrorMessage)
}

func TestDispatchRecordsNon2xxAsFailure(t *testing.T) {
	receiver := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer receiver.Close()

	svc, db, _ := newTestService(t, receiver.Client())
	seedSubscription(t, db, domain.EventUserCreated, strp(receiver.URL), true, nil)

	result, err := svc.Dispatch(context.Background(), domain.EventUserCreated, map[string]any{"user_id": "1"}, false)
	require.NoError(t, err)

	assert.False(t, result.Success)
	require.NotNil(t, result.StatusCode)
	assert.Equal(t, http.StatusBadGateway, *result.StatusCode)
	require.NotNil(t, result.Error)

	var sub domain.Subscription
	require.NoError(t, db.Where("event_type = ?", domain.EventUserCreated).First(&sub).Error)
	require.NotNil(t, sub.LastStatusCode)
	assert.Equal(t, http.StatusBadGateway, *sub.LastStatusCode)
	require.NotNil(t, sub.LastErrorMessage)
}

func TestDispatchNetworkErrorRecorded(t *testing.T) {
	receiver := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := receiver.URL
	receiver.Close()

	svc, db, _ := newTestService(t, &http.Client{Timeout: time.Second})
	seedSubscription(t, db, domain.EventOrderPaid, strp(url), true, nil)

	result, err := svc.Dispatch(context.Background(), domain.EventOrderPaid, nil, false)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Nil(t, result.StatusCode)
	require.NotNil(t, result.Error)

	var sub domain.Subscription
	require.NoError(t, db.Where("event_type = ?", domain.EventOrderPaid).First(&sub).Error)
	assert.Nil(t, sub.LastStatusCode)
	require.NotNil(t, sub.LastErrorMessage)
}

func TestDispatchSkipsInactiveSubscriptionWithoutNetworkCall(t *testing.T) {
	transport := &countingTransport{}
	svc, db, _ := newTestService(t, &http.Client{Transport: transport})
	seedSubscription(t, db, domain.EventOrderPaid, strp("http://example.com/hook"), false, nil)

	result, err := svc.Dispatch(context.Background(), domain.EventOrderPaid, nil, false)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Nil(t, result.StatusCode)
	require.NotNil(t, result.Error)
	assert.Equal(t, int64(0), transport.calls.Load(), "inactive subscription must not hit the network")
}

func TestDispatchMissingSubscriptionAndURL(t *testing.T) {
	transport := &countingTransport{}
	svc, db, _ := newTestService(t, &http.Client{Transport: transport})
	seedSubscription(t, db, domain.EventUserCreated, nil, true, nil)

	result, err := svc.Dispatch(context.Background(), domain.EventUserCreated, nil, false)
	require.NoError(t, err)
	assert.False(t, result.Success)

	result, err = svc.Dispatch(context.Background(), "order.refunded", nil, false)
	require.NoError(t, err)
	assert.False(t, result.Success)

	assert.Equal(t, int64(0), transport.calls.Load())
}

func TestUpdateRequiresURLForActivation(t *testing.T) {
	svc, db, _ := newTestService(t, nil)
	seedSubscription(t, db, domain.EventOrderPaid, nil, false, nil)

	active := true
	_, err := svc.Update(context.Background(), domain.UpdateRequest{
		EventType: domain.EventOrderPaid,
		Active:    &active,
	})
	assert.ErrorIs(t, err, domain.ErrURLRequired)

	sub, err := svc.Update(context.Background(), domain.UpdateRequest{
		EventType: domain.EventOrderPaid,
		URL:       strp("https://example.com/hook"),
		Active:    &active,
	})
	require.NoError(t, err)
	assert.True(t, sub.Active)
	require.NotNil(t, sub.URL)
	assert.Equal(t, "https://example.com/hook", *sub.URL)
}

func TestUpdateUnknownEventType(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	_, err := svc.Update(context.Background(), domain.UpdateRequest{EventType: "order.refunded"})
	assert.ErrorIs(t, err, domain.ErrUnknownEventType)
}

func TestRegenerateSecretReplacesPrevious(t *testing.T) {
	svc, db, _ := newTestService(t, nil)
	seedSubscription(t, db, domain.EventOrderPaid, strp("https://example.com/hook"), true, nil)

	first, err := svc.RegenerateSecret(context.Background(), domain.EventOrderPaid)
	require.NoError(t, err)
	assert.Len(t, first, 64)

	second, err := svc.RegenerateSecret(context.Background(), domain.EventOrderPaid)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	var sub domain.Subscription
	require.NoError(t, db.Where("event_type = ?", domain.EventOrderPaid).First(&sub).Error)
	require.NotNil(t, sub.SecretToken)
	assert.Equal(t, second, *sub.SecretToken)
}
