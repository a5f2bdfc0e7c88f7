package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/revendahq/revenda/internal/clock"
	inactivitydomain "github.com/revendahq/revenda/internal/inactivity/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeInactivityService struct {
	calls int
	err   error
}

func (f *fakeInactivityService) Scan(ctx context.Context) (*inactivitydomain.ScanResult, error) {
	_ = ctx
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &inactivitydomain.ScanResult{}, nil
}

func TestNewRequiresDependencies(t *testing.T) {
	_, err := New(Params{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestRunOnceRunsInactivityScan(t *testing.T) {
	svc := &fakeInactivityService{}
	sched, err := New(Params{
		Log:           zap.NewNop(),
		Clock:         clock.NewFakeClock(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)),
		InactivitySvc: svc,
	})
	require.NoError(t, err)

	require.NoError(t, sched.RunOnce(context.Background()))
	assert.Equal(t, 1, svc.calls)
}

func TestRunOncePropagatesScanError(t *testing.T) {
	svc := &fakeInactivityService{err: errors.New("store unavailable")}
	sched, err := New(Params{
		Log:           zap.NewNop(),
		Clock:         clock.NewFakeClock(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)),
		InactivitySvc: svc,
	})
	require.NoError(t, err)

	assert.Error(t, sched.RunOnce(context.Background()))
}
