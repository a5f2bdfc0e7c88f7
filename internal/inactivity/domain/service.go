package domain

import (
	"context"

	webhookdomain "github.com/revendahq/revenda/internal/webhook/domain"
)

type Service interface {
	// Scan finds users who crossed an inactivity threshold and dispatches at
	// most one notification per (user, threshold) pair, ever.
	Scan(ctx context.Context) (*ScanResult, error)
}

// Threshold is one inactivity band. A user qualifies when their days of
// inactivity fall in [Days, UpperDays); UpperDays zero means unbounded.
// Exclusive bands keep a long-inactive user from receiving stale lower
// thresholds after the fact.
type Threshold struct {
	EventType string
	Days      int
	UpperDays int
}

func Thresholds() []Threshold {
	return []Threshold{
		{EventType: webhookdomain.EventUserInactive7Days, Days: 7, UpperDays: 15},
		{EventType: webhookdomain.EventUserInactive15Days, Days: 15, UpperDays: 30},
		{EventType: webhookdomain.EventUserInactive30Days, Days: 30},
	}
}

func (t Threshold) Matches(daysInactive int) bool {
	if daysInactive < t.Days {
		return false
	}
	return t.UpperDays == 0 || daysInactive < t.UpperDays
}

type ThresholdResult struct {
	EventType  string `json:"event_type"`
	Scanned    int    `json:"scanned"`
	Dispatched int    `json:"dispatched"`
	Skipped    int    `json:"skipped"`
}

type ScanResult struct {
	Thresholds []ThresholdResult `json:"thresholds"`
}
