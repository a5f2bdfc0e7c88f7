package domain

import (
	"context"
	"errors"
)

type Service interface {
	// Dispatch signs and POSTs the payload to the event type's configured URL
	// and records the outcome on the subscription row. A misconfigured or
	// inactive subscription yields Success=false without network I/O.
	Dispatch(ctx context.Context, eventType string, payload map[string]any, isTest bool) (*DispatchResult, error)

	List(ctx context.Context) ([]Subscription, error)
	Update(ctx context.Context, req UpdateRequest) (*Subscription, error)
	// RegenerateSecret replaces the signing secret, immediately invalidating
	// the previous one.
	RegenerateSecret(ctx context.Context, eventType string) (string, error)
}

type UpdateRequest struct {
	EventType string  `json:"event_type"`
	URL       *string `json:"webhook_url"`
	Active    *bool   `json:"active"`
}

type DispatchResult struct {
	Success    bool    `json:"success"`
	StatusCode *int    `json:"status_code"`
	Error      *string `json:"error"`
}

var (
	ErrUnknownEventType = errors.New("unknown_event_type")
	ErrURLRequired      = errors.New("webhook_url_required")
)
