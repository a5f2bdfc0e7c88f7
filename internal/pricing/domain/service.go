package domain

import (
	"context"
	"errors"
)

type Service interface {
	// Recalculate validates the requested fee configuration, persists it,
	// gathers the work list and schedules the price rewrite in the background.
	// It returns as soon as the run is accepted.
	Recalculate(ctx context.Context, req RecalculateRequest) (*RecalculateResponse, error)
}

type RecalculateRequest struct {
	PlatformFeeValue     float64 `json:"platform_fee_value"`
	PlatformFeeType      string  `json:"platform_fee_type"`
	GatewayFeePercentage float64 `json:"gateway_fee_percentage"`
}

type RecalculateResponse struct {
	ItemsToUpdate       int    `json:"products_to_update"`
	EstimatedCompletion string `json:"estimated_completion"`
}

var (
	ErrInvalidFeeType    = errors.New("invalid_platform_fee_type")
	ErrInvalidGatewayFee = errors.New("invalid_gateway_fee_percentage")
	ErrRunQueueFull      = errors.New("recalculation_queue_full")
)
