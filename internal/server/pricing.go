package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	pricingdomain "github.com/revendahq/revenda/internal/pricing/domain"
)

type recalculateRequest struct {
	PlatformFeeValue     *float64 `json:"platform_fee_value"`
	PlatformFeeType      string   `json:"platform_fee_type"`
	GatewayFeePercentage *float64 `json:"gateway_fee_percentage"`
}

// RecalculatePrices accepts a new fee configuration, schedules the catalog
// rewrite and acknowledges immediately with the number of affected items.
func (s *Server) RecalculatePrices(c *gin.Context) {
	var req recalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}
	if req.PlatformFeeValue == nil || req.GatewayFeePercentage == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "platform_fee_value and gateway_fee_percentage are required"})
		return
	}

	resp, err := s.pricingSvc.Recalculate(c.Request.Context(), pricingdomain.RecalculateRequest{
		PlatformFeeValue:     *req.PlatformFeeValue,
		PlatformFeeType:      req.PlatformFeeType,
		GatewayFeePercentage: *req.GatewayFeePercentage,
	})
	if err != nil {
		status := http.StatusInternalServerError
		message := "internal error"
		switch {
		case errors.Is(err, pricingdomain.ErrInvalidFeeType),
			errors.Is(err, pricingdomain.ErrInvalidGatewayFee):
			status = http.StatusBadRequest
			message = err.Error()
		case errors.Is(err, pricingdomain.ErrRunQueueFull):
			status = http.StatusServiceUnavailable
			message = err.Error()
		}
		c.JSON(status, gin.H{"success": false, "error": message})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":              true,
		"message":              fmt.Sprintf("%d items scheduled for price update", resp.ItemsToUpdate),
		"products_to_update":   resp.ItemsToUpdate,
		"estimated_completion": resp.EstimatedCompletion,
	})
}
