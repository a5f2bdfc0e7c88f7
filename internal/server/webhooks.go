package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	webhookdomain "github.com/revendahq/revenda/internal/webhook/domain"
)

func (s *Server) ListWebhookSubscriptions(c *gin.Context) {
	subs, err := s.webhookSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": subs})
}

type updateSubscriptionRequest struct {
	URL    *string `json:"webhook_url"`
	Active *bool   `json:"active"`
}

func (s *Server) UpdateWebhookSubscription(c *gin.Context) {
	var req updateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	sub, err := s.webhookSvc.Update(c.Request.Context(), webhookdomain.UpdateRequest{
		EventType: strings.TrimSpace(c.Param("event_type")),
		URL:       req.URL,
		Active:    req.Active,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": sub})
}

func (s *Server) RegenerateWebhookSecret(c *gin.Context) {
	secret, err := s.webhookSvc.RegenerateSecret(c.Request.Context(), strings.TrimSpace(c.Param("event_type")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	// The secret is returned exactly once; only its presence is stored.
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"secret_token": secret}})
}

type dispatchRequest struct {
	EventType string         `json:"event_type"`
	Payload   map[string]any `json:"payload"`
	IsTest    bool           `json:"is_test"`
}

func (s *Server) DispatchWebhook(c *gin.Context) {
	var req dispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if strings.TrimSpace(req.EventType) == "" {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.webhookSvc.Dispatch(c.Request.Context(), strings.TrimSpace(req.EventType), req.Payload, req.IsTest)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
