// Package controllers holds the HTTP handlers: the storefront webhook
// receiver and the catalogue API.
package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/popays/backend/app/services"
	"github.com/popays/backend/pkg/bind"
	"github.com/popays/backend/pkg/logger"
	"github.com/popays/backend/pkg/metrics"
	"github.com/popays/backend/pkg/response"
)

// WebhookController receives storefront submissions.
type WebhookController struct {
	intake       *services.IntakeService
	maxBodyBytes int64
}

func NewWebhookController(intake *services.IntakeService, maxBodyBytes int64) *WebhookController {
	if maxBodyBytes <= 0 {
		maxBodyBytes = 4 << 20
	}
	return &WebhookController{intake: intake, maxBodyBytes: maxBodyBytes}
}

// Receive handles POST /webhook. The payload carries a type discriminator
// next to the data itself; unknown types are logged and acknowledged so
// the storefront never retries them.
func (c *WebhookController) Receive(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, c.maxBodyBytes))
	if err != nil {
		c.fail(w, r, fmt.Errorf("read body: %w", err))
		return
	}

	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		c.fail(w, r, fmt.Errorf("invalid JSON: %w", err))
		return
	}

	switch probe.Type {
	case "order":
		metrics.IntakeReceived.WithLabelValues("order").Inc()
		var in services.OrderInput
		if err := decode(body, &in); err != nil {
			c.fail(w, r, err)
			return
		}
		if _, err := c.intake.IntakeOrder(r.Context(), in); err != nil {
			c.fail(w, r, err)
			return
		}

	case "contact":
		metrics.IntakeReceived.WithLabelValues("contact").Inc()
		var in services.ContactInput
		if err := decode(body, &in); err != nil {
			c.fail(w, r, err)
			return
		}
		if _, err := c.intake.IntakeContact(r.Context(), in); err != nil {
			c.fail(w, r, err)
			return
		}

	default:
		metrics.IntakeReceived.WithLabelValues("unknown").Inc()
		logger.WithCtx(r.Context()).Warn("unknown webhook payload type", "type", probe.Type)
	}

	response.Success(w, map[string]string{"status": "success"})
}

// Health handles GET /health.
func (c *WebhookController) Health(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{"status": "healthy"})
}

func (c *WebhookController) fail(w http.ResponseWriter, r *http.Request, err error) {
	logger.WithCtx(r.Context()).Error("webhook processing failed", "error", err)
	response.JSON(w, http.StatusInternalServerError, map[string]string{
		"status":  "error",
		"message": err.Error(),
	})
}

// decode unmarshals and validates one payload branch.
func decode(body []byte, dest interface{}) error {
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if errs := bind.Struct(dest); errs != nil {
		parts := make([]string, 0, len(errs))
		for field, msg := range errs {
			parts = append(parts, field+" "+msg)
		}
		return fmt.Errorf("validation: %s", strings.Join(parts, "; "))
	}
	return nil
}
