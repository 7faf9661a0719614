// Package razorpay mints INR payment links for India leads. The lead/deal
// ids travel in the link notes and come back on the payment webhook.
package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rcardo11/leadpilot/internal/infra/http/middleware"
	"github.com/rcardo11/leadpilot/internal/usecase"
)

type Client struct {
	baseURL       string
	keyID         string
	keySecret     string
	webhookSecret string
	http          *http.Client
}

func NewClient(keyID, keySecret, baseURL, webhookSecret string) *Client {
	return &Client{
		baseURL:       baseURL,
		keyID:         keyID,
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
		http:          &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) CreateLink(ctx context.Context, input usecase.PaymentLinkInput) (usecase.PaymentLinkOutput, error) {
	var out usecase.PaymentLinkOutput

	payload := createLinkRequest{
		Amount:      input.Amount,
		Currency:    input.Currency,
		Description: input.Description,
		Customer: linkCustomer{
			Name:    input.Name,
			Email:   input.Email,
			Contact: input.Contact,
		},
		Notify: linkNotify{Email: true, SMS: input.Contact != ""},
		Notes: map[string]string{
			"lead_id": input.LeadID,
			"deal_id": input.DealID,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return out, fmt.Errorf("razorpay marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/payment_links", bytes.NewReader(body))
	if err != nil {
		return out, err
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "LeadPilot/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		middleware.RecordIntegrationError("razorpay")
		return out, fmt.Errorf("razorpay request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		middleware.RecordIntegrationError("razorpay")
		raw, _ := io.ReadAll(resp.Body)
		var apiErr errorResponse
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Description != "" {
			return out, fmt.Errorf("razorpay rejected (status %d): %s", resp.StatusCode, apiErr.Error.Description)
		}
		return out, fmt.Errorf("razorpay rejected (status %d)", resp.StatusCode)
	}

	var link createLinkResponse
	if err := json.NewDecoder(resp.Body).Decode(&link); err != nil {
		return out, fmt.Errorf("razorpay decode: %w", err)
	}

	out.ID = link.ID
	out.URL = link.ShortURL
	return out, nil
}

// VerifySignature checks X-Razorpay-Signature: hex HMAC-SHA256 of the raw
// body with the webhook secret.
func (c *Client) VerifySignature(payload []byte, signature string) bool {
	if c.webhookSecret == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(c.webhookSecret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

// ParseWebhook handles both payment_link.paid and the older
// payment.authorized shape; either way the notes must carry our ids.
func (c *Client) ParseWebhook(payload []byte) (*usecase.PaymentEvent, error) {
	var event webhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, usecase.ErrUnrecognizedWebhook
	}

	switch event.Event {
	case "payment_link.paid":
		entity := event.Payload.PaymentLink.Entity
		if entity.Notes["lead_id"] == "" || entity.Notes["deal_id"] == "" {
			return nil, usecase.ErrUnrecognizedWebhook
		}
		return &usecase.PaymentEvent{
			PaymentID: entity.ID,
			LeadID:    entity.Notes["lead_id"],
			DealID:    entity.Notes["deal_id"],
			Amount:    entity.AmountPaid,
			Currency:  entity.Currency,
			Kind:      usecase.EventPaymentSucceeded,
		}, nil

	case "payment.authorized":
		entity := event.Payload.Payment.Entity
		if entity.Notes["lead_id"] == "" || entity.Notes["deal_id"] == "" {
			return nil, usecase.ErrUnrecognizedWebhook
		}
		return &usecase.PaymentEvent{
			PaymentID: entity.ID,
			LeadID:    entity.Notes["lead_id"],
			DealID:    entity.Notes["deal_id"],
			Amount:    entity.Amount,
			Currency:  entity.Currency,
			Kind:      usecase.EventPaymentSucceeded,
		}, nil

	default:
		return nil, usecase.ErrUnrecognizedWebhook
	}
}
