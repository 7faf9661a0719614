// Package stripe is a hand-rolled client for the three Stripe calls this
// system makes: create a product, price it, mint a payment link. US leads
// pay through here; the region policy never sends an INR deal this way.
package stripe

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rcardo11/leadpilot/internal/infra/http/middleware"
	"github.com/rcardo11/leadpilot/internal/usecase"
)

type Client struct {
	baseURL       string
	apiKey        string
	webhookSecret string
	http          *http.Client
}

func NewClient(apiKey, baseURL, webhookSecret string) *Client {
	return &Client{
		baseURL:       baseURL,
		apiKey:        apiKey,
		webhookSecret: webhookSecret,
		http:          &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateLink mints a one-time payment link. Stripe wants a product and a
// price first; the lead/deal ids ride along in the link metadata and come
// back on the checkout.session.completed webhook.
func (c *Client) CreateLink(ctx context.Context, input usecase.PaymentLinkInput) (usecase.PaymentLinkOutput, error) {
	var out usecase.PaymentLinkOutput

	var product productResponse
	err := c.postForm(ctx, "/v1/products", url.Values{
		"name":        {input.Description},
		"description": {"Custom business consulting services"},
	}, &product)
	if err != nil {
		return out, fmt.Errorf("stripe create product: %w", err)
	}

	var price priceResponse
	err = c.postForm(ctx, "/v1/prices", url.Values{
		"product":     {product.ID},
		"unit_amount": {strconv.FormatInt(input.Amount, 10)},
		"currency":    {strings.ToLower(input.Currency)},
	}, &price)
	if err != nil {
		return out, fmt.Errorf("stripe create price: %w", err)
	}

	var link paymentLinkResponse
	err = c.postForm(ctx, "/v1/payment_links", url.Values{
		"line_items[0][price]":    {price.ID},
		"line_items[0][quantity]": {"1"},
		"metadata[lead_id]":       {input.LeadID},
		"metadata[deal_id]":       {input.DealID},
		"metadata[email]":         {input.Email},
	}, &link)
	if err != nil {
		return out, fmt.Errorf("stripe create payment link: %w", err)
	}

	out.ID = link.ID
	out.URL = link.URL
	return out, nil
}

// VerifySignature checks the v1 component of the Stripe-Signature header:
// HMAC-SHA256 of "<t>.<body>" with the endpoint secret.
func (c *Client) VerifySignature(payload []byte, signature string) bool {
	if c.webhookSecret == "" || signature == "" {
		return false
	}

	var timestamp, v1 string
	for _, part := range strings.Split(signature, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch key {
		case "t":
			timestamp = value
		case "v1":
			v1 = value
		}
	}
	if timestamp == "" || v1 == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(c.webhookSecret))
	mac.Write([]byte(timestamp + "."))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(v1))
}

// ParseWebhook reduces a Stripe event to the typed payment event the core
// consumes. Sessions without our metadata are someone else's traffic.
func (c *Client) ParseWebhook(payload []byte) (*usecase.PaymentEvent, error) {
	var event webhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, usecase.ErrUnrecognizedWebhook
	}

	if event.Type != "checkout.session.completed" {
		return nil, usecase.ErrUnrecognizedWebhook
	}

	object := event.Data.Object
	leadID := object.Metadata["lead_id"]
	dealID := object.Metadata["deal_id"]
	if leadID == "" || dealID == "" {
		return nil, usecase.ErrUnrecognizedWebhook
	}

	return &usecase.PaymentEvent{
		PaymentID: object.ID,
		LeadID:    leadID,
		DealID:    dealID,
		Amount:    object.AmountTotal,
		Currency:  strings.ToUpper(object.Currency),
		Kind:      usecase.EventPaymentSucceeded,
	}, nil
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "LeadPilot/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		middleware.RecordIntegrationError("stripe")
		return fmt.Errorf("stripe request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		middleware.RecordIntegrationError("stripe")
		body, _ := io.ReadAll(resp.Body)
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("stripe rejected (status %d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return fmt.Errorf("stripe rejected (status %d)", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(dest)
}
