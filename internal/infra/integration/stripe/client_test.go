package stripe

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"github.com/rcardo11/leadpilot/internal/usecase"
)

func integrationErrorCount(t *testing.T, service string) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	assert.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "integration_errors_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == "service" && label.GetValue() == service {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func signStripe(secret, timestamp string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp + "."))
	mac.Write(payload)
	return "t=" + timestamp + ",v1=" + hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	c := NewClient("sk_test", "https://api.stripe.com", "whsec_test")
	payload := []byte(`{"type":"checkout.session.completed"}`)

	assert.True(t, c.VerifySignature(payload, signStripe("whsec_test", "1724400000", payload)))
	assert.False(t, c.VerifySignature(payload, signStripe("whsec_wrong", "1724400000", payload)))
	assert.False(t, c.VerifySignature(payload, "t=1724400000,v1=deadbeef"))
	assert.False(t, c.VerifySignature(payload, "garbage"))
	assert.False(t, c.VerifySignature(payload, ""))
}

func TestVerifySignatureNoSecretConfigured(t *testing.T) {
	c := NewClient("sk_test", "https://api.stripe.com", "")
	payload := []byte(`{}`)
	// Without a secret everything fails closed.
	assert.False(t, c.VerifySignature(payload, signStripe("", "1724400000", payload)))
}

func TestParseWebhookCheckoutCompleted(t *testing.T) {
	c := NewClient("sk_test", "https://api.stripe.com", "whsec_test")

	payload := []byte(`{
		"id": "evt_1",
		"type": "checkout.session.completed",
		"data": {"object": {
			"id": "cs_test_1",
			"amount_total": 250000,
			"currency": "usd",
			"metadata": {"lead_id": "lead-1", "deal_id": "deal-1"}
		}}
	}`)

	event, err := c.ParseWebhook(payload)

	assert.NoError(t, err)
	assert.Equal(t, "cs_test_1", event.PaymentID)
	assert.Equal(t, "lead-1", event.LeadID)
	assert.Equal(t, "deal-1", event.DealID)
	assert.Equal(t, int64(250000), event.Amount)
	assert.Equal(t, "USD", event.Currency)
	assert.Equal(t, usecase.EventPaymentSucceeded, event.Kind)
}

func TestParseWebhookIgnoresOtherEvents(t *testing.T) {
	c := NewClient("sk_test", "https://api.stripe.com", "whsec_test")

	_, err := c.ParseWebhook([]byte(`{"type":"invoice.paid","data":{"object":{}}}`))
	assert.ErrorIs(t, err, usecase.ErrUnrecognizedWebhook)
}

func TestParseWebhookMissingMetadata(t *testing.T) {
	c := NewClient("sk_test", "https://api.stripe.com", "whsec_test")

	// A checkout session from some other product on the same account.
	payload := []byte(`{
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_other", "metadata": {}}}
	}`)

	_, err := c.ParseWebhook(payload)
	assert.ErrorIs(t, err, usecase.ErrUnrecognizedWebhook)
}

func TestCreateLinkThreeCallFlow(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))

		switch r.URL.Path {
		case "/v1/products":
			w.Write([]byte(`{"id":"prod_1"}`))
		case "/v1/prices":
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "prod_1", r.Form.Get("product"))
			assert.Equal(t, "250000", r.Form.Get("unit_amount"))
			w.Write([]byte(`{"id":"price_1"}`))
		case "/v1/payment_links":
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "price_1", r.Form.Get("line_items[0][price]"))
			assert.Equal(t, "lead-1", r.Form.Get("metadata[lead_id]"))
			assert.Equal(t, "deal-1", r.Form.Get("metadata[deal_id]"))
			w.Write([]byte(`{"id":"plink_1","url":"https://buy.stripe.com/test"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient("sk_test", srv.URL, "whsec_test")
	out, err := c.CreateLink(context.Background(), usecase.PaymentLinkInput{
		Amount:      250000,
		Currency:    "USD",
		Description: "Consulting Services for Acme",
		LeadID:      "lead-1",
		DealID:      "deal-1",
		Email:       "jane@example.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, "plink_1", out.ID)
	assert.Equal(t, "https://buy.stripe.com/test", out.URL)
	assert.Equal(t, []string{"/v1/products", "/v1/prices", "/v1/payment_links"}, paths)
}

func TestCreateLinkAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"Invalid API Key"}}`))
	}))
	defer srv.Close()

	before := integrationErrorCount(t, "stripe")

	c := NewClient("sk_bad", srv.URL, "whsec_test")
	_, err := c.CreateLink(context.Background(), usecase.PaymentLinkInput{Amount: 100, Currency: "USD"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid API Key")
	assert.Equal(t, before+1, integrationErrorCount(t, "stripe"))
}
