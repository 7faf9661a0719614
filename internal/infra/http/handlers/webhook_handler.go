package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rcardo11/leadpilot/internal/entity"
	"github.com/rcardo11/leadpilot/internal/infra/http/middleware"
	"github.com/rcardo11/leadpilot/internal/infra/queue"
	"github.com/rcardo11/leadpilot/internal/usecase"
)

// WebhookHandler is the inbound edge for the two event sources: email
// replies and payment processors. Recognized-but-unmatched events still get
// a 200 so the sender stops retrying; only infrastructure failures 500.
type WebhookHandler struct {
	replyUC  *usecase.HandleReplyUseCase
	parsers  map[string]usecase.WebhookParser
	producer queue.QueueProducerInterface
}

func NewWebhookHandler(
	replyUC *usecase.HandleReplyUseCase,
	parsers map[string]usecase.WebhookParser,
	producer queue.QueueProducerInterface,
) *WebhookHandler {
	return &WebhookHandler{
		replyUC:  replyUC,
		parsers:  parsers,
		producer: producer,
	}
}

// HandleEmailReply receives an inbound reply notification from the mail
// provider's forwarding hook.
func (h *WebhookHandler) HandleEmailReply(w http.ResponseWriter, r *http.Request) {
	var input usecase.ReplyInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Bad JSON", http.StatusBadRequest)
		return
	}
	if input.From == "" {
		http.Error(w, "from is required", http.StatusBadRequest)
		return
	}

	err := h.replyUC.Execute(r.Context(), input)
	switch {
	case err == nil:
		middleware.RecordWebhookEvent("email", "processed")
	case errors.Is(err, entity.ErrLeadNotFound):
		// Reply from an address we never contacted. Not our traffic.
		log.Printf("webhook: reply from unknown address %s", input.From)
		middleware.RecordWebhookEvent("email", "unmatched")
	default:
		log.Printf("webhook: reply handling failed: %v", err)
		middleware.RecordWebhookEvent("email", "error")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// HandlePayment verifies and parses a processor webhook, then hands the
// conversion to the queue. The heavy lifting happens on the consumer side.
func (h *WebhookHandler) HandlePayment(w http.ResponseWriter, r *http.Request) {
	processor := chi.URLParam(r, "processor")
	parser, ok := h.parsers[processor]
	if !ok {
		http.Error(w, "Unknown processor", http.StatusNotFound)
		return
	}

	payload, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}

	if !parser.VerifySignature(payload, signatureHeader(r, processor)) {
		log.Printf("webhook: bad %s signature from %s", processor, getClientIP(r))
		middleware.RecordWebhookEvent(processor, "bad_signature")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	event, err := parser.ParseWebhook(payload)
	if err != nil {
		// Event types we don't act on, or payloads missing our metadata.
		middleware.RecordWebhookEvent(processor, "ignored")
		w.WriteHeader(http.StatusOK)
		return
	}

	if event.Kind != usecase.EventPaymentSucceeded {
		middleware.RecordWebhookEvent(processor, "ignored")
		w.WriteHeader(http.StatusOK)
		return
	}

	err = h.producer.PublishConversion(r.Context(), queue.ConversionPayload{
		LeadID:    event.LeadID,
		DealID:    event.DealID,
		PaymentID: event.PaymentID,
		Amount:    event.Amount,
		Currency:  event.Currency,
		Processor: processor,
	})
	if err != nil {
		// A 500 here makes the processor redeliver, which is what we want.
		log.Printf("webhook: queue publish failed: %v", err)
		middleware.RecordWebhookEvent(processor, "error")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	middleware.RecordWebhookEvent(processor, "queued")
	w.WriteHeader(http.StatusOK)
}

func signatureHeader(r *http.Request, processor string) string {
	switch processor {
	case "stripe":
		return r.Header.Get("Stripe-Signature")
	case "razorpay":
		return r.Header.Get("X-Razorpay-Signature")
	default:
		return ""
	}
}
