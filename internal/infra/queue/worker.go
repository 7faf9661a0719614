package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/rcardo11/leadpilot/internal/infra/http/middleware"
	"github.com/rcardo11/leadpilot/internal/usecase"
)

// PaymentConfirmer is the use case the worker drives for every delivery.
type PaymentConfirmer interface {
	Execute(ctx context.Context, input usecase.ConfirmPaymentInput) error
}

type Worker struct {
	Channel   *amqp.Channel
	Confirmer PaymentConfirmer
}

func NewWorker(ch *amqp.Channel, confirmer PaymentConfirmer) *Worker {
	return &Worker{
		Channel:   ch,
		Confirmer: confirmer,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual, so failures reach the DLQ)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("[WORKER] failed to register consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload ConversionPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("[WORKER] invalid JSON, dropping: %s", err)
				// Malformed message. Reject without requeue so it doesn't jam the queue.
				d.Nack(false, false)
				continue
			}

			log.Printf("[WORKER] processing conversion lead=%s deal=%s processor=%s",
				payload.LeadID, payload.DealID, payload.Processor)

			if err := w.processMessage(context.Background(), payload); err != nil {
				log.Printf("[WORKER] conversion failed: %s", err)
				d.Nack(false, false)
			} else {
				middleware.RecordConversion()
				d.Ack(false)
			}
		}
	}()

	log.Printf("[WORKER] waiting on queue '%s'", queueName)
	<-forever
}

func (w *Worker) processMessage(ctx context.Context, payload ConversionPayload) error {
	return w.Confirmer.Execute(ctx, usecase.ConfirmPaymentInput{
		PaymentID: payload.PaymentID,
		LeadID:    payload.LeadID,
		DealID:    payload.DealID,
		Amount:    payload.Amount,
		Currency:  payload.Currency,
		Processor: payload.Processor,
	})
}
