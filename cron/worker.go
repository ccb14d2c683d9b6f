package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"wanderstay/config"
	"wanderstay/services/payment"

	"github.com/hibiken/asynq"
)

const TypeRefundProcess = "refund:process"

// RefundTaskPayload carries one queued cancellation refund.
type RefundTaskPayload struct {
	PaymentID string `json:"paymentId"`
	Amount    int64  `json:"amount"`
	Reason    string `json:"reason"`
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// RefundEnqueuer queues cancellation refunds for asynchronous processing.
// It implements booking.RefundQueue.
type RefundEnqueuer struct {
	client *asynq.Client
}

// NewRefundEnqueuer creates an enqueuer backed by the queue redis DB.
func NewRefundEnqueuer() *RefundEnqueuer {
	return &RefundEnqueuer{client: asynq.NewClient(redisOpts())}
}

// EnqueueRefund schedules a refund task with asynq's default retry policy.
func (e *RefundEnqueuer) EnqueueRefund(ctx context.Context, paymentID string, amount int64, reason string) error {
	payload, err := json.Marshal(RefundTaskPayload{PaymentID: paymentID, Amount: amount, Reason: reason})
	if err != nil {
		return fmt.Errorf("marshalling refund task: %w", err)
	}
	task := asynq.NewTask(TypeRefundProcess, payload, asynq.MaxRetry(5))
	if _, err := e.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueueing refund task: %w", err)
	}
	return nil
}

// Close releases the underlying asynq client.
func (e *RefundEnqueuer) Close() error {
	return e.client.Close()
}

// InitRefundWorker runs the async refund worker in the background.
func InitRefundWorker(paySvc payment.PaymentService) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeRefundProcess, HandleRefundTask(paySvc))

	go func() {
		log.Println("[RefundWorker] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[RefundWorker] failed to start worker: %v", err)
		}
	}()
}

// HandleRefundTask executes one queued refund. Transient failures are
// retried by asynq; refunds that are no longer valid (already processed,
// payment not refundable) are dropped rather than retried so a retry can
// never double-refund.
func HandleRefundTask(paySvc payment.PaymentService) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p RefundTaskPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return fmt.Errorf("unmarshalling refund task: %v: %w", err, asynq.SkipRetry)
		}

		_, err := paySvc.Refund(ctx, p.PaymentID, p.Amount, p.Reason)
		if err == nil {
			return nil
		}
		if errors.Is(err, payment.ErrInvalidRefundAmount) ||
			errors.Is(err, payment.ErrPaymentNotRefundable) ||
			errors.Is(err, payment.ErrPaymentNotFound) {
			return fmt.Errorf("refund no longer applicable for payment %s: %v: %w", p.PaymentID, err, asynq.SkipRetry)
		}
		return fmt.Errorf("processing refund for payment %s: %w", p.PaymentID, err)
	}
}
