// Package queue defines the message payloads exchanged over RabbitMQ, the
// best-effort publisher, and the background consumer.
package queue

// PaymentCompletedEvent is published when the payment completion
// transaction commits. It carries enough for downstream consumers to log
// or notify without querying the primary database.
type PaymentCompletedEvent struct {
	PaymentID     string  `json:"payment_id"`
	Email         string  `json:"email"`
	ClassID       string  `json:"class_id"`
	ClassName     string  `json:"class_name"`
	Price         float64 `json:"price"`
	TransactionID string  `json:"transaction_id"`
	CompletedAt   string  `json:"completed_at"`
}

const paymentQueueName = "payment.completed"
