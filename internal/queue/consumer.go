package queue

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// StartPaymentConsumer connects to RabbitMQ and appends one line per
// payment.completed event to logs/payments.log. It runs a reconnect loop
// with capped backoff and never returns under normal operation; run it in
// its own goroutine.
func StartPaymentConsumer(url string, logger *zap.Logger) {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			logger.Warn("payment consumer dial failed", zap.Error(err), zap.Duration("retry_in", backoff))
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := consume(conn, logger); err != nil {
			logger.Warn("payment consumer loop ended", zap.Error(err))
		}
		_ = conn.Close()
		time.Sleep(2 * time.Second)
	}
}

func consume(conn *amqp.Connection, logger *zap.Logger) error {
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(paymentQueueName, true, false, false, false, nil); err != nil {
		return err
	}
	deliveries, err := ch.Consume(paymentQueueName, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	for d := range deliveries {
		var ev PaymentCompletedEvent
		if err := json.Unmarshal(d.Body, &ev); err != nil {
			logger.Warn("payment event unmarshal failed", zap.Error(err))
			_ = d.Nack(false, false)
			continue
		}
		if err := appendPaymentLog(ev); err != nil {
			logger.Warn("payment log append failed", zap.Error(err))
			_ = d.Nack(false, true)
			continue
		}
		_ = d.Ack(false)
	}
	return fmt.Errorf("delivery channel closed")
}

func appendPaymentLog(ev PaymentCompletedEvent) error {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join("logs", "payments.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	line := fmt.Sprintf("%s payment=%s email=%s class=%q amount=%.2f txn=%s\n",
		ev.CompletedAt, ev.PaymentID, ev.Email, ev.ClassName, ev.Price, ev.TransactionID)
	_, err = f.WriteString(line)
	return err
}
