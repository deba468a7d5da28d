package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// PublishPaymentCompleted publishes a PaymentCompletedEvent to the
// payment.completed queue. Failures are logged and returned so the caller
// can ignore them; a broker outage must never fail a committed payment.
// Messages are persistent and the queue durable.
func PublishPaymentCompleted(ctx context.Context, url string, logger *zap.Logger, ev PaymentCompletedEvent) error {
	conn, err := amqp.Dial(url)
	if err != nil {
		logger.Warn("rabbitmq dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.Warn("rabbitmq channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(paymentQueueName, true, false, false, false, nil); err != nil {
		logger.Warn("rabbitmq queue declare failed", zap.Error(err))
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", paymentQueueName, false, false, pub); err != nil {
		logger.Warn("rabbitmq publish failed", zap.Error(err))
		return err
	}
	return nil
}
