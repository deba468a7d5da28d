// Package service holds the payment workflows: creating Stripe payment
// intents and completing a payment as one atomic multi-document
// transaction.
package service

import (
	"context"
	"math"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/magicdancearts/server/internal/model"
	"github.com/magicdancearts/server/internal/queue"
	"github.com/magicdancearts/server/internal/repository"
)

// Currency is the fixed settlement currency for payment intents.
const Currency = "usd"

// MinorUnits converts a decimal price into integer cents for the gateway.
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// CompletedPayment is the combined result of the completion transaction:
// the id of the payment written, how many selections were consumed, and the
// class document after its seat counters moved.
type CompletedPayment struct {
	InsertedID   primitive.ObjectID `json:"insertedId"`
	DeletedCount int64              `json:"deletedCount"`
	UpdatedClass model.Class        `json:"updatedClass"`
}

type paymentInserter interface {
	Insert(ctx context.Context, p model.Payment) (model.Payment, error)
}

type selectionDeleter interface {
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

type classEnroller interface {
	Enroll(ctx context.Context, id primitive.ObjectID) (model.Class, error)
}

// TxnRunner executes fn with transactional semantics: either every write fn
// performs is visible afterwards, or none are.
type TxnRunner func(ctx context.Context, fn func(ctx context.Context) error) error

// MongoTxnRunner returns a TxnRunner backed by a MongoDB session
// transaction.
func MongoTxnRunner(client *mongo.Client) TxnRunner {
	return func(ctx context.Context, fn func(ctx context.Context) error) error {
		session, err := client.StartSession()
		if err != nil {
			return err
		}
		defer session.EndSession(ctx)
		_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
			return nil, fn(sc)
		})
		return err
	}
}

// PaymentService coordinates the payment endpoints. The store dependencies
// are interfaces so the workflow is testable without a live database.
type PaymentService struct {
	Payments   paymentInserter
	Selections selectionDeleter
	Classes    classEnroller
	RunTxn     TxnRunner
	AMQPURL    string // empty disables event publishing
	Logger     *zap.Logger
}

// CreateIntent asks Stripe for a payment intent over the given price and
// returns the client-side confirmation secret. Duplicate calls create
// duplicate intents; the client is expected to reuse one intent per
// checkout session.
func (s *PaymentService) CreateIntent(price float64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(MinorUnits(price)),
		Currency:           stripe.String(Currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	pi, err := paymentintent.New(params)
	if err != nil {
		return "", err
	}
	return pi.ClientSecret, nil
}

// CompletePayment records a confirmed payment. Inside one transaction it
// inserts the payment document, deletes the consumed selection and moves
// the class seat counters, so a failure at any step leaves no partial
// state. Replaying the same gateway transaction fails the insert with
// repository.ErrDuplicatePayment and therefore changes nothing.
func (s *PaymentService) CompletePayment(ctx context.Context, p model.Payment) (CompletedPayment, error) {
	selectionID, err := primitive.ObjectIDFromHex(p.SelectionID)
	if err != nil {
		return CompletedPayment{}, repository.ErrNotFound
	}
	classID, err := primitive.ObjectIDFromHex(p.ClassID)
	if err != nil {
		return CompletedPayment{}, repository.ErrNotFound
	}
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}

	var result CompletedPayment
	err = s.RunTxn(ctx, func(txCtx context.Context) error {
		saved, err := s.Payments.Insert(txCtx, p)
		if err != nil {
			return err
		}
		deleted, err := s.Selections.Delete(txCtx, selectionID)
		if err != nil {
			return err
		}
		cls, err := s.Classes.Enroll(txCtx, classID)
		if err != nil {
			return err
		}
		result = CompletedPayment{InsertedID: saved.ID, DeletedCount: deleted, UpdatedClass: cls}
		return nil
	})
	if err != nil {
		return CompletedPayment{}, err
	}

	if s.AMQPURL != "" {
		ev := queue.PaymentCompletedEvent{
			PaymentID:     result.InsertedID.Hex(),
			Email:         p.Email,
			ClassID:       p.ClassID,
			ClassName:     p.ClassName,
			Price:         p.Price,
			TransactionID: p.TransactionID,
			CompletedAt:   p.Date.Format(time.RFC3339),
		}
		_ = queue.PublishPaymentCompleted(ctx, s.AMQPURL, s.Logger, ev)
	}
	return result, nil
}
