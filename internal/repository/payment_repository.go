package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/magicdancearts/server/internal/model"
)

// PaymentRepo provides access to the 'payments' collection. Documents are
// written once by the completion workflow and never updated.
type PaymentRepo struct {
	c *mongo.Collection
}

func NewPaymentRepo(db *mongo.Database) *PaymentRepo {
	return &PaymentRepo{c: db.Collection("payments")}
}

// ListByEmail returns a user's payment history, newest first.
func (r *PaymentRepo) ListByEmail(ctx context.Context, email string) ([]model.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := r.c.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, err
	}
	payments := []model.Payment{}
	if err := cur.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// Insert records a payment. The unique transaction_id index turns a replay
// of the same gateway transaction into ErrDuplicatePayment, which is what
// makes the completion workflow idempotent under retry.
func (r *PaymentRepo) Insert(ctx context.Context, p model.Payment) (model.Payment, error) {
	p.ID = primitive.NewObjectID()
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}
	if _, err := r.c.InsertOne(ctx, p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.Payment{}, ErrDuplicatePayment
		}
		return model.Payment{}, err
	}
	return p, nil
}
