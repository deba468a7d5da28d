package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment mirrors the 'payments' collection. A document is written only by
// the payment completion workflow and is immutable afterward.
// TransactionID is the gateway's payment reference and doubles as the
// idempotency key (unique index).
type Payment struct {
	ID            primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Email         string             `json:"email" bson:"email"`
	Price         float64            `json:"price" bson:"price"`
	ClassID       string             `json:"classId" bson:"class_id"`
	ClassName     string             `json:"class_name" bson:"class_name"`
	SelectionID   string             `json:"selectionId" bson:"selection_id"`
	TransactionID string             `json:"transactionId" bson:"transaction_id"`
	Date          time.Time          `json:"date" bson:"date"`
}
