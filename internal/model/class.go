package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// ClassStatus tracks the review state of a class. New classes start as
// pending and an admin moves them to approved or denied.
type ClassStatus string

const (
	StatusPending  ClassStatus = "pending"
	StatusApproved ClassStatus = "approved"
	StatusDenied   ClassStatus = "denied"
)

// Class mirrors the 'classes' collection. Email identifies the owning
// instructor. AvailableSeats and EnrolledStudents move in lockstep: a
// completed payment decrements one and increments the other inside a single
// transaction.
type Class struct {
	ID               primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name             string             `json:"class_name" bson:"class_name"`
	Image            string             `json:"image" bson:"image"`
	Email            string             `json:"email" bson:"email"`
	Price            float64            `json:"price" bson:"price"`
	AvailableSeats   int                `json:"available_seats" bson:"available_seats"`
	EnrolledStudents int                `json:"enrolled_students" bson:"enrolled_students"`
	Details          string             `json:"details" bson:"details"`
	Status           ClassStatus        `json:"status" bson:"status"`
	Feedback         string             `json:"feedback,omitempty" bson:"feedback,omitempty"`
}

// ClassUpdate carries the fixed field set an instructor may change on an
// existing class. All fields are applied as a whole.
type ClassUpdate struct {
	Name           string      `json:"class_name" bson:"class_name"`
	Image          string      `json:"image" bson:"image"`
	AvailableSeats int         `json:"available_seats" bson:"available_seats"`
	Price          float64     `json:"price" bson:"price"`
	Details        string      `json:"details" bson:"details"`
	Status         ClassStatus `json:"status" bson:"status"`
}
