package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Selection mirrors the 'selected_classes' collection: a student's intent
// to enroll in a class, held until payment completes or the student removes
// it. Denormalized class fields are copied in so the cart renders without a
// join.
type Selection struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	ClassID   string             `json:"classId" bson:"class_id"`
	Email     string             `json:"email" bson:"email"`
	ClassName string             `json:"class_name" bson:"class_name"`
	Image     string             `json:"image,omitempty" bson:"image,omitempty"`
	Price     float64            `json:"price" bson:"price"`
}
