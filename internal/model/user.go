package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Role is the access level stored on a user document. New users are created
// without a role; promotion to instructor or admin is an admin action.
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

// User mirrors the 'users' collection. Email is unique across the
// collection (enforced by an index created at startup).
type User struct {
	ID    primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name  string             `json:"name" bson:"name"`
	Email string             `json:"email" bson:"email"`
	Photo string             `json:"photo,omitempty" bson:"photo,omitempty"`
	Role  Role               `json:"role,omitempty" bson:"role,omitempty"`
}
