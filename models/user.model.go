package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoleAdmin is the only elevated role; an empty role is a regular member
const RoleAdmin = "admin"

// User represents an account, keyed by email
type User struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email string             `bson:"email" json:"email"`
	Name  string             `bson:"name,omitempty" json:"name,omitempty"`
	Role  string             `bson:"role,omitempty" json:"role,omitempty"`
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
