package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// RoleAdmin is the only elevated role the API knows about.
const RoleAdmin = "admin"

// User is identified by email. Role is empty for regular users and "admin"
// for administrators.
type User struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
	Role  string             `bson:"role,omitempty" json:"role,omitempty"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
