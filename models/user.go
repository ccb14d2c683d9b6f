package models

// User is an external identity referenced by bookings and payments.
// Authentication lives upstream; the engine only reads contact and role.
type User struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Phone string `bson:"phone" json:"phone"`
	Role  string `bson:"role" json:"role"` // "user" or "admin"
}
