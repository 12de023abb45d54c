package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is produced by the auth subsystem and treated as an immutable
// reference everywhere else. PasswordHash is a bcrypt digest, never the
// plain credential.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Username     string             `bson:"username" json:"username"`
	Email        string             `bson:"email" json:"email"`
	Phone        string             `bson:"phone" json:"phone"`
	PasswordHash []byte             `bson:"password_hash" json:"-"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}
