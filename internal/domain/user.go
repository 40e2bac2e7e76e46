package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account that owns a fitness profile and requests plans.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Profile holds the user's onboarding answers. Nil until onboarding
	// completes; plan generation for the account requires it.
	Profile *UserProfile `bson:"profile,omitempty" json:"profile,omitempty"`
}

// HasProfile reports whether onboarding has been completed.
func (u *User) HasProfile() bool {
	return u.Profile != nil
}
