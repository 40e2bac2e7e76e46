// internal/domain/plan_record.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanRecord is an archived generation result: the plan that was returned
// to the user together with the profile snapshot it was generated from.
type PlanRecord struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID  primitive.ObjectID `bson:"userId" json:"userId"`
	Profile *UserProfile       `bson:"profile" json:"profile"` // Answers at generation time
	Plan    GeneratedPlan      `bson:"plan" json:"plan"`

	Model     string    `bson:"model" json:"model"`       // Model that produced the accepted attempt
	Attempts  int       `bson:"attempts" json:"attempts"` // How many attempts the controller used
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
