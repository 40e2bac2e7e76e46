// internal/domain/exercise.go
package domain

import (
	"strings"
	"time"
)

// Equipment kinds known to the catalog. Exercise.Equipment and the
// allowed-equipment set derived from a profile both use these values.
const (
	EquipmentBarbell        = "barbell"
	EquipmentDumbbell       = "dumbbell"
	EquipmentMachine        = "machine"
	EquipmentCable          = "cable"
	EquipmentBodyweight     = "bodyweight"
	EquipmentResistanceBand = "resistance_band"
)

// Exercise represents a single approved exercise in the catalog.
// Name is the join key used everywhere downstream: plan validation matches
// model output against the catalog by normalized name.
type Exercise struct {
	ID          string   `bson:"_id,omitempty" json:"id"`
	Name        string   `bson:"name" json:"name"`
	MuscleGroup string   `bson:"muscleGroup" json:"muscleGroup"` // e.g. "glutes", "back", "biceps"
	Equipment   string   `bson:"equipment" json:"equipment"`
	Difficulty  string   `bson:"difficulty,omitempty" json:"difficulty,omitempty"` // "beginner", "intermediate", "advanced"
	Tags        []string `bson:"tags,omitempty" json:"tags,omitempty"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	DefaultSets int      `bson:"defaultSets" json:"defaultSets"`
	DefaultReps int      `bson:"defaultReps" json:"defaultReps"`
	// Priority ranks how strongly the generator should prefer the exercise:
	// 1 = highest, 3 = lowest.
	Priority int `bson:"priority,omitempty" json:"priority,omitempty"`

	CreatedAt time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// NormalizeName lowercases, trims and collapses internal whitespace so that
// model output like " Hip  Thrusts " still matches the catalog entry.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// HasTag reports whether the exercise carries the given tag (normalized).
func (e *Exercise) HasTag(tag string) bool {
	tag = NormalizeName(tag)
	for _, t := range e.Tags {
		if NormalizeName(t) == tag {
			return true
		}
	}
	return false
}
