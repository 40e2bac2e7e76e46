// internal/domain/profile.go
package domain

import "errors"

// Experience levels a user can declare during onboarding.
const (
	ExperienceBeginner     = "beginner"
	ExperienceIntermediate = "intermediate"
	ExperienceAdvanced     = "advanced"
)

// Core exercise handling preferences.
const (
	CoreSprinkle  = "sprinkle"   // add a couple of core exercises to each workout
	CoreHeavyDays = "heavy_days" // dedicated core-heavy days instead
)

// Rest day preference modes.
const (
	RestPreferenceSmart       = "smart"                // let the planner pick optimal rest placement
	RestPreferenceUnavailable = "specific_unavailable" // listed days can never hold a workout
	RestPreferencePreferred   = "preferred"            // listed days are rested first
)

// Frequency bounds for weekly training days.
const (
	MinFrequency = 1
	MaxFrequency = 7
)

var (
	ErrProfileMissingFields = errors.New("profile is missing required fields")
	ErrProfileBadFrequency  = errors.New("exercise frequency must be between 1 and 7")
	ErrProfileBadExperience = errors.New("unknown fitness experience level")
)

// RestPreferences captures how the user wants rest days placed across the week.
type RestPreferences struct {
	Preference   string   `bson:"preference,omitempty" json:"rest_day_preference,omitempty"`
	SpecificDays []string `bson:"specificDays,omitempty" json:"specific_rest_days,omitempty"` // abbreviated ("Mon") or full day names
}

// UserProfile is the structured onboarding record a plan is generated from.
// It is constructed once per request from caller input and read-only afterward.
type UserProfile struct {
	Gender       string  `bson:"gender" json:"gender"`
	Age          int     `bson:"age" json:"age"`
	HeightFeet   int     `bson:"heightFeet" json:"height_feet"`
	HeightInches int     `bson:"heightInches" json:"height_inches"`
	WeightLbs    float64 `bson:"weightLbs" json:"weight"`

	Experience   string   `bson:"experience" json:"fitness_experience"`
	PrimaryGoal  string   `bson:"primaryGoal" json:"primary_goal"`
	MuscleGroups []string `bson:"muscleGroups,omitempty" json:"fitness_areas,omitempty"`
	Frequency    int      `bson:"frequency" json:"exercise_frequency"`

	GymAccess     bool     `bson:"gymAccess" json:"has_gym_access"`
	HomeEquipment []string `bson:"homeEquipment,omitempty" json:"home_equipment,omitempty"`
	HealthRisks   []string `bson:"healthRisks,omitempty" json:"health_risks,omitempty"`

	PriorityMuscle    string `bson:"priorityMuscle,omitempty" json:"priority_muscle,omitempty"`
	WantsIsolationDay bool   `bson:"wantsIsolationDay,omitempty" json:"wants_isolation_day,omitempty"`
	CorePreference    string `bson:"corePreference,omitempty" json:"core_preference,omitempty"`

	RestPreferences RestPreferences `bson:"restPreferences,omitempty" json:"rest_preferences,omitempty"`
}

// Validate checks the profile for the fields generation cannot do without.
func (p *UserProfile) Validate() error {
	if p.Age <= 0 || p.WeightLbs <= 0 || p.Experience == "" || p.PrimaryGoal == "" {
		return ErrProfileMissingFields
	}
	if p.Frequency < MinFrequency || p.Frequency > MaxFrequency {
		return ErrProfileBadFrequency
	}
	switch p.Experience {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced:
	default:
		return ErrProfileBadExperience
	}
	return nil
}

// ExperienceMultiplier is the fraction of body weight used as a starting
// weight hint in the generation prompt.
func (p *UserProfile) ExperienceMultiplier() float64 {
	switch p.Experience {
	case ExperienceIntermediate:
		return 0.5
	case ExperienceAdvanced:
		return 0.7
	default:
		return 0.3
	}
}

// CoreMode returns the effective core preference, defaulting to sprinkle.
func (p *UserProfile) CoreMode() string {
	if p.CorePreference == CoreHeavyDays {
		return CoreHeavyDays
	}
	return CoreSprinkle
}
