// internal/domain/plan.go
package domain

// Weekdays in schedule order. A generated plan names all seven.
var Weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// WeekdayAbbreviations maps the short day names accepted from onboarding
// ("Mon") to the full names a plan is keyed by.
var WeekdayAbbreviations = map[string]string{
	"Mon": "Monday",
	"Tue": "Tuesday",
	"Wed": "Wednesday",
	"Thu": "Thursday",
	"Fri": "Friday",
	"Sat": "Saturday",
	"Sun": "Sunday",
}

// IsWeekday reports whether name is one of the seven full weekday names.
func IsWeekday(name string) bool {
	for _, d := range Weekdays {
		if d == name {
			return true
		}
	}
	return false
}

// EquipmentAlternative is a single substitute for an exercise's primary
// equipment, e.g. {"name": "Smith Machine"}.
type EquipmentAlternative struct {
	Name string `json:"name"`
}

// PlannedEquipment describes what an exercise is performed with.
type PlannedEquipment struct {
	Primary      string                 `json:"primary"`
	Alternatives []EquipmentAlternative `json:"alternatives"`
}

// WeightGuide holds recommended working weights per experience tier, in lbs.
// All tiers are numeric; Intermediate is strictly positive in a valid plan.
type WeightGuide struct {
	Beginner     float64 `json:"beginner"`
	Intermediate float64 `json:"intermediate"`
	Advanced     float64 `json:"advanced"`
	UserLevel    float64 `json:"userLevel"`
}

// MuscleGroupSplit separates primary movers from secondary muscles.
type MuscleGroupSplit struct {
	Primary   []string `json:"primary"`
	Secondary []string `json:"secondary"`
}

// Progressions point at an easier and a harder variation of the exercise.
type Progressions struct {
	Easier string `json:"easier"`
	Harder string `json:"harder"`
}

// Tempo is an optional cadence prescription in seconds per phase.
type Tempo struct {
	Eccentric   float64 `json:"eccentric,omitempty"`
	PauseBottom float64 `json:"pauseBottom,omitempty"`
	Concentric  float64 `json:"concentric,omitempty"`
}

// PlannedExercise is one exercise slot inside a workout day.
type PlannedExercise struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Sets int    `json:"sets"`
	Reps int    `json:"reps"`

	Equipment         PlannedEquipment `json:"equipment"`
	RecommendedWeight WeightGuide      `json:"recommendedWeight"`
	MuscleGroups      MuscleGroupSplit `json:"muscleGroups"`

	RestTime     int          `json:"restTime"` // seconds between sets
	Description  string       `json:"description"`
	Instructions []string     `json:"instructions"`
	Tips         []string     `json:"tips"`
	Difficulty   string       `json:"difficulty"`
	Progressions Progressions `json:"progressions"`
	Tempo        *Tempo       `json:"tempo,omitempty"`
}

// PlanDay is one weekday entry in a generated plan: either a rest day
// (RestDay true, no exercises) or a workout day.
type PlanDay struct {
	Title             string `json:"title"`
	Description       string `json:"description"`
	EstimatedDuration int    `json:"estimatedDuration"` // minutes
	Intensity         string `json:"intensity"`

	RestDay    bool   `json:"isRestDay"`
	RestReason string `json:"restReason,omitempty"`

	Exercises []PlannedExercise `json:"exercises"`

	// Derived metadata, filled after validation.
	ExerciseCount     int `json:"exerciseCount"`
	TotalSets         int `json:"totalSets"`
	EstimatedCalories int `json:"estimatedCalories"`
}

// GeneratedPlan is a full week's schedule, one entry per weekday.
type GeneratedPlan struct {
	Days map[string]*PlanDay `json:"plan"`
}

// TrainingDayCount returns the number of non-rest days in the plan.
func (p *GeneratedPlan) TrainingDayCount() int {
	n := 0
	for _, day := range p.Days {
		if day != nil && !day.RestDay {
			n++
		}
	}
	return n
}

// Day returns the entry for a weekday, or nil when absent.
func (p *GeneratedPlan) Day(weekday string) *PlanDay {
	if p.Days == nil {
		return nil
	}
	return p.Days[weekday]
}
