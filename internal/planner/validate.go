package planner

import (
	"fmt"
	"strings"

	"github.com/Pauljlane12/fitivabackend/internal/domain"
)

// ValidationError reports every hard invariant a sanitized plan violated.
// The reasons are fed back into the next generation attempt as a corrective
// hint, so they are written in model-readable prose.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return "plan validation failed: " + strings.Join(e.Reasons, "; ")
}

// Hint returns a compact correction string suitable for embedding in a retry
// prompt.
func (e *ValidationError) Hint() string {
	return strings.Join(e.Reasons, ". ")
}

// Validator is Phase B: hard pass/fail checks applied after sanitization.
// Nothing here repairs — a violation rejects the whole plan.
type Validator struct {
	byName       map[string]*domain.Exercise
	frequency    int
	weightedOnly bool
	isolationDay bool
}

// NewValidator checks plans against the same catalog snapshot the prompt
// offered the model.
func NewValidator(snapshot []domain.Exercise, frequency int, weightedOnly, isolationDay bool) *Validator {
	byName := make(map[string]*domain.Exercise, len(snapshot))
	for i := range snapshot {
		byName[domain.NormalizeName(snapshot[i].Name)] = &snapshot[i]
	}
	return &Validator{
		byName:       byName,
		frequency:    frequency,
		weightedOnly: weightedOnly,
		isolationDay: isolationDay,
	}
}

// Validate returns nil when the plan satisfies every invariant, otherwise a
// *ValidationError listing all violations found.
func (v *Validator) Validate(plan *domain.GeneratedPlan) error {
	var reasons []string

	trainingDays := plan.TrainingDayCount()
	if trainingDays != v.frequency {
		reasons = append(reasons, fmt.Sprintf("the plan has %d workout days but exactly %d were requested", trainingDays, v.frequency))
	}

	shortDays := 0
	for _, weekday := range domain.Weekdays {
		day := plan.Days[weekday]
		if day == nil {
			reasons = append(reasons, fmt.Sprintf("%s is missing from the plan", weekday))
			continue
		}
		if wordCount(day.Title) > MaxTitleWords {
			reasons = append(reasons, fmt.Sprintf("%s title %q exceeds %d words", weekday, day.Title, MaxTitleWords))
		}
		if day.RestDay {
			if len(day.Exercises) != 0 {
				reasons = append(reasons, fmt.Sprintf("%s is marked a rest day but lists exercises", weekday))
			}
			continue
		}

		switch n := len(day.Exercises); {
		case n == ExercisesPerDay:
			// full day
		case v.isolationDay && n >= MinIsolationDayLen && n < ExercisesPerDay:
			shortDays++
		default:
			reasons = append(reasons, fmt.Sprintf("%s has %d exercises but %d are required", weekday, n, ExercisesPerDay))
		}

		for i := range day.Exercises {
			reasons = append(reasons, v.checkExercise(weekday, &day.Exercises[i])...)
		}
	}

	// At most one short day: the isolation day itself.
	if shortDays > 1 {
		reasons = append(reasons, fmt.Sprintf("%d days have fewer than %d exercises; only the isolation day may", shortDays, ExercisesPerDay))
	}

	if len(reasons) > 0 {
		return &ValidationError{Reasons: reasons}
	}
	return nil
}

func (v *Validator) checkExercise(weekday string, ex *domain.PlannedExercise) []string {
	var reasons []string

	if _, ok := v.byName[domain.NormalizeName(ex.Name)]; !ok {
		reasons = append(reasons, fmt.Sprintf("%s includes %q which is not in the approved exercise list", weekday, ex.Name))
	}
	if wordCount(ex.Name) > MaxNameWords {
		reasons = append(reasons, fmt.Sprintf("%s exercise name %q exceeds %d words", weekday, ex.Name, MaxNameWords))
	}
	if ex.Sets != SetsPerExercise {
		reasons = append(reasons, fmt.Sprintf("%s %q has %d sets; every exercise must have %d", weekday, ex.Name, ex.Sets, SetsPerExercise))
	}
	if ex.Reps < MinReps || ex.Reps > MaxReps {
		reasons = append(reasons, fmt.Sprintf("%s %q has %d reps; reps must be between %d and %d", weekday, ex.Name, ex.Reps, MinReps, MaxReps))
	}
	if ex.RecommendedWeight.Intermediate <= 0 {
		reasons = append(reasons, fmt.Sprintf("%s %q has a non-positive intermediate weight", weekday, ex.Name))
	}
	if v.weightedOnly && strings.EqualFold(strings.TrimSpace(ex.Equipment.Primary), domain.EquipmentBodyweight) {
		reasons = append(reasons, fmt.Sprintf("%s %q uses bodyweight as primary equipment; this plan must use weighted movements only", weekday, ex.Name))
	}
	return reasons
}
