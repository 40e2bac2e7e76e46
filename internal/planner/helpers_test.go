package planner

import (
	"github.com/Pauljlane12/fitivabackend/internal/domain"
)

// testSnapshot is a small approved catalog covering the muscle groups and
// equipment the tests exercise.
func testSnapshot() []domain.Exercise {
	return []domain.Exercise{
		{ID: "ex-1", Name: "Goblet Squat", MuscleGroup: "quads", Equipment: domain.EquipmentDumbbell, Difficulty: "beginner", DefaultSets: 3, DefaultReps: 10, Priority: 1},
		{ID: "ex-2", Name: "Romanian Deadlifts", MuscleGroup: "hamstrings", Equipment: domain.EquipmentBarbell, Difficulty: "intermediate", DefaultSets: 3, DefaultReps: 8, Priority: 1},
		{ID: "ex-3", Name: "Seated Rows", MuscleGroup: "back", Equipment: domain.EquipmentCable, Difficulty: "beginner", DefaultSets: 3, DefaultReps: 10, Priority: 1},
		{ID: "ex-4", Name: "Hip Thrusts", MuscleGroup: "glutes", Equipment: domain.EquipmentBarbell, Difficulty: "intermediate", DefaultSets: 3, DefaultReps: 10, Priority: 1},
		{ID: "ex-5", Name: "Lat Pulldowns", MuscleGroup: "back", Equipment: domain.EquipmentCable, Difficulty: "beginner", DefaultSets: 3, DefaultReps: 10, Priority: 1},
		{ID: "ex-6", Name: "Dumbbell Shoulder Press", MuscleGroup: "shoulders", Equipment: domain.EquipmentDumbbell, Difficulty: "intermediate", DefaultSets: 3, DefaultReps: 8, Priority: 2},
		{ID: "ex-7", Name: "Cable Crunches", MuscleGroup: "core", Equipment: domain.EquipmentCable, Difficulty: "beginner", DefaultSets: 3, DefaultReps: 12, Priority: 2},
		{ID: "ex-8", Name: "Bulgarian Split Squats", MuscleGroup: "quads", Equipment: domain.EquipmentDumbbell, Difficulty: "advanced", DefaultSets: 3, DefaultReps: 8, Priority: 2},
	}
}

func testProfile() *domain.UserProfile {
	return &domain.UserProfile{
		Gender:       "female",
		Age:          28,
		HeightFeet:   5,
		HeightInches: 6,
		WeightLbs:    150,
		Experience:   domain.ExperienceIntermediate,
		PrimaryGoal:  "build muscle",
		MuscleGroups: []string{"glutes", "legs"},
		Frequency:    3,
		GymAccess:    true,
	}
}

// workoutDay builds a fully valid six-exercise day from the snapshot names.
func workoutDay(title string, names ...string) *domain.PlanDay {
	day := &domain.PlanDay{
		Title:             title,
		Description:       "Strength training session",
		EstimatedDuration: 50,
		Intensity:         "moderate",
		Exercises:         []domain.PlannedExercise{},
	}
	for i, name := range names {
		day.Exercises = append(day.Exercises, domain.PlannedExercise{
			ID:   "test-" + name,
			Name: name,
			Sets: SetsPerExercise,
			Reps: DefaultReps + i%3,
			Equipment: domain.PlannedEquipment{
				Primary:      domain.EquipmentDumbbell,
				Alternatives: []domain.EquipmentAlternative{},
			},
			RecommendedWeight: domain.WeightGuide{Beginner: 20, Intermediate: 35, Advanced: 55, UserLevel: 35},
			MuscleGroups:      domain.MuscleGroupSplit{Primary: []string{"quads"}, Secondary: []string{}},
			RestTime:          60,
		})
	}
	return day
}

func restDayFor(weekday string) *domain.PlanDay {
	return &domain.PlanDay{
		Title:       weekday + " Rest Day",
		Description: "Rest day",
		Intensity:   "rest",
		RestDay:     true,
		RestReason:  "recovery",
		Exercises:   []domain.PlannedExercise{},
	}
}

// sixNames is a convenient full-day roster from the snapshot.
var sixNames = []string{
	"Goblet Squat",
	"Romanian Deadlifts",
	"Seated Rows",
	"Hip Thrusts",
	"Lat Pulldowns",
	"Dumbbell Shoulder Press",
}

// validThreeDayPlan builds a plan that passes every hard invariant for a
// frequency-3 profile.
func validThreeDayPlan() *domain.GeneratedPlan {
	plan := &domain.GeneratedPlan{Days: map[string]*domain.PlanDay{}}
	for _, weekday := range domain.Weekdays {
		plan.Days[weekday] = restDayFor(weekday)
	}
	plan.Days["Monday"] = workoutDay("Lower Body Strength", sixNames...)
	plan.Days["Wednesday"] = workoutDay("Pull Day", sixNames...)
	plan.Days["Friday"] = workoutDay("Full Body", sixNames...)
	return plan
}
