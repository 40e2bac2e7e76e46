// Package planner turns a user profile into a generation prompt and turns
// raw model output back into a validated weekly plan. The pipeline is
// prompt → parse → sanitize (best-effort repair) → validate (hard checks).
package planner

import "strings"

// Policy constants. These are the fixed programming rules every plan must
// satisfy; the prompt states them and the validator enforces them.
const (
	SetsPerExercise = 3
	DefaultReps     = 8
	MinReps         = 6
	MaxReps         = 12

	ExercisesPerDay    = 6
	MinIsolationDayLen = 4 // dedicated isolation days may run shorter

	MaxTitleWords = 4
	MaxNameWords  = 4

	MinDurationMinutes = 15
	MaxDurationMinutes = 120

	// MinIntermediateWeight is the floor applied to the intermediate weight
	// tier after coercion; zero is domain-invalid for that tier.
	MinIntermediateWeight = 1

	// CaloriesPerSet backs the rough calorie estimate on workout days.
	CaloriesPerSet = 8
)

// Prompt size caps per priority bucket, matching what the generation model
// can usefully attend to.
const (
	maxPriority1Exercises = 15
	maxPriority2Exercises = 7
	maxPriority3Exercises = 3
	maxPromptExercises    = 25
	maxIsolationExercises = 15
)

// wordCount counts whitespace-separated words.
func wordCount(s string) int {
	return len(strings.Fields(s))
}

// truncateWords keeps at most n words of s.
func truncateWords(s string, n int) string {
	fields := strings.Fields(s)
	if len(fields) <= n {
		return strings.Join(fields, " ")
	}
	return strings.Join(fields[:n], " ")
}

// clampInt bounds v into [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
