package planner

import (
	"fmt"
	"strings"

	"github.com/Pauljlane12/fitivabackend/internal/domain"
)

// BuildSummary renders the profile as the natural-language paragraph embedded
// in generation prompts. Deterministic: the same profile always produces the
// same text.
func BuildSummary(profile *domain.UserProfile, equipment []string) string {
	var b strings.Builder

	fmt.Fprintf(&b,
		"Create a workout plan for a %d-year-old %s who weighs %.0f lbs and is %d'%d\" tall. They are at an %s fitness level.\n",
		profile.Age, profile.Gender, profile.WeightLbs, profile.HeightFeet, profile.HeightInches, profile.Experience)

	focus := "full body"
	if len(profile.MuscleGroups) > 0 {
		focus = strings.Join(profile.MuscleGroups, ", ")
	}
	fmt.Fprintf(&b, "Primary goal: %s. Focus areas: %s.\n", profile.PrimaryGoal, focus)
	fmt.Fprintf(&b, "Frequency: %d × per week.\n", profile.Frequency)

	if profile.GymAccess {
		b.WriteString("Equipment: Full gym access.\n")
	} else if len(equipment) > 0 {
		fmt.Fprintf(&b, "Equipment: %s.\n", strings.Join(equipment, ", "))
	} else {
		b.WriteString("Equipment: Bodyweight only.\n")
	}

	if len(profile.HealthRisks) > 0 {
		fmt.Fprintf(&b, "Health considerations: %s.\n", strings.Join(profile.HealthRisks, ", "))
	}
	if profile.WantsIsolationDay && profile.PriorityMuscle != "" {
		fmt.Fprintf(&b, "Wants dedicated %s isolation day.\n", profile.PriorityMuscle)
	}
	if profile.CoreMode() == domain.CoreSprinkle {
		b.WriteString("Core preference: Add 2 core exercises to each workout.")
	} else {
		b.WriteString("Core preference: Prefers dedicated core-heavy days.")
	}

	return strings.TrimSpace(b.String())
}

// SummaryRequestPrompt asks the model to write the onboarding paragraph from
// raw onboarding JSON. Used by the standalone summary operation.
func SummaryRequestPrompt(onboardingJSON string) string {
	return strings.TrimSpace(fmt.Sprintf(`
You are a fitness coach helping an AI generate personalized workout plans.

Take the following user onboarding data and write a concise summary paragraph in plain English that includes ALL key information. The paragraph should read like an instruction to a personal trainer building a plan — include age, gender, weight, fitness level, available days, training goals, equipment access, and injuries or limitations.

User Onboarding Data:
%s

Your output should be one paragraph.`, onboardingJSON))
}
