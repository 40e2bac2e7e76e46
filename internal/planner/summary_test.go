package planner

import (
	"testing"

	"github.com/Pauljlane12/fitivabackend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestBuildSummary_CoversProfile(t *testing.T) {
	profile := testProfile()
	profile.HealthRisks = []string{"knee pain"}

	summary := BuildSummary(profile, AllowedEquipment(profile))

	assert.Contains(t, summary, "28-year-old female")
	assert.Contains(t, summary, "150 lbs")
	assert.Contains(t, summary, `5'6"`)
	assert.Contains(t, summary, "intermediate fitness level")
	assert.Contains(t, summary, "build muscle")
	assert.Contains(t, summary, "glutes, legs")
	assert.Contains(t, summary, "3 × per week")
	assert.Contains(t, summary, "Full gym access")
	assert.Contains(t, summary, "knee pain")
	assert.Contains(t, summary, "2 core exercises")
}

func TestBuildSummary_HomeEquipment(t *testing.T) {
	profile := testProfile()
	profile.GymAccess = false
	profile.HomeEquipment = []string{"dumbbells"}
	profile.MuscleGroups = nil
	profile.CorePreference = domain.CoreHeavyDays

	summary := BuildSummary(profile, AllowedEquipment(profile))

	assert.Contains(t, summary, "Focus areas: full body")
	assert.Contains(t, summary, "dumbbell")
	assert.Contains(t, summary, "core-heavy days")
	assert.NotContains(t, summary, "Full gym access")
}

func TestBuildSummary_Deterministic(t *testing.T) {
	profile := testProfile()
	assert.Equal(t,
		BuildSummary(profile, AllowedEquipment(profile)),
		BuildSummary(profile, AllowedEquipment(profile)))
}

func TestSummaryRequestPrompt_EmbedsOnboarding(t *testing.T) {
	prompt := SummaryRequestPrompt(`{"age": 28}`)
	assert.Contains(t, prompt, `{"age": 28}`)
	assert.Contains(t, prompt, "summary paragraph")
}
