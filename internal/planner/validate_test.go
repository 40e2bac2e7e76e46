package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator(frequency int, weightedOnly, isolationDay bool) *Validator {
	return NewValidator(testSnapshot(), frequency, weightedOnly, isolationDay)
}

func TestValidate_AcceptsValidPlan(t *testing.T) {
	plan := validThreeDayPlan()
	assert.NoError(t, newTestValidator(3, true, false).Validate(plan))
}

func TestValidate_RejectsWrongDayCount(t *testing.T) {
	plan := validThreeDayPlan()

	err := newTestValidator(4, true, false).Validate(plan)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Hint(), "3 workout days but exactly 4")
}

func TestValidate_RejectsUnapprovedExercise(t *testing.T) {
	plan := validThreeDayPlan()
	plan.Days["Monday"].Exercises[0].Name = "Invented Movement"

	err := newTestValidator(3, true, false).Validate(plan)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not in the approved exercise list")
}

func TestValidate_RejectsWrongSets(t *testing.T) {
	plan := validThreeDayPlan()
	plan.Days["Friday"].Exercises[2].Sets = 4

	err := newTestValidator(3, true, false).Validate(plan)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "4 sets")
}

func TestValidate_RejectsRepsOutOfBounds(t *testing.T) {
	plan := validThreeDayPlan()
	plan.Days["Monday"].Exercises[0].Reps = 20

	err := newTestValidator(3, true, false).Validate(plan)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reps must be between")
}

func TestValidate_RejectsZeroIntermediateWeight(t *testing.T) {
	plan := validThreeDayPlan()
	plan.Days["Wednesday"].Exercises[1].RecommendedWeight.Intermediate = 0

	err := newTestValidator(3, true, false).Validate(plan)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-positive intermediate weight")
}

func TestValidate_RejectsBodyweightWhenWeightedOnly(t *testing.T) {
	plan := validThreeDayPlan()
	plan.Days["Monday"].Exercises[0].Equipment.Primary = "Bodyweight"

	// Weighted-only plans must not lead with bodyweight.
	err := newTestValidator(3, true, false).Validate(plan)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weighted movements only")

	// The same plan passes when bodyweight is allowed.
	assert.NoError(t, newTestValidator(3, false, false).Validate(plan))
}

func TestValidate_RejectsLongTitles(t *testing.T) {
	plan := validThreeDayPlan()
	plan.Days["Monday"].Title = "An Extremely Long Workout Title Here"

	err := newTestValidator(3, true, false).Validate(plan)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds 4 words")
}

func TestValidate_RejectsUnderFilledDay(t *testing.T) {
	plan := validThreeDayPlan()
	plan.Days["Monday"] = workoutDay("Short Day", sixNames[:4]...)

	err := newTestValidator(3, true, false).Validate(plan)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has 4 exercises but 6 are required")
}

func TestValidate_IsolationDayAllowsOneShortDay(t *testing.T) {
	plan := validThreeDayPlan()
	plan.Days["Friday"] = workoutDay("Glute Isolation", sixNames[:4]...)

	// With the isolation variant a single 4-exercise day is fine.
	assert.NoError(t, newTestValidator(3, true, true).Validate(plan))

	// But not two of them.
	plan.Days["Monday"] = workoutDay("Another Short", sixNames[:5]...)
	err := newTestValidator(3, true, true).Validate(plan)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only the isolation day may")

	// And never below the isolation minimum.
	plan = validThreeDayPlan()
	plan.Days["Friday"] = workoutDay("Tiny Day", sixNames[:2]...)
	assert.Error(t, newTestValidator(3, true, true).Validate(plan))
}

func TestValidate_RejectsRestDayWithExercises(t *testing.T) {
	plan := validThreeDayPlan()
	plan.Days["Sunday"].Exercises = workoutDay("x", "Goblet Squat").Exercises

	err := newTestValidator(3, true, false).Validate(plan)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "marked a rest day but lists exercises")
}

func TestValidate_CollectsAllReasons(t *testing.T) {
	plan := validThreeDayPlan()
	plan.Days["Monday"].Exercises[0].Sets = 5
	plan.Days["Wednesday"].Exercises[0].RecommendedWeight.Intermediate = 0

	err := newTestValidator(3, true, false).Validate(plan)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.GreaterOrEqual(t, len(verr.Reasons), 2)
}
