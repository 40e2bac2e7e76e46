package planner

import (
	"strings"

	"github.com/Pauljlane12/fitivabackend/internal/domain"
)

// descriptiveBundle holds the free-text fields the sanitizer backfills when
// the model leaves them out.
type descriptiveBundle struct {
	Description  string
	Instructions []string
	Tips         []string
	Difficulty   string
	Progressions domain.Progressions
}

// exerciseDefaults covers the catalog staples by normalized name.
var exerciseDefaults = map[string]descriptiveBundle{
	"hip thrusts": {
		Description:  "Barbell hip extension that isolates the glutes through a full range of motion.",
		Instructions: []string{"Rest upper back on a bench with the bar over your hips.", "Drive through the heels until hips are fully extended.", "Pause at the top, lower under control."},
		Tips:         []string{"Tuck the chin and keep ribs down.", "Squeeze the glutes hard at lockout."},
		Difficulty:   "intermediate",
		Progressions: domain.Progressions{Easier: "Glute Bridge (Machine or Floor)", Harder: "Single-leg hip thrust"},
	},
	"goblet squat": {
		Description:  "Front-loaded squat holding a dumbbell at the chest, great for clean squat mechanics.",
		Instructions: []string{"Hold a dumbbell vertically against your chest.", "Squat until thighs are at least parallel.", "Stand back up driving through mid-foot."},
		Tips:         []string{"Keep elbows inside the knees.", "Stay tall through the torso."},
		Difficulty:   "beginner",
		Progressions: domain.Progressions{Easier: "Box squat to a bench", Harder: "Dumbbell Front Squat"},
	},
	"romanian deadlifts": {
		Description:  "Hip hinge with a soft knee bend that loads the hamstrings and glutes.",
		Instructions: []string{"Push the hips back with the bar close to your thighs.", "Lower until a hamstring stretch, keeping a flat back.", "Drive the hips forward to stand."},
		Tips:         []string{"The movement is a hinge, not a squat.", "Keep the bar dragging along the legs."},
		Difficulty:   "intermediate",
		Progressions: domain.Progressions{Easier: "Dumbbell RDL", Harder: "Single-leg RDL"},
	},
	"lat pulldowns": {
		Description:  "Cable pull that builds back width through the lats.",
		Instructions: []string{"Grip the bar slightly wider than shoulders.", "Pull the bar to the upper chest, elbows driving down.", "Control the return to full stretch."},
		Tips:         []string{"Avoid leaning back excessively.", "Think elbows to pockets."},
		Difficulty:   "beginner",
		Progressions: domain.Progressions{Easier: "Assisted pull-up machine", Harder: "Pull-Ups / Assisted Pull-Ups"},
	},
	"seated rows": {
		Description:  "Horizontal cable row for mid-back thickness.",
		Instructions: []string{"Sit tall with a neutral spine.", "Pull the handle to your stomach, squeezing the shoulder blades.", "Extend the arms fully under control."},
		Tips:         []string{"Don't shrug during the pull.", "Pause briefly at full contraction."},
		Difficulty:   "beginner",
		Progressions: domain.Progressions{Easier: "Chest-supported machine row", Harder: "Single Arm Dumbbell Row"},
	},
	"bulgarian split squats": {
		Description:  "Rear-foot-elevated single-leg squat hammering quads and glutes.",
		Instructions: []string{"Place rear foot on a bench behind you.", "Lower until the front thigh is parallel.", "Drive up through the front heel."},
		Tips:         []string{"A longer stance biases glutes, shorter biases quads.", "Hold dumbbells for load."},
		Difficulty:   "intermediate",
		Progressions: domain.Progressions{Easier: "Reverse Lunges", Harder: "Add a pause at the bottom"},
	},
}

// musclePatternDefaults maps name fragments to a muscle-appropriate bundle
// when no per-exercise entry exists.
var musclePatternDefaults = []struct {
	pattern string
	bundle  descriptiveBundle
}{
	{"curl", descriptiveBundle{
		Description:  "Biceps isolation movement performed with strict elbow flexion.",
		Instructions: []string{"Keep elbows pinned to your sides.", "Curl the weight up without swinging.", "Lower slowly to full extension."},
		Tips:         []string{"Control the negative.", "Avoid leaning back to cheat reps."},
		Difficulty:   "beginner",
		Progressions: domain.Progressions{Easier: "Use lighter dumbbells", Harder: "Slow the eccentric to 3 seconds"},
	}},
	{"pushdown", descriptiveBundle{
		Description:  "Cable triceps extension keeping constant tension through lockout.",
		Instructions: []string{"Pin the elbows at your sides.", "Press the handle down to full extension.", "Let the cable return under control."},
		Tips:         []string{"Don't let the shoulders roll forward.", "Squeeze hard at lockout."},
		Difficulty:   "beginner",
		Progressions: domain.Progressions{Easier: "Use a band", Harder: "Single Arm Cable Pushdowns"},
	}},
	{"squat", descriptiveBundle{
		Description:  "Knee-dominant compound movement for quads and glutes.",
		Instructions: []string{"Brace the core and sit down between the hips.", "Reach at least parallel depth.", "Drive up through mid-foot."},
		Tips:         []string{"Keep the knees tracking over the toes.", "Maintain a neutral spine."},
		Difficulty:   "intermediate",
		Progressions: domain.Progressions{Easier: "Reduce depth to a box", Harder: "Add load or a pause"},
	}},
	{"lunge", descriptiveBundle{
		Description:  "Single-leg pattern building quads, glutes and balance.",
		Instructions: []string{"Step with control and lower the back knee toward the floor.", "Keep the torso upright.", "Push through the front heel to return."},
		Tips:         []string{"Shorter steps bias quads, longer steps bias glutes."},
		Difficulty:   "beginner",
		Progressions: domain.Progressions{Easier: "Hold onto support for balance", Harder: "Hold dumbbells"},
	}},
	{"press", descriptiveBundle{
		Description:  "Pressing compound movement for chest, shoulders and triceps.",
		Instructions: []string{"Set the shoulder blades before unracking.", "Lower with control to the chest or shoulders.", "Press to full lockout."},
		Tips:         []string{"Keep wrists stacked over elbows."},
		Difficulty:   "intermediate",
		Progressions: domain.Progressions{Easier: "Machine variation", Harder: "Add load"},
	}},
	{"row", descriptiveBundle{
		Description:  "Pulling compound movement for the back and rear delts.",
		Instructions: []string{"Hinge or sit tall with a neutral spine.", "Pull toward the torso squeezing the shoulder blades.", "Extend fully under control."},
		Tips:         []string{"Lead with the elbows, not the hands."},
		Difficulty:   "intermediate",
		Progressions: domain.Progressions{Easier: "Chest-supported variation", Harder: "Pause each rep at contraction"},
	}},
	{"raise", descriptiveBundle{
		Description:  "Shoulder isolation raise with light, strict loading.",
		Instructions: []string{"Raise the weights out with a slight elbow bend.", "Stop at shoulder height.", "Lower slowly."},
		Tips:         []string{"Lighter than you think: no swinging."},
		Difficulty:   "beginner",
		Progressions: domain.Progressions{Easier: "Seated variation", Harder: "Slow eccentrics"},
	}},
	{"crunch", descriptiveBundle{
		Description:  "Core flexion movement targeting the abdominals.",
		Instructions: []string{"Curl the ribs toward the pelvis.", "Exhale at the top.", "Lower without losing tension."},
		Tips:         []string{"Small, controlled range beats momentum."},
		Difficulty:   "beginner",
		Progressions: domain.Progressions{Easier: "Reduce range", Harder: "Add a weight plate"},
	}},
	{"bridge", descriptiveBundle{
		Description:  "Glute-dominant hip extension from the floor or machine.",
		Instructions: []string{"Drive the hips up by squeezing the glutes.", "Hold the top position briefly.", "Lower under control."},
		Tips:         []string{"Keep the low back neutral; the glutes do the work."},
		Difficulty:   "beginner",
		Progressions: domain.Progressions{Easier: "Bodyweight only", Harder: "Hip Thrusts"},
	}},
}

// genericDefaults is the last-resort bundle.
var genericDefaults = descriptiveBundle{
	Description:  "Strength exercise performed with controlled tempo and full range of motion.",
	Instructions: []string{"Set up with stable posture and braced core.", "Perform each rep under control through a full range of motion.", "Rest as prescribed between sets."},
	Tips:         []string{"Leave 1-2 reps in reserve on every set.", "Prioritize form over load."},
	Difficulty:   "intermediate",
	Progressions: domain.Progressions{Easier: "Reduce the load or range of motion", Harder: "Add load or slow the tempo"},
}

// lookupDefaults finds the backfill bundle for an exercise name: exact entry
// first, then name-pattern heuristics, then the generic bundle.
func lookupDefaults(name string) descriptiveBundle {
	normalized := domain.NormalizeName(name)
	if bundle, ok := exerciseDefaults[normalized]; ok {
		return bundle
	}
	for _, entry := range musclePatternDefaults {
		if strings.Contains(normalized, entry.pattern) {
			return entry.bundle
		}
	}
	return genericDefaults
}

// fallbackTrioNames are the safe catalog staples injected when a declared
// workout day loses every exercise during sanitization. All three are
// weighted movements with names within the word limit.
var fallbackTrioNames = []string{"Goblet Squat", "Seated Rows", "Romanian Deadlifts"}
