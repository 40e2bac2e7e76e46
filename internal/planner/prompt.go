package planner

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Pauljlane12/fitivabackend/internal/domain"
)

// ErrEmptyCatalogFilter means no approved exercise survives the profile's
// muscle-group and equipment constraints; generation would be unsatisfiable.
var ErrEmptyCatalogFilter = errors.New("no approved exercises match the requested constraints")

// accessoryWhitelist names bodyweight/band accessories that pass the
// equipment filter in every mode, full-gym included.
var accessoryWhitelist = map[string]bool{
	"frog pumps":           true,
	"banded lateral walks": true,
}

// fullGymEquipment is the broad equipment set assumed for gym members.
// Bodyweight is deliberately absent: gym plans are weighted-only.
var fullGymEquipment = []string{
	domain.EquipmentBarbell,
	domain.EquipmentDumbbell,
	domain.EquipmentMachine,
	domain.EquipmentCable,
	"plate",
	domain.EquipmentResistanceBand,
}

// homeEquipmentAliases maps free-text onboarding equipment answers onto
// catalog equipment kinds.
var homeEquipmentAliases = map[string]string{
	"barbell":          domain.EquipmentBarbell,
	"barbells":         domain.EquipmentBarbell,
	"dumbbell":         domain.EquipmentDumbbell,
	"dumbbells":        domain.EquipmentDumbbell,
	"machine":          domain.EquipmentMachine,
	"machines":         domain.EquipmentMachine,
	"cable":            domain.EquipmentCable,
	"cables":           domain.EquipmentCable,
	"plate":            "plate",
	"plates":           "plate",
	"band":             domain.EquipmentResistanceBand,
	"bands":            domain.EquipmentResistanceBand,
	"resistance band":  domain.EquipmentResistanceBand,
	"resistance bands": domain.EquipmentResistanceBand,
	"resistance_band":  domain.EquipmentResistanceBand,
	"bodyweight":       domain.EquipmentBodyweight,
}

// Prompt is a fully assembled generation request plus the catalog snapshot
// it was built from. The snapshot is the approved set the validator checks
// model output against.
type Prompt struct {
	Text         string
	Snapshot     []domain.Exercise
	Frequency    int
	WeightedOnly bool
	IsolationDay bool
}

// AllowedEquipment derives the equipment kinds a plan may use. Gym members
// get the broad fixed set; home users get their declared equipment mapped
// onto catalog kinds, with bodyweight always available as a fallback.
func AllowedEquipment(profile *domain.UserProfile) []string {
	if profile.GymAccess {
		out := make([]string, len(fullGymEquipment))
		copy(out, fullGymEquipment)
		return out
	}

	seen := map[string]bool{}
	var out []string
	add := func(kind string) {
		if !seen[kind] {
			seen[kind] = true
			out = append(out, kind)
		}
	}
	for _, item := range profile.HomeEquipment {
		if kind, ok := homeEquipmentAliases[domain.NormalizeName(item)]; ok {
			add(kind)
		}
	}
	add(domain.EquipmentBodyweight)
	return out
}

// WeightedOnly reports whether the plan variant must avoid bodyweight as
// primary equipment: true whenever the allowed equipment extends beyond
// bodyweight.
func WeightedOnly(allowed []string) bool {
	for _, kind := range allowed {
		if kind != domain.EquipmentBodyweight {
			return true
		}
	}
	return false
}

// ExpandMuscleGroups lowercases the requested groups and expands the
// composite selections: arms → biceps + triceps, legs → quads + hamstrings.
// Under the sprinkle core preference, core is appended.
func ExpandMuscleGroups(groups []string, coreMode string) []string {
	seen := map[string]bool{}
	var out []string
	add := func(g string) {
		if g != "" && !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	for _, g := range groups {
		switch domain.NormalizeName(g) {
		case "arms":
			add("biceps")
			add("triceps")
		case "legs":
			add("quads")
			add("hamstrings")
		default:
			add(domain.NormalizeName(g))
		}
	}
	if coreMode == domain.CoreSprinkle && len(out) > 0 {
		add("core")
	}
	return out
}

// FilterCatalog keeps exercises whose muscle group (or a tag) is in the
// requested set — or all when none requested — and whose equipment is
// allowed. Whitelisted accessories pass the equipment check in every mode.
// Cardio never survives: plans are strength programming.
func FilterCatalog(catalog []domain.Exercise, groups, allowedEquipment []string) []domain.Exercise {
	groupSet := map[string]bool{}
	for _, g := range groups {
		groupSet[domain.NormalizeName(g)] = true
	}
	equipSet := map[string]bool{}
	for _, e := range allowedEquipment {
		equipSet[e] = true
	}

	var out []domain.Exercise
	for _, ex := range catalog {
		if ex.MuscleGroup == "cardio" {
			continue
		}
		if len(groupSet) > 0 && !matchesGroups(&ex, groupSet) {
			continue
		}
		if !equipSet[ex.Equipment] && !accessoryWhitelist[domain.NormalizeName(ex.Name)] {
			continue
		}
		out = append(out, ex)
	}
	return out
}

func matchesGroups(ex *domain.Exercise, groupSet map[string]bool) bool {
	if groupSet[domain.NormalizeName(ex.MuscleGroup)] {
		return true
	}
	for _, tag := range ex.Tags {
		if groupSet[domain.NormalizeName(tag)] {
			return true
		}
	}
	return false
}

// prioritize buckets exercises by priority and caps what the prompt carries:
// the model attends poorly past a couple dozen options.
func prioritize(exercises []domain.Exercise) []domain.Exercise {
	var p1, p2, p3 []domain.Exercise
	for _, ex := range exercises {
		switch ex.Priority {
		case 1:
			p1 = append(p1, ex)
		case 3:
			p3 = append(p3, ex)
		default:
			p2 = append(p2, ex)
		}
	}
	out := make([]domain.Exercise, 0, maxPromptExercises)
	out = append(out, capSlice(p1, maxPriority1Exercises)...)
	out = append(out, capSlice(p2, maxPriority2Exercises)...)
	out = append(out, capSlice(p3, maxPriority3Exercises)...)
	return capSlice(out, maxPromptExercises)
}

func capSlice(exercises []domain.Exercise, n int) []domain.Exercise {
	if len(exercises) <= n {
		return exercises
	}
	return exercises[:n]
}

// StartingWeightHint computes the textual starting-weight suggestion
// embedded in the prompt: body weight times the experience multiplier,
// rounded to the nearest 5 lbs. A hint only, never a guarantee.
func StartingWeightHint(profile *domain.UserProfile) int {
	return int(math.Round(profile.WeightLbs*profile.ExperienceMultiplier()/5) * 5)
}

// BuildPrompt assembles the generation request for a profile. catalog holds
// the candidate exercises for the focus areas; isolation, when non-empty,
// holds candidates for the priority-muscle isolation day.
func BuildPrompt(profile *domain.UserProfile, catalog, isolation []domain.Exercise) (*Prompt, error) {
	allowed := AllowedEquipment(profile)
	groups := ExpandMuscleGroups(profile.MuscleGroups, profile.CoreMode())

	filtered := FilterCatalog(catalog, groups, allowed)
	if len(filtered) == 0 {
		return nil, fmt.Errorf("%w: muscle groups %v, equipment %v", ErrEmptyCatalogFilter, groups, allowed)
	}

	snapshot := prioritize(filtered)
	isolationDay := profile.WantsIsolationDay && profile.PriorityMuscle != "" && profile.Frequency >= 4
	var isolationSnapshot []domain.Exercise
	if isolationDay {
		isolationSnapshot = capSlice(FilterCatalog(isolation, nil, allowed), maxIsolationExercises)
	}

	weighted := WeightedOnly(allowed)
	text := renderPrompt(profile, snapshot, isolationSnapshot, allowed, weighted)

	full := make([]domain.Exercise, 0, len(snapshot)+len(isolationSnapshot))
	full = append(full, snapshot...)
	full = append(full, isolationSnapshot...)

	return &Prompt{
		Text:         text,
		Snapshot:     full,
		Frequency:    profile.Frequency,
		WeightedOnly: weighted,
		IsolationDay: isolationDay,
	}, nil
}

func renderPrompt(profile *domain.UserProfile, snapshot, isolation []domain.Exercise, allowed []string, weighted bool) string {
	var b strings.Builder

	b.WriteString("You are a certified strength coach. Generate a RAW JSON workout plan for exactly ")
	fmt.Fprintf(&b, "%d distinct workout days (out of Monday-Sunday) matching the schema below.\n\n", profile.Frequency)

	b.WriteString("USER'S FITNESS SUMMARY:\n")
	b.WriteString(BuildSummary(profile, allowed))
	b.WriteString("\n\n")

	b.WriteString("RULES:\n")
	rules := []string{
		fmt.Sprintf("The plan must contain exactly %d workout days; every other weekday is a complete rest day and is simply omitted.", profile.Frequency),
		fmt.Sprintf("Each workout day contains exactly %d exercises.", ExercisesPerDay),
		fmt.Sprintf("sets = %d for every exercise (constant).", SetsPerExercise),
		fmt.Sprintf("reps is an integer between %d and %d.", MinReps, MaxReps),
		"Use ONLY exercises from the approved list, copied exactly as written. Never invent exercise names.",
		fmt.Sprintf("Day titles and exercise names are at most %d words.", MaxTitleWords),
		"recommendedWeight values must be plain numbers: no units, no strings.",
		"recommendedWeight.intermediate must be greater than 0.",
		`equipment.alternatives is an array of objects like {"name": "Smith Machine"} — never bare strings.`,
		`muscleGroups is an object {"primary": [...], "secondary": [...]}.`,
	}
	if weighted {
		rules = append(rules, `This is a weighted plan: equipment.primary must never be "bodyweight".`)
	}
	if profile.CoreMode() == domain.CoreSprinkle {
		rules = append(rules, fmt.Sprintf("Include 2 core exercises in each workout day (as part of the %d).", ExercisesPerDay))
	} else {
		rules = append(rules, "Create dedicated core-heavy workout days rather than sprinkling core work.")
	}
	if len(isolation) > 0 {
		rules = append(rules, fmt.Sprintf("One workout day is a dedicated %s isolation day using %d-%d exercises from the isolation list.",
			profile.PriorityMuscle, MinIsolationDayLen, ExercisesPerDay))
	}
	rules = append(rules, riskRules(profile.HealthRisks)...)
	rules = append(rules, fmt.Sprintf("As a starting point, working weights around %d lbs suit this user; scale per exercise.", StartingWeightHint(profile)))

	for i, rule := range rules {
		fmt.Fprintf(&b, "%d. %s\n", i+1, rule)
	}

	b.WriteString("\nOUTPUT FORMAT (RAW JSON, no markdown):\n")
	b.WriteString(schemaExcerpt)

	b.WriteString("\nAPPROVED EXERCISES:\n")
	for _, ex := range snapshot {
		b.WriteString(formatExerciseLine(&ex))
	}

	if len(isolation) > 0 {
		fmt.Fprintf(&b, "\nISOLATION EXERCISES FOR %s:\n", strings.ToUpper(profile.PriorityMuscle))
		for _, ex := range isolation {
			b.WriteString(formatExerciseLine(&ex))
		}
	}

	return b.String()
}

// riskRules appends caveat lines for flagged health risks.
func riskRules(risks []string) []string {
	var out []string
	for _, risk := range risks {
		switch {
		case strings.Contains(strings.ToLower(risk), "pregnan"):
			out = append(out, "User is pregnant: avoid supine positions, heavy spinal loading, and high-impact movements; keep intensity moderate.")
		case strings.Contains(strings.ToLower(risk), "joint"), strings.Contains(strings.ToLower(risk), "knee"):
			out = append(out, "User has joint issues: prefer machine and cable variations, moderate loads, and avoid deep ballistic movements.")
		}
	}
	return out
}

func formatExerciseLine(ex *domain.Exercise) string {
	label := "LOWER PRIORITY"
	switch ex.Priority {
	case 1:
		label = "HIGHEST PRIORITY"
	case 2:
		label = "MEDIUM PRIORITY"
	}
	return fmt.Sprintf("- %s (%s, targets: %s, equipment: %s, default: %dx%d)\n",
		ex.Name, label, ex.MuscleGroup, ex.Equipment, ex.DefaultSets, ex.DefaultReps)
}

const schemaExcerpt = `{
  "plan": {
    "Monday": {
      "title": string,
      "description": string,
      "estimatedDuration": number,
      "intensity": string,
      "exercises": [
        {
          "id": string,
          "name": string,
          "sets": 3,
          "reps": integer,
          "equipment": {"primary": string, "alternatives": [{"name": string}]},
          "recommendedWeight": {"beginner": number, "intermediate": number, "advanced": number, "userLevel": number},
          "muscleGroups": {"primary": [string], "secondary": [string]},
          "restTime": number,
          "description": string,
          "instructions": [string],
          "tips": [string],
          "difficulty": string,
          "progressions": {"easier": string, "harder": string},
          "tempo": {"eccentric": number, "pauseBottom": number, "concentric": number}
        }
      ]
    }
  }
}
`
