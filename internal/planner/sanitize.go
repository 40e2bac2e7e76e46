package planner

import (
	"fmt"
	"math"
	"strings"

	"github.com/Pauljlane12/fitivabackend/internal/domain"

	"github.com/google/uuid"
)

// Sanitizer is Phase A of plan validation: best-effort coercion of the loose
// parsed plan into a strictly shaped GeneratedPlan. It repairs formatting
// noise (string numbers, stray units, bare arrays) and backfills missing
// descriptive fields, but never invents semantics — unapproved exercises are
// dropped, and hard invariants are left for Phase B.
type Sanitizer struct {
	profile  *domain.UserProfile
	snapshot []domain.Exercise
	byName   map[string]*domain.Exercise
}

// NewSanitizer builds a sanitizer over the catalog snapshot the prompt was
// constructed from.
func NewSanitizer(snapshot []domain.Exercise, profile *domain.UserProfile) *Sanitizer {
	byName := make(map[string]*domain.Exercise, len(snapshot))
	for i := range snapshot {
		byName[domain.NormalizeName(snapshot[i].Name)] = &snapshot[i]
	}
	return &Sanitizer{profile: profile, snapshot: snapshot, byName: byName}
}

// Sanitize produces a GeneratedPlan naming all seven weekdays. Idempotent:
// sanitizing an already-sanitized plan yields an identical plan.
func (s *Sanitizer) Sanitize(raw *RawPlan) *domain.GeneratedPlan {
	plan := &domain.GeneratedPlan{Days: make(map[string]*domain.PlanDay, len(domain.Weekdays))}

	for _, weekday := range domain.Weekdays {
		rawDay := raw.Days[weekday]
		switch {
		case rawDay == nil:
			plan.Days[weekday] = restDay(weekday, "", "", "not scheduled")
		case rawDay.RestDay || len(rawDay.Exercises) == 0 && rawDay.Title == "" && rawDay.Description == "":
			plan.Days[weekday] = restDay(weekday, rawDay.Title, rawDay.Description, rawDay.RestReason)
		default:
			plan.Days[weekday] = s.sanitizeWorkoutDay(weekday, rawDay)
		}
	}
	return plan
}

func restDay(weekday, title, description, reason string) *domain.PlanDay {
	if title == "" {
		title = weekday + " Rest Day"
	}
	if reason == "" {
		reason = "recovery"
	}
	if description == "" {
		description = "Rest day"
	}
	return &domain.PlanDay{
		Title:       truncateWords(title, MaxTitleWords),
		Description: description,
		Intensity:   "rest",
		RestDay:     true,
		RestReason:  reason,
		Exercises:   []domain.PlannedExercise{},
	}
}

func (s *Sanitizer) sanitizeWorkoutDay(weekday string, rawDay *RawDay) *domain.PlanDay {
	day := &domain.PlanDay{
		Title:             truncateWords(rawDay.Title, MaxTitleWords),
		Description:       rawDay.Description,
		EstimatedDuration: clampInt(int(rawDay.EstimatedDuration.Or(50)), MinDurationMinutes, MaxDurationMinutes),
		Intensity:         rawDay.Intensity,
		Exercises:         []domain.PlannedExercise{},
	}
	if day.Title == "" {
		day.Title = weekday + " Workout"
	}
	if day.Description == "" {
		day.Description = "Strength training session"
	}
	if day.Intensity == "" {
		day.Intensity = "moderate"
	}

	for i := range rawDay.Exercises {
		if ex, ok := s.sanitizeExercise(&rawDay.Exercises[i]); ok {
			day.Exercises = append(day.Exercises, ex)
		}
	}

	// A day that was supposed to carry training content must never come out
	// empty: fall back to known-safe catalog staples.
	if len(day.Exercises) == 0 {
		day.Exercises = s.fallbackTrio()
	}
	return day
}

// sanitizeExercise coerces one entry. ok is false when the exercise names
// nothing in the approved snapshot and must be dropped.
func (s *Sanitizer) sanitizeExercise(raw *RawExercise) (domain.PlannedExercise, bool) {
	catalogEntry, ok := s.byName[domain.NormalizeName(raw.Name)]
	if !ok {
		return domain.PlannedExercise{}, false
	}

	ex := domain.PlannedExercise{
		ID:   strings.TrimSpace(string(raw.ID)),
		Name: catalogEntry.Name, // canonical casing from the catalog
		Sets: SetsPerExercise,
		Reps: clampInt(int(raw.Reps.Or(DefaultReps)), MinReps, MaxReps),
	}
	if ex.ID == "" {
		ex.ID = uuid.NewString()
	}

	ex.RecommendedWeight = domain.WeightGuide{
		Beginner:     raw.RecommendedWeight.Beginner.Or(0),
		Intermediate: math.Max(raw.RecommendedWeight.Intermediate.Or(0), MinIntermediateWeight),
		Advanced:     raw.RecommendedWeight.Advanced.Or(0),
		UserLevel:    raw.RecommendedWeight.UserLevel.Or(0),
	}

	ex.Equipment = domain.PlannedEquipment{
		Primary:      strings.TrimSpace(raw.Equipment.Primary),
		Alternatives: []domain.EquipmentAlternative{},
	}
	if ex.Equipment.Primary == "" {
		ex.Equipment.Primary = catalogEntry.Equipment
	}
	for _, alt := range raw.Equipment.Alternatives {
		if name := strings.TrimSpace(alt.Name); name != "" {
			ex.Equipment.Alternatives = append(ex.Equipment.Alternatives, domain.EquipmentAlternative{Name: name})
		}
	}

	// Missing muscleGroups stays {primary: [], secondary: []}; the shape is
	// normalized but nothing is invented for a field the model omitted.
	ex.MuscleGroups = domain.MuscleGroupSplit{
		Primary:   nonNil(raw.MuscleGroups.Primary),
		Secondary: nonNil(raw.MuscleGroups.Secondary),
	}

	ex.RestTime = clampInt(int(raw.RestTime.Or(60)), 15, 300)

	bundle := lookupDefaults(raw.Name)
	ex.Description = raw.Description
	if ex.Description == "" {
		ex.Description = bundle.Description
	}
	ex.Instructions = raw.Instructions
	if len(ex.Instructions) == 0 {
		ex.Instructions = append([]string(nil), bundle.Instructions...)
	}
	ex.Tips = raw.Tips
	if len(ex.Tips) == 0 {
		ex.Tips = append([]string(nil), bundle.Tips...)
	}
	ex.Difficulty = raw.Difficulty
	if ex.Difficulty == "" {
		if catalogEntry.Difficulty != "" {
			ex.Difficulty = catalogEntry.Difficulty
		} else {
			ex.Difficulty = bundle.Difficulty
		}
	}
	ex.Progressions = domain.Progressions{
		Easier: raw.Progressions.Easier,
		Harder: raw.Progressions.Harder,
	}
	if ex.Progressions.Easier == "" {
		ex.Progressions.Easier = bundle.Progressions.Easier
	}
	if ex.Progressions.Harder == "" {
		ex.Progressions.Harder = bundle.Progressions.Harder
	}

	if raw.Tempo != nil {
		ex.Tempo = &domain.Tempo{
			Eccentric:   raw.Tempo.Eccentric.Or(0),
			PauseBottom: raw.Tempo.PauseBottom.Or(0),
			Concentric:  raw.Tempo.Concentric.Or(0),
		}
	}

	return ex, true
}

// fallbackTrio builds three fully-populated exercises from the snapshot,
// preferring the safe staple names, so an expected workout day is never
// returned empty.
func (s *Sanitizer) fallbackTrio() []domain.PlannedExercise {
	var picked []*domain.Exercise
	used := map[string]bool{}

	for _, name := range fallbackTrioNames {
		if entry, ok := s.byName[domain.NormalizeName(name)]; ok {
			picked = append(picked, entry)
			used[entry.Name] = true
		}
	}
	for i := range s.snapshot {
		if len(picked) >= 3 {
			break
		}
		if !used[s.snapshot[i].Name] {
			picked = append(picked, &s.snapshot[i])
			used[s.snapshot[i].Name] = true
		}
	}

	out := make([]domain.PlannedExercise, 0, len(picked))
	for _, entry := range picked {
		out = append(out, s.exerciseFromCatalog(entry))
	}
	return out
}

// exerciseFromCatalog fabricates a complete PlannedExercise from catalog
// metadata and the profile's weight heuristic.
func (s *Sanitizer) exerciseFromCatalog(entry *domain.Exercise) domain.PlannedExercise {
	bundle := lookupDefaults(entry.Name)

	weights := domain.WeightGuide{
		Beginner:     roundTo5(s.profile.WeightLbs * 0.3),
		Intermediate: math.Max(roundTo5(s.profile.WeightLbs*0.5), MinIntermediateWeight),
		Advanced:     roundTo5(s.profile.WeightLbs * 0.7),
	}
	weights.UserLevel = math.Max(roundTo5(s.profile.WeightLbs*s.profile.ExperienceMultiplier()), MinIntermediateWeight)

	reps := entry.DefaultReps
	if reps < MinReps || reps > MaxReps {
		reps = DefaultReps
	}

	difficulty := entry.Difficulty
	if difficulty == "" {
		difficulty = bundle.Difficulty
	}

	return domain.PlannedExercise{
		ID:   fmt.Sprintf("fallback-%s", strings.ReplaceAll(domain.NormalizeName(entry.Name), " ", "-")),
		Name: entry.Name,
		Sets: SetsPerExercise,
		Reps: reps,
		Equipment: domain.PlannedEquipment{
			Primary:      entry.Equipment,
			Alternatives: []domain.EquipmentAlternative{},
		},
		RecommendedWeight: weights,
		MuscleGroups: domain.MuscleGroupSplit{
			Primary:   []string{entry.MuscleGroup},
			Secondary: []string{},
		},
		RestTime:     60,
		Description:  bundle.Description,
		Instructions: append([]string(nil), bundle.Instructions...),
		Tips:         append([]string(nil), bundle.Tips...),
		Difficulty:   difficulty,
		Progressions: bundle.Progressions,
	}
}

func roundTo5(v float64) float64 {
	return math.Round(v/5) * 5
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
