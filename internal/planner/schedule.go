package planner

import (
	"strings"

	"github.com/Pauljlane12/fitivabackend/internal/domain"
)

// ApplySchedule rearranges the validated plan's workout days across the week
// according to the user's rest preferences. The workout content itself is
// untouched: only which weekday carries which session changes. The model is
// told to program Monday-first, so here sessions are lifted out in weekday
// order and re-seated into the preferred slots.
func ApplySchedule(plan *domain.GeneratedPlan, profile *domain.UserProfile) {
	var sessions []*domain.PlanDay
	for _, weekday := range domain.Weekdays {
		if day := plan.Days[weekday]; day != nil && !day.RestDay {
			sessions = append(sessions, day)
		}
	}
	if len(sessions) == 0 {
		return
	}

	targets := workoutSlots(profile, len(sessions))

	next := 0
	for _, weekday := range domain.Weekdays {
		if targets[weekday] && next < len(sessions) {
			plan.Days[weekday] = sessions[next]
			next++
			continue
		}
		existing := plan.Days[weekday]
		if existing != nil && existing.RestDay {
			continue
		}
		reason := "recovery"
		if restDayRequested(profile, weekday) {
			reason = "requested rest day"
		}
		plan.Days[weekday] = restDay(weekday, "", "", reason)
	}
}

// workoutSlots picks which weekdays hold a session. Days the user marked
// unavailable are excluded outright; preferred rest days are avoided but may
// be used when the frequency leaves no choice.
func workoutSlots(profile *domain.UserProfile, count int) map[string]bool {
	blocked := requestedRestDays(profile)
	hardBlock := profile.RestPreferences.Preference == domain.RestPreferenceUnavailable

	var open, soft []string
	for _, weekday := range domain.Weekdays {
		switch {
		case !blocked[weekday]:
			open = append(open, weekday)
		case !hardBlock:
			soft = append(soft, weekday)
		}
	}

	candidates := open
	if len(candidates) < count {
		candidates = append(candidates, soft...)
	}
	if len(candidates) < count {
		candidates = domain.Weekdays
	}

	slots := make(map[string]bool, count)
	for _, weekday := range spreadEvenly(candidates, count) {
		slots[weekday] = true
	}
	return slots
}

// spreadEvenly picks count entries from days at evenly spaced positions, so
// sessions avoid bunching at the start of the week.
func spreadEvenly(days []string, count int) []string {
	if count >= len(days) {
		return days
	}
	picked := make([]string, 0, count)
	for i := 0; i < count; i++ {
		picked = append(picked, days[i*len(days)/count])
	}
	return picked
}

func requestedRestDays(profile *domain.UserProfile) map[string]bool {
	out := make(map[string]bool)
	for _, raw := range profile.RestPreferences.SpecificDays {
		name := strings.TrimSpace(raw)
		if full, ok := domain.WeekdayAbbreviations[name]; ok {
			name = full
		}
		// Accept full names in any casing as well.
		for _, weekday := range domain.Weekdays {
			if strings.EqualFold(name, weekday) {
				out[weekday] = true
			}
		}
	}
	return out
}

func restDayRequested(profile *domain.UserProfile, weekday string) bool {
	return requestedRestDays(profile)[weekday]
}

// AnnotateDayMetadata fills the derived per-day fields (exercise count, total
// sets, estimated calories) after scheduling. Rest days carry zeroes.
func AnnotateDayMetadata(plan *domain.GeneratedPlan) {
	for _, day := range plan.Days {
		if day == nil || day.RestDay {
			continue
		}
		day.ExerciseCount = len(day.Exercises)
		day.TotalSets = 0
		for _, ex := range day.Exercises {
			day.TotalSets += ex.Sets
		}
		day.EstimatedCalories = day.TotalSets * CaloriesPerSet
	}
}
