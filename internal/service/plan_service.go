package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path"
	"strings"
	"time"

	"github.com/Pauljlane12/fitivabackend/internal/config"
	"github.com/Pauljlane12/fitivabackend/internal/domain"
	"github.com/Pauljlane12/fitivabackend/internal/llm"
	"github.com/Pauljlane12/fitivabackend/internal/planner"
	"github.com/Pauljlane12/fitivabackend/internal/repository"
	"github.com/Pauljlane12/fitivabackend/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	// ErrInvalidProfile marks caller input that fails validation before any
	// generation is attempted.
	ErrInvalidProfile = errors.New("invalid fitness profile")
	// ErrEmptyCatalogFilter means no approved exercise satisfies the
	// profile's constraints; generation would be unsatisfiable.
	ErrEmptyCatalogFilter = errors.New("no exercises available for the requested constraints")
	// ErrGenerationFailed is the terminal condition after every attempt
	// produced unusable output.
	ErrGenerationFailed = errors.New("plan generation failed")
	// ErrGenerationTimeout marks exhaustion where the final attempt timed out.
	ErrGenerationTimeout = errors.New("plan generation timed out")
	// ErrGenerationService marks exhaustion where the final attempt hit a
	// transport or API failure rather than bad output.
	ErrGenerationService = errors.New("plan generation service unavailable")
	// ErrPlanNotFound means the user has no archived plan yet.
	ErrPlanNotFound = errors.New("no generated plan found")
)

// GenerationError carries diagnostics for an exhausted generation run: the
// terminal classification, how many attempts were spent, and where the last
// raw model output was archived (empty when archiving was unavailable).
type GenerationError struct {
	Cause       error
	Attempts    int
	LastReason  string
	ArtifactKey string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%v after %d attempts: %s", e.Cause, e.Attempts, e.LastReason)
}

func (e *GenerationError) Unwrap() error { return e.Cause }

// PlanService turns a fitness profile into a validated weekly workout plan.
type PlanService interface {
	GeneratePlan(ctx context.Context, userID primitive.ObjectID, profile *domain.UserProfile) (*domain.GeneratedPlan, error)
	GenerateSummary(ctx context.Context, profile *domain.UserProfile) (string, error)
	GetLatestPlan(ctx context.Context, userID primitive.ObjectID) (*domain.PlanRecord, error)
	ListPlans(ctx context.Context, userID primitive.ObjectID) ([]domain.PlanRecord, error)
}

// planService implements the PlanService interface.
type planService struct {
	exerciseRepo repository.ExerciseRepository
	userRepo     repository.UserRepository
	planRepo     repository.PlanRepository
	generator    llm.Generator
	artifacts    storage.ArtifactStorage // nil disables failure archiving
	openAICfg    config.OpenAIConfig
	maxAttempts  int
}

// NewPlanService creates a new instance of planService. artifacts may be nil
// when no artifact store is configured.
func NewPlanService(
	exerciseRepo repository.ExerciseRepository,
	userRepo repository.UserRepository,
	planRepo repository.PlanRepository,
	generator llm.Generator,
	artifacts storage.ArtifactStorage,
	openAICfg config.OpenAIConfig,
	maxAttempts int,
) PlanService {
	if maxAttempts <= 0 {
		maxAttempts = 2
	}
	return &planService{
		exerciseRepo: exerciseRepo,
		userRepo:     userRepo,
		planRepo:     planRepo,
		generator:    generator,
		artifacts:    artifacts,
		openAICfg:    openAICfg,
		maxAttempts:  maxAttempts,
	}
}

// GeneratePlan runs the full pipeline: profile validation, catalog filtering,
// prompt assembly, bounded generate-parse-validate attempts, then scheduling.
// The returned plan has always passed every hard invariant; a plan that
// cannot be validated within the attempt budget surfaces as a terminal error.
func (s *planService) GeneratePlan(ctx context.Context, userID primitive.ObjectID, profile *domain.UserProfile) (*domain.GeneratedPlan, error) {
	// 1. Resolve the profile: explicit argument wins, else the stored one.
	if profile == nil {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
		if !user.HasProfile() {
			return nil, fmt.Errorf("%w: no stored profile and none provided", ErrInvalidProfile)
		}
		profile = user.Profile
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}

	// 2. Load the candidate catalog for the requested focus areas. Equipment
	// narrowing happens in the prompt builder, which also knows the accessory
	// exceptions.
	groups := planner.ExpandMuscleGroups(profile.MuscleGroups, profile.CoreMode())
	catalog, err := s.exerciseRepo.List(ctx, repository.ExerciseFilter{
		MuscleGroups:  groups,
		ExcludeCardio: true,
	})
	if err != nil {
		return nil, err
	}

	var isolation []domain.Exercise
	if profile.WantsIsolationDay && profile.PriorityMuscle != "" {
		isolation, err = s.exerciseRepo.List(ctx, repository.ExerciseFilter{
			MuscleGroups:  planner.ExpandMuscleGroups([]string{profile.PriorityMuscle}, ""),
			ExcludeCardio: true,
		})
		if err != nil {
			return nil, err
		}
	}

	// 3. Build the prompt once; it is deterministic for a given profile.
	prompt, err := planner.BuildPrompt(profile, catalog, isolation)
	if err != nil {
		if errors.Is(err, planner.ErrEmptyCatalogFilter) {
			return nil, fmt.Errorf("%w: %v", ErrEmptyCatalogFilter, err)
		}
		return nil, err
	}

	sanitizer := planner.NewSanitizer(prompt.Snapshot, profile)
	validator := planner.NewValidator(prompt.Snapshot, prompt.Frequency, prompt.WeightedOnly, prompt.IsolationDay)

	// 4. Bounded attempt loop. Each retry appends a short corrective hint
	// describing why the previous attempt was rejected.
	var (
		lastErr    error
		lastReason string
		lastRaw    string
	)
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		text := prompt.Text
		if lastReason != "" {
			text += "\nPREVIOUS ATTEMPT WAS INVALID BECAUSE: " + lastReason + "\nFix these problems and regenerate the full plan.\n"
		}

		raw, err := s.generator.Generate(ctx, llm.Request{
			Model:       s.openAICfg.Model,
			System:      "You output raw JSON workout plans. No markdown, no prose.",
			Prompt:      text,
			Temperature: s.openAICfg.Temperature,
			MaxTokens:   s.openAICfg.MaxTokens,
			JSONOnly:    true,
		})
		if err != nil {
			if ctx.Err() != nil {
				// Caller gave up; no point burning further attempts.
				return nil, err
			}
			log.Printf("ERROR: generation attempt %d/%d failed: %v", attempt, s.maxAttempts, err)
			lastErr = err
			lastReason = "the generation service call failed"
			continue
		}
		lastRaw = raw

		rawPlan, err := planner.ParseResponse(raw)
		if err != nil {
			log.Printf("ERROR: attempt %d/%d returned unparseable output: %v", attempt, s.maxAttempts, err)
			lastErr = err
			lastReason = "the response was not valid JSON matching the schema"
			continue
		}

		plan := sanitizer.Sanitize(rawPlan)
		if err := validator.Validate(plan); err != nil {
			var verr *planner.ValidationError
			if errors.As(err, &verr) {
				lastReason = verr.Hint()
			} else {
				lastReason = err.Error()
			}
			log.Printf("ERROR: attempt %d/%d failed validation: %v", attempt, s.maxAttempts, err)
			lastErr = err
			continue
		}

		// 5. Valid plan: place sessions per rest preferences and derive the
		// per-day metadata.
		planner.ApplySchedule(plan, profile)
		planner.AnnotateDayMetadata(plan)
		s.archivePlan(ctx, userID, profile, plan, attempt)
		return plan, nil
	}

	// 6. Attempts exhausted. Archive the last raw output for diagnostics and
	// classify the terminal failure.
	artifactKey := s.archiveFailure(ctx, userID, lastRaw)

	cause := ErrGenerationFailed
	switch {
	case errors.Is(lastErr, llm.ErrTimeout):
		cause = ErrGenerationTimeout
	case errors.Is(lastErr, llm.ErrService), errors.Is(lastErr, llm.ErrEmptyCompletion):
		cause = ErrGenerationService
	}
	return nil, &GenerationError{
		Cause:       cause,
		Attempts:    s.maxAttempts,
		LastReason:  lastReason,
		ArtifactKey: artifactKey,
	}
}

// archivePlan stores an accepted plan so the app can re-fetch it later.
// Best effort: a write failure is logged, never surfaced to the caller.
func (s *planService) archivePlan(ctx context.Context, userID primitive.ObjectID, profile *domain.UserProfile, plan *domain.GeneratedPlan, attempts int) {
	if s.planRepo == nil || userID == primitive.NilObjectID {
		return
	}
	archiveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	_, err := s.planRepo.Create(archiveCtx, &domain.PlanRecord{
		UserID:   userID,
		Profile:  profile,
		Plan:     *plan,
		Model:    s.openAICfg.Model,
		Attempts: attempts,
	})
	if err != nil {
		log.Printf("ERROR: failed to archive generated plan for user %s: %v", userID.Hex(), err)
	}
}

// GetLatestPlan returns the most recently generated plan for the user.
func (s *planService) GetLatestPlan(ctx context.Context, userID primitive.ObjectID) (*domain.PlanRecord, error) {
	record, err := s.planRepo.GetLatestByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return record, nil
}

// ListPlans returns the user's archived plans, newest first.
func (s *planService) ListPlans(ctx context.Context, userID primitive.ObjectID) ([]domain.PlanRecord, error) {
	return s.planRepo.ListByUser(ctx, userID, 20)
}

// archiveFailure stores the last raw model output so the failure can be
// inspected offline. Best effort: archiving problems never mask the
// generation error itself.
func (s *planService) archiveFailure(ctx context.Context, userID primitive.ObjectID, raw string) string {
	if s.artifacts == nil || raw == "" {
		return ""
	}
	// Detach from the request context so a caller timeout doesn't lose the
	// artifact; keep the write itself bounded.
	archiveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	key := path.Join("generation-failures", userID.Hex(), uuid.NewString()+".txt")
	stored, err := s.artifacts.PutArtifact(archiveCtx, key, []byte(raw), "text/plain; charset=utf-8")
	if err != nil {
		log.Printf("ERROR: failed to archive generation failure: %v", err)
		return ""
	}
	return stored
}

// GenerateSummary produces the short natural-language fitness summary used by
// the app's onboarding review screen. Falls back to the deterministic
// template when the generation service is unavailable.
func (s *planService) GenerateSummary(ctx context.Context, profile *domain.UserProfile) (string, error) {
	if profile == nil {
		return "", fmt.Errorf("%w: profile is required", ErrInvalidProfile)
	}
	if err := profile.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}

	onboarding, err := json.Marshal(profile)
	if err != nil {
		return "", fmt.Errorf("marshal profile: %w", err)
	}

	model := s.openAICfg.SummaryModel
	if model == "" {
		model = s.openAICfg.Model
	}
	text, err := s.generator.Generate(ctx, llm.Request{
		Model:       model,
		Prompt:      planner.SummaryRequestPrompt(string(onboarding)),
		Temperature: s.openAICfg.Temperature,
		MaxTokens:   400,
	})
	if err != nil {
		if ctx.Err() != nil {
			return "", err
		}
		log.Printf("ERROR: summary generation failed, using template fallback: %v", err)
		return planner.BuildSummary(profile, planner.AllowedEquipment(profile)), nil
	}
	return strings.TrimSpace(text), nil
}
