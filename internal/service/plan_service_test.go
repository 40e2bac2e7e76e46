package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/Pauljlane12/fitivabackend/internal/config"
	"github.com/Pauljlane12/fitivabackend/internal/domain"
	"github.com/Pauljlane12/fitivabackend/internal/llm"
	"github.com/Pauljlane12/fitivabackend/internal/repository"
	"github.com/Pauljlane12/fitivabackend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Fakes ---

type fakeExerciseRepo struct {
	exercises []domain.Exercise
}

func (f *fakeExerciseRepo) List(ctx context.Context, filter repository.ExerciseFilter) ([]domain.Exercise, error) {
	return f.exercises, nil
}

func (f *fakeExerciseRepo) GetByName(ctx context.Context, name string) (*domain.Exercise, error) {
	for i := range f.exercises {
		if f.exercises[i].Name == name {
			return &f.exercises[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeExerciseRepo) Create(ctx context.Context, exercise *domain.Exercise) (string, error) {
	f.exercises = append(f.exercises, *exercise)
	return exercise.ID, nil
}

func (f *fakeExerciseRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.exercises)), nil
}

type fakeUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	return primitive.NewObjectID(), nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, userID primitive.ObjectID, profile *domain.UserProfile) error {
	return nil
}

// scriptedGenerator replays canned completions (or errors) and records the
// prompts it was asked to complete.
type scriptedGenerator struct {
	responses []string
	errs      []error
	prompts   []string
}

func (g *scriptedGenerator) Generate(ctx context.Context, req llm.Request) (string, error) {
	i := len(g.prompts)
	g.prompts = append(g.prompts, req.Prompt)
	if i < len(g.errs) && g.errs[i] != nil {
		return "", g.errs[i]
	}
	if i < len(g.responses) {
		return g.responses[i], nil
	}
	return "", llm.ErrEmptyCompletion
}

type memArtifacts struct {
	puts map[string][]byte
}

func (m *memArtifacts) PutArtifact(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	if m.puts == nil {
		m.puts = map[string][]byte{}
	}
	m.puts[key] = body
	return key, nil
}

func (m *memArtifacts) DeleteArtifact(ctx context.Context, key string) error {
	delete(m.puts, key)
	return nil
}

// --- Fixtures ---

func testCatalog() []domain.Exercise {
	return []domain.Exercise{
		{ID: "ex-1", Name: "Goblet Squat", MuscleGroup: "quads", Equipment: domain.EquipmentDumbbell, Difficulty: "beginner", DefaultSets: 3, DefaultReps: 10, Priority: 1},
		{ID: "ex-2", Name: "Romanian Deadlifts", MuscleGroup: "hamstrings", Equipment: domain.EquipmentBarbell, Difficulty: "intermediate", DefaultSets: 3, DefaultReps: 8, Priority: 1},
		{ID: "ex-3", Name: "Seated Rows", MuscleGroup: "back", Equipment: domain.EquipmentCable, Difficulty: "beginner", DefaultSets: 3, DefaultReps: 10, Priority: 1},
		{ID: "ex-4", Name: "Hip Thrusts", MuscleGroup: "glutes", Equipment: domain.EquipmentBarbell, Difficulty: "intermediate", DefaultSets: 3, DefaultReps: 10, Priority: 1},
		{ID: "ex-5", Name: "Lat Pulldowns", MuscleGroup: "back", Equipment: domain.EquipmentCable, Difficulty: "beginner", DefaultSets: 3, DefaultReps: 10, Priority: 1},
		{ID: "ex-6", Name: "Cable Crunches", MuscleGroup: "core", Equipment: domain.EquipmentCable, Difficulty: "beginner", DefaultSets: 3, DefaultReps: 12, Priority: 2},
	}
}

func testServiceProfile() *domain.UserProfile {
	return &domain.UserProfile{
		Gender:       "female",
		Age:          28,
		HeightFeet:   5,
		HeightInches: 6,
		WeightLbs:    150,
		Experience:   domain.ExperienceIntermediate,
		PrimaryGoal:  "build muscle",
		MuscleGroups: []string{"glutes", "legs", "back"},
		Frequency:    3,
		GymAccess:    true,
	}
}

// validCompletion renders a model response that passes every hard invariant
// for a frequency-3 profile.
func validCompletion(t *testing.T) string {
	t.Helper()
	names := []string{"Goblet Squat", "Romanian Deadlifts", "Seated Rows", "Hip Thrusts", "Lat Pulldowns", "Cable Crunches"}

	days := map[string]any{}
	for _, weekday := range []string{"Monday", "Wednesday", "Friday"} {
		var exercises []any
		for _, name := range names {
			exercises = append(exercises, map[string]any{
				"name":      name,
				"sets":      3,
				"reps":      8,
				"equipment": map[string]any{"primary": "dumbbell", "alternatives": []any{}},
				"recommendedWeight": map[string]any{
					"beginner": 20, "intermediate": 35, "advanced": 55, "userLevel": 35,
				},
				"muscleGroups": map[string]any{"primary": []string{"quads"}, "secondary": []string{}},
				"restTime":     60,
			})
		}
		days[weekday] = map[string]any{
			"title":             "Strength Day",
			"description":       "Heavy compound work",
			"estimatedDuration": 50,
			"intensity":         "moderate",
			"exercises":         exercises,
		}
	}

	encoded, err := json.Marshal(map[string]any{"plan": days})
	require.NoError(t, err)
	return string(encoded)
}

// memPlanRepo records archived plans in memory.
type memPlanRepo struct {
	records []domain.PlanRecord
}

func (m *memPlanRepo) Create(ctx context.Context, record *domain.PlanRecord) (primitive.ObjectID, error) {
	stored := *record
	stored.ID = primitive.NewObjectID()
	m.records = append(m.records, stored)
	return stored.ID, nil
}

func (m *memPlanRepo) GetLatestByUser(ctx context.Context, userID primitive.ObjectID) (*domain.PlanRecord, error) {
	for i := len(m.records) - 1; i >= 0; i-- {
		if m.records[i].UserID == userID {
			record := m.records[i]
			return &record, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memPlanRepo) ListByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.PlanRecord, error) {
	var out []domain.PlanRecord
	for i := len(m.records) - 1; i >= 0; i-- {
		if m.records[i].UserID == userID {
			out = append(out, m.records[i])
		}
	}
	return out, nil
}

func newTestPlanService(gen llm.Generator, artifacts *memArtifacts) PlanService {
	// A typed nil pointer inside the interface would defeat the service's nil
	// check, so the interface itself stays nil when no store is wanted.
	var store storage.ArtifactStorage
	if artifacts != nil {
		store = artifacts
	}
	svc := NewPlanService(
		&fakeExerciseRepo{exercises: testCatalog()},
		&fakeUserRepo{users: map[primitive.ObjectID]*domain.User{}},
		&memPlanRepo{},
		gen,
		store,
		config.OpenAIConfig{Model: "test-model", Temperature: 0.35, MaxTokens: 3000},
		2,
	)
	return svc
}

// --- Tests ---

func TestGeneratePlan_SuccessFirstAttempt(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{validCompletion(t)}}
	svc := newTestPlanService(gen, nil)

	plan, err := svc.GeneratePlan(context.Background(), primitive.NewObjectID(), testServiceProfile())
	require.NoError(t, err)
	require.Len(t, gen.prompts, 1)

	// Seven named days, exactly the requested number of training days.
	require.Len(t, plan.Days, 7)
	assert.Equal(t, 3, plan.TrainingDayCount())

	// Derived metadata is filled on workout days.
	for _, day := range plan.Days {
		if day.RestDay {
			continue
		}
		assert.Equal(t, 6, day.ExerciseCount)
		assert.Equal(t, 18, day.TotalSets)
		assert.Equal(t, 144, day.EstimatedCalories)
	}
}

func TestGeneratePlan_InvalidProfile(t *testing.T) {
	gen := &scriptedGenerator{}
	svc := newTestPlanService(gen, nil)

	profile := testServiceProfile()
	profile.Frequency = 9

	_, err := svc.GeneratePlan(context.Background(), primitive.NewObjectID(), profile)
	assert.ErrorIs(t, err, ErrInvalidProfile)
	assert.Empty(t, gen.prompts, "no generation call for invalid input")
}

func TestGeneratePlan_EmptyCatalog(t *testing.T) {
	gen := &scriptedGenerator{}
	svc := newTestPlanService(gen, nil)

	profile := testServiceProfile()
	profile.MuscleGroups = []string{"chest"} // nothing in the test catalog
	// Sprinkle mode would append "core" and match the catalog's core entry.
	profile.CorePreference = domain.CoreHeavyDays

	_, err := svc.GeneratePlan(context.Background(), primitive.NewObjectID(), profile)
	assert.ErrorIs(t, err, ErrEmptyCatalogFilter)
	assert.Empty(t, gen.prompts)
}

func TestGeneratePlan_RetriesMalformedThenSucceeds(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{"sorry, here is prose not JSON", validCompletion(t)}}
	svc := newTestPlanService(gen, nil)

	plan, err := svc.GeneratePlan(context.Background(), primitive.NewObjectID(), testServiceProfile())
	require.NoError(t, err)
	require.Len(t, gen.prompts, 2)

	// The retry prompt carries a corrective hint; the first did not.
	assert.NotContains(t, gen.prompts[0], "PREVIOUS ATTEMPT WAS INVALID")
	assert.Contains(t, gen.prompts[1], "PREVIOUS ATTEMPT WAS INVALID")
	assert.Equal(t, 3, plan.TrainingDayCount())
}

func TestGeneratePlan_RetriesValidationFailure(t *testing.T) {
	// First completion has the wrong day count (2 instead of 3).
	bad := validCompletion(t)
	var decoded map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(bad), &decoded))
	delete(decoded["plan"], "Friday")
	badEncoded, err := json.Marshal(decoded)
	require.NoError(t, err)

	gen := &scriptedGenerator{responses: []string{string(badEncoded), validCompletion(t)}}
	svc := newTestPlanService(gen, nil)

	plan, generr := svc.GeneratePlan(context.Background(), primitive.NewObjectID(), testServiceProfile())
	require.NoError(t, generr)
	require.Len(t, gen.prompts, 2)
	assert.Contains(t, gen.prompts[1], "workout days")
	assert.Equal(t, 3, plan.TrainingDayCount())
}

func TestGeneratePlan_ExhaustsAttempts(t *testing.T) {
	artifacts := &memArtifacts{}
	gen := &scriptedGenerator{responses: []string{"garbage one", "garbage two"}}
	svc := newTestPlanService(gen, artifacts)

	_, err := svc.GeneratePlan(context.Background(), primitive.NewObjectID(), testServiceProfile())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	require.Len(t, gen.prompts, 2)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, 2, genErr.Attempts)
	assert.NotEmpty(t, genErr.LastReason)

	// The last raw output is archived for diagnostics.
	require.Len(t, artifacts.puts, 1)
	for key, body := range artifacts.puts {
		assert.Equal(t, key, genErr.ArtifactKey)
		assert.Equal(t, "garbage two", string(body))
	}
}

func TestGeneratePlan_ClassifiesTimeout(t *testing.T) {
	timeoutErr := fmt.Errorf("%w: context deadline exceeded", llm.ErrTimeout)
	gen := &scriptedGenerator{errs: []error{timeoutErr, timeoutErr}}
	svc := newTestPlanService(gen, nil)

	_, err := svc.GeneratePlan(context.Background(), primitive.NewObjectID(), testServiceProfile())
	assert.ErrorIs(t, err, ErrGenerationTimeout)
}

func TestGeneratePlan_ClassifiesServiceError(t *testing.T) {
	svcErr := fmt.Errorf("%w: status 500", llm.ErrService)
	gen := &scriptedGenerator{errs: []error{svcErr, svcErr}}
	svc := newTestPlanService(gen, nil)

	_, err := svc.GeneratePlan(context.Background(), primitive.NewObjectID(), testServiceProfile())
	assert.ErrorIs(t, err, ErrGenerationService)
}

func TestGeneratePlan_UsesStoredProfile(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{validCompletion(t)}}

	userID := primitive.NewObjectID()
	userRepo := &fakeUserRepo{users: map[primitive.ObjectID]*domain.User{
		userID: {ID: userID, Name: "Test", Email: "t@example.com", Profile: testServiceProfile()},
	}}
	svc := NewPlanService(
		&fakeExerciseRepo{exercises: testCatalog()},
		userRepo,
		&memPlanRepo{},
		gen,
		nil,
		config.OpenAIConfig{Model: "test-model"},
		2,
	)

	plan, err := svc.GeneratePlan(context.Background(), userID, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, plan.TrainingDayCount())
}

func TestGeneratePlan_NoStoredProfile(t *testing.T) {
	gen := &scriptedGenerator{}
	userID := primitive.NewObjectID()
	userRepo := &fakeUserRepo{users: map[primitive.ObjectID]*domain.User{
		userID: {ID: userID, Name: "Test", Email: "t@example.com"},
	}}
	svc := NewPlanService(&fakeExerciseRepo{exercises: testCatalog()}, userRepo, &memPlanRepo{}, gen, nil, config.OpenAIConfig{}, 2)

	_, err := svc.GeneratePlan(context.Background(), userID, nil)
	assert.ErrorIs(t, err, ErrInvalidProfile)
}

func TestGeneratePlan_ArchivesAcceptedPlan(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{"not json", validCompletion(t)}}
	planRepo := &memPlanRepo{}
	svc := NewPlanService(
		&fakeExerciseRepo{exercises: testCatalog()},
		&fakeUserRepo{users: map[primitive.ObjectID]*domain.User{}},
		planRepo,
		gen,
		nil,
		config.OpenAIConfig{Model: "test-model"},
		2,
	)

	userID := primitive.NewObjectID()
	_, err := svc.GeneratePlan(context.Background(), userID, testServiceProfile())
	require.NoError(t, err)

	require.Len(t, planRepo.records, 1)
	record := planRepo.records[0]
	assert.Equal(t, userID, record.UserID)
	assert.Equal(t, "test-model", record.Model)
	assert.Equal(t, 2, record.Attempts, "accepted on the second attempt")
	assert.Equal(t, 3, record.Plan.TrainingDayCount())

	latest, err := svc.GetLatestPlan(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, record.ID, latest.ID)

	_, err = svc.GetLatestPlan(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrPlanNotFound)

	list, err := svc.ListPlans(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestGenerateSummary_ReturnsModelText(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{"  A concise summary of the athlete.  "}}
	svc := newTestPlanService(gen, nil)

	summary, err := svc.GenerateSummary(context.Background(), testServiceProfile())
	require.NoError(t, err)
	assert.Equal(t, "A concise summary of the athlete.", summary)

	// The prompt embeds the onboarding JSON.
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], `"exercise_frequency":3`)
}

func TestGenerateSummary_FallsBackOnServiceError(t *testing.T) {
	gen := &scriptedGenerator{errs: []error{llm.ErrService}}
	svc := newTestPlanService(gen, nil)

	summary, err := svc.GenerateSummary(context.Background(), testServiceProfile())
	require.NoError(t, err)
	assert.Contains(t, summary, "28-year-old female")
}

func TestGenerateSummary_InvalidProfile(t *testing.T) {
	svc := newTestPlanService(&scriptedGenerator{}, nil)

	_, err := svc.GenerateSummary(context.Background(), &domain.UserProfile{})
	assert.ErrorIs(t, err, ErrInvalidProfile)

	_, err = svc.GenerateSummary(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidProfile)
}

func TestGenerationError_Unwrap(t *testing.T) {
	err := &GenerationError{Cause: ErrGenerationFailed, Attempts: 2, LastReason: "bad output"}
	assert.True(t, errors.Is(err, ErrGenerationFailed))
	assert.Contains(t, err.Error(), "2 attempts")
	assert.True(t, strings.Contains(err.Error(), "bad output"))
}
