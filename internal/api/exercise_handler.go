package api

import (
	"errors"
	"net/http"

	"github.com/Pauljlane12/fitivabackend/internal/repository"
	"github.com/Pauljlane12/fitivabackend/internal/service"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// ListExercises returns the approved catalog, optionally narrowed by
// muscle_group and equipment query parameters (repeatable).
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	filter := repository.ExerciseFilter{
		MuscleGroups: c.QueryArray("muscle_group"),
		Equipment:    c.QueryArray("equipment"),
	}

	exercises, err := h.exerciseService.ListExercises(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list exercises")
		return
	}

	c.JSON(http.StatusOK, exercises)
}

// GetExercise returns a single catalog entry by name.
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	exercise, err := h.exerciseService.GetExerciseByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load exercise")
		}
		return
	}

	c.JSON(http.StatusOK, exercise)
}
