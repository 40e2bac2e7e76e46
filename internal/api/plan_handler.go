package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Pauljlane12/fitivabackend/internal/domain"
	"github.com/Pauljlane12/fitivabackend/internal/service"

	"github.com/gin-gonic/gin"
)

// PlanHandler holds the plan generation service dependency.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- Request/Response Structs ---

// GeneratePlanRequest optionally carries an inline profile. When omitted the
// profile stored on the account is used.
type GeneratePlanRequest struct {
	Profile *domain.UserProfile `json:"profile"`
}

type SummaryRequest struct {
	Profile *domain.UserProfile `json:"profile" binding:"required"`
}

type SummaryResponse struct {
	Summary string `json:"summary"`
}

// --- Handler Methods ---

// GeneratePlan runs the full generation pipeline and returns the validated
// weekly plan.
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req GeneratePlanRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
			return
		}
	}

	plan, err := h.planService.GeneratePlan(c.Request.Context(), userID, req.Profile)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidProfile):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrEmptyCatalogFilter):
			abortWithError(c, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, service.ErrGenerationTimeout):
			abortWithError(c, http.StatusGatewayTimeout, err.Error())
		case errors.Is(err, service.ErrGenerationService),
			errors.Is(err, service.ErrGenerationFailed):
			abortWithError(c, http.StatusBadGateway, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Plan generation failed unexpectedly")
		}
		return
	}

	c.JSON(http.StatusOK, plan)
}

// GetLatestPlan returns the most recently generated plan for the account.
func (h *PlanHandler) GetLatestPlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	record, err := h.planService.GetLatestPlan(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve plan")
		}
		return
	}

	c.JSON(http.StatusOK, record)
}

// ListPlans returns the account's generation history, newest first.
func (h *PlanHandler) ListPlans(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	records, err := h.planService.ListPlans(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list plans")
		return
	}
	if records == nil {
		records = []domain.PlanRecord{} // JSON [] rather than null
	}

	c.JSON(http.StatusOK, records)
}

// GenerateSummary returns the short natural-language fitness summary for a
// profile, used by the onboarding review screen.
func (h *PlanHandler) GenerateSummary(c *gin.Context) {
	var req SummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	summary, err := h.planService.GenerateSummary(c.Request.Context(), req.Profile)
	if err != nil {
		if errors.Is(err, service.ErrInvalidProfile) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Summary generation failed")
		}
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{Summary: summary})
}
