package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"fitpulse/fitness-tracker/internal/domain"
	"fitpulse/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanHandler holds the plan service dependency.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- Response Structs ---

type PlanResponse struct {
	ID                 string     `json:"id"`
	GoalID             string     `json:"goalId"`
	Name               string     `json:"name"`
	Description        string     `json:"description,omitempty"`
	GoalType           string     `json:"goalType"`
	WeeksDuration      int        `json:"weeksDuration"`
	WorkoutsPerWeek    int        `json:"workoutsPerWeek"`
	AvgWorkoutDuration int        `json:"avgWorkoutDuration,omitempty"`
	Status             string     `json:"status"`
	StartedAt          *time.Time `json:"startedAt,omitempty"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
}

type SessionResponse struct {
	ID                string            `json:"id"`
	WeekNumber        int               `json:"weekNumber"`
	DayOfWeek         int               `json:"dayOfWeek"`
	DayName           string            `json:"dayName"`
	WorkoutName       string            `json:"workoutName"`
	WorkoutType       string            `json:"workoutType"`
	Exercises         []domain.Exercise `json:"exercises,omitempty"`
	EstimatedDuration int               `json:"estimatedDuration,omitempty"`
	IntensityLevel    string            `json:"intensityLevel,omitempty"`
	MuscleGroups      []string          `json:"muscleGroups,omitempty"`
	Notes             string            `json:"notes,omitempty"`
	Status            string            `json:"status"`
}

type PlanWithSessionsResponse struct {
	Plan     PlanResponse      `json:"plan"`
	Sessions []SessionResponse `json:"sessions"`
}

type CurrentWeekResponse struct {
	WeekNumber int               `json:"weekNumber"`
	Sessions   []SessionResponse `json:"sessions"`
}

// --- Handler Methods ---

func (h *PlanHandler) ListPlans(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	plans, err := h.planService.List(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not list plans")
		return
	}

	resp := make([]PlanResponse, len(plans))
	for i := range plans {
		resp[i] = MapPlanToResponse(&plans[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	planID, ok := parseIDParam(c, "planId")
	if !ok {
		return
	}

	result, err := h.planService.Get(c.Request.Context(), userID, planID)
	if err != nil {
		handlePlanError(c, err)
		return
	}

	c.JSON(http.StatusOK, PlanWithSessionsResponse{
		Plan:     MapPlanToResponse(result.Plan),
		Sessions: mapSessions(result.Sessions),
	})
}

func (h *PlanHandler) ActivatePlan(c *gin.Context) {
	h.transition(c, h.planService.Activate)
}

func (h *PlanHandler) CompletePlan(c *gin.Context) {
	h.transition(c, h.planService.Complete)
}

func (h *PlanHandler) ArchivePlan(c *gin.Context) {
	h.transition(c, h.planService.Archive)
}

func (h *PlanHandler) DeletePlan(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	planID, ok := parseIDParam(c, "planId")
	if !ok {
		return
	}

	if err := h.planService.Delete(c.Request.Context(), userID, planID); err != nil {
		handlePlanError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PlanHandler) CurrentWeek(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	week, sessions, err := h.planService.CurrentWeek(c.Request.Context(), userID)
	if err != nil {
		handlePlanError(c, err)
		return
	}

	c.JSON(http.StatusOK, CurrentWeekResponse{
		WeekNumber: week,
		Sessions:   mapSessions(sessions),
	})
}

// transition runs one of the status-changing plan operations.
func (h *PlanHandler) transition(c *gin.Context, op func(ctx context.Context, userID, planID primitive.ObjectID) (*domain.WorkoutPlan, error)) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	planID, ok := parseIDParam(c, "planId")
	if !ok {
		return
	}

	plan, err := op(c.Request.Context(), userID, planID)
	if err != nil {
		handlePlanError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

func handlePlanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlanNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrActivePlanExists):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidPlanTransition), errors.Is(err, service.ErrPlanNotStarted):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// MapPlanToResponse converts a domain WorkoutPlan to its DTO.
func MapPlanToResponse(plan *domain.WorkoutPlan) PlanResponse {
	return PlanResponse{
		ID:                 plan.ID.Hex(),
		GoalID:             plan.GoalID.Hex(),
		Name:               plan.Name,
		Description:        plan.Description,
		GoalType:           plan.GoalType,
		WeeksDuration:      plan.WeeksDuration,
		WorkoutsPerWeek:    plan.WorkoutsPerWeek,
		AvgWorkoutDuration: plan.AvgWorkoutDuration,
		Status:             string(plan.Status),
		StartedAt:          plan.StartedAt,
		CompletedAt:        plan.CompletedAt,
		CreatedAt:          plan.CreatedAt,
	}
}

func mapSessions(sessions []domain.PlanSession) []SessionResponse {
	resp := make([]SessionResponse, len(sessions))
	for i, s := range sessions {
		resp[i] = SessionResponse{
			ID:                s.ID.Hex(),
			WeekNumber:        s.WeekNumber,
			DayOfWeek:         s.DayOfWeek,
			DayName:           s.DayName,
			WorkoutName:       s.WorkoutName,
			WorkoutType:       string(s.WorkoutType),
			Exercises:         s.Exercises,
			EstimatedDuration: s.EstimatedDuration,
			IntensityLevel:    s.IntensityLevel,
			MuscleGroups:      s.MuscleGroups,
			Notes:             s.Notes,
			Status:            string(s.Status),
		}
	}
	return resp
}
