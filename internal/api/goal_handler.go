package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"fitpulse/fitness-tracker/internal/domain"
	"fitpulse/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// GoalHandler holds the goal service dependency.
type GoalHandler struct {
	goalService service.GoalService
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// --- Request/Response Structs ---

type CreateGoalRequest struct {
	Title        string     `json:"title" binding:"required"`
	Description  string     `json:"description"`
	InitialValue float64    `json:"initialValue"`
	TargetValue  float64    `json:"targetValue"`
	Unit         string     `json:"unit" binding:"required"`
	TargetDate   *time.Time `json:"targetDate"`
}

type UpdateGoalRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	TargetDate  *time.Time         `json:"targetDate"`
	Status      *domain.GoalStatus `json:"status" binding:"omitempty,oneof=active achieved archived"`
}

type UpdateGoalProgressRequest struct {
	CurrentValue float64 `json:"currentValue" binding:"required"`
}

type GoalResponse struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	InitialValue float64    `json:"initialValue"`
	CurrentValue float64    `json:"currentValue"`
	TargetValue  float64    `json:"targetValue"`
	Unit         string     `json:"unit"`
	Direction    string     `json:"direction"`
	TargetDate   *time.Time `json:"targetDate,omitempty"`
	Achieved     bool       `json:"achieved"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// --- Handler Methods ---

func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	goal, err := h.goalService.Create(c.Request.Context(), userID, service.CreateGoalInput{
		Title:        req.Title,
		Description:  req.Description,
		InitialValue: req.InitialValue,
		TargetValue:  req.TargetValue,
		Unit:         req.Unit,
		TargetDate:   req.TargetDate,
	})
	if err != nil {
		if errors.Is(err, service.ErrGoalInvalid) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not create goal")
		}
		return
	}

	c.JSON(http.StatusCreated, MapGoalToResponse(goal))
}

func (h *GoalHandler) ListGoals(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	goals, err := h.goalService.List(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not list goals")
		return
	}

	resp := make([]GoalResponse, len(goals))
	for i := range goals {
		resp[i] = MapGoalToResponse(&goals[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *GoalHandler) GetGoal(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	goalID, ok := parseIDParam(c, "goalId")
	if !ok {
		return
	}

	goal, err := h.goalService.Get(c.Request.Context(), userID, goalID)
	if err != nil {
		handleGoalError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapGoalToResponse(goal))
}

func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	goalID, ok := parseIDParam(c, "goalId")
	if !ok {
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	goal, err := h.goalService.Update(c.Request.Context(), userID, goalID, service.UpdateGoalInput{
		Title:       req.Title,
		Description: req.Description,
		TargetDate:  req.TargetDate,
		Status:      req.Status,
	})
	if err != nil {
		handleGoalError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapGoalToResponse(goal))
}

func (h *GoalHandler) UpdateGoalProgress(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	goalID, ok := parseIDParam(c, "goalId")
	if !ok {
		return
	}

	var req UpdateGoalProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	goal, err := h.goalService.UpdateProgress(c.Request.Context(), userID, goalID, req.CurrentValue)
	if err != nil {
		handleGoalError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapGoalToResponse(goal))
}

func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	goalID, ok := parseIDParam(c, "goalId")
	if !ok {
		return
	}

	if err := h.goalService.Delete(c.Request.Context(), userID, goalID); err != nil {
		handleGoalError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func handleGoalError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGoalNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrGoalInvalid):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// MapGoalToResponse converts a domain Goal to its DTO.
func MapGoalToResponse(goal *domain.Goal) GoalResponse {
	return GoalResponse{
		ID:           goal.ID.Hex(),
		Title:        goal.Title,
		Description:  goal.Description,
		InitialValue: goal.InitialValue,
		CurrentValue: goal.CurrentValue,
		TargetValue:  goal.TargetValue,
		Unit:         goal.Unit,
		Direction:    string(goal.Direction()),
		TargetDate:   goal.TargetDate,
		Achieved:     goal.Achieved,
		Status:       string(goal.Status),
		CreatedAt:    goal.CreatedAt,
	}
}
