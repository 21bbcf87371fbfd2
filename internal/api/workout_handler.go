package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"fitpulse/fitness-tracker/internal/domain"
	"fitpulse/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutHandler holds the workout service dependency.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

type LogWorkoutRequest struct {
	Name            string            `json:"name" binding:"required"`
	PerformedAt     *time.Time        `json:"performedAt"`
	DurationMinutes int               `json:"durationMinutes" binding:"omitempty,min=1"`
	Exercises       []domain.Exercise `json:"exercises"`
	PlanSessionID   *string           `json:"planSessionId"`
	Notes           string            `json:"notes"`
}

type WorkoutResponse struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	PerformedAt     time.Time         `json:"performedAt"`
	DurationMinutes int               `json:"durationMinutes,omitempty"`
	Exercises       []domain.Exercise `json:"exercises,omitempty"`
	PlanSessionID   *string           `json:"planSessionId,omitempty"`
	Notes           string            `json:"notes,omitempty"`
}

func (h *WorkoutHandler) LogWorkout(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	var req LogWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	input := service.LogWorkoutInput{
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		Exercises:       req.Exercises,
		Notes:           req.Notes,
	}
	if req.PerformedAt != nil {
		input.PerformedAt = *req.PerformedAt
	}
	if req.PlanSessionID != nil {
		sessionID, err := primitive.ObjectIDFromHex(*req.PlanSessionID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid planSessionId")
			return
		}
		input.PlanSessionID = &sessionID
	}

	workout, err := h.workoutService.Log(c.Request.Context(), userID, input)
	if err != nil {
		if errors.Is(err, service.ErrWorkoutInvalid) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not log workout")
		}
		return
	}

	c.JSON(http.StatusCreated, MapWorkoutToResponse(workout))
}

// ListWorkouts returns the user's recent workouts. The optional ?days= query
// widens or narrows the trailing window.
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	days := 0
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			abortWithError(c, http.StatusBadRequest, "Invalid days parameter")
			return
		}
		days = parsed
	}

	workouts, err := h.workoutService.ListRecent(c.Request.Context(), userID, days)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not list workouts")
		return
	}

	resp := make([]WorkoutResponse, len(workouts))
	for i := range workouts {
		resp[i] = MapWorkoutToResponse(&workouts[i])
	}
	c.JSON(http.StatusOK, resp)
}

// MapWorkoutToResponse converts a domain Workout to its DTO.
func MapWorkoutToResponse(w *domain.Workout) WorkoutResponse {
	resp := WorkoutResponse{
		ID:              w.ID.Hex(),
		Name:            w.Name,
		PerformedAt:     w.PerformedAt,
		DurationMinutes: w.DurationMinutes,
		Exercises:       w.Exercises,
		Notes:           w.Notes,
	}
	if w.PlanSessionID != nil {
		id := w.PlanSessionID.Hex()
		resp.PlanSessionID = &id
	}
	return resp
}
