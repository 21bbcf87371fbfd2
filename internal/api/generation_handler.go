package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"fitpulse/fitness-tracker/internal/domain"
	"fitpulse/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GenerationHandler exposes the asynchronous plan-generation job API.
type GenerationHandler struct {
	generationService service.GenerationService
}

// NewGenerationHandler creates a new GenerationHandler.
func NewGenerationHandler(generationService service.GenerationService) *GenerationHandler {
	return &GenerationHandler{generationService: generationService}
}

// --- Request/Response Structs ---

type GenerationRequestBody struct {
	GoalID            string     `json:"goalId" binding:"required"`
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	WeeksDuration     int        `json:"weeksDuration" binding:"required,min=1,max=12"`
	WorkoutsPerWeek   int        `json:"workoutsPerWeek" binding:"omitempty,min=1,max=7"`
	AvgDuration       int        `json:"avgDuration" binding:"omitempty,min=15,max=180"`
	StartDate         *time.Time `json:"startDate"`
	PreferredRestDays []int      `json:"preferredRestDays"`
}

// GenerationJobResponse is the polling view of a job. PlanID appears only on
// completion, ErrorMessage only on failure.
type GenerationJobResponse struct {
	JobID        string    `json:"jobId"`
	Status       string    `json:"status"`
	PlanID       *string   `json:"planId,omitempty"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// --- Handler Methods ---

// RequestGeneration starts an asynchronous generation job and returns 202
// with the job id as the polling handle. A goal with an open plan yields 409
// carrying the existing plan's id.
func (h *GenerationHandler) RequestGeneration(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	var req GenerationRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	goalID, err := primitive.ObjectIDFromHex(req.GoalID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid goalId")
		return
	}

	job, err := h.generationService.RequestGeneration(c.Request.Context(), userID, domain.GenerationRequest{
		GoalID:            goalID,
		Name:              req.Name,
		Description:       req.Description,
		WeeksDuration:     req.WeeksDuration,
		WorkoutsPerWeek:   req.WorkoutsPerWeek,
		AvgDuration:       req.AvgDuration,
		StartDate:         req.StartDate,
		PreferredRestDays: req.PreferredRestDays,
	})
	if err != nil {
		var conflict *service.PlanConflictError
		switch {
		case errors.As(err, &conflict):
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error":          conflict.Error(),
				"existingPlanId": conflict.ExistingPlanID.Hex(),
			})
		case errors.Is(err, service.ErrGenerationInvalid):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrGoalNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not start plan generation")
		}
		return
	}

	c.JSON(http.StatusAccepted, MapJobToResponse(job))
}

// GetJob returns the current state of a generation job.
func (h *GenerationHandler) GetJob(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(c, "jobId")
	if !ok {
		return
	}

	job, err := h.generationService.GetJob(c.Request.Context(), userID, jobID)
	if err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not load generation job")
		}
		return
	}

	c.JSON(http.StatusOK, MapJobToResponse(job))
}

// MapJobToResponse converts a domain GenerationJob to its DTO.
func MapJobToResponse(job *domain.GenerationJob) GenerationJobResponse {
	resp := GenerationJobResponse{
		JobID:        job.ID.Hex(),
		Status:       string(job.Status),
		ErrorMessage: job.ErrorMessage,
		CreatedAt:    job.CreatedAt,
		UpdatedAt:    job.UpdatedAt,
	}
	if job.PlanID != nil {
		planID := job.PlanID.Hex()
		resp.PlanID = &planID
	}
	return resp
}
