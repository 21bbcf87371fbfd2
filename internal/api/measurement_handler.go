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

// MeasurementHandler holds the measurement service dependency.
type MeasurementHandler struct {
	measurementService service.MeasurementService
}

// NewMeasurementHandler creates a new MeasurementHandler.
func NewMeasurementHandler(measurementService service.MeasurementService) *MeasurementHandler {
	return &MeasurementHandler{measurementService: measurementService}
}

type RecordMeasurementRequest struct {
	Weight            float64    `json:"weight" binding:"required,gt=0"`
	BodyFatPercentage *float64   `json:"bodyFatPercentage" binding:"omitempty,min=0,max=100"`
	MuscleMass        *float64   `json:"muscleMass" binding:"omitempty,gt=0"`
	MeasuredAt        *time.Time `json:"measuredAt"`
}

type MeasurementResponse struct {
	ID                string    `json:"id"`
	Weight            float64   `json:"weight"`
	BodyFatPercentage *float64  `json:"bodyFatPercentage,omitempty"`
	MuscleMass        *float64  `json:"muscleMass,omitempty"`
	MeasuredAt        time.Time `json:"measuredAt"`
}

func (h *MeasurementHandler) RecordMeasurement(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	var req RecordMeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	input := service.RecordMeasurementInput{
		Weight:            req.Weight,
		BodyFatPercentage: req.BodyFatPercentage,
		MuscleMass:        req.MuscleMass,
	}
	if req.MeasuredAt != nil {
		input.MeasuredAt = *req.MeasuredAt
	}

	m, err := h.measurementService.Record(c.Request.Context(), userID, input)
	if err != nil {
		if errors.Is(err, service.ErrMeasurementInvalid) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not record measurement")
		}
		return
	}

	c.JSON(http.StatusCreated, MapMeasurementToResponse(m))
}

func (h *MeasurementHandler) LatestMeasurement(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	m, err := h.measurementService.Latest(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoMeasurements) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not load measurement")
		}
		return
	}
	c.JSON(http.StatusOK, MapMeasurementToResponse(m))
}

// MapMeasurementToResponse converts a domain Measurement to its DTO.
func MapMeasurementToResponse(m *domain.Measurement) MeasurementResponse {
	return MeasurementResponse{
		ID:                m.ID.Hex(),
		Weight:            m.Weight,
		BodyFatPercentage: m.BodyFatPercentage,
		MuscleMass:        m.MuscleMass,
		MeasuredAt:        m.MeasuredAt,
	}
}
