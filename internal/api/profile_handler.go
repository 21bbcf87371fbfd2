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

// ProfileHandler holds the profile service dependency.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

type UpsertProfileRequest struct {
	DateOfBirth       *time.Time `json:"dateOfBirth"`
	Gender            string     `json:"gender"`
	HeightCm          float64    `json:"heightCm" binding:"omitempty,gt=0"`
	FitnessLevel      string     `json:"fitnessLevel" binding:"omitempty,oneof=beginner intermediate advanced"`
	MedicalConditions string     `json:"medicalConditions"`
	Injuries          string     `json:"injuries"`
}

type ProfileResponse struct {
	DateOfBirth       *time.Time `json:"dateOfBirth,omitempty"`
	Gender            string     `json:"gender,omitempty"`
	HeightCm          float64    `json:"heightCm,omitempty"`
	FitnessLevel      string     `json:"fitnessLevel,omitempty"`
	MedicalConditions string     `json:"medicalConditions,omitempty"`
	Injuries          string     `json:"injuries,omitempty"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	profile, err := h.profileService.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not load profile")
		}
		return
	}
	c.JSON(http.StatusOK, MapProfileToResponse(profile))
}

func (h *ProfileHandler) UpsertProfile(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	profile, err := h.profileService.Upsert(c.Request.Context(), userID, service.UpsertProfileInput{
		DateOfBirth:       req.DateOfBirth,
		Gender:            req.Gender,
		HeightCm:          req.HeightCm,
		FitnessLevel:      req.FitnessLevel,
		MedicalConditions: req.MedicalConditions,
		Injuries:          req.Injuries,
	})
	if err != nil {
		if errors.Is(err, service.ErrProfileInvalid) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not save profile")
		}
		return
	}
	c.JSON(http.StatusOK, MapProfileToResponse(profile))
}

// MapProfileToResponse converts a domain Profile to its DTO.
func MapProfileToResponse(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		DateOfBirth:       p.DateOfBirth,
		Gender:            p.Gender,
		HeightCm:          p.HeightCm,
		FitnessLevel:      p.FitnessLevel,
		MedicalConditions: p.MedicalConditions,
		Injuries:          p.Injuries,
		UpdatedAt:         p.UpdatedAt,
	}
}
