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

// TemplateHandler holds the template service dependency.
type TemplateHandler struct {
	templateService service.TemplateService
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(templateService service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

type CreateTemplateRequest struct {
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	Intensity   string            `json:"intensity" binding:"omitempty,oneof=low moderate high"`
	Exercises   []domain.Exercise `json:"exercises" binding:"required,min=1"`
}

type TemplateResponse struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Description       string            `json:"description,omitempty"`
	Intensity         string            `json:"intensity"`
	Exercises         []domain.Exercise `json:"exercises"`
	EstimatedDuration int               `json:"estimatedDuration"`
	MuscleGroups      []string          `json:"muscleGroups,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
}

func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	tpl, err := h.templateService.Create(c.Request.Context(), userID, service.CreateTemplateInput{
		Name:        req.Name,
		Description: req.Description,
		Intensity:   req.Intensity,
		Exercises:   req.Exercises,
	})
	if err != nil {
		if errors.Is(err, service.ErrTemplateInvalid) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not create template")
		}
		return
	}

	c.JSON(http.StatusCreated, MapTemplateToResponse(tpl))
}

func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	templates, err := h.templateService.List(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not list templates")
		return
	}

	resp := make([]TemplateResponse, len(templates))
	for i := range templates {
		resp[i] = MapTemplateToResponse(&templates[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	templateID, ok := parseIDParam(c, "templateId")
	if !ok {
		return
	}

	tpl, err := h.templateService.Get(c.Request.Context(), userID, templateID)
	if err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not load template")
		}
		return
	}
	c.JSON(http.StatusOK, MapTemplateToResponse(tpl))
}

func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	templateID, ok := parseIDParam(c, "templateId")
	if !ok {
		return
	}

	if err := h.templateService.Delete(c.Request.Context(), userID, templateID); err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not delete template")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// MapTemplateToResponse converts a domain WorkoutTemplate to its DTO.
func MapTemplateToResponse(tpl *domain.WorkoutTemplate) TemplateResponse {
	return TemplateResponse{
		ID:                tpl.ID.Hex(),
		Name:              tpl.Name,
		Description:       tpl.Description,
		Intensity:         string(tpl.Intensity),
		Exercises:         tpl.Exercises,
		EstimatedDuration: tpl.EstimatedDuration(),
		MuscleGroups:      tpl.MuscleGroups(),
		CreatedAt:         tpl.CreatedAt,
	}
}
