package handler

import (
	"errors"
	"net/http"

	"github.com/mnk3936/Highway-metals/internal/apierror"
	"github.com/mnk3936/Highway-metals/internal/dto"
	"github.com/mnk3936/Highway-metals/internal/middleware"
	"github.com/mnk3936/Highway-metals/internal/pricing"
	"github.com/mnk3936/Highway-metals/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MaterialHandler struct {
	svc service.MaterialService
}

func NewMaterialHandler(svc service.MaterialService) *MaterialHandler {
	return &MaterialHandler{svc: svc}
}

// List godoc
// @Summary  List raw materials
// @Tags     raw-materials
// @Produce  json
// @Success  200 {array} dto.MaterialResponse
// @Router   /api/raw-materials [get]
func (h *MaterialHandler) List(c *gin.Context) {
	materials, err := h.svc.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, materials)
}

func (h *MaterialHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	m, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("raw material not found"))
			return
		}
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// Create godoc
// @Summary  Create a raw material
// @Tags     raw-materials
// @Accept   json
// @Produce  json
// @Param    body body dto.CreateMaterialRequest true "material"
// @Success  201 {object} dto.MaterialResponse
// @Failure  400 {object} apierror.APIError
// @Router   /api/raw-materials [post]
func (h *MaterialHandler) Create(c *gin.Context) {
	var req dto.CreateMaterialRequest
	if !bindAndValidate(c, &req) {
		return
	}
	m, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateMaterial) {
			c.JSON(http.StatusBadRequest, apierror.New("raw material with that name already exists"))
			return
		}
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// Update godoc
// @Summary  Update a raw material; a price change reprices dependent products
// @Tags     raw-materials
// @Accept   json
// @Produce  json
// @Param    id   path string true "material id"
// @Param    body body dto.UpdateMaterialRequest true "changes"
// @Success  200 {object} dto.MaterialUpdateResponse
// @Failure  400 {object} apierror.APIError
// @Failure  404 {object} apierror.APIError
// @Router   /api/raw-materials/{id} [put]
func (h *MaterialHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	var req dto.UpdateMaterialRequest
	if !bindAndValidate(c, &req) {
		return
	}

	var actorID *uuid.UUID
	if auth := middleware.GetAuth(c); auth != nil {
		actorID = &auth.UserID
	}

	resp, err := h.svc.Update(c.Request.Context(), id, req, actorID)
	if err != nil {
		var derr *pricing.DomainError
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, apierror.New("raw material not found"))
		case errors.As(err, &derr):
			c.JSON(http.StatusBadRequest, apierror.New(derr.Reason))
		default:
			_ = c.Error(err)
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete refuses to remove a material that products still depend on.
func (h *MaterialHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMaterialReferenced):
			c.JSON(http.StatusConflict, apierror.New("raw material is referenced by existing products"))
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, apierror.New("raw material not found"))
		default:
			_ = c.Error(err)
		}
		return
	}
	c.Status(http.StatusNoContent)
}
