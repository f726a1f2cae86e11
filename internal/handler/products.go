package handler

import (
	"errors"
	"net/http"

	"github.com/mnk3936/Highway-metals/internal/apierror"
	"github.com/mnk3936/Highway-metals/internal/dto"
	"github.com/mnk3936/Highway-metals/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProductHandler struct {
	svc service.ProductService
}

func NewProductHandler(svc service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// List godoc
// @Summary  List products with optional filters and pagination
// @Tags     products
// @Produce  json
// @Param    name        query string false "name substring"
// @Param    category    query string false "exact category"
// @Param    material_id query string false "raw material id"
// @Param    page        query int    false "page, starts at 1"
// @Param    limit       query int    false "page size, max 200"
// @Success  200 {object} dto.ProductListResponse
// @Router   /api/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var filter dto.ProductFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("product not found"))
			return
		}
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Create godoc
// @Summary  Create a product linked to a raw material
// @Tags     products
// @Accept   json
// @Produce  json
// @Param    body body dto.CreateProductRequest true "product"
// @Success  201 {object} dto.ProductResponse
// @Failure  400 {object} apierror.APIError
// @Router   /api/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	p, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrUnknownMaterial) {
			c.JSON(http.StatusBadRequest, apierror.New("raw material not found"))
			return
		}
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// Update changes name, coefficient, or category. Base price and material
// link are immutable.
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	p, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("product not found"))
			return
		}
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("product not found"))
			return
		}
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
