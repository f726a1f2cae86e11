package handler

import (
	"path/filepath"

	"github.com/mnk3936/Highway-metals/internal/infra"
	"github.com/mnk3936/Highway-metals/internal/repository"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	products    repository.ProductRepository
	storagePath string
}

func NewReportHandler(products repository.ProductRepository, storagePath string) *ReportHandler {
	return &ReportHandler{products: products, storagePath: storagePath}
}

// PriceList godoc
// @Summary  Download the current price list as a PDF
// @Tags     reports
// @Produce  application/pdf
// @Success  200 {file} file
// @Router   /api/reports/price-list [get]
func (h *ReportHandler) PriceList(c *gin.Context) {
	products, err := h.products.ListAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	path, err := infra.GeneratePriceListPDF(products, h.storagePath)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
