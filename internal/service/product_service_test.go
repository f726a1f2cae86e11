package service

import (
	"context"
	"testing"

	"github.com/mnk3936/Highway-metals/internal/dto"
	"github.com/mnk3936/Highway-metals/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestProductCreateDefaultsCoefficientToOne(t *testing.T) {
	material := &model.RawMaterial{ID: uuid.New(), Name: "Steel", CurrentPrice: dec("100")}
	materials := newStubMaterialRepo(material)
	products := newSvcStubProductRepo()
	svc := NewProductService(products, materials)

	resp, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name:          "Beam",
		RawMaterialID: material.ID.String(),
		BasePrice:     dec("200"),
	})
	require.NoError(t, err)

	assert.True(t, resp.Coefficient.Equal(dec("1")))
	assert.True(t, resp.CurrentPrice.Equal(dec("200")), "initial current price equals base price")
	assert.Equal(t, material.ID.String(), resp.RawMaterialID)
	assert.Equal(t, "Steel", resp.RawMaterialName)
}

func TestProductCreateUnknownMaterial(t *testing.T) {
	materials := newStubMaterialRepo()
	products := newSvcStubProductRepo()
	svc := NewProductService(products, materials)

	_, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name:          "Beam",
		RawMaterialID: uuid.NewString(),
		BasePrice:     dec("200"),
	})
	assert.ErrorIs(t, err, ErrUnknownMaterial)
}

func TestProductUpdateLeavesBasePriceAndMaterial(t *testing.T) {
	material := &model.RawMaterial{ID: uuid.New(), Name: "Steel", CurrentPrice: dec("100")}
	prod := &model.Product{
		ID:            uuid.New(),
		Name:          "Beam",
		RawMaterialID: material.ID,
		BasePrice:     dec("200"),
		Coefficient:   dec("1"),
		CurrentPrice:  dec("200"),
	}
	materials := newStubMaterialRepo(material)
	products := newSvcStubProductRepo(prod)
	svc := NewProductService(products, materials)

	resp, err := svc.Update(context.Background(), prod.ID, dto.UpdateProductRequest{
		Name:        strPtr("Heavy Beam"),
		Coefficient: decPtr("0.8"),
		Category:    strPtr("structural"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Heavy Beam", resp.Name)
	assert.True(t, resp.Coefficient.Equal(dec("0.8")))
	require.NotNil(t, resp.Category)
	assert.Equal(t, "structural", *resp.Category)
	assert.True(t, resp.BasePrice.Equal(dec("200")), "base price is immutable")
	assert.Equal(t, material.ID.String(), resp.RawMaterialID, "material link is immutable")
}

func TestProductDeleteUnknownID(t *testing.T) {
	svc := NewProductService(newSvcStubProductRepo(), newStubMaterialRepo())
	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
