package service

import (
	"context"
	"testing"

	"github.com/mnk3936/Highway-metals/internal/dto"
	"github.com/mnk3936/Highway-metals/internal/model"
	"github.com/mnk3936/Highway-metals/internal/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ─── Stubs ───────────────────────────────────────────────────────────────────

type stubMaterialRepo struct {
	materials map[uuid.UUID]*model.RawMaterial
	saved     []model.RawMaterial
	deleted   []uuid.UUID
}

func newStubMaterialRepo(materials ...*model.RawMaterial) *stubMaterialRepo {
	s := &stubMaterialRepo{materials: map[uuid.UUID]*model.RawMaterial{}}
	for _, m := range materials {
		s.materials[m.ID] = m
	}
	return s
}

func (s *stubMaterialRepo) Create(_ context.Context, m *model.RawMaterial) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	s.materials[m.ID] = m
	return nil
}

func (s *stubMaterialRepo) FindByID(_ context.Context, id uuid.UUID) (*model.RawMaterial, error) {
	m, ok := s.materials[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m
	return &cp, nil
}

func (s *stubMaterialRepo) FindByName(_ context.Context, name string) (*model.RawMaterial, error) {
	for _, m := range s.materials {
		if m.Name == name {
			cp := *m
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubMaterialRepo) List(context.Context) ([]model.RawMaterial, error) {
	var out []model.RawMaterial
	for _, m := range s.materials {
		out = append(out, *m)
	}
	return out, nil
}

func (s *stubMaterialRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.materials[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.materials, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubMaterialRepo) SaveTx(_ *gorm.DB, m *model.RawMaterial) error {
	s.saved = append(s.saved, *m)
	s.materials[m.ID] = m
	return nil
}

func (s *stubMaterialRepo) Transaction(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type svcStubProductRepo struct {
	products map[uuid.UUID]*model.Product
	updates  map[uuid.UUID]decimal.Decimal
}

func newSvcStubProductRepo(products ...*model.Product) *svcStubProductRepo {
	s := &svcStubProductRepo{
		products: map[uuid.UUID]*model.Product{},
		updates:  map[uuid.UUID]decimal.Decimal{},
	}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *svcStubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.products[p.ID] = p
	return nil
}

func (s *svcStubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *svcStubProductRepo) List(context.Context, dto.ProductFilter) ([]model.Product, int64, error) {
	return nil, 0, nil
}

func (s *svcStubProductRepo) ListAll(context.Context) ([]model.Product, error) { return nil, nil }

func (s *svcStubProductRepo) Update(_ context.Context, p *model.Product) error {
	s.products[p.ID] = p
	return nil
}

func (s *svcStubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.products[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *svcStubProductRepo) CountByMaterialID(_ context.Context, materialID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range s.products {
		if p.RawMaterialID == materialID {
			n++
		}
	}
	return n, nil
}

func (s *svcStubProductRepo) FindByMaterialIDTx(_ *gorm.DB, materialID uuid.UUID) ([]model.Product, error) {
	var out []model.Product
	for _, p := range s.products {
		if p.RawMaterialID == materialID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *svcStubProductRepo) UpdatePriceTx(_ *gorm.DB, id uuid.UUID, price decimal.Decimal) error {
	s.updates[id] = price
	if p, ok := s.products[id]; ok {
		p.CurrentPrice = price
	}
	return nil
}

type svcStubHistoryRepo struct {
	appended []model.PriceHistory
}

func (s *svcStubHistoryRepo) AppendTx(_ *gorm.DB, h *model.PriceHistory) error {
	s.appended = append(s.appended, *h)
	return nil
}

func (s *svcStubHistoryRepo) List(context.Context, dto.HistoryFilter) ([]model.PriceHistory, int64, error) {
	return nil, 0, nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func strPtr(s string) *string { return &s }

func decPtr(s string) *decimal.Decimal { d := dec(s); return &d }

// ─── Tests ───────────────────────────────────────────────────────────────────

func newMaterialFixture() (*stubMaterialRepo, *svcStubProductRepo, *svcStubHistoryRepo, MaterialService, *model.RawMaterial, *model.Product) {
	material := &model.RawMaterial{ID: uuid.New(), Name: "Steel", CurrentPrice: dec("100")}
	prod := &model.Product{
		ID:            uuid.New(),
		Name:          "Steel Beam",
		RawMaterialID: material.ID,
		BasePrice:     dec("200"),
		Coefficient:   dec("0.5"),
		CurrentPrice:  dec("200"),
	}
	materials := newStubMaterialRepo(material)
	products := newSvcStubProductRepo(prod)
	history := &svcStubHistoryRepo{}
	propagator := pricing.NewPropagator(products, history)
	svc := NewMaterialService(materials, products, propagator, nil)
	return materials, products, history, svc, material, prod
}

func TestMaterialUpdatePropagatesPriceChange(t *testing.T) {
	_, products, history, svc, material, prod := newMaterialFixture()
	actorID := uuid.New()

	resp, err := svc.Update(context.Background(), material.ID,
		dto.UpdateMaterialRequest{CurrentPrice: decPtr("150")}, &actorID)
	require.NoError(t, err)

	assert.True(t, resp.Material.CurrentPrice.Equal(dec("150")))
	require.Len(t, resp.UpdatedProducts, 1)
	assert.True(t, resp.UpdatedProducts[0].NewPrice.Equal(dec("250")))
	assert.True(t, products.updates[prod.ID].Equal(dec("250")))

	require.Len(t, history.appended, 1)
	assert.True(t, history.appended[0].OldPrice.Equal(dec("100")))
	assert.True(t, history.appended[0].NewPrice.Equal(dec("150")))
	require.NotNil(t, history.appended[0].ChangedBy)
	assert.Equal(t, actorID, *history.appended[0].ChangedBy)
}

func TestMaterialUpdateSamePriceSkipsPropagation(t *testing.T) {
	_, products, history, svc, material, _ := newMaterialFixture()

	resp, err := svc.Update(context.Background(), material.ID,
		dto.UpdateMaterialRequest{CurrentPrice: decPtr("100")}, nil)
	require.NoError(t, err)

	assert.Empty(t, resp.UpdatedProducts)
	assert.Empty(t, products.updates, "no product writes without a price change")
	assert.Empty(t, history.appended, "no audit row without a price change")
}

func TestMaterialUpdateNameOnly(t *testing.T) {
	materials, _, history, svc, material, _ := newMaterialFixture()

	resp, err := svc.Update(context.Background(), material.ID,
		dto.UpdateMaterialRequest{Name: strPtr("Stainless Steel")}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Stainless Steel", resp.Material.Name)
	assert.True(t, resp.Material.CurrentPrice.Equal(dec("100")))
	require.Len(t, materials.saved, 1)
	assert.Empty(t, history.appended)
}

func TestMaterialUpdateUnknownID(t *testing.T) {
	_, _, _, svc, _, _ := newMaterialFixture()

	_, err := svc.Update(context.Background(), uuid.New(),
		dto.UpdateMaterialRequest{CurrentPrice: decPtr("5")}, nil)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMaterialDeleteRefusedWhileReferenced(t *testing.T) {
	materials, _, _, svc, material, _ := newMaterialFixture()

	err := svc.Delete(context.Background(), material.ID)
	assert.ErrorIs(t, err, ErrMaterialReferenced)
	assert.Empty(t, materials.deleted)
}

func TestMaterialDeleteUnreferenced(t *testing.T) {
	orphan := &model.RawMaterial{ID: uuid.New(), Name: "Copper", CurrentPrice: dec("40")}
	materials := newStubMaterialRepo(orphan)
	products := newSvcStubProductRepo()
	history := &svcStubHistoryRepo{}
	svc := NewMaterialService(materials, products, pricing.NewPropagator(products, history), nil)

	err := svc.Delete(context.Background(), orphan.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{orphan.ID}, materials.deleted)
}

func TestMaterialCreateRejectsDuplicateName(t *testing.T) {
	_, _, _, svc, _, _ := newMaterialFixture()

	_, err := svc.Create(context.Background(), dto.CreateMaterialRequest{
		Name:         "Steel",
		CurrentPrice: dec("10"),
	})
	assert.ErrorIs(t, err, ErrDuplicateMaterial)
}

func TestMaterialCreate(t *testing.T) {
	materials := newStubMaterialRepo()
	products := newSvcStubProductRepo()
	history := &svcStubHistoryRepo{}
	svc := NewMaterialService(materials, products, pricing.NewPropagator(products, history), nil)

	resp, err := svc.Create(context.Background(), dto.CreateMaterialRequest{
		Name:         "Aluminium",
		CurrentPrice: dec("75.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Aluminium", resp.Name)
	assert.True(t, resp.CurrentPrice.Equal(dec("75.50")))
	assert.NotEmpty(t, resp.ID)
}
