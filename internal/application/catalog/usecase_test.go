package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Despachos-api/internal/application/catalog"
	"github.com/jhoicas/Despachos-api/internal/application/dto"
	"github.com/jhoicas/Despachos-api/internal/domain"
	"github.com/jhoicas/Despachos-api/internal/domain/entity"
)

type catalogMock struct{ mock.Mock }

func (m *catalogMock) GetByGTINs(ctx context.Context, gtins []string) (map[string]*entity.Product, error) {
	args := m.Called(ctx, gtins)
	out, _ := args.Get(0).(map[string]*entity.Product)
	return out, args.Error(1)
}

func (m *catalogMock) Create(ctx context.Context, p *entity.Product) error {
	args := m.Called(ctx, p)
	if args.Error(0) == nil {
		p.ID = 42
	}
	return args.Error(0)
}

func (m *catalogMock) Set(ctx context.Context, rec entity.StockRecord) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *catalogMock) Invalidate(ctx context.Context, gtins ...string) error {
	return m.Called(ctx, gtins).Error(0)
}

func newUseCase() (*catalog.UseCase, *catalogMock) {
	m := &catalogMock{}
	return catalog.NewUseCase(m, m, m, m, nil), m
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateProduct
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProduct_NormalizaGTINEInvalidaCache(t *testing.T) {
	uc, m := newUseCase()
	m.On("Create", mock.Anything, mock.MatchedBy(func(p *entity.Product) bool {
		return p.GTIN == "4006381333931" && p.Name == "Cemento" && p.UnitWeightGrams == 50000
	})).Return(nil).Once()
	m.On("Invalidate", mock.Anything, []string{"4006381333931"}).Return(nil).Once()

	out, err := uc.CreateProduct(context.Background(), dto.CreateProductRequest{
		GTIN: " 4006-381-33393-1 ", Name: " Cemento ", UnitWeightGrams: 50000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), out.ID)
	assert.Equal(t, "4006381333931", out.GTIN)
	m.AssertExpectations(t)
}

func TestCreateProduct_GTINConDigitoDeControlInvalido(t *testing.T) {
	uc, m := newUseCase()
	_, err := uc.CreateProduct(context.Background(), dto.CreateProductRequest{GTIN: "4006381333932", Name: "X"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	m.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateProduct_PesoNegativo(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.CreateProduct(context.Background(), dto.CreateProductRequest{GTIN: "96385074", Name: "X", UnitWeightGrams: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateProduct_Duplicado(t *testing.T) {
	uc, m := newUseCase()
	m.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicate).Once()

	_, err := uc.CreateProduct(context.Background(), dto.CreateProductRequest{GTIN: "96385074", Name: "X"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	m.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestCreateProduct_FalloDeCacheNoBloquea(t *testing.T) {
	uc, m := newUseCase()
	m.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	m.On("Invalidate", mock.Anything, mock.Anything).Return(errors.New("redis caído")).Once()

	_, err := uc.CreateProduct(context.Background(), dto.CreateProductRequest{GTIN: "96385074", Name: "X"})
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// GetProduct / SetStock
// ──────────────────────────────────────────────────────────────────────────────

func TestGetProduct_NoEncontrado(t *testing.T) {
	uc, m := newUseCase()
	m.On("GetByGTINs", mock.Anything, []string{"96385074"}).Return(map[string]*entity.Product{}, nil).Once()

	_, err := uc.GetProduct(context.Background(), "96385074")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetStock_OK(t *testing.T) {
	uc, m := newUseCase()
	m.On("GetByGTINs", mock.Anything, []string{"96385074"}).
		Return(map[string]*entity.Product{"96385074": {ID: 7, GTIN: "96385074"}}, nil).Once()
	m.On("Set", mock.Anything, entity.StockRecord{ProductID: 7, WarehouseID: 3, Held: 120}).Return(nil).Once()

	out, err := uc.SetStock(context.Background(), dto.SetStockRequest{WarehouseID: 3, GTIN: "96385074", Held: 120})
	require.NoError(t, err)
	assert.Equal(t, dto.StockResponse{WarehouseID: 3, ProductID: 7, GTIN: "96385074", Held: 120}, *out)
	m.AssertExpectations(t)
}

func TestSetStock_EntradaInvalida(t *testing.T) {
	uc, m := newUseCase()
	cases := []dto.SetStockRequest{
		{WarehouseID: 0, GTIN: "96385074", Held: 1},
		{WarehouseID: 1, GTIN: "96385074", Held: -1},
		{WarehouseID: 1, GTIN: "", Held: 1},
	}
	for _, in := range cases {
		_, err := uc.SetStock(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	m.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
}
