package outbound_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Despachos-api/internal/application/outbound"
	"github.com/jhoicas/Despachos-api/internal/domain"
	"github.com/jhoicas/Despachos-api/internal/domain/entity"
)

func product(id int64, gtin string, grams float64) *entity.Product {
	return &entity.Product{ID: id, GTIN: gtin, Name: "Producto " + gtin, UnitWeightGrams: grams}
}

func newValidator() (*outbound.OrderValidator, *productRepoMock, *stockRepoMock) {
	products := &productRepoMock{}
	stock := &stockRepoMock{}
	return outbound.NewOrderValidator(products, stock), products, stock
}

// ──────────────────────────────────────────────────────────────────────────────
// Entrada malformada: sin llamadas a colaboradores
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_GTINDuplicadoSinLlamadas(t *testing.T) {
	v, products, stock := newValidator()

	_, err := v.Validate(context.Background(), 1, []entity.OrderLine{
		{GTIN: "A", Quantity: 1},
		{GTIN: "B", Quantity: 2},
		{GTIN: "A", Quantity: 3},
	})

	oe, ok := domain.AsOrderError(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindValidation, oe.Kind)
	assert.Contains(t, err.Error(), "A")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	products.AssertNotCalled(t, "GetByGTINs", mock.Anything, mock.Anything)
	stock.AssertNotCalled(t, "GetHeld", mock.Anything, mock.Anything, mock.Anything)
}

func TestValidate_EntradaMalformada(t *testing.T) {
	cases := []struct {
		name  string
		lines []entity.OrderLine
		want  string
	}{
		{"orden vacía", nil, "no contiene líneas"},
		{"gtin vacío", []entity.OrderLine{{GTIN: "A", Quantity: 1}, {GTIN: " ", Quantity: 1}}, "línea 2"},
		{"cantidad cero", []entity.OrderLine{{GTIN: "A", Quantity: 0}}, "Producto: A"},
		{"cantidad negativa", []entity.OrderLine{{GTIN: "B", Quantity: -4}}, "Producto: B"},
		{"duplicado antes que cantidad", []entity.OrderLine{{GTIN: "A", Quantity: 1}, {GTIN: "A", Quantity: 0}}, "gtin duplicado: A"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, products, _ := newValidator()
			_, err := v.Validate(context.Background(), 1, tc.lines)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), tc.want)
			products.AssertNotCalled(t, "GetByGTINs", mock.Anything, mock.Anything)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_GTINDesconocidosAgregados(t *testing.T) {
	v, products, stock := newValidator()
	products.On("GetByGTINs", mock.Anything, []string{"X", "A", "Y"}).
		Return(map[string]*entity.Product{"A": product(1, "A", 1000)}, nil).Once()

	_, err := v.Validate(context.Background(), 1, []entity.OrderLine{
		{GTIN: "X", Quantity: 1},
		{GTIN: "A", Quantity: 1},
		{GTIN: "Y", Quantity: 1},
	})

	oe, ok := domain.AsOrderError(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindNoSuchEntity, oe.Kind)
	assert.Equal(t, []string{"producto desconocido, gtin: X", "producto desconocido, gtin: Y"}, oe.Messages)
	assert.Equal(t, "producto desconocido, gtin: X; producto desconocido, gtin: Y", err.Error())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	products.AssertExpectations(t)
	stock.AssertNotCalled(t, "GetHeld", mock.Anything, mock.Anything, mock.Anything)
}

func TestValidate_ErrorDelCatalogoSePropaga(t *testing.T) {
	v, products, _ := newValidator()
	boom := errors.New("catálogo caído")
	products.On("GetByGTINs", mock.Anything, mock.Anything).Return(nil, boom).Once()

	_, err := v.Validate(context.Background(), 1, []entity.OrderLine{{GTIN: "A", Quantity: 1}})
	assert.Equal(t, boom, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_StockInsuficienteAgregado(t *testing.T) {
	v, products, stock := newValidator()
	products.On("GetByGTINs", mock.Anything, []string{"A", "B", "C"}).Return(map[string]*entity.Product{
		"A": product(1, "A", 1000),
		"B": product(2, "B", 1000),
		"C": product(3, "C", 1000),
	}, nil).Once()
	stock.On("GetHeld", mock.Anything, int64(7), []int64{1, 2, 3}).
		Return(map[int64]int{1: 5, 2: 100}, nil).Once()

	_, err := v.Validate(context.Background(), 7, []entity.OrderLine{
		{GTIN: "A", Quantity: 10},
		{GTIN: "B", Quantity: 100},
		{GTIN: "C", Quantity: 1},
	})

	oe, ok := domain.AsOrderError(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindInsufficientStock, oe.Kind)
	assert.Equal(t, []string{
		"Producto: A, stock disponible: 5, stock a retirar: 10",
		"Producto: C, sin stock en bodega",
	}, oe.Messages)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	stock.AssertNotCalled(t, "Decrement", mock.Anything, mock.Anything, mock.Anything)
}

func TestValidate_OK(t *testing.T) {
	v, products, stock := newValidator()
	products.On("GetByGTINs", mock.Anything, []string{"B", "A"}).Return(map[string]*entity.Product{
		"A": product(1, "A", 500),
		"B": product(2, "B", 2500.5),
	}, nil).Once()
	stock.On("GetHeld", mock.Anything, int64(1), []int64{2, 1}).
		Return(map[int64]int{1: 3, 2: 4}, nil).Once()

	items, err := v.Validate(context.Background(), 1, []entity.OrderLine{
		{GTIN: "B", Quantity: 4},
		{GTIN: "A", Quantity: 3},
	})
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, entity.ResolvedLineItem{ProductID: 2, GTIN: "B", Name: "Producto B", UnitWeightGrams: 2500.5, Quantity: 4}, items[0])
	assert.Equal(t, int64(1), items[1].ProductID)
	assert.Equal(t, 3, items[1].Quantity)
	products.AssertExpectations(t)
	stock.AssertExpectations(t)
}
