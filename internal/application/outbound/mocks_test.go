package outbound_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/Despachos-api/internal/application/outbound"
	"github.com/jhoicas/Despachos-api/internal/domain/entity"
	"github.com/jhoicas/Despachos-api/internal/domain/repository"
)

type productRepoMock struct{ mock.Mock }

func (m *productRepoMock) GetByGTINs(ctx context.Context, gtins []string) (map[string]*entity.Product, error) {
	args := m.Called(ctx, gtins)
	out, _ := args.Get(0).(map[string]*entity.Product)
	return out, args.Error(1)
}

type stockRepoMock struct{ mock.Mock }

func (m *stockRepoMock) GetHeld(ctx context.Context, warehouseID int64, productIDs []int64) (map[int64]int, error) {
	args := m.Called(ctx, warehouseID, productIDs)
	out, _ := args.Get(0).(map[int64]int)
	return out, args.Error(1)
}

func (m *stockRepoMock) Decrement(ctx context.Context, warehouseID int64, items []entity.StockAlteration) error {
	return m.Called(ctx, warehouseID, items).Error(0)
}

type movementRepoMock struct{ mock.Mock }

func (m *movementRepoMock) CreateBatch(ctx context.Context, movements []*entity.StockMovement) error {
	return m.Called(ctx, movements).Error(0)
}

func (m *movementRepoMock) ListByTransaction(ctx context.Context, transactionID string) ([]*entity.StockMovement, error) {
	args := m.Called(ctx, transactionID)
	out, _ := args.Get(0).([]*entity.StockMovement)
	return out, args.Error(1)
}

type orderRepoMock struct{ mock.Mock }

func (m *orderRepoMock) Create(ctx context.Context, order *entity.OutboundOrder) error {
	return m.Called(ctx, order).Error(0)
}

func (m *orderRepoMock) GetByID(ctx context.Context, id string) (*entity.OutboundOrder, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*entity.OutboundOrder)
	return out, args.Error(1)
}

type publisherMock struct{ mock.Mock }

func (m *publisherMock) PublishDispatched(ctx context.Context, evt outbound.DispatchedEvent) error {
	return m.Called(ctx, evt).Error(0)
}

type manifestMock struct{ mock.Mock }

func (m *manifestMock) GenerateManifest(ctx context.Context, order *entity.OutboundOrder) ([]byte, error) {
	args := m.Called(ctx, order)
	out, _ := args.Get(0).([]byte)
	return out, args.Error(1)
}

// fakeTxRunner ejecuta fn con los mocks como si fueran repositorios de una transacción.
type fakeTxRunner struct {
	stock  repository.StockRepository
	movs   repository.StockMovementRepository
	orders repository.OutboundOrderRepository
	calls  int
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	orderRepo repository.OutboundOrderRepository,
) error) error {
	r.calls++
	return fn(r.stock, r.movs, r.orders)
}

var (
	_ repository.ProductRepository       = (*productRepoMock)(nil)
	_ repository.StockRepository         = (*stockRepoMock)(nil)
	_ repository.StockMovementRepository = (*movementRepoMock)(nil)
	_ repository.OutboundOrderRepository = (*orderRepoMock)(nil)
	_ outbound.EventPublisher            = (*publisherMock)(nil)
	_ outbound.ManifestGenerator         = (*manifestMock)(nil)
	_ outbound.TxRunner                  = (*fakeTxRunner)(nil)
)
