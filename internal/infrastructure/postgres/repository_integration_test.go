//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/Despachos-api/internal/application/catalog"
	"github.com/jhoicas/Despachos-api/internal/application/dto"
	"github.com/jhoicas/Despachos-api/internal/application/outbound"
	"github.com/jhoicas/Despachos-api/internal/domain"
	"github.com/jhoicas/Despachos-api/internal/domain/entity"
	"github.com/jhoicas/Despachos-api/internal/domain/loadplan"
	"github.com/jhoicas/Despachos-api/internal/domain/repository"
	"github.com/jhoicas/Despachos-api/internal/infrastructure/postgres"
)

const warehouseID int64 = 1

type RepositoryIntegrationTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	pool      *pgxpool.Pool
	products  *postgres.ProductRepo
	stock     *postgres.StockRepo
}

func TestRepositoryIntegration(t *testing.T) {
	suite.Run(t, new(RepositoryIntegrationTestSuite))
}

func (s *RepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("despachos"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.pool, err = postgres.NewPoolFromDSN(ctx, dsn)
	s.Require().NoError(err)
	s.Require().NoError(postgres.Migrate(ctx, s.pool))

	s.products = postgres.NewProductRepository(s.pool)
	s.stock = postgres.NewStockRepository(s.pool)
}

func (s *RepositoryIntegrationTestSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *RepositoryIntegrationTestSuite) SetupTest() {
	_, err := s.pool.Exec(context.Background(),
		"TRUNCATE TABLE outbound_orders, stock_movements, stock, products, users RESTART IDENTITY CASCADE")
	s.Require().NoError(err)
}

func (s *RepositoryIntegrationTestSuite) seed(gtin string, grams float64, held int) *entity.Product {
	ctx := context.Background()
	p := &entity.Product{GTIN: gtin, Name: "Producto " + gtin, UnitWeightGrams: grams}
	s.Require().NoError(s.products.Create(ctx, p))
	if held >= 0 {
		s.Require().NoError(s.stock.Set(ctx, entity.StockRecord{ProductID: p.ID, WarehouseID: warehouseID, Held: held}))
	}
	return p
}

func (s *RepositoryIntegrationTestSuite) TestGetByGTINs_DesconocidosNoAparecen() {
	s.seed("4006381333931", 1250.125, 10)

	found, err := s.products.GetByGTINs(context.Background(), []string{"4006381333931", "0000000000000"})
	s.Require().NoError(err)
	s.Len(found, 1)
	s.InDelta(1250.125, found["4006381333931"].UnitWeightGrams, 1e-9)
}

func (s *RepositoryIntegrationTestSuite) TestGetHeld_SinRegistroNoAparece() {
	a := s.seed("A", 1000, 7)
	b := s.seed("B", 1000, -1)

	held, err := s.stock.GetHeld(context.Background(), warehouseID, []int64{a.ID, b.ID})
	s.Require().NoError(err)
	s.Equal(map[int64]int{a.ID: 7}, held)
}

func (s *RepositoryIntegrationTestSuite) TestTxRunner_DescuentoInsuficienteRevierteTodo() {
	ctx := context.Background()
	a := s.seed("A", 1000, 10)
	b := s.seed("B", 1000, 2)

	err := postgres.NewTxRunner(s.pool).Run(ctx, func(
		stockRepo repository.StockRepository,
		_ repository.StockMovementRepository,
		_ repository.OutboundOrderRepository,
	) error {
		return stockRepo.Decrement(ctx, warehouseID, []entity.StockAlteration{
			{ProductID: a.ID, Quantity: 5},
			{ProductID: b.ID, Quantity: 3},
		})
	})
	s.Require().True(errors.Is(err, domain.ErrInsufficientStock))

	held, err := s.stock.GetHeld(ctx, warehouseID, []int64{a.ID, b.ID})
	s.Require().NoError(err)
	s.Equal(10, held[a.ID])
	s.Equal(2, held[b.ID])
}

func (s *RepositoryIntegrationTestSuite) TestProcess_ConfirmaYGuardaPlan() {
	ctx := context.Background()
	p := s.seed("7701234567890", 100_000, 30)

	orders := postgres.NewOutboundOrderRepository(s.pool)
	uc := outbound.NewUseCase(
		outbound.NewOrderValidator(s.products, s.stock),
		loadplan.NewPlanner(2000),
		postgres.NewTxRunner(s.pool),
		orders,
		nil, nil, nil,
	)

	resp, err := uc.Process(ctx, outboundRequest("7701234567890", 25), uuid.New().String())
	s.Require().NoError(err)
	s.Equal(2, resp.VehicleCount)
	s.Equal(2, resp.NumberOfTrucks)

	held, err := s.stock.GetHeld(ctx, warehouseID, []int64{p.ID})
	s.Require().NoError(err)
	s.Equal(5, held[p.ID])

	movs, err := postgres.NewStockMovementRepository(s.pool).ListByTransaction(ctx, resp.OrderID)
	s.Require().NoError(err)
	s.Require().Len(movs, 1)
	s.Equal(-25, movs[0].Quantity)
	s.Equal(entity.MovementTypeOUT, movs[0].Type)

	stored, err := uc.Get(ctx, resp.OrderID)
	s.Require().NoError(err)
	s.Equal(resp.Vehicles, stored.Vehicles)
	s.InDelta(resp.TotalOrderWeightKg, stored.TotalOrderWeightKg, 1e-9)

	_, err = uc.Process(ctx, outboundRequest("7701234567890", 6), "")
	s.True(errors.Is(err, domain.ErrInsufficientStock))
}

func (s *RepositoryIntegrationTestSuite) TestUserRepo_EmailDuplicado() {
	ctx := context.Background()
	users := postgres.NewUserRepository(s.pool)
	now := time.Now()
	u := &entity.User{ID: uuid.New().String(), Email: "ana@bodega.co", PasswordHash: "x", Name: "Ana", Role: entity.RoleAdmin, Status: "active", CreatedAt: now, UpdatedAt: now}
	s.Require().NoError(users.Create(ctx, u))

	dup := *u
	dup.ID = uuid.New().String()
	s.True(errors.Is(users.Create(ctx, &dup), domain.ErrEmailAlreadyExists))

	got, err := users.FindByEmail(ctx, "ana@bodega.co")
	s.Require().NoError(err)
	s.Equal(u.ID, got.ID)

	missing, err := users.FindByEmail(ctx, "nadie@bodega.co")
	s.Require().NoError(err)
	s.Nil(missing)
}

func (s *RepositoryIntegrationTestSuite) TestCatalog_AltaYAjusteDeStock() {
	ctx := context.Background()
	uc := catalog.NewUseCase(s.products, s.products, s.stock, nil, nil)

	created, err := uc.CreateProduct(ctx, dto.CreateProductRequest{GTIN: "96385074", Name: "Tubo PVC", UnitWeightGrams: 800})
	s.Require().NoError(err)
	s.NotZero(created.ID)

	_, err = uc.CreateProduct(ctx, dto.CreateProductRequest{GTIN: "96385074", Name: "Otro"})
	s.True(errors.Is(err, domain.ErrDuplicate))

	_, err = uc.SetStock(ctx, dto.SetStockRequest{WarehouseID: warehouseID, GTIN: "96385074", Held: 30})
	s.Require().NoError(err)
	_, err = uc.SetStock(ctx, dto.SetStockRequest{WarehouseID: warehouseID, GTIN: "96385074", Held: 12})
	s.Require().NoError(err)

	held, err := s.stock.GetHeld(ctx, warehouseID, []int64{created.ID})
	s.Require().NoError(err)
	s.Equal(12, held[created.ID])
}
