package outbound

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/Despachos-api/internal/application/dto"
	"github.com/jhoicas/Despachos-api/internal/domain"
	"github.com/jhoicas/Despachos-api/internal/domain/entity"
	"github.com/jhoicas/Despachos-api/internal/domain/loadplan"
	"github.com/jhoicas/Despachos-api/internal/domain/repository"
	"github.com/jhoicas/Despachos-api/pkg/logger"
)

const tracerName = "github.com/jhoicas/Despachos-api/internal/application/outbound"

// UseCase procesa órdenes de salida: valida, planifica la carga, descuenta stock
// en una sola transacción y publica el despacho.
type UseCase struct {
	validator *OrderValidator
	planner   loadplan.Planner
	txRunner  TxRunner
	orders    repository.OutboundOrderRepository
	publisher EventPublisher
	manifests ManifestGenerator
	log       *logger.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// NewUseCase construye el caso de uso. publisher y manifests pueden ser nil.
func NewUseCase(
	validator *OrderValidator,
	planner loadplan.Planner,
	txRunner TxRunner,
	orders repository.OutboundOrderRepository,
	publisher EventPublisher,
	manifests ManifestGenerator,
	log *logger.Logger,
) *UseCase {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		validator: validator,
		planner:   planner,
		txRunner:  txRunner,
		orders:    orders,
		publisher: publisher,
		manifests: manifests,
		log:       log.Named("outbound"),
		tracer:    otel.Tracer(tracerName),
		now:       time.Now,
	}
}

// Process valida la orden, arma el plan de carga y confirma el descuento de stock.
// Si algo falla antes de la transacción no se toca el stock; los errores de colaboradores se propagan sin cambios.
func (uc *UseCase) Process(ctx context.Context, in dto.OutboundOrderRequest, userID string) (*dto.OutboundOrderResponse, error) {
	if in.WarehouseID <= 0 {
		return nil, domain.NewValidationError("warehouseId requerido")
	}
	lines := make([]entity.OrderLine, 0, len(in.OrderLines))
	for _, l := range in.OrderLines {
		lines = append(lines, entity.OrderLine{GTIN: strings.TrimSpace(l.GTIN), Quantity: l.Quantity})
	}

	vctx, span := uc.tracer.Start(ctx, "outbound.validate", trace.WithAttributes(
		attribute.Int64("warehouse.id", in.WarehouseID),
		attribute.Int("order.lines", len(lines)),
	))
	items, err := uc.validator.Validate(vctx, in.WarehouseID, lines)
	endSpan(span, err)
	if err != nil {
		return nil, err
	}

	_, span = uc.tracer.Start(ctx, "outbound.plan")
	plan, err := uc.plan(items)
	if err == nil {
		span.SetAttributes(attribute.Int("plan.vehicles", plan.VehicleCount))
	}
	endSpan(span, err)
	if err != nil {
		return nil, err
	}

	order := &entity.OutboundOrder{
		ID:             uuid.New().String(),
		WarehouseID:    in.WarehouseID,
		Lines:          items,
		Plan:           plan,
		NumberOfTrucks: NumberOfTrucks(items, uc.planner.CapacityGrams),
		CreatedAt:      uc.now().UTC(),
		CreatedBy:      userID,
	}

	cctx, span := uc.tracer.Start(ctx, "outbound.commit", trace.WithAttributes(attribute.String("order.id", order.ID)))
	err = uc.commit(cctx, order)
	endSpan(span, err)
	if err != nil {
		return nil, err
	}

	resp := Assemble(order)
	uc.log.Info().
		Str("order_id", order.ID).
		Int64("warehouse_id", order.WarehouseID).
		Int("lines", len(order.Lines)).
		Int("vehicles", resp.VehicleCount).
		Int("lower_bound", resp.NumberOfTrucks).
		Float64("total_kg", resp.TotalOrderWeightKg).
		Msg("orden de salida confirmada")

	evt := DispatchedEvent{
		OrderID:        order.ID,
		WarehouseID:    order.WarehouseID,
		Lines:          len(order.Lines),
		VehicleCount:   resp.VehicleCount,
		NumberOfTrucks: resp.NumberOfTrucks,
		TotalWeightKg:  resp.TotalOrderWeightKg,
		CreatedBy:      userID,
		OccurredAt:     order.CreatedAt,
	}
	if err := uc.publisher.PublishDispatched(ctx, evt); err != nil {
		uc.log.Warn().Err(err).Str("order_id", order.ID).Msg("no se pudo publicar el despacho")
	}
	return resp, nil
}

// plan traduce los fallos por línea del planificador a errores de validación.
func (uc *UseCase) plan(items []entity.ResolvedLineItem) (entity.LoadPlan, error) {
	plan, err := uc.planner.Plan(items)
	if err != nil {
		var ie *loadplan.ItemError
		if errors.As(err, &ie) {
			return entity.LoadPlan{}, domain.NewValidationError(ie.Error())
		}
		return entity.LoadPlan{}, err
	}
	return plan, nil
}

// commit descuenta stock, registra los movimientos OUT y guarda la orden en una sola transacción.
func (uc *UseCase) commit(ctx context.Context, order *entity.OutboundOrder) error {
	return uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		orderRepo repository.OutboundOrderRepository,
	) error {
		if err := stockRepo.Decrement(ctx, order.WarehouseID, order.Alterations()); err != nil {
			return err
		}
		movs := make([]*entity.StockMovement, 0, len(order.Lines))
		for _, li := range order.Lines {
			movs = append(movs, &entity.StockMovement{
				ID:            uuid.New().String(),
				TransactionID: order.ID,
				ProductID:     li.ProductID,
				WarehouseID:   order.WarehouseID,
				Type:          entity.MovementTypeOUT,
				Quantity:      -li.Quantity,
				CreatedAt:     order.CreatedAt,
				CreatedBy:     order.CreatedBy,
			})
		}
		if err := movRepo.CreateBatch(ctx, movs); err != nil {
			return err
		}
		return orderRepo.Create(ctx, order)
	})
}

// Get devuelve una orden confirmada con su plan almacenado.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.OutboundOrderResponse, error) {
	order, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return Assemble(order), nil
}

// Manifest genera el manifiesto PDF de una orden confirmada.
func (uc *UseCase) Manifest(ctx context.Context, id string) ([]byte, error) {
	if uc.manifests == nil {
		return nil, errors.New("outbound: generador de manifiestos no configurado")
	}
	order, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.manifests.GenerateManifest(ctx, order)
}

func (uc *UseCase) find(ctx context.Context, id string) (*entity.OutboundOrder, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	order, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
