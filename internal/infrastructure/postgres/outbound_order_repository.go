package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Despachos-api/internal/domain"
	"github.com/jhoicas/Despachos-api/internal/domain/entity"
	"github.com/jhoicas/Despachos-api/internal/domain/repository"
)

var _ repository.OutboundOrderRepository = (*OutboundOrderRepo)(nil)

// OutboundOrderRepo guarda las órdenes de salida confirmadas; líneas y plan van como JSONB.
type OutboundOrderRepo struct {
	q Querier
}

// NewOutboundOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOutboundOrderRepository(q Querier) *OutboundOrderRepo {
	return &OutboundOrderRepo{q: q}
}

type lineRow struct {
	ProductID       int64   `json:"productId"`
	GTIN            string  `json:"gtin"`
	Name            string  `json:"name"`
	UnitWeightGrams float64 `json:"unitWeightGrams"`
	Quantity        int     `json:"quantity"`
}

type itemRow struct {
	ProductID        int64   `json:"productId"`
	GTIN             string  `json:"gtin"`
	Name             string  `json:"name"`
	Quantity         int     `json:"quantity"`
	TotalWeightGrams float64 `json:"totalWeightGrams"`
}

type vehicleRow struct {
	TruckNumber       int       `json:"truckNumber"`
	LoadedWeightGrams float64   `json:"loadedWeightGrams"`
	Items             []itemRow `json:"items"`
}

// Create inserta la orden con su plan.
func (r *OutboundOrderRepo) Create(ctx context.Context, o *entity.OutboundOrder) error {
	lines := make([]lineRow, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, lineRow(l))
	}
	vehicles := make([]vehicleRow, 0, len(o.Plan.Vehicles))
	for _, v := range o.Plan.Vehicles {
		items := make([]itemRow, 0, len(v.Items))
		for _, it := range v.Items {
			items = append(items, itemRow(it))
		}
		vehicles = append(vehicles, vehicleRow{TruckNumber: v.TruckNumber, LoadedWeightGrams: v.LoadedWeightGrams, Items: items})
	}
	linesJSON, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal lines: %w", err)
	}
	planJSON, err := json.Marshal(vehicles)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}

	query := `
		INSERT INTO outbound_orders (id, warehouse_id, capacity_grams, total_weight_kg, number_of_trucks, vehicle_count, lines, plan, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.q.Exec(ctx, query,
		o.ID, o.WarehouseID,
		decimal.NewFromFloat(o.Plan.CapacityGrams), decimal.NewFromFloat(o.Plan.TotalWeightKg),
		o.NumberOfTrucks, o.Plan.VehicleCount,
		linesJSON, planJSON, o.CreatedAt, o.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert outbound order: %w", err)
	}
	return nil
}

// GetByID devuelve nil, nil si no existe.
func (r *OutboundOrderRepo) GetByID(ctx context.Context, id string) (*entity.OutboundOrder, error) {
	query := `
		SELECT id, warehouse_id, capacity_grams, total_weight_kg, number_of_trucks, vehicle_count, lines, plan, created_at, created_by
		FROM outbound_orders WHERE id = $1`
	var (
		o                   entity.OutboundOrder
		capacity, totalKg   decimal.Decimal
		linesJSON, planJSON []byte
	)
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.WarehouseID, &capacity, &totalKg, &o.NumberOfTrucks, &o.Plan.VehicleCount,
		&linesJSON, &planJSON, &o.CreatedAt, &o.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get outbound order: %w", err)
	}
	o.Plan.CapacityGrams = capacity.InexactFloat64()
	o.Plan.TotalWeightKg = totalKg.InexactFloat64()

	var lines []lineRow
	if err := json.Unmarshal(linesJSON, &lines); err != nil {
		return nil, fmt.Errorf("unmarshal lines: %w", err)
	}
	for _, l := range lines {
		o.Lines = append(o.Lines, entity.ResolvedLineItem(l))
	}

	var vehicles []vehicleRow
	if err := json.Unmarshal(planJSON, &vehicles); err != nil {
		return nil, fmt.Errorf("unmarshal plan: %w", err)
	}
	for _, v := range vehicles {
		items := make([]entity.LoadedItem, 0, len(v.Items))
		for _, it := range v.Items {
			items = append(items, entity.LoadedItem(it))
		}
		o.Plan.Vehicles = append(o.Plan.Vehicles, entity.VehicleLoad{
			TruckNumber:       v.TruckNumber,
			LoadedWeightGrams: v.LoadedWeightGrams,
			Items:             items,
		})
	}
	return &o, nil
}
