package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Despachos-api/internal/domain"
	"github.com/jhoicas/Despachos-api/internal/domain/entity"
	"github.com/jhoicas/Despachos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetByGTINs busca todos los gtins en una sola consulta.
func (r *ProductRepo) GetByGTINs(ctx context.Context, gtins []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(gtins))
	if len(gtins) == 0 {
		return out, nil
	}
	query := `
		SELECT id, gtin, name, description, unit_weight_grams, created_at, updated_at
		FROM products WHERE gtin = ANY($1)`
	rows, err := r.q.Query(ctx, query, gtins)
	if err != nil {
		return nil, fmt.Errorf("get products by gtin: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p entity.Product
		var weight decimal.Decimal
		if err := rows.Scan(&p.ID, &p.GTIN, &p.Name, &p.Description, &weight, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.UnitWeightGrams = weight.InexactFloat64()
		out[p.GTIN] = &p
	}
	return out, rows.Err()
}

// Create persiste un producto del catálogo (seed, tests).
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (gtin, name, description, unit_weight_grams, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query, p.GTIN, p.Name, p.Description, decimal.NewFromFloat(p.UnitWeightGrams)).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}
