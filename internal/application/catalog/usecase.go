// Package catalog administra el catálogo de productos y el stock por bodega.
package catalog

import (
	"context"
	"strings"

	"github.com/jhoicas/Despachos-api/internal/application/dto"
	"github.com/jhoicas/Despachos-api/internal/domain"
	"github.com/jhoicas/Despachos-api/internal/domain/entity"
	"github.com/jhoicas/Despachos-api/internal/domain/repository"
	"github.com/jhoicas/Despachos-api/pkg/gtin"
	"github.com/jhoicas/Despachos-api/pkg/logger"
)

// ProductWriter alta de productos.
type ProductWriter interface {
	Create(ctx context.Context, p *entity.Product) error
}

// StockWriter ajuste directo del stock de una bodega.
type StockWriter interface {
	Set(ctx context.Context, rec entity.StockRecord) error
}

// Invalidator borra entradas de la caché del catálogo.
type Invalidator interface {
	Invalidate(ctx context.Context, gtins ...string) error
}

// UseCase alta de productos y ajuste de stock (rol bodeguero o admin).
type UseCase struct {
	reader repository.ProductRepository
	writer ProductWriter
	stock  StockWriter
	cache  Invalidator
	log    *logger.Logger
}

// NewUseCase construye el caso de uso. cache puede ser nil.
func NewUseCase(reader repository.ProductRepository, writer ProductWriter, stock StockWriter, cache Invalidator, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{reader: reader, writer: writer, stock: stock, cache: cache, log: log.Named("catalog")}
}

// CreateProduct valida el GTIN (dígito de control) y registra el producto.
// Devuelve domain.ErrDuplicate si el GTIN ya existe.
func (uc *UseCase) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	code := gtin.Normalize(strings.TrimSpace(in.GTIN))
	name := strings.TrimSpace(in.Name)
	if name == "" || in.UnitWeightGrams < 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := gtin.Validate(code); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	p := &entity.Product{
		GTIN:            code,
		Name:            name,
		Description:     strings.TrimSpace(in.Description),
		UnitWeightGrams: in.UnitWeightGrams,
	}
	if err := uc.writer.Create(ctx, p); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, code)
	uc.log.Info().Int64("product_id", p.ID).Str("gtin", code).Msg("producto registrado")
	return toProductResponse(p), nil
}

// GetProduct busca un producto por GTIN. Devuelve domain.ErrNotFound si no existe.
func (uc *UseCase) GetProduct(ctx context.Context, code string) (*dto.ProductResponse, error) {
	p, err := uc.find(ctx, code)
	if err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// SetStock fija el stock disponible del producto en la bodega.
func (uc *UseCase) SetStock(ctx context.Context, in dto.SetStockRequest) (*dto.StockResponse, error) {
	if in.WarehouseID <= 0 || in.Held < 0 {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.find(ctx, in.GTIN)
	if err != nil {
		return nil, err
	}
	rec := entity.StockRecord{ProductID: p.ID, WarehouseID: in.WarehouseID, Held: in.Held}
	if err := uc.stock.Set(ctx, rec); err != nil {
		return nil, err
	}
	uc.log.Info().
		Int64("warehouse_id", in.WarehouseID).
		Str("gtin", p.GTIN).
		Int("held", in.Held).
		Msg("stock ajustado")
	return &dto.StockResponse{WarehouseID: in.WarehouseID, ProductID: p.ID, GTIN: p.GTIN, Held: in.Held}, nil
}

func (uc *UseCase) find(ctx context.Context, code string) (*entity.Product, error) {
	code = gtin.Normalize(strings.TrimSpace(code))
	if code == "" {
		return nil, domain.ErrInvalidInput
	}
	found, err := uc.reader.GetByGTINs(ctx, []string{code})
	if err != nil {
		return nil, err
	}
	p, ok := found[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (uc *UseCase) invalidate(ctx context.Context, code string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx, code); err != nil {
		uc.log.Warn().Err(err).Str("gtin", code).Msg("no se pudo invalidar la caché del catálogo")
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:              p.ID,
		GTIN:            p.GTIN,
		Name:            p.Name,
		Description:     p.Description,
		UnitWeightGrams: p.UnitWeightGrams,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
