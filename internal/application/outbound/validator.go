package outbound

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Despachos-api/internal/domain"
	"github.com/jhoicas/Despachos-api/internal/domain/entity"
	"github.com/jhoicas/Despachos-api/internal/domain/repository"
)

// OrderValidator valida una orden de salida contra el catálogo y el stock de la bodega.
// Consulta el catálogo y el libro de stock como máximo una vez cada uno.
type OrderValidator struct {
	products repository.ProductRepository
	stock    repository.StockRepository
}

// NewOrderValidator construye el validador.
func NewOrderValidator(products repository.ProductRepository, stock repository.StockRepository) *OrderValidator {
	return &OrderValidator{products: products, stock: stock}
}

// Validate devuelve las líneas resueltas en el orden de la orden.
//
// Errores:
//   - *domain.OrderError VALIDATION: orden vacía, GTIN vacío, cantidad <= 0 o GTIN repetido (primera ofensa).
//   - *domain.OrderError NO_SUCH_ENTITY: todos los GTIN desconocidos.
//   - *domain.OrderError INSUFFICIENT_STOCK: todas las líneas sin registro o con stock menor al pedido.
//   - errores del catálogo o del libro de stock sin modificar.
func (v *OrderValidator) Validate(ctx context.Context, warehouseID int64, lines []entity.OrderLine) ([]entity.ResolvedLineItem, error) {
	if err := checkLines(lines); err != nil {
		return nil, err
	}

	resolved, err := v.resolve(ctx, lines)
	if err != nil {
		return nil, err
	}

	if err := v.checkStock(ctx, warehouseID, resolved); err != nil {
		return nil, err
	}
	return resolved, nil
}

// checkLines revisa la forma de la orden sin consultar colaboradores.
func checkLines(lines []entity.OrderLine) error {
	if len(lines) == 0 {
		return domain.NewValidationError("la orden no contiene líneas")
	}
	seen := make(map[string]struct{}, len(lines))
	for i, l := range lines {
		gtin := strings.TrimSpace(l.GTIN)
		if gtin == "" {
			return domain.NewValidationError(fmt.Sprintf("línea %d: gtin requerido", i+1))
		}
		if _, dup := seen[l.GTIN]; dup {
			return domain.NewValidationError(fmt.Sprintf("la orden contiene gtin duplicado: %s", l.GTIN))
		}
		if l.Quantity <= 0 {
			return domain.NewValidationError(fmt.Sprintf("Producto: %s, la cantidad debe ser mayor a cero", l.GTIN))
		}
		seen[l.GTIN] = struct{}{}
	}
	return nil
}

func (v *OrderValidator) resolve(ctx context.Context, lines []entity.OrderLine) ([]entity.ResolvedLineItem, error) {
	gtins := make([]string, 0, len(lines))
	for _, l := range lines {
		gtins = append(gtins, l.GTIN)
	}
	found, err := v.products.GetByGTINs(ctx, gtins)
	if err != nil {
		return nil, err
	}

	var msgs []string
	out := make([]entity.ResolvedLineItem, 0, len(lines))
	for _, l := range lines {
		p, ok := found[l.GTIN]
		if !ok || p == nil {
			msgs = append(msgs, fmt.Sprintf("producto desconocido, gtin: %s", l.GTIN))
			continue
		}
		out = append(out, entity.ResolvedLineItem{
			ProductID:       p.ID,
			GTIN:            l.GTIN,
			Name:            p.Name,
			UnitWeightGrams: p.UnitWeightGrams,
			Quantity:        l.Quantity,
		})
	}
	if len(msgs) > 0 {
		return nil, domain.NewNoSuchEntityError(msgs)
	}
	return out, nil
}

func (v *OrderValidator) checkStock(ctx context.Context, warehouseID int64, items []entity.ResolvedLineItem) error {
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	held, err := v.stock.GetHeld(ctx, warehouseID, ids)
	if err != nil {
		return err
	}

	var msgs []string
	for _, it := range items {
		h, ok := held[it.ProductID]
		switch {
		case !ok:
			msgs = append(msgs, fmt.Sprintf("Producto: %s, sin stock en bodega", it.GTIN))
		case it.Quantity > h:
			msgs = append(msgs, fmt.Sprintf("Producto: %s, stock disponible: %d, stock a retirar: %d", it.GTIN, h, it.Quantity))
		}
	}
	if len(msgs) > 0 {
		return domain.NewInsufficientStockError(msgs)
	}
	return nil
}
