package repository

import (
	"context"

	"github.com/jhoicas/Despachos-api/internal/domain/entity"
)

// ProductRepository define el puerto del catálogo de productos (DIP).
type ProductRepository interface {
	// GetByGTINs busca en lote; los GTIN desconocidos simplemente no aparecen en el mapa.
	GetByGTINs(ctx context.Context, gtins []string) (map[string]*entity.Product, error)
}
