// Package cache pone Redis delante del catálogo de productos (cache-aside).
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/Despachos-api/internal/domain/entity"
	"github.com/jhoicas/Despachos-api/internal/domain/repository"
	"github.com/jhoicas/Despachos-api/pkg/logger"
)

const keyPrefix = "product:gtin:"

// lookupTimeout acota la consulta compartida, desligada de la cancelación de cada llamador.
const lookupTimeout = 10 * time.Second

var _ repository.ProductRepository = (*ProductCatalog)(nil)

// ProductCatalog decora un ProductRepository con Redis. Solo se cachean productos encontrados;
// los fallos de Redis degradan a consultar el repositorio.
type ProductCatalog struct {
	rdb      redis.UniversalClient
	delegate repository.ProductRepository
	ttl      time.Duration
	group    singleflight.Group
	log      *logger.Logger
}

// NewProductCatalog construye el decorador.
func NewProductCatalog(rdb redis.UniversalClient, delegate repository.ProductRepository, ttl time.Duration, log *logger.Logger) *ProductCatalog {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductCatalog{rdb: rdb, delegate: delegate, ttl: ttl, log: log.Named("catalog_cache")}
}

type cachedProduct struct {
	ID              int64     `json:"id"`
	GTIN            string    `json:"gtin"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	UnitWeightGrams float64   `json:"unitWeightGrams"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func key(gtin string) string { return keyPrefix + gtin }

// GetByGTINs lee de Redis y consulta el repositorio una sola vez con todos los faltantes.
func (c *ProductCatalog) GetByGTINs(ctx context.Context, gtins []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(gtins))
	if len(gtins) == 0 {
		return out, nil
	}

	misses := c.readCached(ctx, gtins, out)
	if len(misses) == 0 {
		return out, nil
	}

	sort.Strings(misses)
	ch := c.group.DoChan(strings.Join(misses, ","), func() (interface{}, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), lookupTimeout)
		defer cancel()
		found, err := c.delegate.GetByGTINs(fctx, misses)
		if err != nil {
			return nil, err
		}
		c.store(fctx, found)
		return found, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if res.Err != nil {
		return nil, res.Err
	}
	for gtin, p := range res.Val.(map[string]*entity.Product) {
		out[gtin] = p
	}
	return out, nil
}

// Invalidate borra las entradas de los gtins indicados.
func (c *ProductCatalog) Invalidate(ctx context.Context, gtins ...string) error {
	if len(gtins) == 0 {
		return nil
	}
	keys := make([]string, 0, len(gtins))
	for _, g := range gtins {
		keys = append(keys, key(g))
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// readCached llena out con los aciertos y devuelve los gtins faltantes (sin repetir).
func (c *ProductCatalog) readCached(ctx context.Context, gtins []string, out map[string]*entity.Product) []string {
	unique := make([]string, 0, len(gtins))
	seen := make(map[string]struct{}, len(gtins))
	for _, g := range gtins {
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		unique = append(unique, g)
	}

	keys := make([]string, 0, len(unique))
	for _, g := range unique {
		keys = append(keys, key(g))
	}
	vals, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Msg("redis no disponible, se consulta el catálogo")
		}
		return unique
	}

	var misses []string
	for i, raw := range vals {
		s, ok := raw.(string)
		if !ok {
			misses = append(misses, unique[i])
			continue
		}
		var cp cachedProduct
		if err := json.Unmarshal([]byte(s), &cp); err != nil {
			misses = append(misses, unique[i])
			continue
		}
		out[unique[i]] = &entity.Product{
			ID:              cp.ID,
			GTIN:            cp.GTIN,
			Name:            cp.Name,
			Description:     cp.Description,
			UnitWeightGrams: cp.UnitWeightGrams,
			CreatedAt:       cp.CreatedAt,
			UpdatedAt:       cp.UpdatedAt,
		}
	}
	return misses
}

func (c *ProductCatalog) store(ctx context.Context, found map[string]*entity.Product) {
	if len(found) == 0 {
		return
	}
	pipe := c.rdb.Pipeline()
	for gtin, p := range found {
		if p == nil {
			continue
		}
		b, err := json.Marshal(cachedProduct{
			ID:              p.ID,
			GTIN:            p.GTIN,
			Name:            p.Name,
			Description:     p.Description,
			UnitWeightGrams: p.UnitWeightGrams,
			CreatedAt:       p.CreatedAt,
			UpdatedAt:       p.UpdatedAt,
		})
		if err != nil {
			continue
		}
		pipe.Set(ctx, key(gtin), b, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.log.Warn().Err(err).Int("products", len(found)).Msg("no se pudo escribir la caché del catálogo")
	}
}
