package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Despachos-api/internal/application/dto"
	"github.com/jhoicas/Despachos-api/pkg/logger"
)

// CatalogService alta de productos y ajuste de stock.
type CatalogService interface {
	CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetProduct(ctx context.Context, gtin string) (*dto.ProductResponse, error)
	SetStock(ctx context.Context, in dto.SetStockRequest) (*dto.StockResponse, error)
}

// ProductHandler maneja catálogo y stock (protegido).
type ProductHandler struct {
	uc  CatalogService
	log *logger.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(uc CatalogService, log *logger.Logger) *ProductHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductHandler{uc: uc, log: log.Named("http.catalog")}
}

// Create godoc
// @Summary      Registrar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "gtin, name, description, unitWeightGrams"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.GTIN == "" || in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "gtin y name son requeridos"})
	}
	out, err := h.uc.CreateProduct(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByGTIN godoc
// @Summary      Obtener producto por GTIN
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        gtin  path      string  true  "GTIN-8/12/13/14"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{gtin} [get]
func (h *ProductHandler) GetByGTIN(c *fiber.Ctx) error {
	out, err := h.uc.GetProduct(c.UserContext(), c.Params("gtin"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// SetStock godoc
// @Summary      Fijar stock de un producto en una bodega
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetStockRequest  true  "warehouseId, gtin, held"
// @Success      200   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock [put]
func (h *ProductHandler) SetStock(c *fiber.Ctx) error {
	var in dto.SetStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SetStock(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
