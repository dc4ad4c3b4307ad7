package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Despachos-api/internal/application/dto"
	"github.com/jhoicas/Despachos-api/pkg/logger"
)

// OutboundService operaciones de órdenes de salida que expone el handler.
type OutboundService interface {
	Process(ctx context.Context, in dto.OutboundOrderRequest, userID string) (*dto.OutboundOrderResponse, error)
	Get(ctx context.Context, id string) (*dto.OutboundOrderResponse, error)
	Manifest(ctx context.Context, id string) ([]byte, error)
}

// OutboundHandler maneja las órdenes de salida (protegido).
type OutboundHandler struct {
	svc OutboundService
	log *logger.Logger
}

// NewOutboundHandler construye el handler.
func NewOutboundHandler(svc OutboundService, log *logger.Logger) *OutboundHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &OutboundHandler{svc: svc, log: log.Named("http.outbound")}
}

// Create godoc
// @Summary      Procesar orden de salida
// @Description  Valida la orden, arma el plan de carga por camión y descuenta el stock de la bodega.
// @Tags         outbound
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OutboundOrderRequest  true  "warehouseId, orderLines[gtin, quantity]"
// @Success      201   {object}  dto.OutboundOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/orders/outbound [post]
func (h *OutboundHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.OutboundOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.svc.Process(c.UserContext(), in, userID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden de salida
// @Tags         outbound
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la orden (UUID)"
// @Success      200  {object}  dto.OutboundOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/outbound/{id} [get]
func (h *OutboundHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Manifest godoc
// @Summary      Manifiesto de despacho en PDF
// @Tags         outbound
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path      string  true  "ID de la orden (UUID)"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/outbound/{id}/manifest [get]
func (h *OutboundHandler) Manifest(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.svc.Manifest(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="manifiesto-`+id+`.pdf"`)
	return c.Send(pdf)
}
