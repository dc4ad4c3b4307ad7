package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Despachos-api/internal/application/dto"
	"github.com/jhoicas/Despachos-api/internal/domain"
	"github.com/jhoicas/Despachos-api/pkg/logger"
)

// writeError traduce errores de dominio a status + código.
// Los errores no tipados se registran y salen como 500.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	if oe, ok := domain.AsOrderError(err); ok {
		return c.Status(statusForKind(oe.Kind)).JSON(dto.ErrorResponse{Code: string(oe.Kind), Message: oe.Error()})
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: string(domain.KindValidation), Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: string(domain.KindNoSuchEntity), Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: string(domain.KindInsufficientStock), Message: "el stock cambió durante la confirmación, reintente"})
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func statusForKind(k domain.ErrorKind) int {
	switch k {
	case domain.KindValidation:
		return fiber.StatusBadRequest
	case domain.KindNoSuchEntity:
		return fiber.StatusNotFound
	case domain.KindInsufficientStock:
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}
