package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	zlog "github.com/rs/zerolog/log"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
)

// statusFor estado HTTP estable por código de dominio.
// UNAUTHORIZED se divide: sin identidad → 401, rol sin permiso → 403.
func statusFor(de *domain.Error) int {
	switch de.Code {
	case domain.CodeNotFound:
		return fiber.StatusNotFound
	case domain.CodeBadRequest:
		return fiber.StatusBadRequest
	case domain.CodeUnauthorized:
		if de.Cause == domain.CauseUnauthenticated {
			return fiber.StatusUnauthorized
		}
		return fiber.StatusForbidden
	case domain.CodeForbidden:
		return fiber.StatusForbidden
	case domain.CodeConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// writeError serializa err como dto.ErrorResponse. Los errores de infraestructura
// se registran y se responden como 500 sin exponer el detalle.
func writeError(c *fiber.Ctx, err error) error {
	if de, ok := domain.AsError(err); ok {
		return c.Status(statusFor(de)).JSON(dto.ErrorResponse{
			Code:    de.Code,
			Cause:   de.Cause,
			Message: de.Message,
			Fields:  de.Fields,
		})
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := domain.CodeInternal
		switch fe.Code {
		case fiber.StatusNotFound:
			code = domain.CodeNotFound
		case fiber.StatusBadRequest, fiber.StatusRequestEntityTooLarge:
			code = domain.CodeBadRequest
		case fiber.StatusMethodNotAllowed:
			code = domain.CodeNotFound
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
	}
	zlog.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Str("request_id", requestID(c)).
		Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code:    domain.CodeInternal,
		Message: "error interno, intente nuevamente",
	})
}

// ErrorHandler para fiber.Config: errores que escapan de handlers y middlewares.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return writeError(c, err)
}

// respond escribe out con status, o el error mapeado.
func respond(c *fiber.Ctx, status int, out any, err error) error {
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(status).JSON(out)
}
