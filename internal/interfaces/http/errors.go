package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/plm-api/internal/application/dto"
	"github.com/jhoicas/plm-api/internal/domain"
)

// Códigos de error de la API.
const (
	CodeInvalidBody       = "INVALID_BODY"
	CodeValidation        = "VALIDATION"
	CodeInvalidStatus     = "INVALID_STATUS"
	CodeDuplicateUsername = "DUPLICATE_USERNAME"
	CodeDuplicateEmail    = "DUPLICATE_EMAIL"
	CodeDuplicateProduct  = "DUPLICATE_PRODUCT"
	CodeNotFound          = "NOT_FOUND"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeNoNextStatus      = "NO_NEXT_STATUS"
	CodeConfiguration     = "CONFIGURATION"
	CodeInternal          = "INTERNAL"
)

// errorStatus traduce un error de dominio a status HTTP y código de API.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidStatus):
		return fiber.StatusBadRequest, CodeInvalidStatus
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, CodeValidation
	case errors.Is(err, domain.ErrDuplicateUsername):
		return fiber.StatusBadRequest, CodeDuplicateUsername
	case errors.Is(err, domain.ErrDuplicateEmail):
		return fiber.StatusBadRequest, CodeDuplicateEmail
	case errors.Is(err, domain.ErrDuplicateProductCode):
		return fiber.StatusBadRequest, CodeDuplicateProduct
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, CodeNotFound
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, CodeUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, CodeForbidden
	case errors.Is(err, domain.ErrNoNextStatus):
		return fiber.StatusConflict, CodeNoNextStatus
	case errors.Is(err, domain.ErrConfiguration):
		return fiber.StatusInternalServerError, CodeConfiguration
	default:
		return fiber.StatusInternalServerError, CodeInternal
	}
}

// writeError responde con dto.ErrorResponse. Los 5xx se registran y no exponen el detalle interno.
func writeError(c *fiber.Ctx, op string, err error) error {
	status, code := errorStatus(err)
	msg := err.Error()
	log := zerolog.Ctx(c.UserContext())
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("op", op).Msg("error procesando la petición")
		if code == CodeInternal {
			msg = "error interno"
		}
	} else {
		log.Debug().Err(err).Str("op", op).Int("status", status).Msg("petición rechazada")
	}
	if status == fiber.StatusUnauthorized {
		c.Set(fiber.HeaderWWWAuthenticate, basicChallenge)
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// ErrorHandler maneja los errores no capturados por los handlers (incluido recover).
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := CodeInternal
		switch fe.Code {
		case fiber.StatusNotFound:
			code = CodeNotFound
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		case fiber.StatusBadRequest:
			code = CodeInvalidBody
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
	}
	return writeError(c, "unhandled", err)
}
