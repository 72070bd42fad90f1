package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-admin/internal/application/dto"
	"github.com/jhoicas/Inventario-admin/internal/application/orderbuilder"
	"github.com/jhoicas/Inventario-admin/internal/application/usecase"
	"github.com/jhoicas/Inventario-admin/internal/domain"
	"github.com/jhoicas/Inventario-admin/internal/domain/entity"
	"github.com/jhoicas/Inventario-admin/internal/infrastructure/backend"
)

// respond envuelve data con las notificaciones de la petición.
func respond(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(dto.Envelope{Data: data, Toasts: toasts(c)})
}

// errorMapping orden de evaluación de fail; el primero que coincide gana.
var errorMapping = []struct {
	target error
	status int
	code   string
}{
	{domain.ErrConfirmationRequired, fiber.StatusConflict, "CONFIRMATION_REQUIRED"},
	{orderbuilder.ErrSubmitInProgress, fiber.StatusConflict, "SUBMIT_IN_PROGRESS"},
	{domain.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION"},
	{domain.ErrUnauthenticated, fiber.StatusUnauthorized, "UNAUTHENTICATED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrValidation, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrMethodNotAllowed, fiber.StatusBadGateway, "METHOD_NOT_ALLOWED"},
	{domain.ErrBackend, fiber.StatusBadGateway, "BACKEND"},
	{domain.ErrNetwork, fiber.StatusBadGateway, "NETWORK"},
}

// fail traduce un error de caso de uso a dto.ErrorResponse. Un 401 del
// backend cierra la sesión local: el token ya no sirve.
func fail(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	for _, m := range errorMapping {
		if errors.Is(err, m.target) {
			status, code = m.status, m.code
			break
		}
	}
	if status == fiber.StatusUnauthorized {
		if s := GetSession(c); s != nil {
			_ = s.SignOut(c.UserContext())
		}
	}
	return c.Status(status).JSON(dto.ErrorResponse{
		Code:    code,
		Message: userMessage(err),
		Toasts:  toasts(c),
	})
}

// userMessage el texto que ya vio el usuario, sin el contexto de capas.
func userMessage(err error) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr.Msg
	}
	var cerr *usecase.ConfirmationError
	if errors.As(err, &cerr) {
		return cerr.Prompt
	}
	return err.Error()
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido", Toasts: toasts(c)})
}

func pageOf(c *fiber.Ctx) entity.PageRequest {
	var q dto.PageQuery
	_ = c.QueryParser(&q)
	return q.ToPageRequest()
}

// paramID id numérico de la ruta; 0 si no es válido (el caso de uso lo rechaza).
func paramID(c *fiber.Ctx, name string) int64 {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// sendFile descarga un archivo generado.
func sendFile(c *fiber.Ctx, f *entity.ExportFile) error {
	c.Attachment(f.FileName)
	c.Set(fiber.HeaderContentType, f.ContentType)
	return c.Send(f.Data)
}
