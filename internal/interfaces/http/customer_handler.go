package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-admin/internal/application/dto"
	"github.com/jhoicas/Inventario-admin/internal/application/usecase"
)

// CustomerHandler página de clientes (protegido).
type CustomerHandler struct {
	uc *usecase.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// List godoc
// @Summary      Página de clientes
// @Tags         customers
// @Produce      json
// @Param        page  query  int  false  "Página"  default(0)
// @Param        size  query  int  false  "Tamaño"  default(10)
// @Success      200   {object}  dto.Envelope{data=dto.CustomersView}
// @Router       /customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	return respond(c, fiber.StatusOK, h.uc.Load(c.UserContext(), GetSession(c), pageOf(c)))
}

// Create godoc
// @Summary      Crear cliente
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CustomerRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.Envelope{data=dto.CustomersView}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetSession(c), pageOf(c), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, out)
}

// Update godoc
// @Summary      Actualizar cliente
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del cliente"
// @Param        body  body  dto.CustomerRequest  true  "Datos del cliente"
// @Success      200   {object}  dto.Envelope{data=dto.CustomersView}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetSession(c), pageOf(c), paramID(c, "id"), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// Delete godoc
// @Summary      Eliminar cliente; sin confirm=true responde 409 con la pregunta
// @Tags         customers
// @Produce      json
// @Param        id       path   int   true   "ID del cliente"
// @Param        confirm  query  bool  false  "Confirmación"
// @Success      200  {object}  dto.Envelope{data=dto.CustomersView}
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	out, err := h.uc.Delete(c.UserContext(), GetSession(c), pageOf(c), paramID(c, "id"), c.QueryBool("confirm"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}
