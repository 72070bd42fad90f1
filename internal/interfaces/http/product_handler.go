package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-admin/internal/application/dto"
	"github.com/jhoicas/Inventario-admin/internal/application/usecase"
)

// ProductHandler página de productos (protegido).
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// List godoc
// @Summary      Página de productos
// @Tags         products
// @Produce      json
// @Param        page  query  int  false  "Página"  default(0)
// @Param        size  query  int  false  "Tamaño"  default(10)
// @Success      200   {object}  dto.Envelope{data=dto.ProductsView}
// @Router       /products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	return respond(c, fiber.StatusOK, h.uc.Load(c.UserContext(), GetSession(c), pageOf(c)))
}

// Create godoc
// @Summary      Crear producto (ADMIN)
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.Envelope{data=dto.ProductsView}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductRequest
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
// @Summary      Actualizar producto (ADMIN)
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.ProductRequest  true  "Datos del producto"
// @Success      200   {object}  dto.Envelope{data=dto.ProductsView}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.ProductRequest
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
// @Summary      Eliminar producto (ADMIN); sin confirm=true responde 409 con la pregunta
// @Tags         products
// @Produce      json
// @Param        id       path   int   true   "ID del producto"
// @Param        confirm  query  bool  false  "Confirmación"
// @Success      200  {object}  dto.Envelope{data=dto.ProductsView}
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	out, err := h.uc.Delete(c.UserContext(), GetSession(c), pageOf(c), paramID(c, "id"), c.QueryBool("confirm"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}
