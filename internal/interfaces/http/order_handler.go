package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-admin/internal/application/dto"
	"github.com/jhoicas/Inventario-admin/internal/application/usecase"
)

// OrderHandler página de pedidos: listado, carrito, estado, búsqueda y comprobante.
type OrderHandler struct {
	uc *usecase.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// List godoc
// @Summary      Página de pedidos (pedidos, clientes, productos y carrito)
// @Tags         orders
// @Produce      json
// @Param        page  query  int  false  "Página"  default(0)
// @Param        size  query  int  false  "Tamaño"  default(10)
// @Success      200   {object}  dto.Envelope{data=dto.OrdersView}
// @Router       /orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	return respond(c, fiber.StatusOK, h.uc.Load(c.UserContext(), GetSession(c), GetStorage(c), pageOf(c)))
}

// Search godoc
// @Summary      Buscar boletas por DNI y/o rango de fechas
// @Tags         orders
// @Produce      json
// @Param        dni          query  string  false  "DNI del cliente"
// @Param        estado       query  string  false  "Estado del pedido"
// @Param        fechaInicio  query  string  false  "YYYY-MM-DD"
// @Param        fechaFin     query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.Envelope{data=dto.OrdersView}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /orders/search [get]
func (h *OrderHandler) Search(c *fiber.Ctx) error {
	var q dto.OrderSearchQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	page := dto.PageQuery{Page: q.Page, Size: q.Size}.ToPageRequest()
	q.Page, q.Size = page.Page, page.Size
	out, err := h.uc.Search(c.UserContext(), GetSession(c), GetStorage(c), q)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// ChangeStatus godoc
// @Summary      Avanzar el estado de un pedido (ADMIN)
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del pedido"
// @Param        body  body  dto.OrderStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.Envelope{data=dto.OrdersView}
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /orders/{id}/estado [patch]
func (h *OrderHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.OrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ChangeStatus(c.UserContext(), GetSession(c), GetStorage(c), pageOf(c), paramID(c, "id"), in.Estado)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// Delete godoc
// @Summary      Eliminar pedido; sin confirm=true responde 409 con la pregunta
// @Tags         orders
// @Produce      json
// @Param        id       path   int   true   "ID del pedido"
// @Param        confirm  query  bool  false  "Confirmación"
// @Success      200  {object}  dto.Envelope{data=dto.OrdersView}
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /orders/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	out, err := h.uc.Delete(c.UserContext(), GetSession(c), GetStorage(c), pageOf(c), paramID(c, "id"), c.QueryBool("confirm"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// Receipt godoc
// @Summary      Comprobante PDF de un pedido entregado
// @Tags         orders
// @Produce      application/pdf
// @Param        id  path  int  true  "ID del pedido"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /orders/{id}/pdf [get]
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	file, err := h.uc.Receipt(c.UserContext(), GetSession(c), paramID(c, "id"))
	if err != nil {
		return fail(c, err)
	}
	return sendFile(c, file)
}

// ── Carrito ──────────────────────────────────────────────────────────────────

// Cart godoc
// @Summary      Carrito actual de la sesión
// @Tags         cart
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.CartView}
// @Router       /orders/cart [get]
func (h *OrderHandler) Cart(c *fiber.Ctx) error {
	return respond(c, fiber.StatusOK, h.uc.Cart(c.UserContext(), GetStorage(c)))
}

// AddItem godoc
// @Summary      Agregar producto al carrito
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CartItemRequest  true  "productoId, cantidad"
// @Success      200   {object}  dto.Envelope{data=dto.CartView}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /orders/cart/items [post]
func (h *OrderHandler) AddItem(c *fiber.Ctx) error {
	var in dto.CartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return h.cartResult(c)(h.uc.AddToCart(c.UserContext(), GetSession(c), GetStorage(c), in))
}

// UpdateItem godoc
// @Summary      Cambiar la cantidad de una línea del carrito
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        index  path  int  true  "Posición de la línea"
// @Param        body   body  dto.CartQuantityRequest  true  "cantidad"
// @Success      200    {object}  dto.Envelope{data=dto.CartView}
// @Router       /orders/cart/items/{index} [put]
func (h *OrderHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.CartQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return h.cartResult(c)(h.uc.UpdateCartQuantity(c.UserContext(), GetSession(c), GetStorage(c), lineIndex(c), in.Cantidad))
}

// RemoveItem godoc
// @Summary      Quitar una línea del carrito
// @Tags         cart
// @Produce      json
// @Param        index  path  int  true  "Posición de la línea"
// @Success      200    {object}  dto.Envelope{data=dto.CartView}
// @Router       /orders/cart/items/{index} [delete]
func (h *OrderHandler) RemoveItem(c *fiber.Ctx) error {
	return h.cartResult(c)(h.uc.RemoveCartItem(c.UserContext(), GetSession(c), GetStorage(c), lineIndex(c)))
}

// Clear godoc
// @Summary      Vaciar el carrito
// @Tags         cart
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.CartView}
// @Router       /orders/cart [delete]
func (h *OrderHandler) Clear(c *fiber.Ctx) error {
	return h.cartResult(c)(h.uc.ClearCart(c.UserContext(), GetSession(c), GetStorage(c)))
}

// UpdateForm godoc
// @Summary      Cliente, dirección, método de pago y estado del pedido en armado
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CartFormRequest  true  "Campos presentes"
// @Success      200   {object}  dto.Envelope{data=dto.CartView}
// @Router       /orders/cart [put]
func (h *OrderHandler) UpdateForm(c *fiber.Ctx) error {
	var in dto.CartFormRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return h.cartResult(c)(h.uc.UpdateCartForm(c.UserContext(), GetSession(c), GetStorage(c), in))
}

// Submit godoc
// @Summary      Crear el pedido con el carrito de la sesión
// @Tags         cart
// @Produce      json
// @Success      201  {object}  dto.Envelope{data=dto.OrdersView}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /orders/cart/submit [post]
func (h *OrderHandler) Submit(c *fiber.Ctx) error {
	out, err := h.uc.SubmitCart(c.UserContext(), GetSession(c), GetStorage(c), pageOf(c))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, out)
}

func (h *OrderHandler) cartResult(c *fiber.Ctx) func(*dto.CartView, error) error {
	return func(v *dto.CartView, err error) error {
		if err != nil {
			return fail(c, err)
		}
		return respond(c, fiber.StatusOK, v)
	}
}

// lineIndex posición de la línea; -1 si no es un entero (el carrito la rechaza).
func lineIndex(c *fiber.Ctx) int {
	i, err := c.ParamsInt("index", -1)
	if err != nil {
		return -1
	}
	return i
}
