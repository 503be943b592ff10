package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/plm-api/internal/application/dto"
	"github.com/jhoicas/plm-api/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP de productos.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler de productos.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Description  Sin status el producto nace en DESIGN.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "productId, name, description, category, status"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidBody, Message: "cuerpo inválido"})
	}
	if err := validateStruct(in); err != nil {
		return writeError(c, "products.create", err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, "products.create", err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Param        category  query  string  false  "categoría exacta"
// @Param        q         query  string  false  "texto en nombre o descripción"
// @Success      200  {array}   dto.ProductResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var q dto.ProductListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeValidation, Message: "parámetros inválidos"})
	}
	list, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return writeError(c, "products.list", err)
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID interno"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, "products.get", err)
	}
	return c.JSON(out)
}

// GetByCode godoc
// @Summary      Obtener producto por código
// @Tags         products
// @Produce      json
// @Param        productId  path  string  true  "código de negocio"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/code/{productId} [get]
func (h *ProductHandler) GetByCode(c *fiber.Ctx) error {
	out, err := h.uc.GetByProductCode(c.UserContext(), c.Params("productId"))
	if err != nil {
		return writeError(c, "products.get_by_code", err)
	}
	return c.JSON(out)
}

// ListByStatus godoc
// @Summary      Listar productos por estado
// @Tags         products
// @Produce      json
// @Param        status  path  string  true  "DESIGN, PROTOTYPE, APPROVED, PRODUCTION, MARKET o DISCONTINUED"
// @Success      200  {array}   dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/status/{status} [get]
func (h *ProductHandler) ListByStatus(c *fiber.Ctx) error {
	list, err := h.uc.ListByStatus(c.UserContext(), c.Params("status"))
	if err != nil {
		return writeError(c, "products.list_by_status", err)
	}
	return c.JSON(list)
}

// UpdateStatus godoc
// @Summary      Cambiar estado
// @Description  Override administrativo: acepta cualquier estado válido, incluso hacia atrás.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID interno"
// @Param        body  body  dto.UpdateStatusRequest  true  "nuevo estado"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/status [put]
func (h *ProductHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidBody, Message: "cuerpo inválido"})
	}
	if err := validateStruct(in); err != nil {
		return writeError(c, "products.update_status", err)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, "products.update_status", err)
	}
	return c.JSON(out)
}

// Advance godoc
// @Summary      Avanzar al siguiente estado
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID interno"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/advance [post]
func (h *ProductHandler) Advance(c *fiber.Ctx) error {
	out, err := h.uc.AdvanceStatus(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, "products.advance", err)
	}
	return c.JSON(out)
}
