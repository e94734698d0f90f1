package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/vendipos/backoffice-api/internal/application/dto"
	"github.com/vendipos/backoffice-api/internal/domain"
	"github.com/vendipos/backoffice-api/internal/domain/entity"
	"github.com/vendipos/backoffice-api/internal/domain/repository"
)

// ProductHandler alta y consulta de productos internos. Los productos deben
// existir antes de recibir lotes o mapear variaciones contra ellos.
type ProductHandler struct {
	products repository.ProductRepository
}

// NewProductHandler construye el handler de productos.
func NewProductHandler(products repository.ProductRepository) *ProductHandler {
	return &ProductHandler{products: products}
}

// Create procesa POST /api/products.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SKU == "" || in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sku y name son requeridos"})
	}
	product := &entity.Product{SKU: in.SKU, Name: in.Name}
	if err := h.products.Create(c.Context(), product); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SKU_EXISTS", Message: "el sku ya está registrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toProductDTO(product))
}

// GetByID procesa GET /api/products/:id. Con ?by=sku busca por SKU.
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	key := c.Params("id")
	var (
		product *entity.Product
		err     error
	)
	if c.Query("by") == "sku" {
		product, err = h.products.GetBySKU(c.Context(), key)
	} else {
		product, err = h.products.GetByID(c.Context(), key)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if product == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el producto no existe"})
	}
	return c.JSON(toProductDTO(product))
}

func toProductDTO(p *entity.Product) dto.ProductDTO {
	return dto.ProductDTO{ID: p.ID, SKU: p.SKU, Name: p.Name, CreatedAt: p.CreatedAt}
}
