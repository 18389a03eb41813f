package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/freshmarket/internal/middleware"
	"github.com/example/freshmarket/internal/models"
	"github.com/example/freshmarket/internal/repository"
)

// ProductHandler manages product CRUD.
type ProductHandler struct {
	repos *repository.Repositories
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(repos *repository.Repositories) *ProductHandler {
	return &ProductHandler{repos: repos}
}

// ListProducts returns the catalog, optionally filtered by category and a
// case-insensitive name search.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	var (
		products []models.Product
		err      error
	)

	if raw := c.Query("category"); raw != "" && raw != "All" {
		category := models.Category(raw)
		if !category.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "unknown category")
		}
		products, err = h.repos.Products.ByCategory(c.UserContext(), category)
	} else {
		products, err = h.repos.Products.GetAll(c.UserContext())
	}
	if err != nil {
		return repoError(err)
	}

	if search := strings.ToLower(strings.TrimSpace(c.Query("search"))); search != "" {
		matched := make([]models.Product, 0, len(products))
		for _, p := range products {
			if strings.Contains(strings.ToLower(p.Name), search) {
				matched = append(matched, p)
			}
		}
		products = matched
	}

	return c.JSON(fiber.Map{"success": true, "data": products})
}

// ListCategories returns the category names in display order.
func (h *ProductHandler) ListCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "data": models.Categories()})
}

// GetProduct returns a single product.
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.repos.Products.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return repoError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": product})
}

// CreateProduct handles product creation.
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req models.Product
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	product, err := h.repos.Products.Create(c.UserContext(), middleware.CurrentCaller(c), req)
	if err != nil {
		return repoError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": product})
}

// UpdateProduct replaces an existing product.
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	var req models.Product
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	req.ID = c.Params("id")

	product, err := h.repos.Products.Update(c.UserContext(), middleware.CurrentCaller(c), req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return repoError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": product})
}

// DeleteProduct removes a product. Deleting a missing product succeeds.
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.repos.Products.Delete(c.UserContext(), middleware.CurrentCaller(c), c.Params("id")); err != nil {
		return repoError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
