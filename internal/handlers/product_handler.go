package handlers

import (
	"shopapi/internal/models"
	"shopapi/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes, all behind authRequired.
// Updates use POST so that multipart bodies carrying a new image work.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	productRoutes := router.Group("/products", authRequired)
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Post("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleGetProducts lists every product.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	data := make([]models.ProductSummary, 0, len(products))
	for _, p := range products {
		data = append(data, p.Summary())
	}
	return c.JSON(fiber.Map{"data": data})
}

// HandleGetProduct returns a single product.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleCreateProduct creates a product from a multipart form with an image.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	in, err := readProductInput(c)
	if err != nil {
		return err
	}
	product, err := h.service.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": product})
}

// HandleUpdateProduct replaces a product's fields and optionally its image.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	in, err := readProductInput(c)
	if err != nil {
		return err
	}
	product, err := h.service.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleDeleteProduct deletes a product and its image.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

func readProductInput(c *fiber.Ctx) (services.ProductInput, error) {
	fields, err := readFields(c, "name", "description", "qty", "price")
	if err != nil {
		return services.ProductInput{}, err
	}
	image, err := readUpload(c, "image")
	if err != nil {
		return services.ProductInput{}, err
	}
	return services.ProductInput{
		Name:        fields["name"],
		Description: fields["description"],
		Qty:         fields["qty"],
		Price:       fields["price"],
		Image:       image,
	}, nil
}
