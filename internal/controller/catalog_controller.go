package controller

import (
	"ai-voiceshop-be/internal/dto"
	"ai-voiceshop-be/internal/pkg/serverutils"
	"ai-voiceshop-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICatalogController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Upsert(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type catalogController struct {
	service service.ICatalogService
}

func NewCatalogController(service service.ICatalogService) ICatalogController {
	return &catalogController{service: service}
}

func (c *catalogController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/catalog/v1")
	h.Get("/products", c.GetAll)
	h.Get("/products/:id", c.Show)
	// Catalog maintenance is operator-only.
	h.Put("/products", serverutils.JwtMiddleware, c.Upsert)
	h.Delete("/products/:id", serverutils.JwtMiddleware, c.Delete)
}

func (c *catalogController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.service.GetAll(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all products", res))
}

func (c *catalogController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.Show(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get product", res))
}

func (c *catalogController) Upsert(ctx *fiber.Ctx) error {
	var req dto.UpsertProductRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Upsert(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success upsert product", res))
}

func (c *catalogController) Delete(ctx *fiber.Ctx) error {
	if err := c.service.Delete(ctx.Context(), ctx.Params("id")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete product", nil))
}
