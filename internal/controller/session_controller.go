package controller

import (
	"strconv"

	"ai-voiceshop-be/internal/dto"
	"ai-voiceshop-be/internal/pkg/serverutils"
	"ai-voiceshop-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Extend(ctx *fiber.Ctx) error
}

type sessionController struct {
	service service.ISessionService
}

func NewSessionController(service service.ISessionService) ISessionController {
	return &sessionController{service: service}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1")
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
	h.Put(":id/extend", c.Extend)
}

func (c *sessionController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.Show(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse("Session not found or expired"))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get session", res))
}

func (c *sessionController) Delete(ctx *fiber.Ctx) error {
	deleted, err := c.service.Delete(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	if !deleted {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse("Session not found or expired"))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete session", nil))
}

func (c *sessionController) Extend(ctx *fiber.Ctx) error {
	seconds, err := strconv.Atoi(ctx.Query("seconds", "0"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("seconds must be an integer"))
	}

	extended, err := c.service.Extend(ctx.Context(), ctx.Params("id"), seconds)
	if err != nil {
		return err
	}
	if !extended {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse("Session not found or expired"))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success extend session", nil))
}
