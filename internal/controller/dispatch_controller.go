package controller

import (
	"agentcity-be/internal/dto"
	"agentcity-be/internal/pkg/serverutils"
	"agentcity-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDispatchController interface {
	RegisterRoutes(r fiber.Router)
	HandleTurn(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
}

type dispatchController struct {
	service service.IDispatcherService
}

func NewDispatchController(service service.IDispatcherService) IDispatchController {
	return &dispatchController{service: service}
}

func (c *dispatchController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/dispatch")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/", c.HandleTurn)
	h.Get("/history", c.GetHistory)
}

func (c *dispatchController) HandleTurn(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid user identity"))
	}

	var req dto.TurnRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.HandleTurn(ctx.Context(), userId, req.UserRequest)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Turn processed", res))
}

func (c *dispatchController) GetHistory(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid user identity"))
	}

	items, err := c.service.GetTurnHistory(ctx.Context(), userId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Planning history", items))
}
