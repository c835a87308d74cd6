package controller

import (
	"time"

	"agentcity-be/internal/dto"
	"agentcity-be/internal/pkg/serverutils"
	"agentcity-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPlanController interface {
	RegisterRoutes(r fiber.Router)
	GetPlans(ctx *fiber.Ctx) error
	GetTransactions(ctx *fiber.Ctx) error
}

type planController struct {
	service service.IPlanService
}

func NewPlanController(service service.IPlanService) IPlanController {
	return &planController{service: service}
}

func (c *planController) RegisterRoutes(r fiber.Router) {
	plans := r.Group("/plans")
	plans.Use(serverutils.JwtMiddleware)
	plans.Get("/", c.GetPlans)

	txns := r.Group("/transactions")
	txns.Use(serverutils.JwtMiddleware)
	txns.Get("/", c.GetTransactions)
}

func (c *planController) GetPlans(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid user identity"))
	}

	query := dto.PlanQuery{
		Location: ctx.Query("location"),
		Limit:    ctx.QueryInt("limit", 0),
		Offset:   ctx.QueryInt("offset", 0),
	}

	items, err := c.service.GetPlans(ctx.Context(), userId, query)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Dispatch plans", items))
}

func (c *planController) GetTransactions(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid user identity"))
	}

	query := dto.TransactionQuery{
		Category: ctx.Query("category"),
		Location: ctx.Query("location"),
		Limit:    ctx.QueryInt("limit", 0),
		Offset:   ctx.QueryInt("offset", 0),
	}
	if raw := ctx.Query("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "since must be an RFC 3339 timestamp"))
		}
		query.Since = &since
	}

	items, err := c.service.GetTransactions(ctx.Context(), userId, query)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Transaction history", items))
}
