package controller

import (
	"knowledge-assistant-be/internal/constant"
	"knowledge-assistant-be/internal/dto"
	"knowledge-assistant-be/internal/pkg/serverutils"
	"knowledge-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Query(ctx *fiber.Ctx) error
	SessionHistory(ctx *fiber.Ctx) error
	ListTickets(ctx *fiber.Ctx) error
	ListAuditLogs(ctx *fiber.Ctx) error
}

type assistantController struct {
	service service.IAssistantService
	auth    fiber.Handler
}

func NewAssistantController(service service.IAssistantService, jwtSecret string) IAssistantController {
	return &assistantController{
		service: service,
		auth:    serverutils.JwtMiddleware(jwtSecret),
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	h.Use(c.auth)
	h.Post("/query", c.Query)
	h.Get("/sessions/:sessionId/history", c.SessionHistory)
	h.Get("/tickets", serverutils.RequireRole(constant.RoleAdmin), c.ListTickets)
	h.Get("/audit", serverutils.RequireRole(constant.RoleAdmin), c.ListAuditLogs)
}

func (c *assistantController) Query(ctx *fiber.Ctx) error {
	userId, role, companyId := serverutils.Identity(ctx)

	var req dto.QueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Ask(ctx.UserContext(), service.Identity{
		UserId:    userId,
		Role:      role,
		CompanyId: companyId,
	}, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success answer query", res))
}

func (c *assistantController) SessionHistory(ctx *fiber.Ctx) error {
	userId, _, _ := serverutils.Identity(ctx)
	sessionId := ctx.Params("sessionId")

	res, err := c.service.GetSessionHistory(ctx.UserContext(), userId, sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get session history", res))
}

func (c *assistantController) ListTickets(ctx *fiber.Ctx) error {
	var req dto.ListTicketsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.ListTickets(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list fallback tickets", res))
}

func (c *assistantController) ListAuditLogs(ctx *fiber.Ctx) error {
	var req dto.ListAuditLogsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.ListAuditLogs(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list audit logs", res))
}
