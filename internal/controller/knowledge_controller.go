package controller

import (
	"knowledge-assistant-be/internal/constant"
	"knowledge-assistant-be/internal/dto"
	"knowledge-assistant-be/internal/pkg/serverutils"
	"knowledge-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IKnowledgeController interface {
	RegisterRoutes(r fiber.Router)
	Ingest(ctx *fiber.Ctx) error
	Deactivate(ctx *fiber.Ctx) error
}

type knowledgeController struct {
	service service.IKnowledgeService
	auth    fiber.Handler
}

func NewKnowledgeController(service service.IKnowledgeService, jwtSecret string) IKnowledgeController {
	return &knowledgeController{
		service: service,
		auth:    serverutils.JwtMiddleware(jwtSecret),
	}
}

func (c *knowledgeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/knowledge/v1")
	h.Use(c.auth, serverutils.RequireRole(constant.RoleAdmin))
	h.Post("/documents", c.Ingest)
	h.Put("/documents/:id/deactivate", c.Deactivate)
}

func (c *knowledgeController) Ingest(ctx *fiber.Ctx) error {
	var req dto.IngestDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.IngestDocument(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success ingest document", res))
}

func (c *knowledgeController) Deactivate(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid document id")
	}

	res, err := c.service.DeactivateDocument(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success deactivate document", res))
}
