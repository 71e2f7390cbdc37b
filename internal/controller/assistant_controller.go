package controller

import (
	"errors"

	"airport-assistant-be/internal/constant"
	"airport-assistant-be/internal/dto"
	"airport-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type assistantController struct {
	service            service.IAssistantService
	exposeErrorDetails bool
}

func NewAssistantController(service service.IAssistantService, exposeErrorDetails bool) IAssistantController {
	return &assistantController{
		service:            service,
		exposeErrorDetails: exposeErrorDetails,
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	r.Post("/", c.Ask)
	r.Get("/health", c.Health)
}

func (c *assistantController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		// An unreadable body is treated like an empty question
		req.Query = ""
	}

	res, err := c.service.Ask(ctx.UserContext(), req.Query)
	if errors.Is(err, service.ErrMissingQuery) {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.AskResponse{Reply: constant.MessageEnterQuestion})
	}
	if err != nil {
		return err
	}

	if res.Outcome != dto.OutcomeGenericFallback {
		return ctx.JSON(dto.AskResponse{Reply: res.Reply})
	}

	detail := service.PublicMessage(res.Err)
	if c.exposeErrorDetails {
		detail = res.Err.Error()
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(dto.AskResponse{
		Reply: res.Reply,
		Error: detail,
	})
}

func (c *assistantController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.HealthResponse{
		Status:        "ok",
		AiConfigured:  c.service.Configured(),
		CachedAnswers: c.service.CachedAnswers(ctx.UserContext()),
	})
}
