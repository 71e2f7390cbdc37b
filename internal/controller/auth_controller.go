package controller

import (
	"errors"

	"airport-assistant-be/internal/constant"
	"airport-assistant-be/internal/dto"
	"airport-assistant-be/internal/pkg/serverutils"
	"airport-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Signup(ctx *fiber.Ctx) error
	Signin(ctx *fiber.Ctx) error
	Profile(ctx *fiber.Ctx) error
	Signout(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
}

func NewAuthController(service service.IAuthService) IAuthController {
	return &authController{service: service}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	r.Post("/signup", c.Signup)
	r.Post("/signin", c.Signin)
	r.Get("/profile", serverutils.AuthTokenMiddleware, c.Profile)
	r.Post("/signout", serverutils.AuthTokenMiddleware, c.Signout)
}

func (c *authController) Signup(ctx *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := ctx.BodyParser(&req); err != nil {
		return message(ctx, fiber.StatusBadRequest, constant.MessageAllFieldsRequired)
	}

	if err := c.service.Signup(ctx.UserContext(), &req); err != nil {
		return authError(ctx, err)
	}
	return message(ctx, fiber.StatusCreated, constant.MessageAccountCreated)
}

func (c *authController) Signin(ctx *fiber.Ctx) error {
	var req dto.SigninRequest
	if err := ctx.BodyParser(&req); err != nil {
		return message(ctx, fiber.StatusBadRequest, constant.MessageAllFieldsRequired)
	}

	res, err := c.service.Signin(ctx.UserContext(), &req)
	if err != nil {
		return authError(ctx, err)
	}
	return ctx.JSON(res)
}

func (c *authController) Profile(ctx *fiber.Ctx) error {
	res, err := c.service.Profile(ctx.UserContext(), serverutils.AuthToken(ctx))
	if err != nil {
		return authError(ctx, err)
	}
	return ctx.JSON(res)
}

func (c *authController) Signout(ctx *fiber.Ctx) error {
	if err := c.service.Signout(ctx.UserContext(), serverutils.AuthToken(ctx)); err != nil {
		return authError(ctx, err)
	}
	return message(ctx, fiber.StatusOK, constant.MessageSignedOut)
}

// authError maps auth error kinds to their status; other errors go to the app ErrorHandler.
func authError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrMissingFields), errors.Is(err, service.ErrUsernameTaken):
		return message(ctx, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrUnauthorized):
		return message(ctx, fiber.StatusUnauthorized, err.Error())
	default:
		return err
	}
}

func message(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(dto.MessageResponse{Message: msg})
}
