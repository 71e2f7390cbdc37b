package serverutils

import (
	"strings"

	"airport-assistant-be/internal/constant"

	"github.com/gofiber/fiber/v2"
)

const LocalAuthToken = "auth_token"

// AuthTokenMiddleware requires a session token in the x-auth-token header
// (or an "Authorization: Bearer" header) and stores it in ctx.Locals.
// Token validity is checked by the handler's service call.
func AuthTokenMiddleware(ctx *fiber.Ctx) error {
	token := strings.TrimSpace(ctx.Get(constant.AuthTokenHeader))
	if token == "" {
		authHeader := ctx.Get(fiber.HeaderAuthorization)
		if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
			token = strings.TrimSpace(authHeader[7:])
		}
	}

	if token == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": constant.MessageUnauthorized})
	}

	ctx.Locals(LocalAuthToken, token)
	return ctx.Next()
}

func AuthToken(ctx *fiber.Ctx) string {
	token, _ := ctx.Locals(LocalAuthToken).(string)
	return token
}
