package serverutils

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Locals keys set by JwtMiddleware
const (
	LocalUserID    = "user_id"
	LocalRole      = "role"
	LocalCompanyID = "company_id"
)

var errNoSigningSecret = errors.New("jwt signing secret is not configured")

// JwtMiddleware verifies HMAC-signed bearer tokens with secret.
// An empty secret rejects every token.
func JwtMiddleware(secret string) fiber.Handler {
	key := []byte(secret)
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
		}
		tokenStr := authHeader[7:]

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if len(key) == 0 {
				return nil, errNoSigningSecret
			}
			return key, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS384.Alg(), jwt.SigningMethodHS512.Alg()}))

		if err != nil || !token.Valid {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
		}

		return authorize(ctx, token)
	}
}

func authorize(ctx *fiber.Ctx, token *jwt.Token) error {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid claims"))
	}

	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	if userID == "" || role == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Token is missing user_id or role"))
	}
	companyID, _ := claims["company_id"].(string)

	ctx.Locals(LocalUserID, userID)
	ctx.Locals(LocalRole, role)
	ctx.Locals(LocalCompanyID, companyID)
	return ctx.Next()
}

// RequireRole must run after JwtMiddleware
func RequireRole(roles ...string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		role, _ := ctx.Locals(LocalRole).(string)
		for _, r := range roles {
			if strings.EqualFold(r, role) {
				return ctx.Next()
			}
		}
		return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse(fiber.StatusForbidden, "Access denied"))
	}
}

// Identity reads what JwtMiddleware stored
func Identity(ctx *fiber.Ctx) (userID, role, companyID string) {
	userID, _ = ctx.Locals(LocalUserID).(string)
	role, _ = ctx.Locals(LocalRole).(string)
	companyID, _ = ctx.Locals(LocalCompanyID).(string)
	return userID, role, companyID
}
