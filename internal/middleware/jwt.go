package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/AdityaYInamdar/interview-portal-backend/internal/service"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/utils"
)

// JWTProtected returns a middleware that validates JWT bearer tokens and
// binds the resulting actor to the request. Guest tokens, issued for
// email-link joins, carry an interview scope instead of an account.
func JWTProtected(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := c.Get("Authorization")
		if authorization == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authorization header missing")
		}

		const bearer = "Bearer "
		if !strings.HasPrefix(strings.ToLower(authorization), strings.ToLower(bearer)) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid authorization header")
		}

		tokenString := strings.TrimSpace(authorization[len(bearer):])
		if tokenString == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token claims")
		}

		actor := actorFromClaims(claims)
		if actor.ID == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token subject")
		}

		c.Locals("user_id", actor.ID)
		c.Locals("user_role", actor.Role)
		c.Locals("actor", actor)

		return c.Next()
	}
}

func actorFromClaims(claims jwt.MapClaims) service.Actor {
	actor := service.Actor{
		ID:   extractStringClaim(claims, "sub", "user_id", "id"),
		Role: normalizeRole(claims["role"]),
	}
	if guest, ok := claims["is_guest"].(bool); ok && guest {
		actor.Guest = true
		actor.InterviewID = extractStringClaim(claims, "interview_id")
	}
	return actor
}

func extractStringClaim(claims jwt.MapClaims, keys ...string) string {
	for _, key := range keys {
		if value, ok := claims[key].(string); ok {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

func normalizeRole(value interface{}) string {
	switch v := value.(type) {
	case string:
		return strings.ToLower(strings.TrimSpace(v))
	case []interface{}:
		for _, item := range v {
			if str, ok := item.(string); ok {
				role := strings.ToLower(strings.TrimSpace(str))
				if role != "" {
					return role
				}
			}
		}
	default:
		return ""
	}
	return ""
}

// ActorFromCtx returns the actor bound by JWTProtected, or a zero Actor when
// the route is unauthenticated.
func ActorFromCtx(c *fiber.Ctx) service.Actor {
	if value := c.Locals("actor"); value != nil {
		if actor, ok := value.(service.Actor); ok {
			return actor
		}
	}
	return service.Actor{}
}
