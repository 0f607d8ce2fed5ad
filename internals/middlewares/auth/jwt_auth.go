// file: internals/middlewares/auth/jwt_auth.go
package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"academyku_backend/internals/configs"
	helper "academyku_backend/internals/helpers"
)

type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTAuth memverifikasi Bearer token dan menyimpan user_id + role di Locals.
func JWTAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Authorization header kosong")
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Format token harus Bearer")
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(configs.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Token tidak valid atau kadaluarsa")
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Klaim user_id tidak valid")
		}

		c.Locals("user_id", userID)
		c.Locals("role", claims.Role)
		return c.Next()
	}
}

// RequireRole: guard tambahan setelah JWTAuth (mis. "manager", "teacher").
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if _, ok := allowed[role]; !ok {
			return helper.JsonError(c, fiber.StatusForbidden, "Role tidak diizinkan mengakses resource ini")
		}
		return c.Next()
	}
}
