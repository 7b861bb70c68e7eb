package middleware

import (
	"TaskEval/Models"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// SecretKey returns the JWT signing secret. Resolved at call time, not
// package init, so a JWT_SECRET loaded from .env in main is honored.
func SecretKey() string {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return s
	}
	return "secret"
}

// BearerToken extracts the token from the Authorization header, falling
// back to the jwt cookie for browser sessions.
func BearerToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	if header != "" {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Cookies("jwt")
}

// ResolveUser validates a token and loads the matching user.
func ResolveUser(token string) (Models.User, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(SecretKey()), nil
	})
	if err != nil {
		return Models.User{}, err
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return Models.User{}, jwt.ErrTokenInvalidClaims
	}

	var user Models.User
	if result := Models.DB.Where("id = ?", claims.Issuer).First(&user); result.Error != nil {
		return Models.User{}, result.Error
	}
	return user, nil
}

// Verify requires a valid bearer token and stores the resolved user in the
// request context under "user".
func Verify() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := BearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Authorization missing",
			})
		}

		user, err := ResolveUser(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Login required",
			})
		}

		c.Locals("user", user)
		return c.Next()
	}
}

// CurrentUser returns the user stored by Verify.
func CurrentUser(c *fiber.Ctx) (Models.User, bool) {
	user, ok := c.Locals("user").(Models.User)
	return user, ok
}
