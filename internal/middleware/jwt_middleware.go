package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"wishlist/internal/apperror"
	"wishlist/internal/models"
)

// userKey is the fiber locals key holding the authenticated *models.User.
const userKey = "user"

// Authenticator resolves a bearer token to a user.
// *services.AuthService implements it.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// AuthRequired is a Fiber middleware that rejects requests without a valid
// bearer token. The resolved user is available through CurrentUser.
func AuthRequired(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c, "Authorization header is required")
		}

		token, ok := bearerToken(authHeader)
		if !ok {
			return unauthorized(c, "Authorization header format must be 'Bearer <token>'")
		}

		user, err := auth.Authenticate(c.UserContext(), token)
		if err != nil {
			if apperror.KindOf(err) == apperror.KindAuthentication {
				c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			}
			return err
		}

		c.Locals(userKey, user)
		return c.Next()
	}
}

// AuthOptional resolves the user when a valid bearer token is present and
// otherwise lets the request through anonymously.
func AuthOptional(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token, ok := bearerToken(c.Get(fiber.HeaderAuthorization)); ok {
			if user, err := auth.Authenticate(c.UserContext(), token); err == nil {
				c.Locals(userKey, user)
			}
		}
		return c.Next()
	}
}

// CurrentUser returns the user stored by AuthRequired or AuthOptional, or
// nil for anonymous requests.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userKey).(*models.User)
	return user
}

// bearerToken extracts the token from "Bearer <token>". The scheme is
// case-insensitive.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(c *fiber.Ctx, message string) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return apperror.Authentication(message)
}
