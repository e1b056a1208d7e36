package server

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

// load JWKS once (Supabase auth endpoint)
func (s *Server) loadJWKS() (jwk.Set, error) {
	s.jwksOnce.Do(func() {
		s.jwksCache, s.jwksErr = jwk.Fetch(
			context.Background(),
			s.JWKSURL,
		)
	})
	return s.jwksCache, s.jwksErr
}

func (s *Server) JWTMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		keyset, err := s.loadJWKS()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "failed to load jwks",
			})
		}

		// Parse JWT automatically from Authorization: Bearer <token>
		token, err := jwt.ParseRequest(
			c.Request(),
			jwt.WithKeySet(keyset),
		)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"error": "Invalid token",
			})
		}

		sub, ok := token.Subject()
		if !ok {
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"error": "missing subject claim",
			})
		}

		c.Set("user_id", sub)

		return next(c)
	}
}
