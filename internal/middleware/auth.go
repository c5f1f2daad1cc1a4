package middleware

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// AdminToken protects write routes with a static bearer token.
// Requests without a matching "Authorization: Bearer <token>" header get 401.
func AdminToken(token string) echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		KeyLookup:  "header:" + echo.HeaderAuthorization,
		AuthScheme: "Bearer",
		Validator: func(key string, c echo.Context) (bool, error) {
			ok := subtle.ConstantTimeCompare([]byte(key), []byte(token)) == 1
			if !ok {
				FromContext(c.Request().Context()).Warn("rejected admin token", "path", c.Path())
			}
			return ok, nil
		},
	})
}
