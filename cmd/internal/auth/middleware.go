package auth

import (
	"meetapp/cmd/internal/utils"
	"meetapp/cmd/internal/utils/apierror"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Middleware rejects requests without a valid session token and stores the
// caller's utils.TokenData in the echo context.
func (j *JWTAuth) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return c.JSON(apierror.InvalidAuthTokenError.Code(), apierror.InvalidAuthTokenError)
			}

			claims, err := j.ValidateToken(header)
			if err != nil {
				return c.JSON(apierror.InvalidAuthTokenError.Code(), apierror.InvalidAuthTokenError)
			}

			c.Set(utils.TokenDataKey, &utils.TokenData{
				Sub:    strconv.Itoa(claims.UserID),
				UserID: claims.UserID,
			})
			return next(c)
		}
	}
}
