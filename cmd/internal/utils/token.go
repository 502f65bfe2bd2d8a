package utils

import (
	"errors"

	"github.com/labstack/echo/v4"
)

// TokenDataKey is where the auth middleware stores the caller's TokenData.
const TokenDataKey = "token_data"

var ErrMissingTokenData = errors.New("no token data in context")

// TokenData identifies the authenticated caller.
type TokenData struct {
	Sub    string
	UserID int
}

func ParseTokenDataCtx(c echo.Context) (*TokenData, error) {
	data, ok := c.Get(TokenDataKey).(*TokenData)
	if !ok || data == nil {
		return nil, ErrMissingTokenData
	}
	return data, nil
}
