package routes

import (
	"meetapp/cmd/internal/utils/apierror"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// TotalPagesHeader carries the page count of paginated listings.
const TotalPagesHeader = "X-Total-Page"

func parseIDParam(c echo.Context, name string) (int, apierror.ErrorResponse) {
	raw := strings.TrimSpace(c.Param(name))
	if raw == "" {
		return 0, apierror.NewMissingParamError(name)
	}

	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, apierror.NewSimple(http.StatusBadRequest, "ID is not a number")
	}
	return id, nil
}

func parsePageQuery(c echo.Context) (int, apierror.ErrorResponse) {
	raw := c.QueryParam("page")
	if raw == "" {
		return 1, nil
	}

	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, apierror.NewInvalidParamTypeError("page", "positive int")
	}
	return page, nil
}

func setTotalPages(c echo.Context, total int64) {
	c.Response().Header().Set(TotalPagesHeader, strconv.FormatInt(total, 10))
}
