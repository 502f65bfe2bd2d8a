package routes

import (
	"context"
	"meetapp/cmd/internal/service"
	"meetapp/cmd/internal/utils"
	"meetapp/cmd/internal/utils/apierror"
	"net/http"

	"github.com/labstack/echo/v4"
)

const calendarMIME = "text/calendar; charset=utf-8"

type SubscriptionService interface {
	GetSubscriptions(ctx context.Context, page int, viewerID int) (*service.SubscriptionsPage, apierror.ErrorResponse)
	Subscribe(ctx context.Context, meetupID int, viewerID int) (*service.SubscriptionResponse, apierror.ErrorResponse)
	Unsubscribe(ctx context.Context, id int, viewerID int) apierror.ErrorResponse
	GetCalendar(ctx context.Context, viewerID int) ([]byte, apierror.ErrorResponse)
}

type DefaultSubscriptionRoute struct {
	SubscriptionService SubscriptionService
}

func NewSubscriptionDefault(subService SubscriptionService) *DefaultSubscriptionRoute {
	return &DefaultSubscriptionRoute{SubscriptionService: subService}
}

func (s *DefaultSubscriptionRoute) GetSubscriptions(c echo.Context) error {
	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
	}

	page, apierr := parsePageQuery(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	result, apierr := s.SubscriptionService.GetSubscriptions(c.Request().Context(), page, data.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	setTotalPages(c, result.TotalPages)
	resp := echo.Map{"subscriptions": result.Subscriptions}
	return c.JSON(http.StatusOK, &resp)
}

func (s *DefaultSubscriptionRoute) CreateSubscription(c echo.Context) error {
	meetupID, apierr := parseIDParam(c, "id")
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
	}

	sub, apierr := s.SubscriptionService.Subscribe(c.Request().Context(), meetupID, data.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, sub)
}

func (s *DefaultSubscriptionRoute) DeleteSubscription(c echo.Context) error {
	id, apierr := parseIDParam(c, "id")
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
	}

	serr := s.SubscriptionService.Unsubscribe(c.Request().Context(), id, data.UserID)
	if serr != nil {
		return c.JSON(serr.Code(), serr)
	}
	return c.NoContent(http.StatusOK)
}

func (s *DefaultSubscriptionRoute) GetCalendar(c echo.Context) error {
	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
	}

	feed, apierr := s.SubscriptionService.GetCalendar(c.Request().Context(), data.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.Blob(http.StatusOK, calendarMIME, feed)
}
