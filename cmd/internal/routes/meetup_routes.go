package routes

import (
	"context"
	"meetapp/cmd/internal/service"
	"meetapp/cmd/internal/utils"
	"meetapp/cmd/internal/utils/apierror"
	"net/http"

	"github.com/labstack/echo/v4"
)

type MeetupService interface {
	GetMeetups(ctx context.Context, query *service.MeetupQuery, viewerID int) (*service.MeetupsPage, apierror.ErrorResponse)
	GetOrganizing(ctx context.Context, viewerID int) ([]*service.MeetupResponse, apierror.ErrorResponse)
	CreateMeetup(ctx context.Context, req *service.CreateMeetupRequest, viewerID int) (*service.MeetupResponse, apierror.ErrorResponse)
	UpdateMeetup(ctx context.Context, id int, req *service.UpdateMeetupRequest, viewerID int) (*service.MeetupResponse, apierror.ErrorResponse)
	DeleteMeetup(ctx context.Context, id int, viewerID int) apierror.ErrorResponse
}

type DefaultMeetupRoute struct {
	MeetupService MeetupService
}

func NewMeetupDefault(meetupService MeetupService) *DefaultMeetupRoute {
	return &DefaultMeetupRoute{MeetupService: meetupService}
}

func (m *DefaultMeetupRoute) GetMeetups(c echo.Context) error {
	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
	}

	page, apierr := parsePageQuery(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	query := &service.MeetupQuery{Date: c.QueryParam("date"), Page: page}
	result, apierr := m.MeetupService.GetMeetups(c.Request().Context(), query, data.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	setTotalPages(c, result.TotalPages)
	resp := echo.Map{"meetups": result.Meetups}
	return c.JSON(http.StatusOK, &resp)
}

func (m *DefaultMeetupRoute) GetOrganizing(c echo.Context) error {
	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
	}

	meetups, apierr := m.MeetupService.GetOrganizing(c.Request().Context(), data.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"meetups": meetups}
	return c.JSON(http.StatusOK, &resp)
}

func (m *DefaultMeetupRoute) CreateMeetup(c echo.Context) error {
	var req service.CreateMeetupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
	}

	meetup, apierr := m.MeetupService.CreateMeetup(c.Request().Context(), &req, data.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, meetup)
}

func (m *DefaultMeetupRoute) UpdateMeetup(c echo.Context) error {
	id, apierr := parseIDParam(c, "id")
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	var req service.UpdateMeetupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
	}

	meetup, apierr := m.MeetupService.UpdateMeetup(c.Request().Context(), id, &req, data.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, meetup)
}

func (m *DefaultMeetupRoute) DeleteMeetup(c echo.Context) error {
	id, apierr := parseIDParam(c, "id")
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
	}

	serr := m.MeetupService.DeleteMeetup(c.Request().Context(), id, data.UserID)
	if serr != nil {
		return c.JSON(serr.Code(), serr)
	}
	return c.NoContent(http.StatusOK)
}
