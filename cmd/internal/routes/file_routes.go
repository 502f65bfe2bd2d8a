package routes

import (
	"context"
	"meetapp/cmd/internal/service"
	"meetapp/cmd/internal/utils/apierror"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"
)

type FileService interface {
	Upload(ctx context.Context, header *multipart.FileHeader) (*service.FileResponse, apierror.ErrorResponse)
}

type DefaultFileRoute struct {
	FileService FileService
}

func NewFileDefault(fileService FileService) *DefaultFileRoute {
	return &DefaultFileRoute{FileService: fileService}
}

func (f *DefaultFileRoute) CreateFile(c echo.Context) error {
	header, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MissingUploadFieldError)
	}

	file, apierr := f.FileService.Upload(c.Request().Context(), header)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, file)
}
