package service

import (
	"context"
	"fmt"
	"io"
	"meetapp/cmd/internal/domain/entity"
	"meetapp/cmd/internal/utils/apierror"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

type FileRepository interface {
	FindByID(ctx context.Context, id int) (*entity.File, error)
	Save(ctx context.Context, file *entity.File) error
}

type DefaultFileService struct {
	FileRepo  FileRepository
	Dir       string
	MaxBytes  int64
	PublicURL string
}

func NewFileService(fileRepo FileRepository, dir string, maxBytes int64, publicURL string) *DefaultFileService {
	return &DefaultFileService{FileRepo: fileRepo, Dir: dir, MaxBytes: maxBytes, PublicURL: publicURL}
}

// Upload stores an image on disk under a random name and records its metadata.
func (f *DefaultFileService) Upload(ctx context.Context, header *multipart.FileHeader) (*FileResponse, apierror.ErrorResponse) {
	if f.MaxBytes > 0 && header.Size > f.MaxBytes {
		return nil, apierror.FileTooLargeError
	}

	src, err := header.Open()
	if err != nil {
		log.Errorf("failed to open upload %s: %v", header.Filename, err)
		return nil, apierror.MalformedBodyError
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		log.Errorf("failed to detect type of upload %s: %v", header.Filename, err)
		return nil, apierror.MalformedBodyError
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, apierror.UnsupportedFileError
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		log.Errorf("failed to rewind upload %s: %v", header.Filename, err)
		return nil, apierror.InternalServerError
	}

	name := uuid.NewString() + mtype.Extension()
	if err := f.write(name, src); err != nil {
		log.Errorf("failed to store upload %s: %v", header.Filename, err)
		return nil, apierror.InternalServerError
	}

	file := &entity.File{Name: filepath.Base(header.Filename), Path: name}
	if err := f.FileRepo.Save(ctx, file); err != nil {
		_ = os.Remove(filepath.Join(f.Dir, name))
		log.Errorf("failed to save file metadata: %v", err)
		return nil, apierror.InternalServerError
	}
	return toFileResponse(file, f.PublicURL), nil
}

func (f *DefaultFileService) write(name string, src io.Reader) error {
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return err
	}

	dst, err := os.Create(filepath.Join(f.Dir, name))
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("copy: %w", err)
	}
	return dst.Close()
}
