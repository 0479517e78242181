package media

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	apperrors "github.com/yourusername/assessment-portal/internal/pkg/errors"
)

// CloudinaryRepo реализует repository.MediaRepository через Cloudinary
type CloudinaryRepo struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryRepo создает клиент Cloudinary по учётным данным аккаунта
func NewCloudinaryRepo(cloudName, apiKey, apiSecret string) (*CloudinaryRepo, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to init cloudinary client: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryRepo{cld: cld}, nil
}

// Upload загружает файл с фиксированным publicID в папку folder.
// Повторная загрузка с тем же publicID перезаписывает файл.
func (r *CloudinaryRepo) Upload(ctx context.Context, data []byte, publicID, folder string) (string, error) {
	resp, err := r.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID:  publicID,
		Folder:    folder,
		Overwrite: api.Bool(true),
	})
	if err != nil {
		log.Printf("[CloudinaryRepo] Ошибка загрузки %s/%s: %v", folder, publicID, err)
		return "", fmt.Errorf("%w: %v", apperrors.ErrUpstream, err)
	}
	if resp.Error.Message != "" {
		log.Printf("[CloudinaryRepo] Cloudinary отклонил загрузку %s/%s: %s", folder, publicID, resp.Error.Message)
		return "", fmt.Errorf("%w: %s", apperrors.ErrUpstream, resp.Error.Message)
	}
	if resp.SecureURL == "" {
		return "", fmt.Errorf("%w: empty secure_url in upload response", apperrors.ErrUpstream)
	}
	return resp.SecureURL, nil
}

// UnconfiguredRepo используется, когда учётные данные медиа-хостинга не заданы.
// Все загрузки завершаются ошибкой ErrUpstream.
type UnconfiguredRepo struct{}

// Upload всегда возвращает ошибку
func (UnconfiguredRepo) Upload(context.Context, []byte, string, string) (string, error) {
	return "", fmt.Errorf("%w: media host is not configured", apperrors.ErrUpstream)
}
