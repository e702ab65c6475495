package media

import (
	"context"
	"fmt"
	"io"

	"shop-mkononi/pkg/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// Uploader stores an image and returns its public URL
type Uploader interface {
	UploadImage(ctx context.Context, file io.Reader, folder string) (string, error)
}

type cloudinaryUploader struct {
	client     *cloudinary.Cloudinary
	baseFolder string
	log        *zap.Logger
}

func NewCloudinaryUploader(config utils.CloudinaryConfig, log *zap.Logger) (Uploader, error) {
	client, err := cloudinary.NewFromParams(config.CloudName, config.APIKey, config.APISecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary client: %w", err)
	}

	return &cloudinaryUploader{
		client:     client,
		baseFolder: config.Folder,
		log:        log.With(zap.String("component", "media")),
	}, nil
}

func (u *cloudinaryUploader) UploadImage(ctx context.Context, file io.Reader, folder string) (string, error) {
	result, err := u.client.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       fmt.Sprintf("%s/%s", u.baseFolder, folder),
		ResourceType: "image",
	})
	if err != nil {
		u.log.Error("Failed to upload image",
			zap.Error(err),
			zap.String("folder", folder),
		)
		return "", fmt.Errorf("upload image to %s: %w", folder, err)
	}

	return result.SecureURL, nil
}
