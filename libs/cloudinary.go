package libs

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"kuuslauk/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// uploadTransformation limits stored images to 1200x800 and lets Cloudinary
// pick quality and delivery format.
const uploadTransformation = "c_limit,w_1200,h_800/q_auto/f_auto"

var ErrImageNotFound = errors.New("image not found")

type UploadedImage struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

type ImageStore struct {
	cld    *cloudinary.Cloudinary
	folder string
	logger zerolog.Logger
}

func NewImageStore(cfg config.CloudinaryConfig, logger zerolog.Logger) (*ImageStore, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if cfg.CloudName != "" && cfg.APIKey != "" && cfg.APISecret != "" {
		cld, err = cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	} else if cfg.URL != "" {
		cld, err = cloudinary.NewFromURL(cfg.URL)
	} else {
		return nil, errors.New("cloudinary environment variables not set")
	}
	if err != nil {
		return nil, fmt.Errorf("cloudinary init failed: %w", err)
	}

	return &ImageStore{
		cld:    cld,
		folder: cfg.Folder,
		logger: logger.With().Str("lib", "cloudinary").Logger(),
	}, nil
}

// Upload accepts anything uploader.Upload does: a reader, a path or a URL.
func (s *ImageStore) Upload(ctx context.Context, file any) (*UploadedImage, error) {
	resp, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       uuid.NewString(),
		Folder:         s.folder,
		ResourceType:   "image",
		Transformation: uploadTransformation,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("upload failed")
		return nil, fmt.Errorf("cloudinary upload failed: %w", err)
	}
	if resp == nil {
		return nil, errors.New("cloudinary response is nil")
	}
	if resp.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload failed: %s", resp.Error.Message)
	}

	imageURL := resp.SecureURL
	if imageURL == "" {
		imageURL = resp.URL
	}
	if imageURL == "" {
		return nil, errors.New("both SecureURL and URL are empty")
	}

	s.logger.Info().Str("public_id", resp.PublicID).Int("bytes", resp.Bytes).Msg("image uploaded")

	return &UploadedImage{
		URL:      imageURL,
		PublicID: resp.PublicID,
		Width:    resp.Width,
		Height:   resp.Height,
	}, nil
}

func (s *ImageStore) Delete(ctx context.Context, publicID string) error {
	result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: publicID,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("public_id", publicID).Msg("delete failed")
		return fmt.Errorf("failed to delete from cloudinary: %w", err)
	}

	switch result.Result {
	case "ok":
		s.logger.Info().Str("public_id", publicID).Msg("image deleted")
		return nil
	case "not found":
		return ErrImageNotFound
	}
	return fmt.Errorf("cloudinary deletion failed: %s", result.Result)
}

// Sign produces the signature a browser needs for a direct signed upload.
func (s *ImageStore) Sign(params map[string]string) (string, error) {
	values := url.Values{}
	for k, v := range params {
		values.Set(k, v)
	}
	return api.SignParameters(values, s.cld.Config.Cloud.APISecret)
}
