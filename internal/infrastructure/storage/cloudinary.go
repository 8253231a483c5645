package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"hospital-portal/config"
	domainRepo "hospital-portal/internal/domain/repository"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CloudinaryStore uploads files to Cloudinary and returns their secure URL.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
	cfg config.CloudinaryConfig
	log *logrus.Logger
}

var _ domainRepo.BlobStore = (*CloudinaryStore)(nil)

func NewCloudinaryStore(cfg config.CloudinaryConfig, log *logrus.Logger) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return &CloudinaryStore{cld: cld, cfg: cfg, log: log}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, name string, file io.Reader) (string, error) {
	params := uploader.UploadParams{
		PublicID:     publicID(name),
		Folder:       s.cfg.Folder,
		UploadPreset: s.cfg.UploadPreset,
		ResourceType: "auto",
	}

	resp, err := s.cld.Upload.Upload(ctx, file, params)
	if err != nil {
		return "", fmt.Errorf("cloudinary upload %s: %w", name, err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload %s: %w", name, errors.New(resp.Error.Message))
	}
	if resp.SecureURL == "" {
		return "", fmt.Errorf("cloudinary upload %s: empty url", name)
	}

	s.log.Debugf("Uploaded %s to %s", name, resp.SecureURL)
	return resp.SecureURL, nil
}

// publicID keeps the readable base name and makes it unique.
func publicID(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" || base == "." {
		return uuid.NewString()
	}
	return base + "_" + uuid.NewString()[:8]
}
