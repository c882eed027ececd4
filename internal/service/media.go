package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/jmoiron/sqlx"

	"mural/internal/config"
	"mural/internal/logger"
	"mural/internal/model"
	"mural/internal/repository"
)

// MediaService turns client-supplied base64 data URLs into media rows.
// By default the blob stays inline in the row, matching the system this
// replaces. When S3-compatible object storage is configured the decoded
// bytes are offloaded and the row keeps only the public URL.
type MediaService struct {
	mediaRepo repository.MediaRepository
	userRepo  repository.UserRepository

	s3Client  *s3.Client
	bucket    string
	publicURL string
}

func NewMediaService(ctx context.Context, cfg *config.Config, mediaRepo repository.MediaRepository, userRepo repository.UserRepository) (*MediaService, error) {
	svc := &MediaService{
		mediaRepo: mediaRepo,
		userRepo:  userRepo,
	}

	if !cfg.MediaOffloadEnabled() {
		return svc, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion(regionOrAuto(cfg.S3Region)),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	svc.s3Client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		o.UsePathStyle = true
	})
	svc.bucket = cfg.S3Bucket
	svc.publicURL = strings.TrimSuffix(cfg.S3PublicURL, "/")

	logger.S.Infow("media offload enabled", "bucket", svc.bucket)
	return svc, nil
}

func regionOrAuto(region string) string {
	if region == "" {
		return "auto"
	}
	return region
}

// StoreImage persists one image outside any transaction.
func (s *MediaService) StoreImage(ctx context.Context, userID int64, dataURL string) (*model.Media, error) {
	media, err := s.buildImage(ctx, userID, dataURL)
	if err != nil {
		return nil, err
	}
	if err := s.mediaRepo.Create(ctx, media); err != nil {
		return nil, err
	}
	return media, nil
}

// StoreImageTx persists one image inside the caller's transaction; used by
// the post media fan-out.
func (s *MediaService) StoreImageTx(ctx context.Context, tx *sqlx.Tx, userID int64, dataURL string) (*model.Media, error) {
	media, err := s.buildImage(ctx, userID, dataURL)
	if err != nil {
		return nil, err
	}
	if err := s.mediaRepo.CreateTx(ctx, tx, media); err != nil {
		return nil, err
	}
	return media, nil
}

// StoreProfilePicture normalizes the upload to a centered square JPEG
// before storing it.
func (s *MediaService) StoreProfilePicture(ctx context.Context, userID int64, dataURL string) (*model.Media, error) {
	_, raw, err := parseDataURL(dataURL)
	if err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, model.ErrInvalidImageData
	}
	square := imaging.Fill(img, model.ProfilePicSize, model.ProfilePicSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, square, imaging.JPEG, imaging.JPEGQuality(model.ProfilePicJPEGQuality)); err != nil {
		return nil, fmt.Errorf("encode profile picture: %w", err)
	}

	media := &model.Media{UserID: userID, Type: model.MediaTypeImage}
	if err := s.placeBlob(ctx, media, buf.Bytes(), "image/jpeg"); err != nil {
		return nil, err
	}
	if err := s.mediaRepo.Create(ctx, media); err != nil {
		return nil, err
	}
	return media, nil
}

// GetByID fetches one media row.
func (s *MediaService) GetByID(ctx context.Context, id int64) (*model.Media, error) {
	return s.mediaRepo.GetByID(ctx, id)
}

// Gallery returns everything a user has uploaded, newest-first.
func (s *MediaService) Gallery(ctx context.Context, username string) ([]model.Media, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.mediaRepo.ListByUser(ctx, user.ID)
}

// buildImage validates the data URL and decides where the bytes live.
func (s *MediaService) buildImage(ctx context.Context, userID int64, dataURL string) (*model.Media, error) {
	contentType, raw, err := parseDataURL(dataURL)
	if err != nil {
		return nil, err
	}

	media := &model.Media{UserID: userID, Type: model.MediaTypeImage}
	if s.s3Client == nil {
		// Inline storage keeps the original data URL untouched.
		media.Blob = &dataURL
		return media, nil
	}
	if err := s.placeBlob(ctx, media, raw, contentType); err != nil {
		return nil, err
	}
	return media, nil
}

// placeBlob uploads to object storage when configured, otherwise inlines
// the bytes as a data URL.
func (s *MediaService) placeBlob(ctx context.Context, media *model.Media, raw []byte, contentType string) error {
	if s.s3Client == nil {
		encoded := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(raw))
		media.Blob = &encoded
		return nil
	}

	key := fmt.Sprintf("media/%s%s", uuid.NewString(), extensionFor(contentType))
	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(raw),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("upload media: %w", err)
	}

	url := fmt.Sprintf("%s/%s", s.publicURL, key)
	media.URL = &url
	return nil
}

// parseDataURL splits a "data:<type>;base64,<payload>" string into its
// content type and decoded bytes.
func parseDataURL(dataURL string) (string, []byte, error) {
	if !strings.HasPrefix(dataURL, "data:") {
		return "", nil, model.ErrInvalidImageData
	}
	meta, payload, found := strings.Cut(dataURL[len("data:"):], ",")
	if !found || !strings.HasSuffix(meta, ";base64") {
		return "", nil, model.ErrInvalidImageData
	}
	contentType := strings.TrimSuffix(meta, ";base64")
	if !strings.HasPrefix(contentType, "image/") {
		return "", nil, model.ErrInvalidImageData
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, model.ErrInvalidImageData
	}
	if len(raw) == 0 {
		return "", nil, model.ErrInvalidImageData
	}
	if len(raw) > model.MaxMediaBytes {
		return "", nil, model.ErrImageTooLarge
	}
	return contentType, raw, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
