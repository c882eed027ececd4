package model

import (
	"errors"
	"time"
)

// MediaType mirrors the media.type column. Images are the only kind the
// client currently produces.
type MediaType string

const (
	MediaTypeImage MediaType = "image"
)

// Media is a stored image. Exactly one of Blob (inline base64 data URL,
// the default) or URL (object-storage reference, when offload is
// configured) is set.
type Media struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"-"`
	Type      MediaType `db:"type" json:"type"`
	Blob      *string   `db:"blob" json:"blob,omitempty"`
	URL       *string   `db:"url" json:"url,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"-"`
}

const (
	// MaxMediaBytes bounds a single decoded image.
	MaxMediaBytes = 10 * 1024 * 1024

	// Profile pictures are normalized to a square JPEG of this size.
	ProfilePicSize        = 400
	ProfilePicJPEGQuality = 85
)

var (
	ErrMediaNotFound    = errors.New("media not found")
	ErrInvalidImageData = errors.New("invalid image data")
	ErrImageTooLarge    = errors.New("image too large")
)
