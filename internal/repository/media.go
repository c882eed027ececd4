package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"mural/internal/model"
)

type mediaRepository struct {
	db *sqlx.DB
}

func NewMediaRepository(db *sqlx.DB) MediaRepository {
	return &mediaRepository{db: db}
}

const mediaInsert = `
	INSERT INTO media (user_id, type, blob, url, created_at)
	VALUES ($1, $2, $3, $4, NOW())
	RETURNING id, created_at
`

func (r *mediaRepository) Create(ctx context.Context, m *model.Media) error {
	err := r.db.QueryRowxContext(ctx, mediaInsert, m.UserID, m.Type, m.Blob, m.URL).
		Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert media: %w", err)
	}
	return nil
}

func (r *mediaRepository) CreateTx(ctx context.Context, tx *sqlx.Tx, m *model.Media) error {
	err := tx.QueryRowxContext(ctx, mediaInsert, m.UserID, m.Type, m.Blob, m.URL).
		Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert media: %w", err)
	}
	return nil
}

func (r *mediaRepository) GetByID(ctx context.Context, id int64) (*model.Media, error) {
	query := `SELECT id, user_id, type, blob, url, created_at FROM media WHERE id = $1`
	var m model.Media
	err := r.db.GetContext(ctx, &m, query, id)
	if err == sql.ErrNoRows {
		return nil, model.ErrMediaNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get media: %w", err)
	}
	return &m, nil
}

// ListByUser returns everything a user has ever uploaded, for the gallery
// view.
func (r *mediaRepository) ListByUser(ctx context.Context, userID int64) ([]model.Media, error) {
	query := `SELECT id, user_id, type, blob, url, created_at FROM media WHERE user_id = $1 ORDER BY id DESC`
	var media []model.Media
	if err := r.db.SelectContext(ctx, &media, query, userID); err != nil {
		return nil, fmt.Errorf("list media by user: %w", err)
	}
	return media, nil
}

func (r *mediaRepository) Attach(ctx context.Context, tx *sqlx.Tx, postID, mediaID int64) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO post_media (post_id, media_id) VALUES ($1, $2)`, postID, mediaID)
	if err != nil {
		return fmt.Errorf("attach media: %w", err)
	}
	return nil
}

// DetachExcept deletes join rows for attachments the client no longer
// keeps. With an empty keep list every attachment is detached.
func (r *mediaRepository) DetachExcept(ctx context.Context, tx *sqlx.Tx, postID int64, keep []int64) error {
	_, err := tx.ExecContext(ctx, `
		DELETE FROM post_media
		WHERE post_id = $1 AND NOT (media_id = ANY($2))
	`, postID, pq.Array(keep))
	if err != nil {
		return fmt.Errorf("detach media: %w", err)
	}
	return nil
}

// ForPosts fetches attachments for multiple posts in one query, grouped by
// post id for in-memory joining onto a listing.
func (r *mediaRepository) ForPosts(ctx context.Context, postIDs []int64) (map[int64][]model.Media, error) {
	if len(postIDs) == 0 {
		return map[int64][]model.Media{}, nil
	}

	query := `
		SELECT pm.post_id, m.id, m.user_id, m.type, m.blob, m.url, m.created_at
		FROM post_media pm
		JOIN media m ON m.id = pm.media_id
		WHERE pm.post_id = ANY($1)
		ORDER BY pm.post_id, pm.id
	`
	type attachmentRow struct {
		PostID int64 `db:"post_id"`
		model.Media
	}
	var rows []attachmentRow
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(postIDs)); err != nil {
		return nil, fmt.Errorf("get post media: %w", err)
	}

	result := make(map[int64][]model.Media)
	for _, row := range rows {
		result[row.PostID] = append(result[row.PostID], row.Media)
	}
	return result, nil
}
