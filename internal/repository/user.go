package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"mural/internal/model"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user. Unique violations on username/email map to
// the matching sentinel errors.
func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (username, email, password_hashed, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query, u.Username, u.Email, u.PasswordHashed).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			if pqErr.Constraint == "users_email_key" {
				return model.ErrEmailExists
			}
			return model.ErrUsernameExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.getBy(ctx, "id = $1", id)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getBy(ctx, "username = $1", username)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getBy(ctx, "email = $1", email)
}

func (r *userRepository) getBy(ctx context.Context, where string, arg interface{}) (*model.User, error) {
	query := `
		SELECT id, username, email, password_hashed, profile_pic_id, created_at, updated_at
		FROM users
		WHERE ` + where
	var u model.User
	err := r.db.GetContext(ctx, &u, query, arg)
	if err == sql.ErrNoRows {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// SetProfilePic points the user at a new media row.
func (r *userRepository) SetProfilePic(ctx context.Context, userID, mediaID int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET profile_pic_id = $1, updated_at = NOW() WHERE id = $2`, mediaID, userID)
	if err != nil {
		return fmt.Errorf("set profile pic: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

// Stats gathers the profile count block in a single statement.
func (r *userRepository) Stats(ctx context.Context, userID int64) (*model.UserStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM posts WHERE user_id = $1)                AS posts,
			(SELECT COUNT(*) FROM comments WHERE user_id = $1)             AS comments,
			(SELECT COUNT(*) FROM reactions WHERE user_id = $1)            AS reactions,
			(SELECT COUNT(*) FROM follows WHERE followed_id = $1)          AS followers,
			(SELECT COUNT(*) FROM follows WHERE follower_id = $1)          AS following
	`
	var stats model.UserStats
	if err := r.db.GetContext(ctx, &stats, query, userID); err != nil {
		return nil, fmt.Errorf("get user stats: %w", err)
	}
	return &stats, nil
}

func (r *userRepository) StatsByEmail(ctx context.Context, email string) (*model.UserStats, error) {
	user, err := r.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return r.Stats(ctx, user.ID)
}
