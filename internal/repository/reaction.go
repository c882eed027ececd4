package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"mural/internal/model"
)

type reactionRepository struct {
	db *sqlx.DB
}

func NewReactionRepository(db *sqlx.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

// targetColumn maps a target kind onto its reactions column. The kind is a
// closed enum, never caller-supplied text, so interpolating the result
// into SQL is safe.
func targetColumn(target model.TargetKind) (string, error) {
	switch target {
	case model.TargetPost:
		return "post_id", nil
	case model.TargetComment:
		return "comment_id", nil
	}
	return "", fmt.Errorf("unknown reaction target %q", target)
}

// Create appends a reaction row. There is deliberately no dedup check:
// the data layer accepts duplicate (user, target, type) rows, matching
// the behavior the client's optimistic UI was built against.
func (r *reactionRepository) Create(ctx context.Context, reaction *model.Reaction) error {
	query := `
		INSERT INTO reactions (user_id, type, post_id, comment_id, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query, reaction.UserID, reaction.Type, reaction.PostID, reaction.CommentID).
		Scan(&reaction.ID, &reaction.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert reaction: %w", err)
	}
	return nil
}

// Delete removes one reaction matched by (user, target, type).
func (r *reactionRepository) Delete(ctx context.Context, userID int64, target model.TargetKind, targetID int64, typ model.ReactionType) error {
	column, err := targetColumn(target)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		DELETE FROM reactions
		WHERE id = (
			SELECT id FROM reactions
			WHERE user_id = $1 AND %s = $2 AND type = $3
			LIMIT 1
		)
	`, column)
	result, err := r.db.ExecContext(ctx, query, userID, targetID, typ)
	if err != nil {
		return fmt.Errorf("delete reaction: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrReactionNotFound
	}
	return nil
}

// CountByTarget issues the grouped-count query behind every breakdown:
// one row per (target id, reaction kind) with its count.
func (r *reactionRepository) CountByTarget(ctx context.Context, target model.TargetKind, targetIDs []int64) (map[int64]map[model.ReactionType]int, error) {
	if len(targetIDs) == 0 {
		return map[int64]map[model.ReactionType]int{}, nil
	}

	column, err := targetColumn(target)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s AS target_id, type, COUNT(*) AS count
		FROM reactions
		WHERE %s = ANY($1)
		GROUP BY %s, type
	`, column, column, column)

	type countRow struct {
		TargetID int64              `db:"target_id"`
		Type     model.ReactionType `db:"type"`
		Count    int                `db:"count"`
	}
	var rows []countRow
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(targetIDs)); err != nil {
		return nil, fmt.Errorf("count reactions: %w", err)
	}

	result := make(map[int64]map[model.ReactionType]int)
	for _, row := range rows {
		if result[row.TargetID] == nil {
			result[row.TargetID] = make(map[model.ReactionType]int)
		}
		result[row.TargetID][row.Type] = row.Count
	}
	return result, nil
}

// ViewerReactions lists which kinds the viewer personally applied to each
// target.
func (r *reactionRepository) ViewerReactions(ctx context.Context, viewerID int64, target model.TargetKind, targetIDs []int64) (map[int64][]model.ReactionType, error) {
	if len(targetIDs) == 0 {
		return map[int64][]model.ReactionType{}, nil
	}

	column, err := targetColumn(target)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT DISTINCT %s AS target_id, type
		FROM reactions
		WHERE user_id = $1 AND %s = ANY($2)
	`, column, column)

	type viewerRow struct {
		TargetID int64              `db:"target_id"`
		Type     model.ReactionType `db:"type"`
	}
	var rows []viewerRow
	err = r.db.SelectContext(ctx, &rows, query, viewerID, pq.Array(targetIDs))
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("get viewer reactions: %w", err)
	}

	result := make(map[int64][]model.ReactionType)
	for _, row := range rows {
		result[row.TargetID] = append(result[row.TargetID], row.Type)
	}
	return result, nil
}
