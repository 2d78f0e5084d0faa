package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/cliphub/internal/model"
	"github.com/sakif/cliphub/internal/repository"
)

// compile-time check that *DB implements repository.CommentRepository
var _ repository.CommentRepository = (*DB)(nil)

// CreateComment inserts a new comment. Existence of the clip and the author are
// the service layer's checks; by the time we get here both have passed.
func (db *DB) CreateComment(ctx context.Context, comment *model.Comment) error {
	comment.ID = xid.New().String()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO comments (id, clip_id, author_id, body, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		comment.ID,
		comment.ClipID,
		comment.AuthorID,
		comment.Body,
		comment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting comment: %w", err)
	}

	return nil
}

// ListCommentsForClip returns the clip's comments as denormalized views, newest
// first. Like clip info, the commenter's username resolves via LEFT JOIN so
// a comment whose author row has vanished still lists (with an empty
// author) rather than disappearing from the thread.
func (db *DB) ListCommentsForClip(ctx context.Context, clipID string) ([]model.CommentView, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT COALESCE(u.username, ''), cm.body, cm.created_at, cm.author_id
		 FROM comments cm
		 LEFT JOIN users u ON u.id = cm.author_id
		 WHERE cm.clip_id = ?
		 ORDER BY cm.created_at DESC`,
		clipID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing comments for clip %s: %w", clipID, err)
	}
	defer rows.Close()

	views := []model.CommentView{}
	for rows.Next() {
		var v model.CommentView
		if err := rows.Scan(&v.Author, &v.Comment, &v.Date, &v.AuthorID); err != nil {
			return nil, fmt.Errorf("sqlite: scanning comment row: %w", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating comments: %w", err)
	}

	return views, nil
}

// DeleteCommentsForClip removes every comment on the clip. Zero affected rows is
// fine — a clip without comments is not an error.
func (db *DB) DeleteCommentsForClip(ctx context.Context, clipID string) error {
	_, err := db.conn.ExecContext(ctx,
		`DELETE FROM comments WHERE clip_id = ?`,
		clipID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting comments for clip %s: %w", clipID, err)
	}
	return nil
}
