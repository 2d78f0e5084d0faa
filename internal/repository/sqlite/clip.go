package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/cliphub/internal/apperror"
	"github.com/sakif/cliphub/internal/model"
	"github.com/sakif/cliphub/internal/repository"
)

// compile-time check that *DB implements repository.ClipRepository
var _ repository.ClipRepository = (*DB)(nil)

// CreateClip inserts a new clip row. The binary handle must already be set by
// the caller — the row is only written after the payload has been stored
// under that handle, so the row never references a blob that does not exist.
//
// CreatedAt is honoured if the caller pre-set it (tests pin ordering that
// way, mirroring how the listing queries are exercised); otherwise it is set
// to now.
func (db *DB) CreateClip(ctx context.Context, clip *model.Clip) error {
	clip.ID = xid.New().String()
	if clip.CreatedAt.IsZero() {
		clip.CreatedAt = time.Now()
	}

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO clips (id, binary_handle, author_id, title, description, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		clip.ID,
		clip.BinaryHandle,
		clip.AuthorID,
		clip.Title,
		clip.Description,
		clip.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting clip: %w", err)
	}

	return nil
}

// GetClipByID retrieves a single clip by its ID.
func (db *DB) GetClipByID(ctx context.Context, id string) (*model.Clip, error) {
	var c model.Clip

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, binary_handle, author_id, title, description, created_at
		 FROM clips WHERE id = ?`,
		id,
	).Scan(
		&c.ID,
		&c.BinaryHandle,
		&c.AuthorID,
		&c.Title,
		&c.Description,
		&c.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFoundID("clip", id)
		}
		return nil, fmt.Errorf("sqlite: getting clip %s: %w", id, err)
	}

	return &c, nil
}

// ListClipIDs returns every clip id, most recent first.
func (db *DB) ListClipIDs(ctx context.Context) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id FROM clips ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing clip ids: %w", err)
	}
	defer rows.Close()

	return scanIDs(rows)
}

// ListClipIDsByAuthor returns the given author's clip ids, most recent first.
// An author with no clips (or one that never existed) yields an empty slice.
func (db *DB) ListClipIDsByAuthor(ctx context.Context, authorID string) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id FROM clips WHERE author_id = ? ORDER BY created_at DESC`,
		authorID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing clip ids for author %s: %w", authorID, err)
	}
	defer rows.Close()

	return scanIDs(rows)
}

// GetClipInfo returns the denormalized clip view. The author's username comes
// from a LEFT JOIN: because uploads never validate author existence, the
// join may find no user, in which case the author field is empty rather
// than the whole lookup failing.
func (db *DB) GetClipInfo(ctx context.Context, id string) (*model.ClipInfo, error) {
	var info model.ClipInfo

	err := db.conn.QueryRowContext(ctx,
		`SELECT c.title, c.description, COALESCE(u.username, ''), c.created_at, c.author_id
		 FROM clips c
		 LEFT JOIN users u ON u.id = c.author_id
		 WHERE c.id = ?`,
		id,
	).Scan(
		&info.Title,
		&info.Description,
		&info.Author,
		&info.Date,
		&info.AuthorID,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFoundID("clip", id)
		}
		return nil, fmt.Errorf("sqlite: getting clip info %s: %w", id, err)
	}

	return &info, nil
}

// CountClipsByAuthor returns the number of clips the author has uploaded.
func (db *DB) CountClipsByAuthor(ctx context.Context, authorID string) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM clips WHERE author_id = ?`,
		authorID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting clips for author %s: %w", authorID, err)
	}
	return count, nil
}

// DeleteClip removes a clip row. RowsAffected distinguishes "deleted" from
// "never existed", so a repeated delete reports NotFound.
func (db *DB) DeleteClip(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM clips WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting clip %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFoundID("clip", id)
	}

	return nil
}

// scanIDs drains a single-column id result set.
func scanIDs(rows *sql.Rows) ([]string, error) {
	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("sqlite: scanning id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating ids: %w", err)
	}
	return ids, nil
}
