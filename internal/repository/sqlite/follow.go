package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/cliphub/internal/repository"
)

// compile-time check that *DB implements repository.FollowRepository
var _ repository.FollowRepository = (*DB)(nil)

// CreateFollow inserts a follow edge. INSERT OR IGNORE plus the composite
// UNIQUE(follower_id, followee_id) index makes this idempotent: following
// someone twice leaves exactly one edge and no error.
func (db *DB) CreateFollow(ctx context.Context, followerID, followeeID string) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT OR IGNORE INTO follows (id, follower_id, followee_id, created_at)
		 VALUES (?, ?, ?, ?)`,
		xid.New().String(),
		followerID,
		followeeID,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting follow %s->%s: %w", followerID, followeeID, err)
	}
	return nil
}

// DeleteFollow removes a follow edge. Removing an edge that was never there is a
// no-op, matching CreateFollow's idempotence.
func (db *DB) DeleteFollow(ctx context.Context, followerID, followeeID string) error {
	_, err := db.conn.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = ? AND followee_id = ?`,
		followerID,
		followeeID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting follow %s->%s: %w", followerID, followeeID, err)
	}
	return nil
}

// FollowExists reports whether the directed edge follower→followee is present.
func (db *DB) FollowExists(ctx context.Context, followerID, followeeID string) (bool, error) {
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM follows WHERE follower_id = ? AND followee_id = ?`,
		followerID,
		followeeID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("sqlite: checking follow %s->%s: %w", followerID, followeeID, err)
	}
	return count > 0, nil
}

// FeedClipIDs is the personalized feed query: ids of clips authored by anyone
// the follower follows, most recent first. The whole feed is a single
// declarative join — no application-side merging.
func (db *DB) FeedClipIDs(ctx context.Context, followerID string) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT c.id
		 FROM clips c
		 JOIN follows f ON f.followee_id = c.author_id
		 WHERE f.follower_id = ?
		 ORDER BY c.created_at DESC`,
		followerID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: querying feed for %s: %w", followerID, err)
	}
	defer rows.Close()

	return scanIDs(rows)
}
