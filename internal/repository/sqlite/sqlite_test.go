package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sakif/cliphub/internal/model"
)

// newTestDB opens a fresh in-memory database per test — the same
// isolated-store-per-test pattern the services are tested with.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *DB, username string) *model.User {
	t.Helper()
	user := &model.User{Username: username, PasswordHash: "$2a$04$notarealhash"}
	if err := db.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// createTestClip inserts a clip with an explicit creation time so ordering
// assertions don't depend on insert timing.
func createTestClip(t *testing.T, db *DB, authorID, title string, createdAt time.Time) *model.Clip {
	t.Helper()
	clip := &model.Clip{
		BinaryHandle: uuid.NewString(),
		AuthorID:     authorID,
		Title:        title,
		CreatedAt:    createdAt,
	}
	if err := db.CreateClip(context.Background(), clip); err != nil {
		t.Fatalf("failed to create test clip: %v", err)
	}
	return clip
}

func createTestComment(t *testing.T, db *DB, clipID, authorID, body string, createdAt time.Time) *model.Comment {
	t.Helper()
	comment := &model.Comment{
		ClipID:    clipID,
		AuthorID:  authorID,
		Body:      body,
		CreatedAt: createdAt,
	}
	if err := db.CreateComment(context.Background(), comment); err != nil {
		t.Fatalf("failed to create test comment: %v", err)
	}
	return comment
}
