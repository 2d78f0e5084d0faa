package sqlite

import (
	"context"
	"testing"
	"time"
)

func TestListCommentsForClip_NewestFirst(t *testing.T) {
	db := newTestDB(t)

	author := createTestUser(t, db, "bob")
	clip := createTestClip(t, db, author.ID, "my clip", time.Now())
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	createTestComment(t, db, clip.ID, author.ID, "first", base)
	createTestComment(t, db, clip.ID, author.ID, "second", base.Add(time.Hour))

	views, err := db.ListCommentsForClip(context.Background(), clip.ID)
	if err != nil {
		t.Fatalf("ListCommentsForClip() error = %v", err)
	}

	if len(views) != 2 {
		t.Fatalf("got %d comments, want 2", len(views))
	}
	if views[0].Comment != "second" || views[1].Comment != "first" {
		t.Errorf("order = [%q, %q], want newest first", views[0].Comment, views[1].Comment)
	}
	if views[0].Author != "bob" {
		t.Errorf("Author = %q, want %q", views[0].Author, "bob")
	}
	if views[0].AuthorID != author.ID {
		t.Errorf("AuthorID = %q, want %q", views[0].AuthorID, author.ID)
	}
}

func TestListCommentsForClip_OnlyThatClip(t *testing.T) {
	db := newTestDB(t)

	author := createTestUser(t, db, "bob")
	clipA := createTestClip(t, db, author.ID, "a", time.Now())
	clipB := createTestClip(t, db, author.ID, "b", time.Now())
	createTestComment(t, db, clipA.ID, author.ID, "on a", time.Now())
	createTestComment(t, db, clipB.ID, author.ID, "on b", time.Now())

	views, err := db.ListCommentsForClip(context.Background(), clipA.ID)
	if err != nil {
		t.Fatalf("ListCommentsForClip() error = %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("got %d comments, want 1", len(views))
	}
	if views[0].Comment != "on a" {
		t.Errorf("Comment = %q, want %q", views[0].Comment, "on a")
	}
}

func TestListCommentsForClip_NoCommentsIsEmptyNotNil(t *testing.T) {
	db := newTestDB(t)

	author := createTestUser(t, db, "bob")
	clip := createTestClip(t, db, author.ID, "quiet clip", time.Now())

	views, err := db.ListCommentsForClip(context.Background(), clip.ID)
	if err != nil {
		t.Fatalf("ListCommentsForClip() error = %v", err)
	}
	if views == nil {
		t.Error("expected empty slice, got nil")
	}
	if len(views) != 0 {
		t.Errorf("got %d comments, want 0", len(views))
	}
}

func TestListCommentsForClip_MissingAuthorRow(t *testing.T) {
	db := newTestDB(t)

	clip := createTestClip(t, db, "ghost-author", "orphan", time.Now())
	createTestComment(t, db, clip.ID, "ghost-commenter", "still here", time.Now())

	views, err := db.ListCommentsForClip(context.Background(), clip.ID)
	if err != nil {
		t.Fatalf("ListCommentsForClip() error = %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("got %d comments, want 1", len(views))
	}
	if views[0].Author != "" {
		t.Errorf("Author = %q, want empty", views[0].Author)
	}
}

func TestDeleteCommentsForClip(t *testing.T) {
	db := newTestDB(t)

	author := createTestUser(t, db, "bob")
	clip := createTestClip(t, db, author.ID, "my clip", time.Now())
	other := createTestClip(t, db, author.ID, "other", time.Now())
	createTestComment(t, db, clip.ID, author.ID, "one", time.Now())
	createTestComment(t, db, clip.ID, author.ID, "two", time.Now())
	createTestComment(t, db, other.ID, author.ID, "keep me", time.Now())

	if err := db.DeleteCommentsForClip(context.Background(), clip.ID); err != nil {
		t.Fatalf("DeleteCommentsForClip() error = %v", err)
	}

	gone, err := db.ListCommentsForClip(context.Background(), clip.ID)
	if err != nil {
		t.Fatalf("ListCommentsForClip() error = %v", err)
	}
	if len(gone) != 0 {
		t.Errorf("got %d comments after delete, want 0", len(gone))
	}

	kept, err := db.ListCommentsForClip(context.Background(), other.ID)
	if err != nil {
		t.Fatalf("ListCommentsForClip() error = %v", err)
	}
	if len(kept) != 1 {
		t.Errorf("other clip lost comments: got %d, want 1", len(kept))
	}
}

func TestDeleteCommentsForClip_NoCommentsIsFine(t *testing.T) {
	db := newTestDB(t)

	if err := db.DeleteCommentsForClip(context.Background(), "nonexistent"); err != nil {
		t.Errorf("DeleteCommentsForClip() on clip without comments: error = %v", err)
	}
}
