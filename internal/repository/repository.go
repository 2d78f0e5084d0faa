// Package repository defines the storage interfaces the service layer
// depends on. The sqlite subpackage provides the real implementation;
// tests substitute in-memory mocks.
//
// Method names carry the aggregate (CreateUser, not Create) because one
// *sqlite.DB implements all four interfaces.
package repository

import (
	"context"

	"github.com/sakif/cliphub/internal/model"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

type ClipRepository interface {
	CreateClip(ctx context.Context, clip *model.Clip) error
	GetClipByID(ctx context.Context, id string) (*model.Clip, error)
	// ListClipIDs returns every clip id, newest first.
	ListClipIDs(ctx context.Context) ([]string, error)
	// ListClipIDsByAuthor returns the author's clip ids, newest first.
	// An unknown author yields an empty slice, not an error.
	ListClipIDsByAuthor(ctx context.Context, authorID string) ([]string, error)
	// GetClipInfo returns the denormalized clip view with the author's
	// username joined in (empty when the author id matches no user).
	GetClipInfo(ctx context.Context, id string) (*model.ClipInfo, error)
	CountClipsByAuthor(ctx context.Context, authorID string) (int, error)
	DeleteClip(ctx context.Context, id string) error
}

type CommentRepository interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	// ListCommentsForClip returns the clip's comments as denormalized
	// views, newest first.
	ListCommentsForClip(ctx context.Context, clipID string) ([]model.CommentView, error)
	DeleteCommentsForClip(ctx context.Context, clipID string) error
}

type FollowRepository interface {
	// CreateFollow inserts the edge if absent; inserting an existing edge
	// is a no-op, never an error.
	CreateFollow(ctx context.Context, followerID, followeeID string) error
	// DeleteFollow removes the edge; removing a missing edge is a no-op.
	DeleteFollow(ctx context.Context, followerID, followeeID string) error
	FollowExists(ctx context.Context, followerID, followeeID string) (bool, error)
	// FeedClipIDs returns ids of clips authored by anyone followerID
	// follows, newest first.
	FeedClipIDs(ctx context.Context, followerID string) ([]string, error)
}
