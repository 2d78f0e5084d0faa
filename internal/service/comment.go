package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/cliphub/internal/apperror"
	"github.com/sakif/cliphub/internal/model"
	"github.com/sakif/cliphub/internal/repository"
)

// CommentService handles adding and listing comments on clips.
type CommentService struct {
	comments repository.CommentRepository
	clips    repository.ClipRepository
	users    repository.UserRepository
	logger   *slog.Logger
}

// NewCommentService creates a CommentService.
func NewCommentService(comments repository.CommentRepository, clips repository.ClipRepository, users repository.UserRepository, logger *slog.Logger) *CommentService {
	return &CommentService{
		comments: comments,
		clips:    clips,
		users:    users,
		logger:   logger,
	}
}

// Add validates and stores a new comment on a clip.
//
// authorID and body are pointers because the checks distinguish a missing
// request field (nil) from a present-but-empty one. The check order is
// fixed and short-circuits on the first failure:
//  1. clip exists            → NotFound   "Clip doesn't exist."
//  2. author id field present → Validation "No author id included."
//  3. author user exists      → NotFound   "Author doesn't exist"
//  4. comment field present   → Validation "No comment added."
//  5. comment body non-empty  → Validation "No comment body included."
func (s *CommentService) Add(ctx context.Context, clipID string, authorID, body *string) error {
	if _, err := s.clips.GetClipByID(ctx, clipID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.NotFound("Clip doesn't exist.")
		}
		return fmt.Errorf("checking clip %s: %w", clipID, err)
	}

	if authorID == nil {
		return apperror.ValidationFailed("authorId", "No author id included.")
	}

	if _, err := s.users.GetUserByID(ctx, *authorID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.NotFound("Author doesn't exist")
		}
		return fmt.Errorf("checking author %s: %w", *authorID, err)
	}

	if body == nil {
		return apperror.ValidationFailed("comment", "No comment added.")
	}
	if *body == "" {
		return apperror.ValidationFailed("comment", "No comment body included.")
	}

	comment := &model.Comment{
		ClipID:   clipID,
		AuthorID: *authorID,
		Body:     *body,
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return fmt.Errorf("creating comment: %w", err)
	}

	s.logger.Info("comment added",
		slog.String("id", comment.ID),
		slog.String("clip", comment.ClipID),
		slog.String("author", comment.AuthorID),
	)

	return nil
}

// List returns the clip's comments, newest first, each denormalized with
// the commenting user's username. Fails NotFound if the clip is absent.
func (s *CommentService) List(ctx context.Context, clipID string) ([]model.CommentView, error) {
	if _, err := s.clips.GetClipByID(ctx, clipID); err != nil {
		return nil, err
	}

	views, err := s.comments.ListCommentsForClip(ctx, clipID)
	if err != nil {
		return nil, fmt.Errorf("listing comments for clip %s: %w", clipID, err)
	}
	return views, nil
}
