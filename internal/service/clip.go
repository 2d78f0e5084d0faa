package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sakif/cliphub/internal/apperror"
	"github.com/sakif/cliphub/internal/blob"
	"github.com/sakif/cliphub/internal/model"
	"github.com/sakif/cliphub/internal/repository"
)

// ClipService handles clip upload, retrieval, listing, and deletion. It
// orchestrates the two halves of a clip — the metadata row and the binary
// payload in the blob store — and keeps their lifecycles aligned.
type ClipService struct {
	clips    repository.ClipRepository
	comments repository.CommentRepository
	blobs    *blob.Store
	logger   *slog.Logger
}

// NewClipService creates a ClipService.
func NewClipService(clips repository.ClipRepository, comments repository.CommentRepository, blobs *blob.Store, logger *slog.Logger) *ClipService {
	return &ClipService{
		clips:    clips,
		comments: comments,
		blobs:    blobs,
		logger:   logger,
	}
}

// ListIDs returns every clip id, most recent first.
func (s *ClipService) ListIDs(ctx context.Context) ([]string, error) {
	ids, err := s.clips.ListClipIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing clips: %w", err)
	}
	return ids, nil
}

// ListIDsByAuthor returns the author's clip ids, most recent first. An
// unknown author gives an empty list, not an error — authorship is never
// validated against user existence.
func (s *ClipService) ListIDsByAuthor(ctx context.Context, authorID string) ([]string, error) {
	ids, err := s.clips.ListClipIDsByAuthor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("listing clips for author %s: %w", authorID, err)
	}
	return ids, nil
}

// Upload validates the upload and persists payload plus metadata row.
//
// Check order, first failure wins (the missing-file-part case is rejected
// by the HTTP handler before this method runs):
//  1. author id included
//  2. title included
//  3. filename extension is "mp4", case-insensitively
//
// On success a fresh handle is generated, the payload is written under it,
// and only then is the row inserted — so a clip row always points at an
// existing blob. No check that authorID names a real user: that gap is part
// of the API's contract.
func (s *ClipService) Upload(ctx context.Context, file io.Reader, filename, authorID, title, description string) (*model.Clip, error) {
	if authorID == "" {
		return nil, apperror.ValidationFailed("authorId", "no author id included")
	}
	if title == "" {
		return nil, apperror.ValidationFailed("title", "no title included")
	}

	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if !strings.EqualFold(ext, "mp4") {
		return nil, apperror.ValidationFailed("file", "the file had the wrong format")
	}

	handle := uuid.NewString()
	if err := s.blobs.Save(handle, file); err != nil {
		return nil, fmt.Errorf("storing clip payload: %w", err)
	}

	clip := &model.Clip{
		BinaryHandle: handle,
		AuthorID:     authorID,
		Title:        title,
		Description:  description,
	}
	if err := s.clips.CreateClip(ctx, clip); err != nil {
		// The row never landed; remove the blob so the failed upload
		// leaves nothing behind.
		if rmErr := s.blobs.Remove(handle); rmErr != nil {
			s.logger.Error("orphaned clip payload after failed insert",
				slog.String("handle", handle),
				slog.String("error", rmErr.Error()),
			)
		}
		return nil, fmt.Errorf("creating clip: %w", err)
	}

	s.logger.Info("clip uploaded",
		slog.String("id", clip.ID),
		slog.String("author", clip.AuthorID),
		slog.String("title", clip.Title),
	)

	return clip, nil
}

// Payload returns a stream over the clip's mp4 bytes. The caller must close
// it. Returns NotFound if no clip row exists with that id.
func (s *ClipService) Payload(ctx context.Context, id string) (io.ReadCloser, error) {
	clip, err := s.clips.GetClipByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rc, err := s.blobs.Open(clip.BinaryHandle)
	if err != nil {
		return nil, fmt.Errorf("opening clip payload %s: %w", id, err)
	}
	return rc, nil
}

// Info returns the denormalized metadata view for a clip.
func (s *ClipService) Info(ctx context.Context, id string) (*model.ClipInfo, error) {
	info, err := s.clips.GetClipInfo(ctx, id)
	if err != nil {
		return nil, err
	}
	return info, nil
}

// Delete removes a clip and everything hanging off it, as one logical unit
// in a fixed order: comments, then the blob, then the row.
//
// The row goes last. If the process dies partway through, the
// clip is still discoverable through the row — the worst outcome is a
// missing payload for a listed clip, which a retried delete cleans up. The
// flipped ordering would instead leak a blob referenced by nothing.
func (s *ClipService) Delete(ctx context.Context, id string) error {
	clip, err := s.clips.GetClipByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.comments.DeleteCommentsForClip(ctx, clip.ID); err != nil {
		return fmt.Errorf("deleting comments for clip %s: %w", id, err)
	}

	if err := s.blobs.Remove(clip.BinaryHandle); err != nil {
		return fmt.Errorf("deleting clip payload %s: %w", id, err)
	}

	if err := s.clips.DeleteClip(ctx, clip.ID); err != nil {
		// Lost a race with a concurrent delete. The comments and blob are
		// gone either way; report what the repository saw.
		if errors.Is(err, apperror.ErrNotFound) {
			return err
		}
		return fmt.Errorf("deleting clip row %s: %w", id, err)
	}

	s.logger.Info("clip deleted", slog.String("id", id))
	return nil
}
