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

// SocialService handles the follow graph: follow/unfollow, edge queries,
// user profiles, and the personalized clip feed.
type SocialService struct {
	follows repository.FollowRepository
	users   repository.UserRepository
	clips   repository.ClipRepository
	logger  *slog.Logger
}

// NewSocialService creates a SocialService.
func NewSocialService(follows repository.FollowRepository, users repository.UserRepository, clips repository.ClipRepository, logger *slog.Logger) *SocialService {
	return &SocialService{
		follows: follows,
		users:   users,
		clips:   clips,
		logger:  logger,
	}
}

// followChecks runs the validation shared by IsFollowing, Follow, and
// Unfollow, in a fixed short-circuit order:
//  1. follower exists        → NotFound   "Current user (follower) does not exist"
//  2. followee exists        → NotFound   "Other user (followee) does not exist"
//  3. follower ≠ followee    → Validation "You can't follow/unfollow yourself"
func (s *SocialService) followChecks(ctx context.Context, followerID, followeeID string) error {
	if _, err := s.users.GetUserByID(ctx, followerID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.NotFound("Current user (follower) does not exist")
		}
		return fmt.Errorf("checking follower %s: %w", followerID, err)
	}

	if _, err := s.users.GetUserByID(ctx, followeeID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.NotFound("Other user (followee) does not exist")
		}
		return fmt.Errorf("checking followee %s: %w", followeeID, err)
	}

	if followerID == followeeID {
		return apperror.ValidationFailed("followeeId", "You can't follow/unfollow yourself")
	}

	return nil
}

// IsFollowing reports whether the directed edge follower→followee exists.
func (s *SocialService) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	if err := s.followChecks(ctx, followerID, followeeID); err != nil {
		return false, err
	}

	following, err := s.follows.FollowExists(ctx, followerID, followeeID)
	if err != nil {
		return false, fmt.Errorf("checking follow edge: %w", err)
	}
	return following, nil
}

// Follow creates the edge follower→followee. Following someone twice is a
// no-op: exactly one edge exists afterwards and the response is identical.
func (s *SocialService) Follow(ctx context.Context, followerID, followeeID string) error {
	if err := s.followChecks(ctx, followerID, followeeID); err != nil {
		return err
	}

	if err := s.follows.CreateFollow(ctx, followerID, followeeID); err != nil {
		return fmt.Errorf("creating follow edge: %w", err)
	}

	s.logger.Info("follow added",
		slog.String("follower", followerID),
		slog.String("followee", followeeID),
	)
	return nil
}

// Unfollow removes the edge follower→followee. Removing an edge that was
// never there is not an error.
func (s *SocialService) Unfollow(ctx context.Context, followerID, followeeID string) error {
	if err := s.followChecks(ctx, followerID, followeeID); err != nil {
		return err
	}

	if err := s.follows.DeleteFollow(ctx, followerID, followeeID); err != nil {
		return fmt.Errorf("deleting follow edge: %w", err)
	}

	s.logger.Info("follow removed",
		slog.String("follower", followerID),
		slog.String("followee", followeeID),
	)
	return nil
}

// GetProfile returns a user's username and the count of clips they have
// authored. Fails NotFound if the user is absent.
func (s *SocialService) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	count, err := s.clips.CountClipsByAuthor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("counting clips for user %s: %w", userID, err)
	}

	return &model.Profile{
		User:     user.Username,
		NumClips: count,
	}, nil
}

// Feed returns ids of clips authored by anyone the user follows, most
// recent first. A user who follows nobody (or whose followees have no
// clips) gets an empty list.
func (s *SocialService) Feed(ctx context.Context, userID string) ([]string, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound("User does not exist")
		}
		return nil, fmt.Errorf("checking user %s: %w", userID, err)
	}

	ids, err := s.follows.FeedClipIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("querying feed for %s: %w", userID, err)
	}
	return ids, nil
}
