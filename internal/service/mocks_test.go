package service

import (
	"context"
	"log/slog"

	"github.com/rs/xid"
	"github.com/sakif/cliphub/internal/apperror"
	"github.com/sakif/cliphub/internal/model"
)

// discardLogger keeps service log output out of test output.
func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// mockUserRepo is an in-memory UserRepository.
type mockUserRepo struct {
	users map[string]*model.User // keyed by id
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

// addUser seeds a user directly, bypassing the service layer.
func (m *mockUserRepo) addUser(username string) *model.User {
	user := &model.User{
		ID:           xid.New().String(),
		Username:     username,
		PasswordHash: "$2a$04$notarealhash",
	}
	m.users[user.ID] = user
	return user
}

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) error {
	for _, existing := range m.users {
		if existing.Username == user.Username {
			return apperror.Conflict("unsuccessful registration: user with username already exists")
		}
	}
	user.ID = xid.New().String()
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFoundID("user", id)
	}
	return user, nil
}

func (m *mockUserRepo) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperror.NotFound("user with username " + username + " not found")
}

// mockClipRepo is an in-memory ClipRepository. Listing orders are
// newest-insert-first, matching the created_at DESC queries it stands in
// for. createErr, when set, fails the next CreateClip.
type mockClipRepo struct {
	clips     []*model.Clip
	usernames map[string]string // author id -> username, for info views
	createErr error
}

func newMockClipRepo() *mockClipRepo {
	return &mockClipRepo{usernames: make(map[string]string)}
}

func (m *mockClipRepo) CreateClip(ctx context.Context, clip *model.Clip) error {
	if m.createErr != nil {
		return m.createErr
	}
	clip.ID = xid.New().String()
	m.clips = append(m.clips, clip)
	return nil
}

func (m *mockClipRepo) GetClipByID(ctx context.Context, id string) (*model.Clip, error) {
	for _, clip := range m.clips {
		if clip.ID == id {
			return clip, nil
		}
	}
	return nil, apperror.NotFoundID("clip", id)
}

func (m *mockClipRepo) ListClipIDs(ctx context.Context) ([]string, error) {
	ids := []string{}
	for i := len(m.clips) - 1; i >= 0; i-- {
		ids = append(ids, m.clips[i].ID)
	}
	return ids, nil
}

func (m *mockClipRepo) ListClipIDsByAuthor(ctx context.Context, authorID string) ([]string, error) {
	ids := []string{}
	for i := len(m.clips) - 1; i >= 0; i-- {
		if m.clips[i].AuthorID == authorID {
			ids = append(ids, m.clips[i].ID)
		}
	}
	return ids, nil
}

func (m *mockClipRepo) GetClipInfo(ctx context.Context, id string) (*model.ClipInfo, error) {
	clip, err := m.GetClipByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.ClipInfo{
		Title:       clip.Title,
		Description: clip.Description,
		Author:      m.usernames[clip.AuthorID],
		Date:        clip.CreatedAt,
		AuthorID:    clip.AuthorID,
	}, nil
}

func (m *mockClipRepo) CountClipsByAuthor(ctx context.Context, authorID string) (int, error) {
	count := 0
	for _, clip := range m.clips {
		if clip.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

func (m *mockClipRepo) DeleteClip(ctx context.Context, id string) error {
	for i, clip := range m.clips {
		if clip.ID == id {
			m.clips = append(m.clips[:i], m.clips[i+1:]...)
			return nil
		}
	}
	return apperror.NotFoundID("clip", id)
}

// mockCommentRepo is an in-memory CommentRepository.
type mockCommentRepo struct {
	comments []*model.Comment
}

func newMockCommentRepo() *mockCommentRepo {
	return &mockCommentRepo{}
}

func (m *mockCommentRepo) CreateComment(ctx context.Context, comment *model.Comment) error {
	comment.ID = xid.New().String()
	m.comments = append(m.comments, comment)
	return nil
}

func (m *mockCommentRepo) ListCommentsForClip(ctx context.Context, clipID string) ([]model.CommentView, error) {
	views := []model.CommentView{}
	for i := len(m.comments) - 1; i >= 0; i-- {
		c := m.comments[i]
		if c.ClipID == clipID {
			views = append(views, model.CommentView{
				Comment:  c.Body,
				Date:     c.CreatedAt,
				AuthorID: c.AuthorID,
			})
		}
	}
	return views, nil
}

func (m *mockCommentRepo) DeleteCommentsForClip(ctx context.Context, clipID string) error {
	kept := m.comments[:0]
	for _, c := range m.comments {
		if c.ClipID != clipID {
			kept = append(kept, c)
		}
	}
	m.comments = kept
	return nil
}

// mockFollowRepo is an in-memory FollowRepository. feeds lets a test pin
// the feed result for a follower without modeling the join.
type mockFollowRepo struct {
	edges map[string]map[string]bool // follower id -> followee ids
	feeds map[string][]string
}

func newMockFollowRepo() *mockFollowRepo {
	return &mockFollowRepo{
		edges: make(map[string]map[string]bool),
		feeds: make(map[string][]string),
	}
}

func (m *mockFollowRepo) CreateFollow(ctx context.Context, followerID, followeeID string) error {
	if m.edges[followerID] == nil {
		m.edges[followerID] = make(map[string]bool)
	}
	m.edges[followerID][followeeID] = true
	return nil
}

func (m *mockFollowRepo) DeleteFollow(ctx context.Context, followerID, followeeID string) error {
	delete(m.edges[followerID], followeeID)
	return nil
}

func (m *mockFollowRepo) FollowExists(ctx context.Context, followerID, followeeID string) (bool, error) {
	return m.edges[followerID][followeeID], nil
}

func (m *mockFollowRepo) FeedClipIDs(ctx context.Context, followerID string) ([]string, error) {
	if ids, ok := m.feeds[followerID]; ok {
		return ids, nil
	}
	return []string{}, nil
}
