package service

import (
	"context"

	"thewall/internal/cache"
	"thewall/internal/model"
	"thewall/internal/queue"
)

// =============================================================================
// MOCK REPOSITORIES
// =============================================================================
//
// Each mock implements a repository interface with overridable function
// fields, so every test controls exactly what the "database" returns.

type mockUserRepository struct {
	createFn        func(ctx context.Context, user *model.User) error
	getByIDFn       func(ctx context.Context, id int64) (*model.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*model.User, error)
	existsByEmailFn func(ctx context.Context, email string) (bool, error)

	createCalls []*model.User
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	m.createCalls = append(m.createCalls, user)
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.existsByEmailFn != nil {
		return m.existsByEmailFn(ctx, email)
	}
	return false, nil
}

type mockPostRepository struct {
	createFn          func(ctx context.Context, userID int64, content string) (*model.Post, error)
	getByIDFn         func(ctx context.Context, postID int64) (*model.Post, error)
	updateFn          func(ctx context.Context, postID int64, content string) (*model.Post, error)
	deleteFn          func(ctx context.Context, postID int64) error
	listWithThreadsFn func(ctx context.Context) ([]model.Post, error)

	writes int
}

func (m *mockPostRepository) Create(ctx context.Context, userID int64, content string) (*model.Post, error) {
	m.writes++
	if m.createFn != nil {
		return m.createFn(ctx, userID, content)
	}
	return &model.Post{ID: 1, UserID: userID, Content: content}, nil
}

func (m *mockPostRepository) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, postID)
	}
	return nil, model.ErrPostNotFound
}

func (m *mockPostRepository) Update(ctx context.Context, postID int64, content string) (*model.Post, error) {
	m.writes++
	if m.updateFn != nil {
		return m.updateFn(ctx, postID, content)
	}
	return &model.Post{ID: postID, Content: content}, nil
}

func (m *mockPostRepository) Delete(ctx context.Context, postID int64) error {
	m.writes++
	if m.deleteFn != nil {
		return m.deleteFn(ctx, postID)
	}
	return nil
}

func (m *mockPostRepository) ListWithThreads(ctx context.Context) ([]model.Post, error) {
	if m.listWithThreadsFn != nil {
		return m.listWithThreadsFn(ctx)
	}
	return []model.Post{}, nil
}

type commentCreateCall struct {
	UserID   int64
	PostID   int64
	Content  string
	ParentID *int64
}

type mockCommentRepository struct {
	createFn  func(ctx context.Context, userID, postID int64, content string, parentID *int64) (*model.Comment, error)
	getByIDFn func(ctx context.Context, commentID int64) (*model.Comment, error)
	updateFn  func(ctx context.Context, commentID int64, content string) (*model.Comment, error)
	deleteFn  func(ctx context.Context, commentID int64) (int, error)

	createCalls []commentCreateCall
	writes      int
}

func (m *mockCommentRepository) Create(ctx context.Context, userID, postID int64, content string, parentID *int64) (*model.Comment, error) {
	m.writes++
	m.createCalls = append(m.createCalls, commentCreateCall{UserID: userID, PostID: postID, Content: content, ParentID: parentID})
	if m.createFn != nil {
		return m.createFn(ctx, userID, postID, content, parentID)
	}
	return &model.Comment{ID: 100, PostID: postID, UserID: userID, Content: content, ParentCommentID: parentID}, nil
}

func (m *mockCommentRepository) GetByID(ctx context.Context, commentID int64) (*model.Comment, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, commentID)
	}
	return nil, model.ErrCommentNotFound
}

func (m *mockCommentRepository) Update(ctx context.Context, commentID int64, content string) (*model.Comment, error) {
	m.writes++
	if m.updateFn != nil {
		return m.updateFn(ctx, commentID, content)
	}
	return &model.Comment{ID: commentID, Content: content}, nil
}

func (m *mockCommentRepository) Delete(ctx context.Context, commentID int64) (int, error) {
	m.writes++
	if m.deleteFn != nil {
		return m.deleteFn(ctx, commentID)
	}
	return 1, nil
}

type mockWallCache struct {
	posts         []model.Post
	found         bool
	generation    int64
	getErr        error
	setCalls      int
	staleSets     int
	invalidations int
	invalidateErr error
}

func (m *mockWallCache) Get(ctx context.Context) ([]model.Post, bool, error) {
	return m.posts, m.found, m.getErr
}

func (m *mockWallCache) Generation(ctx context.Context) (int64, error) {
	return m.generation, nil
}

func (m *mockWallCache) Set(ctx context.Context, gen int64, posts []model.Post) error {
	if gen != m.generation {
		m.staleSets++
		return cache.ErrStaleSnapshot
	}
	m.setCalls++
	m.posts, m.found = posts, true
	return nil
}

func (m *mockWallCache) Invalidate(ctx context.Context) error {
	m.invalidations++
	m.generation++
	m.posts, m.found = nil, false
	return m.invalidateErr
}

type mockPublisher struct {
	events []queue.WallEvent
	err    error
}

func (m *mockPublisher) Publish(ctx context.Context, stream string, event queue.WallEvent) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.events = append(m.events, event)
	return "1-0", nil
}
