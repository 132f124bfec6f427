package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"kindling/internal/models"
	"kindling/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn: func(_ context.Context, u *models.User) error {
			u.ID = 1
			return nil
		},
		getByIDFn:       func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
	}
}

// sessionRepoStub is a stub for repository.SessionRepository.
type sessionRepoStub struct {
	createFn        func(context.Context, *models.Session) error
	getWithUserFn   func(context.Context, string) (*models.Session, error)
	deleteFn        func(context.Context, string) error
	deleteExpiredFn func(context.Context, time.Time) (int64, error)
}

func (s *sessionRepoStub) Create(ctx context.Context, session *models.Session) error {
	return s.createFn(ctx, session)
}
func (s *sessionRepoStub) GetWithUser(ctx context.Context, token string) (*models.Session, error) {
	return s.getWithUserFn(ctx, token)
}
func (s *sessionRepoStub) Delete(ctx context.Context, token string) error {
	return s.deleteFn(ctx, token)
}
func (s *sessionRepoStub) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return s.deleteExpiredFn(ctx, now)
}

func noopSessionRepo() *sessionRepoStub {
	return &sessionRepoStub{
		createFn: func(_ context.Context, _ *models.Session) error { return nil },
		getWithUserFn: func(_ context.Context, _ string) (*models.Session, error) {
			return nil, errors.New("unexpected GetWithUser call")
		},
		deleteFn:        func(_ context.Context, _ string) error { return nil },
		deleteExpiredFn: func(_ context.Context, _ time.Time) (int64, error) { return 0, nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn       func(context.Context, *models.Post) error
	getByIDFn      func(context.Context, uint, uint) (*models.Post, error)
	listFn         func(context.Context, repository.PostFilter, repository.ListOptions, uint) ([]*models.Post, int64, error)
	toggleUpvoteFn func(context.Context, uint, uint) (int, bool, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, viewerID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, viewerID)
}
func (s *postRepoStub) List(ctx context.Context, filter repository.PostFilter, opts repository.ListOptions, viewerID uint) ([]*models.Post, int64, error) {
	return s.listFn(ctx, filter, opts, viewerID)
}
func (s *postRepoStub) ToggleUpvote(ctx context.Context, postID, userID uint) (int, bool, error) {
	return s.toggleUpvoteFn(ctx, postID, userID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, p *models.Post) error {
			p.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id}, nil
		},
		listFn: func(_ context.Context, _ repository.PostFilter, _ repository.ListOptions, _ uint) ([]*models.Post, int64, error) {
			return nil, 0, nil
		},
		toggleUpvoteFn: func(_ context.Context, _, _ uint) (int, bool, error) { return 1, true, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	getByIDFn        func(context.Context, uint, uint) (*models.Comment, error)
	createRootFn     func(context.Context, *models.Comment) error
	createReplyFn    func(context.Context, *models.Comment) error
	listRootsFn      func(context.Context, uint, repository.ListOptions, uint) ([]*models.Comment, int64, error)
	listRepliesFn    func(context.Context, uint, repository.ListOptions, uint) ([]*models.Comment, int64, error)
	attachChildrenFn func(context.Context, []*models.Comment, uint) error
	toggleUpvoteFn   func(context.Context, uint, uint) (int, bool, error)
}

func (s *commentRepoStub) GetByID(ctx context.Context, id, viewerID uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id, viewerID)
}
func (s *commentRepoStub) CreateRoot(ctx context.Context, comment *models.Comment) error {
	return s.createRootFn(ctx, comment)
}
func (s *commentRepoStub) CreateReply(ctx context.Context, comment *models.Comment) error {
	return s.createReplyFn(ctx, comment)
}
func (s *commentRepoStub) ListRoots(ctx context.Context, postID uint, opts repository.ListOptions, viewerID uint) ([]*models.Comment, int64, error) {
	return s.listRootsFn(ctx, postID, opts, viewerID)
}
func (s *commentRepoStub) ListReplies(ctx context.Context, parentID uint, opts repository.ListOptions, viewerID uint) ([]*models.Comment, int64, error) {
	return s.listRepliesFn(ctx, parentID, opts, viewerID)
}
func (s *commentRepoStub) AttachChildren(ctx context.Context, comments []*models.Comment, viewerID uint) error {
	return s.attachChildrenFn(ctx, comments, viewerID)
}
func (s *commentRepoStub) ToggleUpvote(ctx context.Context, commentID, userID uint) (int, bool, error) {
	return s.toggleUpvoteFn(ctx, commentID, userID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Comment, error) {
			return &models.Comment{ID: id}, nil
		},
		createRootFn: func(_ context.Context, c *models.Comment) error {
			c.ID = 1
			return nil
		},
		createReplyFn: func(_ context.Context, c *models.Comment) error {
			c.ID = 2
			return nil
		},
		listRootsFn: func(_ context.Context, _ uint, _ repository.ListOptions, _ uint) ([]*models.Comment, int64, error) {
			return nil, 0, nil
		},
		listRepliesFn: func(_ context.Context, _ uint, _ repository.ListOptions, _ uint) ([]*models.Comment, int64, error) {
			return nil, 0, nil
		},
		attachChildrenFn: func(_ context.Context, _ []*models.Comment, _ uint) error { return nil },
		toggleUpvoteFn:   func(_ context.Context, _, _ uint) (int, bool, error) { return 1, true, nil },
	}
}

// assertValidationError requires err to be an AppError with the validation code.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

// assertNotFoundError requires err to be an AppError with the not-found code.
func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}
