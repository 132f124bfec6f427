package service

import (
	"context"
	"errors"

	"kindling/internal/models"
	"kindling/internal/observability"
	"kindling/internal/repository"
	"kindling/internal/validation"

	"gorm.io/gorm"
)

// PostService owns post submission, retrieval and upvoting.
type PostService struct {
	postRepo repository.PostRepository
}

// NewPostService creates a PostService.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

type CreatePostInput struct {
	UserID uint
	Title  string
	URL    string
	Body   string
}

// UpvoteResult is the outcome of an upvote toggle.
type UpvoteResult struct {
	Points  int  `json:"points"`
	Upvoted bool `json:"upvoted"`
}

// Create validates and stores a new post, returning it with the author
// preloaded.
func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if issues := validation.Post(in.Title, in.URL, in.Body); len(issues) > 0 {
		return nil, models.NewFieldErrors(issues)
	}

	post := &models.Post{
		UserID: in.UserID,
		Title:  in.Title,
		URL:    in.URL,
		Body:   in.Body,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	observability.PostsCreated.Inc()

	return s.Get(ctx, post.ID, in.UserID)
}

// Get loads one post annotated for the given viewer (0 = anonymous).
func (s *PostService) Get(ctx context.Context, id uint, viewerID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id, viewerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Post", id)
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

// List returns one page of posts and the total row count under the filter.
func (s *PostService) List(ctx context.Context, filter repository.PostFilter, opts repository.ListOptions, viewerID uint) ([]*models.Post, int64, error) {
	return s.postRepo.List(ctx, filter, opts, viewerID)
}

// ToggleUpvote flips the user's upvote on a post.
func (s *PostService) ToggleUpvote(ctx context.Context, postID, userID uint) (UpvoteResult, error) {
	points, upvoted, err := s.postRepo.ToggleUpvote(ctx, postID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return UpvoteResult{}, models.NewNotFoundError("Post", postID)
	}
	if err != nil {
		return UpvoteResult{}, err
	}

	direction := "up"
	if !upvoted {
		direction = "down"
	}
	observability.UpvoteToggles.WithLabelValues("post", direction).Inc()

	return UpvoteResult{Points: points, Upvoted: upvoted}, nil
}
