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

// CommentService owns threaded comments and their upvotes.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// NewCommentService creates a CommentService.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

type CreateRootCommentInput struct {
	UserID  uint
	PostID  uint
	Content string
}

type CreateReplyInput struct {
	UserID          uint
	ParentCommentID uint
	Content         string
}

// CreateRoot adds a top-level comment to a post.
func (s *CommentService) CreateRoot(ctx context.Context, in CreateRootCommentInput) (*models.Comment, error) {
	if issues := validation.Comment(in.Content); len(issues) > 0 {
		return nil, models.NewFieldErrors(issues)
	}

	comment := &models.Comment{
		PostID:  in.PostID,
		UserID:  in.UserID,
		Content: in.Content,
	}
	err := s.commentRepo.CreateRoot(ctx, comment)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Post", in.PostID)
	}
	if err != nil {
		return nil, err
	}
	observability.CommentsCreated.WithLabelValues("root").Inc()

	return s.reload(ctx, comment.ID, in.UserID)
}

// CreateReply adds a nested comment under an existing comment.
func (s *CommentService) CreateReply(ctx context.Context, in CreateReplyInput) (*models.Comment, error) {
	if issues := validation.Comment(in.Content); len(issues) > 0 {
		return nil, models.NewFieldErrors(issues)
	}

	parentID := in.ParentCommentID
	comment := &models.Comment{
		UserID:          in.UserID,
		ParentCommentID: &parentID,
		Content:         in.Content,
	}
	err := s.commentRepo.CreateReply(ctx, comment)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Comment", in.ParentCommentID)
	}
	if err != nil {
		return nil, err
	}
	observability.CommentsCreated.WithLabelValues("reply").Inc()

	return s.reload(ctx, comment.ID, in.UserID)
}

// ListForPost pages through a post's root comments with the shallow child
// preview attached.
func (s *CommentService) ListForPost(ctx context.Context, postID uint, opts repository.ListOptions, viewerID uint) ([]*models.Comment, int64, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, models.NewNotFoundError("Post", postID)
		}
		return nil, 0, err
	}

	comments, count, err := s.commentRepo.ListRoots(ctx, postID, opts, viewerID)
	if err != nil {
		return nil, 0, err
	}
	if err := s.commentRepo.AttachChildren(ctx, comments, viewerID); err != nil {
		return nil, 0, err
	}
	return comments, count, nil
}

// ListReplies pages through the direct replies of a comment with the
// shallow child preview attached.
func (s *CommentService) ListReplies(ctx context.Context, parentID uint, opts repository.ListOptions, viewerID uint) ([]*models.Comment, int64, error) {
	if _, err := s.commentRepo.GetByID(ctx, parentID, 0); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, models.NewNotFoundError("Comment", parentID)
		}
		return nil, 0, err
	}

	comments, count, err := s.commentRepo.ListReplies(ctx, parentID, opts, viewerID)
	if err != nil {
		return nil, 0, err
	}
	if err := s.commentRepo.AttachChildren(ctx, comments, viewerID); err != nil {
		return nil, 0, err
	}
	return comments, count, nil
}

// ToggleUpvote flips the user's upvote on a comment.
func (s *CommentService) ToggleUpvote(ctx context.Context, commentID, userID uint) (UpvoteResult, error) {
	points, upvoted, err := s.commentRepo.ToggleUpvote(ctx, commentID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return UpvoteResult{}, models.NewNotFoundError("Comment", commentID)
	}
	if err != nil {
		return UpvoteResult{}, err
	}

	direction := "up"
	if !upvoted {
		direction = "down"
	}
	observability.UpvoteToggles.WithLabelValues("comment", direction).Inc()

	return UpvoteResult{Points: points, Upvoted: upvoted}, nil
}

// reload fetches a freshly created comment with its author and empty child
// collections, as the creation response promises.
func (s *CommentService) reload(ctx context.Context, id uint, viewerID uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id, viewerID)
	if err != nil {
		return nil, err
	}
	comment.Children = []*models.Comment{}
	return comment, nil
}
