package repository

import (
	"context"
	"errors"

	"kindling/internal/models"

	"gorm.io/gorm"
)

// ChildPreviewLimit is the fixed number of direct replies attached to each
// listed comment so the client can render a shallow tree without a second
// round trip.
const ChildPreviewLimit = 2

// CommentRepository defines the interface for comment data operations.
type CommentRepository interface {
	GetByID(ctx context.Context, id uint, viewerID uint) (*models.Comment, error)
	// CreateRoot inserts a depth-0 comment on comment.PostID and bumps the
	// post's comment counter, all in one transaction.
	CreateRoot(ctx context.Context, comment *models.Comment) error
	// CreateReply inserts a reply under *comment.ParentCommentID. The
	// parent's post and depth are resolved inside the transaction; both
	// the parent's and the post's comment counters are bumped.
	CreateReply(ctx context.Context, comment *models.Comment) error
	// ListRoots pages through the top-level comments of a post.
	ListRoots(ctx context.Context, postID uint, opts ListOptions, viewerID uint) ([]*models.Comment, int64, error)
	// ListReplies pages through the direct replies of a comment.
	ListReplies(ctx context.Context, parentID uint, opts ListOptions, viewerID uint) ([]*models.Comment, int64, error)
	// AttachChildren loads up to ChildPreviewLimit of the oldest direct
	// replies for each given comment into its Children slice.
	AttachChildren(ctx context.Context, comments []*models.Comment, viewerID uint) error
	// ToggleUpvote atomically flips the viewer's upvote on a comment.
	ToggleUpvote(ctx context.Context, commentID, userID uint) (int, bool, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.applyViewerUpvote(r.db.WithContext(ctx).Model(&models.Comment{}), viewerID).
		Preload("User").
		First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) CreateRoot(ctx context.Context, comment *models.Comment) error {
	comment.Depth = 0
	comment.ParentCommentID = nil

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The counter increment doubles as the existence check: zero rows
		// affected means no such post, and the rollback leaves nothing
		// behind.
		res := tx.Model(&models.Post{}).
			Where("id = ?", comment.PostID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Create(comment).Error
	})
}

func (r *commentRepository) CreateReply(ctx context.Context, comment *models.Comment) error {
	if comment.ParentCommentID == nil {
		return errors.New("reply requires a parent comment id")
	}
	parentID := *comment.ParentCommentID

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var parent models.Comment
		if err := tx.Select("id", "post_id", "depth").First(&parent, parentID).Error; err != nil {
			return err
		}

		// A reply always lives in its parent's thread.
		comment.PostID = parent.PostID
		comment.Depth = parent.Depth + 1

		res := tx.Model(&models.Comment{}).
			Where("id = ?", parentID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		// Every nested insert also counts toward the post total.
		res = tx.Model(&models.Post{}).
			Where("id = ?", parent.PostID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Create(comment).Error
	})
}

func (r *commentRepository) ListRoots(ctx context.Context, postID uint, opts ListOptions, viewerID uint) ([]*models.Comment, int64, error) {
	return r.list(ctx, "post_id = ? AND parent_comment_id IS NULL", []interface{}{postID}, opts, viewerID)
}

func (r *commentRepository) ListReplies(ctx context.Context, parentID uint, opts ListOptions, viewerID uint) ([]*models.Comment, int64, error) {
	return r.list(ctx, "parent_comment_id = ?", []interface{}{parentID}, opts, viewerID)
}

func (r *commentRepository) list(ctx context.Context, predicate string, args []interface{}, opts ListOptions, viewerID uint) ([]*models.Comment, int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where(predicate, args...).
		Count(&count).Error
	if err != nil {
		return nil, 0, err
	}

	var comments []*models.Comment
	err = r.applyViewerUpvote(r.db.WithContext(ctx).Model(&models.Comment{}), viewerID).
		Preload("User").
		Where(predicate, args...).
		Order(orderClause("comments", opts)).
		Limit(opts.Limit).
		Offset(opts.Offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, count, nil
}

func (r *commentRepository) AttachChildren(ctx context.Context, comments []*models.Comment, viewerID uint) error {
	for _, parent := range comments {
		var children []*models.Comment
		err := r.applyViewerUpvote(r.db.WithContext(ctx).Model(&models.Comment{}), viewerID).
			Preload("User").
			Where("parent_comment_id = ?", parent.ID).
			Order("comments.created_at ASC, comments.id ASC").
			Limit(ChildPreviewLimit).
			Find(&children).Error
		if err != nil {
			return err
		}
		for _, child := range children {
			child.Children = []*models.Comment{}
		}
		parent.Children = children
	}
	return nil
}

func (r *commentRepository) ToggleUpvote(ctx context.Context, commentID, userID uint) (int, bool, error) {
	var points int
	var upvoted bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.CommentUpvote
		found := true
		if err := tx.Where("comment_id = ? AND user_id = ?", commentID, userID).
			First(&existing).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			found = false
		}

		delta := 1
		if found {
			delta = -1
		}

		res := tx.Model(&models.Comment{}).
			Where("id = ?", commentID).
			UpdateColumn("points", gorm.Expr("points + ?", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var after models.Comment
		if err := tx.Select("points").First(&after, commentID).Error; err != nil {
			return err
		}

		if found {
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Create(&models.CommentUpvote{CommentID: commentID, UserID: userID}).Error; err != nil {
				return err
			}
		}

		points = after.Points
		upvoted = !found
		return nil
	})
	if err != nil {
		return 0, false, err
	}
	return points, upvoted, nil
}

func (r *commentRepository) applyViewerUpvote(db *gorm.DB, viewerID uint) *gorm.DB {
	if viewerID != 0 {
		return db.Select(
			"comments.*, EXISTS(SELECT 1 FROM comment_upvotes WHERE comment_upvotes.comment_id = comments.id AND comment_upvotes.user_id = ?) AS upvoted",
			viewerID,
		)
	}
	return db.Select("comments.*, FALSE AS upvoted")
}
