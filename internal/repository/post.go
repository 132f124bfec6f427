package repository

import (
	"context"
	"errors"

	"kindling/internal/models"

	"gorm.io/gorm"
)

// Sort keys accepted by the listing queries.
const (
	SortByPoints    = "points"
	SortByCreatedAt = "createdAt"
)

// ListOptions holds the pagination and ordering of a listing query.
// Limit and Offset are assumed pre-validated by the caller.
type ListOptions struct {
	Sort   string // SortByPoints or SortByCreatedAt
	Order  string // "asc" or "desc"
	Limit  int
	Offset int
}

// PostFilter restricts a post listing. Zero values mean "no restriction".
type PostFilter struct {
	AuthorID uint
	Site     string // substring match against the post URL
}

// PostRepository defines the interface for post data operations.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, viewerID uint) (*models.Post, error)
	// List returns one page of posts plus the total row count under the
	// same filter predicate.
	List(ctx context.Context, filter PostFilter, opts ListOptions, viewerID uint) ([]*models.Post, int64, error)
	// ToggleUpvote atomically flips the viewer's upvote on a post and
	// returns the new points total and resulting upvote state.
	ToggleUpvote(ctx context.Context, postID, userID uint) (int, bool, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Post, error) {
	var post models.Post
	err := r.applyViewerUpvote(r.db.WithContext(ctx).Model(&models.Post{}), viewerID).
		Preload("User").
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, filter PostFilter, opts ListOptions, viewerID uint) ([]*models.Post, int64, error) {
	filtered := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.Post{})
		if filter.AuthorID != 0 {
			q = q.Where("posts.user_id = ?", filter.AuthorID)
		}
		if filter.Site != "" {
			q = q.Where("posts.url LIKE ?", "%"+filter.Site+"%")
		}
		return q
	}

	// Count under the same predicate as the data query so totalPages is
	// consistent with what the page shows.
	var count int64
	if err := filtered().Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var posts []*models.Post
	err := r.applyViewerUpvote(filtered(), viewerID).
		Preload("User").
		Order(orderClause("posts", opts)).
		Limit(opts.Limit).
		Offset(opts.Offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, count, nil
}

func (r *postRepository) ToggleUpvote(ctx context.Context, postID, userID uint) (int, bool, error) {
	var points int
	var upvoted bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.PostUpvote
		found := true
		if err := tx.Where("post_id = ? AND user_id = ?", postID, userID).
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

		// The counter moves via a store-evaluated expression, never a
		// read-modify-write round trip, so concurrent toggles by other
		// users cannot lose increments.
		res := tx.Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumn("points", gorm.Expr("points + ?", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var after models.Post
		if err := tx.Select("points").First(&after, postID).Error; err != nil {
			return err
		}

		if found {
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Create(&models.PostUpvote{PostID: postID, UserID: userID}).Error; err != nil {
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

// applyViewerUpvote adds the per-viewer upvote annotation as a select
// alias so listings resolve it in a single query. Anonymous viewers
// (viewerID 0) always read false.
func (r *postRepository) applyViewerUpvote(db *gorm.DB, viewerID uint) *gorm.DB {
	if viewerID != 0 {
		return db.Select(
			"posts.*, EXISTS(SELECT 1 FROM post_upvotes WHERE post_upvotes.post_id = posts.id AND post_upvotes.user_id = ?) AS upvoted",
			viewerID,
		)
	}
	return db.Select("posts.*, FALSE AS upvoted")
}

// orderClause maps an API sort key onto the SQL ORDER BY for the given
// table, with the row id as a stable tie-break.
func orderClause(table string, opts ListOptions) string {
	column := table + ".created_at"
	if opts.Sort == SortByPoints {
		column = table + ".points"
	}
	dir := "DESC"
	if opts.Order == "asc" {
		dir = "ASC"
	}
	return column + " " + dir + ", " + table + ".id " + dir
}
