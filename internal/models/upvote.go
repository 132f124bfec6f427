package models

import (
	"time"
)

// PostUpvote records that a user has credited one point to a post.
// The toggle transaction is the authority on row existence; the composite
// unique index backs up its one-row-per-pair invariant at the schema level.
type PostUpvote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_upvote_once" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_post_upvote_once" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentUpvote is the comment counterpart of PostUpvote.
type CommentUpvote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CommentID uint      `gorm:"not null;uniqueIndex:idx_comment_upvote_once" json:"comment_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_comment_upvote_once" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
