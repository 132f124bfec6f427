package models

import (
	"time"
)

// Comment is a node in a post's discussion tree. Root comments have a nil
// ParentCommentID and depth 0; replies carry depth = parent depth + 1 and
// always belong to the same post as their parent. CommentCount counts
// direct replies only; the owning post's counter counts every comment in
// the tree.
type Comment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PostID          uint      `gorm:"not null;index" json:"post_id"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	User            User      `gorm:"foreignKey:UserID" json:"user"`
	ParentCommentID *uint     `gorm:"index;column:parent_comment_id" json:"parent_comment_id"`
	Content         string    `gorm:"type:text;not null" json:"content"`
	Depth           int       `gorm:"not null;default:0" json:"depth"`
	Points          int       `gorm:"not null;default:0" json:"points"`
	CommentCount    int       `gorm:"not null;default:0;column:comment_count" json:"comment_count"`
	CreatedAt       time.Time `json:"created_at"`

	// Upvoted is computed per query for the requesting user, never stored.
	Upvoted bool `gorm:"->;-:migration" json:"upvoted"`

	// Children holds the shallow reply preview attached by listing
	// queries (capped, oldest first). Not a gorm association.
	Children []*Comment `gorm:"-" json:"comments"`
}
