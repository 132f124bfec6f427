package models

import (
	"time"
)

// Post is a submitted story: a link, a text post, or both. Points and
// CommentCount are denormalized counters maintained exclusively through
// atomic SQL increments inside the repository transactions.
type Post struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	User         User      `gorm:"foreignKey:UserID" json:"user"`
	Title        string    `gorm:"size:300;not null" json:"title"`
	URL          string    `gorm:"size:2048" json:"url,omitempty"`
	Body         string    `gorm:"type:text" json:"body,omitempty"`
	Points       int       `gorm:"not null;default:0" json:"points"`
	CommentCount int       `gorm:"not null;default:0;column:comment_count" json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`

	// Upvoted indicates whether the requesting user upvoted this post.
	// Computed per query via an EXISTS select alias; always false for
	// anonymous viewers.
	Upvoted bool `gorm:"->;-:migration" json:"upvoted"`
}
