package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PostsCreated counts submitted posts.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kindling_posts_created_total",
		Help: "Total number of posts created",
	})

	// CommentsCreated counts created comments by kind (root or reply).
	CommentsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kindling_comments_created_total",
		Help: "Total number of comments created",
	}, []string{"kind"})

	// UpvoteToggles counts upvote toggles by target and direction.
	UpvoteToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kindling_upvote_toggles_total",
		Help: "Total number of upvote toggles",
	}, []string{"target", "direction"})

	// SessionsOpened counts logins and signups that opened a session.
	SessionsOpened = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kindling_sessions_opened_total",
		Help: "Total number of sessions opened",
	})
)
