package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"kindling/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost(t *testing.T) {
	t.Parallel()

	_, app, _ := newTestServer(t)
	token := signupUser(t, app, "alice")

	t.Run("requires auth", func(t *testing.T) {
		resp, env := doJSON(t, app, http.MethodPost, "/posts",
			map[string]string{"title": "no session"}, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.False(t, env.Success)
	})

	t.Run("rejects empty submission", func(t *testing.T) {
		resp, env := doJSON(t, app, http.MethodPost, "/posts",
			map[string]string{"title": "just a title"}, token)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.True(t, env.IsFormError)
		assert.Contains(t, env.Fields, "url")
	})

	t.Run("creates a link post", func(t *testing.T) {
		resp, env := doJSON(t, app, http.MethodPost, "/posts", map[string]string{
			"title": "Interesting article",
			"url":   "https://example.com/article",
		}, token)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var post models.Post
		require.NoError(t, json.Unmarshal(env.Data, &post))
		assert.NotZero(t, post.ID)
		assert.Equal(t, "Interesting article", post.Title)
		assert.Equal(t, "alice", post.User.Username)
		assert.Equal(t, 0, post.Points)
		assert.Equal(t, 0, post.CommentCount)
		assert.False(t, post.Upvoted)
	})
}

func TestGetPost(t *testing.T) {
	t.Parallel()

	_, app, _ := newTestServer(t)
	token := signupUser(t, app, "alice")

	_, created := doJSON(t, app, http.MethodPost, "/posts", map[string]string{
		"title": "hello", "body": "text",
	}, token)
	var post models.Post
	require.NoError(t, json.Unmarshal(created.Data, &post))

	t.Run("found", func(t *testing.T) {
		resp, env := doJSON(t, app, http.MethodGet, fmt.Sprintf("/posts/%d", post.ID), nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var got models.Post
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, post.ID, got.ID)
	})

	t.Run("missing", func(t *testing.T) {
		resp, env := doJSON(t, app, http.MethodGet, "/posts/424242", nil, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.False(t, env.Success)
		assert.False(t, env.IsFormError)
	})

	t.Run("bad id", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodGet, "/posts/banana", nil, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

// TestUpvoteFlow walks the canonical upvote story: A submits, A upvotes
// (1, upvoted), A toggles back (0, not upvoted), B upvotes (1), and A
// still reads upvoted=false while B reads true.
func TestUpvoteFlow(t *testing.T) {
	t.Parallel()

	_, app, _ := newTestServer(t)
	tokenA := signupUser(t, app, "usera")
	tokenB := signupUser(t, app, "userb")

	_, created := doJSON(t, app, http.MethodPost, "/posts", map[string]string{
		"title": "voted on", "body": "text",
	}, tokenA)
	var post models.Post
	require.NoError(t, json.Unmarshal(created.Data, &post))
	target := fmt.Sprintf("/posts/%d/upvote", post.ID)

	upvote := func(t *testing.T, token string) (int, bool) {
		t.Helper()
		resp, env := doJSON(t, app, http.MethodPost, target, nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var result struct {
			Points  int  `json:"points"`
			Upvoted bool `json:"upvoted"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &result))
		return result.Points, result.Upvoted
	}

	points, upvoted := upvote(t, tokenA)
	assert.Equal(t, 1, points)
	assert.True(t, upvoted)

	points, upvoted = upvote(t, tokenA)
	assert.Equal(t, 0, points)
	assert.False(t, upvoted)

	points, upvoted = upvote(t, tokenB)
	assert.Equal(t, 1, points)
	assert.True(t, upvoted)

	read := func(t *testing.T, token string) models.Post {
		t.Helper()
		_, env := doJSON(t, app, http.MethodGet, fmt.Sprintf("/posts/%d", post.ID), nil, token)
		var got models.Post
		require.NoError(t, json.Unmarshal(env.Data, &got))
		return got
	}

	asA := read(t, tokenA)
	assert.Equal(t, 1, asA.Points)
	assert.False(t, asA.Upvoted)

	asB := read(t, tokenB)
	assert.True(t, asB.Upvoted)

	asAnon := read(t, "")
	assert.Equal(t, 1, asAnon.Points)
	assert.False(t, asAnon.Upvoted)

	t.Run("requires auth", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, target, nil, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("missing post", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/posts/424242/upvote", nil, tokenA)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestListPosts_Pagination(t *testing.T) {
	t.Parallel()

	_, app, _ := newTestServer(t)
	token := signupUser(t, app, "author")

	listPages := func(t *testing.T, limit int) (int, int) {
		t.Helper()
		resp, env := doJSON(t, app, http.MethodGet,
			fmt.Sprintf("/posts?limit=%d", limit), nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.NotNil(t, env.Pagination)
		var posts []models.Post
		require.NoError(t, json.Unmarshal(env.Data, &posts))
		return len(posts), env.Pagination.TotalPages
	}

	// count = 0
	shown, pages := listPages(t, 5)
	assert.Equal(t, 0, shown)
	assert.Equal(t, 0, pages)

	// count = limit
	for i := 0; i < 5; i++ {
		resp, _ := doJSON(t, app, http.MethodPost, "/posts", map[string]string{
			"title": fmt.Sprintf("post %d", i), "body": "text",
		}, token)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
	shown, pages = listPages(t, 5)
	assert.Equal(t, 5, shown)
	assert.Equal(t, 1, pages)

	// count = limit + 1
	resp, _ := doJSON(t, app, http.MethodPost, "/posts", map[string]string{
		"title": "post 5", "body": "text",
	}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	shown, pages = listPages(t, 5)
	assert.Equal(t, 5, shown)
	assert.Equal(t, 2, pages)

	t.Run("second page holds the remainder", func(t *testing.T) {
		_, env := doJSON(t, app, http.MethodGet, "/posts?limit=5&page=2", nil, "")
		var posts []models.Post
		require.NoError(t, json.Unmarshal(env.Data, &posts))
		assert.Len(t, posts, 1)
		assert.Equal(t, 2, env.Pagination.Page)
	})

	t.Run("rejects unknown sort", func(t *testing.T) {
		resp, env := doJSON(t, app, http.MethodGet, "/posts?sort=karma", nil, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.False(t, env.Success)
	})
}

func TestListPosts_Filters(t *testing.T) {
	t.Parallel()

	_, app, db := newTestServer(t)
	tokenA := signupUser(t, app, "authora")
	tokenB := signupUser(t, app, "authorb")

	post := func(token, title, url string) {
		resp, _ := doJSON(t, app, http.MethodPost, "/posts",
			map[string]string{"title": title, "url": url}, token)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
	post(tokenA, "one", "https://news.example.com/1")
	post(tokenA, "two", "https://blog.example.org/2")
	post(tokenB, "three", "https://news.example.com/3")

	var userA models.User
	require.NoError(t, db.First(&userA, "username = ?", "authora").Error)

	t.Run("by author", func(t *testing.T) {
		_, env := doJSON(t, app, http.MethodGet,
			fmt.Sprintf("/posts?author=%d", userA.ID), nil, "")
		var posts []models.Post
		require.NoError(t, json.Unmarshal(env.Data, &posts))
		require.Len(t, posts, 2)
		for _, p := range posts {
			assert.Equal(t, userA.ID, p.UserID)
		}
	})

	t.Run("by site", func(t *testing.T) {
		_, env := doJSON(t, app, http.MethodGet, "/posts?site=news.example.com", nil, "")
		var posts []models.Post
		require.NoError(t, json.Unmarshal(env.Data, &posts))
		assert.Len(t, posts, 2)
		require.NotNil(t, env.Pagination)
		assert.Equal(t, 1, env.Pagination.TotalPages)
	})
}
