package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		count int64
		limit int
		want  int
	}{
		{"empty", 0, 10, 0},
		{"exactly one page", 10, 10, 1},
		{"one over the boundary", 11, 10, 2},
		{"one under the boundary", 9, 10, 1},
		{"single row", 1, 10, 1},
		{"limit one", 7, 1, 7},
		{"large", 101, 25, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, totalPages(tt.count, tt.limit))
		})
	}
}

func TestParsePagination(t *testing.T) {
	t.Parallel()

	app := fiber.New()
	app.Get("/items", func(c *fiber.Ctx) error {
		p := parsePagination(c)
		return c.JSON(fiber.Map{"page": p.Page, "limit": p.Limit, "offset": p.offset()})
	})

	get := func(t *testing.T, target string) map[string]int {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, target, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		var out map[string]int
		require.NoError(t, decodeJSON(resp, &out))
		return out
	}

	t.Run("defaults", func(t *testing.T) {
		out := get(t, "/items")
		assert.Equal(t, 1, out["page"])
		assert.Equal(t, defaultPageLimit, out["limit"])
		assert.Equal(t, 0, out["offset"])
	})

	t.Run("offset follows page", func(t *testing.T) {
		out := get(t, "/items?page=3&limit=25")
		assert.Equal(t, 3, out["page"])
		assert.Equal(t, 25, out["limit"])
		assert.Equal(t, 50, out["offset"])
	})

	t.Run("clamps out-of-range values", func(t *testing.T) {
		out := get(t, "/items?page=-2&limit=0")
		assert.Equal(t, 1, out["page"])
		assert.Equal(t, defaultPageLimit, out["limit"])
	})

	t.Run("caps the limit", func(t *testing.T) {
		out := get(t, "/items?limit=5000")
		assert.Equal(t, maxPaginationLimit, out["limit"])
	})
}

func TestParseListing_RejectsBadSort(t *testing.T) {
	t.Parallel()

	app := fiber.New()
	app.Get("/items", func(c *fiber.Ctx) error {
		_, opts, err := parseListing(c)
		if err != nil {
			return respondAppError(c, err)
		}
		return c.JSON(fiber.Map{"sort": opts.Sort, "order": opts.Order})
	})

	tests := []struct {
		name   string
		target string
		status int
	}{
		{"default", "/items", http.StatusOK},
		{"points asc", "/items?sort=points&order=asc", http.StatusOK},
		{"createdAt desc", "/items?sort=createdAt&order=desc", http.StatusOK},
		{"unknown sort", "/items?sort=karma", http.StatusBadRequest},
		{"sql in sort", "/items?sort=points;DROP+TABLE+posts", http.StatusBadRequest},
		{"unknown order", "/items?order=sideways", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			_ = resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
