package server

import (
	"kindling/internal/models"
	"kindling/internal/repository"
	"kindling/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	user, _ := s.identity(c).User()

	var req struct {
		Title string `json:"title"`
		URL   string `json:"url"`
		Body  string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.Create(c.UserContext(), service.CreatePostInput{
		UserID: user.ID,
		Title:  req.Title,
		URL:    req.URL,
		Body:   req.Body,
	})
	if err != nil {
		return respondAppError(c, err)
	}

	return models.Respond(c, fiber.StatusCreated, "Post created", post)
}

// GetPosts handles GET /posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page, opts, err := parseListing(c)
	if err != nil {
		return respondAppError(c, err)
	}

	filter := repository.PostFilter{
		Site: c.Query("site"),
	}
	if author := c.QueryInt("author", 0); author > 0 {
		filter.AuthorID = uint(author)
	}

	posts, count, err := s.postService.List(c.UserContext(), filter, opts,
		s.identity(c).ViewerID())
	if err != nil {
		return respondAppError(c, err)
	}

	return models.RespondPage(c, "Posts retrieved", posts, models.Pagination{
		Page:       page.Page,
		TotalPages: totalPages(count, page.Limit),
	})
}

// GetPost handles GET /posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.Get(c.UserContext(), id, s.identity(c).ViewerID())
	if err != nil {
		return respondAppError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, "Post retrieved", post)
}

// UpvotePost handles POST /posts/:id/upvote
func (s *Server) UpvotePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	user, _ := s.identity(c).User()

	result, err := s.postService.ToggleUpvote(c.UserContext(), id, user.ID)
	if err != nil {
		return respondAppError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, "Upvote toggled", result)
}
