package server

import (
	"kindling/internal/models"
	"kindling/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /posts/:id/comment
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	user, _ := s.identity(c).User()

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.CreateRoot(c.UserContext(), service.CreateRootCommentInput{
		UserID:  user.ID,
		PostID:  postID,
		Content: req.Content,
	})
	if err != nil {
		return respondAppError(c, err)
	}

	return models.Respond(c, fiber.StatusCreated, "Comment created", comment)
}

// CreateReply handles POST /comments/:id
func (s *Server) CreateReply(c *fiber.Ctx) error {
	parentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	user, _ := s.identity(c).User()

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.CreateReply(c.UserContext(), service.CreateReplyInput{
		UserID:          user.ID,
		ParentCommentID: parentID,
		Content:         req.Content,
	})
	if err != nil {
		return respondAppError(c, err)
	}

	return models.Respond(c, fiber.StatusCreated, "Reply created", comment)
}

// GetPostComments handles GET /posts/:id/comments
func (s *Server) GetPostComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	page, opts, err := parseListing(c)
	if err != nil {
		return respondAppError(c, err)
	}

	comments, count, err := s.commentService.ListForPost(c.UserContext(), postID,
		opts, s.identity(c).ViewerID())
	if err != nil {
		return respondAppError(c, err)
	}

	return models.RespondPage(c, "Comments retrieved", comments, models.Pagination{
		Page:       page.Page,
		TotalPages: totalPages(count, page.Limit),
	})
}

// GetCommentReplies handles GET /comments/:id/comments
func (s *Server) GetCommentReplies(c *fiber.Ctx) error {
	parentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	page, opts, err := parseListing(c)
	if err != nil {
		return respondAppError(c, err)
	}

	comments, count, err := s.commentService.ListReplies(c.UserContext(), parentID,
		opts, s.identity(c).ViewerID())
	if err != nil {
		return respondAppError(c, err)
	}

	return models.RespondPage(c, "Replies retrieved", comments, models.Pagination{
		Page:       page.Page,
		TotalPages: totalPages(count, page.Limit),
	})
}

// UpvoteComment handles POST /comments/:id/upvote
func (s *Server) UpvoteComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	user, _ := s.identity(c).User()

	result, err := s.commentService.ToggleUpvote(c.UserContext(), id, user.ID)
	if err != nil {
		return respondAppError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, "Upvote toggled", result)
}
