// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"errors"

	"kindling/internal/models"
	"kindling/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

const (
	defaultPageLimit   = 20
	maxPaginationLimit = 100
)

// pageParams holds parsed page/limit query parameters.
type pageParams struct {
	Page  int
	Limit int
}

func (p pageParams) offset() int {
	return (p.Page - 1) * p.Limit
}

// parsePagination extracts page and limit query parameters. Out-of-range
// values fall back to sane defaults rather than erroring.
func parsePagination(c *fiber.Ctx) pageParams {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	limit := c.QueryInt("limit", defaultPageLimit)
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	return pageParams{Page: page, Limit: limit}
}

// parseListing combines pagination with sort key and order. Unknown sort
// keys and orders are rejected so typos do not silently fall back to a
// different ordering than the client asked for.
func parseListing(c *fiber.Ctx) (pageParams, repository.ListOptions, error) {
	p := parsePagination(c)

	sort := c.Query("sort", repository.SortByCreatedAt)
	switch sort {
	case repository.SortByPoints, repository.SortByCreatedAt:
	default:
		return p, repository.ListOptions{}, models.NewValidationError(
			"Invalid sort key: must be 'points' or 'createdAt'")
	}

	order := c.Query("order", "desc")
	switch order {
	case "asc", "desc":
	default:
		return p, repository.ListOptions{}, models.NewValidationError(
			"Invalid sort order: must be 'asc' or 'desc'")
	}

	return p, repository.ListOptions{
		Sort:   sort,
		Order:  order,
		Limit:  p.Limit,
		Offset: p.offset(),
	}, nil
}

// totalPages computes the page count for a listing: ceil(count / limit).
func totalPages(count int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((count + int64(limit) - 1) / int64(limit))
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// identity returns the viewer identity stored by the session middleware.
func (s *Server) identity(c *fiber.Ctx) models.Identity {
	if id, ok := c.Locals("identity").(models.Identity); ok {
		return id
	}
	return models.Anonymous()
}

// respondAppError maps an application error onto the right HTTP status.
func respondAppError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	status := fiber.StatusInternalServerError
	switch appErr.Code {
	case models.CodeValidation:
		status = fiber.StatusBadRequest
	case models.CodeUnauthorized:
		status = fiber.StatusUnauthorized
	case models.CodeNotFound:
		status = fiber.StatusNotFound
	}
	return models.RespondWithError(c, status, appErr)
}
