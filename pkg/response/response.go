// Package response centralizes HTTP response shapes and helpers.
// Handlers rely on it to keep controllers thin and uniform.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/lead-service/internal/pagination"
	"github.com/maxviazov/lead-service/internal/repository"
	"github.com/maxviazov/lead-service/internal/service"
)

// ErrorPayload is the canonical error envelope returned by the API.
type ErrorPayload struct {
	Error       string               `json:"error"`
	Message     string               `json:"message,omitempty"`
	FieldErrors []service.FieldError `json:"field_errors,omitempty"`
}

// PaginationMeta is the "pagination" block of a list response.
type PaginationMeta struct {
	Total       int     `json:"total"`
	PageSize    int     `json:"page_size"`
	NextCursor  *string `json:"next_cursor"`
	PrevCursor  *string `json:"prev_cursor"`
	HasNext     bool    `json:"has_next"`
	HasPrev     bool    `json:"has_prev"`
	CursorReset bool    `json:"cursor_reset"`
}

// PageEnvelope is the list response body.
type PageEnvelope[T any] struct {
	Data       []T            `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

// FromPage converts a pagination.Page; Data is never null in JSON.
func FromPage[T any](p pagination.Page[T]) PageEnvelope[T] {
	items := p.Items
	if items == nil {
		items = []T{}
	}
	return PageEnvelope[T]{
		Data: items,
		Pagination: PaginationMeta{
			Total:       p.Total,
			PageSize:    p.PageSize,
			NextCursor:  p.NextCursor,
			PrevCursor:  p.PrevCursor,
			HasNext:     p.HasNext,
			HasPrev:     p.HasPrev,
			CursorReset: p.CursorReset,
		},
	}
}

// MapError converts a domain / infrastructure error into an HTTP status and payload.
func MapError(err error) (int, ErrorPayload) {
	if err == nil {
		return http.StatusOK, ErrorPayload{Error: "ok"}
	}

	if errors.Is(err, service.ErrInvalidInput) {
		return http.StatusBadRequest, ErrorPayload{
			Error:       "invalid_input",
			Message:     "one or more fields are invalid",
			FieldErrors: service.FieldErrors(err),
		}
	}

	switch {
	case errors.Is(err, pagination.ErrInvalidArgument):
		return http.StatusBadRequest, ErrorPayload{Error: "invalid_argument", Message: err.Error()}
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, ErrorPayload{Error: "not_found"}
	case errors.Is(err, repository.ErrAlreadyExists):
		return http.StatusConflict, ErrorPayload{Error: "already_exists"}
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict, ErrorPayload{Error: "conflict"}
	default:
		return http.StatusInternalServerError, ErrorPayload{Error: "internal_error"}
	}
}

// WriteError writes an error response and aborts the context.
func WriteError(c *gin.Context, err error) {
	status, payload := MapError(err)
	c.AbortWithStatusJSON(status, payload)
}

// WriteData writes a successful JSON response.
func WriteData(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}
