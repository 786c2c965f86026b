package apierr

import (
	"errors"
	"fmt"
	"net/http"

	domainagg "github.com/yungbote/blog-backend/internal/domain/aggregates"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// FromError maps aggregate error codes onto HTTP statuses. Unliking a post
// that was never liked is a client error, not a missing resource.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	code := domainagg.CodeOf(err)
	switch code {
	case domainagg.CodeUnauthenticated:
		return New(http.StatusUnauthorized, string(code), err)
	case domainagg.CodeForbidden:
		return New(http.StatusForbidden, string(code), err)
	case domainagg.CodeNotFound:
		if domainagg.SubjectOf(err) == domainagg.SubjectNotLiked {
			return New(http.StatusBadRequest, "not_liked", err)
		}
		return New(http.StatusNotFound, string(code), err)
	case domainagg.CodeValidation, domainagg.CodeInvariantViolation:
		return New(http.StatusBadRequest, string(code), err)
	case domainagg.CodeConflict:
		return New(http.StatusConflict, string(code), err)
	case domainagg.CodePreconditionFailed:
		return New(http.StatusPreconditionFailed, string(code), err)
	case domainagg.CodeRetryable:
		return New(http.StatusServiceUnavailable, string(code), err)
	default:
		return New(http.StatusInternalServerError, "internal", err)
	}
}
