package aggregates

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode standardizes failure semantics across the blog core.
type ErrorCode string

const (
	CodeUnauthenticated    ErrorCode = "unauthenticated"
	CodeForbidden          ErrorCode = "forbidden"
	CodeValidation         ErrorCode = "validation"
	CodeNotFound           ErrorCode = "not_found"
	CodeConflict           ErrorCode = "conflict"
	CodeInvariantViolation ErrorCode = "invariant_violation"
	CodePreconditionFailed ErrorCode = "precondition_failed"
	CodeRetryable          ErrorCode = "retryable"
	CodeInternal           ErrorCode = "internal"
)

// Subjects name the entity (not_found) or field (validation) an error is about.
const (
	SubjectPost     = "post"
	SubjectComment  = "comment"
	SubjectUser     = "user"
	SubjectNotLiked = "not-liked"

	FieldTitle     = "title"
	FieldBody      = "body"
	FieldAuthorID  = "author_id"
	FieldCreatedAt = "created_at"
	FieldPage      = "page"
	FieldPageSize  = "page_size"
	FieldUsername  = "username"
	FieldPassword  = "password"
	FieldRequest   = "request"
)

// Error is the canonical aggregate error wrapper.
type Error struct {
	Code    ErrorCode
	Op      string
	Subject string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	op := strings.TrimSpace(e.Op)
	msg := strings.TrimSpace(e.Message)
	if e.Subject != "" {
		if msg == "" {
			msg = e.Subject
		} else {
			msg = e.Subject + ": " + msg
		}
	}
	switch {
	case op != "" && msg != "":
		return fmt.Sprintf("%s: %s (%s)", op, msg, e.Code)
	case op != "":
		return fmt.Sprintf("%s (%s)", op, e.Code)
	case msg != "":
		return fmt.Sprintf("%s (%s)", msg, e.Code)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError builds an aggregate error with explicit code + operation.
func NewError(code ErrorCode, op, message string, cause error) error {
	return &Error{
		Code:    code,
		Op:      strings.TrimSpace(op),
		Message: strings.TrimSpace(message),
		Cause:   cause,
	}
}

// NewSubjectError is NewError with the entity or field attached.
func NewSubjectError(code ErrorCode, op, subject, message string) error {
	return &Error{
		Code:    code,
		Op:      strings.TrimSpace(op),
		Subject: strings.TrimSpace(subject),
		Message: strings.TrimSpace(message),
	}
}

func Unauthenticated(op string) error {
	return NewSubjectError(CodeUnauthenticated, op, "", "authentication required")
}

func Forbidden(op, message string) error {
	return NewSubjectError(CodeForbidden, op, "", message)
}

func NotFound(op, entity string) error {
	return NewSubjectError(CodeNotFound, op, entity, "not found")
}

func Validation(op, field, message string) error {
	return NewSubjectError(CodeValidation, op, field, message)
}

// Wrap annotates an existing error with aggregate error semantics.
func Wrap(code ErrorCode, op string, err error) error {
	if err == nil {
		return nil
	}
	return NewError(code, op, err.Error(), err)
}

// IsCode checks whether err (or wrapped err) carries the given aggregate code.
func IsCode(err error, code ErrorCode) bool {
	var aggErr *Error
	if !errors.As(err, &aggErr) {
		return false
	}
	return aggErr.Code == code
}

// CodeOf extracts the aggregate error code when available.
func CodeOf(err error) ErrorCode {
	var aggErr *Error
	if !errors.As(err, &aggErr) {
		return ""
	}
	return aggErr.Code
}

// SubjectOf extracts the entity or field of an aggregate error.
func SubjectOf(err error) string {
	var aggErr *Error
	if !errors.As(err, &aggErr) {
		return ""
	}
	return aggErr.Subject
}
