// Package apperror defines the error taxonomy shared by the ingestion and
// scoring pipelines, with the HTTP status each error maps to.
package apperror

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var (
	// ErrNoJSONFound means the completion text contained no {...} or [...] span.
	ErrNoJSONFound = errors.New("no JSON found in completion")
	// ErrInvalidJSON means a span was found but did not parse as strict JSON.
	ErrInvalidJSON = errors.New("invalid JSON in completion")
	// ErrIncompleteExtraction means the parsed JSON is missing required fields.
	ErrIncompleteExtraction = errors.New("extraction missing required fields")
)

// TransportError is a non-2xx response or network failure while fetching an
// external page or feed.
type TransportError struct {
	URL    string
	Status int
	Cause  error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("HTTP %d", e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }

// TimeoutError means the fetch exceeded its time budget. Timed-out fetches are
// never retried; the caller records the failure and moves on.
type TimeoutError struct {
	URL   string
	Cause error
}

func (e *TimeoutError) Error() string { return fmt.Sprintf("fetch %s: timed out", e.URL) }

func (e *TimeoutError) Unwrap() error { return e.Cause }

// TooShortError means the sanitized page text fell below the minimum-length
// heuristic, usually because the site blocked automated access.
type TooShortError struct {
	Length int
}

func (e *TooShortError) Error() string {
	return fmt.Sprintf("page content too short (%d chars); the site may be blocking automated access", e.Length)
}

// DuplicateError means the URL is already tracked. It carries the existing job
// id so the caller can point at it instead of erroring blindly.
type DuplicateError struct {
	JobID uuid.UUID
}

func (e *DuplicateError) Error() string { return "this job URL has already been imported" }

// ValidationError is a malformed or incomplete request body.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// PersistenceError is a store write rejected for reasons other than the known
// unique-constraint case.
type PersistenceError struct {
	Op    string
	Cause error
}

func (e *PersistenceError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Cause) }

func (e *PersistenceError) Unwrap() error { return e.Cause }

// NotFoundError is a missing resource.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// StatusCode maps a pipeline error to the HTTP status the REST surface
// reports. Unknown errors map to 500.
func StatusCode(err error) int {
	var (
		transport *TransportError
		timeout   *TimeoutError
		tooShort  *TooShortError
		duplicate *DuplicateError
		validate  *ValidationError
		notFound  *NotFoundError
	)
	switch {
	case errors.As(err, &validate):
		return fiber.StatusBadRequest
	case errors.As(err, &notFound):
		return fiber.StatusNotFound
	case errors.As(err, &duplicate):
		return fiber.StatusConflict
	case errors.As(err, &transport), errors.As(err, &timeout), errors.As(err, &tooShort):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, ErrIncompleteExtraction):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, ErrNoJSONFound), errors.Is(err, ErrInvalidJSON):
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}
