// SPDX-FileCopyrightText: Copyright 2023 Prasad Tengse
// SPDX-License-Identifier: MIT

package ghmodel

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/tprasadtp/go-ghmodel/internal/api"
)

var (
	_ error = Error("")
	_ error = (*ResponseError)(nil)
)

// Error is immutable error representation.
//
// Error strings themselves are NOT part of semver compatibility guarantees.
// Use exported symbols instead of directly using error strings.
type Error string

// Implements Error() interface.
func (e Error) Error() string {
	return string(e)
}

// Errors returned by this package.
//
//   - [ErrOptions] is returned by [NewClient] when options are invalid.
//   - [ErrResponse] is matched by every [ResponseError].
//   - [ErrInvalidName] is returned when a login or repository name is
//     invalid. No request is made in such cases.
//   - [ErrNoClient] is returned when a model which is not bound to
//     a [Client] is used to make requests.
const (
	ErrOptions     = Error("ghmodel: invalid options")
	ErrResponse    = Error("ghmodel: error response")
	ErrInvalidName = Error("ghmodel: invalid name")
	ErrNoClient    = Error("ghmodel: model is not bound to a client")
)

// ResponseError is returned when API responds with a non 2xx status.
type ResponseError struct {
	// HTTP status code.
	StatusCode int

	// HTTP status line, like "422 Unprocessable Entity".
	Status string

	// Primary error message returned by the API.
	Message string

	// Itemized errors returned by the API, if any.
	Errors []string

	// Documentation URL returned by the API, if any.
	DocumentationURL string
}

func (e *ResponseError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}

	msg := e.Message
	if len(e.Errors) > 0 {
		if msg != "" {
			msg += " - "
		}
		msg += strings.Join(e.Errors, ", ")
	}

	if msg == "" {
		return "ghmodel: " + status
	}
	return fmt.Sprintf("ghmodel: %s(%s)", msg, status)
}

// Is reports whether target is [ErrResponse].
func (e *ResponseError) Is(target error) bool {
	return target == ErrResponse
}

// newResponseError builds a [ResponseError] from an error response body.
// Body which is not a valid error response is ignored, as GitHub API error
// responses are inconsistent.
func newResponseError(resp *response) *ResponseError {
	e := &ResponseError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
	}

	var body api.ErrorResponse
	if err := decodeJSON(resp.Body, &body); err == nil {
		e.Message = body.Message
		e.DocumentationURL = body.DocumentationURL
		for _, item := range body.Errors {
			if s := item.String(); s != "" {
				e.Errors = append(e.Errors, s)
			}
		}
	}
	return e
}
