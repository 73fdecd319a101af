// SPDX-FileCopyrightText: Copyright 2023 Prasad Tengse
// SPDX-License-Identifier: MIT

// Package internal holds helpers shared by tests of this module.
package internal

import (
	"io"
	"net/http"
	"strconv"
	"strings"
)

var _ http.RoundTripper = (*RoundTripFunc)(nil)

// RoundTripFunc is an adapter to allow the use of ordinary functions as
// RoundTrippers, similar to [http.HandlerFunc]. It is used to stub
// API responses without starting a server.
type RoundTripFunc func(*http.Request) (*http.Response, error)

// RoundTrip implements the RoundTripper interface by calling f(r).
func (f RoundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// JSONResponse returns a response for r with status code and JSON body.
func JSONResponse(r *http.Request, code int, body string) *http.Response {
	return &http.Response{
		Status:        strconv.Itoa(code) + " " + http.StatusText(code),
		StatusCode:    code,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        http.Header{"Content-Type": []string{"application/json; charset=utf-8"}},
		Body:          io.NopCloser(strings.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       r,
	}
}
