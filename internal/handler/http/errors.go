// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors raised by the transport layer itself, before a request
// reaches the service layer. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidJSON is returned when a request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrInvalidID is returned when a path parameter is not a positive integer.
	ErrInvalidID = errors.New("invalid id")

	// ErrInvalidQuery is returned for malformed limit/offset parameters.
	ErrInvalidQuery = errors.New("invalid query parameters")

	// ErrInvalidMultipart is returned when an upload form cannot be parsed.
	ErrInvalidMultipart = errors.New("invalid multipart form")

	// ErrTooManyRequests is returned when the attempt limiter rejects a
	// request.
	ErrTooManyRequests = errors.New("too many requests")
)
