// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrInvalidJSON is returned by decodeJSON when the request body is not
	// a single JSON value of the expected shape.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrNoSession is returned by handlers that need the session claims the
	// guard stores in the request context and find none.
	ErrNoSession = errors.New("no session in request context")
)
