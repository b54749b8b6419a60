// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoTransports means the server config names neither an HTTP nor a gRPC
// address. cmd/server treats it as fatal.
var errNoTransports = errors.New("no transport address configured")
