// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks request bodies before they reach the auth and
// post services.
//
// Each validator accepts a request model by value or pointer and an optional
// list of field names that restricts the checks to those fields. Errors are
// package sentinels; the HTTP layer maps them to user-facing messages.
package validators

import "context"

// Validator validates a request model.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
