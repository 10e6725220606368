// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import "errors"

var (
	// ErrEncode wraps every failure to encode the current frame.
	ErrEncode = errors.New("render: encode failed")

	// ErrEmptySurface is returned (wrapped in ErrEncode) when exporting a
	// surface with zero width or height.
	ErrEmptySurface = errors.New("render: empty surface")

	// ErrUnsupportedFormat is returned for export formats an engine cannot
	// produce.
	ErrUnsupportedFormat = errors.New("render: unsupported format")

	// ErrNoBackendAvailable is returned when no registered backend is
	// available on the current system.
	ErrNoBackendAvailable = errors.New("render: no backend available")
)

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "render: backend not found: " + e.Name
}

// BackendUnavailableError indicates a backend exists but is not available.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return "render: backend unavailable: " + e.Name
}
