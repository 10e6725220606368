// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"math"
	"strings"
)

// Format is an image export format.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

// ParseFormat parses a format name or file extension, case-insensitively.
// "jpg" is accepted as FormatJPEG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// MIMEType returns the media type of encoded output.
func (f Format) MIMEType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatJPEG:
		return "image/jpeg"
	}
	return "application/octet-stream"
}

// Extension returns the conventional file extension including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	case FormatPNG:
		return ".png"
	}
	return ""
}

// JPEGQuality maps a quality in [0, 1] onto the 1..100 scale used by JPEG
// encoders. Out-of-range and NaN inputs are clamped; NaN maps to 1.
func JPEGQuality(q float64) int {
	if math.IsNaN(q) || q <= 0 {
		return 1
	}
	if q >= 1 {
		return 100
	}
	return max(1, int(math.Round(q*100)))
}
