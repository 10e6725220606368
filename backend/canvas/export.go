// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/gogpu/studio"
	"github.com/gogpu/studio/render"
)

// ExportImage encodes the current frame. Quality in [0, 1] applies to
// JPEG only. Exporting an empty surface fails with render.ErrEmptySurface
// wrapped in render.ErrEncode.
func (c *Canvas) ExportImage(ctx context.Context, format render.Format, quality float64) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.dc == nil {
		return nil, fmt.Errorf("%w: %w (%dx%d)", render.ErrEncode, render.ErrEmptySurface, c.width, c.height)
	}

	var buf bytes.Buffer
	var err error
	switch format {
	case render.FormatPNG:
		err = c.dc.EncodePNG(&buf)
	case render.FormatJPEG:
		err = c.dc.EncodeJPEG(&buf, render.JPEGQuality(quality))
	default:
		return nil, fmt.Errorf("%w: %q", render.ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", render.ErrEncode, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	studio.Logger().Debug("canvas: frame exported", "format", format, "bytes", buf.Len())
	return buf.Bytes(), nil
}

// ExportJSON serializes the scene as {"objects", "layerOrder"}.
func (c *Canvas) ExportJSON() ([]byte, error) {
	return json.Marshal(c.scene)
}

// LoadJSON replaces the scene with a document produced by ExportJSON and
// renders once. Malformed documents leave the scene untouched and return
// an error wrapping scene.ErrInvalidDocument.
func (c *Canvas) LoadJSON(data []byte) error {
	if err := c.scene.LoadJSON(data); err != nil {
		return err
	}
	c.Render()
	studio.Logger().Info("canvas: scene loaded", "objects", c.scene.Len())
	return nil
}
