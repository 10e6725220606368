// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"strings"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/studio"
)

// DefaultFontSize is used when an object carries no font size.
const DefaultFontSize = 16.0

// maxCachedFaces bounds the per-canvas face cache.
const maxCachedFaces = 64

type fontKind uint8

const (
	fontRegular fontKind = iota
	fontBold
	fontMono
)

type faceKey struct {
	kind fontKind
	size float64
}

// fontSources parses the embedded Go fonts once per process.
var fontSources = sync.OnceValue(func() map[fontKind]*text.FontSource {
	srcs := make(map[fontKind]*text.FontSource, 3)
	for kind, ttf := range map[fontKind][]byte{
		fontRegular: goregular.TTF,
		fontBold:    gobold.TTF,
		fontMono:    gomono.TTF,
	} {
		src, err := text.NewFontSource(ttf)
		if err != nil {
			studio.Logger().Warn("canvas: embedded font failed to parse", "kind", kind, "err", err)
			continue
		}
		srcs[kind] = src
	}
	return srcs
})

// fontKindFor maps a CSS-like family list onto one of the embedded fonts.
func fontKindFor(family string) fontKind {
	f := strings.ToLower(family)
	switch {
	case strings.Contains(f, "mono"), strings.Contains(f, "courier"), strings.Contains(f, "code"):
		return fontMono
	case strings.Contains(f, "bold"):
		return fontBold
	}
	return fontRegular
}

func fontSize(size float64) float64 {
	if size <= 0 {
		return DefaultFontSize
	}
	return size
}

// face returns a cached face for family at size, or nil when no font is
// usable.
func (c *Canvas) face(family string, size float64) text.Face {
	size = fontSize(size)
	key := faceKey{kind: fontKindFor(family), size: size}
	if f, ok := c.faces[key]; ok {
		return f
	}

	srcs := fontSources()
	src, ok := srcs[key.kind]
	if !ok {
		if src, ok = srcs[fontRegular]; !ok {
			return nil
		}
	}
	if len(c.faces) >= maxCachedFaces {
		clear(c.faces)
	}
	f := src.Face(size)
	c.faces[key] = f
	return f
}

// normalizeText returns s in Unicode NFC so composed and decomposed input
// render and measure identically.
func normalizeText(s string) string {
	return norm.NFC.String(s)
}
