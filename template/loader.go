// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package template

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register decoders for image.Decode
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Asset loading errors.
var (
	// ErrNotImage is returned when fetched bytes are not a supported image.
	ErrNotImage = errors.New("template: asset is not an image")

	// ErrUnsupportedSource is returned for sources with an unknown scheme.
	ErrUnsupportedSource = errors.New("template: unsupported asset source")

	// ErrFetch wraps non-success HTTP responses.
	ErrFetch = errors.New("template: fetch failed")
)

// DefaultMaxAssetBytes bounds the size of a single fetched asset.
const DefaultMaxAssetBytes = 32 << 20

// AssetLoader resolves an image source to a decoded bitmap.
// Implementations must be safe for concurrent use.
type AssetLoader interface {
	Load(ctx context.Context, src string) (image.Image, error)
}

// LoaderFunc adapts a function to AssetLoader.
type LoaderFunc func(ctx context.Context, src string) (image.Image, error)

// Load calls f(ctx, src).
func (f LoaderFunc) Load(ctx context.Context, src string) (image.Image, error) {
	return f(ctx, src)
}

// FetchLoader loads images from http(s) URLs, base64 data: URIs and the
// local file system.
type FetchLoader struct {
	// Client performs HTTP requests. Nil means http.DefaultClient.
	Client *http.Client

	// BaseDir resolves relative file paths. Empty means the working
	// directory.
	BaseDir string

	// MaxBytes bounds the size of one asset. Zero means
	// DefaultMaxAssetBytes.
	MaxBytes int64
}

// Load fetches src and decodes it. Bytes are sniffed before decoding so
// non-image payloads fail with ErrNotImage.
func (l *FetchLoader) Load(ctx context.Context, src string) (image.Image, error) {
	data, err := l.fetch(ctx, src)
	if err != nil {
		return nil, err
	}
	return DecodeImage(data)
}

func (l *FetchLoader) limit() int64 {
	if l.MaxBytes > 0 {
		return l.MaxBytes
	}
	return DefaultMaxAssetBytes
}

func (l *FetchLoader) fetch(ctx context.Context, src string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, fmt.Errorf("%w: empty source", ErrUnsupportedSource)
	}
	if strings.HasPrefix(src, "data:") {
		return decodeDataURI(src)
	}

	u, err := url.Parse(src)
	if err != nil || len(u.Scheme) <= 1 {
		// No scheme, or a Windows drive letter.
		return l.readFile(src)
	}
	switch u.Scheme {
	case "http", "https":
		return l.get(ctx, src)
	case "file":
		return l.readFile(u.Path)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedSource, u.Scheme)
}

func (l *FetchLoader) get(ctx context.Context, src string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: %s", ErrFetch, src, resp.Status)
	}
	return readLimited(resp.Body, l.limit())
}

func (l *FetchLoader) readFile(path string) ([]byte, error) {
	if !filepath.IsAbs(path) && l.BaseDir != "" {
		path = filepath.Join(l.BaseDir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readLimited(f, l.limit())
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("template: asset exceeds %d bytes", limit)
	}
	return data, nil
}

// decodeDataURI decodes "data:[<mediatype>][;base64],<data>".
func decodeDataURI(src string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(src, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("%w: malformed data URI", ErrUnsupportedSource)
	}
	if !strings.HasSuffix(meta, ";base64") {
		s, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedSource, err)
		}
		return []byte(s), nil
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		if data, err = base64.RawStdEncoding.DecodeString(payload); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedSource, err)
		}
	}
	return data, nil
}

// DecodeImage sniffs data and decodes PNG, JPEG, GIF, WebP, BMP or TIFF.
func DecodeImage(data []byte) (image.Image, error) {
	if !filetype.IsImage(data) {
		return nil, ErrNotImage
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		kind, _ := filetype.Match(data)
		return nil, fmt.Errorf("%w: %s: %w", ErrNotImage, kind.MIME.Value, err)
	}
	return img, nil
}
