package main

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/studio"
	"github.com/gogpu/studio/internal/config"
	"github.com/gogpu/studio/render"
	"github.com/gogpu/studio/scene"
	"github.com/gogpu/studio/template"
)

const formatJSON = "json"

// job is one input rendered to one output.
type job struct {
	input   string
	output  string
	variant string
	scene   bool
	data    map[string]any
	cfg     config.Config

	stdout io.Writer
}

func (j *job) validate() error {
	if strings.EqualFold(j.cfg.Format, formatJSON) {
		j.cfg.Format = formatJSON
		// Format is not an image format, so validate the remaining fields
		// against the default.
		c := j.cfg
		c.Format = string(render.FormatPNG)
		return c.Validate()
	}
	return j.cfg.Validate()
}

// outputPath returns the destination, deriving it from the input name
// when none was given.
func (j *job) outputPath() string {
	if j.output != "" {
		return j.output
	}
	ext := ".json"
	if j.cfg.Format != formatJSON {
		ext = j.cfg.ExportFormat().Extension()
	}
	base := strings.TrimSuffix(j.input, filepath.Ext(j.input))
	if j.scene && ext == ".json" {
		base += ".out"
	}
	return base + ext
}

// run renders the input once and writes the result.
func (j *job) run(ctx context.Context, eng render.Engine) error {
	start := time.Now()
	if err := j.load(ctx, eng); err != nil {
		return err
	}

	var out []byte
	var err error
	if j.cfg.Format == formatJSON {
		out, err = eng.ExportJSON()
	} else {
		out, err = eng.ExportImage(ctx, j.cfg.ExportFormat(), j.cfg.Quality)
	}
	if err != nil {
		return err
	}

	dst := j.outputPath()
	if err := j.write(dst, out); err != nil {
		return err
	}
	studio.Logger().Info("studio: rendered", "input", j.input, "output", dst,
		"bytes", len(out), "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

func (j *job) load(ctx context.Context, eng render.Engine) error {
	assetDir := j.cfg.AssetDir
	if assetDir == "" {
		assetDir = filepath.Dir(j.input)
	}
	loader := &template.FetchLoader{BaseDir: assetDir}

	if t := time.Duration(j.cfg.AssetTimeout); t > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t)
		defer cancel()
	}

	if j.scene {
		doc, err := os.ReadFile(j.input)
		if err != nil {
			return err
		}
		if err := eng.LoadJSON(doc); err != nil {
			return err
		}
		return j.hydrate(ctx, eng, loader)
	}

	tpl, err := template.LoadFile(j.input)
	if err != nil {
		return err
	}
	r := template.NewRenderer(eng,
		template.WithLoader(loader),
		template.WithConcurrency(j.cfg.Concurrency),
		template.WithVariant(j.variant),
	)
	if err := r.Render(ctx, tpl, j.data); err != nil {
		return fmt.Errorf("%s: %w", j.input, err)
	}
	return nil
}

// hydrate decodes the bitmaps of loaded image objects from their sources.
// Saved documents keep only the source, so images would otherwise be
// dropped. Objects whose source fails to load are logged and left empty.
func (j *job) hydrate(ctx context.Context, eng render.Engine, loader template.AssetLoader) error {
	var pending []scene.RenderObject
	for _, o := range eng.Objects() {
		if o.Type == scene.TypeImage && o.Data.Bitmap == nil && o.Data.Src != "" {
			pending = append(pending, o)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	bitmaps := make([]image.Image, len(pending))
	var g errgroup.Group
	g.SetLimit(max(j.cfg.Concurrency, 1))
	for i, o := range pending {
		g.Go(func() error {
			img, err := loader.Load(ctx, o.Data.Src)
			if err != nil {
				studio.Logger().Warn("studio: image not restored", "id", o.ID, "src", o.Data.Src, "err", err)
				return nil
			}
			bitmaps[i] = img
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return err
	}

	for i, o := range pending {
		if bitmaps[i] == nil {
			continue
		}
		d := o.Data
		d.Bitmap = bitmaps[i]
		eng.UpdateObject(o.ID, scene.Patch{Data: &d})
	}
	return nil
}

func (j *job) write(dst string, data []byte) error {
	if dst == "-" {
		w := j.stdout
		if w == nil {
			w = os.Stdout
		}
		_, err := w.Write(data)
		return err
	}
	// Write next to the destination and rename so watchers of the output
	// never observe a partial file.
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".studio-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), dst)
}
