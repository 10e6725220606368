// Command studio renders page templates and saved scenes to images.
//
// Usage:
//
//	studio [flags] <template.yaml|template.json|scene.json>
//
// Templates are laid out and rendered to PNG or JPEG. With -scene the input
// is a document produced by a previous -format json export and is
// re-rendered as is; image bitmaps are reloaded from their saved sources,
// resolved against the configured asset_dir or the document's directory.
// With -watch the input is rendered again whenever it changes on disk.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/gogpu/studio"
	_ "github.com/gogpu/studio/backend/canvas"
	"github.com/gogpu/studio/internal/config"
	"github.com/gogpu/studio/render"
)

// dataFlag collects repeated -data key=value pairs.
type dataFlag map[string]any

func (d dataFlag) String() string {
	pairs := make([]string, 0, len(d))
	for k, v := range d {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, v))
	}
	return strings.Join(pairs, ",")
}

func (d dataFlag) Set(s string) error {
	k, v, ok := strings.Cut(s, "=")
	if !ok || k == "" {
		return fmt.Errorf("want key=value, got %q", s)
	}
	d[k] = v
	return nil
}

func main() {
	var (
		configPath = flag.String("config", "", "TOML configuration file")
		output     = flag.String("o", "", "output file (default: input name with the format's extension, - for stdout)")
		format     = flag.String("format", "", "output format: png, jpeg or json")
		quality    = flag.Float64("quality", 0, "JPEG quality in [0, 1]")
		variant    = flag.String("variant", "", "template variant (default: first)")
		background = flag.String("background", "", "background color")
		grid       = flag.Bool("grid", false, "draw the alignment grid")
		backend    = flag.String("backend", "", "render backend")
		logLevel   = flag.String("log-level", "", "log level: debug, info, warn or error")
		sceneMode  = flag.Bool("scene", false, "treat the input as a saved scene document")
		watch      = flag.Bool("watch", false, "re-render when the input changes")
		data       = dataFlag{}
	)
	flag.Var(data, "data", "template data override key=value (repeatable)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <input>\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "studio:", err)
		os.Exit(1)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			cfg.Format = *format
		case "quality":
			cfg.Quality = *quality
		case "background":
			cfg.Background = *background
		case "grid":
			cfg.Grid = *grid
		case "backend":
			cfg.Backend = *backend
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})

	j := job{
		input:   flag.Arg(0),
		output:  *output,
		variant: *variant,
		scene:   *sceneMode,
		data:    data,
		cfg:     cfg,
	}
	if err := j.validate(); err != nil {
		fmt.Fprintln(os.Stderr, "studio:", err)
		os.Exit(2)
	}

	level, _ := cfg.Level()
	studio.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, &j, *watch); err != nil {
		studio.Logger().Error("studio: failed", "err", err)
		os.Exit(1)
	}
}

func execute(ctx context.Context, j *job, watch bool) error {
	eng, err := render.New(j.cfg.Backend,
		render.WithBackground(j.cfg.Background),
		render.WithGrid(j.cfg.Grid),
	)
	if err != nil {
		return err
	}
	if !watch {
		return j.run(ctx, eng)
	}
	return watchInput(ctx, j, eng)
}
