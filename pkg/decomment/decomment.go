package decomment

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/decomment/internal/charset"
	"github.com/jmylchreest/decomment/internal/logger"
	"github.com/jmylchreest/decomment/pkg/stripper"
)

// Version returns the module version of the decomment library.
// This returns the actual version consumers pulled via go get (e.g., "v1.0.0").
// Returns "(unknown)" when built from source without version info.
func Version() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.Main.Version
	}
	return "(unknown)"
}

// Decommenter is the main entry point for stripping HTML comments from
// files and directory trees.
type Decommenter struct {
	cfg      Config
	stripper *stripper.Stripper
	log      *slog.Logger
}

// New creates a new Decommenter.
func New(opts ...Option) (*Decommenter, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := cfg.Logger
	if log == nil {
		log = logger.Logger()
	}

	return &Decommenter{
		cfg:      cfg,
		stripper: stripper.New(cfg.Filter),
		log:      log,
	}, nil
}

// Process strips comments from path, which may be a single file or a
// directory. Fatal conditions (missing path, unusable path type, output
// directory that cannot be created) return an error before any file is
// touched; individual file failures are logged, recorded in the Summary
// and never abort the run.
func (d *Decommenter) Process(ctx context.Context, path string) (*Summary, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if err := d.ensureOutputDir(); err != nil {
		return nil, err
	}

	summary := &Summary{
		Path:      path,
		OutputDir: d.cfg.OutputDir,
		Recursive: d.cfg.Recursive,
		Filter:    d.cfg.Filter,
		StartedAt: time.Now(),
	}
	start := time.Now()

	d.log.Debug("starting run",
		"path", path,
		"recursive", d.cfg.Recursive,
		"output_dir", d.cfg.OutputDir,
		"mode", d.stripper.Name())

	switch {
	case info.Mode().IsRegular():
		// Single files are processed regardless of extension.
		res, _ := d.processFile(ctx, path, d.cfg.OutputDir)
		summary.add(res)
	case info.IsDir():
		d.walk(ctx, path, path, summary)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidPathType, path)
	}

	summary.DurationMs = time.Since(start).Milliseconds()

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

// ProcessFile strips comments from a single file regardless of extension.
// When an output directory is configured the result lands there under the
// file's base name; otherwise the file is rewritten in place.
func (d *Decommenter) ProcessFile(ctx context.Context, path string) (*FileResult, error) {
	if err := d.ensureOutputDir(); err != nil {
		return nil, err
	}
	return d.processFile(ctx, path, d.cfg.OutputDir)
}

// ensureOutputDir creates the configured output directory if it is missing.
func (d *Decommenter) ensureOutputDir() error {
	if d.cfg.OutputDir == "" {
		return nil
	}
	_, serr := os.Stat(d.cfg.OutputDir)
	if err := os.MkdirAll(d.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("%w %q: %w", ErrOutputDir, d.cfg.OutputDir, err)
	}
	if serr != nil {
		d.log.Info("created output directory", "path", d.cfg.OutputDir)
	}
	return nil
}

// walk processes one directory level: matching files first, then
// subdirectories when recursion is enabled. Each level is mirrored under
// the output directory before its files are written. Unreadable directories
// and failed mirrors are logged and pruned without aborting siblings.
func (d *Decommenter) walk(ctx context.Context, root, dir string, summary *Summary) {
	if ctx.Err() != nil {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		d.log.Error("failed to read directory", "path", dir, "error", err)
		return
	}

	outDir := ""
	if d.cfg.OutputDir != "" {
		rel, rerr := filepath.Rel(root, dir)
		if rerr != nil {
			d.log.Error("failed to resolve output subdirectory", "path", dir, "error", rerr)
			return
		}
		outDir = filepath.Join(d.cfg.OutputDir, rel)
		if merr := os.MkdirAll(outDir, 0o755); merr != nil {
			d.log.Error("failed to create output directory", "path", outDir, "error", merr)
			return
		}
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}
		if entry.IsDir() || !d.matchExtension(entry.Name()) {
			continue
		}
		res, _ := d.processFile(ctx, filepath.Join(dir, entry.Name()), outDir)
		summary.add(res)
	}

	if !d.cfg.Recursive {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			d.walk(ctx, root, filepath.Join(dir, entry.Name()), summary)
		}
	}
}

// processFile runs the full per-file pipeline: read, size guard, charset
// resolution, decode, strip, re-encode, write. Failures are logged and
// recorded on the returned FileResult as well as returned.
func (d *Decommenter) processFile(ctx context.Context, path, outDir string) (res *FileResult, err error) {
	start := time.Now()
	res = &FileResult{Path: path}
	defer func() {
		res.DurationMs = time.Since(start).Milliseconds()
		if err != nil {
			res.Error = err.Error()
			d.log.Error("failed to process file", "path", path, "error", err)
		}
	}()

	if cerr := ctx.Err(); cerr != nil {
		return res, cerr
	}

	if d.cfg.MaxFileSize > 0 {
		if fi, serr := os.Stat(path); serr == nil && fi.Size() > d.cfg.MaxFileSize {
			res.Skipped = true
			res.SkipReason = fmt.Sprintf("file size %s exceeds limit %s",
				humanize.Bytes(uint64(fi.Size())), humanize.Bytes(uint64(d.cfg.MaxFileSize)))
			d.log.Warn("skipping file over size limit",
				"path", path, "size", fi.Size(), "limit", d.cfg.MaxFileSize)
			return res, nil
		}
	}

	data, rerr := os.ReadFile(path)
	if rerr != nil {
		return res, fmt.Errorf("read: %w", rerr)
	}
	res.BytesIn = len(data)

	name := d.cfg.Encoding
	fallback := false
	if name == "" {
		detected, confidence, derr := charset.Detect(data)
		if derr != nil {
			d.log.Warn("could not detect encoding, assuming UTF-8", "path", path)
			name = charset.Fallback
			fallback = true
		} else {
			name = detected
			d.log.Info("detected encoding", "path", path, "charset", name, "confidence", confidence)
		}
	}

	codec, cerr := charset.Resolve(name)
	if cerr != nil {
		if d.cfg.Encoding != "" {
			return res, cerr
		}
		d.log.Warn("unsupported detected encoding, assuming UTF-8", "path", path, "charset", name)
		codec = charset.UTF8()
		fallback = true
	}
	res.Charset = codec.Name()
	res.CharsetFallback = fallback

	content, derr := codec.Decode(data)
	if derr != nil {
		return res, derr
	}

	strip := d.stripper.StripWithStats(content)
	if strip.Error != nil {
		// The stripper hands the input back unchanged on a matching
		// failure; write it through rather than failing the file.
		d.log.Error("comment removal failed, writing content unchanged", "path", path, "error", strip.Error)
	}
	res.CommentsRemoved = strip.Stats.CommentsRemoved
	res.CommentsKept = strip.Stats.CommentsKept

	dest := path
	if outDir != "" {
		dest = filepath.Join(outDir, filepath.Base(path))
	}

	out, eerr := codec.Encode(strip.Content)
	if eerr != nil {
		return res, eerr
	}

	if werr := os.WriteFile(dest, out, 0o644); werr != nil {
		return res, fmt.Errorf("write: %w", werr)
	}

	res.Output = dest
	res.BytesOut = len(out)

	d.log.Info("processed file",
		"path", path,
		"output", dest,
		"charset", res.Charset,
		"comments_removed", res.CommentsRemoved)

	return res, nil
}

func (d *Decommenter) matchExtension(name string) bool {
	for _, ext := range d.cfg.Extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
