package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ardnew/usbrom/config"
	"github.com/ardnew/usbrom/rom"
	"github.com/ardnew/usbrom/schema"
)

func runBuild(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("build", "-config <file> [options]", stderr)
	var c common
	c.register(fs)
	configPath := fs.String("config", "", "configuration to compile (.config, or YAML by extension)")
	out := fs.String("o", stdoutPath, "write the output to file")
	formatName := fs.String("format", "", "output format: bin, py, c, go, yaml or h (default: by -o extension)")
	symbol := fs.String("symbol", "", "array name in generated C or Go source")
	pkgName := fs.String("package", "", "package name of generated Go source")
	resolvedPath := fs.String("resolved", "", "also write the resolved configuration to file")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *configPath == "" {
		_ = writeln(stderr, "error: -config is required")
		fs.Usage()
		return 2
	}

	format := rom.FormatForPath(*out)
	if *formatName != "" {
		f, err := rom.ParseFormat(*formatName)
		if err != nil {
			_ = writef(stderr, "error: %v\n", err)
			return 2
		}
		format = f
	}

	stop, err := c.start(stderr)
	if err != nil {
		return fail(stderr, err)
	}
	defer stop()

	r, err := compile(*configPath, c.bounds)
	if err != nil {
		return fail(stderr, err)
	}
	img, err := rom.Assemble(r)
	if err != nil {
		return fail(stderr, err)
	}

	opts := rom.Options{Symbol: *symbol, Package: *pkgName}
	if err := writeOutput(*out, stdout, func(w io.Writer) error {
		return rom.Write(w, img, format, opts)
	}); err != nil {
		return fail(stderr, err)
	}
	Logger().Info("image built",
		zap.String("config", *configPath),
		zap.Int("size", img.Len()),
		zap.Int("records", img.Directory().Len()),
		zap.String("format", string(format)),
	)

	if *resolvedPath != "" {
		if err := writeOutput(*resolvedPath, stdout, func(w io.Writer) error {
			return writeResolved(w, *resolvedPath, r)
		}); err != nil {
			return fail(stderr, err)
		}
	}
	return 0
}

// compile loads the configuration at path and resolves it against the
// schema of b.
func compile(path string, b schema.Bounds) (*config.Resolved, error) {
	raw, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	Logger().Debug("configuration loaded", zap.String("path", path), zap.Int("entries", raw.Len()))
	r, err := config.Resolve(schema.Build(b), raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// writeResolved writes r as YAML when path has a YAML extension and as a
// .config file otherwise.
func writeResolved(w io.Writer, path string, r *config.Resolved) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return config.WriteYAML(w, r)
	default:
		return config.WriteDotConfig(w, r)
	}
}
