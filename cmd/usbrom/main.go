package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ardnew/usbrom/pkg"
	"github.com/ardnew/usbrom/pkg/prof"
	"github.com/ardnew/usbrom/schema"
)

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdout, os.Stderr)
}

type command struct {
	name    string
	summary string
	run     func(args []string, stdout, stderr io.Writer) int
}

var commands = []command{
	{"schema", "write the Kconfig schema for the given bounds", runSchema},
	{"build", "compile a configuration into a descriptor image", runBuild},
	{"dump", "decode and print a descriptor image", runDump},
	{"browse", "explore the options of a configuration interactively", runBrowse},
}

func runWithArgs(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}
	switch args[0] {
	case "-h", "-help", "--help", "help":
		usage(stdout)
		return 0
	}
	for _, c := range commands {
		if c.name == args[0] {
			return c.run(args[1:], stdout, stderr)
		}
	}
	_ = writef(stderr, "error: unknown command %q\n\n", args[0])
	usage(stderr)
	return 2
}

func usage(w io.Writer) {
	_ = writef(w, "Usage: %s <command> [options]\n\n", filepath.Base(os.Args[0]))
	_ = writeln(w, "Compiles USB descriptor configurations into firmware images.")
	_ = writeln(w)
	_ = writeln(w, "Commands:")
	for _, c := range commands {
		_ = writef(w, "  %-8s %s\n", c.name, c.summary)
	}
	_ = writeln(w)
	_ = writef(w, "Run '%s <command> -h' for the options of a command.\n", filepath.Base(os.Args[0]))
}

// Default bounds match the stock generator: two configurations of up to 32
// interfaces of up to 32 endpoints, and 32 strings.
const (
	defaultMaxConfigs    = 2
	defaultMaxInterfaces = 32
	defaultMaxEndpoints  = 32
	defaultMaxStrings    = 32
)

// common holds the flags shared by every command.
type common struct {
	bounds     schema.Bounds
	verbose    bool
	cpuProfile string
	memProfile string
}

// register adds the shared flags to fs.
func (c *common) register(fs *flag.FlagSet) {
	fs.IntVar(&c.bounds.MaxConfigurations, "max-configs", defaultMaxConfigs, "maximum number of configurations")
	fs.IntVar(&c.bounds.MaxInterfaces, "max-interfaces", defaultMaxInterfaces, "maximum interfaces per configuration")
	fs.IntVar(&c.bounds.MaxEndpoints, "max-endpoints", defaultMaxEndpoints, "maximum endpoints per interface")
	fs.IntVar(&c.bounds.MaxStrings, "max-strings", defaultMaxStrings, "maximum number of strings")
	fs.BoolVar(&c.verbose, "v", false, "verbose logging")
	fs.StringVar(&c.cpuProfile, "cpuprofile", "", "write CPU profile to file")
	fs.StringVar(&c.memProfile, "memprofile", "", "write memory profile to file")
}

// start installs the loggers and starts profiling. The returned function
// stops profiling and flushes the logger.
func (c *common) start(stderr io.Writer) (func(), error) {
	SetLogger(newLogger(stderr, c.verbose))
	level := slog.LevelWarn
	if c.verbose {
		level = slog.LevelDebug
	}
	pkg.SetLogLevel(level)
	pkg.SetLogger(pkg.NewLogger(stderr, nil))

	if c.cpuProfile != "" {
		if err := prof.StartCPU(c.cpuProfile); err != nil {
			return nil, fmt.Errorf("start cpu profile %s: %w", c.cpuProfile, err)
		}
		Logger().Debug("cpu profiling", zap.String("path", c.cpuProfile))
	}

	return func() {
		if err := prof.StopCPU(); err != nil {
			Logger().Warn("stop cpu profile", zap.Error(err))
		}
		if c.memProfile != "" {
			if err := prof.Write(prof.ProfileHeap, c.memProfile); err != nil {
				Logger().Warn("write memory profile", zap.String("path", c.memProfile), zap.Error(err))
			}
		}
		_ = Logger().Sync()
	}, nil
}

// newFlagSet returns a flag set for command name whose usage text lists
// synopsis before the options.
func newFlagSet(name, synopsis string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		_ = writef(stderr, "Usage: %s %s %s\n\nOptions:\n", filepath.Base(os.Args[0]), name, synopsis)
		fs.PrintDefaults()
	}
	return fs
}

// fail reports err on stderr and returns the exit status for it. Compile
// errors are also logged with their option and position.
func fail(stderr io.Writer, err error) int {
	var ce *pkg.Error
	if errors.As(err, &ce) {
		Logger().Error("compile failed",
			zap.Stringer("kind", ce.Kind),
			zap.String("option", ce.Option),
			zap.Stringer("position", ce.Pos),
		)
	}
	_ = writef(stderr, "error: %v\n", err)
	return 1
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
