package main

import (
	"io"

	"go.uber.org/zap"

	"github.com/ardnew/usbrom/config"
	"github.com/ardnew/usbrom/schema"
)

func runSchema(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("schema", "[options]", stderr)
	var c common
	c.register(fs)
	out := fs.String("o", stdoutPath, "write the Kconfig schema to file")
	defconfig := fs.String("defconfig", "", "also write the default configuration to file (.config, or YAML by extension)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	stop, err := c.start(stderr)
	if err != nil {
		return fail(stderr, err)
	}
	defer stop()

	tree := schema.Build(c.bounds)
	Logger().Debug("schema built",
		zap.Int("configs", tree.Bounds().MaxConfigurations),
		zap.Int("interfaces", tree.Bounds().MaxInterfaces),
		zap.Int("endpoints", tree.Bounds().MaxEndpoints),
		zap.Int("strings", tree.Bounds().MaxStrings),
	)

	if err := writeOutput(*out, stdout, func(w io.Writer) error {
		return schema.WriteKconfig(w, tree)
	}); err != nil {
		return fail(stderr, err)
	}

	if *defconfig != "" {
		r, err := config.Resolve(tree, config.NewRaw())
		if err != nil {
			return fail(stderr, err)
		}
		if err := writeOutput(*defconfig, stdout, func(w io.Writer) error {
			return writeResolved(w, *defconfig, r)
		}); err != nil {
			return fail(stderr, err)
		}
	}
	return 0
}
