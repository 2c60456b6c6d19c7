package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/ardnew/usbrom/inspect"
	"github.com/ardnew/usbrom/pkg/usbid"
	"github.com/ardnew/usbrom/rom"
)

func runDump(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("dump", "[options] [image.bin]", stderr)
	var c common
	c.register(fs)
	configPath := fs.String("config", "", "compile this configuration instead of reading an image")
	idsPath := fs.String("usbids", "", "path to a usb.ids database (default: system locations)")
	plain := fs.Bool("plain", false, "never style the output")
	request := fs.String("request", "", "answer GET_DESCRIPTOR for this wValue (type<<8 | index, e.g. 0x0200) instead of decoding")
	length := fs.Uint("length", 0xffff, "wLength of the -request packet")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	var wValue uint64
	if *request != "" {
		v, err := strconv.ParseUint(*request, 0, 16)
		if err != nil || *length > 0xffff {
			_ = writef(stderr, "error: invalid -request %q or -length %d\n", *request, *length)
			return 2
		}
		wValue = v
	}
	if (*configPath == "") == (fs.NArg() != 1) {
		_ = writeln(stderr, "error: exactly one of -config or an image file is required")
		fs.Usage()
		return 2
	}

	stop, err := c.start(stderr)
	if err != nil {
		return fail(stderr, err)
	}
	defer stop()

	var img *rom.Image
	if *configPath != "" {
		r, err := compile(*configPath, c.bounds)
		if err != nil {
			return fail(stderr, err)
		}
		if img, err = rom.Assemble(r); err != nil {
			return fail(stderr, err)
		}
	} else {
		data, err := os.ReadFile(fs.Arg(0))
		if err != nil {
			return fail(stderr, fmt.Errorf("read image: %w", err))
		}
		if img, err = rom.Scan(data); err != nil {
			return fail(stderr, fmt.Errorf("%s: %w", fs.Arg(0), err))
		}
	}

	if *request != "" {
		return answer(img, uint16(wValue), uint16(*length), stdout, stderr)
	}

	nodes, err := inspect.NewDecoder(loadIDs(*idsPath)).Decode(img)
	if err != nil {
		return fail(stderr, err)
	}

	styles := inspect.PlainStyles()
	if !*plain && isTerminal(stdout) {
		styles = inspect.ColorStyles()
	}
	if err := inspect.Render(stdout, nodes, styles); err != nil {
		return fail(stderr, err)
	}
	return 0
}

// answer serves a GET_DESCRIPTOR SETUP packet from img and hex dumps the
// reply.
func answer(img *rom.Image, wValue, wLength uint16, stdout, stderr io.Writer) int {
	var setup rom.SetupPacket
	rom.GetDescriptorSetup(&setup, uint8(wValue>>8), uint8(wValue), 0, wLength)
	var packet [rom.SetupPacketSize]byte
	setup.MarshalTo(packet[:])

	reply, err := img.GetDescriptorRaw(packet[:])
	if err != nil {
		return fail(stderr, err)
	}
	Logger().Debug("descriptor request",
		zap.Stringer("setup", &setup),
		zap.Int("reply", len(reply)),
	)
	if _, err := io.WriteString(stdout, hex.Dump(reply)); err != nil {
		return fail(stderr, err)
	}
	return 0
}

// loadIDs opens the usb.ids database at path, or at the system locations
// when path is empty. A missing database only loses names.
func loadIDs(path string) *usbid.Database {
	db := usbid.New()
	if path != "" {
		db = usbid.NewWithPaths([]string{path})
	}
	if !db.Load() {
		Logger().Debug("no usb.ids database found", zap.String("path", path))
		return db
	}
	Logger().Debug("usb.ids loaded",
		zap.Int("vendors", db.VendorCount()),
		zap.Int("products", db.ProductCount()),
		zap.Int("classes", db.ClassCount()),
	)
	return db
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
