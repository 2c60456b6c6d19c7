package rom

import (
	"bufio"
	"bytes"
	"fmt"
	"go/format"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ardnew/usbrom/descriptor"
	"github.com/ardnew/usbrom/pkg"
)

// Format names an output encoding of an image.
type Format string

// Output formats.
const (
	FormatBinary Format = "bin"  // raw image bytes
	FormatPython Format = "py"   // descriptor_map and rom_init
	FormatC      Format = "c"    // byte array and directory table
	FormatGo     Format = "go"   // byte array and directory slice
	FormatYAML   Format = "yaml" // directory only
	FormatHeader Format = "h"    // packed record layouts
)

// Formats lists every output format.
var Formats = []Format{FormatBinary, FormatPython, FormatC, FormatGo, FormatYAML, FormatHeader}

// ParseFormat returns the format named s.
func ParseFormat(s string) (Format, error) {
	s = strings.TrimPrefix(strings.ToLower(s), ".")
	if s == "yml" {
		return FormatYAML, nil
	}
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// FormatForPath picks a format from the extension of path, defaulting to
// FormatBinary.
func FormatForPath(path string) Format {
	f, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return FormatBinary
	}
	return f
}

// Options control generated source.
type Options struct {
	Symbol  string // array name; default "usb_rom" (C) or "ROM" (Go)
	Package string // Go package name; default "usbrom"
}

func (o Options) symbol(def string) string {
	if o.Symbol != "" {
		return o.Symbol
	}
	return def
}

// Write emits img to w in format f.
func Write(w io.Writer, img *Image, f Format, opts Options) error {
	var err error
	switch f {
	case FormatBinary:
		_, err = w.Write(img.data)
	case FormatPython:
		err = WritePython(w, img)
	case FormatC:
		err = WriteC(w, img, opts)
	case FormatGo:
		err = WriteGo(w, img, opts)
	case FormatYAML:
		err = WriteYAML(w, img)
	case FormatHeader:
		err = WriteHeader(w, img)
	default:
		return fmt.Errorf("unknown output format %q", f)
	}
	if err != nil {
		return fmt.Errorf("emit %s: %w", f, err)
	}
	pkg.LogDebug(pkg.ComponentEmit, "image emitted", "format", string(f), "bytes", img.Len())
	return nil
}

// groups splits the directory into runs of equal type in emission order.
func (d *Directory) groups() [][]DirEntry {
	var out [][]DirEntry
	for _, e := range d.entries {
		if n := len(out); n > 0 && out[n-1][0].Type == e.Type {
			out[n-1] = append(out[n-1], e)
			continue
		}
		out = append(out, []DirEntry{e})
	}
	return out
}

// WritePython writes a Python module defining descriptor_map, a dict of
// type to {index: (offset, length)}, and rom_init, the image bytes.
func WritePython(w io.Writer, img *Image) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# Generated by usbrom\n")
	fmt.Fprintf(bw, "descriptor_map = {\n")
	for _, g := range img.dir.groups() {
		if g[0].Type == descriptor.TypeString {
			fmt.Fprintf(bw, "\t0x%02x: {\n", g[0].Type)
			for _, e := range g {
				fmt.Fprintf(bw, "\t\t%2d: (%d, %d),\n", e.Index, e.Offset, e.Length)
			}
			fmt.Fprintf(bw, "\t},\n")
			continue
		}
		items := make([]string, len(g))
		for i, e := range g {
			items[i] = fmt.Sprintf("%d: (%d, %d)", e.Index, e.Offset, e.Length)
		}
		fmt.Fprintf(bw, "\t0x%02x: {%s},\n", g[0].Type, strings.Join(items, ", "))
	}
	fmt.Fprintf(bw, "}\n\n")

	fmt.Fprintf(bw, "rom_init = [ ")
	for i, b := range img.data {
		if i%8 == 0 {
			fmt.Fprintf(bw, "\n\t")
		}
		fmt.Fprintf(bw, "0x%02x, ", b)
	}
	fmt.Fprintf(bw, "\n]\n")
	return bw.Flush()
}

// writeBytes writes data as comma-separated hex literals, eight per line,
// each line starting with indent.
func writeBytes(w io.Writer, data []byte, indent string) {
	for i := 0; i < len(data); i += 8 {
		line := data[i:min(i+8, len(data))]
		items := make([]string, len(line))
		for j, b := range line {
			items[j] = fmt.Sprintf("0x%02x", b)
		}
		fmt.Fprintf(w, "%s%s,\n", indent, strings.Join(items, ", "))
	}
}

// WriteC writes a C translation unit defining the image as a byte array
// and its directory as a table of {type, index, offset, length}.
func WriteC(w io.Writer, img *Image, opts Options) error {
	sym := opts.symbol("usb_rom")
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "/* Code generated by usbrom. DO NOT EDIT. */\n\n")
	fmt.Fprintf(bw, "#include <stdint.h>\n\n")
	fmt.Fprintf(bw, "const uint8_t %s[%d] = {\n", sym, img.Len())
	writeBytes(bw, img.data, "\t")
	fmt.Fprintf(bw, "};\n\n")
	fmt.Fprintf(bw, "const struct %s_entry {\n", sym)
	fmt.Fprintf(bw, "\tuint8_t type;\n\tuint8_t index;\n\tuint32_t offset;\n\tuint16_t length;\n")
	fmt.Fprintf(bw, "} %s_dir[%d] = {\n", sym, img.dir.Len())
	for _, e := range img.dir.entries {
		fmt.Fprintf(bw, "\t{ 0x%02x, %d, %d, %d }, /* %s */\n",
			e.Type, e.Index, e.Offset, e.Length, descriptor.TypeName(e.Type))
	}
	fmt.Fprintf(bw, "};\n")
	return bw.Flush()
}

// WriteGo writes gofmt-ed Go source defining the image as a byte array and
// its directory as a slice, for embedding into firmware.
func WriteGo(w io.Writer, img *Image, opts Options) error {
	sym := opts.symbol("ROM")
	pkgName := opts.Package
	if pkgName == "" {
		pkgName = "usbrom"
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by usbrom. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", pkgName)
	fmt.Fprintf(&buf, "// %s is the assembled USB descriptor image.\n", sym)
	fmt.Fprintf(&buf, "var %s = [%d]byte{\n", sym, img.Len())
	writeBytes(&buf, img.data, "")
	fmt.Fprintf(&buf, "}\n\n")
	fmt.Fprintf(&buf, "// %sDirectory locates each descriptor in %s.\n", sym, sym)
	fmt.Fprintf(&buf, "var %sDirectory = []struct {\n", sym)
	fmt.Fprintf(&buf, "Type, Index uint8\nOffset uint32\nLength uint16\n}{\n")
	for _, e := range img.dir.entries {
		fmt.Fprintf(&buf, "{0x%02x, %d, %d, %d}, // %s\n",
			e.Type, e.Index, e.Offset, e.Length, descriptor.TypeName(e.Type))
	}
	fmt.Fprintf(&buf, "}\n")

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("format go source: %w", err)
	}
	_, err = w.Write(src)
	return err
}

type yamlRecord struct {
	Name   string `yaml:"name"`
	Type   uint8  `yaml:"type"`
	Index  uint8  `yaml:"index"`
	Offset int    `yaml:"offset"`
	Length int    `yaml:"length"`
}

type yamlDirectory struct {
	Size    int          `yaml:"size"`
	Records []yamlRecord `yaml:"records"`
}

// WriteYAML writes the directory as YAML.
func WriteYAML(w io.Writer, img *Image) error {
	doc := yamlDirectory{Size: img.Len()}
	for _, e := range img.dir.entries {
		doc.Records = append(doc.Records, yamlRecord{
			Name:   descriptor.TypeName(e.Type),
			Type:   e.Type,
			Index:  e.Index,
			Offset: e.Offset,
			Length: e.Length,
		})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
