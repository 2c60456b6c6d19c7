package rom

import (
	"fmt"
	"slices"

	"github.com/ardnew/usbrom/config"
	"github.com/ardnew/usbrom/descriptor"
	"github.com/ardnew/usbrom/encoder"
	"github.com/ardnew/usbrom/pkg"
)

// DirEntry locates one record of an image.
type DirEntry struct {
	Type   uint8 // descriptor type
	Index  uint8 // configuration position or string index
	Offset int   // byte offset of the record in the image
	Length int   // record length; a configuration includes its nested records
}

// End returns the offset just past the record.
func (e DirEntry) End() int { return e.Offset + e.Length }

// String returns a short description, e.g. "configuration 0 @18+25".
func (e DirEntry) String() string {
	return fmt.Sprintf("%s %d @%d+%d", descriptor.TypeName(e.Type), e.Index, e.Offset, e.Length)
}

// Directory maps (type, index) to the location of a record. Entries are
// kept in emission order.
type Directory struct {
	entries []DirEntry
}

func (d *Directory) add(e DirEntry) { d.entries = append(d.entries, e) }

// Lookup returns the entry for (typ, index).
func (d *Directory) Lookup(typ, index uint8) (DirEntry, bool) {
	for _, e := range d.entries {
		if e.Type == typ && e.Index == index {
			return e, true
		}
	}
	return DirEntry{}, false
}

// Entries returns a copy of the entries in emission order.
func (d *Directory) Entries() []DirEntry { return slices.Clone(d.entries) }

// Len returns the number of entries.
func (d *Directory) Len() int { return len(d.entries) }

// Count returns the number of entries of type typ.
func (d *Directory) Count(typ uint8) int {
	n := 0
	for _, e := range d.entries {
		if e.Type == typ {
			n++
		}
	}
	return n
}

// Verify checks that the entries are contiguous from offset zero, do not
// overlap, cover exactly size bytes and carry no duplicate keys.
func (d *Directory) Verify(size int) error {
	type key struct{ typ, index uint8 }
	seen := make(map[key]bool, len(d.entries))
	off := 0
	for _, e := range d.entries {
		k := key{e.Type, e.Index}
		if seen[k] {
			return fmt.Errorf("duplicate directory entry %s", e)
		}
		seen[k] = true
		if e.Offset != off {
			return fmt.Errorf("directory entry %s: expected offset %d", e, off)
		}
		if e.Length < descriptor.HeaderSize {
			return fmt.Errorf("directory entry %s: length below header size", e)
		}
		off = e.End()
	}
	if off != size {
		return fmt.Errorf("directory covers %d of %d bytes", off, size)
	}
	return nil
}

// Layout records the live structure of an image: for each configuration,
// the endpoint count of each of its interfaces.
type Layout struct {
	Configs [][]int
}

// Image is an assembled descriptor image and its directory. An Image is
// immutable.
type Image struct {
	data   []byte
	dir    Directory
	layout Layout
}

// Bytes returns a copy of the image.
func (img *Image) Bytes() []byte { return slices.Clone(img.data) }

// Len returns the image size in bytes.
func (img *Image) Len() int { return len(img.data) }

// Directory returns the image directory.
func (img *Image) Directory() *Directory { return &img.dir }

// Layout returns the live structure the image was built from.
func (img *Image) Layout() Layout { return img.layout }

// Descriptor returns a copy of the record at (typ, index).
func (img *Image) Descriptor(typ, index uint8) ([]byte, error) {
	e, ok := img.dir.Lookup(typ, index)
	if !ok {
		return nil, fmt.Errorf("%w: %s %d", pkg.ErrNotFound, descriptor.TypeName(typ), index)
	}
	return slices.Clone(img.data[e.Offset:e.End()]), nil
}

// assembler appends records, stopping at the first failure.
type assembler struct {
	img Image
	err error
}

func (a *assembler) append(typ, index uint8, encode func() ([]byte, error)) {
	if a.err != nil {
		return
	}
	rec, err := encode()
	if err != nil {
		a.err = err
		return
	}
	a.img.dir.add(DirEntry{Type: typ, Index: index, Offset: len(a.img.data), Length: len(rec)})
	a.img.data = append(a.img.data, rec...)
}

// Assemble encodes every live record of r in image order: the device, each
// configuration with its nested interfaces and endpoints, the language
// list, each string, the qualifier and the debug marker. On error no image
// is returned.
func Assemble(r *config.Resolved) (*Image, error) {
	enc := encoder.New(r)
	a := &assembler{}

	a.append(descriptor.TypeDevice, 0, enc.Device)
	for i, ni := 0, enc.NumConfigurations(); i < ni; i++ {
		a.append(descriptor.TypeConfiguration, uint8(i), func() ([]byte, error) {
			return enc.Configuration(i)
		})
	}
	a.append(descriptor.TypeString, 0, enc.Languages)
	for n := 1; n <= enc.NumStrings(); n++ {
		a.append(descriptor.TypeString, uint8(n), func() ([]byte, error) {
			return enc.String(n)
		})
	}
	a.append(descriptor.TypeDeviceQualifier, 0, enc.Qualifier)
	a.append(descriptor.TypeDebug, 0, func() ([]byte, error) {
		return enc.Debug(), nil
	})
	if a.err != nil {
		pkg.LogError(pkg.ComponentAssembler, "assembly failed", "error", a.err)
		return nil, a.err
	}

	for i, ni := 0, enc.NumConfigurations(); i < ni; i++ {
		eps := make([]int, enc.NumInterfaces(i))
		for j := range eps {
			eps[j] = enc.NumEndpoints(i, j)
		}
		a.img.layout.Configs = append(a.img.layout.Configs, eps)
	}
	if err := a.img.dir.Verify(len(a.img.data)); err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}
	pkg.LogInfo(pkg.ComponentAssembler, "image assembled",
		"bytes", len(a.img.data), "records", a.img.dir.Len())
	return &a.img, nil
}
