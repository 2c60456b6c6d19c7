package encoder

import (
	"github.com/ardnew/usbrom/config"
	"github.com/ardnew/usbrom/pkg"
)

// fields reads the options of one record, stopping at the first failure.
// Once err is set every accessor returns zero, so a record's fields are
// read in a straight line and err is checked once before packing.
type fields struct {
	r   *config.Resolved
	err error
	pos pkg.Position
}

func (f *fields) value(id string) (int64, bool) {
	if f.err != nil {
		return 0, false
	}
	v, ok := f.r.Lookup(id)
	if !ok {
		f.err = pkg.ConsistencyError(id, f.pos, "no resolved value for live position")
		return 0, false
	}
	return v.Int, true
}

func (f *fields) width(id string, bits uint) int64 {
	n, ok := f.value(id)
	if !ok {
		return 0
	}
	if n < 0 || n >= 1<<bits {
		f.err = pkg.RangeError(id, f.pos, n, "does not fit %d bits", bits)
		return 0
	}
	return n
}

// u8 reads id as an 8-bit field.
func (f *fields) u8(id string) uint8 { return uint8(f.width(id, 8)) }

// u16 reads id as a 16-bit field.
func (f *fields) u16(id string) uint16 { return uint16(f.width(id, 16)) }

// bit reads id as a boolean.
func (f *fields) bit(id string) bool {
	n, _ := f.value(id)
	return n != 0
}

// oneOf reads id as an 8-bit field restricted to legal.
func (f *fields) oneOf(id string, legal ...uint8) uint8 {
	v := f.u8(id)
	if f.err != nil {
		return 0
	}
	for _, l := range legal {
		if v == l {
			return v
		}
	}
	f.err = pkg.RangeError(id, f.pos, v, "must be one of %v", legal)
	return 0
}

// stringIndex reads id as a string index, which must be 0 or name an
// emitted string.
func (f *fields) stringIndex(id string, nstrings int) uint8 {
	v := f.u8(id)
	if f.err != nil {
		return 0
	}
	if int(v) > nstrings {
		f.err = pkg.ConsistencyError(id, f.pos,
			"string index %d refers past the %d emitted strings", v, nstrings)
		return 0
	}
	return v
}
