package descriptor

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/ardnew/usbrom/pkg"
)

// MaxStringUnits is the most UTF-16 code units a string descriptor holds
// while its length still fits the one-byte bLength field.
const MaxStringUnits = (255 - HeaderSize) / 2

// LanguagesSize is the size of the single-language language list record.
const LanguagesSize = 4

// String encoding errors.
var (
	ErrInvalidUTF8   = errors.New("invalid UTF-8")
	ErrNonBMP        = errors.New("character outside the Basic Multilingual Plane")
	ErrStringTooLong = errors.New("string too long")
)

// EncodeUTF16 converts s to UTF-16 code units. Only Basic Multilingual
// Plane characters are accepted, so each character is exactly one unit.
func EncodeUTF16(s string) ([]uint16, error) {
	units := make([]uint16, 0, len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			return nil, fmt.Errorf("%w at byte %d", ErrInvalidUTF8, i)
		}
		if r > 0xFFFF {
			return nil, fmt.Errorf("%w: %U at byte %d", ErrNonBMP, r, i)
		}
		units = append(units, uint16(r))
		i += size
	}
	if len(units) > MaxStringUnits {
		return nil, fmt.Errorf("%w: %d code units, limit %d",
			ErrStringTooLong, len(units), MaxStringUnits)
	}
	return units, nil
}

// StringSize returns the encoded size of a string descriptor holding n
// code units.
func StringSize(n int) int { return HeaderSize + 2*n }

// StringTo writes a string descriptor carrying units to buf.
// Returns the number of bytes written. If buf is too small or units do
// not fit in one descriptor, returns 0.
func StringTo(buf []byte, units []uint16) int {
	length := StringSize(len(units))
	if len(units) > MaxStringUnits || len(buf) < length {
		return 0
	}
	buf[0] = byte(length)
	buf[1] = TypeString
	for i, u := range units {
		binary.LittleEndian.PutUint16(buf[2+i*2:], u)
	}
	return length
}

// ParseString decodes the text of a string descriptor.
func ParseString(data []byte) (string, error) {
	length, typ, err := ParseHeader(data)
	if err != nil {
		return "", err
	}
	if typ != TypeString {
		return "", pkg.ErrDescriptorTypeMismatch
	}
	units := make([]uint16, 0, (int(length)-HeaderSize)/2)
	for i := HeaderSize; i+1 < int(length); i += 2 {
		units = append(units, binary.LittleEndian.Uint16(data[i:]))
	}
	return string(utf16.Decode(units)), nil
}

// LanguagesTo writes the language list record (string index 0) to buf.
// Returns the number of bytes written. If buf is too small, returns 0.
func LanguagesTo(buf []byte, langIDs ...uint16) int {
	length := HeaderSize + len(langIDs)*2
	if len(buf) < length || length > 255 {
		return 0
	}
	buf[0] = byte(length)
	buf[1] = TypeString
	for i, id := range langIDs {
		binary.LittleEndian.PutUint16(buf[2+i*2:], id)
	}
	return length
}

// ParseLanguages returns the language IDs of a language list record.
func ParseLanguages(data []byte) ([]uint16, error) {
	length, typ, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	if typ != TypeString {
		return nil, pkg.ErrDescriptorTypeMismatch
	}
	var ids []uint16
	for i := HeaderSize; i+1 < int(length); i += 2 {
		ids = append(ids, binary.LittleEndian.Uint16(data[i:]))
	}
	return ids, nil
}
