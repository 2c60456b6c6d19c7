package rom

import (
	"fmt"
	"slices"

	"github.com/ardnew/usbrom/descriptor"
	"github.com/ardnew/usbrom/pkg"
)

// Scan rebuilds an Image from raw bytes by walking its self-describing
// records. Configuration records are taken whole, using wTotalLength, and
// their nested interfaces and endpoints fill the layout. The first string
// record is the language list at index 0; later strings are numbered from 1.
func Scan(data []byte) (*Image, error) {
	img := &Image{data: slices.Clone(data)}
	var configs, nstrings uint8
	for off := 0; off < len(data); {
		length, typ, err := descriptor.ParseHeader(data[off:])
		if err != nil {
			return nil, fmt.Errorf("record at offset %d: %w", off, err)
		}
		size := int(length)
		var index uint8
		switch typ {
		case descriptor.TypeConfiguration:
			var c descriptor.Configuration
			if err := descriptor.ParseConfiguration(data[off:], &c); err != nil {
				return nil, fmt.Errorf("configuration at offset %d: %w", off, err)
			}
			size = int(c.TotalLength)
			if size < descriptor.ConfigurationSize || off+size > len(data) {
				return nil, fmt.Errorf("configuration at offset %d: total length %d: %w",
					off, size, pkg.ErrDescriptorTooShort)
			}
			eps, err := scanNested(data[off+descriptor.ConfigurationSize : off+size])
			if err != nil {
				return nil, fmt.Errorf("configuration at offset %d: %w", off, err)
			}
			img.layout.Configs = append(img.layout.Configs, eps)
			index = configs
			configs++
		case descriptor.TypeString:
			index = nstrings
			nstrings++
		case descriptor.TypeDevice, descriptor.TypeDeviceQualifier, descriptor.TypeDebug:
			if _, ok := img.dir.Lookup(typ, 0); ok {
				return nil, fmt.Errorf("second %s record at offset %d: %w",
					descriptor.TypeName(typ), off, pkg.ErrDescriptorTypeMismatch)
			}
		default:
			return nil, fmt.Errorf("unexpected %s record (0x%02x) at offset %d: %w",
				descriptor.TypeName(typ), typ, off, pkg.ErrDescriptorTypeMismatch)
		}
		img.dir.add(DirEntry{Type: typ, Index: index, Offset: off, Length: size})
		off += size
	}
	return img, nil
}

// scanNested walks the interface and endpoint records inside a
// configuration and returns the endpoint count of each interface.
func scanNested(data []byte) ([]int, error) {
	eps := []int{}
	for off := 0; off < len(data); {
		length, typ, err := descriptor.ParseHeader(data[off:])
		if err != nil {
			return nil, err
		}
		switch typ {
		case descriptor.TypeInterface:
			eps = append(eps, 0)
		case descriptor.TypeEndpoint:
			if len(eps) == 0 {
				return nil, fmt.Errorf("endpoint before any interface: %w", pkg.ErrDescriptorTypeMismatch)
			}
			eps[len(eps)-1]++
		}
		off += int(length)
	}
	return eps, nil
}
