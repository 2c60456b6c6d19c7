package descriptor

import "fmt"

// AttrField names one 2-bit sub-field of an endpoint attribute byte.
type AttrField uint8

// Attribute sub-fields, most significant first.
const (
	AttrReserved AttrField = iota // bits 7..6
	AttrUsage                     // bits 5..4
	AttrSync                      // bits 3..2
	AttrTransfer                  // bits 1..0
)

// String returns the sub-field name.
func (f AttrField) String() string {
	switch f {
	case AttrReserved:
		return "reserved"
	case AttrUsage:
		return "usage type"
	case AttrSync:
		return "synchronization type"
	case AttrTransfer:
		return "transfer type"
	default:
		return "unknown"
	}
}

// attrFieldMax is the largest value a 2-bit sub-field holds.
const attrFieldMax = 3

// EndpointAttributes holds the four independently chosen sub-fields of an
// endpoint's bmAttributes byte.
type EndpointAttributes struct {
	Reserved uint8
	Usage    uint8
	Sync     uint8
	Transfer uint8
}

// AttributeError reports a sub-field that does not fit in two bits.
type AttributeError struct {
	Field AttrField
	Value uint8
}

// Error implements the error interface.
func (e *AttributeError) Error() string {
	return fmt.Sprintf("endpoint %s %d exceeds 2 bits", e.Field, e.Value)
}

// Field returns the value of sub-field f.
func (a EndpointAttributes) Field(f AttrField) uint8 {
	switch f {
	case AttrReserved:
		return a.Reserved
	case AttrUsage:
		return a.Usage
	case AttrSync:
		return a.Sync
	default:
		return a.Transfer
	}
}

// Validate returns an *AttributeError for the first sub-field outside 0..3.
func (a EndpointAttributes) Validate() error {
	for _, f := range []AttrField{AttrReserved, AttrUsage, AttrSync, AttrTransfer} {
		if v := a.Field(f); v > attrFieldMax {
			return &AttributeError{Field: f, Value: v}
		}
	}
	return nil
}

// Pack returns (reserved<<6) | (usage<<4) | (sync<<2) | transfer. Callers
// validate first; out-of-range bits are masked off.
func (a EndpointAttributes) Pack() uint8 {
	return (a.Reserved&attrFieldMax)<<6 |
		(a.Usage&attrFieldMax)<<4 |
		(a.Sync&attrFieldMax)<<2 |
		a.Transfer&attrFieldMax
}

// UnpackEndpointAttributes splits an attribute byte into its sub-fields.
func UnpackEndpointAttributes(b uint8) EndpointAttributes {
	return EndpointAttributes{
		Reserved: b >> 6 & attrFieldMax,
		Usage:    b >> 4 & attrFieldMax,
		Sync:     b >> 2 & attrFieldMax,
		Transfer: b & attrFieldMax,
	}
}
