package pkg

import (
	"errors"
	"fmt"
	"strings"
)

// Descriptor decoding errors.
var (
	// ErrDescriptorTooShort indicates the descriptor data is too short.
	ErrDescriptorTooShort = errors.New("descriptor too short")

	// ErrDescriptorTypeMismatch indicates the descriptor type does not match expected.
	ErrDescriptorTypeMismatch = errors.New("descriptor type mismatch")

	// ErrSetupPacketTooShort indicates the setup packet data is too short.
	ErrSetupPacketTooShort = errors.New("setup packet too short")

	// ErrInvalidRequest indicates an invalid or unsupported request.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNotFound indicates a directory lookup found no record.
	ErrNotFound = errors.New("descriptor not found")
)

// ErrorKind classifies compilation failures.
type ErrorKind uint8

// Compilation error kinds.
const (
	KindSchemaBound ErrorKind = iota + 1 // structural position exceeds a bound
	KindRange                            // value outside its field's legal range
	KindConsistency                      // counts or references disagree
	KindEncoding                         // string content not representable
)

// String returns the name of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindSchemaBound:
		return "schema bound"
	case KindRange:
		return "range"
	case KindConsistency:
		return "consistency"
	case KindEncoding:
		return "encoding"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is matching on kind.
var (
	ErrSchemaBound = &Error{Kind: KindSchemaBound, Pos: NoPosition}
	ErrRange       = &Error{Kind: KindRange, Pos: NoPosition}
	ErrConsistency = &Error{Kind: KindConsistency, Pos: NoPosition}
	ErrEncoding    = &Error{Kind: KindEncoding, Pos: NoPosition}
)

// Position locates a structural slot. Negative fields are unset.
type Position struct {
	Config      int
	Interface   int
	Endpoint    int
	StringIndex int
}

// NoPosition is the device-level position.
var NoPosition = Position{Config: -1, Interface: -1, Endpoint: -1, StringIndex: -1}

// ConfigPos returns the position of configuration i.
func ConfigPos(i int) Position {
	p := NoPosition
	p.Config = i
	return p
}

// InterfacePos returns the position of interface j of configuration i.
func InterfacePos(i, j int) Position {
	p := ConfigPos(i)
	p.Interface = j
	return p
}

// EndpointPos returns the position of endpoint k of interface j of configuration i.
func EndpointPos(i, j, k int) Position {
	p := InterfacePos(i, j)
	p.Endpoint = k
	return p
}

// StringPos returns the position of string slot n.
func StringPos(n int) Position {
	p := NoPosition
	p.StringIndex = n
	return p
}

// String formats the set fields, e.g. "config 0 interface 1".
func (p Position) String() string {
	var parts []string
	if p.Config >= 0 {
		parts = append(parts, fmt.Sprintf("config %d", p.Config))
	}
	if p.Interface >= 0 {
		parts = append(parts, fmt.Sprintf("interface %d", p.Interface))
	}
	if p.Endpoint >= 0 {
		parts = append(parts, fmt.Sprintf("endpoint %d", p.Endpoint))
	}
	if p.StringIndex >= 0 {
		parts = append(parts, fmt.Sprintf("string %d", p.StringIndex))
	}
	if len(parts) == 0 {
		return "device"
	}
	return strings.Join(parts, " ")
}

// Error is a compilation failure naming the offending option and position.
type Error struct {
	Value  any
	Option string
	Detail string
	Pos    Position
	Kind   ErrorKind
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString(" error")
	if e.Option != "" {
		b.WriteString(" at ")
		b.WriteString(e.Option)
	}
	if e.Pos != NoPosition {
		b.WriteString(" (")
		b.WriteString(e.Pos.String())
		b.WriteByte(')')
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Value != nil {
		fmt.Fprintf(&b, " [value %v]", e.Value)
	}
	return b.String()
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind ErrorKind, option string, pos Position, value any, format string, args ...any) *Error {
	return &Error{
		Kind:   kind,
		Option: option,
		Pos:    pos,
		Value:  value,
		Detail: fmt.Sprintf(format, args...),
	}
}

// BoundError reports a structural position beyond its compiled bound.
func BoundError(option string, pos Position, value any, format string, args ...any) *Error {
	return newError(KindSchemaBound, option, pos, value, format, args...)
}

// RangeError reports a value outside its field's legal range.
func RangeError(option string, pos Position, value any, format string, args ...any) *Error {
	return newError(KindRange, option, pos, value, format, args...)
}

// ConsistencyError reports counts or references that disagree.
func ConsistencyError(option string, pos Position, format string, args ...any) *Error {
	return newError(KindConsistency, option, pos, nil, format, args...)
}

// EncodingError reports string content that cannot be encoded.
func EncodingError(option string, pos Position, value any, format string, args ...any) *Error {
	return newError(KindEncoding, option, pos, value, format, args...)
}
