package pkg

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorKind_String(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindSchemaBound, "schema bound"},
		{KindRange, "range"},
		{KindConsistency, "consistency"},
		{KindEncoding, "encoding"},
		{ErrorKind(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("ErrorKind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestError_Is(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
		not  []error
	}{
		{"bound", BoundError("USB_DEVICE_NCONFIGS", NoPosition, 3, "over bound"), ErrSchemaBound, []error{ErrRange}},
		{"range", RangeError("USB_DEVICE_MXPACKETSIZE", NoPosition, 24, "illegal"), ErrRange, []error{ErrEncoding}},
		{"consistency", ConsistencyError("USB_CONFIG0_ICFG", ConfigPos(0), "dangling"), ErrConsistency, []error{ErrSchemaBound}},
		{"encoding", EncodingError("USB_STRING_INDEX_1", StringPos(1), "\U0001F600", "rune"), ErrEncoding, []error{ErrConsistency}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.want) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.want)
			}
			wrapped := fmt.Errorf("assemble: %w", tt.err)
			if !errors.Is(wrapped, tt.want) {
				t.Errorf("wrapped error lost kind: %v", wrapped)
			}
			for _, other := range tt.not {
				if errors.Is(tt.err, other) {
					t.Errorf("errors.Is(%v, %v) = true", tt.err, other)
				}
			}
		})
	}
}

func TestError_Message(t *testing.T) {
	err := RangeError("USB_CONFIG0_INTERFACE1_EP2_INTERVAL", EndpointPos(0, 1, 2), 300, "interval exceeds %d", 255)
	msg := err.Error()
	for _, want := range []string{
		"range error",
		"USB_CONFIG0_INTERFACE1_EP2_INTERVAL",
		"config 0 interface 1 endpoint 2",
		"interval exceeds 255",
		"[value 300]",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}

	var target *Error
	if !errors.As(err, &target) {
		t.Fatal("errors.As failed")
	}
	if target.Pos.Endpoint != 2 {
		t.Errorf("Pos.Endpoint = %d, want 2", target.Pos.Endpoint)
	}
}

func TestError_MessagePosition(t *testing.T) {
	tests := []struct {
		name string
		pos  Position
		want string
	}{
		{"device level", NoPosition, "range error at USB_DEVICE_VENDORID: bad"},
		{"first configuration", ConfigPos(0), "range error at USB_DEVICE_VENDORID (config 0): bad"},
		{"first endpoint", EndpointPos(0, 0, 0), "range error at USB_DEVICE_VENDORID (config 0 interface 0 endpoint 0): bad"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RangeError("USB_DEVICE_VENDORID", tt.pos, nil, "bad").Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPosition_String(t *testing.T) {
	tests := []struct {
		pos  Position
		want string
	}{
		{NoPosition, "device"},
		{ConfigPos(1), "config 1"},
		{InterfacePos(0, 3), "config 0 interface 3"},
		{EndpointPos(1, 0, 2), "config 1 interface 0 endpoint 2"},
		{StringPos(4), "string 4"},
	}
	for _, tt := range tests {
		if got := tt.pos.String(); got != tt.want {
			t.Errorf("Position.String() = %q, want %q", got, tt.want)
		}
	}
}
