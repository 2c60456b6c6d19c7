package descriptor

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/usbrom/pkg"
)

func TestDevice_MarshalTo(t *testing.T) {
	desc := &Device{
		USBVersion:        0x0200,
		MaxPacketSize0:    64,
		VendorID:          0x1234,
		ProductID:         0x5678,
		DeviceVersion:     0x9ABC,
		NumConfigurations: 1,
	}

	var buf [DeviceSize]byte
	n := desc.MarshalTo(buf[:])
	if n != DeviceSize {
		t.Fatalf("expected %d bytes, got %d", DeviceSize, n)
	}
	want := []byte{
		0x12, 0x01, 0x00, 0x02, 0x00, 0x00, 0x00, 0x40,
		0x34, 0x12, 0x78, 0x56, 0xBC, 0x9A, 0x00, 0x00,
		0x00, 0x01,
	}
	if !bytes.Equal(buf[:], want) {
		t.Errorf("device = % X, want % X", buf[:], want)
	}
}

func TestDevice_RoundTrip(t *testing.T) {
	desc := &Device{
		USBVersion:        0x0200,
		DeviceClass:       0x02,
		DeviceSubClass:    0x02,
		DeviceProtocol:    0x01,
		MaxPacketSize0:    64,
		VendorID:          0xCAFE,
		ProductID:         0xBABE,
		DeviceVersion:     0x0101,
		ManufacturerIndex: 1,
		ProductIndex:      2,
		SerialNumberIndex: 3,
		NumConfigurations: 2,
	}

	var buf [DeviceSize]byte
	desc.MarshalTo(buf[:])

	var parsed Device
	if err := ParseDevice(buf[:], &parsed); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	parsed.Length, parsed.DescriptorType = 0, 0
	if parsed != *desc {
		t.Errorf("parsed = %+v, want %+v", parsed, *desc)
	}
}

func TestDevice_MarshalToShortBuffer(t *testing.T) {
	var d Device
	if n := d.MarshalTo(make([]byte, DeviceSize-1)); n != 0 {
		t.Errorf("MarshalTo() = %d, want 0", n)
	}
}

func TestParseDevice_Errors(t *testing.T) {
	var parsed Device
	if err := ParseDevice(make([]byte, 10), &parsed); !errors.Is(err, pkg.ErrDescriptorTooShort) {
		t.Errorf("short: error = %v, want ErrDescriptorTooShort", err)
	}
	data := make([]byte, DeviceSize)
	data[0] = DeviceSize
	data[1] = TypeConfiguration
	if err := ParseDevice(data, &parsed); !errors.Is(err, pkg.ErrDescriptorTypeMismatch) {
		t.Errorf("wrong type: error = %v, want ErrDescriptorTypeMismatch", err)
	}
}

func TestQualifier_MarshalTo(t *testing.T) {
	q := &Qualifier{
		USBVersion:        0x0200,
		MaxPacketSize0:    64,
		NumConfigurations: 1,
	}
	var buf [QualifierSize]byte
	if n := q.MarshalTo(buf[:]); n != QualifierSize {
		t.Fatalf("expected %d bytes, got %d", QualifierSize, n)
	}
	want := []byte{0x0A, 0x06, 0x00, 0x02, 0x00, 0x00, 0x00, 0x40, 0x01, 0x00}
	if !bytes.Equal(buf[:], want) {
		t.Errorf("qualifier = % X, want % X", buf[:], want)
	}

	var parsed Qualifier
	if err := ParseQualifier(buf[:], &parsed); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if parsed.MaxPacketSize0 != 64 || parsed.NumConfigurations != 1 {
		t.Errorf("parsed = %+v", parsed)
	}
}

func TestConfiguration_RoundTrip(t *testing.T) {
	desc := &Configuration{
		TotalLength:        25,
		NumInterfaces:      1,
		ConfigurationValue: 1,
		Attributes:         ConfigAttrBusPowered | ConfigAttrSelfPowered | ConfigAttrRemoteWakeup,
		MaxPower:           0x30,
	}
	var buf [ConfigurationSize]byte
	desc.MarshalTo(buf[:])

	want := []byte{0x09, 0x02, 0x19, 0x00, 0x01, 0x01, 0x00, 0xE0, 0x30}
	if !bytes.Equal(buf[:], want) {
		t.Errorf("configuration = % X, want % X", buf[:], want)
	}

	var parsed Configuration
	if err := ParseConfiguration(buf[:], &parsed); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if parsed.TotalLength != 25 {
		t.Errorf("TotalLength = %d, want 25", parsed.TotalLength)
	}
}

func TestInterface_RoundTrip(t *testing.T) {
	desc := &Interface{
		InterfaceNumber:   0,
		NumEndpoints:      2,
		InterfaceClass:    0xFF,
		InterfaceSubClass: 0x01,
		InterfaceProtocol: 0x02,
		InterfaceIndex:    4,
	}
	var buf [InterfaceSize]byte
	if n := desc.MarshalTo(buf[:]); n != InterfaceSize {
		t.Fatalf("expected %d bytes, got %d", InterfaceSize, n)
	}
	var parsed Interface
	if err := ParseInterface(buf[:], &parsed); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if parsed.NumEndpoints != 2 || parsed.InterfaceClass != 0xFF || parsed.InterfaceIndex != 4 {
		t.Errorf("parsed = %+v", parsed)
	}
}

func TestEndpoint_MarshalTo(t *testing.T) {
	ep := &Endpoint{
		EndpointAddress: 0x81,
		Attributes:      EndpointAttributes{Transfer: 2}.Pack(),
		MaxPacketSize:   0x200,
	}
	var buf [EndpointSize]byte
	ep.MarshalTo(buf[:])
	want := []byte{0x07, 0x05, 0x81, 0x02, 0x00, 0x02, 0x00}
	if !bytes.Equal(buf[:], want) {
		t.Errorf("endpoint = % X, want % X", buf[:], want)
	}

	var parsed Endpoint
	if err := ParseEndpoint(buf[:], &parsed); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if parsed.MaxPacketSize != 0x200 {
		t.Errorf("MaxPacketSize = 0x%X, want 0x200", parsed.MaxPacketSize)
	}
}

// TestDecodeEncode verifies that every fixed-size record re-encodes to the
// bytes it was decoded from.
func TestDecodeEncode(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		encode func(data, buf []byte) (int, error)
	}{
		{
			name: "device",
			data: []byte{
				0x12, 0x01, 0x10, 0x02, 0xEF, 0x02, 0x01, 0x40,
				0xFE, 0xCA, 0xBE, 0xBA, 0x01, 0x01, 0x01, 0x02,
				0x03, 0x02,
			},
			encode: func(data, buf []byte) (int, error) {
				var d Device
				err := ParseDevice(data, &d)
				return d.MarshalTo(buf), err
			},
		},
		{
			name: "qualifier",
			data: []byte{0x0A, 0x06, 0x00, 0x02, 0xFF, 0x01, 0x02, 0x20, 0x03, 0x00},
			encode: func(data, buf []byte) (int, error) {
				var q Qualifier
				err := ParseQualifier(data, &q)
				return q.MarshalTo(buf), err
			},
		},
		{
			name: "configuration",
			data: []byte{0x09, 0x02, 0x20, 0x00, 0x01, 0x02, 0x05, 0xA0, 0xFA},
			encode: func(data, buf []byte) (int, error) {
				var c Configuration
				err := ParseConfiguration(data, &c)
				return c.MarshalTo(buf), err
			},
		},
		{
			name: "interface",
			data: []byte{0x09, 0x04, 0x01, 0x02, 0x03, 0x08, 0x06, 0x50, 0x07},
			encode: func(data, buf []byte) (int, error) {
				var i Interface
				err := ParseInterface(data, &i)
				return i.MarshalTo(buf), err
			},
		},
		{
			name: "endpoint",
			data: []byte{0x07, 0x05, 0x83, 0x25, 0x00, 0x14, 0x04},
			encode: func(data, buf []byte) (int, error) {
				var e Endpoint
				err := ParseEndpoint(data, &e)
				return e.MarshalTo(buf), err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, len(tt.data))
			n, err := tt.encode(tt.data, buf)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}
			if n != len(tt.data) {
				t.Fatalf("MarshalTo() = %d, want %d", n, len(tt.data))
			}
			if !bytes.Equal(buf, tt.data) {
				t.Errorf("re-encoded = % X, want % X", buf, tt.data)
			}
		})
	}
}

func TestDebugTo(t *testing.T) {
	var buf [DebugSize]byte
	if n := DebugTo(buf[:]); n != DebugSize {
		t.Fatalf("DebugTo() = %d, want %d", n, DebugSize)
	}
	if buf != [2]byte{0x02, 0x0A} {
		t.Errorf("debug = % X, want 02 0A", buf[:])
	}
	if n := DebugTo(buf[:1]); n != 0 {
		t.Errorf("DebugTo(short) = %d, want 0", n)
	}
}

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr bool
	}{
		{"valid", []byte{0x02, 0x0A}, false},
		{"empty", nil, true},
		{"length below header", []byte{0x01, 0x0A}, true},
		{"length past data", []byte{0x09, 0x02, 0x00}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseHeader(tt.data)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseHeader() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTypeName(t *testing.T) {
	if got := TypeName(TypeDeviceQualifier); got != "qualifier" {
		t.Errorf("TypeName(0x06) = %q", got)
	}
	if got := TypeName(0x7F); got != "unknown" {
		t.Errorf("TypeName(0x7F) = %q", got)
	}
}

func TestEndpointAttributes_Pack(t *testing.T) {
	tests := []struct {
		attrs EndpointAttributes
		want  uint8
	}{
		{EndpointAttributes{}, 0x00},
		{EndpointAttributes{Transfer: 2}, 0x02},
		{EndpointAttributes{Transfer: 1, Sync: 1, Usage: 0}, 0x05},
		{EndpointAttributes{Transfer: 3, Usage: 1}, 0x13},
		{EndpointAttributes{Reserved: 3, Usage: 3, Sync: 3, Transfer: 3}, 0xFF},
	}
	for _, tt := range tests {
		if got := tt.attrs.Pack(); got != tt.want {
			t.Errorf("%+v.Pack() = 0x%02X, want 0x%02X", tt.attrs, got, tt.want)
		}
		if got := UnpackEndpointAttributes(tt.want); got != tt.attrs {
			t.Errorf("Unpack(0x%02X) = %+v, want %+v", tt.want, got, tt.attrs)
		}
	}
}

func TestEndpointAttributes_Validate(t *testing.T) {
	if err := (EndpointAttributes{Reserved: 3, Usage: 2, Sync: 1}).Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
	err := EndpointAttributes{Sync: 4}.Validate()
	var ae *AttributeError
	if !errors.As(err, &ae) {
		t.Fatalf("Validate() = %v, want *AttributeError", err)
	}
	if ae.Field != AttrSync || ae.Value != 4 {
		t.Errorf("AttributeError = %+v", ae)
	}
	if !strings.Contains(ae.Error(), "synchronization type") {
		t.Errorf("Error() = %q", ae.Error())
	}
}

func TestEncodeUTF16(t *testing.T) {
	units, err := EncodeUTF16("Widget")
	if err != nil {
		t.Fatalf("EncodeUTF16() error: %v", err)
	}
	if len(units) != 6 || units[0] != 'W' {
		t.Errorf("units = %v", units)
	}

	units, err = EncodeUTF16("héllo")
	if err != nil {
		t.Fatalf("EncodeUTF16() error: %v", err)
	}
	if len(units) != 5 || units[1] != 0xE9 {
		t.Errorf("units = %v", units)
	}

	if units, err := EncodeUTF16(""); err != nil || len(units) != 0 {
		t.Errorf("empty: units = %v, err = %v", units, err)
	}
}

func TestEncodeUTF16_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"invalid utf8", "ab\xffcd", ErrInvalidUTF8},
		{"non-bmp", "emoji \U0001F600", ErrNonBMP},
		{"too long", strings.Repeat("x", MaxStringUnits+1), ErrStringTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EncodeUTF16(tt.in)
			if !errors.Is(err, tt.want) {
				t.Errorf("EncodeUTF16() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := EncodeUTF16(strings.Repeat("x", MaxStringUnits)); err != nil {
		t.Errorf("at limit: %v", err)
	}
}

func TestStringTo(t *testing.T) {
	units, _ := EncodeUTF16("Widget")
	buf := make([]byte, 64)
	n := StringTo(buf, units)
	if n != 14 {
		t.Fatalf("StringTo() = %d, want 14", n)
	}
	want := []byte{0x0E, 0x03, 'W', 0, 'i', 0, 'd', 0, 'g', 0, 'e', 0, 't', 0}
	if !bytes.Equal(buf[:n], want) {
		t.Errorf("string = % X, want % X", buf[:n], want)
	}

	s, err := ParseString(buf[:n])
	if err != nil || s != "Widget" {
		t.Errorf("ParseString() = %q, %v", s, err)
	}

	if n := StringTo(make([]byte, 4), units); n != 0 {
		t.Errorf("StringTo(short) = %d, want 0", n)
	}
}

func TestLanguagesTo(t *testing.T) {
	var buf [LanguagesSize]byte
	if n := LanguagesTo(buf[:], 0x0409); n != LanguagesSize {
		t.Fatalf("LanguagesTo() = %d, want %d", n, LanguagesSize)
	}
	if buf != [4]byte{0x04, 0x03, 0x09, 0x04} {
		t.Errorf("languages = % X", buf[:])
	}
	ids, err := ParseLanguages(buf[:])
	if err != nil || len(ids) != 1 || ids[0] != 0x0409 {
		t.Errorf("ParseLanguages() = %v, %v", ids, err)
	}
	if _, err := ParseLanguages([]byte{0x02, 0x01}); !errors.Is(err, pkg.ErrDescriptorTypeMismatch) {
		t.Errorf("wrong type: %v", err)
	}
}
