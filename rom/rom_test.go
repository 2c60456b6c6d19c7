package rom

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ardnew/usbrom/config"
	"github.com/ardnew/usbrom/descriptor"
	"github.com/ardnew/usbrom/pkg"
	"github.com/ardnew/usbrom/schema"
)

var singleBounds = schema.Bounds{MaxConfigurations: 1, MaxInterfaces: 1, MaxEndpoints: 1, MaxStrings: 1}

func assemble(t *testing.T, b schema.Bounds, values map[string]string) *Image {
	t.Helper()
	r, err := config.NewResolved(schema.Build(b), values)
	if err != nil {
		t.Fatalf("NewResolved() error = %v", err)
	}
	img, err := Assemble(r)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	return img
}

// widget is one configuration with one interface holding one bulk IN
// endpoint, and the string "Widget" at index 1.
func widget(t *testing.T) *Image {
	t.Helper()
	return assemble(t, singleBounds, map[string]string{
		"USB_CONFIG0_INTERFACE0_EP0_ADDR":           "0x81",
		"USB_CONFIG0_INTERFACE0_EP0_ATTR_XFER_TYPE": "BULK",
		"USB_CONFIG0_INTERFACE0_EP0_MXPACKETSIZE":   "0x200",
		"USB_CONFIG0_INTERFACE0_EP0_INTERVAL":       "0",
		"USB_STRING_INDEX_1":                        "Widget",
	})
}

func TestAssemble_Widget(t *testing.T) {
	img := widget(t)
	if img.Len() != 73 {
		t.Fatalf("Len() = %d, want 73", img.Len())
	}

	want := []DirEntry{
		{Type: descriptor.TypeDevice, Index: 0, Offset: 0, Length: 18},
		{Type: descriptor.TypeConfiguration, Index: 0, Offset: 18, Length: 25},
		{Type: descriptor.TypeString, Index: 0, Offset: 43, Length: 4},
		{Type: descriptor.TypeString, Index: 1, Offset: 47, Length: 14},
		{Type: descriptor.TypeDeviceQualifier, Index: 0, Offset: 61, Length: 10},
		{Type: descriptor.TypeDebug, Index: 0, Offset: 71, Length: 2},
	}
	got := img.Directory().Entries()
	if len(got) != len(want) {
		t.Fatalf("directory has %d entries, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %s, want %s", i, got[i], want[i])
		}
	}

	cfg, err := img.Descriptor(descriptor.TypeConfiguration, 0)
	if err != nil {
		t.Fatalf("Descriptor() error = %v", err)
	}
	var c descriptor.Configuration
	if err := descriptor.ParseConfiguration(cfg, &c); err != nil {
		t.Fatalf("ParseConfiguration() error = %v", err)
	}
	if c.TotalLength != 25 {
		t.Errorf("wTotalLength = %d, want 25", c.TotalLength)
	}

	str, _ := img.Descriptor(descriptor.TypeString, 1)
	if s, err := descriptor.ParseString(str); err != nil || s != "Widget" {
		t.Errorf("string 1 = %q, %v", s, err)
	}

	if err := img.Directory().Verify(img.Len()); err != nil {
		t.Errorf("Verify() = %v", err)
	}
}

func TestAssemble_Deterministic(t *testing.T) {
	b := schema.Bounds{MaxConfigurations: 2, MaxInterfaces: 2, MaxEndpoints: 3, MaxStrings: 3}
	values := map[string]string{
		"USB_DEVICE_NCONFIGS": "2",
		"USB_NSTRINGS":        "3",
		"USB_STRING_INDEX_1":  "Acme",
		"USB_STRING_INDEX_2":  "Gizmo",
		"USB_STRING_INDEX_3":  "0001",
		"USB_DEVICE_IMFGR":    "1",
		"USB_DEVICE_IPRODUCT": "2",
		"USB_DEVICE_ISERNO":   "3",
	}
	a := assemble(t, b, values)
	c := assemble(t, b, values)
	if !bytes.Equal(a.Bytes(), c.Bytes()) {
		t.Error("images differ between runs")
	}
	ea, ec := a.Directory().Entries(), c.Directory().Entries()
	if len(ea) != len(ec) {
		t.Fatalf("directories differ in length: %d vs %d", len(ea), len(ec))
	}
	for i := range ea {
		if ea[i] != ec[i] {
			t.Errorf("entry %d: %s vs %s", i, ea[i], ec[i])
		}
	}
}

func TestAssemble_DirectoryCompleteness(t *testing.T) {
	b := schema.Bounds{MaxConfigurations: 3, MaxInterfaces: 2, MaxEndpoints: 2, MaxStrings: 4}
	img := assemble(t, b, map[string]string{
		"USB_DEVICE_NCONFIGS": "2",
		"USB_NSTRINGS":        "3",
	})
	dir := img.Directory()
	if err := dir.Verify(img.Len()); err != nil {
		t.Fatalf("Verify() = %v", err)
	}
	tests := []struct {
		typ  uint8
		want int
	}{
		{descriptor.TypeDevice, 1},
		{descriptor.TypeConfiguration, 2},
		{descriptor.TypeString, 4},
		{descriptor.TypeDeviceQualifier, 1},
		{descriptor.TypeDebug, 1},
	}
	for _, tt := range tests {
		if got := dir.Count(tt.typ); got != tt.want {
			t.Errorf("Count(%s) = %d, want %d", descriptor.TypeName(tt.typ), got, tt.want)
		}
	}
	if _, ok := dir.Lookup(descriptor.TypeConfiguration, 2); ok {
		t.Error("found configuration 2, which is not live")
	}

	var dev descriptor.Device
	raw, _ := img.Descriptor(descriptor.TypeDevice, 0)
	if err := descriptor.ParseDevice(raw, &dev); err != nil {
		t.Fatalf("ParseDevice() error = %v", err)
	}
	if int(dev.NumConfigurations) != dir.Count(descriptor.TypeConfiguration) {
		t.Errorf("bNumConfigurations = %d, emitted %d", dev.NumConfigurations, dir.Count(descriptor.TypeConfiguration))
	}
}

func TestAssemble_ZeroBounds(t *testing.T) {
	img := assemble(t, schema.Bounds{}, nil)
	want := descriptor.DeviceSize + descriptor.LanguagesSize + descriptor.QualifierSize + descriptor.DebugSize
	if img.Len() != want {
		t.Errorf("Len() = %d, want %d", img.Len(), want)
	}
	if got := img.Directory().Count(descriptor.TypeConfiguration); got != 0 {
		t.Errorf("configurations = %d, want 0", got)
	}
}

func TestAssemble_ZeroEndpoints(t *testing.T) {
	img := assemble(t, singleBounds, map[string]string{"USB_CONFIG0_INTERFACE0_NEPS": "0"})
	e, ok := img.Directory().Lookup(descriptor.TypeConfiguration, 0)
	if !ok {
		t.Fatal("configuration 0 missing")
	}
	if e.Length != descriptor.ConfigurationSize+descriptor.InterfaceSize {
		t.Errorf("configuration length = %d, want 18", e.Length)
	}
	if got := img.Layout().Configs; len(got) != 1 || len(got[0]) != 1 || got[0][0] != 0 {
		t.Errorf("Layout() = %v, want [[0]]", got)
	}
}

func TestAssemble_ErrorYieldsNoImage(t *testing.T) {
	r, err := config.NewResolved(schema.Build(singleBounds), map[string]string{
		"USB_STRING_INDEX_1": "\U0001F4A9",
	})
	if err != nil {
		t.Fatalf("NewResolved() error = %v", err)
	}
	img, err := Assemble(r)
	if !errors.Is(err, pkg.ErrEncoding) {
		t.Fatalf("Assemble() error = %v, want encoding error", err)
	}
	if img != nil {
		t.Error("Assemble() returned an image with an error")
	}
}

func TestDirectory_Verify(t *testing.T) {
	tests := []struct {
		name    string
		entries []DirEntry
		size    int
		wantErr bool
	}{
		{"ok", []DirEntry{{1, 0, 0, 18}, {10, 0, 18, 2}}, 20, false},
		{"gap", []DirEntry{{1, 0, 0, 18}, {10, 0, 19, 2}}, 21, true},
		{"overlap", []DirEntry{{1, 0, 0, 18}, {10, 0, 17, 2}}, 19, true},
		{"short coverage", []DirEntry{{1, 0, 0, 18}}, 20, true},
		{"duplicate", []DirEntry{{3, 1, 0, 4}, {3, 1, 4, 4}}, 8, true},
		{"empty record", []DirEntry{{1, 0, 0, 0}}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Directory{entries: tt.entries}
			if err := d.Verify(tt.size); (err != nil) != tt.wantErr {
				t.Errorf("Verify() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestImage_DescriptorNotFound(t *testing.T) {
	img := widget(t)
	if _, err := img.Descriptor(descriptor.TypeString, 9); !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("Descriptor() error = %v, want ErrNotFound", err)
	}
}

func TestImage_BytesIsCopy(t *testing.T) {
	img := widget(t)
	b := img.Bytes()
	b[0] = 0xFF
	if img.Bytes()[0] != descriptor.DeviceSize {
		t.Error("mutating Bytes() changed the image")
	}
}
