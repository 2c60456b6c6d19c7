package inspect

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ardnew/usbrom/config"
	"github.com/ardnew/usbrom/pkg/usbid"
	"github.com/ardnew/usbrom/rom"
	"github.com/ardnew/usbrom/schema"
)

const ids = `1234  Acme Devices
	5678  Widget Pro
C ff  Vendor Specific Class
	00  Unspecified
`

func widget(t *testing.T) *rom.Image {
	t.Helper()
	b := schema.Bounds{MaxConfigurations: 1, MaxInterfaces: 1, MaxEndpoints: 1, MaxStrings: 1}
	r, err := config.NewResolved(schema.Build(b), map[string]string{
		"USB_CONFIG0_INTERFACE0_EP0_ADDR":           "0x81",
		"USB_CONFIG0_INTERFACE0_EP0_ATTR_XFER_TYPE": "BULK",
		"USB_CONFIG0_INTERFACE0_EP0_MXPACKETSIZE":   "0x200",
		"USB_STRING_INDEX_1":                        "Widget",
	})
	if err != nil {
		t.Fatalf("NewResolved() error = %v", err)
	}
	img, err := rom.Assemble(r)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	return img
}

func decode(t *testing.T, img *rom.Image) []*Node {
	t.Helper()
	db := usbid.New()
	if err := db.Parse(strings.NewReader(ids)); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	nodes, err := NewDecoder(db).Decode(img)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	return nodes
}

func TestDecode_Widget(t *testing.T) {
	nodes := decode(t, widget(t))

	var titles []string
	for _, n := range nodes {
		titles = append(titles, n.Title)
	}
	want := []string{"device", "configuration 0", "languages", "string 1", "qualifier", "debug"}
	if strings.Join(titles, ",") != strings.Join(want, ",") {
		t.Fatalf("titles = %v, want %v", titles, want)
	}

	dev := nodes[0]
	tests := []struct {
		name, value, note string
	}{
		{"bcdUSB", "0x0200", "2.00"},
		{"idVendor", "0x1234", "Acme Devices"},
		{"idProduct", "0x5678", "Widget Pro"},
		{"bDeviceClass", "0x00", "Defined at Interface Level"},
	}
	for _, tt := range tests {
		found := false
		for _, f := range dev.Fields {
			if f.Name != tt.name {
				continue
			}
			found = true
			if f.Value != tt.value || f.Note != tt.note {
				t.Errorf("%s = %s (%s), want %s (%s)", tt.name, f.Value, f.Note, tt.value, tt.note)
			}
		}
		if !found {
			t.Errorf("field %s missing", tt.name)
		}
	}

	cfg := nodes[1]
	if cfg.Offset != 18 || cfg.Length != 25 {
		t.Errorf("configuration span = %d+%d, want 18+25", cfg.Offset, cfg.Length)
	}
	if got := cfg.Field("wTotalLength"); got != "25" {
		t.Errorf("wTotalLength = %s, want 25", got)
	}
	if len(cfg.Children) != 1 {
		t.Fatalf("configuration has %d children, want 1", len(cfg.Children))
	}
	iface := cfg.Children[0]
	if iface.Offset != 27 || iface.Title != "interface 0 alt 0" {
		t.Errorf("interface = %q @%d", iface.Title, iface.Offset)
	}
	if len(iface.Children) != 1 {
		t.Fatalf("interface has %d endpoints, want 1", len(iface.Children))
	}
	ep := iface.Children[0]
	if ep.Title != "endpoint EP 1 IN" || ep.Offset != 36 {
		t.Errorf("endpoint = %q @%d", ep.Title, ep.Offset)
	}
	if got := ep.Field("bmAttributes"); got != "0x02" {
		t.Errorf("bmAttributes = %s, want 0x02", got)
	}

	if got := nodes[2].Field("wLANGID"); got != "0x0409" {
		t.Errorf("wLANGID = %s, want 0x0409", got)
	}
	if got := nodes[3].Field("bString"); got != `"Widget"` {
		t.Errorf("bString = %s", got)
	}
}

func TestDecode_NoDatabase(t *testing.T) {
	nodes, err := NewDecoder(nil).Decode(widget(t))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	for _, f := range nodes[0].Fields {
		if f.Name == "idVendor" && f.Note != "" {
			t.Errorf("idVendor note = %q without a database", f.Note)
		}
	}
}

func TestDecode_ClassFallback(t *testing.T) {
	nodes := decode(t, widget(t))
	iface := nodes[1].Children[0]
	for _, f := range iface.Fields {
		if f.Name == "bInterfaceClass" && f.Note != "Vendor Specific" {
			t.Errorf("bInterfaceClass note = %q", f.Note)
		}
		if f.Name == "bInterfaceSubClass" && f.Note != "Unspecified" {
			t.Errorf("bInterfaceSubClass note = %q", f.Note)
		}
	}
}

func TestRender_Plain(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, decode(t, widget(t)), PlainStyles()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"device @0+18\n",
		"  idVendor             0x1234  Acme Devices\n",
		"configuration 0 @18+25\n",
		"  interface 0 alt 0 @27+9\n",
		"    endpoint EP 1 IN @36+7\n",
		"      bEndpointAddress     0x81  EP 1 IN\n",
		"debug @71+2\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("plain output contains escape sequences")
	}
}
