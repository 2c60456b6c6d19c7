package inspect

import (
	"fmt"

	"github.com/ardnew/usbrom/codes"
	"github.com/ardnew/usbrom/descriptor"
	"github.com/ardnew/usbrom/pkg"
	"github.com/ardnew/usbrom/pkg/usbid"
	"github.com/ardnew/usbrom/rom"
)

// Field is one decoded descriptor field.
type Field struct {
	Name  string // USB field name, e.g. bcdUSB
	Value string
	Note  string // symbolic meaning of Value, if known
}

// Node is one decoded record and the records nested in it.
type Node struct {
	Title    string
	Type     uint8
	Offset   int
	Length   int
	Fields   []Field
	Children []*Node
}

// Field returns the value of the field called name, or "".
func (n *Node) Field(name string) string {
	for _, f := range n.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

// Walk calls fn for n and each of its descendants, depth first.
func (n *Node) Walk(depth int, fn func(n *Node, depth int)) {
	fn(n, depth)
	for _, c := range n.Children {
		c.Walk(depth+1, fn)
	}
}

// Decoder turns an image into a record tree.
type Decoder struct {
	ids *usbid.Database
}

// NewDecoder returns a Decoder that names vendor, product and class codes
// with ids. A nil or empty database leaves the codes tables as the only
// source of names.
func NewDecoder(ids *usbid.Database) *Decoder {
	return &Decoder{ids: ids}
}

// Decode returns one node per directory entry of img, in image order.
func (d *Decoder) Decode(img *rom.Image) ([]*Node, error) {
	var nodes []*Node
	for _, e := range img.Directory().Entries() {
		data, err := img.Descriptor(e.Type, e.Index)
		if err != nil {
			return nil, err
		}
		n, err := d.record(e, data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e, err)
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func (d *Decoder) record(e rom.DirEntry, data []byte) (*Node, error) {
	n := &Node{Type: e.Type, Offset: e.Offset, Length: e.Length}
	switch e.Type {
	case descriptor.TypeDevice:
		var dev descriptor.Device
		if err := descriptor.ParseDevice(data, &dev); err != nil {
			return nil, err
		}
		n.Title = "device"
		n.Fields = d.device(&dev)

	case descriptor.TypeConfiguration:
		n.Title = fmt.Sprintf("configuration %d", e.Index)
		if err := d.configuration(n, data); err != nil {
			return nil, err
		}

	case descriptor.TypeString:
		if e.Index == 0 {
			ids, err := descriptor.ParseLanguages(data)
			if err != nil {
				return nil, err
			}
			n.Title = "languages"
			for _, id := range ids {
				n.Fields = append(n.Fields, Field{
					Name:  "wLANGID",
					Value: hex16(id),
					Note:  codes.Languages.PromptFor(uint32(id)),
				})
			}
			break
		}
		s, err := descriptor.ParseString(data)
		if err != nil {
			return nil, err
		}
		n.Title = fmt.Sprintf("string %d", e.Index)
		n.Fields = []Field{{Name: "bString", Value: fmt.Sprintf("%q", s)}}

	case descriptor.TypeDeviceQualifier:
		var q descriptor.Qualifier
		if err := descriptor.ParseQualifier(data, &q); err != nil {
			return nil, err
		}
		n.Title = "qualifier"
		n.Fields = []Field{
			{Name: "bcdUSB", Value: hex16(q.USBVersion), Note: bcd(q.USBVersion)},
			d.class("bDeviceClass", q.DeviceClass, codes.DeviceClasses),
			{Name: "bDeviceSubClass", Value: hex8(q.DeviceSubClass)},
			{Name: "bDeviceProtocol", Value: hex8(q.DeviceProtocol)},
			{Name: "bMaxPacketSize0", Value: dec(q.MaxPacketSize0)},
			{Name: "bNumConfigurations", Value: dec(q.NumConfigurations)},
		}

	default:
		n.Title = descriptor.TypeName(e.Type)
		n.Fields = []Field{{Name: "bLength", Value: dec(data[0])}}
	}
	return n, nil
}

func (d *Decoder) device(dev *descriptor.Device) []Field {
	var vendor, product string
	if d.ids != nil {
		vendor = d.ids.LookupVendor(dev.VendorID)
		product = d.ids.LookupProduct(dev.VendorID, dev.ProductID)
	}
	return []Field{
		{Name: "bcdUSB", Value: hex16(dev.USBVersion), Note: bcd(dev.USBVersion)},
		d.class("bDeviceClass", dev.DeviceClass, codes.DeviceClasses),
		{Name: "bDeviceSubClass", Value: hex8(dev.DeviceSubClass), Note: d.subclass(dev.DeviceClass, dev.DeviceSubClass)},
		{Name: "bDeviceProtocol", Value: hex8(dev.DeviceProtocol)},
		{Name: "bMaxPacketSize0", Value: dec(dev.MaxPacketSize0)},
		{Name: "idVendor", Value: hex16(dev.VendorID), Note: vendor},
		{Name: "idProduct", Value: hex16(dev.ProductID), Note: product},
		{Name: "bcdDevice", Value: hex16(dev.DeviceVersion), Note: bcd(dev.DeviceVersion)},
		{Name: "iManufacturer", Value: dec(dev.ManufacturerIndex)},
		{Name: "iProduct", Value: dec(dev.ProductIndex)},
		{Name: "iSerialNumber", Value: dec(dev.SerialNumberIndex)},
		{Name: "bNumConfigurations", Value: dec(dev.NumConfigurations)},
	}
}

// configuration decodes a configuration record and the interface and
// endpoint records that follow its header.
func (d *Decoder) configuration(n *Node, data []byte) error {
	var c descriptor.Configuration
	if err := descriptor.ParseConfiguration(data, &c); err != nil {
		return err
	}
	n.Fields = []Field{
		{Name: "wTotalLength", Value: fmt.Sprint(c.TotalLength)},
		{Name: "bNumInterfaces", Value: dec(c.NumInterfaces)},
		{Name: "bConfigurationValue", Value: dec(c.ConfigurationValue)},
		{Name: "iConfiguration", Value: dec(c.ConfigurationIndex)},
		{Name: "bmAttributes", Value: hex8(c.Attributes), Note: configAttributes(c.Attributes)},
		{Name: "bMaxPower", Value: dec(c.MaxPower), Note: fmt.Sprintf("%d mA", int(c.MaxPower)*2)},
	}

	var iface *Node
	for off := int(c.Length); off < len(data); {
		length, typ, err := descriptor.ParseHeader(data[off:])
		if err != nil {
			return err
		}
		rec := data[off : off+int(length)]
		child := &Node{Type: typ, Offset: n.Offset + off, Length: int(length)}
		switch typ {
		case descriptor.TypeInterface:
			var i descriptor.Interface
			if err := descriptor.ParseInterface(rec, &i); err != nil {
				return err
			}
			child.Title = fmt.Sprintf("interface %d alt %d", i.InterfaceNumber, i.AlternateSetting)
			child.Fields = d.iface(&i)
			n.Children = append(n.Children, child)
			iface = child

		case descriptor.TypeEndpoint:
			if iface == nil {
				return fmt.Errorf("endpoint at offset %d precedes any interface: %w",
					child.Offset, pkg.ErrDescriptorTypeMismatch)
			}
			var ep descriptor.Endpoint
			if err := descriptor.ParseEndpoint(rec, &ep); err != nil {
				return err
			}
			child.Title = "endpoint " + endpointAddress(ep.EndpointAddress)
			child.Fields = endpoint(&ep)
			iface.Children = append(iface.Children, child)

		default:
			child.Title = descriptor.TypeName(typ)
			child.Fields = []Field{{Name: "bLength", Value: dec(length)}}
			n.Children = append(n.Children, child)
		}
		off += int(length)
	}
	return nil
}

func (d *Decoder) iface(i *descriptor.Interface) []Field {
	return []Field{
		{Name: "bInterfaceNumber", Value: dec(i.InterfaceNumber)},
		{Name: "bAlternateSetting", Value: dec(i.AlternateSetting)},
		{Name: "bNumEndpoints", Value: dec(i.NumEndpoints)},
		d.class("bInterfaceClass", i.InterfaceClass, codes.InterfaceClasses),
		{Name: "bInterfaceSubClass", Value: hex8(i.InterfaceSubClass), Note: d.subclass(i.InterfaceClass, i.InterfaceSubClass)},
		{Name: "bInterfaceProtocol", Value: hex8(i.InterfaceProtocol)},
		{Name: "iInterface", Value: dec(i.InterfaceIndex)},
	}
}

func endpoint(ep *descriptor.Endpoint) []Field {
	a := descriptor.UnpackEndpointAttributes(ep.Attributes)
	note := codes.TransferTypes.PromptFor(uint32(a.Transfer))
	if a.Transfer == codes.TransferIsochronous {
		note += ", " + codes.SyncTypes.PromptFor(uint32(a.Sync)) +
			", " + codes.UsageTypes.PromptFor(uint32(a.Usage))
	}
	return []Field{
		{Name: "bEndpointAddress", Value: hex8(ep.EndpointAddress), Note: endpointAddress(ep.EndpointAddress)},
		{Name: "bmAttributes", Value: hex8(ep.Attributes), Note: note},
		{Name: "wMaxPacketSize", Value: hex16(ep.MaxPacketSize), Note: fmt.Sprintf("%d bytes", ep.MaxPacketSize&0x7ff)},
		{Name: "bInterval", Value: dec(ep.Interval)},
	}
}

// class names a class code, preferring the compiler's own table and
// falling back to the usb.ids database.
func (d *Decoder) class(name string, code uint8, table *codes.Table) Field {
	note := table.PromptFor(uint32(code))
	if note == "" && d.ids != nil {
		note = d.ids.LookupClass(code)
	}
	return Field{Name: name, Value: hex8(code), Note: note}
}

func (d *Decoder) subclass(class, sub uint8) string {
	if d.ids == nil {
		return ""
	}
	return d.ids.LookupSubclass(class, sub)
}

func configAttributes(b uint8) string {
	s := "bus powered"
	if b&descriptor.ConfigAttrSelfPowered != 0 {
		s = "self powered"
	}
	if b&descriptor.ConfigAttrRemoteWakeup != 0 {
		s += ", remote wakeup"
	}
	return s
}

func endpointAddress(addr uint8) string {
	dir := "OUT"
	if addr&descriptor.EndpointDirIn != 0 {
		dir = "IN"
	}
	return fmt.Sprintf("EP %d %s", addr&descriptor.EndpointNumberMask, dir)
}

func bcd(v uint16) string { return fmt.Sprintf("%x.%02x", v>>8, v&0xff) }

func hex8(v uint8) string { return fmt.Sprintf("0x%02x", v) }

func hex16(v uint16) string { return fmt.Sprintf("0x%04x", v) }

func dec(v uint8) string { return fmt.Sprint(v) }
