package descriptor

import (
	"encoding/binary"

	"github.com/ardnew/usbrom/pkg"
)

// USB Descriptor Types (USB 2.0 Table 9-5).
const (
	TypeDevice               = 0x01
	TypeConfiguration        = 0x02
	TypeString               = 0x03
	TypeInterface            = 0x04
	TypeEndpoint             = 0x05
	TypeDeviceQualifier      = 0x06
	TypeOtherSpeedConfig     = 0x07
	TypeInterfacePower       = 0x08
	TypeOTG                  = 0x09
	TypeDebug                = 0x0A
	TypeInterfaceAssociation = 0x0B
	TypeBOS                  = 0x0F
)

// TypeName returns a short name for a descriptor type.
func TypeName(t uint8) string {
	switch t {
	case TypeDevice:
		return "device"
	case TypeConfiguration:
		return "configuration"
	case TypeString:
		return "string"
	case TypeInterface:
		return "interface"
	case TypeEndpoint:
		return "endpoint"
	case TypeDeviceQualifier:
		return "qualifier"
	case TypeOtherSpeedConfig:
		return "other-speed configuration"
	case TypeInterfacePower:
		return "interface power"
	case TypeOTG:
		return "otg"
	case TypeDebug:
		return "debug"
	case TypeInterfaceAssociation:
		return "interface association"
	case TypeBOS:
		return "bos"
	default:
		return "unknown"
	}
}

// HeaderSize is the size of the length and type prefix of every descriptor.
const HeaderSize = 2

// ParseHeader returns the length and type bytes of the descriptor at data.
func ParseHeader(data []byte) (length, typ uint8, err error) {
	if len(data) < HeaderSize {
		return 0, 0, pkg.ErrDescriptorTooShort
	}
	if int(data[0]) < HeaderSize || int(data[0]) > len(data) {
		return 0, 0, pkg.ErrDescriptorTooShort
	}
	return data[0], data[1], nil
}

// Device represents a USB device descriptor (18 bytes).
type Device struct {
	Length            uint8  // Size of this descriptor (18)
	DescriptorType    uint8  // Device descriptor type (0x01)
	USBVersion        uint16 // USB specification version (BCD)
	DeviceClass       uint8  // Class code
	DeviceSubClass    uint8  // Subclass code
	DeviceProtocol    uint8  // Protocol code
	MaxPacketSize0    uint8  // Max packet size for EP0
	VendorID          uint16 // Vendor ID
	ProductID         uint16 // Product ID
	DeviceVersion     uint16 // Device release number (BCD)
	ManufacturerIndex uint8  // Index of manufacturer string
	ProductIndex      uint8  // Index of product string
	SerialNumberIndex uint8  // Index of serial number string
	NumConfigurations uint8  // Number of configurations
}

// DeviceSize is the size of a device descriptor in bytes.
const DeviceSize = 18

// MarshalTo serializes the device descriptor to buf.
// Returns the number of bytes written (always 18 if buf is large enough).
func (d *Device) MarshalTo(buf []byte) int {
	if len(buf) < DeviceSize {
		return 0
	}
	buf[0] = DeviceSize
	buf[1] = TypeDevice
	binary.LittleEndian.PutUint16(buf[2:4], d.USBVersion)
	buf[4] = d.DeviceClass
	buf[5] = d.DeviceSubClass
	buf[6] = d.DeviceProtocol
	buf[7] = d.MaxPacketSize0
	binary.LittleEndian.PutUint16(buf[8:10], d.VendorID)
	binary.LittleEndian.PutUint16(buf[10:12], d.ProductID)
	binary.LittleEndian.PutUint16(buf[12:14], d.DeviceVersion)
	buf[14] = d.ManufacturerIndex
	buf[15] = d.ProductIndex
	buf[16] = d.SerialNumberIndex
	buf[17] = d.NumConfigurations
	return DeviceSize
}

// ParseDevice parses a device descriptor from bytes into out.
// Returns an error if the data is too short or the descriptor type is wrong.
func ParseDevice(data []byte, out *Device) error {
	if len(data) < DeviceSize {
		return pkg.ErrDescriptorTooShort
	}
	if data[1] != TypeDevice {
		return pkg.ErrDescriptorTypeMismatch
	}
	out.Length = data[0]
	out.DescriptorType = data[1]
	out.USBVersion = binary.LittleEndian.Uint16(data[2:4])
	out.DeviceClass = data[4]
	out.DeviceSubClass = data[5]
	out.DeviceProtocol = data[6]
	out.MaxPacketSize0 = data[7]
	out.VendorID = binary.LittleEndian.Uint16(data[8:10])
	out.ProductID = binary.LittleEndian.Uint16(data[10:12])
	out.DeviceVersion = binary.LittleEndian.Uint16(data[12:14])
	out.ManufacturerIndex = data[14]
	out.ProductIndex = data[15]
	out.SerialNumberIndex = data[16]
	out.NumConfigurations = data[17]
	return nil
}

// Qualifier represents a USB device qualifier descriptor (10 bytes). It
// carries the fields of Device that would change at the other speed.
type Qualifier struct {
	Length            uint8  // Size of this descriptor (10)
	DescriptorType    uint8  // Device qualifier type (0x06)
	USBVersion        uint16 // USB specification version (BCD)
	DeviceClass       uint8  // Class code
	DeviceSubClass    uint8  // Subclass code
	DeviceProtocol    uint8  // Protocol code
	MaxPacketSize0    uint8  // Max packet size for EP0
	NumConfigurations uint8  // Number of other-speed configurations
	Reserved          uint8  // Must be zero
}

// QualifierSize is the size of a device qualifier descriptor in bytes.
const QualifierSize = 10

// MarshalTo serializes the qualifier descriptor to buf.
// Returns the number of bytes written (always 10 if buf is large enough).
func (q *Qualifier) MarshalTo(buf []byte) int {
	if len(buf) < QualifierSize {
		return 0
	}
	buf[0] = QualifierSize
	buf[1] = TypeDeviceQualifier
	binary.LittleEndian.PutUint16(buf[2:4], q.USBVersion)
	buf[4] = q.DeviceClass
	buf[5] = q.DeviceSubClass
	buf[6] = q.DeviceProtocol
	buf[7] = q.MaxPacketSize0
	buf[8] = q.NumConfigurations
	buf[9] = q.Reserved
	return QualifierSize
}

// ParseQualifier parses a device qualifier descriptor from bytes into out.
func ParseQualifier(data []byte, out *Qualifier) error {
	if len(data) < QualifierSize {
		return pkg.ErrDescriptorTooShort
	}
	if data[1] != TypeDeviceQualifier {
		return pkg.ErrDescriptorTypeMismatch
	}
	out.Length = data[0]
	out.DescriptorType = data[1]
	out.USBVersion = binary.LittleEndian.Uint16(data[2:4])
	out.DeviceClass = data[4]
	out.DeviceSubClass = data[5]
	out.DeviceProtocol = data[6]
	out.MaxPacketSize0 = data[7]
	out.NumConfigurations = data[8]
	out.Reserved = data[9]
	return nil
}

// Configuration represents a USB configuration descriptor (9 bytes).
type Configuration struct {
	Length             uint8  // Size of this descriptor (9)
	DescriptorType     uint8  // Configuration descriptor type (0x02)
	TotalLength        uint16 // Total length of configuration data
	NumInterfaces      uint8  // Number of interfaces
	ConfigurationValue uint8  // Configuration value for SET_CONFIGURATION
	ConfigurationIndex uint8  // Index of string descriptor
	Attributes         uint8  // Configuration attributes
	MaxPower           uint8  // Maximum power consumption (2mA units)
}

// Configuration attribute bits.
const (
	ConfigAttrBusPowered   = 0x80 // Bus-powered (required)
	ConfigAttrSelfPowered  = 0x40 // Self-powered
	ConfigAttrRemoteWakeup = 0x20 // Remote wakeup capable
)

// ConfigurationSize is the size of a configuration descriptor in bytes.
const ConfigurationSize = 9

// MarshalTo serializes the configuration descriptor to buf.
// Returns the number of bytes written (always 9 if buf is large enough).
func (c *Configuration) MarshalTo(buf []byte) int {
	if len(buf) < ConfigurationSize {
		return 0
	}
	buf[0] = ConfigurationSize
	buf[1] = TypeConfiguration
	binary.LittleEndian.PutUint16(buf[2:4], c.TotalLength)
	buf[4] = c.NumInterfaces
	buf[5] = c.ConfigurationValue
	buf[6] = c.ConfigurationIndex
	buf[7] = c.Attributes
	buf[8] = c.MaxPower
	return ConfigurationSize
}

// ParseConfiguration parses a configuration descriptor from bytes into out.
// Returns an error if the data is too short or the descriptor type is wrong.
func ParseConfiguration(data []byte, out *Configuration) error {
	if len(data) < ConfigurationSize {
		return pkg.ErrDescriptorTooShort
	}
	if data[1] != TypeConfiguration {
		return pkg.ErrDescriptorTypeMismatch
	}
	out.Length = data[0]
	out.DescriptorType = data[1]
	out.TotalLength = binary.LittleEndian.Uint16(data[2:4])
	out.NumInterfaces = data[4]
	out.ConfigurationValue = data[5]
	out.ConfigurationIndex = data[6]
	out.Attributes = data[7]
	out.MaxPower = data[8]
	return nil
}

// Interface represents a USB interface descriptor (9 bytes).
type Interface struct {
	Length            uint8 // Size of this descriptor (9)
	DescriptorType    uint8 // Interface descriptor type (0x04)
	InterfaceNumber   uint8 // Interface number
	AlternateSetting  uint8 // Alternate setting number
	NumEndpoints      uint8 // Number of endpoints (excluding EP0)
	InterfaceClass    uint8 // Class code
	InterfaceSubClass uint8 // Subclass code
	InterfaceProtocol uint8 // Protocol code
	InterfaceIndex    uint8 // Index of string descriptor
}

// InterfaceSize is the size of an interface descriptor in bytes.
const InterfaceSize = 9

// MarshalTo serializes the interface descriptor to buf.
// Returns the number of bytes written (always 9 if buf is large enough).
func (i *Interface) MarshalTo(buf []byte) int {
	if len(buf) < InterfaceSize {
		return 0
	}
	buf[0] = InterfaceSize
	buf[1] = TypeInterface
	buf[2] = i.InterfaceNumber
	buf[3] = i.AlternateSetting
	buf[4] = i.NumEndpoints
	buf[5] = i.InterfaceClass
	buf[6] = i.InterfaceSubClass
	buf[7] = i.InterfaceProtocol
	buf[8] = i.InterfaceIndex
	return InterfaceSize
}

// ParseInterface parses an interface descriptor from bytes into out.
// Returns an error if the data is too short or the descriptor type is wrong.
func ParseInterface(data []byte, out *Interface) error {
	if len(data) < InterfaceSize {
		return pkg.ErrDescriptorTooShort
	}
	if data[1] != TypeInterface {
		return pkg.ErrDescriptorTypeMismatch
	}
	out.Length = data[0]
	out.DescriptorType = data[1]
	out.InterfaceNumber = data[2]
	out.AlternateSetting = data[3]
	out.NumEndpoints = data[4]
	out.InterfaceClass = data[5]
	out.InterfaceSubClass = data[6]
	out.InterfaceProtocol = data[7]
	out.InterfaceIndex = data[8]
	return nil
}

// Endpoint represents a USB endpoint descriptor (7 bytes).
type Endpoint struct {
	Length          uint8  // Size of this descriptor (7)
	DescriptorType  uint8  // Endpoint descriptor type (0x05)
	EndpointAddress uint8  // Endpoint address (including direction)
	Attributes      uint8  // Packed EndpointAttributes
	MaxPacketSize   uint16 // Maximum packet size
	Interval        uint8  // Polling interval (for interrupt/isochronous)
}

// EndpointSize is the size of an endpoint descriptor in bytes.
const EndpointSize = 7

// Endpoint address fields.
const (
	EndpointDirIn        = 0x80 // Bit 7: device-to-host
	EndpointNumberMask   = 0x0F // Bits 3..0: endpoint number
	EndpointAddrReserved = 0x70 // Bits 6..4: must be zero
)

// MarshalTo serializes the endpoint descriptor to buf.
// Returns the number of bytes written (always 7 if buf is large enough).
func (e *Endpoint) MarshalTo(buf []byte) int {
	if len(buf) < EndpointSize {
		return 0
	}
	buf[0] = EndpointSize
	buf[1] = TypeEndpoint
	buf[2] = e.EndpointAddress
	buf[3] = e.Attributes
	binary.LittleEndian.PutUint16(buf[4:6], e.MaxPacketSize)
	buf[6] = e.Interval
	return EndpointSize
}

// ParseEndpoint parses an endpoint descriptor from bytes into out.
// Returns an error if the data is too short or the descriptor type is wrong.
func ParseEndpoint(data []byte, out *Endpoint) error {
	if len(data) < EndpointSize {
		return pkg.ErrDescriptorTooShort
	}
	if data[1] != TypeEndpoint {
		return pkg.ErrDescriptorTypeMismatch
	}
	out.Length = data[0]
	out.DescriptorType = data[1]
	out.EndpointAddress = data[2]
	out.Attributes = data[3]
	out.MaxPacketSize = binary.LittleEndian.Uint16(data[4:6])
	out.Interval = data[6]
	return nil
}

// DebugSize is the size of the debug marker record.
const DebugSize = 2

// DebugTo writes the two-byte debug marker record to buf.
// Returns the number of bytes written. If buf is too small, returns 0.
func DebugTo(buf []byte) int {
	if len(buf) < DebugSize {
		return 0
	}
	buf[0] = DebugSize
	buf[1] = TypeDebug
	return DebugSize
}
