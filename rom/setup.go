package rom

import (
	"encoding/binary"
	"fmt"

	"github.com/ardnew/usbrom/pkg"
)

// GET_DESCRIPTOR fields of a SETUP packet (USB 2.0 Table 9-3).
const (
	RequestGetDescriptor = 0x06 // bRequest

	// RequestTypeGetDescriptor is bmRequestType of a standard
	// device-to-host request addressed to the device.
	RequestTypeGetDescriptor = 0x80

	requestTypeDirType = 0xE0 // direction and type bits of bmRequestType
)

// SetupPacket represents an 8-byte USB SETUP packet.
type SetupPacket struct {
	RequestType uint8  // bmRequestType: direction, type, recipient
	Request     uint8  // bRequest: specific request code
	Value       uint16 // wValue: request-specific parameter
	Index       uint16 // wIndex: request-specific index
	Length      uint16 // wLength: number of bytes to transfer
}

// SetupPacketSize is the size of a USB SETUP packet in bytes.
const SetupPacketSize = 8

// ParseSetupPacket parses a setup packet from 8 bytes into out.
func ParseSetupPacket(data []byte, out *SetupPacket) error {
	if len(data) < SetupPacketSize {
		return pkg.ErrSetupPacketTooShort
	}
	out.RequestType = data[0]
	out.Request = data[1]
	out.Value = binary.LittleEndian.Uint16(data[2:4])
	out.Index = binary.LittleEndian.Uint16(data[4:6])
	out.Length = binary.LittleEndian.Uint16(data[6:8])
	return nil
}

// MarshalTo serializes the setup packet to buf and returns 8, or 0 if buf
// is too short.
func (s *SetupPacket) MarshalTo(buf []byte) int {
	if len(buf) < SetupPacketSize {
		return 0
	}
	buf[0] = s.RequestType
	buf[1] = s.Request
	binary.LittleEndian.PutUint16(buf[2:4], s.Value)
	binary.LittleEndian.PutUint16(buf[4:6], s.Index)
	binary.LittleEndian.PutUint16(buf[6:8], s.Length)
	return SetupPacketSize
}

// IsGetDescriptor reports whether s is a standard device-to-host
// GET_DESCRIPTOR request. Any recipient is accepted.
func (s *SetupPacket) IsGetDescriptor() bool {
	return s.RequestType&requestTypeDirType == RequestTypeGetDescriptor &&
		s.Request == RequestGetDescriptor
}

// DescriptorType returns the descriptor type from the wValue high byte.
func (s *SetupPacket) DescriptorType() uint8 { return uint8(s.Value >> 8) }

// DescriptorIndex returns the descriptor index from the wValue low byte.
func (s *SetupPacket) DescriptorIndex() uint8 { return uint8(s.Value) }

func (s *SetupPacket) String() string {
	return fmt.Sprintf("SETUP %02x %02x wValue=0x%04x wIndex=0x%04x wLength=%d",
		s.RequestType, s.Request, s.Value, s.Index, s.Length)
}

// GetDescriptorSetup initializes out as a GET_DESCRIPTOR setup packet.
// langID goes in wIndex and is zero for everything but string records.
func GetDescriptorSetup(out *SetupPacket, descType, descIndex uint8, langID, length uint16) {
	out.RequestType = RequestTypeGetDescriptor
	out.Request = RequestGetDescriptor
	out.Value = uint16(descType)<<8 | uint16(descIndex)
	out.Index = langID
	out.Length = length
}
