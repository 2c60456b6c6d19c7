package rom

import (
	"fmt"

	"github.com/ardnew/usbrom/pkg"
)

// GetDescriptor answers a GET_DESCRIPTOR request from the image, the way a
// device stack's control endpoint serves it. The reply is truncated to
// wLength. A configuration request returns the whole nested block.
func (img *Image) GetDescriptor(setup *SetupPacket) ([]byte, error) {
	if !setup.IsGetDescriptor() {
		return nil, fmt.Errorf("%w: %s", pkg.ErrInvalidRequest, setup)
	}
	descType := setup.DescriptorType()
	descIndex := setup.DescriptorIndex()
	maxLen := int(setup.Length)

	data, err := img.Descriptor(descType, descIndex)
	if err != nil {
		return nil, err
	}

	if len(data) > maxLen {
		data = data[:maxLen]
	}
	pkg.LogDebug(pkg.ComponentAssembler, "served descriptor",
		"type", descType, "index", descIndex, "length", len(data))
	return data, nil
}

// GetDescriptorRaw parses an 8-byte SETUP packet and answers it with
// GetDescriptor.
func (img *Image) GetDescriptorRaw(packet []byte) ([]byte, error) {
	var setup SetupPacket
	if err := ParseSetupPacket(packet, &setup); err != nil {
		return nil, err
	}
	return img.GetDescriptor(&setup)
}
