// Package descriptor defines the fixed-layout USB 2.0 descriptor records
// and their byte encodings.
//
// Every record begins with a length byte and a type byte. Multi-byte
// fields are little-endian. Each record type has a MarshalTo method that
// writes into a caller-supplied buffer and a Parse function that reads it
// back, so records can be built without heap allocation:
//
//	var buf [descriptor.DeviceSize]byte
//	d := descriptor.Device{USBVersion: 0x0200, MaxPacketSize0: 64}
//	d.MarshalTo(buf[:])
//
// String records carry UTF-16LE text limited to the Basic Multilingual
// Plane; see EncodeUTF16.
package descriptor
