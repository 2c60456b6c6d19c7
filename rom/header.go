package rom

import (
	"bufio"
	"fmt"
	"io"
)

const recordStructs = `struct usb_device_descriptor {
	uint8_t bLength;
	uint8_t bDescriptorType;
	uint16_t bcdUSB;
	uint8_t bDeviceClass;
	uint8_t bDeviceSubClass;
	uint8_t bDeviceProtocol;
	uint8_t bMaxPacketSize0;
	uint16_t idVendor;
	uint16_t idProduct;
	uint16_t bcdDevice;
	uint8_t iManufacturer;
	uint8_t iProduct;
	uint8_t iSerialNumber;
	uint8_t bNumConfigurations;
} __attribute__ ((packed));

struct usb_qualifier_descriptor {
	uint8_t bLength;
	uint8_t bDescriptorType;
	uint16_t bcdUSB;
	uint8_t bDeviceClass;
	uint8_t bDeviceSubClass;
	uint8_t bDeviceProtocol;
	uint8_t bMaxPacketSize0;
	uint8_t bNumConfigurations;
	uint8_t bReserved;
} __attribute__ ((packed));

struct usb_configuration_descriptor {
	uint8_t bLength;
	uint8_t bDescriptorType;
	uint16_t wTotalLength;
	uint8_t bNumInterfaces;
	uint8_t bConfigurationValue;
	uint8_t iConfiguration;
	uint8_t bmAttributes;
	uint8_t bMaxPower;
} __attribute__ ((packed));

struct usb_interface_descriptor {
	uint8_t bLength;
	uint8_t bDescriptorType;
	uint8_t bInterfaceNumber;
	uint8_t bAlternateSetting;
	uint8_t bNumEndpoints;
	uint8_t bInterfaceClass;
	uint8_t bInterfaceSubClass;
	uint8_t bInterfaceProtocol;
	uint8_t iInterface;
} __attribute__ ((packed));

struct usb_endpoint_descriptor {
	uint8_t bLength;
	uint8_t bDescriptorType;
	uint8_t bEndpointAddress;
	uint8_t bmAttributes;
	uint16_t wMaxPacketSize;
	uint8_t bInterval;
} __attribute__ ((packed));

struct usb_string_descriptor {
	uint8_t bLength;
	uint8_t bDescriptorType;
	uint16_t wData[];
} __attribute__ ((packed));
`

// WriteHeader writes a C header declaring the packed record layouts and,
// for each configuration, a struct whose members follow the image's nested
// interface and endpoint records. sizeof each configuration struct equals
// its wTotalLength.
func WriteHeader(w io.Writer, img *Image) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "/* Code generated by usbrom. DO NOT EDIT. */\n\n")
	fmt.Fprintf(bw, "#ifndef USBROM_USBCONF_H\n#define USBROM_USBCONF_H\n\n")
	fmt.Fprintf(bw, "#include <stdint.h>\n\n")
	fmt.Fprint(bw, recordStructs)
	for i, eps := range img.layout.Configs {
		fmt.Fprintf(bw, "\nstruct usb_conf%d_s {\n", i)
		fmt.Fprintf(bw, "\tstruct usb_configuration_descriptor config;\n")
		for j, n := range eps {
			fmt.Fprintf(bw, "\tstruct usb_interface_descriptor interface%d;\n", j)
			if n > 0 {
				fmt.Fprintf(bw, "\tstruct usb_endpoint_descriptor interface%d_eps[%d];\n", j, n)
			}
		}
		fmt.Fprintf(bw, "} __attribute__ ((packed));\n")
	}
	fmt.Fprintf(bw, "\n#endif /* USBROM_USBCONF_H */\n")
	return bw.Flush()
}
