// Package rom assembles encoded descriptor records into one contiguous
// image and indexes it with a directory.
//
// The image order is fixed: the device record, each live configuration
// with its nested interfaces and endpoints, the language list, each
// string, the device qualifier and the debug marker. Each record is
// entered in the Directory under (type, index), where index is the
// configuration position or the string index:
//
//	img, err := rom.Assemble(resolved)
//	if err != nil {
//		return err
//	}
//	e, _ := img.Directory().Lookup(descriptor.TypeConfiguration, 0)
//
// Image.GetDescriptor serves a GET_DESCRIPTOR SETUP packet from the image
// the way a device stack would. Write emits the image as raw bytes or as
// source for embedding into firmware.
package rom
