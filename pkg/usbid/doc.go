// Package usbid reads the usb.ids database maintained by the linux-usb
// project and resolves vendor, product and class codes to names.
//
// The database is a plain text file shipped by most distributions:
//
//	db := usbid.New()
//	if db.Load() {
//	    fmt.Println(db.LookupVendor(0x046d)) // Logitech, Inc.
//	}
//
// Parse reads the same format from any reader, which lets callers supply
// a database that is not installed at one of the DefaultPaths. A missing
// database is not an error; lookups simply return empty strings.
package usbid
