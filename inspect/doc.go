// Package inspect decodes a descriptor image back into a tree of named
// records for display.
//
// Each directory entry of the image becomes a root Node; interfaces and
// endpoints nest under their configuration. Class, language and transfer
// codes are named from the compiler's own tables, and vendor, product and
// subclass codes from a usb.ids database when one is supplied:
//
//	nodes, err := inspect.NewDecoder(db).Decode(img)
//	if err != nil {
//	    return err
//	}
//	inspect.Render(os.Stdout, nodes, inspect.PlainStyles())
package inspect
