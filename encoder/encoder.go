// Package encoder packs the records of a resolved configuration into their
// byte layouts.
//
// Every method validates all fields of its record before packing, and
// returns either the complete record or an error, never a partial record.
// Errors are *pkg.Error values naming the offending option and position.
package encoder

import (
	"errors"
	"strconv"
	"unicode/utf8"

	"github.com/ardnew/usbrom/config"
	"github.com/ardnew/usbrom/descriptor"
	"github.com/ardnew/usbrom/pkg"
	"github.com/ardnew/usbrom/schema"
)

// EP0PacketSizes are the legal max packet sizes of endpoint zero.
var EP0PacketSizes = []uint8{8, 16, 32, 64}

// Encoder packs records from one resolved configuration. It holds no
// mutable state and may be shared.
type Encoder struct {
	r      *config.Resolved
	bounds schema.Bounds
}

// New returns an Encoder over r.
func New(r *config.Resolved) *Encoder {
	return &Encoder{r: r, bounds: r.Tree().Bounds()}
}

func (e *Encoder) fields(pos pkg.Position) *fields {
	return &fields{r: e.r, pos: pos}
}

// NumConfigurations returns the resolved configuration count.
func (e *Encoder) NumConfigurations() int { return e.r.Count(schema.ConfigCountID) }

// NumInterfaces returns the resolved interface count of configuration i.
func (e *Encoder) NumInterfaces(i int) int { return e.r.Count(schema.InterfaceCountID(i)) }

// NumEndpoints returns the resolved endpoint count of interface j of
// configuration i.
func (e *Encoder) NumEndpoints(i, j int) int { return e.r.Count(schema.EndpointCountID(i, j)) }

// NumStrings returns the resolved string count.
func (e *Encoder) NumStrings() int { return e.r.Count(schema.StringCountID) }

// Device packs the device record.
func (e *Encoder) Device() ([]byte, error) {
	f := e.fields(pkg.NoPosition)
	n := e.NumStrings()
	d := descriptor.Device{
		USBVersion:        f.u16(schema.DeviceID("USB_VERSION")),
		DeviceClass:       f.u8(schema.DeviceID("CLASS_VAL")),
		DeviceSubClass:    f.u8(schema.DeviceID("SUBCLASS")),
		DeviceProtocol:    f.u8(schema.DeviceID("PROTOCOL")),
		MaxPacketSize0:    f.oneOf(schema.DeviceID("MXPACKETSIZE"), EP0PacketSizes...),
		VendorID:          f.u16(schema.DeviceID("VENDORID")),
		ProductID:         f.u16(schema.DeviceID("PRODUCTID")),
		DeviceVersion:     f.u16(schema.DeviceID("DEVICEID")),
		ManufacturerIndex: f.stringIndex(schema.DeviceID("IMFGR"), n),
		ProductIndex:      f.stringIndex(schema.DeviceID("IPRODUCT"), n),
		SerialNumberIndex: f.stringIndex(schema.DeviceID("ISERNO"), n),
		NumConfigurations: f.u8(schema.ConfigCountID),
	}
	if f.err != nil {
		return nil, f.err
	}
	buf := make([]byte, descriptor.DeviceSize)
	d.MarshalTo(buf)
	pkg.LogDebug(pkg.ComponentEncoder, "encoded device", "length", len(buf))
	return buf, nil
}

// Qualifier packs the device qualifier record. It repeats the device's
// speed-dependent fields.
func (e *Encoder) Qualifier() ([]byte, error) {
	f := e.fields(pkg.NoPosition)
	q := descriptor.Qualifier{
		USBVersion:        f.u16(schema.DeviceID("USB_VERSION")),
		DeviceClass:       f.u8(schema.DeviceID("CLASS_VAL")),
		DeviceSubClass:    f.u8(schema.DeviceID("SUBCLASS")),
		DeviceProtocol:    f.u8(schema.DeviceID("PROTOCOL")),
		MaxPacketSize0:    f.oneOf(schema.DeviceID("MXPACKETSIZE"), EP0PacketSizes...),
		NumConfigurations: f.u8(schema.ConfigCountID),
	}
	if f.err != nil {
		return nil, f.err
	}
	buf := make([]byte, descriptor.QualifierSize)
	q.MarshalTo(buf)
	return buf, nil
}

// checkLive reports a SchemaBound error for a position beyond the bounds
// and a Consistency error for a position the resolved counts leave out.
func (e *Encoder) checkLive(option string, pos pkg.Position) error {
	b := e.bounds
	switch {
	case pos.StringIndex >= 0:
		if pos.StringIndex < 1 || pos.StringIndex > b.MaxStrings {
			return pkg.BoundError(option, pos, pos.StringIndex, "string index outside 1..%d", b.MaxStrings)
		}
	case pos.Config >= b.MaxConfigurations:
		return pkg.BoundError(option, pos, pos.Config, "configuration bound is %d", b.MaxConfigurations)
	case pos.Interface >= b.MaxInterfaces:
		return pkg.BoundError(option, pos, pos.Interface, "interface bound is %d", b.MaxInterfaces)
	case pos.Endpoint >= b.MaxEndpoints:
		return pkg.BoundError(option, pos, pos.Endpoint, "endpoint bound is %d", b.MaxEndpoints)
	}
	if pos.Config < -1 || pos.Interface < -1 || pos.Endpoint < -1 {
		return pkg.BoundError(option, pos, nil, "negative position")
	}
	if !e.r.Live(pos) {
		return pkg.ConsistencyError(option, pos, "position is not live under the resolved counts")
	}
	return nil
}

// Configuration packs configuration i followed by every live interface
// and, within each, every live endpoint. The total length field covers the
// whole nested block.
func (e *Encoder) Configuration(i int) ([]byte, error) {
	pos := pkg.ConfigPos(i)
	if err := e.checkLive(schema.ConfigID(i, "CFGVALUE"), pos); err != nil {
		return nil, err
	}
	f := e.fields(pos)
	var attrs uint8
	for bit := 7; bit >= 0; bit-- {
		if f.bit(schema.ConfigID(i, "ATTR_D"+strconv.Itoa(bit))) {
			attrs |= 1 << bit
		}
	}
	c := descriptor.Configuration{
		NumInterfaces:      f.u8(schema.InterfaceCountID(i)),
		ConfigurationValue: f.u8(schema.ConfigID(i, "CFGVALUE")),
		ConfigurationIndex: f.stringIndex(schema.ConfigID(i, "ICFG"), e.NumStrings()),
		Attributes:         attrs,
		MaxPower:           f.u8(schema.ConfigID(i, "MXPOWER")),
	}
	if f.err != nil {
		return nil, f.err
	}

	buf := make([]byte, descriptor.ConfigurationSize, descriptor.ConfigurationSize+
		int(c.NumInterfaces)*(descriptor.InterfaceSize+e.bounds.MaxEndpoints*descriptor.EndpointSize))
	for j, nj := 0, int(c.NumInterfaces); j < nj; j++ {
		rec, err := e.Interface(i, j)
		if err != nil {
			return nil, err
		}
		buf = append(buf, rec...)
		for k, nk := 0, e.NumEndpoints(i, j); k < nk; k++ {
			rec, err := e.Endpoint(i, j, k)
			if err != nil {
				return nil, err
			}
			buf = append(buf, rec...)
		}
	}
	if len(buf) > 0xffff {
		return nil, pkg.RangeError(schema.InterfaceCountID(i), pos, len(buf),
			"configuration total length exceeds 65535")
	}
	c.TotalLength = uint16(len(buf))
	c.MarshalTo(buf)
	pkg.LogDebug(pkg.ComponentEncoder, "encoded configuration",
		"config", i, "interfaces", c.NumInterfaces, "total_length", c.TotalLength)
	return buf, nil
}

// Interface packs interface j of configuration i.
func (e *Encoder) Interface(i, j int) ([]byte, error) {
	pos := pkg.InterfacePos(i, j)
	if err := e.checkLive(schema.InterfaceID(i, j, "IFNO"), pos); err != nil {
		return nil, err
	}
	f := e.fields(pos)
	d := descriptor.Interface{
		InterfaceNumber:   f.u8(schema.InterfaceID(i, j, "IFNO")),
		AlternateSetting:  f.u8(schema.InterfaceID(i, j, "ALT")),
		NumEndpoints:      f.u8(schema.EndpointCountID(i, j)),
		InterfaceClass:    f.u8(schema.InterfaceID(i, j, "CLASS_VAL")),
		InterfaceSubClass: f.u8(schema.InterfaceID(i, j, "SUBCLASS_VAL")),
		InterfaceProtocol: f.u8(schema.InterfaceID(i, j, "PROTOCOL_VAL")),
		InterfaceIndex:    f.stringIndex(schema.InterfaceID(i, j, "IIF"), e.NumStrings()),
	}
	if f.err != nil {
		return nil, f.err
	}
	buf := make([]byte, descriptor.InterfaceSize)
	d.MarshalTo(buf)
	return buf, nil
}

// attrOptions maps each endpoint attribute sub-field to its option name.
var attrOptions = map[descriptor.AttrField]string{
	descriptor.AttrReserved: "ATTR_NONE",
	descriptor.AttrUsage:    "ATTR_USAGE_TYPE_VAL",
	descriptor.AttrSync:     "ATTR_SYNC_TYPE_VAL",
	descriptor.AttrTransfer: "ATTR_XFER_TYPE_VAL",
}

// Endpoint packs endpoint k of interface j of configuration i.
func (e *Encoder) Endpoint(i, j, k int) ([]byte, error) {
	pos := pkg.EndpointPos(i, j, k)
	id := func(name string) string { return schema.EndpointID(i, j, k, name) }
	if err := e.checkLive(id("ADDR"), pos); err != nil {
		return nil, err
	}
	f := e.fields(pos)
	addr := f.u8(id("ADDR"))
	if f.err == nil && addr&descriptor.EndpointAddrReserved != 0 {
		f.err = pkg.RangeError(id("ADDR"), pos, addr, "address bits 6..4 must be zero")
	}
	// Sub-fields are read as full bytes so Validate sees out-of-range values.
	attrs := descriptor.EndpointAttributes{
		Reserved: f.u8(id(attrOptions[descriptor.AttrReserved])),
		Usage:    f.u8(id(attrOptions[descriptor.AttrUsage])),
		Sync:     f.u8(id(attrOptions[descriptor.AttrSync])),
		Transfer: f.u8(id(attrOptions[descriptor.AttrTransfer])),
	}
	d := descriptor.Endpoint{
		EndpointAddress: addr,
		MaxPacketSize:   f.u16(id("MXPACKETSIZE")),
		Interval:        f.u8(id("INTERVAL")),
	}
	if f.err != nil {
		return nil, f.err
	}
	if err := attrs.Validate(); err != nil {
		var ae *descriptor.AttributeError
		if errors.As(err, &ae) {
			return nil, pkg.RangeError(id(attrOptions[ae.Field]), pos, ae.Value, "%s must be 0..3", ae.Field)
		}
		return nil, err
	}
	d.Attributes = attrs.Pack()
	buf := make([]byte, descriptor.EndpointSize)
	d.MarshalTo(buf)
	return buf, nil
}

// Languages packs the language list record served at string index 0.
func (e *Encoder) Languages() ([]byte, error) {
	f := e.fields(pkg.NoPosition)
	lang := f.u16(schema.LanguageID("LANG_VAL"))
	if f.err != nil {
		return nil, f.err
	}
	buf := make([]byte, descriptor.LanguagesSize)
	descriptor.LanguagesTo(buf, lang)
	return buf, nil
}

// String packs string n, 1-based.
func (e *Encoder) String(n int) ([]byte, error) {
	pos := pkg.StringPos(n)
	id := schema.StringID(n)
	if err := e.checkLive(id, pos); err != nil {
		return nil, err
	}
	v, ok := e.r.Lookup(id)
	if !ok {
		return nil, pkg.ConsistencyError(id, pos, "no resolved value for live position")
	}
	return EncodeString(id, pos, v.Str)
}

// Debug packs the debug marker record.
func (e *Encoder) Debug() []byte {
	buf := make([]byte, descriptor.DebugSize)
	descriptor.DebugTo(buf)
	return buf
}

// EncodeString packs text as a string record. Errors name option and pos.
func EncodeString(option string, pos pkg.Position, text string) ([]byte, error) {
	units, err := descriptor.EncodeUTF16(text)
	switch {
	case errors.Is(err, descriptor.ErrStringTooLong):
		return nil, pkg.RangeError(option, pos, utf8.RuneCountInString(text),
			"string holds at most %d characters", descriptor.MaxStringUnits)
	case err != nil:
		return nil, pkg.EncodingError(option, pos, text, "%v", err)
	}
	buf := make([]byte, descriptor.StringSize(len(units)))
	descriptor.StringTo(buf, units)
	return buf, nil
}
