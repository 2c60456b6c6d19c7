package codes

import (
	"fmt"

	"github.com/ardnew/usbrom/pkg"
)

// USB Class Codes.
const (
	ClassPerInterface = 0x00 // Class defined at interface level
	ClassAudio        = 0x01 // Audio class
	ClassCDC          = 0x02 // Communications Device Class
	ClassHID          = 0x03 // Human Interface Device
	ClassPhysical     = 0x05 // Physical
	ClassImage        = 0x06 // Still Imaging
	ClassPrinter      = 0x07 // Printer
	ClassMassStorage  = 0x08 // Mass Storage
	ClassHub          = 0x09 // Hub
	ClassCDCData      = 0x0A // CDC-Data
	ClassSmartCard    = 0x0B // Smart Card
	ClassContentSec   = 0x0D // Content Security
	ClassVideo        = 0x0E // Video
	ClassHealthcare   = 0x0F // Personal Healthcare
	ClassAudioVideo   = 0x10 // Audio/Video Devices
	ClassBillboard    = 0x11 // Billboard Device Class
	ClassTypeCBridge  = 0x12 // USB Type-C Bridge
	ClassDiagnostic   = 0xDC // Diagnostic Device
	ClassWireless     = 0xE0 // Wireless Controller
	ClassMisc         = 0xEF // Miscellaneous
	ClassAppSpecific  = 0xFE // Application Specific
	ClassVendor       = 0xFF // Vendor Specific
)

// Endpoint transfer types (USB 2.0 Spec Table 9-13).
const (
	TransferControl     = 0
	TransferIsochronous = 1
	TransferBulk        = 2
	TransferInterrupt   = 3
)

// LangIDUSEnglish is the language ID for US English.
const LangIDUSEnglish = 0x0409

// Entry is one named alternative of a Table.
type Entry struct {
	Symbol string
	Prompt string
	Code   uint32
}

// Table maps symbolic alternatives to fixed numeric codes. The Custom
// alternative unlocks a free numeric value in 0..Max.
type Table struct {
	Name    string
	Default string // symbol selected when nothing else is
	Custom  string // symbol of the custom alternative
	Max     uint32
	Entries []Entry
}

// Choice is the resolved selection of a Table: a named alternative or a
// custom numeric override.
type Choice struct {
	Symbol string
	Value  uint32
	custom bool
}

// Named selects the alternative with the given symbol.
func Named(symbol string) Choice { return Choice{Symbol: symbol} }

// Custom selects the custom alternative carrying value.
func Custom(value uint32) Choice { return Choice{Value: value, custom: true} }

// IsCustom reports whether c is the custom alternative.
func (c Choice) IsCustom() bool { return c.custom }

// String returns the symbol, or the custom value in hex.
func (c Choice) String() string {
	if c.custom {
		return fmt.Sprintf("custom(0x%x)", c.Value)
	}
	return c.Symbol
}

// Lookup returns the entry for symbol.
func (t *Table) Lookup(symbol string) (Entry, bool) {
	for _, e := range t.Entries {
		if e.Symbol == symbol {
			return e, true
		}
	}
	return Entry{}, false
}

// Has reports whether symbol names an alternative, including the custom one.
func (t *Table) Has(symbol string) bool {
	if symbol == t.Custom {
		return true
	}
	_, ok := t.Lookup(symbol)
	return ok
}

// PromptFor returns the prompt of the first entry carrying code, or "" if none.
func (t *Table) PromptFor(code uint32) string {
	for _, e := range t.Entries {
		if e.Code == code {
			return e.Prompt
		}
	}
	return ""
}

// Symbols returns the named alternatives in table order followed by the
// custom alternative.
func (t *Table) Symbols() []string {
	out := make([]string, 0, len(t.Entries)+1)
	for _, e := range t.Entries {
		out = append(out, e.Symbol)
	}
	if t.Custom != "" {
		out = append(out, t.Custom)
	}
	return out
}

// Resolve returns the numeric code selected by c: the table constant for a
// named alternative, the custom value for the custom alternative. Errors
// name option and pos.
func (t *Table) Resolve(option string, pos pkg.Position, c Choice) (uint32, error) {
	if c.custom {
		if c.Value > t.Max {
			return 0, pkg.RangeError(option, pos, c.Value,
				"custom %s exceeds 0x%x", t.Name, t.Max)
		}
		return c.Value, nil
	}
	e, ok := t.Lookup(c.Symbol)
	if !ok {
		return 0, pkg.RangeError(option, pos, c.Symbol,
			"unknown %s alternative", t.Name)
	}
	return e.Code, nil
}

// DeviceClasses lists the class codes usable in a device descriptor.
var DeviceClasses = &Table{
	Name:    "Device Class",
	Default: "PER_INTERFACE",
	Custom:  "CUSTOM",
	Max:     0xff,
	Entries: []Entry{
		{Symbol: "PER_INTERFACE", Prompt: "Defined at Interface Level", Code: ClassPerInterface},
		{Symbol: "CDC", Prompt: "Communications and CDC Control", Code: ClassCDC},
		{Symbol: "HUB", Prompt: "USB HUB", Code: ClassHub},
		{Symbol: "BILLBOARD", Prompt: "Billboard Device Class", Code: ClassBillboard},
		{Symbol: "DIAGNOSTIC", Prompt: "Diagnostic Device", Code: ClassDiagnostic},
		{Symbol: "MISCELLANEOUS", Prompt: "Miscellaneous", Code: ClassMisc},
		{Symbol: "VENDOR", Prompt: "Vendor Specific", Code: ClassVendor},
	},
}

// InterfaceClasses lists the class codes usable in an interface descriptor.
var InterfaceClasses = &Table{
	Name:    "Interface Class",
	Default: "VENDOR_SPECIFIC",
	Custom:  "USER",
	Max:     0xff,
	Entries: []Entry{
		{Symbol: "AUDIO", Prompt: "Audio Class", Code: ClassAudio},
		{Symbol: "HID", Prompt: "HID", Code: ClassHID},
		{Symbol: "PHYSICAL", Prompt: "Physical", Code: ClassPhysical},
		{Symbol: "IMAGE", Prompt: "Still Image", Code: ClassImage},
		{Symbol: "PRINTER", Prompt: "Printer", Code: ClassPrinter},
		{Symbol: "MSC", Prompt: "Mass Storage", Code: ClassMassStorage},
		{Symbol: "CDC_DATA", Prompt: "CDC DATA", Code: ClassCDCData},
		{Symbol: "SMARTCARD", Prompt: "Smart Card", Code: ClassSmartCard},
		{Symbol: "CONTENT_SECURITY", Prompt: "Content Security", Code: ClassContentSec},
		{Symbol: "VIDEO", Prompt: "Video", Code: ClassVideo},
		{Symbol: "PERSONAL_HEALTHCARE", Prompt: "Personal HealthCare", Code: ClassHealthcare},
		{Symbol: "AV", Prompt: "Audio-Video", Code: ClassAudioVideo},
		{Symbol: "TYPEC_BRIDGE", Prompt: "USB Type-C Bridge Class", Code: ClassTypeCBridge},
		{Symbol: "DIAG", Prompt: "Diagnostic Device", Code: ClassDiagnostic},
		{Symbol: "WIRELESS", Prompt: "Wireless Controller", Code: ClassWireless},
		{Symbol: "MISC", Prompt: "Miscellaneous", Code: ClassMisc},
		{Symbol: "APP_SPECIFIC", Prompt: "Application Specific", Code: ClassAppSpecific},
		{Symbol: "VENDOR_SPECIFIC", Prompt: "Vendor Specific", Code: ClassVendor},
	},
}

// TransferTypes is bits 1..0 of an endpoint's attribute byte.
var TransferTypes = &Table{
	Name:    "Transfer Type",
	Default: "BULK",
	Custom:  "CUSTOM",
	Max:     3,
	Entries: []Entry{
		{Symbol: "CONTROL", Prompt: "Control", Code: TransferControl},
		{Symbol: "ISOCHRONOUS", Prompt: "Isochronous", Code: TransferIsochronous},
		{Symbol: "BULK", Prompt: "Bulk", Code: TransferBulk},
		{Symbol: "INTERRUPT", Prompt: "Interrupt", Code: TransferInterrupt},
	},
}

// SyncTypes is bits 3..2 of an endpoint's attribute byte.
var SyncTypes = &Table{
	Name:    "Synchronization Type",
	Default: "NO_SYNC",
	Custom:  "CUSTOM",
	Max:     3,
	Entries: []Entry{
		{Symbol: "NO_SYNC", Prompt: "No Synchronization", Code: 0},
		{Symbol: "ASYNCHRONOUS", Prompt: "Asynchronous", Code: 1},
		{Symbol: "ADAPTIVE", Prompt: "Adaptive", Code: 2},
		{Symbol: "SYNCHRONOUS", Prompt: "Synchronous", Code: 3},
	},
}

// UsageTypes is bits 5..4 of an endpoint's attribute byte.
var UsageTypes = &Table{
	Name:    "Usage Type",
	Default: "DATA",
	Custom:  "CUSTOM",
	Max:     3,
	Entries: []Entry{
		{Symbol: "DATA", Prompt: "Data", Code: 0},
		{Symbol: "FEEDBACK", Prompt: "Feedback", Code: 1},
		{Symbol: "IMPL_FEEDBACK", Prompt: "Implicit Feedback Data", Code: 2},
		{Symbol: "RESERVED", Prompt: "Reserved", Code: 3},
	},
}
