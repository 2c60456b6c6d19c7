package schema

import (
	"strconv"

	"github.com/ardnew/usbrom/codes"
	"github.com/ardnew/usbrom/pkg"
)

// template describes one option of a positional cluster. Options are
// instantiated from templates on demand by position.
type template struct {
	table  *codes.Table
	rng    func(Bounds) *Range
	def    func(Bounds, pkg.Position) string
	name   string
	prompt string
	help   string
	menu   string
	choice string // template name of the governing choice
	legal  []int64
	kind   Kind
	role   Role
}

func fixed(lo, hi int64) func(Bounds) *Range {
	r := &Range{Min: lo, Max: hi}
	return func(Bounds) *Range { return r }
}

func literal(s string) func(Bounds, pkg.Position) string {
	return func(Bounds, pkg.Position) string { return s }
}

// countDefault is want clamped to the bound selected by bound.
func countDefault(want int, bound func(Bounds) int) func(Bounds, pkg.Position) string {
	return func(b Bounds, _ pkg.Position) string {
		return strconv.Itoa(min(want, bound(b)))
	}
}

func countRange(bound func(Bounds) int) func(Bounds) *Range {
	return func(b Bounds) *Range { return &Range{Min: 0, Max: int64(bound(b))} }
}

// choiceTemplates returns the choice, its custom value and the derived value
// for table, named name, name+custom and name+"_VAL".
func choiceTemplates(name, custom, prompt string, table *codes.Table, kind Kind) []template {
	maxv := int64(table.Max)
	return []template{
		{
			name:   name,
			kind:   KindChoice,
			role:   RoleChoice,
			prompt: prompt,
			table:  table,
			def:    literal(table.Default),
		},
		{
			name:   name + custom,
			kind:   kind,
			role:   RoleCustom,
			prompt: "Custom " + table.Name + " value",
			table:  table,
			choice: name,
			rng:    fixed(0, maxv),
			def:    literal(formatDefault(kind, 0)),
		},
		{
			name:   name + "_VAL",
			kind:   kind,
			role:   RoleDerived,
			table:  table,
			choice: name,
			rng:    fixed(0, maxv),
		},
	}
}

func formatDefault(kind Kind, v int64) string {
	if kind == KindHex {
		return "0x" + strconv.FormatInt(v, 16)
	}
	return strconv.FormatInt(v, 10)
}

var deviceTemplates = concat(
	[]template{
		{
			name:   "USB_VERSION",
			kind:   KindHex,
			prompt: "USB Version",
			help:   "USB specification release number in binary-coded decimal (2.10 is 0x210).",
			rng:    fixed(0, 0xffff),
			def:    literal("0x200"),
		},
	},
	choiceTemplates("CLASS", "_CUSTOM_VAL", "USB Device Class", codes.DeviceClasses, KindHex),
	[]template{
		{
			name:   "SUBCLASS",
			kind:   KindInt,
			prompt: "USB Subclass",
			help:   "Subclass code qualified by bDeviceClass.",
			rng:    fixed(0, 0xff),
			def:    literal("0"),
		},
		{
			name:   "PROTOCOL",
			kind:   KindInt,
			prompt: "USB Protocol",
			help:   "Protocol code qualified by bDeviceClass and bDeviceSubClass.",
			rng:    fixed(0, 0xff),
			def:    literal("0"),
		},
		{
			name:   "MXPACKETSIZE",
			kind:   KindInt,
			prompt: "EP0 Max Packet Size",
			help:   "Maximum packet size for endpoint zero (only 8, 16, 32, or 64 are valid).",
			rng:    fixed(0, 0xff),
			legal:  []int64{8, 16, 32, 64},
			def:    literal("64"),
		},
		{
			name:   "VENDORID",
			kind:   KindHex,
			prompt: "Vendor ID",
			help:   "Vendor ID (assigned by the USB-IF).",
			rng:    fixed(0, 0xffff),
			def:    literal("0x1234"),
		},
		{
			name:   "PRODUCTID",
			kind:   KindHex,
			prompt: "Product ID",
			help:   "Product ID (assigned by the manufacturer).",
			rng:    fixed(0, 0xffff),
			def:    literal("0x5678"),
		},
		{
			name:   "DEVICEID",
			kind:   KindHex,
			prompt: "Device ID",
			help:   "Device release number in binary-coded decimal.",
			rng:    fixed(0, 0xffff),
			def:    literal("0x9abc"),
		},
		{
			name:   "IMFGR",
			kind:   KindInt,
			prompt: "Manufacturer String Index",
			rng:    fixed(0, 0xff),
			def:    literal("0"),
		},
		{
			name:   "IPRODUCT",
			kind:   KindInt,
			prompt: "Product String Index",
			rng:    fixed(0, 0xff),
			def:    literal("0"),
		},
		{
			name:   "ISERNO",
			kind:   KindInt,
			prompt: "Serial Number String Index",
			rng:    fixed(0, 0xff),
			def:    literal("0"),
		},
		{
			name:   "NCONFIGS",
			kind:   KindInt,
			role:   RoleCount,
			prompt: "Number of Configurations",
			rng:    countRange(func(b Bounds) int { return b.MaxConfigurations }),
			def:    countDefault(1, func(b Bounds) int { return b.MaxConfigurations }),
		},
	},
)

var languageTemplates = choiceTemplates("LANG", "_USER_VAL", "USB Language ID", codes.Languages, KindHex)

var stringsTemplates = []template{
	{
		name:   "NSTRINGS",
		kind:   KindInt,
		role:   RoleCount,
		prompt: "Number of Strings",
		rng:    countRange(func(b Bounds) int { return b.MaxStrings }),
		def:    countDefault(1, func(b Bounds) int { return b.MaxStrings }),
	},
}

var stringTemplates = []template{
	{
		name: "STRING_INDEX",
		kind: KindString,
		def:  literal(""),
	},
}

var configTemplates = []template{
	{
		name:   "NINTERFACES",
		kind:   KindInt,
		role:   RoleCount,
		prompt: "Number of Interfaces",
		rng:    countRange(func(b Bounds) int { return b.MaxInterfaces }),
		def:    countDefault(1, func(b Bounds) int { return b.MaxInterfaces }),
	},
	{
		name:   "CFGVALUE",
		kind:   KindInt,
		prompt: "Configuration Value",
		rng:    fixed(0, 0xff),
		def: func(_ Bounds, p pkg.Position) string {
			return strconv.Itoa(min(p.Config+1, 0xff))
		},
	},
	{
		name:   "ICFG",
		kind:   KindInt,
		prompt: "Configuration String Index",
		rng:    fixed(0, 0xff),
		def:    literal("0"),
	},
	attrTemplate(7, "Configuration Attribute D7", true),
	attrTemplate(6, "Self-Powered", true),
	attrTemplate(5, "Remote Wakeup", true),
	attrTemplate(4, "Configuration Attribute D4", false),
	attrTemplate(3, "Configuration Attribute D3", false),
	attrTemplate(2, "Configuration Attribute D2", false),
	attrTemplate(1, "Configuration Attribute D1", false),
	attrTemplate(0, "Configuration Attribute D0", false),
	{
		name:   "MXPOWER",
		kind:   KindHex,
		prompt: "Maximum Power",
		help:   "Maximum bus power consumption in 2 mA units.",
		rng:    fixed(0, 0xff),
		def:    literal("0x30"),
	},
}

func attrTemplate(bit int, prompt string, on bool) template {
	def := "n"
	if on {
		def = "y"
	}
	return template{
		name:   "ATTR_D" + strconv.Itoa(bit),
		kind:   KindBool,
		prompt: prompt,
		menu:   "USB Attribute",
		def:    literal(def),
	}
}

var interfaceTemplates = concat(
	[]template{
		{
			name:   "IFNO",
			kind:   KindInt,
			prompt: "Interface Number",
			rng:    fixed(0, 0xff),
			def: func(_ Bounds, p pkg.Position) string {
				return strconv.Itoa(p.Interface)
			},
		},
		{
			name:   "ALT",
			kind:   KindInt,
			prompt: "Alt Setting",
			rng:    fixed(0, 0xff),
			def:    literal("0"),
		},
		{
			name:   "NEPS",
			kind:   KindInt,
			role:   RoleCount,
			prompt: "Number of Endpoints",
			rng:    countRange(func(b Bounds) int { return b.MaxEndpoints }),
			def:    countDefault(2, func(b Bounds) int { return b.MaxEndpoints }),
		},
	},
	choiceTemplates("CLASS", "_CUSTOM_VAL", "USB Interface Class", codes.InterfaceClasses, KindHex),
	[]template{
		{
			name:   "SUBCLASS_VAL",
			kind:   KindInt,
			prompt: "Interface SubClass Value",
			rng:    fixed(0, 0xff),
			def:    literal("0"),
		},
		{
			name:   "PROTOCOL_VAL",
			kind:   KindInt,
			prompt: "Interface Protocol Value",
			rng:    fixed(0, 0xff),
			def:    literal("0"),
		},
		{
			name:   "IIF",
			kind:   KindInt,
			prompt: "Interface String Index",
			rng:    fixed(0, 0xff),
			def:    literal("0"),
		},
	},
)

var endpointTemplates = concat(
	[]template{
		{
			name:   "ADDR",
			kind:   KindHex,
			prompt: "Endpoint Address",
			help:   "Bits 3..0 are the endpoint number and bit 7 the direction (0 = OUT, 1 = IN).",
			rng:    fixed(0, 0xff),
			def: func(_ Bounds, p pkg.Position) string {
				// OUT 1..15 first, then IN 1..15, cycling; bits 6..4 stay clear.
				k := p.Endpoint
				if k < 15 {
					return formatDefault(KindHex, int64(k+1))
				}
				return formatDefault(KindHex, int64(0x80|((k-15)%15+1)))
			},
		},
	},
	choiceTemplates("ATTR_XFER_TYPE", "_CUSTOM_VAL", "Transfer Type", codes.TransferTypes, KindInt),
	choiceTemplates("ATTR_SYNC_TYPE", "_CUSTOM_VAL", "Synchronization Type", codes.SyncTypes, KindInt),
	choiceTemplates("ATTR_USAGE_TYPE", "_CUSTOM_VAL", "Usage Type", codes.UsageTypes, KindInt),
	[]template{
		{
			name:   "ATTR_NONE",
			kind:   KindInt,
			prompt: "Reserved Endpoint Attribute D6 D7",
			rng:    fixed(0, 3),
			def:    literal("0"),
		},
		{
			name:   "MXPACKETSIZE",
			kind:   KindHex,
			prompt: "Maximum Packet Size",
			help:   "Bits 10..0 are the packet size and bits 12..11 the additional transactions per microframe.",
			rng:    fixed(0, 0xffff),
			def:    literal("0x200"),
		},
		{
			name:   "INTERVAL",
			kind:   KindInt,
			prompt: "Interval",
			help:   "Polling interval in frames or microframes (125 us units).",
			rng:    fixed(0, 0xff),
			def:    literal("0"),
		},
	},
)

func concat(groups ...[]template) []template {
	var out []template
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
