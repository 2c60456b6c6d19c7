package codes

import (
	"errors"
	"slices"
	"testing"

	"github.com/ardnew/usbrom/pkg"
)

var allTables = []*Table{
	DeviceClasses,
	InterfaceClasses,
	Languages,
	TransferTypes,
	SyncTypes,
	UsageTypes,
}

func TestTables_WellFormed(t *testing.T) {
	for _, tbl := range allTables {
		t.Run(tbl.Name, func(t *testing.T) {
			seen := map[string]bool{}
			for _, e := range tbl.Entries {
				if seen[e.Symbol] {
					t.Errorf("duplicate symbol %s", e.Symbol)
				}
				seen[e.Symbol] = true
				if e.Code > tbl.Max {
					t.Errorf("%s code 0x%x exceeds max 0x%x", e.Symbol, e.Code, tbl.Max)
				}
				if e.Prompt == "" {
					t.Errorf("%s has no prompt", e.Symbol)
				}
			}
			if _, ok := tbl.Lookup(tbl.Default); !ok {
				t.Errorf("default %s is not an entry", tbl.Default)
			}
			if seen[tbl.Custom] {
				t.Errorf("custom symbol %s collides with an entry", tbl.Custom)
			}
		})
	}
}

func TestLanguages_Coverage(t *testing.T) {
	if n := len(Languages.Entries); n < 100 {
		t.Errorf("len(Languages.Entries) = %d, want at least 100", n)
	}
	e, ok := Languages.Lookup("ENGLISH_UNITED_STATES")
	if !ok || e.Code != LangIDUSEnglish {
		t.Errorf("ENGLISH_UNITED_STATES = %+v, %v", e, ok)
	}
}

func TestTable_Resolve(t *testing.T) {
	tests := []struct {
		name    string
		table   *Table
		choice  Choice
		want    uint32
		wantErr error
	}{
		{"named device class", DeviceClasses, Named("CDC"), ClassCDC, nil},
		{"named default", DeviceClasses, Named("PER_INTERFACE"), ClassPerInterface, nil},
		{"custom class", DeviceClasses, Custom(0x42), 0x42, nil},
		{"custom at max", DeviceClasses, Custom(0xff), 0xff, nil},
		{"custom over max", DeviceClasses, Custom(0x100), 0, pkg.ErrRange},
		{"unknown symbol", DeviceClasses, Named("TOASTER"), 0, pkg.ErrRange},
		{"language", Languages, Named("GERMAN_STANDARD"), 0x0407, nil},
		{"user language", Languages, Custom(0x0c0c), 0x0c0c, nil},
		{"transfer", TransferTypes, Named("INTERRUPT"), TransferInterrupt, nil},
		{"custom sync over 2 bits", SyncTypes, Custom(4), 0, pkg.ErrRange},
		{"usage", UsageTypes, Named("FEEDBACK"), 1, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.table.Resolve("OPT", pkg.NoPosition, tt.choice)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Resolve() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve() = 0x%x, want 0x%x", got, tt.want)
			}
		})
	}
}

func TestTable_ResolveErrorNamesOption(t *testing.T) {
	_, err := DeviceClasses.Resolve("USB_DEVICE_CLASS_CUSTOM_VAL", pkg.NoPosition, Custom(0x1ff))
	var e *pkg.Error
	if !errors.As(err, &e) {
		t.Fatalf("error = %v, want *pkg.Error", err)
	}
	if e.Option != "USB_DEVICE_CLASS_CUSTOM_VAL" {
		t.Errorf("Option = %q", e.Option)
	}
}

func TestTable_Has(t *testing.T) {
	if !InterfaceClasses.Has("HID") {
		t.Error("Has(HID) = false")
	}
	if !InterfaceClasses.Has("USER") {
		t.Error("Has(USER) = false, custom alternative should be accepted")
	}
	if InterfaceClasses.Has("CUSTOM") {
		t.Error("Has(CUSTOM) = true for interface classes")
	}
}

func TestTable_PromptFor(t *testing.T) {
	if got := InterfaceClasses.PromptFor(ClassMassStorage); got != "Mass Storage" {
		t.Errorf("PromptFor(0x08) = %q", got)
	}
	if got := InterfaceClasses.PromptFor(0x77); got != "" {
		t.Errorf("PromptFor(0x77) = %q, want empty", got)
	}
}

func TestTable_Symbols(t *testing.T) {
	got := TransferTypes.Symbols()
	want := []string{"CONTROL", "ISOCHRONOUS", "BULK", "INTERRUPT", "CUSTOM"}
	if !slices.Equal(got, want) {
		t.Errorf("Symbols() = %v, want %v", got, want)
	}
}

func TestChoice_String(t *testing.T) {
	if got := Named("HID").String(); got != "HID" {
		t.Errorf("Named.String() = %q", got)
	}
	c := Custom(0x1f)
	if !c.IsCustom() || c.String() != "custom(0x1f)" {
		t.Errorf("Custom = %q, IsCustom %v", c.String(), c.IsCustom())
	}
}
