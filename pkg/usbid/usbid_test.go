package usbid

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sample = `# USB ID Database
#	Version: 2024.01.01

1234  Test Vendor One
	5678  Test Product One
	9abc  Test Product Two
		00  interface line is ignored
abcd  Test Vendor Two
	def0  Test Product Three

# List of known device classes, subclasses and protocols
C 00  (Defined at Interface level)
C 03  Human Interface Device
	01  Boot Interface Subclass
		01  Keyboard
C ff  Vendor Specific Class
	ff  Vendor Specific Subclass

AT 0100  USB Streaming
	0000  not a product
`

// writeDB writes content to a usb.ids file under a temporary directory.
func writeDB(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "usb.ids")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	return path
}

// TestNewWithPaths verifies that NewWithPaths() keeps the search order.
func TestNewWithPaths(t *testing.T) {
	if got := New(); len(got.paths) != len(DefaultPaths) {
		t.Errorf("New() has %d paths, want %d", len(got.paths), len(DefaultPaths))
	}
	customPaths := []string{"/custom/path1", "/custom/path2"}
	db := NewWithPaths(customPaths)
	for i, path := range db.paths {
		if path != customPaths[i] {
			t.Errorf("Path %d: expected %q, got %q", i, customPaths[i], path)
		}
	}
}

// TestLoad_FileNotFound verifies that Load() handles missing files gracefully.
func TestLoad_FileNotFound(t *testing.T) {
	db := NewWithPaths([]string{"/nonexistent/path/usb.ids"})
	if db.Load() {
		t.Error("Load() should return false when file not found")
	}
	if !db.IsLoaded() {
		t.Error("IsLoaded() should return true after Load() attempt")
	}
	if db.Load() {
		t.Error("second Load() should still report the file as missing")
	}
}

// TestLoad_SearchOrder verifies that the first existing path wins.
func TestLoad_SearchOrder(t *testing.T) {
	first := writeDB(t, "1111  First\n")
	second := writeDB(t, "2222  Second\n")
	db := NewWithPaths([]string{"/nonexistent/usb.ids", first, second})
	if !db.Load() {
		t.Fatal("Load() failed")
	}
	if db.LookupVendor(0x1111) != "First" || db.LookupVendor(0x2222) != "" {
		t.Errorf("Load() read the wrong file: vendors = %d", db.VendorCount())
	}
}

// TestLoad_Idempotent verifies that Load() is idempotent.
func TestLoad_Idempotent(t *testing.T) {
	db := NewWithPaths([]string{writeDB(t, sample)})
	if !db.Load() {
		t.Fatal("First Load() failed")
	}
	vendors, products := db.VendorCount(), db.ProductCount()
	if !db.Load() {
		t.Error("Second Load() failed")
	}
	if db.VendorCount() != vendors || db.ProductCount() != products {
		t.Error("Second Load() modified the database")
	}
}

// TestLookup verifies vendor and product resolution.
func TestLookup(t *testing.T) {
	db := New()
	if err := db.Parse(strings.NewReader(sample)); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	tests := []struct {
		name        string
		vid         uint16
		pid         uint16
		wantVendor  string
		wantProduct string
	}{
		{"first vendor and product", 0x1234, 0x5678, "Test Vendor One", "Test Product One"},
		{"second product of first vendor", 0x1234, 0x9abc, "Test Vendor One", "Test Product Two"},
		{"second vendor", 0xabcd, 0xdef0, "Test Vendor Two", "Test Product Three"},
		{"unknown vendor", 0xFFFF, 0x0000, "", ""},
		{"known vendor, unknown product", 0x1234, 0xFFFF, "Test Vendor One", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := db.LookupVendor(tt.vid); got != tt.wantVendor {
				t.Errorf("LookupVendor(0x%04x) = %q, want %q", tt.vid, got, tt.wantVendor)
			}
			if got := db.LookupProduct(tt.vid, tt.pid); got != tt.wantProduct {
				t.Errorf("LookupProduct(0x%04x, 0x%04x) = %q, want %q",
					tt.vid, tt.pid, got, tt.wantProduct)
			}
		})
	}

	if got := db.VendorCount(); got != 2 {
		t.Errorf("VendorCount() = %d, want 2", got)
	}
	if got := db.ProductCount(); got != 3 {
		t.Errorf("ProductCount() = %d, want 3", got)
	}
}

// TestLookupClass verifies class and subclass resolution.
func TestLookupClass(t *testing.T) {
	db := New()
	if err := db.Parse(strings.NewReader(sample)); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	tests := []struct {
		class, subclass uint8
		wantClass       string
		wantSubclass    string
	}{
		{0x00, 0x00, "(Defined at Interface level)", ""},
		{0x03, 0x01, "Human Interface Device", "Boot Interface Subclass"},
		{0x03, 0x02, "Human Interface Device", ""},
		{0xff, 0xff, "Vendor Specific Class", "Vendor Specific Subclass"},
		{0x09, 0x00, "", ""},
	}
	for _, tt := range tests {
		if got := db.LookupClass(tt.class); got != tt.wantClass {
			t.Errorf("LookupClass(0x%02x) = %q, want %q", tt.class, got, tt.wantClass)
		}
		if got := db.LookupSubclass(tt.class, tt.subclass); got != tt.wantSubclass {
			t.Errorf("LookupSubclass(0x%02x, 0x%02x) = %q, want %q",
				tt.class, tt.subclass, got, tt.wantSubclass)
		}
	}
	if got := db.ClassCount(); got != 3 {
		t.Errorf("ClassCount() = %d, want 3", got)
	}
}

// TestEmptyDatabase verifies behavior with a database holding no entries.
func TestEmptyDatabase(t *testing.T) {
	db := NewWithPaths([]string{writeDB(t, "# Only comments\n# No actual data\n")})
	if !db.Load() {
		t.Fatal("Load() failed")
	}
	if db.VendorCount() != 0 || db.ProductCount() != 0 || db.ClassCount() != 0 {
		t.Errorf("counts = %d/%d/%d, want 0/0/0",
			db.VendorCount(), db.ProductCount(), db.ClassCount())
	}
	if got := db.LookupVendor(0x1234); got != "" {
		t.Errorf("LookupVendor() = %q, want empty string", got)
	}
}

// TestMalformedLines verifies that malformed lines are skipped gracefully.
func TestMalformedLines(t *testing.T) {
	content := `1234  Valid Vendor
	5678  Valid Product
ZZZZ  Invalid VID (non-hex)
	YYYY  Invalid PID (non-hex)
12    Too short
	34    Too short
1234Valid Vendor No Space
	5678Valid Product No Space
C zz  Invalid class
	01  Orphan subclass
9abc  Another Valid Vendor
	def0  Another Valid Product
`
	db := New()
	if err := db.Parse(strings.NewReader(content)); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := db.VendorCount(); got != 2 {
		t.Errorf("VendorCount() = %d, want 2", got)
	}
	if got := db.ProductCount(); got != 2 {
		t.Errorf("ProductCount() = %d, want 2", got)
	}
	if got := db.ClassCount(); got != 0 {
		t.Errorf("ClassCount() = %d, want 0", got)
	}
	if got := db.LookupProduct(0x9abc, 0xdef0); got != "Another Valid Product" {
		t.Errorf("LookupProduct(0x9abc, 0xdef0) = %q, want %q", got, "Another Valid Product")
	}
}
