package usbid

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
)

// DefaultPaths lists the standard locations for the USB ID database.
var DefaultPaths = []string{
	"/usr/share/hwdata/usb.ids",
	"/var/lib/usbutils/usb.ids",
	"/usr/share/misc/usb.ids",
}

// Database caches vendor, product and class names from the USB ID database.
type Database struct {
	vendors    map[uint16]string // VID -> vendor name
	products   map[uint32]string // (VID<<16)|PID -> product name
	classes    map[uint8]string
	subclasses map[uint16]string // (class<<8)|subclass -> name
	loaded     bool
	found      bool
	mu         sync.RWMutex
	paths      []string
}

// New creates a new USB ID database that searches the default paths.
func New() *Database {
	return NewWithPaths(DefaultPaths)
}

// NewWithPaths creates a new USB ID database that searches the specified paths.
func NewWithPaths(paths []string) *Database {
	return &Database{
		vendors:    make(map[uint16]string),
		products:   make(map[uint32]string),
		classes:    make(map[uint8]string),
		subclasses: make(map[uint16]string),
		paths:      paths,
	}
}

// Load parses the first database file found on the search paths. This
// method is idempotent: subsequent calls do nothing once a load has been
// attempted.
//
// Returns true if the database was loaded (or already loaded), false if no
// database file could be found.
func (db *Database) Load() bool {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.loaded {
		return db.found
	}

	// Mark as loaded even if no file is found to prevent repeated searches.
	db.loaded = true

	for _, path := range db.paths {
		file, err := os.Open(path)
		if err != nil {
			continue
		}
		err = db.parse(file)
		file.Close()
		db.found = err == nil
		return db.found
	}
	return false
}

// Parse reads database entries from r, adding them to any already present.
func (db *Database) Parse(r io.Reader) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.loaded = true
	if err := db.parse(r); err != nil {
		return err
	}
	db.found = true
	return nil
}

// section tracks which kind of top-level entry owns the indented lines
// that follow it.
type section int

const (
	sectionNone section = iota
	sectionVendor
	sectionClass
)

// parse reads the usb.ids format. Vendor lines have the form
// "xxxx  Vendor Name" with products indented by one tab. Class lines have
// the form "C xx  Class Name" with subclasses indented by one tab. Deeper
// indentation (interfaces, protocols) is ignored.
func (db *Database) parse(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	var (
		owner section
		vid   uint16
		class uint8
	)

	for scanner.Scan() {
		line := scanner.Text()

		if len(line) == 0 || line[0] == '#' {
			continue
		}

		if line[0] == '\t' {
			line = line[1:]
			if len(line) > 0 && line[0] == '\t' {
				continue
			}
			switch owner {
			case sectionVendor:
				if pid, name, ok := entry(line, 4); ok {
					db.products[(uint32(vid)<<16)|uint32(pid)] = name
				}
			case sectionClass:
				if sub, name, ok := entry(line, 2); ok {
					db.subclasses[(uint16(class)<<8)|uint16(sub)] = name
				}
			}
			continue
		}

		if rest, ok := strings.CutPrefix(line, "C "); ok {
			if c, name, ok := entry(rest, 2); ok {
				owner, class = sectionClass, uint8(c)
				db.classes[class] = name
				continue
			}
		}

		if v, name, ok := entry(line, 4); ok {
			owner, vid = sectionVendor, uint16(v)
			db.vendors[vid] = name
			continue
		}

		// Some other top-level list (audio terminals, HID usages, ...).
		owner = sectionNone
	}
	return scanner.Err()
}

// entry splits a line of the form "<digits hex digits>  Name".
func entry(line string, digits int) (uint64, string, bool) {
	if len(line) < digits+2 || line[digits] != ' ' {
		return 0, "", false
	}
	n, err := strconv.ParseUint(line[:digits], 16, digits*4)
	if err != nil {
		return 0, "", false
	}
	name := strings.TrimLeft(line[digits:], " ")
	if name == "" {
		return 0, "", false
	}
	return n, name, true
}

// LookupVendor returns the vendor name for the given VID.
// Returns an empty string if the vendor is not found or if the database
// has not been loaded.
func (db *Database) LookupVendor(vid uint16) string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.vendors[vid]
}

// LookupProduct returns the product name for the given VID/PID combination.
// Returns an empty string if the product is not found or if the database
// has not been loaded.
func (db *Database) LookupProduct(vid, pid uint16) string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	key := (uint32(vid) << 16) | uint32(pid)
	return db.products[key]
}

// LookupClass returns the name of a device or interface class code.
func (db *Database) LookupClass(class uint8) string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.classes[class]
}

// LookupSubclass returns the name of a subclass within class.
func (db *Database) LookupSubclass(class, subclass uint8) string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.subclasses[(uint16(class)<<8)|uint16(subclass)]
}

// IsLoaded returns true if the database has been loaded (or load was attempted).
func (db *Database) IsLoaded() bool {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.loaded
}

// VendorCount returns the number of vendors in the database.
func (db *Database) VendorCount() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.vendors)
}

// ProductCount returns the number of products in the database.
func (db *Database) ProductCount() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.products)
}

// ClassCount returns the number of classes in the database.
func (db *Database) ClassCount() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.classes)
}
