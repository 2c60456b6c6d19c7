package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Raw is an ordered set of option ids and their unparsed text values.
type Raw struct {
	values map[string]string
	ids    []string
}

// NewRaw returns an empty Raw.
func NewRaw() *Raw {
	return &Raw{values: map[string]string{}}
}

// Set records value for id. A repeated id keeps its first position and
// takes the last value.
func (r *Raw) Set(id, value string) {
	if _, ok := r.values[id]; !ok {
		r.ids = append(r.ids, id)
	}
	r.values[id] = value
}

// Get returns the value recorded for id.
func (r *Raw) Get(id string) (string, bool) {
	v, ok := r.values[id]
	return v, ok
}

// IDs returns the recorded ids in first-seen order.
func (r *Raw) IDs() []string { return r.ids }

// Len returns the number of recorded ids.
func (r *Raw) Len() int { return len(r.ids) }

// symbolPrefix is prepended to every option id in a .config file.
const symbolPrefix = "CONFIG_"

// ParseDotConfig reads a Kconfig .config file. It understands "CONFIG_X=y",
// "# CONFIG_X is not set", numeric values and quoted strings.
func ParseDotConfig(r io.Reader) (*Raw, error) {
	raw := NewRaw()
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if strings.HasPrefix(text, "#") {
			body := strings.TrimSpace(strings.TrimPrefix(text, "#"))
			if id, ok := strings.CutSuffix(body, " is not set"); ok {
				if id, ok = strings.CutPrefix(id, symbolPrefix); ok {
					raw.Set(id, "n")
				}
			}
			continue
		}
		key, value, ok := strings.Cut(text, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: malformed entry %q", line, text)
		}
		id := strings.TrimPrefix(strings.TrimSpace(key), symbolPrefix)
		value = strings.TrimSpace(value)
		if strings.HasPrefix(value, `"`) {
			s, err := strconv.Unquote(value)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad string for %s: %w", line, id, err)
			}
			value = s
		}
		raw.Set(id, value)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return raw, nil
}

// ParseYAML reads a flat YAML mapping of option id to scalar. Booleans map
// to y and n; a choice id may name its alternative directly.
func ParseYAML(r io.Reader) (*Raw, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return NewRaw(), nil
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return NewRaw(), nil
	}
	m := doc.Content[0]
	if m.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping of option ids", m.Line)
	}
	raw := NewRaw()
	for i := 0; i+1 < len(m.Content); i += 2 {
		k, v := m.Content[i], m.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: option %s must be a scalar", v.Line, k.Value)
		}
		id := strings.TrimPrefix(k.Value, symbolPrefix)
		value := v.Value
		if v.Tag == "!!bool" {
			var b bool
			if err := v.Decode(&b); err != nil {
				return nil, fmt.Errorf("line %d: %w", v.Line, err)
			}
			value = "n"
			if b {
				value = "y"
			}
		}
		raw.Set(id, value)
	}
	return raw, nil
}

// Load reads a configuration file, choosing the parser by extension:
// .yaml and .yml are YAML, anything else is a .config file.
func Load(path string) (*Raw, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(f)
	default:
		return ParseDotConfig(f)
	}
}
