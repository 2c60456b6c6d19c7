package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/ardnew/usbrom/schema"
)

// WriteDotConfig writes r as a Kconfig .config file that ParseDotConfig
// reads back to the same values.
func WriteDotConfig(w io.Writer, r *Resolved) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "#\n# USB descriptor configuration\n#\n")
	r.Each(func(id string, v Value) {
		switch v.Kind {
		case schema.KindChoice:
			fmt.Fprintf(bw, "%s%s=y\n", symbolPrefix, schema.AltID(id, v.Str))
		case schema.KindBool:
			if v.Int != 0 {
				fmt.Fprintf(bw, "%s%s=y\n", symbolPrefix, id)
			} else {
				fmt.Fprintf(bw, "# %s%s is not set\n", symbolPrefix, id)
			}
		case schema.KindString:
			fmt.Fprintf(bw, "%s%s=%s\n", symbolPrefix, id, strconv.Quote(v.Str))
		default:
			fmt.Fprintf(bw, "%s%s=%s\n", symbolPrefix, id, formatValue(v))
		}
	})
	return bw.Flush()
}

// WriteYAML writes r as a flat YAML mapping that ParseYAML reads back to
// the same values.
func WriteYAML(w io.Writer, r *Resolved) error {
	m := &yaml.Node{Kind: yaml.MappingNode}
	r.Each(func(id string, v Value) {
		val := &yaml.Node{Kind: yaml.ScalarNode, Value: formatValue(v)}
		switch v.Kind {
		case schema.KindBool:
			val.Tag = "!!bool"
		case schema.KindString, schema.KindChoice:
			val.Tag = "!!str"
		case schema.KindInt, schema.KindHex:
			val.Tag = "!!int"
		}
		m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: id}, val)
	})
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{m}}); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func formatValue(v Value) string {
	switch v.Kind {
	case schema.KindBool:
		if v.Int != 0 {
			return "true"
		}
		return "false"
	case schema.KindHex:
		return "0x" + strconv.FormatInt(v.Int, 16)
	case schema.KindInt:
		return strconv.FormatInt(v.Int, 10)
	default:
		return v.Str
	}
}
