package schema

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ardnew/usbrom/pkg"
)

// WriteKconfig renders t as a Kconfig menu tree. Position clusters are
// wrapped in "if COUNT>pos" blocks so that a configuration editor shows
// only as many siblings as the selected counts allow.
func WriteKconfig(w io.Writer, t *Tree) error {
	kw := &kconfigWriter{w: bufio.NewWriter(w), custom: map[string]string{}}
	b := t.Bounds()

	kw.printf("mainmenu \"USB Descriptors\"\n\n")
	kw.printf("menu \"USB Device Descriptor\"\n")
	kw.cluster(t.Cluster(LevelDevice, pkg.NoPosition))
	kw.printf("endmenu\n\n")

	kw.cluster(t.Cluster(LevelLanguage, pkg.NoPosition))
	kw.printf("\n")

	kw.printf("menu \"USB Strings list\"\n")
	kw.cluster(t.Cluster(LevelStrings, pkg.NoPosition))
	for n := 1; n <= b.MaxStrings; n++ {
		pos := pkg.StringPos(n)
		kw.guarded(LevelString, pos, "", func() {
			kw.cluster(t.Cluster(LevelString, pos))
		})
	}
	kw.printf("endmenu\n\n")

	for i := 0; i < b.MaxConfigurations; i++ {
		pos := pkg.ConfigPos(i)
		kw.guarded(LevelConfig, pos, fmt.Sprintf("USB Configuration No %d", i), func() {
			kw.cluster(t.Cluster(LevelConfig, pos))
			for j := 0; j < b.MaxInterfaces; j++ {
				pos := pkg.InterfacePos(i, j)
				kw.guarded(LevelInterface, pos, fmt.Sprintf("USB Interface No %d", j), func() {
					kw.cluster(t.Cluster(LevelInterface, pos))
					for k := 0; k < b.MaxEndpoints; k++ {
						pos := pkg.EndpointPos(i, j, k)
						kw.guarded(LevelEndpoint, pos, fmt.Sprintf("USB Endpoint %d", k), func() {
							kw.cluster(t.Cluster(LevelEndpoint, pos))
						})
					}
				})
			}
		})
	}
	return kw.w.Flush()
}

type kconfigWriter struct {
	w      *bufio.Writer
	custom map[string]string // choice id to its custom value option id
}

func (kw *kconfigWriter) printf(format string, args ...any) {
	fmt.Fprintf(kw.w, format, args...)
}

// guarded wraps body in an if block on the innermost guard condition of the
// cluster at level and pos, and in a menu when title is set.
func (kw *kconfigWriter) guarded(level Level, pos pkg.Position, title string, body func()) {
	conds := guard(level, pos)
	kw.printf("if %s\n", conds[len(conds)-1])
	if title != "" {
		kw.printf("menu %q\n", title)
	}
	body()
	if title != "" {
		kw.printf("endmenu\n")
	}
	kw.printf("endif\n\n")
}

func (kw *kconfigWriter) cluster(opts []Option) {
	menu := ""
	for i := range opts {
		opt := &opts[i]
		if opt.Menu != menu {
			if menu != "" {
				kw.printf("endmenu\n")
			}
			if opt.Menu != "" {
				kw.printf("menu %q\n", opt.Menu)
			}
			menu = opt.Menu
		}
		switch opt.Role {
		case RoleChoice:
			kw.choice(opt)
		case RoleCustom:
			kw.custom[opt.Choice] = opt.ID
			kw.printf("if %s\n", AltID(opt.Choice, opt.Table.Custom))
			kw.config(opt)
			kw.printf("endif\n")
		case RoleDerived:
			kw.derived(opt)
		default:
			kw.config(opt)
		}
	}
	if menu != "" {
		kw.printf("endmenu\n")
	}
}

func (kw *kconfigWriter) config(opt *Option) {
	kw.printf("config %s\n", opt.ID)
	if opt.Prompt != "" {
		kw.printf("\t%s %q\n", opt.Kind, opt.Prompt)
	} else {
		kw.printf("\t%s\n", opt.Kind)
	}
	if opt.Range != nil {
		kw.printf("\trange %d %d\n", opt.Range.Min, opt.Range.Max)
	}
	switch {
	case opt.Kind == KindString:
		kw.printf("\tdefault %q\n", opt.Default)
	case opt.Default != "":
		kw.printf("\tdefault %s\n", opt.Default)
	}
	kw.help(opt.Help)
}

func (kw *kconfigWriter) choice(opt *Option) {
	kw.printf("choice %s\n", opt.ID)
	kw.printf("\tprompt %q\n", opt.Prompt)
	kw.printf("\tdefault %s\n", AltID(opt.ID, opt.Default))
	for _, e := range opt.Table.Entries {
		kw.printf("config %s\n", AltID(opt.ID, e.Symbol))
		kw.printf("\tbool %q\n", e.Prompt)
	}
	kw.printf("config %s\n", AltID(opt.ID, opt.Table.Custom))
	kw.printf("\tbool \"Select custom value\"\n")
	kw.printf("endchoice\n")
}

func (kw *kconfigWriter) derived(opt *Option) {
	kw.printf("config %s\n", opt.ID)
	kw.printf("\t%s\n", opt.Kind)
	if opt.Range != nil {
		kw.printf("\trange %d %d\n", opt.Range.Min, opt.Range.Max)
	}
	for _, e := range opt.Table.Entries {
		kw.printf("\tdefault %s if %s\n", formatDefault(opt.Kind, int64(e.Code)), AltID(opt.Choice, e.Symbol))
	}
	if id, ok := kw.custom[opt.Choice]; ok {
		kw.printf("\tdefault %s if %s\n", id, AltID(opt.Choice, opt.Table.Custom))
	}
}

func (kw *kconfigWriter) help(text string) {
	if text == "" {
		return
	}
	kw.printf("\thelp\n")
	for _, line := range strings.Split(text, "\n") {
		kw.printf("\t  %s\n", line)
	}
}
