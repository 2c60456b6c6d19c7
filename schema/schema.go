package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ardnew/usbrom/pkg"
)

// MaxBound is the largest usable bound; every count field is 8 bits wide.
const MaxBound = 255

// Bounds are the compile-time maxima of the structural positions.
type Bounds struct {
	MaxConfigurations int
	MaxInterfaces     int // per configuration
	MaxEndpoints      int // per interface
	MaxStrings        int
}

// Clamp returns b with every bound limited to 0..MaxBound.
func (b Bounds) Clamp() Bounds {
	c := func(n int) int { return max(0, min(n, MaxBound)) }
	return Bounds{
		MaxConfigurations: c(b.MaxConfigurations),
		MaxInterfaces:     c(b.MaxInterfaces),
		MaxEndpoints:      c(b.MaxEndpoints),
		MaxStrings:        c(b.MaxStrings),
	}
}

// Option ids of the structural counts.
const (
	ConfigCountID = "USB_DEVICE_NCONFIGS"
	StringCountID = "USB_NSTRINGS"
)

// DeviceID returns the id of device option name.
func DeviceID(name string) string { return "USB_DEVICE_" + name }

// LanguageID returns the id of language option name.
func LanguageID(name string) string { return "USB_" + name }

// StringID returns the id of string slot n.
func StringID(n int) string { return "USB_STRING_INDEX_" + strconv.Itoa(n) }

// ConfigID returns the id of option name of configuration i.
func ConfigID(i int, name string) string {
	return fmt.Sprintf("USB_CONFIG%d_%s", i, name)
}

// InterfaceID returns the id of option name of interface j of configuration i.
func InterfaceID(i, j int, name string) string {
	return fmt.Sprintf("USB_CONFIG%d_INTERFACE%d_%s", i, j, name)
}

// EndpointID returns the id of option name of endpoint k of interface j of
// configuration i.
func EndpointID(i, j, k int, name string) string {
	return fmt.Sprintf("USB_CONFIG%d_INTERFACE%d_EP%d_%s", i, j, k, name)
}

// InterfaceCountID returns the id of the interface count of configuration i.
func InterfaceCountID(i int) string { return ConfigID(i, "NINTERFACES") }

// EndpointCountID returns the id of the endpoint count of interface j of
// configuration i.
func EndpointCountID(i, j int) string { return InterfaceID(i, j, "NEPS") }

func optionID(level Level, pos pkg.Position, name string) string {
	switch level {
	case LevelDevice:
		return DeviceID(name)
	case LevelLanguage, LevelStrings:
		return LanguageID(name)
	case LevelString:
		return StringID(pos.StringIndex)
	case LevelConfig:
		return ConfigID(pos.Config, name)
	case LevelInterface:
		return InterfaceID(pos.Config, pos.Interface, name)
	case LevelEndpoint:
		return EndpointID(pos.Config, pos.Interface, pos.Endpoint, name)
	default:
		return name
	}
}

const levelCount = int(LevelEndpoint) + 1

// Tree is the option schema for one set of bounds. Each level keeps a single
// cluster template that is instantiated by position; the tree never holds
// the cross product of positions. A Tree is immutable.
type Tree struct {
	levels [levelCount][]template
	bounds Bounds
}

// Build returns the schema for b. Bounds are clamped to 0..MaxBound.
func Build(b Bounds) *Tree {
	t := &Tree{bounds: b.Clamp()}
	t.levels[LevelDevice] = deviceTemplates
	t.levels[LevelLanguage] = languageTemplates
	t.levels[LevelStrings] = stringsTemplates
	t.levels[LevelString] = stringTemplates
	t.levels[LevelConfig] = configTemplates
	t.levels[LevelInterface] = interfaceTemplates
	t.levels[LevelEndpoint] = endpointTemplates
	pkg.LogDebug(pkg.ComponentSchema, "schema built",
		"configs", t.bounds.MaxConfigurations,
		"interfaces", t.bounds.MaxInterfaces,
		"endpoints", t.bounds.MaxEndpoints,
		"strings", t.bounds.MaxStrings)
	return t
}

// Bounds returns the clamped bounds of t.
func (t *Tree) Bounds() Bounds { return t.bounds }

// guard returns the visibility conditions shared by every option of the
// cluster at level and pos. Each level adds its parent's count condition to
// the conditions of its ancestors.
func guard(level Level, pos pkg.Position) []Cond {
	switch level {
	case LevelString:
		return []Cond{{Ref: StringCountID, Op: OpAtLeast, N: pos.StringIndex}}
	case LevelConfig:
		return []Cond{{Ref: ConfigCountID, Op: OpGreater, N: pos.Config}}
	case LevelInterface:
		return append(guard(LevelConfig, pos),
			Cond{Ref: InterfaceCountID(pos.Config), Op: OpGreater, N: pos.Interface})
	case LevelEndpoint:
		return append(guard(LevelInterface, pos),
			Cond{Ref: EndpointCountID(pos.Config, pos.Interface), Op: OpGreater, N: pos.Endpoint})
	default:
		return nil
	}
}

func (t *Tree) instantiate(level Level, pos pkg.Position, tp *template) Option {
	opt := Option{
		ID:     optionID(level, pos, tp.name),
		Name:   tp.name,
		Kind:   tp.kind,
		Role:   tp.role,
		Prompt: tp.prompt,
		Help:   tp.help,
		Menu:   tp.menu,
		Table:  tp.table,
		Legal:  tp.legal,
		Level:  level,
		Pos:    pos,
	}
	if tp.rng != nil {
		opt.Range = tp.rng(t.bounds)
	}
	if tp.def != nil {
		opt.Default = tp.def(t.bounds, pos)
	}
	if level == LevelString {
		opt.Prompt = fmt.Sprintf("String at index %d", pos.StringIndex)
	}
	opt.Visible = guard(level, pos)
	if tp.choice != "" {
		opt.Choice = optionID(level, pos, tp.choice)
		if tp.role == RoleCustom {
			opt.Visible = append(opt.Visible, Cond{Ref: opt.Choice, Op: OpSelects, Alt: tp.table.Custom})
		}
	}
	return opt
}

// Cluster instantiates every option of level at pos in declaration order.
func (t *Tree) Cluster(level Level, pos pkg.Position) []Option {
	tps := t.levels[level]
	out := make([]Option, len(tps))
	for i := range tps {
		out[i] = t.instantiate(level, pos, &tps[i])
	}
	return out
}

// Walk calls fn for every option of t in declaration order: device,
// language, string count, string slots, then each configuration followed by
// its interfaces and their endpoints. Walk stops at the first error.
func (t *Tree) Walk(fn func(*Option) error) error {
	return t.walk(nil, fn)
}

// WalkVisible is like Walk but skips options not visible in env. Clusters
// whose position guard fails are skipped without being instantiated.
func (t *Tree) WalkVisible(env Env, fn func(*Option) error) error {
	return t.walk(env, fn)
}

func (t *Tree) walk(env Env, fn func(*Option) error) error {
	visit := func(level Level, pos pkg.Position) (bool, error) {
		if env != nil {
			for _, c := range guard(level, pos) {
				if !c.Eval(env) {
					return false, nil
				}
			}
		}
		for i := range t.levels[level] {
			opt := t.instantiate(level, pos, &t.levels[level][i])
			if env != nil && !opt.IsVisible(env) {
				continue
			}
			if err := fn(&opt); err != nil {
				return true, err
			}
		}
		return true, nil
	}

	for _, level := range []Level{LevelDevice, LevelLanguage, LevelStrings} {
		if _, err := visit(level, pkg.NoPosition); err != nil {
			return err
		}
	}
	for n := 1; n <= t.bounds.MaxStrings; n++ {
		live, err := visit(LevelString, pkg.StringPos(n))
		if err != nil {
			return err
		}
		if !live {
			break
		}
	}
	for i := 0; i < t.bounds.MaxConfigurations; i++ {
		live, err := visit(LevelConfig, pkg.ConfigPos(i))
		if err != nil {
			return err
		}
		if !live {
			break
		}
		for j := 0; j < t.bounds.MaxInterfaces; j++ {
			live, err := visit(LevelInterface, pkg.InterfacePos(i, j))
			if err != nil {
				return err
			}
			if !live {
				break
			}
			for k := 0; k < t.bounds.MaxEndpoints; k++ {
				live, err := visit(LevelEndpoint, pkg.EndpointPos(i, j, k))
				if err != nil {
					return err
				}
				if !live {
					break
				}
			}
		}
	}
	return nil
}

// Ref is the result of looking up an option id. Alt is set when the id names
// one alternative of the choice Option.
type Ref struct {
	Alt    string
	Option Option
}

// legacyIDs maps option ids written by older generators to their current form.
var legacyIDs = map[string]string{
	"USB_DEVICE_CLASSID_DEVICE": "USB_DEVICE_CLASS_PER_INTERFACE",
}

// Lookup parses id back into its template and position. It returns a
// SchemaBound error when the position exceeds a bound and an error wrapping
// pkg.ErrNotFound when no template matches.
func (t *Tree) Lookup(id string) (Ref, error) {
	if current, ok := legacyIDs[id]; ok {
		id = current
	}
	level, pos, name, err := t.parseID(id)
	if err != nil {
		return Ref{}, err
	}
	tps := t.levels[level]
	for i := range tps {
		if tps[i].name == name {
			return Ref{Option: t.instantiate(level, pos, &tps[i])}, nil
		}
	}
	for i := range tps {
		tp := &tps[i]
		if tp.role != RoleChoice {
			continue
		}
		if sym, ok := strings.CutPrefix(name, tp.name+"_"); ok && tp.table.Has(sym) {
			return Ref{Option: t.instantiate(level, pos, tp), Alt: sym}, nil
		}
	}
	return Ref{}, fmt.Errorf("%w: option %s", pkg.ErrNotFound, id)
}

func (t *Tree) parseID(id string) (Level, pkg.Position, string, error) {
	notFound := fmt.Errorf("%w: option %s", pkg.ErrNotFound, id)

	if rest, ok := strings.CutPrefix(id, "USB_CONFIG"); ok {
		i, rest, ok := cutIndex(rest)
		if !ok {
			return 0, pkg.NoPosition, "", notFound
		}
		if i >= t.bounds.MaxConfigurations {
			return 0, pkg.NoPosition, "", pkg.BoundError(id, pkg.ConfigPos(i), i,
				"configuration %d beyond bound %d", i, t.bounds.MaxConfigurations)
		}
		name, ok := strings.CutPrefix(rest, "_")
		if !ok {
			return 0, pkg.NoPosition, "", notFound
		}
		rest, ok = strings.CutPrefix(name, "INTERFACE")
		if !ok {
			return LevelConfig, pkg.ConfigPos(i), name, nil
		}
		j, rest, ok := cutIndex(rest)
		if !ok {
			return 0, pkg.NoPosition, "", notFound
		}
		if j >= t.bounds.MaxInterfaces {
			return 0, pkg.NoPosition, "", pkg.BoundError(id, pkg.InterfacePos(i, j), j,
				"interface %d beyond bound %d", j, t.bounds.MaxInterfaces)
		}
		name, ok = strings.CutPrefix(rest, "_")
		if !ok {
			return 0, pkg.NoPosition, "", notFound
		}
		rest, ok = strings.CutPrefix(name, "EP")
		if !ok {
			return LevelInterface, pkg.InterfacePos(i, j), name, nil
		}
		k, rest, ok := cutIndex(rest)
		if !ok {
			return 0, pkg.NoPosition, "", notFound
		}
		if k >= t.bounds.MaxEndpoints {
			return 0, pkg.NoPosition, "", pkg.BoundError(id, pkg.EndpointPos(i, j, k), k,
				"endpoint %d beyond bound %d", k, t.bounds.MaxEndpoints)
		}
		name, ok = strings.CutPrefix(rest, "_")
		if !ok {
			return 0, pkg.NoPosition, "", notFound
		}
		return LevelEndpoint, pkg.EndpointPos(i, j, k), name, nil
	}

	if rest, ok := strings.CutPrefix(id, "USB_STRING_INDEX_"); ok {
		n, rest, ok := cutIndex(rest)
		if !ok || rest != "" || n == 0 {
			return 0, pkg.NoPosition, "", notFound
		}
		if n > t.bounds.MaxStrings {
			return 0, pkg.NoPosition, "", pkg.BoundError(id, pkg.StringPos(n), n,
				"string %d beyond bound %d", n, t.bounds.MaxStrings)
		}
		return LevelString, pkg.StringPos(n), "STRING_INDEX", nil
	}

	if name, ok := strings.CutPrefix(id, "USB_DEVICE_"); ok {
		return LevelDevice, pkg.NoPosition, name, nil
	}
	if name, ok := strings.CutPrefix(id, "USB_"); ok {
		if name == "NSTRINGS" {
			return LevelStrings, pkg.NoPosition, name, nil
		}
		return LevelLanguage, pkg.NoPosition, name, nil
	}
	return 0, pkg.NoPosition, "", notFound
}

// cutIndex splits the leading decimal digits off s.
func cutIndex(s string) (int, string, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 || end > 4 {
		return 0, s, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, s, false
	}
	return n, s[end:], true
}
