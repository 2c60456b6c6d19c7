package config

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/ardnew/usbrom/codes"
	"github.com/ardnew/usbrom/pkg"
	"github.com/ardnew/usbrom/schema"
)

// Value is the concrete value of one option.
type Value struct {
	Choice codes.Choice // resolved choice, set for choice options
	Str    string       // string value, or the active alternative of a choice
	Int    int64        // numeric value; 1 or 0 for booleans
	Kind   schema.Kind
}

// Resolved maps every visible option of a schema to a concrete value.
// A Resolved is immutable once returned.
type Resolved struct {
	tree   *schema.Tree
	values map[string]Value
	order  []string
}

// Tree returns the schema r was resolved against.
func (r *Resolved) Tree() *schema.Tree { return r.tree }

// Lookup returns the value of id.
func (r *Resolved) Lookup(id string) (Value, bool) {
	v, ok := r.values[id]
	return v, ok
}

// Has reports whether id has a value.
func (r *Resolved) Has(id string) bool {
	_, ok := r.values[id]
	return ok
}

// Int returns the numeric value of id, or 0.
func (r *Resolved) Int(id string) int64 { return r.values[id].Int }

// Bool returns the boolean value of id, or false.
func (r *Resolved) Bool(id string) bool { return r.values[id].Int != 0 }

// Str returns the string value of id, or "".
func (r *Resolved) Str(id string) string { return r.values[id].Str }

// Choice returns the resolved choice of id.
func (r *Resolved) Choice(id string) codes.Choice { return r.values[id].Choice }

// Count returns the numeric value of id as an int.
func (r *Resolved) Count(id string) int { return int(r.values[id].Int) }

// Selected returns the active alternative of choice id.
func (r *Resolved) Selected(id string) string {
	v := r.values[id]
	if v.Kind != schema.KindChoice {
		return ""
	}
	return v.Str
}

// Live reports whether the structural slot at pos is present under the
// resolved counts. The device position is always live.
func (r *Resolved) Live(pos pkg.Position) bool {
	if pos.StringIndex >= 0 {
		return pos.StringIndex >= 1 && pos.StringIndex <= r.Count(schema.StringCountID)
	}
	if pos.Config < 0 {
		return true
	}
	if pos.Config >= r.Count(schema.ConfigCountID) {
		return false
	}
	if pos.Interface < 0 {
		return true
	}
	if pos.Interface >= r.Count(schema.InterfaceCountID(pos.Config)) {
		return false
	}
	if pos.Endpoint < 0 {
		return true
	}
	return pos.Endpoint < r.Count(schema.EndpointCountID(pos.Config, pos.Interface))
}

// Each calls fn for every resolved option in schema order.
func (r *Resolved) Each(fn func(id string, v Value)) {
	for _, id := range r.order {
		fn(id, r.values[id])
	}
}

// Len returns the number of resolved options.
func (r *Resolved) Len() int { return len(r.order) }

func (r *Resolved) set(id string, v Value) {
	if _, ok := r.values[id]; !ok {
		r.order = append(r.order, id)
	}
	r.values[id] = v
}

// Resolve walks tree in declaration order and assigns every visible option
// its raw value or its default. Counts above their bound and raw ids at
// positions beyond a bound are SchemaBound errors; values outside an
// option's range are Range errors; two selected alternatives of one choice
// or a derived value disagreeing with its choice are Consistency errors.
// Raw ids for hidden positions are ignored.
func Resolve(tree *schema.Tree, raw *Raw) (*Resolved, error) {
	res := &resolver{tree: tree, raw: raw}
	return res.run()
}

// NewResolved builds a Resolved from values settled by an external
// resolver. Absent options take their defaults. Field ranges are not
// checked and are left to the encoder; count bounds and choice consistency
// still are.
func NewResolved(tree *schema.Tree, values map[string]string) (*Resolved, error) {
	raw := NewRaw()
	ids := make([]string, 0, len(values))
	for id := range values {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		raw.Set(id, values[id])
	}
	res := &resolver{tree: tree, raw: raw, unchecked: true}
	return res.run()
}

type resolver struct {
	tree      *schema.Tree
	raw       *Raw
	out       *Resolved
	direct    map[string]string   // option id to raw text
	selected  map[string]string   // choice id to alternative selected by =y
	alts      map[string][]string // choice id to raw alternative ids
	custom    map[string]string   // choice id to its custom value option id
	used      map[string]bool
	unchecked bool
}

func (res *resolver) run() (*Resolved, error) {
	res.out = &Resolved{tree: res.tree, values: map[string]Value{}}
	res.direct = map[string]string{}
	res.selected = map[string]string{}
	res.alts = map[string][]string{}
	res.custom = map[string]string{}
	res.used = map[string]bool{}

	if err := res.index(); err != nil {
		return nil, err
	}
	if err := res.tree.WalkVisible(res.out, res.resolve); err != nil {
		return nil, err
	}
	for _, id := range res.raw.IDs() {
		if !res.used[id] {
			pkg.LogDebug(pkg.ComponentConfig, "ignoring option at hidden position", "option", id)
		}
	}
	pkg.LogInfo(pkg.ComponentConfig, "configuration resolved",
		"options", res.out.Len(),
		"configs", res.out.Count(schema.ConfigCountID),
		"strings", res.out.Count(schema.StringCountID))
	return res.out, nil
}

// index sorts raw ids into direct values and selected alternatives.
func (res *resolver) index() error {
	for _, id := range res.raw.IDs() {
		text, _ := res.raw.Get(id)
		ref, err := res.tree.Lookup(id)
		if err != nil {
			if errors.Is(err, pkg.ErrNotFound) {
				pkg.LogWarn(pkg.ComponentConfig, "unknown option ignored", "option", id)
				res.used[id] = true
				continue
			}
			return err
		}
		if ref.Alt == "" {
			res.direct[id] = text
			continue
		}
		choice := ref.Option.ID
		res.alts[choice] = append(res.alts[choice], id)
		on, err := parseBool(text)
		if err != nil {
			return pkg.RangeError(id, ref.Option.Pos, text, "alternative must be y or n")
		}
		if !on {
			continue
		}
		if prev, ok := res.selected[choice]; ok && prev != ref.Alt {
			return pkg.ConsistencyError(choice, ref.Option.Pos,
				"alternatives %s and %s both selected", prev, ref.Alt)
		}
		res.selected[choice] = ref.Alt
	}
	return nil
}

func (res *resolver) take(id string) (string, bool) {
	text, ok := res.direct[id]
	if ok {
		res.used[id] = true
	}
	return text, ok
}

func (res *resolver) resolve(opt *schema.Option) error {
	switch opt.Role {
	case schema.RoleChoice:
		return res.resolveChoice(opt)
	case schema.RoleDerived:
		return res.resolveDerived(opt)
	case schema.RoleCustom:
		res.custom[opt.Choice] = opt.ID
	}

	text, ok := res.take(opt.ID)
	if !ok {
		text = opt.Default
	}

	v := Value{Kind: opt.Kind}
	switch opt.Kind {
	case schema.KindBool:
		on, err := parseBool(text)
		if err != nil {
			return pkg.RangeError(opt.ID, opt.Pos, text, "expected y or n")
		}
		if on {
			v.Int = 1
		}
	case schema.KindString:
		v.Str = text
	default:
		n, err := parseInt(opt.Kind, text)
		if err != nil {
			return pkg.RangeError(opt.ID, opt.Pos, text, "expected %s value", opt.Kind)
		}
		if err := res.checkRange(opt, n); err != nil {
			return err
		}
		v.Int = n
	}
	res.out.set(opt.ID, v)
	return nil
}

func (res *resolver) checkRange(opt *schema.Option, n int64) error {
	if opt.Range != nil && !opt.Range.Contains(n) {
		if opt.Role == schema.RoleCount {
			if n > opt.Range.Max {
				return pkg.BoundError(opt.ID, opt.Pos, n, "count exceeds bound %d", opt.Range.Max)
			}
			return pkg.RangeError(opt.ID, opt.Pos, n, "count must not be negative")
		}
		if res.unchecked {
			return nil
		}
		return pkg.RangeError(opt.ID, opt.Pos, n, "outside %d..%d", opt.Range.Min, opt.Range.Max)
	}
	if len(opt.Legal) > 0 && !res.unchecked && !slices.Contains(opt.Legal, n) {
		return pkg.RangeError(opt.ID, opt.Pos, n, "must be one of %v", opt.Legal)
	}
	return nil
}

func (res *resolver) resolveChoice(opt *schema.Option) error {
	for _, id := range res.alts[opt.ID] {
		res.used[id] = true
	}
	sym, fromAlt := res.selected[opt.ID]
	if text, ok := res.take(opt.ID); ok {
		if fromAlt && text != sym {
			return pkg.ConsistencyError(opt.ID, opt.Pos,
				"alternatives %s and %s both selected", text, sym)
		}
		sym = text
	} else if !fromAlt {
		sym = opt.Default
	}
	if !opt.Table.Has(sym) {
		return pkg.RangeError(opt.ID, opt.Pos, sym, "unknown %s alternative", opt.Table.Name)
	}
	res.out.set(opt.ID, Value{Kind: schema.KindChoice, Str: sym, Choice: codes.Named(sym)})
	return nil
}

func (res *resolver) resolveDerived(opt *schema.Option) error {
	choiceVal := res.out.values[opt.Choice]
	choice := codes.Named(choiceVal.Str)
	if choiceVal.Str == opt.Table.Custom {
		choice = codes.Custom(uint32(res.out.Int(res.custom[opt.Choice])))
	}
	code, err := opt.Table.Resolve(opt.ID, opt.Pos, choice)
	if err != nil {
		return err
	}
	if text, ok := res.take(opt.ID); ok {
		n, err := parseInt(opt.Kind, text)
		if err != nil {
			return pkg.RangeError(opt.ID, opt.Pos, text, "expected %s value", opt.Kind)
		}
		if n != int64(code) {
			return pkg.ConsistencyError(opt.ID, opt.Pos,
				"value 0x%x disagrees with %s (0x%x)", n, choice, code)
		}
	}
	choiceVal.Choice = choice
	res.out.values[opt.Choice] = choiceVal
	res.out.set(opt.ID, Value{Kind: opt.Kind, Int: int64(code)})
	return nil
}

func parseBool(text string) (bool, error) {
	switch strings.TrimSpace(text) {
	case "y", "Y":
		return true, nil
	case "n", "N", "":
		return false, nil
	default:
		return false, fmt.Errorf("invalid bool %q", text)
	}
}

func parseInt(kind schema.Kind, text string) (int64, error) {
	s := strings.TrimSpace(text)
	if kind == schema.KindHex {
		if rest, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok {
			s = rest
		}
		return strconv.ParseInt(s, 16, 64)
	}
	if rest, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok {
		return strconv.ParseInt(rest, 16, 64)
	}
	return strconv.ParseInt(s, 10, 64)
}
