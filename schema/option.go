package schema

import (
	"fmt"
	"strings"

	"github.com/ardnew/usbrom/codes"
	"github.com/ardnew/usbrom/pkg"
)

// Kind is the value type of an option.
type Kind uint8

// Option kinds.
const (
	KindBool Kind = iota
	KindInt
	KindHex
	KindString
	KindChoice
)

// String returns the Kconfig keyword for the kind.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindHex:
		return "hex"
	case KindString:
		return "string"
	case KindChoice:
		return "choice"
	default:
		return "unknown"
	}
}

// Role distinguishes options that take part in structure or choices.
type Role uint8

// Option roles.
const (
	RolePlain   Role = iota
	RoleCount        // selects how many child positions are live
	RoleChoice       // one of a Table's alternatives
	RoleCustom       // free value unlocked by a choice's custom alternative
	RoleDerived      // promptless value computed from a choice
)

// Level is the structural level an option belongs to.
type Level uint8

// Structural levels in declaration order.
const (
	LevelDevice Level = iota
	LevelLanguage
	LevelStrings // the string count
	LevelString  // one string slot
	LevelConfig
	LevelInterface
	LevelEndpoint
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelDevice:
		return "device"
	case LevelLanguage:
		return "language"
	case LevelStrings:
		return "strings"
	case LevelString:
		return "string"
	case LevelConfig:
		return "configuration"
	case LevelInterface:
		return "interface"
	case LevelEndpoint:
		return "endpoint"
	default:
		return "unknown"
	}
}

// Range is an inclusive numeric range.
type Range struct {
	Min int64
	Max int64
}

// Contains reports whether v lies in r.
func (r Range) Contains(v int64) bool { return v >= r.Min && v <= r.Max }

// Op is a visibility comparison.
type Op uint8

// Visibility operators.
const (
	OpGreater Op = iota // Ref > N
	OpAtLeast           // Ref >= N
	OpSelects           // choice Ref has Alt active
)

// Cond is one term of a visibility predicate.
type Cond struct {
	Ref string
	Alt string
	N   int
	Op  Op
}

// Env supplies the values visibility conditions are evaluated against.
type Env interface {
	// Count returns the numeric value of id, or 0 if unset.
	Count(id string) int
	// Selected returns the active alternative of choice id.
	Selected(id string) string
}

// Eval reports whether c holds in env.
func (c Cond) Eval(env Env) bool {
	switch c.Op {
	case OpGreater:
		return env.Count(c.Ref) > c.N
	case OpAtLeast:
		return env.Count(c.Ref) >= c.N
	case OpSelects:
		return env.Selected(c.Ref) == c.Alt
	default:
		return false
	}
}

// String renders c as a Kconfig expression.
func (c Cond) String() string {
	switch c.Op {
	case OpGreater:
		return fmt.Sprintf("%s>%d", c.Ref, c.N)
	case OpAtLeast:
		return fmt.Sprintf("%s >= %d", c.Ref, c.N)
	case OpSelects:
		return AltID(c.Ref, c.Alt)
	default:
		return ""
	}
}

// Option is one instantiated schema option.
type Option struct {
	Table   *codes.Table // alternatives for choice and derived options
	Range   *Range
	ID      string
	Name    string // template name, the id without its position prefix
	Prompt  string
	Help    string
	Default string // literal in Kconfig syntax; a symbol for choices
	Choice  string // id of the governing choice for custom and derived options
	Menu    string
	Legal   []int64
	Visible []Cond
	Pos     pkg.Position
	Level   Level
	Kind    Kind
	Role    Role
}

// IsVisible reports whether every visibility condition holds in env.
func (o *Option) IsVisible(env Env) bool {
	for _, c := range o.Visible {
		if !c.Eval(env) {
			return false
		}
	}
	return true
}

// VisibleExpr renders the visibility predicate as a Kconfig expression.
func (o *Option) VisibleExpr() string {
	if len(o.Visible) == 0 {
		return "y"
	}
	parts := make([]string, len(o.Visible))
	for i, c := range o.Visible {
		parts[i] = c.String()
	}
	return strings.Join(parts, " && ")
}

// AltID returns the option id of alternative symbol of choice id.
func AltID(choice, symbol string) string { return choice + "_" + symbol }
