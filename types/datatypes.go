// Package types implements the algebraic type terms of the checker: Named
// primitives, type variables, function types and (asymmetric, unnormalised)
// union types, plus substitution application and free-variable computation
// over them.
package types

import (
	"strings"

	"github.com/velatype/vela/internal/typeset"
)

// Type is a monotype: a type with no quantifiers.
type Type interface {
	// FreeVars returns the set of Var names occurring in this type.
	FreeVars() typeset.Set
	// Apply rewrites every free occurrence of a variable bound in s.
	Apply(s Subs) Type
	// Equal is structural equality; Union alternatives are compared as
	// multisets up to element equality, not as ordered sequences.
	Equal(other Type) bool
	String() string
}

// Named is a nominal primitive type, e.g. "number", "string". Equality is
// by name.
type Named struct {
	Name string
}

func (n Named) FreeVars() typeset.Set { return typeset.Empty }
func (n Named) Apply(Subs) Type       { return n }
func (n Named) String() string        { return n.Name }
func (n Named) Equal(other Type) bool {
	o, ok := other.(Named)
	return ok && o.Name == n.Name
}

// Common built-in Named types.
var (
	Number    = Named{Name: "number"}
	String    = Named{Name: "string"}
	Boolean   = Named{Name: "boolean"}
	Null      = Named{Name: "null"}
	Undefined = Named{Name: "undefined"}
)

// Var is a type variable. Fresh ones are drawn from a per-Context
// monotonic counter rendered as "T0", "T1", ...
type Var struct {
	Name string
}

func (v Var) FreeVars() typeset.Set { return typeset.Of(v.Name) }
func (v Var) Apply(s Subs) Type {
	if t, ok := s.Get(v.Name); ok {
		return t
	}
	return v
}
func (v Var) String() string { return v.Name }
func (v Var) Equal(other Type) bool {
	o, ok := other.(Var)
	return ok && o.Name == v.Name
}

// Function is an ordered sequence of parameter types and a single result
// type. Arity is significant.
type Function struct {
	Params []Type
	Return Type
}

func (f Function) FreeVars() typeset.Set {
	fv := f.Return.FreeVars()
	for _, p := range f.Params {
		fv = fv.Union(p.FreeVars())
	}
	return fv
}

func (f Function) Apply(s Subs) Type {
	params := make([]Type, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Apply(s)
	}
	return Function{Params: params, Return: f.Return.Apply(s)}
}

func (f Function) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	return "(" + strings.Join(parts, ", ") + ") => " + f.Return.String()
}

func (f Function) Equal(other Type) bool {
	o, ok := other.(Function)
	if !ok || len(o.Params) != len(f.Params) {
		return false
	}
	for i, p := range f.Params {
		if !p.Equal(o.Params[i]) {
			return false
		}
	}
	return f.Return.Equal(o.Return)
}

// Union is an ordered, non-empty list of alternatives. Unions are not
// normalised by construction: not deduplicated, not flattened. Equality
// and unification treat them as multisets up to element equality.
type Union struct {
	Alternatives []Type
}

func (u Union) FreeVars() typeset.Set {
	fv := typeset.Empty
	for _, a := range u.Alternatives {
		fv = fv.Union(a.FreeVars())
	}
	return fv
}

func (u Union) Apply(s Subs) Type {
	alts := make([]Type, len(u.Alternatives))
	for i, a := range u.Alternatives {
		alts[i] = a.Apply(s)
	}
	return Union{Alternatives: alts}
}

func (u Union) String() string {
	parts := make([]string, len(u.Alternatives))
	for i, a := range u.Alternatives {
		parts[i] = a.String()
	}
	return strings.Join(parts, " | ")
}

// Equal treats unions as multisets: same size, and every member of u has a
// distinct matching member in other (a bijection via greedy matching).
func (u Union) Equal(other Type) bool {
	o, ok := other.(Union)
	if !ok || len(o.Alternatives) != len(u.Alternatives) {
		return false
	}
	used := make([]bool, len(o.Alternatives))
	for _, a := range u.Alternatives {
		found := false
		for i, b := range o.Alternatives {
			if !used[i] && a.Equal(b) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// NewUnion builds a Union, unwrapping a singleton list to its sole element
// so a merge that only ever produced one candidate type doesn't leak a
// one-element Union wrapper.
func NewUnion(alts []Type) Type {
	if len(alts) == 1 {
		return alts[0]
	}
	return Union{Alternatives: alts}
}

// Contains reports whether the variable called name occurs (transitively,
// structurally) within t.
// Used by the occurs check in varBind.
func Contains(t Type, name string) bool {
	switch t := t.(type) {
	case Named:
		return false
	case Var:
		return t.Name == name
	case Function:
		for _, p := range t.Params {
			if Contains(p, name) {
				return true
			}
		}
		return Contains(t.Return, name)
	case Union:
		for _, a := range t.Alternatives {
			if Contains(a, name) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
