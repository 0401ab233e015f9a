package types

import (
	"strings"

	"github.com/velatype/vela/internal/typeset"
)

// Scheme is either a bare Type or a Forall(quantifiers, Type). Only
// let-bound names carry Forall; function parameters and assignable
// variables carry bare Types.
type Scheme struct {
	Quantifiers typeset.Set // empty for a bare Type (typeset.Empty; the zero value also behaves as empty)
	Type        Type
}

// Bare wraps t as a non-generalised scheme.
func Bare(t Type) Scheme { return Scheme{Type: t, Quantifiers: typeset.Empty} }

// Forall wraps t as a scheme universally quantified over q.
func Forall(q typeset.Set, t Type) Scheme { return Scheme{Quantifiers: q, Type: t} }

// IsForall reports whether the scheme carries any quantifiers.
func (s Scheme) IsForall() bool { return s.Quantifiers.Len() > 0 }

// FreeVars: freeVars(Forall(Q, t)) = freeVars(t) \ Q; for a bare scheme,
// Q is empty so this is just freeVars(t).
func (s Scheme) FreeVars() typeset.Set {
	return s.Type.FreeVars().Difference(s.Quantifiers)
}

// Apply removes the quantifiers from a local copy of the substitution
// (quantifier shadowing) before applying to the inner type.
func (s Scheme) Apply(sub Subs) Scheme {
	if s.Quantifiers.Len() == 0 {
		return Bare(s.Type.Apply(sub))
	}
	shadowed := make(Subs, len(sub))
	for k, v := range sub {
		if !s.Quantifiers.Contains(k) {
			shadowed[k] = v
		}
	}
	return Forall(s.Quantifiers, s.Type.Apply(shadowed))
}

func (s Scheme) String() string {
	if s.Quantifiers.Len() == 0 {
		return s.Type.String()
	}
	return "forall " + strings.Join(s.Quantifiers.Slice(), " ") + ". " + s.Type.String()
}

// Instantiate allocates one fresh Var (drawn from fresh) for each
// quantifier and applies that mapping to the scheme's type. Produces a
// fresh monotype each time a polymorphic name is referenced.
func (s Scheme) Instantiate(fresh func() Var) Type {
	if s.Quantifiers.Len() == 0 {
		return s.Type
	}
	sub := make(Subs, s.Quantifiers.Len())
	for _, q := range s.Quantifiers.Slice() {
		sub[q] = fresh()
	}
	return s.Type.Apply(sub)
}

// Generalise computes freeVars(t) \ freeVars(env); if non-empty, wraps t
// in a Forall with those quantifiers, otherwise returns t bare.
// Only Let generalises — Function parameters and Assign targets never do.
func Generalise(env Env, t Type) Scheme {
	q := t.FreeVars().Difference(env.FreeVars())
	if q.Len() == 0 {
		return Bare(t)
	}
	return Forall(q, t)
}
