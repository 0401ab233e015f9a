// Package unify implements a directional, asymmetric unifier:
// unify(left, right) decides whether the "required" type left can
// accommodate the "provided" type right.
package unify

import (
	"fmt"

	"github.com/velatype/vela/internal/log"
	"github.com/velatype/vela/types"
)

var logger = log.DefaultLogger.With("section", "unify")

// Mismatch is returned when no substitution reconciles Want and Got.
// Want is the required/declarative type, Got is the provided/observed one.
type Mismatch struct {
	Want, Got types.Type
}

func (m Mismatch) Error() string {
	return fmt.Sprintf("type mismatch: expected '%s', got '%s'", m.Want, m.Got)
}

// SelfReference is returned by varBind when the occurs check would create
// a cyclic type outside a Union.
type SelfReference struct {
	Var  string
	Type types.Type
}

func (s SelfReference) Error() string {
	return fmt.Sprintf("type contains a reference to itself: %s occurs in %s", s.Var, s.Type)
}

// Unify returns a substitution s such that Apply(s, left) accommodates
// Apply(s, right); it fails when no such s exists. Rules are applied in a
// fixed order, most specific first.
func Unify(left, right types.Type) (types.Subs, error) {
	logger.Debug("unify", "left", left, "right", right)

	switch l := left.(type) {
	case types.Named:
		if r, ok := right.(types.Named); ok {
			if l.Name == r.Name {
				return types.Subs{}, nil
			}
		}
		if _, ok := right.(types.Var); ok {
			break // fall through to the Var-on-right rule below
		}
		if _, ok := right.(types.Union); ok {
			break // fall through to the T × Union(R) rule below
		}
		return nil, Mismatch{Want: left, Got: right}

	case types.Var:
		return varBind(l.Name, right)

	case types.Function:
		if r, ok := right.(types.Function); ok {
			return unifyFunction(l, r)
		}
		if _, ok := right.(types.Var); ok {
			break
		}
		if _, ok := right.(types.Union); ok {
			break
		}
		return nil, Mismatch{Want: left, Got: right}

	case types.Union:
		if r, ok := right.(types.Union); ok {
			return unifyUnionUnion(l, r)
		}
		if _, ok := right.(types.Var); ok {
			break
		}
		return unifyUnionWithNonUnion(l, right)
	}

	// Rule 3: Var on right.
	if r, ok := right.(types.Var); ok {
		return varBind(r.Name, left)
	}

	// Rule 7: T × Union(R), non-union left.
	if r, ok := right.(types.Union); ok {
		return unifyNonUnionWithUnion(left, r)
	}

	return nil, Mismatch{Want: left, Got: right}
}

// unifyFunction implements rule 4: arity is matched by truncating the
// left's parameter list to the length of the right's — this models
// callers supplying fewer arguments than a function's formal arity.
func unifyFunction(l, r types.Function) (types.Subs, error) {
	n := len(r.Params)
	if len(l.Params) < n {
		n = len(l.Params)
	}
	var subs []types.Subs
	for i := 0; i < n; i++ {
		s, err := Unify(l.Params[i].Apply(types.ComposeAll(subs...)), r.Params[i].Apply(types.ComposeAll(subs...)))
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	acc := types.ComposeAll(subs...)
	retSub, err := Unify(l.Return.Apply(acc), r.Return.Apply(acc))
	if err != nil {
		return nil, err
	}
	return types.Compose(retSub, acc), nil
}

// unifyUnionUnion implements rule 5: requires |R| <= |L|. Every member of
// R must unify with the whole left union; substitutions are composed in
// iteration order.
func unifyUnionUnion(l, r types.Union) (types.Subs, error) {
	if len(r.Alternatives) > len(l.Alternatives) {
		return nil, Mismatch{Want: l, Got: r}
	}
	var subs []types.Subs
	for _, rm := range r.Alternatives {
		s, err := unifyUnionWithNonUnion(l, rm)
		if err != nil {
			return nil, Mismatch{Want: l, Got: r}
		}
		subs = append(subs, s)
	}
	return types.ComposeAll(subs...), nil
}

// unifyUnionWithNonUnion implements rule 6: Union(L) × T succeeds if some
// member of L unifies with T; the first succeeding attempt's substitution
// is used (searched in order until one passes).
func unifyUnionWithNonUnion(l types.Union, t types.Type) (types.Subs, error) {
	for _, lm := range l.Alternatives {
		if s, err := Unify(lm, t); err == nil {
			return s, nil
		}
	}
	return nil, Mismatch{Want: l, Got: t}
}

// unifyNonUnionWithUnion implements rule 7: T × Union(R) succeeds only if
// every member of R unifies with T; substitutions are composed.
func unifyNonUnionWithUnion(t types.Type, r types.Union) (types.Subs, error) {
	var subs []types.Subs
	for _, rm := range r.Alternatives {
		s, err := Unify(t, rm)
		if err != nil {
			return nil, Mismatch{Want: t, Got: r}
		}
		subs = append(subs, s)
	}
	return types.ComposeAll(subs...), nil
}

// varBind implements the occurs-check rules for binding type variable n to t.
func varBind(n string, t types.Type) (types.Subs, error) {
	if v, ok := t.(types.Var); ok && v.Name == n {
		return types.Subs{}, nil
	}

	// If t is a Union some of whose members transitively contain n,
	// suppress the binding rather than failing: a deliberate looseness
	// that keeps the asymmetric Union unification rules from rejecting
	// self-referential alternatives outright.
	if u, ok := t.(types.Union); ok {
		for _, alt := range u.Alternatives {
			if types.Contains(alt, n) {
				return types.Subs{}, nil
			}
		}
	}

	if types.Contains(t, n) {
		return nil, SelfReference{Var: n, Type: t}
	}

	return types.Singleton(n, t), nil
}
