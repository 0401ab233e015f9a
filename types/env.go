package types

import (
	"iter"

	"github.com/velatype/vela/internal/typeset"
)

// Env is a name→Scheme mapping. Environments are immutable snapshots:
// every "update" returns a new Env that shadows only the affected
// bindings, so sibling branches of an If never observe each other's
// bindings. Env is a Go map and keeps no insertion order: iteration via
// All (and over the map itself) visits bindings in no defined order.
type Env map[string]Scheme

// SchemeOf looks up name in the environment.
func (e Env) SchemeOf(name string) (Scheme, bool) {
	s, ok := e[name]
	return s, ok
}

// Add returns a new Env with name bound to s, leaving e untouched.
func (e Env) Add(name string, s Scheme) Env {
	clone := make(Env, len(e)+1)
	for k, v := range e {
		clone[k] = v
	}
	clone[name] = s
	return clone
}

// FreeVars is the union of FreeVars over every scheme in the environment.
func (e Env) FreeVars() typeset.Set {
	fv := typeset.Empty
	for _, s := range e {
		fv = fv.Union(s.FreeVars())
	}
	return fv
}

// Apply maps Scheme.Apply over every binding, producing a new Env.
func (e Env) Apply(sub Subs) Env {
	if len(sub) == 0 {
		return e
	}
	clone := make(Env, len(e))
	for k, v := range e {
		clone[k] = v.Apply(sub)
	}
	return clone
}

// All iterates every binding in the environment.
func (e Env) All() iter.Seq2[string, Scheme] {
	return func(yield func(string, Scheme) bool) {
		for k, v := range e {
			if !yield(k, v) {
				return
			}
		}
	}
}
