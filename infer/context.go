// Package infer implements the expression, block and if inferencers: the
// recursive walker that assigns a principal type to every expression form
// of the surface language.
package infer

import (
	"fmt"

	"github.com/velatype/vela/internal/log"
	"github.com/velatype/vela/types"
)

var logger = log.DefaultLogger.With("section", "infer")

// Context bundles the fresh-variable counter and the current environment.
// The counter is the only genuinely mutable state in the engine; Env is
// threaded as an immutable snapshot.
type Context struct {
	counter *int
	Env     types.Env
}

// NewContext builds a Context seeded with env; a fresh shared counter
// backs every Context derived from it via WithEnv.
func NewContext(env types.Env) Context {
	c := 0
	return Context{counter: &c, Env: env}
}

// WithEnv returns a Context sharing this one's counter but with a
// different environment — used to thread nested scopes without letting
// fresh-variable names collide across sibling branches.
func (c Context) WithEnv(env types.Env) Context {
	return Context{counter: c.counter, Env: env}
}

// Fresh allocates a new, never-before-seen type variable.
func (c Context) Fresh() types.Var {
	n := *c.counter
	*c.counter = n + 1
	return types.Var{Name: fmt.Sprintf("T%d", n)}
}
