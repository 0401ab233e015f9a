package checkerr

import (
	"fmt"

	"github.com/velatype/vela/ast"
	"github.com/velatype/vela/types"
)

// UnboundVariable is raised by a Var expression referencing a name absent
// from the environment.
type UnboundVariable struct {
	ast.Positioner
	Name  string
	stack []byte
}

func (e UnboundVariable) Error() string {
	return fmt.Sprintf("variable '%s' is not defined", e.Name)
}
func (e UnboundVariable) Code() ErrCode    { return Unbound }
func (e UnboundVariable) getStack() []byte { return e.stack }
func (e UnboundVariable) withStack(stack []byte) CheckError {
	e.stack = stack
	return e
}

// TypeMismatch is the raw, location-less record of a want/got type
// disagreement. It is never returned on its own from the inferencer —
// always wrapped in an InferenceError that attaches the expression's
// location.
type TypeMismatch struct {
	Want, Got types.Type
}

func (m TypeMismatch) Error() string {
	return fmt.Sprintf("expected type '%s', but found '%s'", m.Want, m.Got)
}

// InferenceError is a TypeMismatch pinned to the expression that
// triggered it.
type InferenceError struct {
	Mismatch TypeMismatch
	At       ast.Positioner
	stack    []byte
}

func (e InferenceError) Pos() ast.Loc { return e.At.Pos() }
func (e InferenceError) Error() string {
	return e.Mismatch.Error()
}
func (e InferenceError) Code() ErrCode    { return TypeUnify }
func (e InferenceError) getStack() []byte { return e.stack }
func (e InferenceError) withStack(stack []byte) CheckError {
	e.stack = stack
	return e
}

// SelfReference reports that the occurs check failed outside the Union
// loophole: a type variable would have to bind to a type containing
// itself.
type SelfReference struct {
	ast.Positioner
	Var   string
	In    types.Type
	stack []byte
}

func (e SelfReference) Error() string {
	return fmt.Sprintf("type contains a reference to itself: %s occurs in %s", e.Var, e.In)
}
func (e SelfReference) Code() ErrCode    { return OccursCheck }
func (e SelfReference) getStack() []byte { return e.stack }
func (e SelfReference) withStack(stack []byte) CheckError {
	e.stack = stack
	return e
}

// Unsupported reports a construct the checker recognises syntactically but
// declines to type, such as assigning to a generalised (Forall) binding.
type Unsupported struct {
	ast.Positioner
	What  string
	stack []byte
}

func (e Unsupported) Error() string {
	return fmt.Sprintf("unsupported: %s", e.What)
}
func (e Unsupported) Code() ErrCode    { return UnsupportedCode }
func (e Unsupported) getStack() []byte { return e.stack }
func (e Unsupported) withStack(stack []byte) CheckError {
	e.stack = stack
	return e
}
