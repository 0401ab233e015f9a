// Package checkerr implements the diagnostic taxonomy of the checker: a
// closed set of error codes, a CheckError interface every inference
// failure implements, and an Errors aggregator for collecting a batch of
// them.
package checkerr

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/velatype/vela/ast"
)

// enableStackInMessages includes a caller frame in FormatWithCode's output.
const enableStackInMessages = true

type ErrCode int

const (
	None ErrCode = iota
	Unbound
	TypeUnify
	OccursCheck
	UnsupportedCode
)

func (c ErrCode) String() string {
	switch c {
	case Unbound:
		return "Unbound"
	case TypeUnify:
		return "TypeUnify"
	case OccursCheck:
		return "OccursCheck"
	case UnsupportedCode:
		return "Unsupported"
	default:
		return "None"
	}
}

// CheckError is the interface every diagnostic produced by the checker
// implements. It carries its own source location so drivers can render
// file:line:column diagnostics without threading position data separately.
type CheckError interface {
	Error() string
	Code() ErrCode
	ast.Positioner

	withStack([]byte) CheckError
	getStack() []byte
}

// New snapshots the current stack into e and returns it as a CheckError.
// Call this at the point an error is constructed, not where it's returned.
func New[E CheckError](e E) CheckError {
	return e.withStack(debug.Stack())
}

// FormatWithCode renders "(E003) message", optionally prefixed with the
// caller frame that constructed the error.
func FormatWithCode(e CheckError) string {
	if enableStackInMessages && e.getStack() != nil {
		lines := strings.Split(string(e.getStack()), "\n")
		if len(lines) > 6 {
			return fmt.Sprintf("%s: (E%03d) %s", strings.TrimSpace(lines[6]), e.Code(), e.Error())
		}
	}
	return fmt.Sprintf("(E%03d) %s", e.Code(), e.Error())
}

// FormatWithCodeAndSource additionally prefixes file:line:column, for use
// by the CLI driver which knows which file produced e.
func FormatWithCodeAndSource(file string, e CheckError) string {
	loc := e.Pos().Start
	return fmt.Sprintf("%s:%d:%d: (E%03d) %s", file, loc.Line, loc.Column, e.Code(), e.Error())
}
