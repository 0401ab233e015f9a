package ast

import (
	"fmt"
	"strings"
)

// ExprString renders an Expr back to a short, debug-oriented surface-syntax
// approximation. It is used only for diagnostics and lazy logging, never by
// inference itself.
func ExprString(e Expr) string {
	switch e := e.(type) {
	case nil:
		return "<nil>"
	case *NumberLit:
		return fmt.Sprintf("%v", e.Value)
	case *StringLit:
		return fmt.Sprintf("%q", e.Value)
	case *BoolLit:
		return fmt.Sprintf("%v", e.Value)
	case *NullLit:
		return "null"
	case *UndefinedLit:
		return "undefined"
	case *Var:
		return e.Name
	case *Binary:
		return fmt.Sprintf("(%s %s %s)", ExprString(e.Left), e.Op, ExprString(e.Right))
	case *Call:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = ExprString(a)
		}
		return fmt.Sprintf("%s(%s)", ExprString(e.Func), strings.Join(args, ", "))
	case *Function:
		params := make([]string, len(e.Params))
		for i, p := range e.Params {
			if p.Default != nil {
				params[i] = fmt.Sprintf("%s = %s", p.Name, ExprString(p.Default))
			} else {
				params[i] = p.Name
			}
		}
		return fmt.Sprintf("(%s) => %s", strings.Join(params, ", "), ExprString(e.Body))
	case *Let:
		return fmt.Sprintf("let %s = %s", e.Name, ExprString(e.Rhs))
	case *Assign:
		return fmt.Sprintf("%s = %s", e.Name, ExprString(e.Rhs))
	case *Block:
		stmts := make([]string, len(e.Body))
		for i, s := range e.Body {
			stmts[i] = ExprString(s)
		}
		return "{ " + strings.Join(stmts, "; ") + " }"
	case *Return:
		return fmt.Sprintf("return %s", ExprString(e.Rhs))
	case *If:
		if e.Else != nil {
			return fmt.Sprintf("if (%s) %s else %s", ExprString(e.Cond), ExprString(e.Then), ExprString(e.Else))
		}
		return fmt.Sprintf("if (%s) %s", ExprString(e.Cond), ExprString(e.Then))
	case *Throw:
		return fmt.Sprintf("throw %s", ExprString(e.Rhs))
	default:
		return fmt.Sprintf("<unknown %T>", e)
	}
}
