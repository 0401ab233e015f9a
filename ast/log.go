package ast

import "log/slog"

// Slog wraps an Expr as a slog.LogValuer so its (potentially expensive)
// string rendering only happens if the record actually gets handled.
func Slog(e Expr) slog.LogValuer {
	return exprLogValuer{e}
}

type exprLogValuer struct{ Expr }

func (l exprLogValuer) LogValue() slog.Value {
	return slog.StringValue(ExprString(l.Expr))
}
