package infer

import (
	"fmt"

	"github.com/velatype/vela/ast"
	"github.com/velatype/vela/checkerr"
	"github.com/velatype/vela/types"
	"github.com/velatype/vela/unify"
)

// InferExpr assigns a principal type to expr, dispatching on its node kind.
// It returns the inferred type, the substitution produced while inferring
// it, and the context updated with any new bindings.
func InferExpr(ctx Context, expr ast.Expr) (types.Type, types.Subs, Context, error) {
	logger.Debug("infer", "expr", ast.Slog(expr))

	switch e := expr.(type) {
	case *ast.NumberLit:
		return types.Number, types.Subs{}, ctx, nil
	case *ast.StringLit:
		return types.String, types.Subs{}, ctx, nil
	case *ast.BoolLit:
		return types.Boolean, types.Subs{}, ctx, nil
	case *ast.NullLit:
		return types.Null, types.Subs{}, ctx, nil
	case *ast.UndefinedLit:
		return types.Undefined, types.Subs{}, ctx, nil

	case *ast.Var:
		return inferVar(ctx, e)

	case *ast.Binary:
		return inferBinary(ctx, e)

	case *ast.Let:
		return inferLet(ctx, e)

	case *ast.Assign:
		return inferAssign(ctx, e)

	case *ast.Function:
		return inferFunction(ctx, e)

	case *ast.Call:
		return inferCall(ctx, e)

	case *ast.Block:
		res, err := inferBlock(ctx, e)
		if err != nil {
			return nil, nil, ctx, err
		}
		return res.Type, res.Subst, res.Ctx, nil

	case *ast.If:
		res, err := inferIf(ctx, e)
		if err != nil {
			return nil, nil, ctx, err
		}
		return res.Type, res.Subst, res.Ctx, nil

	case *ast.Return:
		return InferExpr(ctx, e.Rhs)

	case *ast.Throw:
		// recognised, logged, contributes nothing to the type result.
		t, s, ctx1, err := InferExpr(ctx, e.Rhs)
		if err != nil {
			return nil, nil, ctx, err
		}
		logger.Debug("throw ignored", "type", t)
		return types.Undefined, s, ctx1, nil
	}

	return nil, nil, ctx, checkerr.New(checkerr.Unsupported{
		Positioner: expr,
		What:       fmt.Sprintf("unrecognised expression node %T", expr),
	})
}

func inferVar(ctx Context, v *ast.Var) (types.Type, types.Subs, Context, error) {
	scheme, ok := ctx.Env.SchemeOf(v.Name)
	if !ok {
		return nil, nil, ctx, checkerr.New(checkerr.UnboundVariable{Positioner: v, Name: v.Name})
	}
	return scheme.Instantiate(ctx.Fresh), types.Subs{}, ctx, nil
}

func inferBinary(ctx Context, b *ast.Binary) (types.Type, types.Subs, Context, error) {
	lt, s1, ctx1, err := InferExpr(ctx, b.Left)
	if err != nil {
		return nil, nil, ctx, err
	}
	cur := ctx1.WithEnv(ctx1.Env.Apply(s1))
	rt, s2, ctx2, err := InferExpr(cur, b.Right)
	if err != nil {
		return nil, nil, ctx, err
	}
	subst := types.Compose(s2, s1)

	var result types.Type
	switch b.Op {
	case ast.OpAdd:
		// this is a literal structural check, not a unification — two
		// variables that could both resolve to number still yield string.
		if lt.Equal(types.Number) && rt.Equal(types.Number) {
			result = types.Number
		} else {
			result = types.String
		}
	case ast.OpStrictEq:
		result = types.Boolean
	default:
		return nil, nil, ctx, checkerr.New(checkerr.Unsupported{
			Positioner: b,
			What:       fmt.Sprintf("operator '%s'", b.Op),
		})
	}
	return result, subst, ctx2.WithEnv(ctx2.Env.Apply(subst)), nil
}

func inferLet(ctx Context, l *ast.Let) (types.Type, types.Subs, Context, error) {
	rhsType, sub, ctx1, err := InferExpr(ctx, l.Rhs)
	if err != nil {
		return nil, nil, ctx, err
	}
	env := ctx1.Env.Apply(sub)
	scheme := types.Generalise(env, rhsType)
	return types.Undefined, sub, ctx1.WithEnv(env.Add(l.Name, scheme)), nil
}

func inferAssign(ctx Context, a *ast.Assign) (types.Type, types.Subs, Context, error) {
	scheme, ok := ctx.Env.SchemeOf(a.Name)
	if !ok {
		return nil, nil, ctx, checkerr.New(checkerr.UnboundVariable{Positioner: a, Name: a.Name})
	}
	if scheme.IsForall() {
		return nil, nil, ctx, checkerr.New(checkerr.Unsupported{
			Positioner: a,
			What:       fmt.Sprintf("cannot assign through polymorphic binding '%s'", a.Name),
		})
	}

	rhsType, sub, ctx1, err := InferExpr(ctx, a.Rhs)
	if err != nil {
		return nil, nil, ctx, err
	}
	boundType := scheme.Type.Apply(sub)

	uSub, uErr := unify.Unify(boundType, rhsType)
	if uErr != nil {
		return nil, nil, ctx, tagUnifyErr(uErr, a)
	}

	subst := types.Compose(uSub, sub)
	return boundType, subst, ctx1.WithEnv(ctx1.Env.Apply(subst)), nil
}

func inferFunction(ctx Context, f *ast.Function) (types.Type, types.Subs, Context, error) {
	cur := ctx
	paramTypes := make([]types.Type, len(f.Params))
	subst := types.Subs{}

	for i, p := range f.Params {
		if p.Default == nil {
			fresh := cur.Fresh()
			paramTypes[i] = fresh
			cur = cur.WithEnv(cur.Env.Add(p.Name, types.Bare(fresh)))
			continue
		}
		dt, s, ctx1, err := InferExpr(cur, p.Default)
		if err != nil {
			return nil, nil, ctx, err
		}
		subst = types.Compose(s, subst)
		paramTypes[i] = dt
		env := ctx1.Env.Apply(s).Add(p.Name, types.Bare(dt))
		cur = ctx1.WithEnv(env)
	}

	var resultType types.Type
	switch body := f.Body.(type) {
	case *ast.Block:
		res, err := inferBlock(cur, body)
		if err != nil {
			return nil, nil, ctx, err
		}
		subst = types.Compose(res.Subst, subst)
		resultType = res.Type
	default:
		t, s, _, err := InferExpr(cur, f.Body)
		if err != nil {
			return nil, nil, ctx, err
		}
		subst = types.Compose(s, subst)
		resultType = t
	}

	params := make([]types.Type, len(paramTypes))
	for i, p := range paramTypes {
		params[i] = p.Apply(subst)
	}
	fnType := types.Function{Params: params, Return: resultType.Apply(subst)}

	// The surrounding context is returned unchanged — function bodies
	// introduce only a nested scope.
	return fnType, subst, ctx, nil
}

func inferCall(ctx Context, c *ast.Call) (types.Type, types.Subs, Context, error) {
	funcType, s1, ctx1, err := InferExpr(ctx, c.Func)
	if err != nil {
		return nil, nil, ctx, err
	}
	postFunc := ctx1.WithEnv(ctx1.Env.Apply(s1))

	argTypes := make([]types.Type, len(c.Args))
	var argSubs []types.Subs
	for i, arg := range c.Args {
		t, s, _, err := InferExpr(postFunc, arg)
		if err != nil {
			return nil, nil, ctx, err
		}
		argTypes[i] = t
		argSubs = append(argSubs, s)
	}
	argSubst := types.ComposeAll(argSubs...)
	subst := types.Compose(argSubst, s1)

	r := postFunc.Fresh()
	candidate := types.Function{Params: applyAll(argTypes, subst), Return: r}

	primarySub, pErr := unify.Unify(funcType.Apply(subst), candidate)
	if pErr != nil {
		return nil, nil, ctx, tagUnifyErr(pErr, c)
	}
	subst = types.Compose(primarySub, subst)

	if fn, ok := funcType.Apply(subst).(types.Function); ok {
		for i, p := range fn.Params {
			declared := p.Apply(subst)
			var argT types.Type
			if i < len(argTypes) {
				argT = argTypes[i].Apply(subst)
			} else {
				argT = types.Undefined
			}
			s, uErr := unify.Unify(declared, argT)
			if uErr != nil {
				return nil, nil, ctx, tagUnifyErr(uErr, c)
			}
			subst = types.Compose(s, subst)
		}
	}

	resultType := r.Apply(subst)
	return resultType, subst, ctx1.WithEnv(ctx1.Env.Apply(subst)), nil
}

func applyAll(ts []types.Type, s types.Subs) []types.Type {
	out := make([]types.Type, len(ts))
	for i, t := range ts {
		out[i] = t.Apply(s)
	}
	return out
}

// tagUnifyErr repackages an error from the unifier as a location-tagged
// CheckError: Mismatch is upgraded to InferenceError at Call/Assign
// boundaries; a SelfReference has no natural location of its own, so it
// is tagged with the boundary that triggered the unification that
// uncovered it.
func tagUnifyErr(err error, at ast.Positioner) error {
	switch e := err.(type) {
	case unify.Mismatch:
		return checkerr.New(checkerr.InferenceError{
			Mismatch: checkerr.TypeMismatch{Want: e.Want, Got: e.Got},
			At:       at,
		})
	case unify.SelfReference:
		return checkerr.New(checkerr.SelfReference{Positioner: at, Var: e.Var, In: e.Type})
	default:
		return err
	}
}
