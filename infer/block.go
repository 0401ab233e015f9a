package infer

import (
	"github.com/velatype/vela/ast"
	"github.com/velatype/vela/types"
)

// blockResult is the outcome of inferring a Block: its type, whether that
// type represents an early exit (a Return, or an If where every branch
// returned) that should short-circuit an enclosing block, and the
// substitution/context produced along the way.
type blockResult struct {
	Type  types.Type
	Early bool
	Subst types.Subs
	Ctx   Context
}

// ifResult is the outcome of inferring an If.
type ifResult struct {
	Type      types.Type
	AllReturn bool
	Subst     types.Subs
	Ctx       Context
}

// inferBlock walks a statement sequence left to right.
func inferBlock(ctx Context, block *ast.Block) (blockResult, error) {
	cur := ctx
	subst := types.Subs{}
	var candidates []types.Type

	for _, stmt := range block.Body {
		switch s := stmt.(type) {
		case *ast.Return:
			t, sub, ctx1, err := InferExpr(cur, s.Rhs)
			if err != nil {
				return blockResult{}, err
			}
			subst = types.Compose(sub, subst)
			return blockResult{Type: t, Early: true, Subst: subst, Ctx: ctx1}, nil

		case *ast.Block:
			res, err := inferBlock(cur, s)
			if err != nil {
				return blockResult{}, err
			}
			subst = types.Compose(res.Subst, subst)
			cur = res.Ctx
			if res.Early {
				return blockResult{Type: res.Type, Early: true, Subst: subst, Ctx: cur}, nil
			}

		case *ast.If:
			res, err := inferIf(cur, s)
			if err != nil {
				return blockResult{}, err
			}
			subst = types.Compose(res.Subst, subst)
			cur = res.Ctx
			if res.AllReturn {
				return blockResult{Type: res.Type, Early: true, Subst: subst, Ctx: cur}, nil
			}
			candidates = append(candidates, res.Type)

		case *ast.Throw:
			t, sub, ctx1, err := InferExpr(cur, s.Rhs)
			if err != nil {
				return blockResult{}, err
			}
			logger.Debug("throw ignored", "type", t)
			subst = types.Compose(sub, subst)
			cur = ctx1

		default:
			_, sub, ctx1, err := InferExpr(cur, stmt)
			if err != nil {
				return blockResult{}, err
			}
			subst = types.Compose(sub, subst)
			cur = ctx1
		}
	}

	candidates = append(candidates, types.Undefined)
	return blockResult{Type: types.NewUnion(candidates), Early: false, Subst: subst, Ctx: cur}, nil
}

// inferIf implements the If rule: both branches are inferred independently
// off the same incoming environment, and their result types merge into a
// union unless both branches unconditionally return.
func inferIf(ctx Context, ifExpr *ast.If) (ifResult, error) {
	_, condSub, ctx1, err := InferExpr(ctx, ifExpr.Cond)
	if err != nil {
		return ifResult{}, err
	}
	base := ctx1.WithEnv(ctx1.Env.Apply(condSub))

	thenRes, err := inferBlock(base, ifExpr.Then)
	if err != nil {
		return ifResult{}, err
	}
	subst := types.Compose(thenRes.Subst, condSub)
	cur := thenRes.Ctx

	if ifExpr.Else == nil {
		return ifResult{Type: thenRes.Type, AllReturn: false, Subst: subst, Ctx: cur}, nil
	}

	// The else branch starts from the incoming environment, refined by the
	// then branch's substitution but without any of its bindings.
	elseRes, err := inferBlock(base.WithEnv(base.Env.Apply(thenRes.Subst)), ifExpr.Else)
	if err != nil {
		return ifResult{}, err
	}
	subst = types.Compose(elseRes.Subst, subst)
	cur = elseRes.Ctx

	candidates := []types.Type{thenRes.Type}
	if !thenRes.Type.Equal(elseRes.Type) {
		candidates = append(candidates, elseRes.Type)
	}

	return ifResult{Type: types.NewUnion(candidates), AllReturn: true, Subst: subst, Ctx: cur}, nil
}
