package infer_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velatype/vela/ast"
	"github.com/velatype/vela/checkerr"
	"github.com/velatype/vela/infer"
	"github.com/velatype/vela/internal/typeset"
	"github.com/velatype/vela/types"
)

// seedEnv builds a small seed environment:
//
//	ambig:    () => number|undefined
//	parseInt: (string, number|undefined) => number
//	identity: ∀x. (x) => x
func seedEnv() types.Env {
	env := types.Env{}
	env = env.Add("ambig", types.Bare(types.Function{
		Return: types.NewUnion([]types.Type{types.Number, types.Undefined}),
	}))
	env = env.Add("parseInt", types.Bare(types.Function{
		Params: []types.Type{types.String, types.NewUnion([]types.Type{types.Number, types.Undefined})},
		Return: types.Number,
	}))
	env = env.Add("identity", types.Forall(typeset.Of("x"), types.Function{
		Params: []types.Type{types.Var{Name: "x"}},
		Return: types.Var{Name: "x"},
	}))
	return env
}

func num(v float64) *ast.NumberLit { return &ast.NumberLit{Value: v} }
func str(v string) *ast.StringLit  { return &ast.StringLit{Value: v} }
func ident(name string) *ast.Var   { return &ast.Var{Name: name} }

// Scenario 1: parseInt("1") → number (missing 2nd arg unifies against
// undefined, a member of the parameter union).
func TestParseIntUndersupply(t *testing.T) {
	ctx := infer.NewContext(seedEnv())
	call := &ast.Call{Func: ident("parseInt"), Args: []ast.Expr{str("1")}}

	ty, _, _, err := infer.InferExpr(ctx, call)
	require.NoError(t, err)
	assert.True(t, ty.Equal(types.Number))
}

// Scenario 2: let x = ambig(); parseInt("1", x) → number.
func TestAmbigFeedsParseIntUnion(t *testing.T) {
	ctx := infer.NewContext(seedEnv())

	let := &ast.Let{Name: "x", Rhs: &ast.Call{Func: ident("ambig")}}
	_, s1, ctx1, err := infer.InferExpr(ctx, let)
	require.NoError(t, err)
	_ = s1

	call := &ast.Call{Func: ident("parseInt"), Args: []ast.Expr{str("1"), ident("x")}}
	ty, _, _, err := infer.InferExpr(ctx1, call)
	require.NoError(t, err)
	assert.True(t, ty.Equal(types.Number))
}

// Scenario 3: let x = (a, b, c) => { let y = parseInt(b); a = 456; return c; }
// yields (T, string, T') => T': b is constrained to string by its use,
// a narrows to number via assignment, c's fresh variable generalises.
func TestFunctionParamsConstrainedAndGeneralised(t *testing.T) {
	ctx := infer.NewContext(seedEnv())

	fn := &ast.Function{
		Params: []ast.Param{{Name: "a"}, {Name: "b"}, {Name: "c"}},
		Body: &ast.Block{Body: []ast.Expr{
			&ast.Let{Name: "y", Rhs: &ast.Call{Func: ident("parseInt"), Args: []ast.Expr{ident("b")}}},
			&ast.Assign{Name: "a", Rhs: num(456)},
			&ast.Return{Rhs: ident("c")},
		}},
	}

	let := &ast.Let{Name: "x", Rhs: fn}
	_, _, ctx1, err := infer.InferExpr(ctx, let)
	require.NoError(t, err)

	scheme, ok := ctx1.Env.SchemeOf("x")
	require.True(t, ok)
	fnType, ok := scheme.Type.(types.Function)
	require.True(t, ok)
	require.Len(t, fnType.Params, 3)

	assert.True(t, fnType.Params[0].Equal(types.Number), "a must narrow to number")
	assert.True(t, fnType.Params[1].Equal(types.String), "b must be constrained to string by parseInt's use")

	cReturn, ok := fnType.Params[2].(types.Var)
	require.True(t, ok, "c's parameter type should remain an unconstrained variable")
	retVar, ok := fnType.Return.(types.Var)
	require.True(t, ok)
	assert.Equal(t, cReturn.Name, retVar.Name, "c's parameter and the return type must be the same variable")

	assert.True(t, scheme.IsForall(), "x's scheme should generalise over c's free variable")
}

// Scenario 4: identity(x) where x is scenario 3's function returns a fresh
// instantiation — distinct variables from any prior use (let-polymorphism).
func TestIdentityInstantiatesFreshVars(t *testing.T) {
	ctx := infer.NewContext(seedEnv())

	fn := &ast.Function{
		Params: []ast.Param{{Name: "a"}, {Name: "b"}, {Name: "c"}},
		Body: &ast.Block{Body: []ast.Expr{
			&ast.Let{Name: "y", Rhs: &ast.Call{Func: ident("parseInt"), Args: []ast.Expr{ident("b")}}},
			&ast.Assign{Name: "a", Rhs: num(456)},
			&ast.Return{Rhs: ident("c")},
		}},
	}
	let := &ast.Let{Name: "x", Rhs: fn}
	_, _, ctx1, err := infer.InferExpr(ctx, let)
	require.NoError(t, err)

	call := &ast.Call{Func: ident("identity"), Args: []ast.Expr{ident("x")}}
	ty, _, _, err := infer.InferExpr(ctx1, call)
	require.NoError(t, err)

	instantiated, ok := ty.(types.Function)
	require.True(t, ok)

	scheme, _ := ctx1.Env.SchemeOf("x")
	original := scheme.Type.(types.Function)

	origC, ok := original.Params[2].(types.Var)
	require.True(t, ok)
	instC, ok := instantiated.Params[2].(types.Var)
	require.True(t, ok)
	assert.NotEqual(t, origC.Name, instC.Name, "instantiate must allocate fresh variables, not reuse x's own")
}

// TestLetPolymorphism checks that id(1); id("a") yields number and string
// respectively, not a mismatch.
func TestLetPolymorphism(t *testing.T) {
	env := types.Env{}.Add("id", types.Forall(typeset.Of("x"), types.Function{
		Params: []types.Type{types.Var{Name: "x"}},
		Return: types.Var{Name: "x"},
	}))
	ctx := infer.NewContext(env)

	ty1, _, ctx1, err := infer.InferExpr(ctx, &ast.Call{Func: ident("id"), Args: []ast.Expr{num(1)}})
	require.NoError(t, err)
	assert.True(t, ty1.Equal(types.Number))

	ty2, _, _, err := infer.InferExpr(ctx1, &ast.Call{Func: ident("id"), Args: []ast.Expr{str("a")}})
	require.NoError(t, err)
	assert.True(t, ty2.Equal(types.String))
}

// Scenario 5: if (cond) { return 1; } else { return "s"; } yields number | string.
func TestIfElseUnionReturnType(t *testing.T) {
	ctx := infer.NewContext(types.Env{}.Add("cond", types.Bare(types.Boolean)))

	fn := &ast.Function{
		Body: &ast.Block{Body: []ast.Expr{
			&ast.If{
				Cond: ident("cond"),
				Then: &ast.Block{Body: []ast.Expr{&ast.Return{Rhs: num(1)}}},
				Else: &ast.Block{Body: []ast.Expr{&ast.Return{Rhs: str("s")}}},
			},
		}},
	}

	ty, _, _, err := infer.InferExpr(ctx, fn)
	require.NoError(t, err)
	fnType := ty.(types.Function)
	assert.Equal(t, "number | string", fnType.Return.String())
}

// Scenario 6: if (cond) { return 1; } x = "s"; with no else yields
// number | undefined — fall-through contributes undefined.
func TestIfWithoutElseFallsThroughToUndefined(t *testing.T) {
	ctx := infer.NewContext(types.Env{}.
		Add("cond", types.Bare(types.Boolean)).
		Add("x", types.Bare(types.String)))

	fn := &ast.Function{
		Body: &ast.Block{Body: []ast.Expr{
			&ast.If{
				Cond: ident("cond"),
				Then: &ast.Block{Body: []ast.Expr{&ast.Return{Rhs: num(1)}}},
			},
			&ast.Assign{Name: "x", Rhs: str("s")},
		}},
	}

	ty, _, _, err := infer.InferExpr(ctx, fn)
	require.NoError(t, err)
	fnType := ty.(types.Function)
	assert.Equal(t, "number | undefined", fnType.Return.String())
}

// Scenario 7: let x = "s"; x = 123; raises an InferenceError at the
// assignment, with want=string, got=number.
func TestAssignMismatchProducesInferenceError(t *testing.T) {
	ctx := infer.NewContext(types.Env{})

	letX := &ast.Let{Name: "x", Rhs: str("s")}
	_, _, ctx1, err := infer.InferExpr(ctx, letX)
	require.NoError(t, err)

	assign := &ast.Assign{Name: "x", Rhs: num(123)}
	_, _, _, err = infer.InferExpr(ctx1, assign)
	require.Error(t, err)

	var infErr checkerr.InferenceError
	require.ErrorAs(t, err, &infErr)
	assert.True(t, infErr.Mismatch.Want.Equal(types.String))
	assert.True(t, infErr.Mismatch.Got.Equal(types.Number))
}

func TestUnboundVariableError(t *testing.T) {
	ctx := infer.NewContext(types.Env{})
	_, _, _, err := infer.InferExpr(ctx, ident("nope"))
	require.Error(t, err)
	var unbound checkerr.UnboundVariable
	require.ErrorAs(t, err, &unbound)
	assert.Equal(t, "nope", unbound.Name)
}

func TestBinaryPlusStructuralNumberCheck(t *testing.T) {
	ctx := infer.NewContext(types.Env{})

	ty, _, _, err := infer.InferExpr(ctx, &ast.Binary{Op: ast.OpAdd, Left: num(1), Right: num(2)})
	require.NoError(t, err)
	assert.True(t, ty.Equal(types.Number))

	ty, _, _, err = infer.InferExpr(ctx, &ast.Binary{Op: ast.OpAdd, Left: num(1), Right: str("x")})
	require.NoError(t, err)
	assert.True(t, ty.Equal(types.String))
}

func TestBinaryStrictEqYieldsBoolean(t *testing.T) {
	ctx := infer.NewContext(types.Env{})
	ty, _, _, err := infer.InferExpr(ctx, &ast.Binary{Op: ast.OpStrictEq, Left: num(1), Right: num(1)})
	require.NoError(t, err)
	assert.True(t, ty.Equal(types.Boolean))
}

func TestDefaultParameterInfersFromDefaultExpr(t *testing.T) {
	ctx := infer.NewContext(types.Env{})

	fn := &ast.Function{
		Params: []ast.Param{{Name: "a", Default: num(1)}},
		Body:   ident("a"),
	}
	ty, _, _, err := infer.InferExpr(ctx, fn)
	require.NoError(t, err)
	fnType := ty.(types.Function)
	require.Len(t, fnType.Params, 1)
	assert.True(t, fnType.Params[0].Equal(types.Number))
}

func TestUnsupportedOperatorIsReported(t *testing.T) {
	ctx := infer.NewContext(types.Env{})
	_, _, _, err := infer.InferExpr(ctx, &ast.Binary{Op: "-", Left: num(1), Right: num(1)})
	require.Error(t, err)
	var unsupported checkerr.Unsupported
	require.ErrorAs(t, err, &unsupported)
}

func TestAssignThroughPolymorphicBindingIsUnsupported(t *testing.T) {
	env := types.Env{}.Add("id", types.Forall(typeset.Of("x"), types.Function{
		Params: []types.Type{types.Var{Name: "x"}},
		Return: types.Var{Name: "x"},
	}))
	ctx := infer.NewContext(env)

	_, _, _, err := infer.InferExpr(ctx, &ast.Assign{Name: "id", Rhs: num(1)})
	require.Error(t, err)
	var unsupported checkerr.Unsupported
	require.ErrorAs(t, err, &unsupported)
}

func ExampleInferExpr() {
	ctx := infer.NewContext(types.Env{})
	ty, _, _, _ := infer.InferExpr(ctx, num(1))
	fmt.Println(ty)
	// Output: number
}
