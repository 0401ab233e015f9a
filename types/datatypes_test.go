package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/velatype/vela/types"
)

func TestNamedEquality(t *testing.T) {
	assert.True(t, types.Number.Equal(types.Named{Name: "number"}))
	assert.False(t, types.Number.Equal(types.String))
}

func TestFunctionString(t *testing.T) {
	fn := types.Function{Params: []types.Type{types.Number, types.String}, Return: types.Boolean}
	assert.Equal(t, "(number, string) => boolean", fn.String())
}

func TestUnionString(t *testing.T) {
	u := types.Union{Alternatives: []types.Type{types.Number, types.String}}
	assert.Equal(t, "number | string", u.String())
}

func TestUnionEqualityIsMultiset(t *testing.T) {
	a := types.Union{Alternatives: []types.Type{types.Number, types.String}}
	b := types.Union{Alternatives: []types.Type{types.String, types.Number}}
	assert.True(t, a.Equal(b), "unions should compare equal regardless of member order")

	c := types.Union{Alternatives: []types.Type{types.Number, types.Number}}
	assert.False(t, a.Equal(c))
}

func TestNewUnionUnwrapsSingleton(t *testing.T) {
	result := types.NewUnion([]types.Type{types.Number})
	assert.Equal(t, types.Number, result)

	multi := types.NewUnion([]types.Type{types.Number, types.String})
	assert.IsType(t, types.Union{}, multi)
}

func TestContainsOccursCheck(t *testing.T) {
	v := types.Var{Name: "T0"}
	fn := types.Function{Params: []types.Type{v}, Return: types.Number}
	assert.True(t, types.Contains(fn, "T0"))
	assert.False(t, types.Contains(fn, "T1"))
}

func TestFreeVars(t *testing.T) {
	v0, v1 := types.Var{Name: "T0"}, types.Var{Name: "T1"}
	fn := types.Function{Params: []types.Type{v0}, Return: v1}
	fv := fn.FreeVars()
	assert.Equal(t, 2, fv.Len())
	assert.True(t, fv.Contains("T0"))
	assert.True(t, fv.Contains("T1"))
}
