package unify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/velatype/vela/types"
	"github.com/velatype/vela/unify"
)

// TestUnifySymmetryOnGroundTypes checks that unify(t, t) succeeds with the
// empty substitution for every ground t.
func TestUnifySymmetryOnGroundTypes(t *testing.T) {
	cases := []types.Type{
		types.Number,
		types.Function{Params: []types.Type{types.Number}, Return: types.String},
		types.Union{Alternatives: []types.Type{types.Number, types.String}},
	}
	for _, c := range cases {
		sub, err := unify.Unify(c, c)
		assert.NoError(t, err)
		assert.Empty(t, sub)
	}
}

func TestUnifyNamedMismatch(t *testing.T) {
	_, err := unify.Unify(types.Number, types.String)
	assert.Error(t, err)
	var mismatch unify.Mismatch
	assert.ErrorAs(t, err, &mismatch)
}

func TestUnifyVarBindsEitherSide(t *testing.T) {
	v := types.Var{Name: "T0"}

	s1, err := unify.Unify(v, types.Number)
	assert.NoError(t, err)
	bound, ok := s1.Get("T0")
	assert.True(t, ok)
	assert.True(t, bound.Equal(types.Number))

	s2, err := unify.Unify(types.Number, v)
	assert.NoError(t, err)
	bound2, ok := s2.Get("T0")
	assert.True(t, ok)
	assert.True(t, bound2.Equal(types.Number))
}

// TestOccursCheckFailsOutsideUnion checks that a genuine self-referential
// binding outside a Union fails the occurs check.
func TestOccursCheckFailsOutsideUnion(t *testing.T) {
	v := types.Var{Name: "T0"}
	cyclic := types.Function{Params: []types.Type{v}, Return: types.Number}

	_, err := unify.Unify(v, cyclic)
	assert.Error(t, err)
	var self unify.SelfReference
	assert.ErrorAs(t, err, &self)
}

// TestOccursCheckLoopholeInsideUnion checks the deliberate looseness of
// varBind: a self-reference hidden inside a Union alternative suppresses
// the binding instead of failing.
func TestOccursCheckLoopholeInsideUnion(t *testing.T) {
	v := types.Var{Name: "T0"}
	cyclic := types.Union{Alternatives: []types.Type{v, types.Number}}

	sub, err := unify.Unify(v, cyclic)
	assert.NoError(t, err)
	assert.Empty(t, sub)
}

func TestUnifyFunctionTruncatesLeftToRightArity(t *testing.T) {
	left := types.Function{
		Params: []types.Type{types.Number, types.String, types.Boolean},
		Return: types.Null,
	}
	right := types.Function{
		Params: []types.Type{types.Number, types.String},
		Return: types.Null,
	}
	_, err := unify.Unify(left, right)
	assert.NoError(t, err, "extra left-side parameters beyond right's arity must be ignored")
}

// TestUnionUnionRequiresRightNoLargerThanLeft checks rule 5.
func TestUnionUnionRequiresRightNoLargerThanLeft(t *testing.T) {
	left := types.Union{Alternatives: []types.Type{types.Number}}
	right := types.Union{Alternatives: []types.Type{types.Number, types.String}}
	_, err := unify.Unify(left, right)
	assert.Error(t, err)
}

func TestUnionLeftAcceptsAnyMatchingMember(t *testing.T) {
	left := types.Union{Alternatives: []types.Type{types.Number, types.String}}
	_, err := unify.Unify(left, types.String)
	assert.NoError(t, err)
}

// TestNonUnionLeftRejectsPartialUnion checks rule 7: T accommodates
// Union(R) only when every member of R unifies with T.
func TestNonUnionLeftRejectsPartialUnion(t *testing.T) {
	right := types.Union{Alternatives: []types.Type{types.Number, types.String}}
	_, err := unify.Unify(types.Number, right)
	assert.Error(t, err, "assigning number|string into a number-typed slot must fail")
}

func TestNonUnionLeftAcceptsHomogeneousUnion(t *testing.T) {
	right := types.Union{Alternatives: []types.Type{types.Number, types.Number}}
	_, err := unify.Unify(types.Number, right)
	assert.NoError(t, err)
}
