package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/velatype/vela/types"
)

// TestComposeSoundness checks the substitution-application soundness law:
// apply(compose(s1, s2), t) == apply(s1, apply(s2, t)).
func TestComposeSoundness(t *testing.T) {
	v0, v1 := types.Var{Name: "T0"}, types.Var{Name: "T1"}
	s1 := types.Singleton("T0", types.Number)
	s2 := types.Singleton("T1", v0)

	target := types.Function{Params: []types.Type{v1}, Return: v0}

	lhs := target.Apply(types.Compose(s1, s2))
	rhs := target.Apply(s2).Apply(s1)

	assert.True(t, lhs.Equal(rhs))
}

func TestComposeConflictS1Wins(t *testing.T) {
	s1 := types.Singleton("T0", types.Number)
	s2 := types.Singleton("T0", types.String)

	composed := types.Compose(s1, s2)
	got, ok := composed.Get("T0")
	assert.True(t, ok)
	assert.True(t, got.Equal(types.Number), "s1's binding should win on conflict")
}

func TestComposeAllLaterSubstitutionsRefineEarlier(t *testing.T) {
	// T0 is first bound to T1, then T1 is resolved to number; the final
	// accumulated substitution should map T0 all the way to number.
	s1 := types.Singleton("T0", types.Var{Name: "T1"})
	s2 := types.Singleton("T1", types.Number)

	acc := types.ComposeAll(s1, s2)
	result := types.Var{Name: "T0"}.Apply(acc)
	assert.True(t, result.Equal(types.Number))
}
