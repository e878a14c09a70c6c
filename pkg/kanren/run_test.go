package kanren

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunScenarioSimpleEq(t *testing.T) {
	x := NewVar("x")
	results, err := Run(1, x, Eq(x, 5))
	require.NoError(t, err)
	assert.Equal(t, []Term{5}, results)
}

func TestRunScenarioMultiVarQuery(t *testing.T) {
	x, z := NewVar("x"), NewVar("z")
	results, err := Run(1, Tuple{x, z}, Eq(x, z), Eq(z, 3))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, Tuple{3, 3}, results[0])
}

func TestRunScenarioCompoundUnification(t *testing.T) {
	x := NewVar("x")
	results, err := Run(1, x, Eq(Tuple{1, 2}, Tuple{1, x}))
	require.NoError(t, err)
	assert.Equal(t, []Term{2}, results)
}

func TestRunScenarioMembershipIntersection(t *testing.T) {
	x := NewVar("x")
	results, err := Run(0, x, Membero(x, ListOf(1, 2, 3)), Membero(x, ListOf(2, 3, 4)))
	require.NoError(t, err)
	assert.ElementsMatch(t, []Term{2, 3}, results)
}

func TestRunScenarioNeqNarrowsMembership(t *testing.T) {
	x := NewVar("x")
	results, err := Run(0, x, Neq(x, 1), Neq(x, 3), Membero(x, ListOf(1, 2, 3)))
	require.NoError(t, err)
	assert.Equal(t, []Term{2}, results)
}

func TestRunPropagatesMemberoNonGroundError(t *testing.T) {
	x, tail := NewVar("x"), NewVar("tail")
	_, err := Run(1, x, Membero(x, Cons(1, tail)))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNonGround)
}

func TestRunDeduplicatesByReifiedValue(t *testing.T) {
	x := NewVar("x")
	results, err := Run(0, x, Disj(Eq(x, 1), Eq(x, 1)))
	require.NoError(t, err)
	assert.Equal(t, []Term{1}, results)
}

func TestRunExhaustsWhenNIsZero(t *testing.T) {
	x := NewVar("x")
	results, err := Run(0, x, Membero(x, ListOf(1, 2, 3)))
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestRunScenarioMultiVarQueryDeepEqual(t *testing.T) {
	x, z := NewVar("x"), NewVar("z")
	results, err := Run(1, Tuple{x, z}, Eq(x, z), Eq(z, 3))
	require.NoError(t, err)
	require.Len(t, results, 1)

	want := Tuple{3, 3}
	if diff := cmp.Diff(want, results[0]); diff != "" {
		t.Fatalf("reified tuple mismatch (-want +got):\n%s", diff)
	}
}

func TestReifyStabilityAcrossCalls(t *testing.T) {
	x, y := NewVar("x"), NewVar("y")
	s := newInitialState(resolveOptions(nil))
	s2, ok := unify(x, Cons(y, Nil), s.subst, false)
	require.True(t, ok)
	state := s.withSubst(s2)

	first := Reify(x, state)
	second := Reify(x, state)
	assert.Equal(t, canonicalKey(first), canonicalKey(second))
}
