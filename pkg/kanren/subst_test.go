package kanren

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstitutionWalkFollowsChain(t *testing.T) {
	x, y, z := NewVar("x"), NewVar("y"), NewVar("z")
	sub := emptySubst.Extend(x, y).Extend(y, z).Extend(z, 42)

	assert.Equal(t, 42, sub.Walk(x))
	assert.Equal(t, 42, sub.WalkStar(x))
}

func TestSubstitutionWalkStarRebuildsCompounds(t *testing.T) {
	x, y := NewVar("x"), NewVar("y")
	sub := emptySubst.Extend(x, 1).Extend(y, 2)

	out := sub.WalkStar(Cons(x, Cons(y, Nil)))
	require.IsType(t, List{}, out)
	cell := out.(List)
	assert.Equal(t, 1, cell.Car)
	cell2 := cell.Cdr.(List)
	assert.Equal(t, 2, cell2.Car)
	assert.True(t, IsNil(cell2.Cdr))
}

func TestExtendRejectsSelfBinding(t *testing.T) {
	x := NewVar("x")
	sub := emptySubst.Extend(x, x)
	assert.Equal(t, emptySubst, sub)
}

func TestExtendDoesNotMutateReceiver(t *testing.T) {
	x, y := NewVar("x"), NewVar("y")
	base := emptySubst.Extend(x, 1)
	extended := base.Extend(y, 2)

	_, baseHasY := base.Lookup(y)
	assert.False(t, baseHasY)
	v, ok := extended.Lookup(y)
	assert.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestDiffBindingsReportsOnlyNewKeys(t *testing.T) {
	x, y := NewVar("x"), NewVar("y")
	old := emptySubst.Extend(x, 1)
	next := old.Extend(y, 2)

	diff := diffBindings(old, next)
	require.Len(t, diff, 1)
	assert.Equal(t, y, diff[0].V)
	assert.Equal(t, 2, diff[0].T)
}
