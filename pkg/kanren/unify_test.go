package kanren

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnifyVarToAtom(t *testing.T) {
	x := NewVar("x")
	sub, ok := unify(x, 5, emptySubst, false)
	require.True(t, ok)
	assert.Equal(t, 5, sub.Walk(x))
}

func TestUnifyCommutativity(t *testing.T) {
	x := NewVar("x")
	sub1, ok1 := unify(x, 5, emptySubst, false)
	sub2, ok2 := unify(5, x, emptySubst, false)
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, sub1.Walk(x), sub2.Walk(x))
}

func TestUnifyCompoundStructural(t *testing.T) {
	x := NewVar("x")
	sub, ok := unify(Cons(1, Cons(x, Nil)), Cons(1, Cons(2, Nil)), emptySubst, false)
	require.True(t, ok)
	assert.Equal(t, 2, sub.Walk(x))
}

func TestUnifyCompoundArityMismatchFails(t *testing.T) {
	_, ok := unify(Tuple{1, 2}, Tuple{1, 2, 3}, emptySubst, false)
	assert.False(t, ok)
}

func TestUnifyAtomMismatchFails(t *testing.T) {
	_, ok := unify(1, 2, emptySubst, false)
	assert.False(t, ok)
}

func TestUnifySoundness(t *testing.T) {
	x, y := NewVar("x"), NewVar("y")
	sub, ok := unify(Tuple{x, 2}, Tuple{1, y}, emptySubst, false)
	require.True(t, ok)
	assert.Equal(t, sub.WalkStar(Tuple{x, 2}), sub.WalkStar(Tuple{1, y}))
}

func TestOccursCheckRejectsCyclicBinding(t *testing.T) {
	x := NewVar("x")
	_, ok := unify(x, Cons(x, Nil), emptySubst, true)
	assert.False(t, ok)
}

func TestNoOccursCheckAllowsCyclicBinding(t *testing.T) {
	x := NewVar("x")
	_, ok := unify(x, Cons(x, Nil), emptySubst, false)
	assert.True(t, ok)
}

func TestRegisterUnifyOverridesDefault(t *testing.T) {
	type bag []int
	RegisterUnify(bag{}, bag{}, func(u, v Term, sub *Substitution, occursCheck bool) (*Substitution, bool) {
		a, b := u.(bag), v.(bag)
		if len(a) != len(b) {
			return sub, false
		}
		counts := map[int]int{}
		for _, x := range a {
			counts[x]++
		}
		for _, x := range b {
			counts[x]--
		}
		for _, c := range counts {
			if c != 0 {
				return sub, false
			}
		}
		return sub, true
	})

	_, ok := unify(bag{1, 2}, bag{2, 1}, emptySubst, false)
	assert.True(t, ok)
}
