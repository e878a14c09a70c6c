package kanren

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// succAfterOne is a one-step relation over non-negative integers: each
// number rewrites to its successor until it reaches a ceiling, then no
// further step applies — enough structure to exercise Reduceo's fixed
// point without the cost of a real rewrite grammar.
func succAfterOne(ceiling int) func(a, b Term) Goal {
	return func(a, b Term) Goal {
		return func(s *State) Stream {
			walked := s.Walk(a)
			n, ok := walked.(int)
			if !ok || n >= ceiling {
				return EmptyStream
			}
			return Eq(b, n+1)(s)
		}
	}
}

func TestReduceoReachesFixedPoint(t *testing.T) {
	rstar := Reduceo(succAfterOne(3))
	s := freshState()
	c := s.Fresh("c")

	out := rstar(0, c)(s).Take(5)
	require.Len(t, out, 1)
	assert.Equal(t, 3, out[0].Walk(c))
}

func TestReduceoAcceptsAlreadyFixed(t *testing.T) {
	rstar := Reduceo(succAfterOne(0))
	s := freshState()
	c := s.Fresh("c")

	out := rstar(0, c)(s).Take(5)
	require.Len(t, out, 1)
	assert.Equal(t, 0, out[0].Walk(c))
}

// identityStep never fires, so Walko's walk should reduce to plain
// structural equality — the round-trip property (spec §8).
func identityStep(a, b Term) Goal { return Fail }

func TestWalkoRoundTripGroundTerm(t *testing.T) {
	term := ListOf(1, 2, 3)

	s1 := freshState()
	q1 := s1.Fresh("q")
	out1 := Walko(identityStep, term, q1)(s1).Take(10)
	require.NotEmpty(t, out1)
	assertAnyEqual(t, out1, q1, term)

	s2 := freshState()
	q2 := s2.Fresh("q")
	out2 := Walko(identityStep, q2, term)(s2).Take(10)
	require.NotEmpty(t, out2)
	assertAnyEqual(t, out2, q2, term)
}

func assertAnyEqual(t *testing.T, states []*State, v Term, want Term) {
	t.Helper()
	for _, s := range states {
		if canonicalKey(reifyWalked(s.WalkStar(v))) == canonicalKey(reifyWalked(want)) {
			return
		}
	}
	t.Fatalf("no state reified %v to %v", v, want)
}

// arithStep implements add(x,x) <-> mul(2,x) and log(exp(x)) <-> x as
// a one-step rewrite, the relation from the spec's fixed-point seed
// scenario.
type addTerm struct{ X, Y Term }

func (a addTerm) Head() Term       { return "add" }
func (a addTerm) Children() []Term { return []Term{a.X, a.Y} }
func (a addTerm) Reconstruct(head Term, children []Term) Term {
	return addTerm{X: children[0], Y: children[1]}
}

type mulTerm struct{ X, Y Term }

func (m mulTerm) Head() Term       { return "mul" }
func (m mulTerm) Children() []Term { return []Term{m.X, m.Y} }
func (m mulTerm) Reconstruct(head Term, children []Term) Term {
	return mulTerm{X: children[0], Y: children[1]}
}

type logTerm struct{ X Term }

func (l logTerm) Head() Term       { return "log" }
func (l logTerm) Children() []Term { return []Term{l.X} }
func (l logTerm) Reconstruct(head Term, children []Term) Term {
	return logTerm{X: children[0]}
}

type expTerm struct{ X Term }

func (e expTerm) Head() Term       { return "exp" }
func (e expTerm) Children() []Term { return []Term{e.X} }
func (e expTerm) Reconstruct(head Term, children []Term) Term {
	return expTerm{X: children[0]}
}

// arithStep is written relationally (pure Eq/Conde over the rewrite
// equations) rather than by switching on a's concrete Go type, so it
// works whichever of a or b is bound — the bidirectionality Reduceo
// and Walko both require (spec §4.8).
func arithStep(a, b Term) Goal {
	return Conde(
		[]Goal{Fresh(1, func(vs []*Var) Goal {
			x := Term(vs[0])
			return Lall(Eq(a, addTerm{X: x, Y: x}), Eq(b, mulTerm{X: 2, Y: x}))
		})},
		[]Goal{Fresh(1, func(vs []*Var) Goal {
			x := Term(vs[0])
			return Lall(Eq(a, mulTerm{X: 2, Y: x}), Eq(b, addTerm{X: x, Y: x}))
		})},
		[]Goal{Fresh(1, func(vs []*Var) Goal {
			x := Term(vs[0])
			return Lall(Eq(a, logTerm{X: expTerm{X: x}}), Eq(b, x))
		})},
	)
}

func TestWalkoReductionFixedPointScenario(t *testing.T) {
	input := addTerm{X: addTerm{X: 3, Y: 3}, Y: expTerm{X: logTerm{X: expTerm{X: 5}}}}

	s := freshState()
	e := s.Fresh("e")
	rstar := Reduceo(arithStep)

	states := Walko(rstar, input, e)(s).Take(50)
	require.NotEmpty(t, states)

	seen := map[string]bool{}
	for _, st := range states {
		seen[canonicalKey(reifyWalked(st.WalkStar(e)))] = true
	}
	want := []Term{
		addTerm{X: mulTerm{X: 2, Y: 3}, Y: expTerm{X: 5}},
		addTerm{X: addTerm{X: 3, Y: 3}, Y: expTerm{X: 5}},
		addTerm{X: mulTerm{X: 2, Y: 3}, Y: expTerm{X: logTerm{X: expTerm{X: 5}}}},
	}
	for _, w := range want {
		assert.True(t, seen[canonicalKey(reifyWalked(w))], "missing expected reduction %v", w)
	}
	// The unreduced input itself must not survive as a spurious
	// "reduction" of itself: Walko's root alternatives are R(a,b) or
	// structural decomposition, never an unconditional eq(a,b).
	assert.False(t, seen[canonicalKey(reifyWalked(input))], "input survived undecomposed as a reduction of itself")
	assert.Len(t, seen, len(want), "expected exactly %d distinct reductions, got %v", len(want), seen)
}

func TestWalkoExpansionFindsAlternateForms(t *testing.T) {
	target := mulTerm{X: 2, Y: 5}
	rstar := Reduceo(arithStep)

	s := freshState()
	e := s.Fresh("e")
	states := Walko(rstar, e, target)(s).Take(20)
	require.NotEmpty(t, states)

	seen := map[string]bool{}
	for _, st := range states {
		seen[canonicalKey(reifyWalked(st.WalkStar(e)))] = true
	}
	assert.True(t, seen[canonicalKey(reifyWalked(addTerm{X: 5, Y: 5}))])
}
