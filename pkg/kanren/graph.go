package kanren

// Reduceo lifts a one-step rewrite relation step(a, b) — "a rewrites
// to b in one step" — into its reflexive-transitive closure R*(a, c):
// "c is reachable from a by zero or more steps, and no further step
// applies to c" (spec §4.8, the fixed-point combinator).
//
// R*(a, c) is defined as R(a, m) ∧ R*(m, c) for some fresh m, plus a
// branch accepting c = a — but only when no step fires from a at all.
// Checking "no step fires" requires forcing at least the first
// element of step(a, m)'s stream; that one eager probe is inherent to
// the algorithm as specified, not a laziness bug — the two branches
// are still combined with mplus so neither is committed to before the
// other is forced.
func Reduceo(step func(a, b Term) Goal) func(a, c Term) Goal {
	var rstar func(a, c Term) Goal
	rstar = func(a, c Term) Goal {
		return func(s *State) Stream {
			m := s.Fresh("")
			steps := step(a, m)(s)

			takeStep := suspend(func() Stream {
				return bind(steps, func(s2 *State) Stream {
					return rstar(m, c)(s2)
				})
			})
			atFixedPoint := suspend(func() Stream {
				if !steps.IsEmpty() {
					return EmptyStream
				}
				return Eq(c, a)(s)
			})
			return mplus(takeStep, atFixedPoint)
		}
	}
	return rstar
}

// walkoConfig holds Walko's two optional knobs (spec §6's
// walko(R, a, b, head_goal=eq, null_type=None)).
type walkoConfig struct {
	headGoal func(x, y Term) Goal
	nullType Term
}

// WalkoOption configures Walko.
type WalkoOption func(*walkoConfig)

// WithHeadGoal overrides the goal used to relate two compounds' heads
// (default Eq).
func WithHeadGoal(g func(x, y Term) Goal) WalkoOption {
	return func(c *walkoConfig) { c.headGoal = g }
}

// WithNullType designates the sentinel atom that represents a
// genuinely empty compound (default Nil). When Walko invents a fresh
// term for an unbound side and the known side is an empty compound,
// it binds the unbound side directly to this sentinel instead of
// minting a placeholder head variable, so reification shows the
// sentinel rather than an anonymous variable.
func WithNullType(t Term) WalkoOption {
	return func(c *walkoConfig) { c.nullType = t }
}

func resolveWalkoConfig(opts []WalkoOption) *walkoConfig {
	cfg := &walkoConfig{headGoal: Eq, nullType: Nil}
	for _, o := range opts {
		o(cfg)
	}
	return cfg
}

// Walko relates two trees a and b by applying R at every position
// (spec §4.8, the structural walker). Two ways the relation can hold
// at the root, combined fairly:
//
//   - R(a, b) holds directly at the root;
//   - a and b are both compounds with related heads and children
//     that pairwise satisfy Walko, bottoming out at eq(a, b) once
//     neither side decomposes any further — the base case, where a
//     and b are both atoms or variables.
//
// Walko runs bidirectionally: a ground, b free (reduction); b ground,
// a free (expansion); or both free (enumeration), in which case the
// structural arm contributes only eq(a, b) and any further structure
// comes from R(a, b)'s own generativity.
func Walko(R func(a, b Term) Goal, a, b Term, opts ...WalkoOption) Goal {
	cfg := resolveWalkoConfig(opts)
	return Lany(
		R(a, b),
		walkoStructural(R, cfg, a, b),
	)
}

// walkoStructural implements Walko's structural arm: decompose a and
// b as compounds (inventing a matching shape for whichever side is
// not yet one) and relate them head-to-head and child-to-child. When
// neither side is a compound, this is the base case and the arm
// reduces to eq(a, b) directly (spec §4.8). Children are related via
// plain Lall, which is already fair by construction (bind never
// exhausts one operand before the other gets a turn), so an infinite
// descent into one child cannot starve its siblings or the root
// alternatives in Walko above (spec §4.8's fairness requirement).
func walkoStructural(R func(a, b Term) Goal, cfg *walkoConfig, a, b Term) Goal {
	return func(s *State) Stream {
		wa, wb := s.Walk(a), s.Walk(b)
		headA, childrenA, reconstructA, okA := asCompound(wa)
		headB, childrenB, reconstructB, okB := asCompound(wb)

		switch {
		case okA && okB:
			if len(childrenA) != len(childrenB) {
				return EmptyStream
			}
			goals := make([]Goal, 0, len(childrenA)+1)
			goals = append(goals, cfg.headGoal(headA, headB))
			for i := range childrenA {
				goals = append(goals, Walko(R, childrenA[i], childrenB[i], WithHeadGoal(cfg.headGoal), WithNullType(cfg.nullType)))
			}
			return Lall(goals...)(s)

		case okA && !okB:
			return inventShape(R, cfg, headA, childrenA, reconstructA, b, true)(s)

		case !okA && okB:
			return inventShape(R, cfg, headB, childrenB, reconstructB, a, false)(s)

		default:
			return Eq(a, b)(s)
		}
	}
}

// inventShape builds a fresh term of the same shape as a known
// compound (head, children, reconstruct) and unifies it with unbound,
// then relates the two shapes head-to-head and child-to-child. aIsKnown
// distinguishes which side of Walko's original (a, b) the known shape
// came from, so the per-child Walko calls preserve argument order.
func inventShape(R func(a, b Term) Goal, cfg *walkoConfig, knownHead Term, knownChildren []Term, reconstruct func(Term, []Term) Term, unbound Term, aIsKnown bool) Goal {
	if len(knownChildren) == 0 && cfg.nullType != nil {
		return Eq(unbound, cfg.nullType)
	}
	return Fresh(len(knownChildren)+1, func(vs []*Var) Goal {
		newHead := Term(vs[0])
		newChildren := make([]Term, len(knownChildren))
		for i := range newChildren {
			newChildren[i] = vs[i+1]
		}
		shaped := reconstruct(newHead, newChildren)

		goals := make([]Goal, 0, len(knownChildren)+2)
		goals = append(goals, Eq(unbound, shaped))
		if aIsKnown {
			goals = append(goals, cfg.headGoal(knownHead, newHead))
		} else {
			goals = append(goals, cfg.headGoal(newHead, knownHead))
		}
		for i := range knownChildren {
			if aIsKnown {
				goals = append(goals, Walko(R, knownChildren[i], newChildren[i], WithHeadGoal(cfg.headGoal), WithNullType(cfg.nullType)))
			} else {
				goals = append(goals, Walko(R, newChildren[i], knownChildren[i], WithHeadGoal(cfg.headGoal), WithNullType(cfg.nullType)))
			}
		}
		return Lall(goals...)
	})
}
