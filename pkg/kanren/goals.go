package kanren

import "sync/atomic"

// Goal is a function from State to Stream (spec §4.4). Goals are pure:
// they never mutate the State they are given, only build new ones.
type Goal func(*State) Stream

// Succeed is the goal that always succeeds, unchanged.
var Succeed Goal = func(s *State) Stream { return UnitStream(s) }

// Fail is the goal that always fails.
var Fail Goal = func(s *State) Stream { return EmptyStream }

// topLevelVarCounter mints IDs for variables created before any State
// exists (NewVar, NewVars — used to declare the query variable passed to
// Run, and any variables captured in a goal built outside of Fresh).
// Once evaluation starts, variables minted during the run go through
// State.Fresh instead, which counts per-run rather than process-wide
// (SPEC_FULL §9) — this is the one piece of unavoidable package-level
// mutable state, needed because a variable must exist before the
// State that will eventually bind it does.
var topLevelVarCounter uint64

// NewVar creates a new logic variable with an optional debug name (spec
// §6's var(name?)).
func NewVar(name string) *Var {
	id := atomic.AddUint64(&topLevelVarCounter, 1)
	return &Var{id: id, name: name}
}

// NewVars creates k fresh, anonymous logic variables (spec §6's vars(k)).
func NewVars(k int) []*Var {
	out := make([]*Var, k)
	for i := range out {
		out[i] = NewVar("")
	}
	return out
}

// Eq unifies u and v, extending the substitution and revalidating the
// constraint store (spec §4.4/§4.2). It yields empty on failure and a
// single extended state on success.
func Eq(u, v Term) Goal {
	return func(s *State) Stream {
		newSub, ok := unify(u, v, s.subst, s.occursCheck)
		if !ok {
			s.logger.Trace("eq", "result", "fail", "u", u, "v", v)
			return EmptyStream
		}
		newConstraints, ok := s.constraints.revalidate(newSub)
		if !ok {
			s.logger.Trace("eq", "result", "constraint-violated", "u", u, "v", v)
			return EmptyStream
		}
		s.logger.Trace("eq", "result", "ok", "u", u, "v", v)
		return UnitStream(s.withSubst(newSub).withConstraints(newConstraints))
	}
}

// Conj builds the conjunction of two goals: g2 is evaluated against
// every state g1 produces, via the fair bind combinator (spec §4.4).
func Conj(g1, g2 Goal) Goal {
	return func(s *State) Stream { return bind(g1(s), g2) }
}

// Lall is n-ary conjunction, left-associative (spec §4.4): Lall() is
// Succeed, Lall(g) is g, and Lall(g1, g2, g3) is Conj(Conj(g1, g2), g3).
func Lall(goals ...Goal) Goal {
	switch len(goals) {
	case 0:
		return Succeed
	case 1:
		return goals[0]
	default:
		last := len(goals) - 1
		return Conj(Lall(goals[:last]...), goals[last])
	}
}

// Disj builds the disjunction of two goals via the fair mplus
// combinator (spec §4.4). Each arm is wrapped in its own suspension so
// that constructing a Disj never itself invokes either goal — only
// pulling from the resulting stream does.
func Disj(g1, g2 Goal) Goal {
	return func(s *State) Stream {
		return mplus(
			suspend(func() Stream { return g1(s) }),
			suspend(func() Stream { return g2(s) }),
		)
	}
}

// Lany is n-ary disjunction (spec §4.4), nested to the right:
// Lany(g1, g2, g3) is Disj(g1, Disj(g2, g3)).
func Lany(goals ...Goal) Goal {
	switch len(goals) {
	case 0:
		return Fail
	case 1:
		return goals[0]
	default:
		return Disj(goals[0], Lany(goals[1:]...))
	}
}

// Conde takes clauses of conjoined goals and disjoins them:
// Conde([g11,g12], [g21,g22]) = Lany(Lall(g11,g12), Lall(g21,g22))
// (spec §4.4).
func Conde(clauses ...[]Goal) Goal {
	arms := make([]Goal, len(clauses))
	for i, clause := range clauses {
		arms[i] = Lall(clause...)
	}
	return Lany(arms...)
}

// Fresh introduces k fresh variables scoped to the current run and
// conjoins body(vars) against the state (spec §4.4's fresh(k, body)).
// Variables are minted via State.Fresh, so every invocation — even
// the same Fresh call revisited across many states in a backtracking
// search — gets variables unique within that run.
func Fresh(k int, body func(vars []*Var) Goal) Goal {
	return func(s *State) Stream {
		vars := make([]*Var, k)
		for i := range vars {
			vars[i] = s.Fresh("")
		}
		return body(vars)(s)
	}
}

// Onceo yields at most one state from g (spec §4.6).
func Onceo(g Goal) Goal {
	return func(s *State) Stream {
		states := g(s).Take(1)
		if len(states) == 0 {
			return EmptyStream
		}
		return UnitStream(states[0])
	}
}

// GroundGoal succeeds iff walk*(v, S) contains no variable (spec
// §4.6's ground(v)). Named GroundGoal rather than Ground to avoid
// colliding with the internal ground() helper used by constraints.
func GroundGoal(v Term) Goal {
	return func(s *State) Stream {
		if ground(s.WalkStar(v)) {
			return UnitStream(s)
		}
		return EmptyStream
	}
}

// Neq posts a disequality constraint between u and v (spec §4.5/§4.6).
func Neq(u, v Term) Goal {
	return func(s *State) Stream {
		next, ok := s.constraints.post(s.subst, newDisequality(u, v))
		if !ok {
			return EmptyStream
		}
		return UnitStream(s.withConstraints(next))
	}
}

// Typeo posts a type-membership constraint: once v is ground, pred
// must hold over walk*(v, S); pending until then (spec §4.5/§4.6).
func Typeo(v Term, name string, pred func(Term) bool) Goal {
	return func(s *State) Stream {
		next, ok := s.constraints.post(s.subst, &typeConstraint{term: v, name: name, predicate: pred})
		if !ok {
			return EmptyStream
		}
		return UnitStream(s.withConstraints(next))
	}
}

// NotTypeo is the negated form of Typeo (spec §4.5/§6).
func NotTypeo(v Term, name string, pred func(Term) bool) Goal {
	return func(s *State) Stream {
		next, ok := s.constraints.post(s.subst, &typeConstraint{term: v, name: name, predicate: pred, negate: true})
		if !ok {
			return EmptyStream
		}
		return UnitStream(s.withConstraints(next))
	}
}

// Absento constrains absent to never occur anywhere within term, at
// any level of structure (SPEC_FULL §7).
func Absento(absent, term Term) Goal {
	return func(s *State) Stream {
		next, ok := s.constraints.post(s.subst, &absenceConstraint{needle: absent, haystack: term})
		if !ok {
			return EmptyStream
		}
		return UnitStream(s.withConstraints(next))
	}
}
