package kanren

import "fmt"

// ReifiedVar is the placeholder a still-unbound variable becomes once
// reified (spec §4.3/§6): printed as "~name" for a named variable or
// "~_k" for an anonymous one, where k is assigned in left-to-right
// first-occurrence order within that single reification — independent
// of the variable's internal, creation-order ID.
type ReifiedVar struct {
	Label string
}

func (r ReifiedVar) String() string { return "~" + r.Label }

// Reify computes walk*(t, S) and renames any variables still present
// in the result to stable ReifiedVar placeholders (spec §4.3).
func Reify(t Term, s *State) Term {
	return reifyWalked(s.WalkStar(t))
}

func reifyWalked(walked Term) Term {
	counter := 0
	seen := map[*Var]ReifiedVar{}
	var rec func(Term) Term
	rec = func(t Term) Term {
		if v, ok := t.(*Var); ok {
			if rv, ok := seen[v]; ok {
				return rv
			}
			label := fmt.Sprintf("_%d", counter)
			if v.name != "" {
				label = v.name
			}
			counter++
			rv := ReifiedVar{Label: label}
			seen[v] = rv
			return rv
		}
		head, children, reconstruct, ok := asCompound(t)
		if !ok {
			return t
		}
		newHead := rec(head)
		newChildren := make([]Term, len(children))
		for i, c := range children {
			newChildren[i] = rec(c)
		}
		return reconstruct(newHead, newChildren)
	}
	return rec(walked)
}

// canonicalKey renders a reified term to a string suitable for
// deduplication (spec §9 Open Question: dedupe by reified value, not
// by state identity). Reified terms are, by construction, free of
// live variable pointers, so their printed form is a stable,
// comparable key across states.
func canonicalKey(t Term) string {
	return fmt.Sprintf("%#v", t)
}

// Run drives goal to up to n solutions against q and returns their
// reified values (spec §4.9). n == 0 means exhaust the stream — only
// safe when the goal is known to have finitely many solutions.
// Duplicate suppression is by reified value (spec §9 Open Question).
//
// Any typed error raised by a goal (spec §7 — e.g. Membero's default
// non-ground policy) aborts the run and is returned instead of a
// partial result.
func Run(n int, q Term, goals ...Goal) (results []Term, err error) {
	return RunWithOptions(n, q, nil, goals...)
}

// RunWithOptions is Run with explicit RunOptions (logger, occurs
// check).
func RunWithOptions(n int, q Term, opts []RunOption, goals ...Goal) (results []Term, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				results = nil
				return
			}
			panic(r)
		}
	}()

	ro := resolveOptions(opts)
	state := newInitialState(ro)
	goal := Lall(goals...)
	stream := goal(state)

	seen := map[string]bool{}
	for n <= 0 || len(results) < n {
		forced := stream.force()
		if !forced.isUnit {
			break
		}
		reified := Reify(q, forced.head)
		key := canonicalKey(reified)
		if !seen[key] {
			seen[key] = true
			results = append(results, reified)
		}
		if forced.thunk == nil {
			break
		}
		stream = forced.thunk()
	}
	return results, nil
}
