package kanren

import "fmt"

// groundSequence walks a cons-list into a Go slice, returning ok=false
// if any part of it — spine or elements — is not fully ground. A
// dotted (improper) list is accepted too, with its terminal atom
// appended as the final item.
func groundSequence(walked Term) ([]Term, bool) {
	if !ground(walked) {
		return nil, false
	}
	var items []Term
	cur := walked
	for {
		if IsNil(cur) {
			return items, true
		}
		l, ok := cur.(List)
		if !ok {
			items = append(items, cur)
			return items, true
		}
		items = append(items, l.Car)
		cur = l.Cdr
	}
}

// Membero relates x to each element of coll in turn (spec §4.6). The
// default policy for a non-ground coll is to raise a typed error at
// query time rather than silently fail or block forever — this is
// surfaced as a Go error from Run, not swallowed into an empty stream
// (spec §7).
func Membero(x, coll Term) Goal {
	return func(s *State) Stream {
		walked := s.WalkStar(coll)
		items, ok := groundSequence(walked)
		if !ok {
			panic(wrap(ErrNonGround, fmt.Sprintf("membero: collection is not ground: %v", walked)))
		}
		arms := make([]Goal, len(items))
		for i, item := range items {
			arms[i] = Eq(x, item)
		}
		return Lany(arms...)(s)
	}
}

// Conso relates car, cdr and pair such that pair = Cons(car, cdr)
// (spec §4.6). Works in any direction: decomposing a bound pair or
// constructing one from bound car/cdr.
func Conso(car, cdr, pair Term) Goal {
	return Eq(pair, Cons(car, cdr))
}

// Heado relates head to the car of pair (spec §4.6).
func Heado(head, pair Term) Goal {
	return Fresh(1, func(vs []*Var) Goal { return Conso(head, vs[0], pair) })
}

// Tailo relates tail to the cdr of pair (spec §4.6).
func Tailo(tail, pair Term) Goal {
	return Fresh(1, func(vs []*Var) Goal { return Conso(vs[0], tail, pair) })
}

// Appendo relates l, s and out such that out is l appended with s
// (spec §4.6), the classic two-clause recursive relation: either l is
// empty and s equals out, or l has a head a and tail d, out has the
// same head a with some tail res, and appendo(d, s, res) holds. Each
// recursive call only builds a Goal value (a func), which isn't
// invoked until the stream driving it actually reaches that point, so
// this terminates on an infinite stream the same way every other
// recursive relation here does — no explicit thunk wrapper needed
// beyond what Disj and bind already provide.
func Appendo(l, s, out Term) Goal {
	return Conde(
		[]Goal{Eq(l, Nil), Eq(s, out)},
		[]Goal{Fresh(3, func(vs []*Var) Goal {
			a, d, res := vs[0], vs[1], vs[2]
			return Lall(
				Eq(l, Cons(a, d)),
				Eq(out, Cons(a, res)),
				Appendo(d, s, res),
			)
		})},
	)
}
