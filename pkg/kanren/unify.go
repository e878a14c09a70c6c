package kanren

import "reflect"

// unifyFunc attempts to unify two already-walked terms of specific
// types under sub, returning the (possibly) extended substitution and
// whether unification succeeded. Implementations must only extend sub
// (never replace bindings), so they can be threaded left-to-right
// across compound children (spec §4.2).
type unifyFunc func(u, v Term, sub *Substitution, occursCheck bool) (*Substitution, bool)

var unifyRegistry = map[[2]reflect.Type]unifyFunc{}

// RegisterUnify registers a custom unification procedure for a pair of
// concrete term types, resolved at unify time by a registry keyed on
// the pair of type tags (spec §9 design note 2). Unification is
// "open": built-in compound unification is only the default path: a
// user type implementing Compound already unifies correctly through
// it, but RegisterUnify lets a type override that default entirely
// (e.g. to unify sets modulo order). Registration is global,
// additive, and keyed on the unordered type pair; last registration
// wins, and fn is tried in both argument orders.
func RegisterUnify(uExemplar, vExemplar Term, fn unifyFunc) {
	ut, vt := reflect.TypeOf(uExemplar), reflect.TypeOf(vExemplar)
	unifyRegistry[[2]reflect.Type{ut, vt}] = fn
	unifyRegistry[[2]reflect.Type{vt, ut}] = func(u, v Term, sub *Substitution, occursCheck bool) (*Substitution, bool) {
		return fn(v, u, sub, occursCheck)
	}
}

func lookupUnify(u, v Term) (unifyFunc, bool) {
	if u == nil || v == nil {
		return nil, false
	}
	fn, ok := unifyRegistry[[2]reflect.Type{reflect.TypeOf(u), reflect.TypeOf(v)}]
	return fn, ok
}

// occurs reports whether v occurs anywhere within t under sub — used
// only when the caller opted into WithOccursCheck (off by default,
// spec §4.2/§9).
func occurs(v *Var, t Term, sub *Substitution) bool {
	t = sub.Walk(t)
	if other, ok := t.(*Var); ok {
		return other == v
	}
	head, children, _, ok := asCompound(t)
	if !ok {
		return false
	}
	if occurs(v, head, sub) {
		return true
	}
	for _, c := range children {
		if occurs(v, c, sub) {
			return true
		}
	}
	return false
}

// unify implements spec §4.2: walk both terms (top level only), then compare
// by variable identity, atom equality, or compound structure,
// extending sub as needed. It does not touch the constraint store —
// callers (Eq, and the compound recursion below) are responsible for
// threading the result through constraint revalidation.
func unify(u, v Term, sub *Substitution, occursCheck bool) (*Substitution, bool) {
	u = sub.Walk(u)
	v = sub.Walk(v)

	uVar, uIsVar := u.(*Var)
	vVar, vIsVar := v.(*Var)

	switch {
	case uIsVar && vIsVar && uVar == vVar:
		return sub, true
	case uIsVar:
		if occursCheck && occurs(uVar, v, sub) {
			return sub, false
		}
		return sub.Extend(uVar, v), true
	case vIsVar:
		if occursCheck && occurs(vVar, u, sub) {
			return sub, false
		}
		return sub.Extend(vVar, u), true
	}

	if fn, ok := lookupUnify(u, v); ok {
		return fn(u, v, sub, occursCheck)
	}

	uHead, uChildren, _, uIsCompound := asCompound(u)
	vHead, vChildren, _, vIsCompound := asCompound(v)
	if uIsCompound && vIsCompound {
		if len(uChildren) != len(vChildren) {
			return sub, false
		}
		newSub, ok := unify(uHead, vHead, sub, occursCheck)
		if !ok {
			return sub, false
		}
		for i := range uChildren {
			newSub, ok = unify(uChildren[i], vChildren[i], newSub, occursCheck)
			if !ok {
				return sub, false
			}
		}
		return newSub, true
	}
	if uIsCompound != vIsCompound {
		return sub, false
	}

	return sub, atomsEqual(u, v)
}

// atomsEqual compares two non-variable, non-compound terms by the
// host's own equality, falling back to false for types that aren't
// comparable (spec §3: "compared by the host's equality").
func atomsEqual(u, v Term) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return u == v
}
