package kanren

// Substitution is a persistent partial mapping from variables to
// terms (spec §3). Extending a Substitution never mutates the
// receiver; it returns a new one holding a full copy of the old one's
// map plus the new binding, which is adequate at the sizes these
// programs reach without the complexity of a real persistent trie
// (spec §5 permits, but does not require, structural sharing). Bindings are keyed by *Var pointer identity, not by a
// numeric ID: spec §3 is explicit that a variable's identity is the
// pointer itself ("identity-based"), and keying by pointer lets a
// disequality constraint recover the exact bound variables an
// extension introduced (see diffBindings in constraints.go) without a
// separate id→*Var table.
type Substitution struct {
	bindings map[*Var]Term
}

// emptySubst is the substitution every State starts from.
var emptySubst = &Substitution{}

// Extend returns a new Substitution with v bound to t. Binding a
// variable to itself is a caller bug the walker would otherwise loop
// on forever; it is rejected by returning the receiver unchanged,
// mirroring the teacher's same defensive check in Substitution.Bind.
func (s *Substitution) Extend(v *Var, t Term) *Substitution {
	if vt, ok := t.(*Var); ok && vt == v {
		return s
	}
	next := make(map[*Var]Term, len(s.bindings)+1)
	for k, v := range s.bindings {
		next[k] = v
	}
	next[v] = t
	return &Substitution{bindings: next}
}

// Lookup returns the term bound to v, or nil and false if v is unbound.
func (s *Substitution) Lookup(v *Var) (Term, bool) {
	t, ok := s.bindings[v]
	return t, ok
}

// Walk fully chases a chain of variable bindings: if t is a variable
// bound in s, follow it to its image, and keep following as long as
// that image is itself a bound variable, stopping at the first
// non-variable or unbound variable (spec §3). WalkStar relies on this
// chasing all the way through: it calls Walk exactly once before
// deciding whether the result has compound structure.
func (s *Substitution) Walk(t Term) Term {
	for {
		v, ok := t.(*Var)
		if !ok {
			return t
		}
		bound, ok := s.bindings[v]
		if !ok {
			return t
		}
		t = bound
	}
}

// WalkStar recursively walks t and rebuilds any compound structure so
// that no bound variable remains at the surface anywhere in the
// result (spec §3's walk*). Atoms and unbound variables are returned
// as-is.
func (s *Substitution) WalkStar(t Term) Term {
	t = s.Walk(t)
	head, children, reconstruct, ok := asCompound(t)
	if !ok {
		return t
	}
	newHead := s.WalkStar(head)
	newChildren := make([]Term, len(children))
	for i, c := range children {
		newChildren[i] = s.WalkStar(c)
	}
	return reconstruct(newHead, newChildren)
}

// Size returns the number of bindings.
func (s *Substitution) Size() int { return len(s.bindings) }

// diffBindings returns the bindings present in next but not in old —
// the "newly bound variables" spec §4.5 revalidates against, and the
// "extensions E" spec §4.5's disequality treatment narrows onto.
func diffBindings(old, next *Substitution) []struct {
	V *Var
	T Term
} {
	var out []struct {
		V *Var
		T Term
	}
	for v, t := range next.bindings {
		// Extend only ever adds keys, never rebinds an existing one
		// (a variable is only extended while still unbound), so a
		// simple key-presence check is enough — no need to compare
		// values, which could panic for uncomparable dynamic types.
		if _, ok := old.bindings[v]; !ok {
			out = append(out, struct {
				V *Var
				T Term
			}{V: v, T: t})
		}
	}
	return out
}
