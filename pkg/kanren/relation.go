package kanren

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	uuid "github.com/satori/go.uuid"
)

// storedFact is one inserted tuple, tagged with a unique ID the way
// the teacher's fact store tags every insertion (spec §4.7 names no
// such ID, but carrying one costs nothing and matches the teacher's
// fact-store idiom).
type storedFact struct {
	id    uuid.UUID
	terms []Term
}

// Relation is a named, fixed-arity predicate backed by a table of
// ground fact tuples (spec §4.7). Calling a Relation like a goal
// constructor yields the disjunction of unifying the call arguments
// against each stored fact, in insertion order. For each argument
// position, index holds a map from the canonical key of a ground
// value seen at that position to the indices (into facts, in
// insertion order) of every fact carrying that value there — spec
// §4.7's per-position index, used by Call to restrict the disjunction
// whenever the caller supplies a ground argument.
type Relation struct {
	name  string
	arity int
	facts []storedFact
	index []map[string][]int
}

// NewRelation declares a relation with the given name and arity. The
// name is used only for error messages and debug printing.
func NewRelation(name string, arity int) *Relation {
	idx := make([]map[string][]int, arity)
	for i := range idx {
		idx[i] = map[string][]int{}
	}
	return &Relation{name: name, arity: arity, index: idx}
}

// Name returns the relation's declared name.
func (r *Relation) Name() string { return r.name }

// Arity returns the relation's declared arity.
func (r *Relation) Arity() int { return r.arity }

// Facts inserts one or more tuples as facts of this relation (spec
// §4.7's facts(R, tuples...)). Tuples are inserted in order, and
// order is preserved in the disjunction Call later builds from them.
// A tuple whose length does not match the relation's arity is
// rejected and its error collected rather than aborting the whole
// batch, so one bad fact in a large seed list does not silently
// discard the rest; all such errors are returned together.
func (r *Relation) Facts(tuples ...[]Term) error {
	var errs *multierror.Error
	base := len(r.facts)
	accepted := make([]storedFact, 0, len(tuples))
	for _, tuple := range tuples {
		if len(tuple) != r.arity {
			errs = multierror.Append(errs, wrap(ErrArityMismatch, fmt.Sprintf(
				"relation %s: fact has arity %d, want %d: %v", r.name, len(tuple), r.arity, tuple)))
			continue
		}
		terms := make([]Term, len(tuple))
		copy(terms, tuple)
		accepted = append(accepted, storedFact{id: uuid.NewV4(), terms: terms})
	}
	for i, f := range accepted {
		factIdx := base + i
		for pos, t := range f.terms {
			if !ground(t) {
				continue
			}
			key := canonicalKey(t)
			r.index[pos][key] = append(r.index[pos][key], factIdx)
		}
	}
	r.facts = append(r.facts, accepted...)
	return errs.ErrorOrNil()
}

// candidates returns the indices into r.facts that Call must consider
// for the given ground (already walked) call arguments, restricted by
// the per-position index wherever a position is ground — spec §4.7's
// indexing. When several positions are ground, only the bucket of the
// narrowest one is used; the buckets are not intersected, and the Eq
// arms Call builds filter out the rest. Facts are always returned
// in ascending index order, so the disjunction Call builds from them
// preserves insertion order exactly as the unindexed scan would.
func (r *Relation) candidates(walked []Term) []int {
	var best []int
	haveBest := false
	for pos, t := range walked {
		if !ground(t) {
			continue
		}
		bucket := r.index[pos][canonicalKey(t)]
		if !haveBest || len(bucket) < len(best) {
			best = bucket
			haveBest = true
		}
	}
	if !haveBest {
		all := make([]int, len(r.facts))
		for i := range all {
			all[i] = i
		}
		return all
	}
	out := make([]int, len(best))
	copy(out, best)
	return out
}

// Call builds the goal for invoking this relation with args (spec
// §4.7's R(args...)): unify args, as a single tuple, against the
// stored fact tuples that could possibly match — narrowed by the
// per-position index whenever a call argument is ground — and disjoin
// the results, still in insertion order (spec §4.7's tie-break). A
// call with the wrong number of arguments is a program bug, not a
// run-time failure, so it panics rather than silently failing —
// consistent with Membero's non-ground policy (spec §7), which is
// likewise surfaced as an error Run can recover and report rather
// than an empty stream.
func (r *Relation) Call(args ...Term) Goal {
	if len(args) != r.arity {
		panic(wrap(ErrArityMismatch, fmt.Sprintf(
			"relation %s: called with %d args, want %d", r.name, len(args), r.arity)))
	}
	return func(s *State) Stream {
		walked := make([]Term, len(args))
		for i, a := range args {
			walked[i] = s.WalkStar(a)
		}
		target := Tuple(args)
		idxs := r.candidates(walked)
		arms := make([]Goal, len(idxs))
		for i, factIdx := range idxs {
			arms[i] = Eq(target, Tuple(r.facts[factIdx].terms))
		}
		return Lany(arms...)(s)
	}
}
