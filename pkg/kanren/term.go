// Package kanren is a relational (miniKanren-style) programming engine.
//
// A program is built from goals — eq, conjunction, disjunction, fresh
// variables, constraints, membership, and relational graph rewriting —
// and executed with Run, which drives a lazy stream of solutions and
// reifies the query variables against each one.
//
// The engine is single-threaded and cooperative: a Goal is a pure
// function from State to Stream, and Run pulls results from that
// stream one at a time. There is no hidden concurrency and no Prolog
// cut; search is fair, not depth-first.
package kanren

import (
	"fmt"
	"reflect"
)

// Term is any value the engine can reason about: a logic variable, an
// atom (any opaque host value), or a compound (anything satisfying
// Compound, or registered via RegisterCompoundType). Term is an alias
// for interface{} rather than a closed interface because atoms are,
// by design, arbitrary Go values with no required method set.
type Term = interface{}

// Var is an identity-based logic variable. Two Vars are the same
// variable only if they are the same pointer; id and name exist for
// printing and debugging, never for equality.
type Var struct {
	id   uint64
	name string
}

// ID returns the variable's creation-order identifier. IDs from NewVar
// come from one process-wide counter; IDs minted by State.Fresh count
// from 1 within each Run, so they repeat across runs and can coincide
// with NewVar IDs. IDs carry no semantic meaning beyond identity and
// printing order (spec: "ids are only for identity and printing").
func (v *Var) ID() uint64 { return v.id }

// Name returns the variable's optional debug name, or "" if anonymous.
func (v *Var) Name() string { return v.name }

// String renders the variable for debugging, e.g. "_x3" or "_7".
func (v *Var) String() string {
	if v.name != "" {
		return fmt.Sprintf("_%s%d", v.name, v.id)
	}
	return fmt.Sprintf("_%d", v.id)
}

// Atom wraps a host value to mark it explicitly as opaque — never a
// variable, never decomposed as a compound even if it happens to
// satisfy Compound or a registered adapter. Plain Go values (ints,
// strings, bools, ...) are also valid atoms without this wrapper;
// Atom exists for the rare case a wrapped value's shape would
// otherwise be picked up as compound structure.
type Atom struct {
	Value Term
}

// NewAtom wraps a value as an explicit atom.
func NewAtom(value Term) Atom { return Atom{Value: value} }

func (a Atom) String() string { return fmt.Sprintf("%v", a.Value) }

// Compound is the single extension point for tree-shaped terms (spec
// §4.1): head is the operator, Children is the ordered, finite
// sequence of sub-terms, and Reconstruct builds a new compound of the
// same class from a (possibly different) head and children. A type
// implementing this interface unifies, walks, and rewrites
// automatically — no registration required.
type Compound interface {
	Head() Term
	Children() []Term
	Reconstruct(head Term, children []Term) Term
}

// List is a cons-pair list, the classic miniKanren list representation:
// (car . cdr). Nil represents the empty list. List satisfies Compound
// with Head() = Car and Children() = [Cdr], so unification recurses
// structurally the same way it would for any other compound.
type List struct {
	Car, Cdr Term
}

// Nil is the canonical empty list atom.
var Nil = Atom{Value: "()"}

// IsNil reports whether t is the empty list.
func IsNil(t Term) bool {
	a, ok := t.(Atom)
	return ok && a == Nil
}

// Cons builds a List cell.
func Cons(car, cdr Term) List { return List{Car: car, Cdr: cdr} }

// ListOf builds a proper List from a slice of terms, Nil-terminated.
func ListOf(terms ...Term) Term {
	var out Term = Nil
	for i := len(terms) - 1; i >= 0; i-- {
		out = Cons(terms[i], out)
	}
	return out
}

func (l List) Head() Term          { return l.Car }
func (l List) Children() []Term    { return []Term{l.Cdr} }
func (l List) Reconstruct(head Term, children []Term) Term {
	if len(children) != 1 {
		panic(wrap(ErrArityMismatch, fmt.Sprintf("List.Reconstruct wants 1 child, got %d", len(children))))
	}
	return List{Car: head, Cdr: children[0]}
}

func (l List) String() string {
	return fmt.Sprintf("(%v . %v)", l.Car, l.Cdr)
}

// Tuple is a flat ordered sequence acting as a compound whose head is
// its first element — the "default implementation" spec §4.1 names
// for host sequences of two or more elements. A single-element or
// empty Tuple is a legal nullary/nullary-ish compound per spec §3;
// Head/Children degrade gracefully and never panic (an empty Tuple
// has a nil Head and nil Children).
type Tuple []Term

func (t Tuple) Head() Term {
	if len(t) == 0 {
		return nil
	}
	return t[0]
}

func (t Tuple) Children() []Term {
	if len(t) == 0 {
		return nil
	}
	return t[1:]
}

func (t Tuple) Reconstruct(head Term, children []Term) Term {
	out := make(Tuple, 0, 1+len(children))
	out = append(out, head)
	out = append(out, children...)
	return out
}

func (t Tuple) String() string {
	return fmt.Sprintf("%v", []Term(t))
}

// IsVar reports whether t is a logic variable.
func IsVar(t Term) bool {
	_, ok := t.(*Var)
	return ok
}

// compoundAdapter projects head/children/reconstruct for a term whose
// Go type cannot (or does not) implement Compound directly — the
// registry half of the extension interface (spec §6).
type compoundAdapter struct {
	Head        func(t Term) Term
	Children    func(t Term) []Term
	Reconstruct func(head Term, children []Term) Term
}

var compoundRegistry = map[reflect.Type]compoundAdapter{}

// RegisterCompoundType registers head/children/reconstruct projections
// for a host type that does not implement Compound itself. exemplar is
// any value of the target type, used only to key the registry by
// reflect.Type. Registration is global and additive; registering the
// same type twice replaces the previous adapter (last registration
// wins), matching spec §6. A nil projection function means the type
// would be treated as a compound with part of its protocol missing —
// that is a registration bug, not a runtime failure, so it panics
// immediately rather than deferring the crash to whatever Walk call
// first decomposes a value of this type.
func RegisterCompoundType(exemplar Term, head func(Term) Term, children func(Term) []Term, reconstruct func(Term, []Term) Term) {
	if head == nil || children == nil || reconstruct == nil {
		panic(wrap(ErrMissingProtocol, fmt.Sprintf(
			"RegisterCompoundType(%T): head, children, and reconstruct must all be non-nil", exemplar)))
	}
	compoundRegistry[reflect.TypeOf(exemplar)] = compoundAdapter{
		Head:        head,
		Children:    children,
		Reconstruct: reconstruct,
	}
}

// asCompound resolves t to its (head, children, reconstruct) view, if
// any: first via the Compound interface, then via compoundRegistry.
func asCompound(t Term) (head Term, children []Term, reconstruct func(Term, []Term) Term, ok bool) {
	if c, isC := t.(Compound); isC {
		return c.Head(), c.Children(), c.Reconstruct, true
	}
	if t == nil {
		return nil, nil, nil, false
	}
	if a, ok := compoundRegistry[reflect.TypeOf(t)]; ok {
		return a.Head(t), a.Children(t), a.Reconstruct, true
	}
	return nil, nil, nil, false
}

// IsCompound reports whether t has compound structure, either through
// Compound or a registered adapter.
func IsCompound(t Term) bool {
	_, _, _, ok := asCompound(t)
	return ok
}
