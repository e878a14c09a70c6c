package kanren

import (
	"github.com/pkg/errors"
)

// Error taxonomy (spec §7). Unification failure and constraint
// violation are not errors — they simply discard the state and the
// stream yields nothing on that branch. Everything below is a
// programmer error or a policy violation that must surface instead of
// silently failing.
var (
	// ErrNonGround is returned when a goal that requires a ground
	// argument (e.g. the default Membero policy, spec §4.6) is given
	// an unbound one.
	ErrNonGround = errors.New("kanren: non-ground argument where ground term required")

	// ErrArityMismatch is returned when Reconstruct is called with a
	// child count incompatible with the compound's class, or when a
	// Relation is queried or fed facts of the wrong arity.
	ErrArityMismatch = errors.New("kanren: arity mismatch")

	// ErrMissingProtocol is raised by RegisterCompoundType when any of
	// the head, children or reconstruct projections it is given is
	// nil.
	ErrMissingProtocol = errors.New("kanren: value has no head/children/reconstruct protocol")
)

// wrap attaches contextual detail to one of the sentinels above while
// preserving errors.Is(result, sentinel) — the wrap-a-sentinel idiom
// this package borrows from the pack's SQL engine error handling.
func wrap(sentinel error, detail string) error {
	return errors.WithMessage(sentinel, detail)
}
