package kanren

import "github.com/hashicorp/go-hclog"

// State is the immutable (S, C, id_counter) triple of spec §3: a
// substitution, a constraint store, and the counter used to mint
// fresh variable IDs. Extending State never mutates the receiver.
type State struct {
	subst       *Substitution
	constraints *constraintStore
	counter     *uint64 // shared, monotonically increasing across one Run
	occursCheck bool
	logger      hclog.Logger
}

// newInitialState builds the empty state a Run begins from.
func newInitialState(opts runOptions) *State {
	counter := uint64(0)
	return &State{
		subst:       emptySubst,
		constraints: newConstraintStore(),
		counter:     &counter,
		occursCheck: opts.occursCheck,
		logger:      opts.logger,
	}
}

// Fresh mints a new logic variable scoped to this State's run. Unlike
// the teacher's process-global atomic counter, the counter lives on
// the State chain for one Run, so two concurrent Run calls never
// interleave IDs (SPEC_FULL §9).
func (s *State) Fresh(name string) *Var {
	*s.counter++
	v := &Var{id: *s.counter, name: name}
	s.logger.Trace("fresh", "var", v.String())
	return v
}

// withSubst returns a copy of s with a new substitution, leaving the
// constraint store untouched. Eq uses it only after revalidation has
// accepted the extension.
func (s *State) withSubst(sub *Substitution) *State {
	next := *s
	next.subst = sub
	return &next
}

// withConstraints returns a copy of s with a new constraint store.
func (s *State) withConstraints(c *constraintStore) *State {
	next := *s
	next.constraints = c
	return &next
}

// Walk exposes top-level variable resolution against the current
// substitution, following a whole chain of bound variables (see
// Substitution.Walk); compound structure is not rebuilt.
func (s *State) Walk(t Term) Term { return s.subst.Walk(t) }

// WalkStar exposes full recursive reification against the current
// substitution (spec §3's walk*, also used directly by Reify).
func (s *State) WalkStar(t Term) Term { return s.subst.WalkStar(t) }

// runOptions holds the resolved configuration for a Run/RunWithOptions call.
type runOptions struct {
	occursCheck bool
	logger      hclog.Logger
}

// RunOption configures a RunWithOptions call (SPEC_FULL §5.3).
type RunOption func(*runOptions)

// WithOccursCheck enables the occurs check during unification. Off by
// default: the reference engine omits it, and idioms such as Appendo
// assume its absence (spec §9 Open Question).
func WithOccursCheck() RunOption {
	return func(o *runOptions) { o.occursCheck = true }
}

// WithLogger attaches an hclog.Logger that receives trace-level
// events from Eq (unification success, failure, or a constraint
// violated on revalidation) and from State.Fresh (variable creation).
// The logger is used as given. The default is a null logger, so
// omitting this option costs nothing.
func WithLogger(l hclog.Logger) RunOption {
	return func(o *runOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

func resolveOptions(opts []RunOption) runOptions {
	ro := runOptions{logger: newNamedLogger(defaultLogger, "kanren")}
	for _, opt := range opts {
		opt(&ro)
	}
	return ro
}
