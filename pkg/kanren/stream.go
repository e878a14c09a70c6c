package kanren

// Stream is a lazy, possibly infinite sequence of States (spec §4.4).
// It has exactly three shapes:
//
//   - an empty stream, carrying no states;
//   - a unit stream, carrying exactly one state;
//   - a choice, carrying one state now and a suspension for the rest.
//
// A Stream is consumed by repeatedly asking whether it is empty,
// taking its head, and forcing its tail. There is no separate
// "Suspend" constructor in the type itself (spec §4.4 lists it as a
// fourth producer); here a suspension is simply a Stream value whose
// head is absent and whose thunk, once forced, yields the real
// stream — see suspend below. This mirrors the classic miniKanren
// representation while staying a plain Go struct instead of the
// channel/goroutine design the teacher used, which is replaced here
// because it cannot guarantee fairness (spec design note 1).
type Stream struct {
	isUnit bool
	head   *State
	thunk  func() Stream // non-nil for both choice and suspension nodes
}

// EmptyStream is the stream with no solutions.
var EmptyStream = Stream{}

// UnitStream is the stream containing exactly one state and nothing
// more.
func UnitStream(s *State) Stream {
	return Stream{isUnit: true, head: s}
}

// choice builds a stream with one state now and a thunk for the rest.
func choice(head *State, rest func() Stream) Stream {
	return Stream{isUnit: true, head: head, thunk: rest}
}

// suspend builds a stream that produces no state on its own but,
// once forced, becomes whatever thunk returns. Suspensions are what
// conj/disj wrap their recursive calls in so that evaluation only
// proceeds as far as the consumer pulls.
func suspend(thunk func() Stream) Stream {
	return Stream{thunk: thunk}
}

// IsEmpty reports whether the stream, once any leading suspensions are
// forced, has no states left.
func (s Stream) IsEmpty() bool {
	forced := s.force()
	return !forced.isUnit
}

// force resolves leading suspensions (nodes with no head of their own)
// until it reaches either EmptyStream or a node carrying a head.
func (s Stream) force() Stream {
	for !s.isUnit && s.thunk != nil {
		s = s.thunk()
	}
	return s
}

// Head returns the first state of a non-empty, forced stream.
func (s Stream) Head() *State {
	return s.force().head
}

// Tail returns the rest of the stream after its head.
func (s Stream) Tail() Stream {
	forced := s.force()
	if forced.thunk == nil {
		return EmptyStream
	}
	return forced.thunk()
}

// mplus is the fair merge of spec §4.4: it interleaves states from s1
// and s2 rather than exhausting s1 first. The critical rule — "when
// the first stream is a suspension, swap it with the second before
// forcing" — is what keeps an infinite s1 from starving a finite s2,
// and it must be preserved exactly as written here.
func mplus(s1, s2 Stream) Stream {
	if !s1.isUnit && s1.thunk != nil {
		// s1 is a bare suspension: advance it by one step and swap the
		// operands, so s2 gets a turn before s1 is advanced again.
		return suspend(func() Stream { return mplus(s2, s1.thunk()) })
	}
	if !s1.isUnit {
		// s1 is empty (forced already has no thunk, no head).
		return s2
	}
	// s1 is a choice: yield its head now, and defer the interleave of
	// its tail with s2. The tail must not be forced until this thunk
	// actually runs, or an infinite s1 would be driven eagerly here.
	return choice(s1.head, func() Stream { return mplus(s2, s1.Tail()) })
}

// bind is the fair flat-map of spec §4.4: apply goal g to every state
// in s, merging the resulting streams via mplus instead of exhausting
// s first. This is what conj threads through: bind(g1(s), g2).
func bind(s Stream, g Goal) Stream {
	if !s.isUnit && s.thunk != nil {
		return suspend(func() Stream { return bind(s.thunk(), g) })
	}
	if !s.isUnit {
		return EmptyStream
	}
	return mplus(g(s.head), suspend(func() Stream { return bind(s.Tail(), g) }))
}

// Take pulls up to n states from the stream (n <= 0 means exhaust it;
// callers exhausting an infinite stream with n <= 0 will not
// terminate, which is the caller's choice, not the stream's).
func (s Stream) Take(n int) []*State {
	var out []*State
	for n <= 0 || len(out) < n {
		forced := s.force()
		if !forced.isUnit {
			break
		}
		out = append(out, forced.head)
		if forced.thunk == nil {
			break
		}
		s = forced.thunk()
	}
	return out
}
