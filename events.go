package gale

// EventKind distinguishes how a pair's contact state changed between two
// consecutive steps.
type EventKind int

const (
	// CollisionEnter fires the first step two non-trigger bodies overlap.
	CollisionEnter EventKind = iota
	// CollisionStay fires on every subsequent step they remain overlapping.
	CollisionStay
	// CollisionExit fires the step after they stop overlapping.
	CollisionExit
	// TriggerEnter fires the first step a trigger body overlaps another body.
	TriggerEnter
	// TriggerStay fires on every subsequent step of trigger overlap.
	TriggerStay
	// TriggerExit fires the step after a trigger stops overlapping.
	TriggerExit
)

// Event reports a collision or trigger transition for a body pair. The
// engine steps on a single goroutine, so events are collected into a
// plain slice during Step and drained by the host rather than
// dispatched through channels or callbacks.
type Event struct {
	Kind EventKind
	A, B BodyHandle
}

type pairKey struct{ A, B BodyHandle }

// newPairKey normalizes a pair's handle order so (a,b) and (b,a) collide
// to the same tracking key.
func newPairKey(a, b BodyHandle) pairKey {
	if a.id.String() > b.id.String() {
		a, b = b, a
	}
	return pairKey{A: a, B: b}
}

// eventTracker remembers which pairs were touching last step, in the
// deterministic order they were first observed, so World can classify
// this step's pairs into Enter/Stay/Exit without depending on Go's
// randomized map iteration order.
type eventTracker struct {
	touching      map[pairKey]bool
	touchingOrder []pairKey
}

func newEventTracker() *eventTracker {
	return &eventTracker{touching: make(map[pairKey]bool)}
}

// touchingPair is one contact observed during the current step, already
// reduced to its normalized key and trigger classification.
type touchingPair struct {
	key       pairKey
	isTrigger bool
}

// update consumes this step's contacts, in the deterministic order the
// narrow phase produced them, and returns the resulting events.
func (e *eventTracker) update(now []touchingPair) []Event {
	var events []Event
	nowSet := make(map[pairKey]bool, len(now))

	for _, p := range now {
		nowSet[p.key] = true
		kindEnter, kindStay := CollisionEnter, CollisionStay
		if p.isTrigger {
			kindEnter, kindStay = TriggerEnter, TriggerStay
		}
		if _, wasTouching := e.touching[p.key]; wasTouching {
			events = append(events, Event{Kind: kindStay, A: p.key.A, B: p.key.B})
		} else {
			events = append(events, Event{Kind: kindEnter, A: p.key.A, B: p.key.B})
		}
	}

	for _, key := range e.touchingOrder {
		if nowSet[key] {
			continue
		}
		kindExit := CollisionExit
		if e.touching[key] {
			kindExit = TriggerExit
		}
		events = append(events, Event{Kind: kindExit, A: key.A, B: key.B})
	}

	order := make([]pairKey, len(now))
	touching := make(map[pairKey]bool, len(now))
	for i, p := range now {
		order[i] = p.key
		touching[p.key] = p.isTrigger
	}
	e.touching = touching
	e.touchingOrder = order
	return events
}
