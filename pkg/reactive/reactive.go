// Package reactive is a reference model of the runtime library the emitted
// Cesium program links against. The compiler itself never executes this
// code; the package pins the runtime contract — synchronous insertion-order
// notification, absent-value propagation, and the two-level subscription
// rule — so the emitter's assumptions stay testable.
package reactive

import "strconv"

// Stream holds a possibly-absent integer and a list of subscribers.
// Presence is modeled as an (int, bool) pair rather than a nullable
// reference.
type Stream struct {
	value       int
	hasValue    bool
	subscribers []Reactive
}

// NewStream returns an empty stream with no value.
func NewStream() *Stream {
	return &Stream{}
}

// SetValue updates the stream and notifies subscribers synchronously, in
// insertion order, before returning.
func (s *Stream) SetValue(v int) {
	s.value = v
	s.hasValue = true
	for _, r := range s.subscribers {
		r.update()
	}
}

// Value returns the current value and whether one has been set.
func (s *Stream) Value() (int, bool) {
	return s.value, s.hasValue
}

// Subscribe registers r for update notification.
func (s *Stream) Subscribe(r Reactive) {
	s.subscribers = append(s.subscribers, r)
}

// Reactive is a value derived from a Stream or another Reactive, holding a
// cached result that is recomputed on upstream update. A Reactive is itself
// a Source, so further reactives can be derived from it.
type Reactive interface {
	Source

	// Value returns the cached value and whether one is present.
	Value() (int, bool)
	update()
}

// reactiveFromStream derives its value from a Stream through a transform.
type reactiveFromStream struct {
	source    *Stream
	transform func(int) int
	cached    int
	hasCached bool
}

// FromStream builds a Reactive that applies transform to source's value
// whenever source updates.
func FromStream(source *Stream, transform func(int) int) Reactive {
	r := &reactiveFromStream{source: source, transform: transform}
	source.Subscribe(r)
	r.update()
	return r
}

func (r *reactiveFromStream) Value() (int, bool) {
	return r.cached, r.hasCached
}

func (r *reactiveFromStream) update() {
	v, ok := r.source.Value()
	if !ok {
		r.hasCached = false
		return
	}
	r.cached = r.transform(v)
	r.hasCached = true
}

// reactiveFromReactive derives its value from an upstream Reactive. It only
// receives updates when the upstream is itself derived directly from a
// Stream: chains deeper than two levels never hear about changes.
type reactiveFromReactive struct {
	upstream  Reactive
	transform func(int) int
	cached    int
	hasCached bool
}

// FromReactive builds a Reactive that applies transform to upstream's value
// whenever upstream's source stream updates.
func FromReactive(upstream Reactive, transform func(int) int) Reactive {
	r := &reactiveFromReactive{upstream: upstream, transform: transform}
	if fs, ok := upstream.(*reactiveFromStream); ok {
		fs.source.Subscribe(r)
	}
	r.update()
	return r
}

func (r *reactiveFromReactive) Value() (int, bool) {
	return r.cached, r.hasCached
}

func (r *reactiveFromReactive) update() {
	v, ok := r.upstream.Value()
	if !ok {
		r.hasCached = false
		return
	}
	r.cached = r.transform(v)
	r.hasCached = true
}

// FormatValue renders a possibly-absent reactive value the way the emitted
// program prints it: "null" when absent, decimal text otherwise.
func FormatValue(v int, ok bool) string {
	if !ok {
		return "null"
	}
	return strconv.Itoa(v)
}
