package compiler

// localVar records where a declared variable lives and what type it carries.
type localVar struct {
	Slot int
	Type string
}

// scopeFrame is the per-method compilation scope: name to slot/type mapping
// plus the next free local slot. Every declared variable consumes exactly
// one slot regardless of type.
type scopeFrame struct {
	vars     map[string]localVar
	nextSlot int
}

// scopeStack holds one frame per method being emitted. Only the top frame
// is ever consulted: Cesium has no name resolution across method frames.
type scopeStack struct {
	frames []*scopeFrame
}

// push opens a method frame whose first free slot is startSlot (1 for main,
// which reserves slot 0 for the program arguments; the parameter count for
// user functions).
func (s *scopeStack) push(startSlot int) {
	s.frames = append(s.frames, &scopeFrame{
		vars:     make(map[string]localVar),
		nextSlot: startSlot,
	})
}

func (s *scopeStack) pop() {
	s.frames = s.frames[:len(s.frames)-1]
}

func (s *scopeStack) top() *scopeFrame {
	return s.frames[len(s.frames)-1]
}

func (s *scopeStack) depth() int {
	return len(s.frames)
}

// declare allocates the next slot for name in the current frame and records
// its type.
func (s *scopeStack) declare(name, typeName string) localVar {
	frame := s.top()
	v := localVar{Slot: frame.nextSlot, Type: typeName}
	frame.vars[name] = v
	frame.nextSlot++
	return v
}

// define records name at a fixed slot, used for function parameters.
func (s *scopeStack) define(name, typeName string, slot int) {
	s.top().vars[name] = localVar{Slot: slot, Type: typeName}
}

// lookup resolves name in the current method frame.
func (s *scopeStack) lookup(name string) (localVar, bool) {
	v, ok := s.top().vars[name]
	return v, ok
}
