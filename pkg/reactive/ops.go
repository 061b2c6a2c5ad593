package reactive

// Source is anything a derived Reactive can be built from: a Stream or
// another Reactive. It mirrors the overload pair the emitter selects
// between when lowering reactive arithmetic.
type Source interface {
	derive(transform func(int) int) Reactive
}

func (s *Stream) derive(transform func(int) int) Reactive {
	return FromStream(s, transform)
}

func (r *reactiveFromStream) derive(transform func(int) int) Reactive {
	return FromReactive(r, transform)
}

func (r *reactiveFromReactive) derive(transform func(int) int) Reactive {
	return FromReactive(r, transform)
}

// Add derives a Reactive that adds value to the source.
func Add(src Source, value int) Reactive {
	return src.derive(func(x int) int { return x + value })
}

// Subtract derives a Reactive that subtracts value from the source.
func Subtract(src Source, value int) Reactive {
	return src.derive(func(x int) int { return x - value })
}

// Multiply derives a Reactive that multiplies the source by value.
func Multiply(src Source, value int) Reactive {
	return src.derive(func(x int) int { return x * value })
}

// Divide derives a Reactive that divides the source by value.
func Divide(src Source, value int) Reactive {
	return src.derive(func(x int) int { return x / value })
}
