package bullet

// resetter is implemented by pooled types that clear themselves on Free.
type resetter interface {
	Reset()
}

// Pool keeps released objects for reuse so hot paths stop allocating after
// warmup. Objects freed while the pool already holds Max objects are dropped.
// A Pool is not safe for concurrent use.
type Pool[T any] struct {
	newFn func() *T
	free  []*T
	// Max is the most objects kept for reuse. Zero or less means unbounded.
	Max int
	// Peak is the highest number of free objects held at once.
	Peak int
}

// NewPool creates a pool that allocates with newFn when empty.
func NewPool[T any](newFn func() *T, max int) *Pool[T] {
	if newFn == nil {
		newFn = func() *T { return new(T) }
	}
	return &Pool[T]{newFn: newFn, Max: max}
}

// Obtain returns a free object, or a new one if the pool is empty.
func (p *Pool[T]) Obtain() *T {
	if n := len(p.free); n > 0 {
		v := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		return v
	}
	return p.newFn()
}

// Free resets v (if it has a Reset method) and keeps it for reuse.
// Nil is ignored.
func (p *Pool[T]) Free(v *T) {
	if v == nil {
		return
	}
	if r, ok := any(v).(resetter); ok {
		r.Reset()
	}
	if p.Max > 0 && len(p.free) >= p.Max {
		return
	}
	p.free = append(p.free, v)
	if len(p.free) > p.Peak {
		p.Peak = len(p.free)
	}
}

// FreeAll frees every object in items. The slice itself is left untouched.
func (p *Pool[T]) FreeAll(items []*T) {
	for _, v := range items {
		p.Free(v)
	}
}

// Len returns the number of objects available for reuse.
func (p *Pool[T]) Len() int {
	return len(p.free)
}

// Clear drops every pooled object.
func (p *Pool[T]) Clear() {
	clear(p.free)
	p.free = p.free[:0]
}
