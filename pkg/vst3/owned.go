package vst3

// Owned holds the only long-lived reference to a plugin-side object. Other
// holders borrow through Get and never release on their own.
type Owned[T any] struct {
	obj  T
	held bool
}

// Own takes ownership of obj.
func Own[T any](obj T) *Owned[T] {
	return &Owned[T]{obj: obj, held: true}
}

// Get borrows the owned object. After Release, or on a nil Owned, it returns
// the zero value.
func (o *Owned[T]) Get() T {
	if o == nil {
		var zero T
		return zero
	}
	return o.obj
}

// Held reports whether the object has not been released yet.
func (o *Owned[T]) Held() bool {
	return o != nil && o.held
}

// Release drops the reference, calling Release on the object when it
// implements Releaser. Calling it more than once is a no-op.
func (o *Owned[T]) Release() {
	if o == nil || !o.held {
		return
	}
	o.held = false
	obj := o.obj
	var zero T
	o.obj = zero
	if r, ok := any(obj).(Releaser); ok {
		r.Release()
	}
}
