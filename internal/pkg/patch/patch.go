package patch

// Coalesce returns the value pointed to by ptr if it's not nil, otherwise returns fallback
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// Field tracks an optional update: Set distinguishes "not provided" from a zero value.
type Field[T any] struct {
	Value T
	Set   bool
}

func Some[T any](v T) Field[T] {
	return Field[T]{Value: v, Set: true}
}

func FromPtr[T any](p *T) Field[T] {
	if p == nil {
		return Field[T]{}
	}
	return Some(*p)
}

func (f Field[T]) Or(fallback T) T {
	if f.Set {
		return f.Value
	}
	return fallback
}
