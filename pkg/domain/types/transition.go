package types

// transitions maps a state to the states reachable from it in one step
type transitions[T comparable] map[T][]T

func (x transitions[T]) allows(from, to T) bool {
	for _, next := range x[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (x transitions[T]) next(from T) []T {
	out := make([]T, len(x[from]))
	copy(out, x[from])
	return out
}
