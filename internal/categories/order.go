package categories

import "errors"

// ErrBadIndex reports a reorder request whose indexes fall outside the
// current list.
var ErrBadIndex = errors.New("reorder index out of range")

// Splice removes the element at from and reinserts it at to, preserving
// the relative order of everything else. The input slice is not modified.
func Splice[T any](items []T, from, to int) ([]T, error) {
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) {
		return nil, ErrBadIndex
	}
	out := make([]T, 0, len(items))
	out = append(out, items[:from]...)
	out = append(out, items[from+1:]...)

	moved := items[from]
	out = append(out, moved) // grow by one
	copy(out[to+1:], out[to:])
	out[to] = moved
	return out, nil
}
