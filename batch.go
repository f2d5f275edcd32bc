package wikigraph

import (
	"fmt"
	"iter"
)

// Batch groups consecutive values of seq into slices of at most size
// elements.  Every emitted batch but the last has exactly size
// elements, the last holds the non-empty remainder, and an empty seq
// yields no batches at all.  Knows nothing about what it batches.
func Batch[T any](seq iter.Seq[T], size int) iter.Seq[[]T] {
	if size < 1 {
		panic(fmt.Sprintf("wikigraph: batch size %d < 1", size))
	}
	return func(yield func([]T) bool) {
		buf := make([]T, 0, size)
		for v := range seq {
			buf = append(buf, v)
			if len(buf) == size {
				if !yield(buf) {
					return
				}
				buf = make([]T, 0, size)
			}
		}
		if len(buf) > 0 {
			yield(buf)
		}
	}
}
