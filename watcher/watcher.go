// Package watcher keeps the last two samples of a value read once per tick.
package watcher

import "fmt"

// Pair holds the previous and the latest sample
type Pair[T comparable] struct {
	Old     T
	Current T
}

// Changed reports whether the latest sample differs from the previous one
func (p Pair[T]) Changed() bool {
	return p.Old != p.Current
}

func (p Pair[T]) String() string {
	return fmt.Sprintf("%v -> %v", p.Old, p.Current)
}

// Watcher is a Pair that does not exist until the first Update.
// The zero value is an unsampled watcher.
type Watcher[T comparable] struct {
	pair    Pair[T]
	sampled bool
}

// Update records v. The first update sets both Old and Current to v,
// later updates move Current into Old.
func (w *Watcher[T]) Update(v T) Pair[T] {
	if !w.sampled {
		w.pair = Pair[T]{Old: v, Current: v}
		w.sampled = true
		return w.pair
	}

	w.pair = Pair[T]{Old: w.pair.Current, Current: v}
	return w.pair
}

// Pair returns the samples and whether any update has happened yet
func (w *Watcher[T]) Pair() (Pair[T], bool) {
	return w.pair, w.sampled
}

// Current returns the latest sample, or fallback if there is none
func (w *Watcher[T]) Current(fallback T) T {
	if !w.sampled {
		return fallback
	}
	return w.pair.Current
}

// Changed is false for a watcher that has not been sampled
func (w *Watcher[T]) Changed() bool {
	return w.sampled && w.pair.Changed()
}

func (w *Watcher[T]) Sampled() bool {
	return w.sampled
}

// Reset forgets all samples
func (w *Watcher[T]) Reset() {
	*w = Watcher[T]{}
}
