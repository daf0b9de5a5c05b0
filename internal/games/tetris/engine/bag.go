package engine

import "math/rand"

// Bag is the 7-bag randomizer: a queue refilled with a shuffled permutation
// of all seven kinds whenever it runs low, so every refill boundary starts a
// complete set.
type Bag struct {
	rng   *rand.Rand
	queue []Kind
}

// NewBag creates a bag drawing from rng and pre-fills it so previews are
// available before the first draw.
func NewBag(rng *rand.Rand) *Bag {
	b := &Bag{
		rng:   rng,
		queue: make([]Kind, 0, 2*len(Kinds)),
	}
	b.fill()
	return b
}

func (b *Bag) fill() {
	for len(b.queue) <= len(Kinds) {
		b.refill()
	}
}

// refill appends one Fisher-Yates shuffled set of the seven kinds.
func (b *Bag) refill() {
	set := Kinds
	for i := len(set) - 1; i > 0; i-- {
		j := b.rng.Intn(i + 1)
		set[i], set[j] = set[j], set[i]
	}
	b.queue = append(b.queue, set[:]...)
}

// Next removes the front of the queue and returns it as a freshly spawned piece.
func (b *Bag) Next() Piece {
	b.fill()
	k := b.queue[0]
	b.queue = b.queue[1:]
	return NewPiece(k)
}

// Preview returns the next n kinds without consuming them or the rng.
// It returns fewer when n exceeds the queue length and nil for n <= 0.
func (b *Bag) Preview(n int) []Kind {
	if n <= 0 {
		return nil
	}
	n = min(n, len(b.queue))
	out := make([]Kind, n)
	copy(out, b.queue[:n])
	return out
}

// Len returns the number of queued kinds.
func (b *Bag) Len() int {
	return len(b.queue)
}
