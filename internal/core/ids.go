package core

import "math/rand"

// Synthetic ID range: every ID has exactly eight digits.
const (
	MinID int64 = 10000000
	MaxID int64 = 99999999
)

// DefaultIDSeed keeps IDs stable between runs over the same input.
const DefaultIDSeed int64 = 42

// IDGenerator yields the synthetic record IDs, one per surviving record.
type IDGenerator interface {
	Next() int64
}

// SeededIDs draws eight-digit IDs from a PRNG seeded once at construction.
// The same seed yields the same sequence. Collisions are not checked: two
// records can, with small probability, receive the same ID.
type SeededIDs struct {
	rng *rand.Rand
}

// NewSeededIDs returns a generator seeded with seed.
func NewSeededIDs(seed int64) *SeededIDs {
	return &SeededIDs{rng: rand.New(rand.NewSource(seed))}
}

// Next returns an ID in [MinID, MaxID].
func (g *SeededIDs) Next() int64 {
	return MinID + g.rng.Int63n(MaxID-MinID+1)
}

// SequentialIDs counts up from a start value. Useful where IDs must be unique
// and reproducibility across input changes does not matter.
type SequentialIDs struct {
	next int64
}

// NewSequentialIDs returns a counter starting at start.
func NewSequentialIDs(start int64) *SequentialIDs {
	return &SequentialIDs{next: start}
}

// Next returns the current value and advances the counter.
func (g *SequentialIDs) Next() int64 {
	id := g.next
	g.next++
	return id
}
