package reactor

import (
	"math/rand/v2"
	"sync"
)

// Noise supplies the random samples tick() draws from, each in [0,1).
// All randomness in the simulation goes through it.
type Noise interface {
	Float64() float64
}

type globalNoise struct{}

func (globalNoise) Float64() float64 {
	return rand.Float64()
}

// DefaultNoise returns the process-wide random source. It is safe for
// concurrent use.
func DefaultNoise() Noise {
	return globalNoise{}
}

// SeededNoise returns a reproducible source for the given seed
func SeededNoise(seed uint64) Noise {
	return &seededNoise{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

type seededNoise struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (n *seededNoise) Float64() float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.r.Float64()
}

// SequenceNoise replays values in order and then repeats them from the start.
// An empty sequence always yields 0.
type SequenceNoise struct {
	mu     sync.Mutex
	values []float64
	next   int
}

// NewSequenceNoise creates a SequenceNoise over values
func NewSequenceNoise(values ...float64) *SequenceNoise {
	return &SequenceNoise{values: values}
}

func (n *SequenceNoise) Float64() float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.values) == 0 {
		return 0
	}
	v := n.values[n.next%len(n.values)]
	n.next++
	return v
}
