// Package rng provides the deterministic random streams used by combat and growth.
//
// # Streams
//
// A Source owns two independent streams. Combat rolls (hit, crit) draw only
// from Combat; level-up growth draws only from Growth. Rewinding or replaying
// one stream never changes the numbers the other stream produces.
//
// # Determinism
//
// Each stream is seeded explicitly and counts the steps taken from its
// underlying generator. State captures (seed, steps), and Restore rebuilds the
// exact generator position from it, so a rewind can put the combat stream back
// where it was before an encounter.
package rng

import "math/rand"

// growthSalt separates the growth seed from the combat seed when both are configured equal.
const growthSalt int64 = 0x5DEECE66D

// Roller is the subset of a random stream used by roll resolution.
type Roller interface {
	// Intn returns a value in [0, n). n must be positive.
	Intn(n int) int
}

// State is a restorable position of a Stream.
type State struct {
	Seed  int64
	Steps int
}

// countingSource counts every step taken from the wrapped generator.
type countingSource struct {
	src   rand.Source64
	steps int
}

func (c *countingSource) Int63() int64 {
	c.steps++
	return c.src.Int63()
}

func (c *countingSource) Uint64() uint64 {
	c.steps++
	return c.src.Uint64()
}

func (c *countingSource) Seed(seed int64) {
	c.src.Seed(seed)
	c.steps = 0
}

// Stream is a seeded, restorable random stream. It is not safe for concurrent use.
type Stream struct {
	seed int64
	src  *countingSource
	r    *rand.Rand
}

// NewStream creates a stream positioned at the start of seed's sequence.
func NewStream(seed int64) *Stream {
	s := &Stream{}
	s.Restore(State{Seed: seed})
	return s
}

// Intn returns a value in [0, n).
func (s *Stream) Intn(n int) int {
	return s.r.Intn(n)
}

// State returns the current position of the stream.
func (s *Stream) State() State {
	return State{Seed: s.seed, Steps: s.src.steps}
}

// Restore moves the stream to st, replaying st.Steps generator steps.
func (s *Stream) Restore(st State) {
	base := rand.NewSource(st.Seed).(rand.Source64)
	for i := 0; i < st.Steps; i++ {
		base.Uint64()
	}
	s.seed = st.Seed
	s.src = &countingSource{src: base, steps: st.Steps}
	s.r = rand.New(s.src)
}

// Source bundles the combat and growth streams.
type Source struct {
	Combat *Stream
	Growth *Stream
}

// NewSource creates both streams. Equal seeds are salted so the streams never share state.
func NewSource(combatSeed, growthSeed int64) *Source {
	if growthSeed == combatSeed {
		growthSeed ^= growthSalt
	}
	return &Source{
		Combat: NewStream(combatSeed),
		Growth: NewStream(growthSeed),
	}
}

// Fixed replays a scripted sequence of values, cycling when exhausted.
// Values are reduced modulo n so scripts stay within range.
type Fixed struct {
	Values []int
	next   int
}

// Intn returns the next scripted value.
func (f *Fixed) Intn(n int) int {
	if len(f.Values) == 0 {
		return 0
	}
	v := f.Values[f.next%len(f.Values)]
	f.next++
	if v < 0 {
		v = 0
	}
	return v % n
}

// Drawn reports how many values have been consumed.
func (f *Fixed) Drawn() int {
	return f.next
}
