// Package gen assembles planes benchmark problems: uniform placement of
// planes, tasks and stations, and crisis-mixture arrival times for tasks.
package gen

import "golang.org/x/exp/rand"

// Streams derives independent random streams from one master seed.
// The order of Next calls is part of the output format: the same seed and
// the same call sequence always yield the same streams.
type Streams struct {
	master *rand.Rand
}

// NewStreams creates a stream deriver for seed.
func NewStreams(seed int64) *Streams {
	return &Streams{master: rand.New(rand.NewSource(uint64(seed)))}
}

// NextSeed draws a sub-seed from the master stream.
func (s *Streams) NextSeed() uint64 {
	return s.master.Uint64()
}

// Next returns a new stream seeded from the master stream.
func (s *Streams) Next() *rand.Rand {
	return rand.New(rand.NewSource(s.NextSeed()))
}
