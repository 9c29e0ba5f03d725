package trial

import "sync"

// stubAlgo delegates to a fixed function, so tests control every bucket.
type stubAlgo struct {
	name string
	fn   func(key []byte, seed uint64, rangeEnd uint64) uint64
}

func (a stubAlgo) Name() string { return a.name }

func (a stubAlgo) Hash(key []byte, seed uint64, rangeEnd uint64) uint64 {
	return a.fn(key, seed, rangeEnd)
}

// cycleRand fills keys with a repeating byte sequence and hands out seeds
// from a fixed list, giving tests fully deterministic trials.
type cycleRand struct {
	mu    sync.Mutex
	next  byte
	seeds []uint64
	seedI int
}

func (r *cycleRand) Fill(b []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range b {
		b[i] = r.next
	}
	r.next++
}

func (r *cycleRand) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.seeds[r.seedI%len(r.seeds)]
	r.seedI++
	return s
}
