package util

// RNG is a xorshift64* generator. Its whole state is one word so battle
// snapshots can capture and restore it by value, which a *rand.Rand cannot do.
type RNG struct {
	state uint64
}

func New(seed int64) *RNG {
	if seed == 0 {
		seed = 1
	}
	return &RNG{state: uint64(seed)}
}

func (r *RNG) next() uint64 {
	x := r.state
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	r.state = x
	return x * 0x2545f4914f6cdd1d
}

// Uniform returns a float64 in [0,1).
func (r *RNG) Uniform() float64 {
	return float64(r.next()>>11) / (1 << 53)
}

// Intn returns an int in [0,n). Panics if n <= 0.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		panic("util: Intn with non-positive n")
	}
	return int(r.next() % uint64(n))
}

// Shuffle permutes n elements with Fisher-Yates.
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		swap(i, j)
	}
}

// State exposes the generator state for snapshotting.
func (r *RNG) State() uint64 { return r.state }

// Restore resets the generator to a captured state.
func (r *RNG) Restore(s uint64) { r.state = s }
