package hashset

// prefetch approximates a non-binding cache prefetch hint for the slot at
// ptr. Go exposes no portable PREFETCHT0-style intrinsic in the standard
// library and this exercise cannot ship hand-written, untested per-arch
// assembly, so the hint is approximated with a discarded volatile-style
// read: it touches the cache line the real probe will land on without
// branching on or otherwise depending on its value. This captures the
// latency-hiding benefit Worker relies on (issuing the read
// worker.PrefetchStride batch positions ahead of the insert that needs
// it) at the cost of doing one
// real memory load instead of a true non-blocking prefetch instruction.
func prefetch(slot *uint64) {
	_ = *slot
}
