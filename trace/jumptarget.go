package trace

// jumpTargetCache remembers uninferable-jump targets in the order the
// tracer resolves them, standing in for the encoder-side cache a
// JumpTargetIndex extension payload refers back into by position. The
// tracer populates it opportunistically from every address report it
// resolves, whether or not the unit's JumpTargetCache option is set, so a
// later index reference can always be satisfied if the encoder's own
// cache policy happened to keep that entry too.
type jumpTargetCache struct {
	entries []uint64
}

func (c *jumpTargetCache) remember(addr uint64) {
	c.entries = append(c.entries, addr)
}

func (c *jumpTargetCache) lookup(index uint32) (uint64, bool) {
	if int(index) >= len(c.entries) {
		return 0, false
	}
	return c.entries[index], true
}

func (c *jumpTargetCache) reset() {
	c.entries = c.entries[:0]
}
