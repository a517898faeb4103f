package trace

// state is the Tracer's top-level synchronization state. Every state other
// than stateIdle is only meaningful once a Sync.Start has anchored the walk.
//
// Open question: how irdepth interacts with the jump-target cache. Decision
// taken here: the two are orthogonal. irdepth always names a depth in the
// return-address stack built from call/return instructions; a
// JumpTargetIndex extension payload is resolved purely by position in
// jumpTargetCache and never consults or mutates the return stack. A return
// instruction whose reported irdepth disagrees with the stack's actual
// depth falls back to the explicit address the payload carries, rather
// than trusting the stack (see Tracer.resolveDiscontinuity).
type state int

const (
	stateIdle state = iota
	stateActive
)
