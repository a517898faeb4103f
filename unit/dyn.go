package unit

// Dyn is a type-erased Unit: a single concrete type that wraps any Unit
// implementation so a caller handling a heterogeneous capture (packets from
// more than one kind of encoder) does not need to monomorphize every call
// site over a generic unit type parameter, per spec.md §9's "prefer
// compile-time dispatch with a type-erased plug for heterogeneous callers."
type Dyn struct {
	name     string
	params   Params
	ioptions IOptions
	doptions DOptions
}

// NewDyn captures a snapshot of u's configuration into a Dyn. Because Unit
// accessors return values, not pointers, the snapshot is independent of any
// later mutation of the source unit.
func NewDyn(u Unit) Dyn {
	return Dyn{
		name:     u.Name(),
		params:   u.Params(),
		ioptions: u.IOptions(),
		doptions: u.DOptions(),
	}
}

func (d Dyn) Name() string       { return d.name }
func (d Dyn) Params() Params     { return d.params }
func (d Dyn) IOptions() IOptions { return d.ioptions }
func (d Dyn) DOptions() DOptions { return d.doptions }

var _ Unit = Dyn{}
var _ Unit = (*Reference)(nil)
var _ Unit = (*PULP)(nil)
