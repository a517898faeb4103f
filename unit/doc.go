// Package unit models a concrete RISC-V E-Trace encoder: the set of
// recognized options and the widths of the variable-width packet fields
// that depend on them (address, timestamp, context, branch-count, ...).
//
// Two concrete units are provided, Reference (the E-Trace spec's reference
// encoder) and PULP (rv_tracer's narrower encoder), plus Dyn, a
// type-erased plug for callers that need to handle a mix of unit kinds
// without monomorphizing every call site over a generic Unit parameter.
package unit
