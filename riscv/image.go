package riscv

// BinaryImage maps an address to the raw instruction bytes stored there.
// Fetch must return at least the bytes needed to decode the instruction at
// addr (2, or 4 bytes); it may return more, which Decode ignores past the
// sniffed length.
//
// A BinaryImage reports two distinct failure modes: a *MissError when addr
// simply isn't covered by this image (the tracer tries another image, or
// gives up tracing that region), and any other error when the address is
// covered but the bytes there could not be produced (I/O failure, corrupt
// segment). Combinators only fall through to an alternate image on a miss.
type BinaryImage interface {
	Fetch(addr uint64) ([]byte, error)
}

// Func adapts a plain function to BinaryImage.
type Func func(addr uint64) ([]byte, error)

func (f Func) Fetch(addr uint64) ([]byte, error) { return f(addr) }

// Offset wraps an image whose contents are addressed relative to base: a
// lookup at addr is served from the inner image at addr-base.
type Offset struct {
	Base  uint64
	Image BinaryImage
}

func (o Offset) Fetch(addr uint64) ([]byte, error) {
	if addr < o.Base {
		return nil, &MissError{Addr: addr}
	}
	return o.Image.Fetch(addr - o.Base)
}

// Fallback tries First, and on a miss tries Second. Any non-miss error from
// First is returned immediately without consulting Second.
type Fallback struct {
	First, Second BinaryImage
}

func (f Fallback) Fetch(addr uint64) ([]byte, error) {
	b, err := f.First.Fetch(addr)
	if err == nil {
		return b, nil
	}
	if !IsMiss(err) {
		return nil, err
	}
	return f.Second.Fetch(addr)
}

// MultiFallback tries each image in order, returning the first hit. It
// reports a miss only if every image misses; a non-miss error from any
// image is returned immediately.
type MultiFallback []BinaryImage

func (m MultiFallback) Fetch(addr uint64) ([]byte, error) {
	for _, img := range m {
		b, err := img.Fetch(addr)
		if err == nil {
			return b, nil
		}
		if !IsMiss(err) {
			return nil, err
		}
	}
	return nil, &MissError{Addr: addr}
}

// Segment is an in-memory BinaryImage backed by a contiguous byte slice
// loaded at Base.
type Segment struct {
	Base uint64
	Data []byte
}

func (s Segment) Fetch(addr uint64) ([]byte, error) {
	if addr < s.Base || addr >= s.Base+uint64(len(s.Data)) {
		return nil, &MissError{Addr: addr}
	}
	return s.Data[addr-s.Base:], nil
}

// SparseImage is a BinaryImage backed by a set of non-contiguous segments,
// looked up by the segment whose range contains addr. Segments must not
// overlap; SparseImage does not validate this at construction time.
type SparseImage []Segment

func (s SparseImage) Fetch(addr uint64) ([]byte, error) {
	for _, seg := range s {
		if addr >= seg.Base && addr < seg.Base+uint64(len(seg.Data)) {
			return seg.Data[addr-seg.Base:], nil
		}
	}
	return nil, &MissError{Addr: addr}
}
