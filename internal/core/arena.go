package core

import (
	"fmt"
	"slices"
	"sync"
)

// Arena is a linear byte region that hands out spans addressed by offset.
// Hosts that cannot hold Go references read simulation state straight out
// of Bytes() using an offset and a length obtained from the owner of a span.
//
// Growing the region reallocates it, so slices previously returned by Bytes
// or Slice stop aliasing live storage. Offsets stay valid until the span is
// freed.
type Arena struct {
	mu   sync.Mutex
	data []byte
	free []span
}

type span struct {
	off, n int
}

var memory = NewArena(0)

// Memory returns the process-wide arena.
func Memory() *Arena { return memory }

// NewArena returns an empty arena with the given initial capacity.
func NewArena(capacity int) *Arena {
	if capacity < 0 {
		capacity = 0
	}
	return &Arena{data: make([]byte, 0, capacity)}
}

// Alloc reserves n zeroed bytes and returns their offset.
func (a *Arena) Alloc(n int) int {
	if n < 0 {
		panic(fmt.Sprintf("core: negative allocation %d", n))
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	for i, s := range a.free {
		if s.n < n {
			continue
		}
		off := s.off
		if s.n == n {
			a.free = slices.Delete(a.free, i, i+1)
		} else {
			a.free[i] = span{off: s.off + n, n: s.n - n}
		}
		clear(a.data[off : off+n])
		return off
	}
	off := len(a.data)
	a.data = append(a.data, make([]byte, n)...)
	return off
}

// Free returns the span [off, off+n) to the arena. Adjacent free spans are
// merged, and a free span at the end of the region shrinks it.
func (a *Arena) Free(off, n int) {
	if n <= 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if off < 0 || off+n > len(a.data) {
		panic(fmt.Sprintf("core: free of [%d,%d) outside arena of %d bytes", off, off+n, len(a.data)))
	}
	a.free = append(a.free, span{off: off, n: n})
	slices.SortFunc(a.free, func(x, y span) int { return x.off - y.off })
	merged := a.free[:1]
	for _, s := range a.free[1:] {
		last := &merged[len(merged)-1]
		if last.off+last.n == s.off {
			last.n += s.n
			continue
		}
		merged = append(merged, s)
	}
	a.free = merged
	if tail := a.free[len(a.free)-1]; tail.off+tail.n == len(a.data) {
		a.data = a.data[:tail.off]
		a.free = a.free[:len(a.free)-1]
	}
}

// Slice returns the live bytes of the span [off, off+n).
func (a *Arena) Slice(off, n int) []byte {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.data[off : off+n : off+n]
}

// Bytes exposes the whole region.
func (a *Arena) Bytes() []byte {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.data
}

// Len reports the current size of the region in bytes.
func (a *Arena) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.data)
}
