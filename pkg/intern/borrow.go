package intern

// borrow.go implements Borrow: a non-owning view into a live Handle's
// bytes. It carries the same address-based equality and hash as a Handle so
// that containers keyed by Handles accept Borrows as query keys, without
// cloning or allocating.

import "bytes"

// Borrow is a thin, non-owning view — the only data it holds is a single
// pointer to the shared buffer owned elsewhere, so it is not
// layout-compatible with a []byte (which also carries a length and
// capacity). It must always be obtained from a live Handle (or Default)
// and must not outlive it.
type Borrow struct {
    buf *sharedBuffer
}

// Borrow derives a non-owning view from h. The returned Borrow must not
// outlive h.
func (h *Handle) Borrow() Borrow {
    return Borrow{buf: h.buf}
}

// Bytes returns a zero-copy view of the borrowed sequence.
func (b Borrow) Bytes() []byte {
    return b.buf.data
}

// Equal reports address equality with another Borrow. A byte-equal but
// address-distinct Borrow compares unequal here; that situation cannot
// arise between two views derived from live handles over the same bytes,
// since every live handle over identical bytes shares one buffer.
func (b Borrow) Equal(other Borrow) bool {
    return b.buf == other.buf
}

// EqualHandle reports address equality against a Handle.
func (b Borrow) EqualHandle(h *Handle) bool {
    return b.buf == h.buf
}

// Compare implements byte-lexicographic ordering, consistent with
// Handle.Compare.
func (b Borrow) Compare(other Borrow) int {
    return bytes.Compare(b.buf.data, other.buf.data)
}

// Key returns the same comparable map-key shape as Handle.Key, so a map
// populated with Handle keys can be queried with a Borrow.
func (b Borrow) Key() mapKey {
    return mapKey{b.buf}
}

// Hash feeds b's address to mh, consistent with Handle.Hash.
func (b Borrow) Hash(mh hasher) {
    writeAddress(mh, b.buf)
}

// HashBytes feeds b's bytes (plus the trailing disambiguator byte) to mh,
// consistent with Handle.HashBytes.
func (b Borrow) HashBytes(mh hasher) {
    mh.Write(b.buf.data)
    mh.Write(zeroByte[:])
}

// Intern re-promotes a Borrow into an owning Handle by looking up the
// backing buffer by address in the pool. This is a genuine contract
// violation, not a recoverable error, if the bytes are no longer present —
// which by construction cannot happen for a Borrow derived from a still
// live Handle.
func (b Borrow) Intern() *Handle {
    p := getPool()
    h := p.hash(b.buf.data)
    buf, ok := p.shardFor(h).getByAddress(h, b.buf)
    if !ok {
        panic(ErrDanglingBorrow)
    }
    return newHandle(buf)
}
