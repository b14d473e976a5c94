package intern

// handle.go implements Handle: an owned, reference-counted reference to a
// pool entry. Equality and hashing are by the entry's buffer address, not
// its bytes — justified by the pool's own dedup guarantee that two live
// handles with identical bytes always share a buffer. Ordering is
// byte-lexicographic so Handles stay usable as keys in ordered containers.
//
// Go has no destructors, so the drop protocol is made explicit: Release()
// is the actual trigger for the shard's conditional eviction, backed by a
// runtime.SetFinalizer safety net for Handles a caller forgets to release
// (same idiom as *os.File's finalizer-backed Close).

import (
	"bytes"
	"runtime"
	"sync"
	"sync/atomic"
)

// Handle owns exactly one strong reference to a pool entry. The zero value
// is not usable; Handles are only produced by New, FromPath, Clone, Default,
// Borrow.Intern, and the deserializing adapters.
type Handle struct {
    buf      *sharedBuffer
    released atomic.Bool
}

// New interns v: it returns a Handle sharing the pool's single buffer for
// v's bytes, allocating one if this is the first live reference to these
// bytes. The returned Handle's bytes are a private copy of v; later
// mutation of v does not affect the Handle.
func New(v []byte) (*Handle, error) {
    p := getPool()
    h := p.hash(v)
    s := p.shardFor(h)
    buf, err := s.insertOrGet(h, v)
    if err != nil {
        p.logger.allocationFailed(err)
        return nil, err
    }
    p.metrics.observeIntern(s.idx)
    return newHandle(buf), nil
}

func newHandle(buf *sharedBuffer) *Handle {
    h := &Handle{buf: buf}
    runtime.SetFinalizer(h, (*Handle).finalize)
    return h
}

// adopt transfers nh's buffer (and the strong reference that comes with it)
// into h, which must be a freshly zero-valued Handle. Used by the
// deserializing adapters instead of a struct copy, which would duplicate
// nh's atomic `released` flag and double-release the shared buffer.
func (h *Handle) adopt(nh *Handle) {
    runtime.SetFinalizer(nh, nil)
    h.buf = nh.buf
    runtime.SetFinalizer(h, (*Handle).finalize)
}

func (h *Handle) finalize() {
    h.Release()
}

// Clone bumps the backing buffer's strong count and returns a new Handle
// sharing the same address. It never touches the pool.
func (h *Handle) Clone() *Handle {
    h.buf.refs.Add(1)
    return newHandle(h.buf)
}

// Release drops this Handle's strong reference, triggering the pool's
// conditional eviction protocol if this was the last external reference.
// Idempotent: calling Release more than once on the same Handle is a no-op,
// so a caller that explicitly releases a Handle which was also reachable by
// the garbage collector cannot double-decrement the buffer's strong count.
func (h *Handle) Release() {
    if !h.released.CompareAndSwap(false, true) {
        return
    }
    runtime.SetFinalizer(h, nil)

    p := getPool()
    hv := p.hash(h.buf.data)
    s := p.shardFor(hv)
    if s.evictIfLast(hv, h.buf) {
        p.metrics.observeEviction(s.idx)
    }
    h.buf.refs.Add(-1)
}

// Bytes returns a zero-copy view of the interned sequence. The slice is
// valid for as long as the Handle is alive; the caller must not mutate it.
func (h *Handle) Bytes() []byte {
    return h.buf.data
}

// Address returns the buffer's stable identity, used for equality and
// hashing. It remains constant for the Handle's lifetime.
func (h *Handle) Address() uintptr {
    return addressOf(h.buf)
}

// Equal reports whether h and other refer to the same pool entry, which is
// equivalent to byte equality for any two live handles.
func (h *Handle) Equal(other *Handle) bool {
    return h.buf == other.buf
}

// Compare implements byte-lexicographic ordering, independent of address,
// so Handles sort deterministically across process runs.
func (h *Handle) Compare(other *Handle) int {
    return bytes.Compare(h.buf.data, other.buf.data)
}

// Hash feeds the Handle's address to mh — the fast hash consistent with
// Equal. Go maps keyed by Key() do not call it; they hash mapKey natively.
func (h *Handle) Hash(mh hasher) {
    writeAddress(mh, h.buf)
}

// HashBytes feeds the Handle's underlying bytes, followed by a single zero
// byte, to mh. The trailing byte disambiguates content hashing from address
// hashing when both are mixed into the same hasher stream: two byte-equal
// handles interned into different addresses at different times produce
// equal HashBytes values but differ under Hash.
func (h *Handle) HashBytes(mh hasher) {
    mh.Write(h.buf.data)
    mh.Write(zeroByte[:])
}

var zeroByte = [1]byte{0}

// Key returns a comparable value that equals, and hashes identically to,
// any live Handle or Borrow over the same bytes. Use it as a map key when
// both Handles and Borrows need to query the same map (the idiomatic Go
// analogue of Rust's Borrow<BorrowedInterned> trait).
func (h *Handle) Key() mapKey {
    return mapKey{h.buf}
}

// mapKey is the single-pointer comparable shape shared by Handle and
// Borrow: Go's built-in == on the embedded pointer is exactly address
// equality, so map[mapKey]V accepts both as query keys without a custom
// Hash/Eq indirection.
type mapKey struct {
    buf *sharedBuffer
}

func addressOf(buf *sharedBuffer) uintptr {
    return uintptr(bufAddr(buf))
}

var (
    defaultOnce   sync.Once
    defaultBuffer *sharedBuffer
)

// Default returns a new Handle over the pool's single, non-evictable empty
// byte sequence, materializing it on first call. The entry is pinned and
// never evicted regardless of how its strong count fluctuates, so a Borrow
// taken from a default Handle stays valid for the life of the process. A
// zero-valued Borrow does not refer to this entry: its buffer pointer is
// nil and its methods cannot be used.
func Default() *Handle {
    materialized := false
    defaultOnce.Do(func() {
        p := getPool()
        h := p.hash(nil)
        buf, err := p.shardFor(h).insertOrGet(h, nil)
        if err != nil {
            // Allocating zero bytes cannot fail in practice; a panic here
            // would indicate the allocator itself is broken.
            panic(err)
        }
        buf.pinned = true
        defaultBuffer = buf
        materialized = true
    })
    // insertOrGet already grants the caller's own strong reference (pool's
    // +1 plus this call's +1); only later calls, which share that same
    // buffer without going through insertOrGet again, need their own +1.
    if !materialized {
        defaultBuffer.refs.Add(1)
    }
    return newHandle(defaultBuffer)
}
