// Package intern implements a concurrent, sharded byte-string interning
// pool: a process-wide service that deduplicates byte sequences so that, at
// any instant, every live Handle to a given sequence of bytes shares a
// single backing buffer.
//
// The pool is split into a fixed array of shards to minimise lock
// contention: each shard owns its own mutex and table, so unrelated byte
// sequences rarely block each other.
//
// © 2025 internmint authors. MIT License.
package intern

import (
	"bytes"
	"fmt"
	"hash/maphash"
	"math/bits"
	"runtime"
	"sync"
	"sync/atomic"
)

// sharedBuffer is a heap-allocated, immutable byte sequence with an atomic
// strong-reference count. The pool holds exactly one strong reference per
// live entry; every live Handle holds exactly one more. Its own address
// (the pointer to the struct, not the data) is the stable identity used by
// Handle/Borrow equality, hashing, and ordering-independent comparisons.
type sharedBuffer struct {
    data []byte

    // refs is the buffer's strong count: 1 for the pool's own reference,
    // plus one for every live Handle. pinned buffers (the default empty
    // handle) are never evicted regardless of refs.
    refs atomic.Int64

    pinned bool
}

func newSharedBuffer(v []byte) (buf *sharedBuffer, err error) {
    defer func() {
        if r := recover(); r != nil {
            buf = nil
            err = fmt.Errorf("%w: %v", ErrAllocation, r)
        }
    }()
    data := make([]byte, len(v))
    copy(data, v)
    buf = &sharedBuffer{data: data}
    buf.refs.Store(1)
    return buf, nil
}

// shard owns one mutex-protected bucket of the canonical set. Buckets are
// keyed by the pool's seeded hash of the stored bytes; a bucket is a slice
// instead of a single pointer because distinct byte sequences may share a
// 64-bit hash (there is still at most one entry per distinct byte value,
// never per distinct hash).
type shard struct {
    idx   int
    mu    sync.Mutex
    table map[uint64][]*sharedBuffer

    inserts   atomic.Uint64
    hits      atomic.Uint64
    evictions atomic.Uint64
}

func newShard(idx int) *shard {
    return &shard{idx: idx, table: make(map[uint64][]*sharedBuffer)}
}

// insertOrGet looks up an existing entry by (hash, byte-equality); on hit,
// it bumps the stored buffer's strong count; on miss, it allocates and
// inserts a new one. Either way the returned buffer carries one extra
// strong reference belonging to the caller.
func (s *shard) insertOrGet(h uint64, v []byte) (*sharedBuffer, error) {
    s.mu.Lock()
    defer s.mu.Unlock()

    for _, cand := range s.table[h] {
        if bytes.Equal(cand.data, v) {
            cand.refs.Add(1)
            s.hits.Add(1)
            return cand, nil
        }
    }

    buf, err := newSharedBuffer(v)
    if err != nil {
        return nil, err
    }
    s.table[h] = append(s.table[h], buf)
    buf.refs.Add(1) // the caller's reference, on top of the pool's own
    s.inserts.Add(1)
    return buf, nil
}

// getByAddress looks up an entry by buffer identity rather than bytes; used
// to re-promote a Borrow back into a Handle.
func (s *shard) getByAddress(h uint64, want *sharedBuffer) (*sharedBuffer, bool) {
    s.mu.Lock()
    defer s.mu.Unlock()

    for _, cand := range s.table[h] {
        if cand == want {
            cand.refs.Add(1)
            return cand, true
        }
    }
    return nil, false
}

// evictIfLast conditionally removes buf from the shard's table once its
// last external strong reference is gone. It is called exactly once per
// Handle drop, while that Handle's own reference is still counted in
// buf.refs — the two-phase unlocked/locked strong-count check is the crux
// of the pool's race-freedom: the unlocked peek avoids taking the shard
// lock on the common case where other Handles are still alive, and the
// locked recheck guards against a concurrent Clone landing between the
// peek and the lock.
func (s *shard) evictIfLast(h uint64, buf *sharedBuffer) (evicted bool) {
    const minStrongCount = 2 // pool's reference + the soon-to-die Handle

    if buf.pinned {
        return false
    }
    if buf.refs.Load() > minStrongCount {
        return false // a third party is still holding on; no point locking
    }

    s.mu.Lock()
    defer s.mu.Unlock()

    bucket := s.table[h]
    for i, cand := range bucket {
        if cand != buf {
            continue
        }
        if buf.refs.Load() <= minStrongCount {
            bucket[i] = bucket[len(bucket)-1]
            bucket = bucket[:len(bucket)-1]
            if len(bucket) == 0 {
                delete(s.table, h)
            } else {
                s.table[h] = bucket
            }
            buf.refs.Add(-1) // release the pool's own reference
            s.evictions.Add(1)
            evicted = true
        }
        return
    }
    return
}

func (s *shard) len() int {
    s.mu.Lock()
    defer s.mu.Unlock()
    n := 0
    for _, bucket := range s.table {
        n += len(bucket)
    }
    return n
}

// shardedPool is the process-wide canonical set. It is never torn down and
// never shrinks its shard array once sized at first use.
type shardedPool struct {
    shift   uint
    seed    maphash.Seed
    shards  []*shard
    logger  loggerSink
    metrics metricsSink
}

func newShardedPool(logger loggerSink, metrics metricsSink) *shardedPool {
    n := runtime.NumCPU()
    if n < 1 {
        n = 1
    }
    count := nextPowerOfTwo(n * 4)
    if count < 1 {
        count = 1
    }

    shards := make([]*shard, count)
    for i := range shards {
        shards[i] = newShard(i)
    }

    return &shardedPool{
        // Matches dashmap's shard-selection trick: (h<<7)>>shift takes the
        // log2(count) bits just below the hash's top seven bits, so shard
        // choice is decorrelated from the top bits a downstream table
        // would consume.
        shift:   uint(bits.UintSize) - uint(bits.TrailingZeros(uint(count))),
        seed:    maphash.MakeSeed(),
        shards:  shards,
        logger:  logger,
        metrics: metrics,
    }
}

func nextPowerOfTwo(n int) int {
    if n <= 1 {
        return 1
    }
    return 1 << bits.Len(uint(n-1))
}

func (p *shardedPool) hash(v []byte) uint64 {
    var h maphash.Hash
    h.SetSeed(p.seed)
    h.Write(v)
    return h.Sum64()
}

func (p *shardedPool) shardFor(h uint64) *shard {
    idx := (h << 7) >> p.shift
    return p.shards[idx]
}

func (p *shardedPool) len() int {
    total := 0
    for _, s := range p.shards {
        total += s.len()
    }
    return total
}

var (
    poolOnce sync.Once
    poolInst *shardedPool
)

func getPool() *shardedPool {
    poolOnce.Do(func() {
        logger, metrics := consumePendingConfig()
        poolInst = newShardedPool(logger, metrics)
    })
    return poolInst
}

// Len returns the number of distinct byte sequences currently held by the
// pool, including the non-evictable default empty-sequence entry once it
// has been materialized (see Default). Advisory only: it sums shard lengths
// under their locks and is only exact when the caller can guarantee
// quiescence.
func Len() int {
    return getPool().len()
}

// IsEmpty reports whether the pool currently holds no entries.
func IsEmpty() bool {
    return Len() == 0
}
