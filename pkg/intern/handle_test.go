package intern

import (
	"fmt"
	"hash/maphash"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hashSeed is shared by addressHash and contentHash so that hashes taken at
// different points of a test are comparable.
var hashSeed = maphash.MakeSeed()

func addressHash(t *testing.T, h *Handle) uint64 {
    t.Helper()
    var mh maphash.Hash
    mh.SetSeed(hashSeed)
    h.Hash(&mh)
    return mh.Sum64()
}

func contentHash(t *testing.T, h *Handle) uint64 {
    t.Helper()
    var mh maphash.Hash
    mh.SetSeed(hashSeed)
    h.HashBytes(&mh)
    return mh.Sum64()
}

// TestHashDistinction verifies that content hashes are stable across
// address churn, while address hashes are not.
func TestHashDistinction(t *testing.T) {
    first, err := New([]byte("x"))
    require.NoError(t, err)

    firstAddrHash := addressHash(t, first)
    firstContentHash := contentHash(t, first)
    first.Release()

    // Churn the allocator with unrelated interned values so a future
    // interning of "x" is very unlikely to land at the same address.
    for i := 0; i < 64; i++ {
        h, err := New([]byte(fmt.Sprintf("churn-%d", i)))
        require.NoError(t, err)
        h.Release()
    }

    second, err := New([]byte("x"))
    require.NoError(t, err)
    defer second.Release()

    secondAddrHash := addressHash(t, second)
    secondContentHash := contentHash(t, second)

    assert.Equal(t, firstContentHash, secondContentHash, "content hash must be stable across addresses")
    assert.NotEqual(t, firstAddrHash, secondAddrHash, "address hash must differ once the address changes")
}

func TestOrderingIsByteLexicographic(t *testing.T) {
    a, err := New([]byte("alpha"))
    require.NoError(t, err)
    defer a.Release()
    b, err := New([]byte("beta"))
    require.NoError(t, err)
    defer b.Release()

    assert.Negative(t, a.Compare(b))
    assert.Positive(t, b.Compare(a))

    c, err := New([]byte("alpha"))
    require.NoError(t, err)
    defer c.Release()
    assert.Zero(t, a.Compare(c))
}

// TestMapLookupByKey verifies that a map keyed by Handle.Key accepts
// both a freshly interned Handle and a Borrow derived from a live Handle
// over the same bytes, and rejects unrelated bytes.
func TestMapLookupByKey(t *testing.T) {
    original, err := New([]byte("key"))
    require.NoError(t, err)
    defer original.Release()

    m := map[mapKey]int{original.Key(): 1}

    lookup, err := New([]byte("key"))
    require.NoError(t, err)
    defer lookup.Release()
    v, ok := m[lookup.Key()]
    require.True(t, ok)
    assert.Equal(t, 1, v)

    borrowed := original.Borrow()
    v, ok = m[borrowed.Key()]
    require.True(t, ok)
    assert.Equal(t, 1, v)

    unknown, err := New([]byte("unknown_key"))
    require.NoError(t, err)
    defer unknown.Release()
    _, ok = m[unknown.Key()]
    assert.False(t, ok)
}

func TestHandleStringAndGoString(t *testing.T) {
    h, err := New([]byte("hello"))
    require.NoError(t, err)
    defer h.Release()

    assert.Equal(t, "hello", h.String())
    assert.Contains(t, h.GoString(), "intern.Handle{")
}

// TestFromPathRoundTrip verifies that FromPath and Path are inverses, and
// that FromPath interns into the same entry as an equivalent New call.
func TestFromPathRoundTrip(t *testing.T) {
    viaBytes, err := New([]byte("/var/lib/internmint"))
    require.NoError(t, err)
    defer viaBytes.Release()

    viaPath, err := FromPath("/var/lib/internmint")
    require.NoError(t, err)
    defer viaPath.Release()

    assert.Equal(t, viaBytes.Address(), viaPath.Address())
    assert.Equal(t, "/var/lib/internmint", viaPath.Path())
}

func TestDefaultHandleIsNonEvictable(t *testing.T) {
    baselineBeforeDefault := Len()

    d1 := Default()
    afterFirst := Len()
    assert.GreaterOrEqual(t, afterFirst, baselineBeforeDefault)

    d1.Release()
    // Releasing a Handle over the default entry must never evict it.
    assert.Equal(t, afterFirst, Len())

    d2 := Default()
    assert.Equal(t, d1.Address(), d2.Address())
    d2.Release()
}

func TestReleaseIsIdempotent(t *testing.T) {
    baseline := Len()

    h, err := New([]byte("idempotent-release"))
    require.NoError(t, err)

    h.Release()
    assert.Equal(t, baseline, Len())

    assert.NotPanics(t, func() { h.Release() })
    assert.Equal(t, baseline, Len())
}
