package intern

// address.go isolates the one unavoidable unsafe.Pointer->uintptr
// conversion the pool needs: a sharedBuffer's own heap address is its
// identity for as long as any strong reference keeps it alive. Go's
// garbage collector does not move heap objects allocated via new/&T{}, so
// this address is stable for the buffer's lifetime.

import (
	"io"
	"unsafe"
)

func bufAddr(buf *sharedBuffer) unsafe.Pointer {
    return unsafe.Pointer(buf)
}

// hasher is satisfied by hash/maphash.Hash and the standard hash.Hash
// family; Handle.Hash/HashBytes only need Write.
type hasher interface {
    io.Writer
}

func writeAddress(w hasher, buf *sharedBuffer) {
    addr := uint64(uintptr(bufAddr(buf)))
    var b [8]byte
    for i := range b {
        b[i] = byte(addr >> (8 * i))
    }
    _, _ = w.Write(b[:])
}
