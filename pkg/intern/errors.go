package intern

import "errors"

var (
    // ErrAllocation wraps an allocation failure while constructing a new
    // shared buffer. The pool's shard lock is still held when this occurs,
    // so shard state is left unchanged.
    ErrAllocation = errors.New("intern: buffer allocation failed")

    // ErrDanglingBorrow signals that Borrow.Intern was called on a view
    // whose bytes are no longer present in the pool — a programmer
    // contract violation (the Borrow outlived its Handle).
    ErrDanglingBorrow = errors.New("intern: borrow outlived its handle")

    // ErrInvalidEncoding is returned by the length-prefixed binary codec
    // when the input is truncated or the varint length header is malformed.
    ErrInvalidEncoding = errors.New("intern: invalid length-prefixed encoding")
)
