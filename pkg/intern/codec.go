package intern

// codec.go implements a length-prefixed binary adapter: encode as
// uvarint(len) ∥ bytes, decode reads the same and interns, yielding a
// Handle that is address-equal to any live Handle over identical bytes.

import "encoding/binary"

// MarshalBinary implements encoding.BinaryMarshaler.
func (h *Handle) MarshalBinary() ([]byte, error) {
    b := h.Bytes()
    out := make([]byte, binary.MaxVarintLen64+len(b))
    n := binary.PutUvarint(out, uint64(len(b)))
    n += copy(out[n:], b)
    return out[:n], nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. h must be a freshly
// zero-valued *Handle; decoding interns the bytes, so the result is
// address-equal to any other live Handle over the same bytes.
func (h *Handle) UnmarshalBinary(data []byte) error {
    n, sz := binary.Uvarint(data)
    if sz <= 0 {
        return ErrInvalidEncoding
    }
    rest := data[sz:]
    if uint64(len(rest)) < n {
        return ErrInvalidEncoding
    }

    nh, err := New(rest[:n])
    if err != nil {
        return err
    }
    h.adopt(nh)
    return nil
}
