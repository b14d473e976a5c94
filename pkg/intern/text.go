package intern

// text.go implements byte-string formatting and path/OS-string adapters for
// Handle and Borrow. strings.ToValidUTF8 is used as the lossy transcoder
// for display purposes (see DESIGN.md for why no third-party library fits
// here).

import (
	"fmt"
	"strings"

	"github.com/Voskan/internmint/internal/unsafehelpers"
)

const replacementRune = "�"

// String renders the Handle's bytes as a human-readable string, lossily
// replacing invalid UTF-8 sequences. Intended for debug and display, not for
// round-tripping — use MarshalBinary/MarshalJSON for that.
func (h *Handle) String() string {
    return strings.ToValidUTF8(string(h.Bytes()), replacementRune)
}

// GoString implements fmt.GoStringer for %#v debug output.
func (h *Handle) GoString() string {
    return fmt.Sprintf("intern.Handle{addr:%#x, len:%d, bytes:%q}", h.Address(), len(h.Bytes()), h.Bytes())
}

// Path reinterprets the Handle's bytes as an OS-native path string via a
// zero-copy byte->string conversion. On platforms where paths are raw bytes
// (POSIX) this is lossless; on platforms with a different native path
// encoding (Windows) the conversion is lossy. The returned string must not
// outlive h.
func (h *Handle) Path() string {
    return unsafehelpers.BytesToString(h.Bytes())
}

// FromPath interns an OS-native path string, the inverse of Path: it
// reinterprets s as bytes via a zero-copy string->[]byte conversion and
// hands them to New, which copies them into the pool's own buffer before s
// (or its backing array) can be reused by the caller.
func FromPath(s string) (*Handle, error) {
    return New(unsafehelpers.StringToBytes(s))
}

// String renders the Borrow's bytes the same way Handle.String does.
func (b Borrow) String() string {
    return strings.ToValidUTF8(string(b.Bytes()), replacementRune)
}

// GoString implements fmt.GoStringer for %#v debug output.
func (b Borrow) GoString() string {
    return fmt.Sprintf("intern.Borrow{len:%d, bytes:%q}", len(b.Bytes()), b.Bytes())
}

// Path reinterprets the Borrow's bytes as an OS-native path string; see
// Handle.Path for the lossiness caveat. The returned string must not
// outlive the Handle the Borrow was derived from.
func (b Borrow) Path() string {
    return unsafehelpers.BytesToString(b.Bytes())
}
