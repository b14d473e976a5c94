package intern

// serde.go implements structured serialization adapters for Handle. Both
// codecs wired here (encoding/json and gopkg.in/yaml.v3) round-trip
// arbitrary []byte losslessly, preserving the exact byte value rather than
// a lossy text transcoding: encoding/json writes a base64 string, while
// yaml.v3 writes a sequence of integers, one per byte (not a base64
// !!binary scalar).
//
// encoding/json is used directly (stdlib) — see DESIGN.md for why no
// third-party JSON library fits here.

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// MarshalJSON implements json.Marshaler. []byte marshals to a base64 string
// by the standard library's own convention, so the round trip is lossless.
func (h *Handle) MarshalJSON() ([]byte, error) {
    return json.Marshal(h.Bytes())
}

// UnmarshalJSON implements json.Unmarshaler. h must be a freshly
// zero-valued *Handle; decoding interns the bytes.
func (h *Handle) UnmarshalJSON(data []byte) error {
    var b []byte
    if err := json.Unmarshal(data, &b); err != nil {
        return err
    }
    nh, err := New(b)
    if err != nil {
        return err
    }
    h.adopt(nh)
    return nil
}

// MarshalYAML implements yaml.Marshaler by returning the raw bytes, which
// yaml.v3 encodes as a sequence of integers, one per byte; the output is
// not a !!binary (base64) scalar.
func (h *Handle) MarshalYAML() (interface{}, error) {
    return h.Bytes(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler. h must be a freshly
// zero-valued *Handle; decoding interns the bytes.
func (h *Handle) UnmarshalYAML(value *yaml.Node) error {
    var b []byte
    if err := value.Decode(&b); err != nil {
        return err
    }
    nh, err := New(b)
    if err != nil {
        return err
    }
    h.adopt(nh)
    return nil
}
