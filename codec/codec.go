// Package codec provides pluggable value serialization for the typed
// client layer. Values are stored as opaque strings; a Codec decides how
// a V becomes bytes and back.
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
