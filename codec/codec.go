// Package codec encodes the schema records the catalog persists.
//
// Every catalog blob records the name of the codec that wrote it, so the
// default may change without breaking stored schemas: readers select the
// codec with ByName.
package codec

import "fmt"

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

const (
	nameJSON   = "json"
	nameGoJSON = "go-json"
)

// Default is the codec used for newly written blobs.
var Default Codec = GoJSON{}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case nameJSON:
		return JSON{}, true
	case nameGoJSON:
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// MustMarshal is a helper for tests and fixtures.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
