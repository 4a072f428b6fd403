package codec

import gojson "github.com/goccy/go-json"

// GoJSON is the default schema record codec. Field names are written
// without HTML escaping, so a name such as "a<b" is stored as typed.
type GoJSON struct{}

func (GoJSON) Marshal(v any) ([]byte, error) { return gojson.MarshalNoEscape(v) }

func (GoJSON) Unmarshal(data []byte, v any) error { return gojson.UnmarshalNoEscape(data, v) }

// Name returns "go-json", the tag stored in catalog blob headers.
func (GoJSON) Name() string { return nameGoJSON }
