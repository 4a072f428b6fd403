package catalog

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/locker/tarantool/codec"
	"github.com/locker/tarantool/internal/compress"
	"github.com/locker/tarantool/internal/hash"
)

const (
	magic   = "TDCT"
	version = 1
	// magic, version, compression, codec name length
	fixedHeaderSize = len(magic) + 3
)

var (
	// ErrCorrupt is returned for blobs that are not well-formed schemas.
	ErrCorrupt = errors.New("catalog: corrupt schema blob")
	// ErrChecksumMismatch is returned when a blob's payload does not match
	// its checksum.
	ErrChecksumMismatch = errors.New("catalog: checksum mismatch")
)

type record struct {
	Name   string   `json:"name"`
	Fields []string `json:"fields"`
}

// encodeBlob writes the framed record to w.
func encodeBlob(w io.Writer, rec record, c codec.Codec, comp compress.Type) error {
	name := c.Name()
	if len(name) == 0 || len(name) > 255 {
		return fmt.Errorf("catalog: codec name %q cannot be recorded", name)
	}

	raw, err := c.Marshal(rec)
	if err != nil {
		return fmt.Errorf("catalog: encode %q: %w", rec.Name, err)
	}
	payload, err := compress.Encode(raw, comp)
	if err != nil {
		return fmt.Errorf("catalog: compress %q: %w", rec.Name, err)
	}

	hdr := make([]byte, 0, fixedHeaderSize+len(name)+4)
	hdr = append(hdr, magic...)
	hdr = append(hdr, version, byte(comp), byte(len(name)))
	hdr = append(hdr, name...)
	hdr = binary.LittleEndian.AppendUint32(hdr, hash.CRC32C(payload))

	if _, err := w.Write(hdr); err != nil {
		return err
	}
	_, err = w.Write(payload)
	return err
}

// decodeBlob parses a blob written by encodeBlob.
func decodeBlob(data []byte) (record, error) {
	var rec record

	if len(data) < fixedHeaderSize || !bytes.Equal(data[:len(magic)], []byte(magic)) {
		return rec, fmt.Errorf("%w: bad magic", ErrCorrupt)
	}
	if v := data[4]; v != version {
		return rec, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, v)
	}
	comp := compress.Type(data[5])
	if !comp.Valid() {
		return rec, fmt.Errorf("%w: unknown compression %s", ErrCorrupt, comp)
	}
	nameLen := int(data[6])
	rest := data[fixedHeaderSize:]
	if len(rest) < nameLen+4 {
		return rec, fmt.Errorf("%w: truncated header", ErrCorrupt)
	}
	c, ok := codec.ByName(string(rest[:nameLen]))
	if !ok {
		return rec, fmt.Errorf("%w: unknown codec %q", ErrCorrupt, rest[:nameLen])
	}
	sum := binary.LittleEndian.Uint32(rest[nameLen:])
	payload := rest[nameLen+4:]

	if got := hash.CRC32C(payload); got != sum {
		return rec, fmt.Errorf("%w: stored %08x, computed %08x", ErrChecksumMismatch, sum, got)
	}

	raw, err := compress.Decode(payload, comp)
	if err != nil {
		return rec, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if err := c.Unmarshal(raw, &rec); err != nil {
		return rec, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return rec, nil
}
