// Package compress frames catalog payloads with optional LZ4 or ZSTD
// block compression.
//
// Frame: [UncompressedSize uint32][CompressedSize uint32][Data...].
// CompressedSize == 0 means Data is stored as is.
package compress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/locker/tarantool/internal/conv"
)

// Type identifies the compression algorithm. It is persisted, so values
// must never be renumbered.
type Type uint8

const (
	// None stores payloads uncompressed.
	None Type = 0
	// LZ4 is fast block compression.
	LZ4 Type = 1
	// ZSTD trades speed for a better ratio.
	ZSTD Type = 2
)

// HeaderSize is the size of the frame header.
const HeaderSize = 8

// MaxSize bounds the uncompressed size a frame may declare.
const MaxSize = 64 << 20

// ErrCorrupt is returned for frames that cannot be decoded.
var ErrCorrupt = errors.New("compress: corrupt frame")

func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case ZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// Valid reports whether t is a known algorithm.
func (t Type) Valid() bool {
	return t <= ZSTD
}

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxSize))
	return dec
}

// Encode frames data, compressing it with t. Data that does not shrink
// below 90% of its size is stored uncompressed.
func Encode(data []byte, t Type) ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("compress: unknown type %s", t)
	}
	size, err := conv.Uint32(len(data))
	if err != nil || len(data) > MaxSize {
		return nil, fmt.Errorf("compress: payload of %d bytes too large", len(data))
	}

	var packed []byte
	switch t {
	case LZ4:
		packed, err = encodeLZ4(data)
	case ZSTD:
		enc := getZstdEncoder()
		packed = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	}
	if err != nil {
		return nil, err
	}

	if len(packed) == 0 || float64(len(packed)) > float64(len(data))*0.9 {
		out := make([]byte, HeaderSize+len(data))
		binary.LittleEndian.PutUint32(out[0:], size)
		binary.LittleEndian.PutUint32(out[4:], 0)
		copy(out[HeaderSize:], data)
		return out, nil
	}

	out := make([]byte, HeaderSize+len(packed))
	binary.LittleEndian.PutUint32(out[0:], size)
	binary.LittleEndian.PutUint32(out[4:], uint32(len(packed))) //nolint:gosec // smaller than size
	copy(out[HeaderSize:], packed)
	return out, nil
}

func encodeLZ4(data []byte) ([]byte, error) {
	buf := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, buf, nil)
	if err != nil {
		return nil, err
	}
	// n == 0 means incompressible.
	return buf[:n], nil
}

// Decode unframes data written by Encode with the same t.
func Decode(data []byte, t Type) ([]byte, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrCorrupt, len(data))
	}
	rawSize := binary.LittleEndian.Uint32(data[0:])
	rawPacked := binary.LittleEndian.Uint32(data[4:])
	body := data[HeaderSize:]

	if rawSize > MaxSize {
		return nil, fmt.Errorf("%w: declared size %d exceeds limit", ErrCorrupt, rawSize)
	}
	size, err := conv.Int(rawSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	packedSize, err := conv.Int(rawPacked)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	if packedSize == 0 {
		if len(body) != size {
			return nil, fmt.Errorf("%w: stored %d bytes, header says %d", ErrCorrupt, len(body), size)
		}
		return body, nil
	}
	if len(body) != packedSize {
		return nil, fmt.Errorf("%w: compressed %d bytes, header says %d", ErrCorrupt, len(body), packedSize)
	}

	out := make([]byte, size)
	switch t {
	case LZ4:
		n, err := lz4.UncompressBlock(body, out)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		if n != size {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
		return out, nil
	case ZSTD:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)
		decoded, err := dec.DecodeAll(body, out[:0])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		if len(decoded) != size {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
		return decoded, nil
	default:
		return nil, fmt.Errorf("%w: compressed frame with type %s", ErrCorrupt, t)
	}
}
