package catalog

import (
	"github.com/locker/tarantool/codec"
	"github.com/locker/tarantool/internal/compress"
	"github.com/locker/tarantool/resource"
	"github.com/locker/tarantool/tupledict"
)

// DefaultPrefix is the key prefix schemas are stored under.
const DefaultPrefix = "schemas/"

// Compression selects how schema payloads are compressed.
type Compression = compress.Type

// Compression algorithms.
const (
	CompressionNone = compress.None
	CompressionLZ4  = compress.LZ4
	CompressionZSTD = compress.ZSTD
)

type options struct {
	codec       codec.Codec
	compression Compression
	resources   *resource.Controller
	prefix      string
	logger      *tupledict.Logger
}

// Option configures a Catalog.
type Option func(*options)

func defaultOptions() options {
	return options{
		codec:       codec.Default,
		compression: CompressionZSTD,
		prefix:      DefaultPrefix,
		logger:      tupledict.NoopLogger(),
	}
}

// WithCodec sets the codec new blobs are written with.
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression sets the compression of new blobs.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithResourceController limits catalog IO throughput and the number of
// concurrent blob operations of SaveAll and LoadAll.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.resources = rc
	}
}

// WithPrefix sets the key prefix schemas are stored under.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *tupledict.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = tupledict.NoopLogger()
		}
		o.logger = l
	}
}
