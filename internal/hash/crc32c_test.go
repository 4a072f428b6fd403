package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCRC32C_KnownVector(t *testing.T) {
	// RFC 3720 B.4 check value.
	assert.Equal(t, uint32(0xE3069283), CRC32C([]byte("123456789")))
	assert.Equal(t, uint32(0), CRC32C(nil))
}

func TestCRC32C_Streaming(t *testing.T) {
	data := []byte("TDCT\x01\x02id\x00name\x00age\x00")

	h := NewCRC32C()
	_, _ = h.Write(data[:6])
	_, _ = h.Write(data[6:])
	assert.Equal(t, CRC32C(data), h.Sum32())

	assert.Equal(t, CRC32C(data), UpdateCRC32C(CRC32C(data[:6]), data[6:]))
}
