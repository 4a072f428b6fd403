package namehash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSum32_KnownVectors(t *testing.T) {
	tests := []struct {
		seed uint32
		in   string
		want uint32
	}{
		{0, "", 0},
		{1, "", 0x514E28B7},
		{0, "hello", 0x248BFA47},
		{1234, "Hello, world!", 0xFAF6CDB3},
		{0x9747B28C, "The quick brown fox jumps over the lazy dog", 0x2FA826CD},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Sum32(tt.seed, []byte(tt.in)), "seed=%d in=%q", tt.seed, tt.in)
	}
}

func TestState_StreamingMatchesOneShot(t *testing.T) {
	data := []byte("idnameageemailcreated_atupdated_at")

	// Every split into up to three pieces must agree with the one-shot hash.
	want := Sum32(DefaultSeed, data)
	for i := 0; i <= len(data); i++ {
		for j := i; j <= len(data); j++ {
			st := NewState(DefaultSeed)
			st.Process(data[:i])
			st.Process(data[i:j])
			st.Process(data[j:])
			assert.Equal(t, want, st.Sum(uint32(len(data))), "split at %d,%d", i, j)
		}
	}
}

func TestState_ByteAtATime(t *testing.T) {
	data := []byte("abcdefg")
	st := NewState(7)
	for _, b := range data {
		st.Process([]byte{b})
	}
	assert.Equal(t, Sum32(7, data), st.Sum(uint32(len(data))))
}

func TestState_SumDoesNotMutate(t *testing.T) {
	st := NewState(0)
	st.ProcessString("abc")
	before := st
	_ = st.Sum(3)
	assert.Equal(t, before, st)

	st.ProcessString("")
	assert.Equal(t, before, st)
}

func TestState_OrderSensitive(t *testing.T) {
	a := NewState(DefaultSeed)
	a.ProcessString("id")
	a.ProcessString("name")

	b := NewState(DefaultSeed)
	b.ProcessString("name")
	b.ProcessString("id")

	assert.NotEqual(t, a.Sum(6), b.Sum(6))
}
