package conv

import (
	"errors"
	"fmt"
	"math"
)

// ErrOverflow is returned when a value does not fit the target width.
var ErrOverflow = errors.New("conv: integer overflow")

// Uint32 narrows a length or offset to the uint32 used by dictionary name
// references and compress frame headers.
func Uint32(n int) (uint32, error) {
	if n < 0 || uint64(n) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d does not fit uint32", ErrOverflow, n)
	}
	return uint32(n), nil
}

// Int widens a uint32 read from a frame header. It only fails where int is
// 32 bits wide.
func Int(v uint32) (int, error) {
	if uint64(v) > uint64(math.MaxInt) {
		return 0, fmt.Errorf("%w: %d does not fit int", ErrOverflow, v)
	}
	return int(v), nil
}
