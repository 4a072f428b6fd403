//go:build unix

package mmap

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// mapFile maps a schema blob read-only and shared, so concurrent loads of
// the same file share page cache.
func mapFile(f *os.File, size int) ([]byte, func([]byte) error, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}
	return data, unix.Munmap, nil
}

// mapAnon maps private zeroed memory for a dictionary block. The block is
// written once while the dictionary is built and only read afterwards.
func mapAnon(size int) ([]byte, func([]byte) error, error) {
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, err
	}
	return data, unix.Munmap, nil
}

func advise(data []byte, a Advice) error {
	if len(data) == 0 {
		return nil
	}
	flag := unix.MADV_NORMAL
	switch a {
	case AdviseSequential:
		flag = unix.MADV_SEQUENTIAL
	case AdviseRandom:
		flag = unix.MADV_RANDOM
	}
	// Advice is a hint; a kernel that rejects the range loses nothing.
	if err := unix.Madvise(data, flag); err != nil && !errors.Is(err, unix.EINVAL) {
		return err
	}
	return nil
}
