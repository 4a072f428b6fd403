//go:build windows

package mmap

import (
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

func mapFile(f *os.File, size int) ([]byte, func([]byte) error, error) {
	h, err := windows.CreateFileMapping(windows.Handle(f.Fd()), nil, windows.PAGE_READONLY, 0, 0, nil)
	if err != nil {
		return nil, nil, err
	}
	// The view holds the mapping object open on its own.
	defer windows.CloseHandle(h) //nolint:errcheck

	addr, err := windows.MapViewOfFile(h, windows.FILE_MAP_READ, 0, 0, uintptr(size))
	if err != nil {
		return nil, nil, err
	}
	unmap := func([]byte) error { return windows.UnmapViewOfFile(addr) }
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), unmap, nil
}

// mapAnon backs a dictionary block with committed private pages.
func mapAnon(size int) ([]byte, func([]byte) error, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_RESERVE|windows.MEM_COMMIT, windows.PAGE_READWRITE)
	if err != nil {
		return nil, nil, err
	}
	free := func([]byte) error { return windows.VirtualFree(addr, 0, windows.MEM_RELEASE) }
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), free, nil
}

// advise is a no-op: Windows has no madvise counterpart for mapped views.
func advise([]byte, Advice) error { return nil }
