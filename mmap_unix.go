//go:build unix

package mmfile

import "golang.org/x/sys/unix"

// mapShared maps length bytes of fd starting at offset 0.
// Mappings are always MAP_SHARED: stores through a writable mapping
// reach the file and other mappers via the kernel page cache.
func mapShared(fd int, length int, writable bool) ([]byte, error) {
	prot := unix.PROT_READ
	if writable {
		prot |= unix.PROT_WRITE
	}

	return unix.Mmap(fd, 0, length, prot, unix.MAP_SHARED)
}

func unmap(data []byte) error {
	return unix.Munmap(data)
}

// madvise applies an access-pattern hint to the whole mapped region.
// An Advice outside the closed set is rejected with EINVAL before
// reaching the kernel.
func madvise(data []byte, adv Advice) error {
	var hint int
	switch adv {
	case Normal:
		hint = unix.MADV_NORMAL
	case Random:
		hint = unix.MADV_RANDOM
	case Sequential:
		hint = unix.MADV_SEQUENTIAL
	default:
		return unix.EINVAL
	}

	return unix.Madvise(data, hint)
}

func msync(data []byte, async bool) error {
	flags := unix.MS_SYNC
	if async {
		flags = unix.MS_ASYNC
	}

	return unix.Msync(data, flags)
}

func mlock(data []byte) error {
	return unix.Mlock(data)
}

func munlock(data []byte) error {
	return unix.Munlock(data)
}
