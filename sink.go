//go:build unix

package mmfile

import (
	"iter"
	"os"
)

// Sink is a writable, memory-mapped view backed by a freshly sized
// file, presented as a mutable flat array of T.
//
// Creating a Sink always recreates the backing file: an existing file
// at the same path is truncated and its previous contents discarded.
// The mapping is shared, so stores become visible to other openers of
// the same file through the kernel page cache; Close performs no sync
// of its own — call Sync for explicit durability.
type Sink[T any] struct {
	f    *os.File
	data []byte // whole mapped region
	view []T
}

// CreateSink creates path (or truncates it if present) with owner-only
// read-write permissions, resizes it to exactly n elements of T, and
// maps it read-write. Newly extended bytes read back as zero.
//
// Failures carry the failing operation (ErrFileOpen, ErrTruncate,
// ErrMapping) and leave no resources behind.
func CreateSink[T any](path string, n int) (*Sink[T], error) {
	if sizeOf[T]() == 0 {
		return nil, ErrZeroSized
	}
	if n <= 0 {
		return nil, ErrInvalidCount
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return nil, &Error{Op: OpOpen, Path: path, Err: err}
	}

	size := int64(n) * int64(sizeOf[T]())
	if err := f.Truncate(size); err != nil {
		f.Close()
		return nil, &Error{Op: OpTruncate, Path: path, Err: err}
	}

	data, err := mapShared(int(f.Fd()), int(size), true)
	if err != nil {
		f.Close()
		return nil, &Error{Op: OpMap, Path: path, Err: err}
	}

	return &Sink[T]{f: f, data: data, view: typedView[T](data)}, nil
}

// IsOpen reports whether the view currently holds a mapping.
func (s *Sink[T]) IsOpen() bool {
	return s.f != nil
}

// Close unmaps the region and then releases the descriptor, in that
// order. It is idempotent and performs no implicit sync. If the unmap
// fails the descriptor is still closed and the view resets to the
// closed state; the failure is reported as ErrUnmap.
func (s *Sink[T]) Close() error {
	if !s.IsOpen() {
		return nil
	}

	path := s.f.Name()
	err := unmap(s.data)
	s.f.Close()
	s.f = nil
	s.data = nil
	s.view = nil

	if err != nil {
		return &Error{Op: OpUnmap, Path: path, Err: err}
	}
	return nil
}

// Bytes returns the total mapped size in bytes, 0 when closed.
func (s *Sink[T]) Bytes() int64 {
	return int64(len(s.data))
}

// Len returns the number of T elements in the mapping.
func (s *Sink[T]) Len() int {
	return len(s.view)
}

// Data returns the mapping as a mutable []T of Len() elements. The
// slice aliases the mapped region and must not outlive the view.
func (s *Sink[T]) Data() []T {
	return s.view
}

// Raw returns the full mapped byte region. Nil when closed.
func (s *Sink[T]) Raw() []byte {
	return s.data
}

// At returns a copy of element i.
func (s *Sink[T]) At(i int) T {
	return s.view[i]
}

// Set stores v at element i.
func (s *Sink[T]) Set(i int, v T) {
	s.view[i] = v
}

// Values returns a restartable, forward-only iterator over all
// elements in file order. Each step yields a copy of the element.
func (s *Sink[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := range s.view {
			if !yield(s.view[i]) {
				return
			}
		}
	}
}

// Slots returns an iterator yielding each element's index and a
// pointer to it, for writing in place. The pointers alias the mapped
// region and must not be used after Close.
func (s *Sink[T]) Slots() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := range s.view {
			if !yield(i, &s.view[i]) {
				return
			}
		}
	}
}

// Sync flushes dirty pages to the backing file and waits for the
// writeback to complete.
func (s *Sink[T]) Sync() error {
	if !s.IsOpen() {
		return ErrClosed
	}
	if err := msync(s.data, false); err != nil {
		return &Error{Op: OpSync, Err: err}
	}
	return nil
}

// SyncAsync schedules a flush of dirty pages without waiting for it.
func (s *Sink[T]) SyncAsync() error {
	if !s.IsOpen() {
		return ErrClosed
	}
	if err := msync(s.data, true); err != nil {
		return &Error{Op: OpSync, Err: err}
	}
	return nil
}

// SyncRange flushes the byte range [off, off+length) and waits for the
// writeback to complete. The range must lie inside the mapping; the
// kernel additionally requires off to be page-aligned.
func (s *Sink[T]) SyncRange(off, length int64) error {
	if !s.IsOpen() {
		return ErrClosed
	}
	if off < 0 || length < 0 || off+length > int64(len(s.data)) {
		return ErrInvalidRange
	}
	if err := msync(s.data[off:off+length], false); err != nil {
		return &Error{Op: OpSync, Err: err}
	}
	return nil
}

// Lock pins the mapped pages in physical memory, preventing them from
// being paged out. Subject to the process RLIMIT_MEMLOCK.
func (s *Sink[T]) Lock() error {
	if !s.IsOpen() {
		return ErrClosed
	}
	if err := mlock(s.data); err != nil {
		return &Error{Op: OpMemLock, Err: err}
	}
	return nil
}

// Unlock releases pages pinned by Lock.
func (s *Sink[T]) Unlock() error {
	if !s.IsOpen() {
		return ErrClosed
	}
	if err := munlock(s.data); err != nil {
		return &Error{Op: OpMemLock, Err: err}
	}
	return nil
}
