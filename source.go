//go:build unix

package mmfile

import (
	"iter"
	"os"
)

// Source is a read-only, memory-mapped view of an existing file,
// presented as a flat array of T.
//
// A Source owns its descriptor and mapping exclusively; Open/Close and
// accesses on the same instance must be externally serialized. The
// mapped pages are read-only at the hardware level: storing through
// Data or Raw faults.
type Source[T any] struct {
	f    *os.File
	data []byte // whole mapped region
	view []T    // whole elements only
}

// OpenSource maps path read-only and forwards adv to the kernel as a
// page-cache hint. The mapping covers the file's byte length at the
// time of the call.
//
// On failure no view is returned and every resource acquired up to the
// failing step has been released; the error carries the failing
// operation (ErrFileOpen, ErrFileStat, ErrMapping, ErrAdvise). A
// zero-byte file cannot be mapped and fails with ErrMapping wrapping
// ErrEmptyFile.
func OpenSource[T any](path string, adv Advice) (*Source[T], error) {
	if sizeOf[T]() == 0 {
		return nil, ErrZeroSized
	}

	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, &Error{Op: OpOpen, Path: path, Err: err}
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &Error{Op: OpStat, Path: path, Err: err}
	}

	size := fi.Size()
	if size == 0 {
		f.Close()
		return nil, &Error{Op: OpMap, Path: path, Err: ErrEmptyFile}
	}

	data, err := mapShared(int(f.Fd()), int(size), false)
	if err != nil {
		f.Close()
		return nil, &Error{Op: OpMap, Path: path, Err: err}
	}

	if err := madvise(data, adv); err != nil {
		unmap(data)
		f.Close()
		return nil, &Error{Op: OpAdvise, Path: path, Err: err}
	}

	return &Source[T]{f: f, data: data, view: typedView[T](data)}, nil
}

// IsOpen reports whether the view currently holds a mapping.
func (s *Source[T]) IsOpen() bool {
	return s.f != nil
}

// Close unmaps the region and then releases the descriptor, in that
// order. It is idempotent. If the unmap fails the descriptor is still
// closed and the view resets to the closed state, so a Source never
// stays half-open; the failure is reported as ErrUnmap.
func (s *Source[T]) Close() error {
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
func (s *Source[T]) Bytes() int64 {
	return int64(len(s.data))
}

// Len returns the number of whole T elements in the mapping,
// truncating any trailing partial element.
func (s *Source[T]) Len() int {
	return len(s.view)
}

// Data returns the mapping as a []T of Len() elements. The slice
// aliases the mapped region and must not outlive the view.
func (s *Source[T]) Data() []T {
	return s.view
}

// Raw returns the full mapped byte region, including any trailing
// bytes beyond the last whole element. Nil when closed.
func (s *Source[T]) Raw() []byte {
	return s.data
}

// At returns a copy of element i.
func (s *Source[T]) At(i int) T {
	return s.view[i]
}

// Values returns a restartable, forward-only iterator over all
// elements in file order. Each step yields a copy of the element.
func (s *Source[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := range s.view {
			if !yield(s.view[i]) {
				return
			}
		}
	}
}

// Lock pins the mapped pages in physical memory, preventing them from
// being paged out. Subject to the process RLIMIT_MEMLOCK.
func (s *Source[T]) Lock() error {
	if !s.IsOpen() {
		return ErrClosed
	}
	if err := mlock(s.data); err != nil {
		return &Error{Op: OpMemLock, Err: err}
	}
	return nil
}

// Unlock releases pages pinned by Lock.
func (s *Source[T]) Unlock() error {
	if !s.IsOpen() {
		return ErrClosed
	}
	if err := munlock(s.data); err != nil {
		return &Error{Op: OpMemLock, Err: err}
	}
	return nil
}
