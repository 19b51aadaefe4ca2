package mmfile

import "errors"

// Op identifies the OS-level operation that failed.
type Op string

// Operations that can fail.
const (
	OpOpen     Op = "open"
	OpStat     Op = "stat"
	OpTruncate Op = "truncate"
	OpMap      Op = "mmap"
	OpAdvise   Op = "madvise"
	OpUnmap    Op = "munmap"
	OpSync     Op = "msync"
	OpMemLock  Op = "mlock"
)

// Error represents a failed view operation.
type Error struct {
	Op   Op
	Path string // empty when the view no longer tracks a path
	Err  error  // wrapped cause, usually an errno
}

func (e *Error) Error() string {
	msg := "mmfile: " + string(e.Op)
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches two Errors by operation, so the kind sentinels below work
// with errors.Is regardless of path and cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Op == e.Op
}

// Error kinds, one per failing operation. Match with errors.Is.
var (
	ErrFileOpen = &Error{Op: OpOpen}
	ErrFileStat = &Error{Op: OpStat}
	ErrTruncate = &Error{Op: OpTruncate}
	ErrMapping  = &Error{Op: OpMap}
	ErrAdvise   = &Error{Op: OpAdvise}
	ErrUnmap    = &Error{Op: OpUnmap}
	ErrSync     = &Error{Op: OpSync}
	ErrMemLock  = &Error{Op: OpMemLock}
)

// Common errors
var (
	ErrEmptyFile    = errors.New("mmfile: empty file")
	ErrInvalidCount = errors.New("mmfile: element count must be positive")
	ErrInvalidRange = errors.New("mmfile: invalid range")
	ErrZeroSized    = errors.New("mmfile: element type has zero size")
	ErrClosed       = errors.New("mmfile: view is closed")
)
