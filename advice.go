package mmfile

// Advice hints the kernel about the expected page access pattern of a
// read view. It tunes readahead and page-cache eviction only; it never
// changes what the mapping contains.
type Advice int

const (
	// Normal keeps the kernel's default readahead behavior.
	Normal Advice = iota
	// Random expects accesses in arbitrary order; readahead is disabled.
	Random
	// Sequential expects a front-to-back scan; readahead is aggressive
	// and consumed pages may be dropped early.
	Sequential
)

func (a Advice) String() string {
	switch a {
	case Normal:
		return "normal"
	case Random:
		return "random"
	case Sequential:
		return "sequential"
	default:
		return "unknown"
	}
}
