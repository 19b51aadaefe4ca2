// Package mmfile provides typed, memory-mapped views over files.
//
// A Source is a read-only mapped view of an existing file; a Sink is a
// writable mapped view backed by a freshly created (or truncated and
// resized) file. Both present the mapped region as a flat array of a
// caller-chosen fixed-size element type T, with zero-copy access and
// range-over-func iteration.
//
// Key properties:
//   - Mappings are always shared: writes through a Sink reach the file
//     and other mappers via the kernel page cache
//   - A view owns its descriptor and mapping exclusively and releases
//     both together on Close
//   - The mapped bytes are interpreted as the host, in-memory
//     representation of T; there is no header, schema, or endianness
//     conversion
//   - Read views accept an access-pattern hint (Normal, Random,
//     Sequential) forwarded to the kernel's readahead logic
//
// Basic usage:
//
//	sink, err := mmfile.CreateSink[uint32]("numbers.bin", 1024)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for i, p := range sink.Slots() {
//	    *p = uint32(i)
//	}
//	if err := sink.Close(); err != nil {
//	    log.Fatal(err)
//	}
//
//	src, err := mmfile.OpenSource[uint32]("numbers.bin", mmfile.Sequential)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer src.Close()
//
//	var sum uint64
//	for v := range src.Values() {
//	    sum += uint64(v)
//	}
//
// T must not contain Go pointers: the mapped region is outside the Go
// heap and the garbage collector never scans it.
package mmfile
