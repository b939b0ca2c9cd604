// Package partition splits a memory-mapped input into worker-aligned,
// newline-safe byte ranges.
package partition

import "bytes"

// Range is a half-open [Start, End) interval over the mapped input.
// Either Start == End (empty), or Start is 0 or immediately follows a
// 0x0A byte, and End is len(data) or immediately follows a 0x0A byte.
type Range struct {
	Start, End int
}

// Len returns the number of bytes in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Empty reports whether the range contains no bytes.
func (r Range) Empty() bool {
	return r.Start == r.End
}

// Split divides data into workerCount near-equal, newline-aligned ranges.
// Every non-final cut is extended forward to the byte immediately after
// the next 0x0A so no record is split across two ranges. If extending a
// cut runs off the end of data, the current worker absorbs the remainder
// and every later worker receives an empty range. The union of the
// returned ranges is always all of data, and they are pairwise disjoint.
//
// A zero-length data yields workerCount empty ranges. workerCount must be
// a positive int.
func Split(data []byte, workerCount int) []Range {
	if workerCount < 1 {
		workerCount = 1
	}
	ranges := make([]Range, workerCount)
	if len(data) == 0 {
		return ranges
	}

	perChunk := len(data) / workerCount
	prev := 0
	i := 0
	for ; i < workerCount; i++ {
		if i == workerCount-1 {
			ranges[i] = Range{Start: prev, End: len(data)}
			i++
			break
		}
		cut := nextRecordBoundary(data, prev+perChunk)
		if cut == len(data) {
			ranges[i] = Range{Start: prev, End: len(data)}
			i++
			break
		}
		ranges[i] = Range{Start: prev, End: cut}
		prev = cut
	}
	// Workers past the one that absorbed the tail get empty ranges
	// anchored at the end of the file, preserving contiguity.
	for ; i < workerCount; i++ {
		ranges[i] = Range{Start: len(data), End: len(data)}
	}
	return ranges
}

// nextRecordBoundary returns the offset of the first byte after the next
// 0x0A at or after from, or len(data) if there is no such newline.
func nextRecordBoundary(data []byte, from int) int {
	if from >= len(data) {
		return len(data)
	}
	if nl := bytes.IndexByte(data[from:], '\n'); nl >= 0 {
		return from + nl + 1
	}
	return len(data)
}
