// Package partition splits inclusive integer ranges into contiguous chunks
// sized to a worker count. Chunks are the unit of dispatch for the fan-out
// strategies: each chunk is owned by exactly one worker, so partition
// correctness (no gaps, no overlaps) is what makes concurrent runs produce
// the same prime set as the sequential baseline.
package partition

// Range is an inclusive integer interval [Start, End].
// A Range with Start > End is empty and yields no chunks.
type Range struct {
	Start int64
	End   int64
}

// Empty reports whether the range contains no integers.
func (r Range) Empty() bool { return r.Start > r.End }

// Len returns the number of integers in the range, 0 when empty.
func (r Range) Len() int64 {
	if r.Empty() {
		return 0
	}
	return r.End - r.Start + 1
}

// Split partitions r into at most workers contiguous, non-overlapping chunks
// whose union is exactly r. The chunk size is max(1, Len/workers) using floor
// division, so when workers exceeds the range size each integer becomes its
// own chunk and the trailing chunk may be shorter than the rest. An empty
// range produces zero chunks.
//
// workers must be >= 1; that validation belongs to the caller (config layer).
func Split(r Range, workers int) []Range {
	if r.Empty() {
		return nil
	}

	chunkSize := r.Len() / int64(workers)
	if chunkSize < 1 {
		chunkSize = 1
	}

	chunks := make([]Range, 0, workers+1)
	for start := r.Start; start <= r.End; start += chunkSize {
		end := start + chunkSize - 1
		if end > r.End {
			end = r.End
		}
		chunks = append(chunks, Range{Start: start, End: end})
	}
	return chunks
}
