package dframe

import (
	"bytes"

	"golang.org/x/sync/errgroup"
)

// shardDescriptor describes one contiguous region of the post-header
// byte buffer and the number of logical rows it contains. Descriptors
// are computed once per parse and discarded afterwards.
type shardDescriptor struct {
	rows  int
	start int
	end   int
}

// partition splits data into at most shardCount line-aligned byte
// ranges. Cut candidates at k*(len/shardCount) are advanced rightward
// past the next line feed, so no shard starts or ends mid-row (a quoted
// field spanning lines can defeat this; accepted limitation). The
// returned ranges are contiguous, non-overlapping and cover data
// exactly. Row counts are filled in by a parallel counting pass, one
// task per shard.
func partition(data []byte, shardCount int) []shardDescriptor {
	if len(data) == 0 {
		return nil
	}
	if shardCount < 1 {
		shardCount = 1
	}

	var shards []shardDescriptor
	approx := len(data) / shardCount
	prev := 0
	for k := 1; k < shardCount && prev < len(data); k++ {
		cand := k * approx
		if cand <= prev {
			continue
		}
		end := len(data)
		if idx := bytes.IndexByte(data[cand:], '\n'); idx >= 0 {
			end = cand + idx + 1
		}
		if end <= prev {
			continue
		}
		shards = append(shards, shardDescriptor{start: prev, end: end})
		prev = end
	}
	if prev < len(data) {
		shards = append(shards, shardDescriptor{start: prev, end: len(data)})
	}

	countRows(data, shards)
	return shards
}

// countRows fills in the exact row count of every shard concurrently.
// Each task reads only its own range of the shared immutable buffer and
// writes only its own descriptor, so no synchronization is needed
// beyond the join.
func countRows(data []byte, shards []shardDescriptor) {
	var g errgroup.Group
	for i := range shards {
		i := i
		g.Go(func() error {
			seg := data[shards[i].start:shards[i].end]
			rows := bytes.Count(seg, []byte{'\n'})
			// A shard whose last row has no terminator (end of input)
			// still contains that row.
			if len(seg) > 0 && seg[len(seg)-1] != '\n' {
				rows++
			}
			shards[i].rows = rows
			return nil
		})
	}
	// Counting cannot fail; Wait is the join barrier.
	_ = g.Wait()
}

// totalRows sums the per-shard counts.
func totalRows(shards []shardDescriptor) int {
	total := 0
	for _, s := range shards {
		total += s.rows
	}
	return total
}
