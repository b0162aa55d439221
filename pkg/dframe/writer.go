package dframe

import (
	"bytes"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/toastedbreadandomelette/dframe/pkg/errors"
	"github.com/toastedbreadandomelette/dframe/pkg/logger"
	"github.com/toastedbreadandomelette/dframe/pkg/unsafestr"
)

// splitRows derives one disjoint mutable view per shard from a single
// flat allocation. View i has length shards[i].rows*columnCount and the
// views in shard order exactly reconstruct flat. The bounds check up
// front is the disjointness assertion the concurrent phase relies on:
// once it passes, every view is a subslice of a distinct range of the
// backing array, so the workers never alias each other's cells.
func splitRows(flat []Cell, shards []shardDescriptor, columnCount int) ([][]Cell, error) {
	views := make([][]Cell, len(shards))
	offset := 0
	for i, s := range shards {
		length := s.rows * columnCount
		if offset+length > len(flat) {
			return nil, errors.New(errors.ErrorTypeInternal,
				"shard views overflow the flat table allocation")
		}
		views[i] = flat[offset : offset+length : offset+length]
		offset += length
	}
	if offset != len(flat) {
		return nil, errors.New(errors.ErrorTypeInternal,
			"shard views do not tile the flat table allocation")
	}
	return views, nil
}

// fill allocates the flat result array, splits it into per-shard views
// and runs one tokenizing worker per shard under a single join barrier.
// It returns the filled array and the column types folded from the
// per-shard observations. Any worker failure aborts the whole
// operation; no partial result is returned.
func fill(data []byte, shards []shardDescriptor, columnCount int) ([]Cell, []CellType, error) {
	flat := make([]Cell, totalRows(shards)*columnCount)
	views, err := splitRows(flat, shards, columnCount)
	if err != nil {
		return nil, nil, err
	}

	shardTypes := make([][]CellType, len(shards))
	var g errgroup.Group
	for i := range shards {
		i := i
		g.Go(func() error {
			w := &shardWriter{
				buf:   data[shards[i].start:shards[i].end],
				out:   views[i],
				types: make([]CellType, columnCount),
			}
			if err := w.run(); err != nil {
				return err
			}
			shardTypes[i] = w.types
			logger.Get().Debug("shard filled",
				zap.Int("shard", i),
				zap.Int("rows", shards[i].rows),
				zap.Int("bytes", shards[i].end-shards[i].start))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	final := make([]CellType, columnCount)
	for _, st := range shardTypes {
		for col, t := range st {
			final[col] = Merge(final[col], t)
		}
	}
	return flat, final, nil
}

// shardWriter tokenizes one shard's byte range and writes the resulting
// cells sequentially into its private view of the flat table.
type shardWriter struct {
	buf   []byte
	out   []Cell
	types []CellType

	state lexState
	// start/end of the pending cell's content within buf; -1 when no
	// content has been marked yet. saved pins the closing-quote state
	// so the eventual separator still converts the right way.
	start int
	end   int
	saved lexState
	index int
	// afterSep is set when the last materialized cell was closed by a
	// separator byte: a new, so far empty, cell is then pending even
	// though no content has been marked. A line end must still write
	// its Null.
	afterSep bool
}

func (w *shardWriter) run() error {
	w.state = stateStart
	w.start, w.end = -1, -1
	w.saved = stateStart

	for i := 0; i < len(w.buf); i++ {
		prev := w.state
		w.state = nextState(w.state, w.buf[i])
		if err := w.observe(prev, i); err != nil {
			return err
		}
	}

	// The shard may end without a line terminator (end of input). A
	// virtual line feed closes any pending cell the same way a real
	// one would.
	if w.pending() {
		prev := w.state
		w.state = nextState(w.state, '\n')
		if err := w.observe(prev, len(w.buf)); err != nil {
			return err
		}
	}
	// A quote opened and never closed swallows the line feed above and
	// consumes the rest of the buffer as its value. Best effort, not
	// an error.
	if w.start >= 0 {
		return w.materialize(len(w.buf))
	}
	return nil
}

// pending reports whether an unmaterialized cell is in flight at the
// end of the shard.
func (w *shardWriter) pending() bool {
	if w.start >= 0 || w.end >= 0 {
		return true
	}
	return w.afterSep || w.state == stateCellSep ||
		w.state == stateSkipWhitespace || w.state.isSuspended()
}

// observe reacts to the transition that consumed buf[i]: it marks cell
// starts, pins quoted ends, and materializes values at boundaries.
func (w *shardWriter) observe(prev lexState, i int) error {
	if skip, ok := w.state.startsCell(); ok {
		w.start = i + skip
		w.afterSep = false
		return nil
	}
	if w.state.recordsQuoteEnd() {
		w.end = i
		w.saved = w.state
		return nil
	}
	if !w.state.isBoundary() {
		return nil
	}

	if w.state == stateNewLine && w.start < 0 && w.end < 0 {
		// Line end with nothing marked: either the cell was already
		// written (numeric terminal, CR of a CRLF) or the line's last
		// cell is empty (a trailing separator or bare whitespace).
		if prev == stateCellSep || prev == stateSkipWhitespace || w.afterSep {
			w.write(NullCell())
		}
		w.afterSep = false
		return nil
	}
	return w.materialize(i)
}

// materialize converts the pending byte slice into a typed cell and
// writes it. The boundary state (or the pinned closing-quote state)
// decides the conversion; leading/trailing ASCII whitespace is trimmed
// first, and an empty slice becomes Null.
func (w *shardWriter) materialize(i int) error {
	start, end := w.start, w.end
	if end < 0 {
		end = i
	}
	conv := w.saved
	if conv == stateStart {
		conv = w.state
	}
	w.start, w.end = -1, -1
	w.saved = stateStart
	// A cell closed by a separator leaves the next (possibly empty)
	// cell of the row pending; one closed by a line end does not.
	w.afterSep = i < len(w.buf) && w.buf[i] == ','

	if start < 0 || start >= end {
		w.write(NullCell())
		return nil
	}

	slice := bytes.TrimSpace(w.buf[start:end])
	if len(slice) == 0 {
		w.write(NullCell())
		return nil
	}

	switch conv {
	case stateCellNumberEnd, stateCellQuoteNumberEnd:
		v, err := strconv.ParseInt(unsafestr.BytesToString(slice), 10, 64)
		if err != nil {
			return errors.Wrap(err, errors.ErrorTypeData,
				"cell classified as integer failed to parse")
		}
		w.write(IntCell(v))
	case stateCellDecimalEnd, stateCellDecimalEndPoint,
		stateCellQuoteDecimalEnd, stateCellQuoteDecimalEndPoint:
		v, err := strconv.ParseFloat(unsafestr.BytesToString(slice), 64)
		if err != nil {
			return errors.Wrap(err, errors.ErrorTypeData,
				"cell classified as decimal failed to parse")
		}
		w.write(FloatCell(v))
	default:
		// Copies out of the mapped buffer: cells outlive the mapping.
		w.write(StringCell(string(slice)))
	}
	return nil
}

// write appends the cell to the shard's view and folds its type into
// the per-column observation. Writes past the view (a misaligned row
// split, see the partitioner's quoted-field limitation) are dropped
// rather than corrupting a neighbouring shard.
func (w *shardWriter) write(c Cell) {
	if w.index < len(w.out) {
		w.out[w.index] = c
		col := w.index % len(w.types)
		w.types[col] = Merge(w.types[col], c.Type())
	}
	w.index++
}
