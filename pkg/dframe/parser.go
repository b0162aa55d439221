package dframe

import (
	"bytes"
	"time"

	"go.uber.org/zap"

	"github.com/toastedbreadandomelette/dframe/pkg/errors"
	"github.com/toastedbreadandomelette/dframe/pkg/logger"
	"github.com/toastedbreadandomelette/dframe/pkg/mmap"
)

// Parse reads the file at path into a Table using a single shard.
func Parse(path string) (*Table, error) {
	return ParseMultiThreaded(path, 1)
}

// ParseMultiThreaded memory-maps the file at path read-only and parses
// it with shardCount parallel workers. The call is atomic: it returns a
// fully formed Table or an error, never a partial result. The mapping
// is released before returning.
func ParseMultiThreaded(path string, shardCount int) (*Table, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to map input file")
	}
	defer r.Close()

	started := time.Now()
	t, err := ParseBytes(r.Bytes(), shardCount)
	if err != nil {
		return nil, err
	}
	logger.Get().Debug("parsed csv file",
		zap.String("path", path),
		zap.Int("shards", shardCount),
		zap.Int("rows", t.RowCount()),
		zap.Int("columns", t.ColumnCount()),
		zap.Duration("elapsed", time.Since(started)))
	return t, nil
}

// ParseBytes parses an in-memory buffer. The buffer must stay valid
// and unmodified for the duration of the call; the returned Table does
// not retain it (string cells are copied out).
func ParseBytes(data []byte, shardCount int) (*Table, error) {
	header, offset := scanHeader(data)
	if len(header) == 0 {
		return newTable(nil, nil, nil), nil
	}

	body := dataRegion(data, offset)
	if shardCount < 1 {
		shardCount = 1
	}

	shards := partition(body, shardCount)
	flat, dtypes, err := fill(body, shards, len(header))
	if err != nil {
		return nil, err
	}
	return newTable(flat, header, dtypes), nil
}

// dataRegion returns the buffer past the header's terminating line
// break, trimmed of surrounding ASCII whitespace so the partitioner
// sees only whole rows.
func dataRegion(data []byte, headerEnd int) []byte {
	if headerEnd >= len(data) {
		return nil
	}
	rest := data[headerEnd:]
	idx := bytes.IndexByte(rest, '\n')
	if idx < 0 {
		return nil
	}
	return bytes.TrimSpace(rest[idx+1:])
}
