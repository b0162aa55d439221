// Package formats renders parsed tables into interchange formats.
// It only consumes the public Table surface; the flat storage layout
// stays private to the parser.
package formats

import (
	"io"

	gojson "github.com/goccy/go-json"
	"github.com/klauspost/compress/gzip"

	"github.com/toastedbreadandomelette/dframe/pkg/dframe"
	"github.com/toastedbreadandomelette/dframe/pkg/errors"
)

// JSONOptions configures table export.
type JSONOptions struct {
	// Pretty enables indented output.
	Pretty bool
	// Gzip compresses the output stream.
	Gzip bool
}

// WriteJSON renders the table as a JSON array of objects keyed by
// column name. Null cells render as JSON null, integer cells as
// numbers, and so on per the cell's dynamic type.
func WriteJSON(w io.Writer, t *dframe.Table, opts JSONOptions) error {
	out := w
	var gz *gzip.Writer
	if opts.Gzip {
		gz = gzip.NewWriter(w)
		out = gz
	}

	header := t.Header()
	rows := make([]map[string]interface{}, 0, t.RowCount())
	it := t.Rows()
	for row, ok := it.Next(); ok; row, ok = it.Next() {
		obj := make(map[string]interface{}, len(header))
		for i, name := range header {
			obj[name] = row[i].Value()
		}
		rows = append(rows, obj)
	}

	var (
		data []byte
		err  error
	)
	if opts.Pretty {
		data, err = gojson.MarshalIndent(rows, "", "  ")
	} else {
		data, err = gojson.Marshal(rows)
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "failed to marshal table")
	}

	if _, err := out.Write(data); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to write table")
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return errors.Wrap(err, errors.ErrorTypeFile, "failed to flush gzip stream")
		}
	}
	return nil
}
