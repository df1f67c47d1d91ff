package pipeline

import (
	"bytes"
	"os"

	"github.com/knitgrid/knitgrid/pkg/errors"
	"github.com/knitgrid/knitgrid/pkg/io"
	"github.com/knitgrid/knitgrid/pkg/pattern"
)

// loadDocument returns the raw pattern-set document and a description
// of where it came from. Inline documents take precedence over files.
func loadDocument(opts Options) ([]byte, string, error) {
	if opts.Document != "" {
		return []byte(opts.Document), "inline document", nil
	}
	data, err := os.ReadFile(opts.Source)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", opts.Source)
		}
		return nil, "", errors.Wrap(errors.ErrCodeInternal, err, "read %s", opts.Source)
	}
	return data, opts.Source, nil
}

func decodeSet(data []byte) (*pattern.Set, error) {
	return io.ReadJSON(bytes.NewReader(data))
}

func encodeSet(set *pattern.Set) ([]byte, error) {
	var buf bytes.Buffer
	if err := io.WriteJSON(set, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
