package io

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/knitgrid/knitgrid/pkg/errors"
	"github.com/knitgrid/knitgrid/pkg/pattern"
	"github.com/knitgrid/knitgrid/pkg/pattern/parse"
)

// ReadJSON decodes a pattern-set file from r and resolves it into a
// [pattern.Set] with all mesh links established.
//
// ReadJSON returns an error if the JSON is malformed or if the set
// fails resolution (wrong envelope type, duplicate row ids, unknown
// instruction types, unknown connection targets, out-of-range mesh
// ranges). Errors carry a code from the errors package. ReadJSON does
// not close r.
func ReadJSON(r io.Reader) (*pattern.Set, error) {
	var values map[string]any
	if err := json.NewDecoder(r).Decode(&values); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode pattern set")
	}
	return parse.New(nil).PatternSet(values)
}

// ReadJSONString resolves a pattern set from an in-memory JSON document.
func ReadJSONString(doc string) (*pattern.Set, error) {
	return ReadJSON(strings.NewReader(doc))
}

// ImportJSON reads the pattern-set file at path and returns the
// resolved set. A missing file is reported with a dedicated code so
// callers can distinguish it from malformed content.
func ImportJSON(path string) (*pattern.Set, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
