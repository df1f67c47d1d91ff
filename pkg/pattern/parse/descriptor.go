package parse

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/knitgrid/knitgrid/pkg/errors"
)

// Attribute keys of the pattern file format.
const (
	keyID           = "id"
	keyName         = "name"
	keyType         = "type"
	keyVersion      = "version"
	keyComment      = "comment"
	keyPatterns     = "patterns"
	keyRows         = "rows"
	keyInstructions = "instructions"
	keyConnections  = "connections"
	keySameAs       = "same as"
)

// toID normalizes a raw descriptor id to its canonical string form.
// Ids may be strings, integers ("1" and 1 address the same row) or arrays of
// either, which are joined with dots ("A.2.25").
func toID(v any) (string, error) {
	var id string
	switch raw := v.(type) {
	case string:
		id = raw
	case float64:
		id = strconv.FormatFloat(raw, 'f', -1, 64)
	case int:
		id = strconv.Itoa(raw)
	case json.Number:
		id = raw.String()
	case []any:
		parts := make([]string, len(raw))
		for i, p := range raw {
			part, err := toID(p)
			if err != nil {
				return "", err
			}
			parts[i] = part
		}
		id = strings.Join(parts, ".")
	default:
		return "", errors.New(errors.ErrCodeInvalidRow, "unsupported id type %T", v)
	}
	if err := errors.ValidateID(id); err != nil {
		return "", err
	}
	return id, nil
}

// scalarString formats a scalar descriptor value (version numbers may be
// JSON numbers or strings) as a string.
func scalarString(v any) (string, bool) {
	switch raw := v.(type) {
	case string:
		return raw, true
	case float64:
		return strconv.FormatFloat(raw, 'f', -1, 64), true
	case json.Number:
		return raw.String(), true
	default:
		return "", false
	}
}

// asSlice reports v as a descriptor list. A missing value is an empty list.
func asSlice(v any) ([]any, bool) {
	if v == nil {
		return nil, true
	}
	s, ok := v.([]any)
	return s, ok
}
