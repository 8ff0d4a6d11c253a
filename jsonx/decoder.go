package jsonx

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// ErrTrailingData is returned when a document has content after its top-level value.
var ErrTrailingData = errors.New("invalid character after top-level value")

// Decode decodes exactly one JSON value from r into plain Go values.
//
// Numbers are kept as json.Number so that large integers and decimal amounts
// survive untouched until the validation engine looks at them.
func Decode(r io.Reader) (any, error) {
	d := json.NewDecoder(r)
	d.UseNumber()

	var doc any
	if err := d.Decode(&doc); err != nil {
		return nil, errors.WithStack(err)
	}
	if _, err := d.Token(); err != io.EOF {
		return nil, errors.WithStack(ErrTrailingData)
	}
	return doc, nil
}

// DecodeBytes is like Decode but reads from a byte slice.
func DecodeBytes(b []byte) (any, error) {
	return Decode(bytes.NewReader(b))
}

// DecodeYAML converts a YAML document to JSON and decodes it with Decode.
func DecodeYAML(b []byte) (any, error) {
	j, err := yaml.YAMLToJSON(b)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return DecodeBytes(j)
}

// DecodeFor picks the YAML or JSON decoder based on the extension of location.
func DecodeFor(location string, b []byte) (any, error) {
	j, err := ToJSON(location, b)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(j)
}

// ToJSON returns b as JSON, converting YAML documents based on the extension of location.
func ToJSON(location string, b []byte) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(location)) {
	case ".yaml", ".yml":
		j, err := yaml.YAMLToJSON(b)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return j, nil
	default:
		return b, nil
	}
}
