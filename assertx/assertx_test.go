package assertx

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEqualAsJSON(t *testing.T) {
	type record struct {
		InstanceLocation string `json:"instanceLocation"`
	}

	EqualAsJSON(t, map[string]interface{}{"instanceLocation": "/a"}, record{InstanceLocation: "/a"})
}

func TestEqualAsJSONExcept(t *testing.T) {
	a := map[string]interface{}{"valid": false, "errors": []interface{}{map[string]interface{}{"schemaLocation": "file:///a.json#/enum", "instanceLocation": "/a"}}}
	b := map[string]interface{}{"valid": false, "errors": []interface{}{map[string]interface{}{"schemaLocation": "file:///b.json#/enum", "instanceLocation": "/a"}}}

	EqualAsJSONExcept(t, a, b, []string{"errors.0.schemaLocation"})
}

func TestEqualAsJSONFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "expected.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"valid": true, "at": "x"}`), 0600))

	EqualAsJSONFile(t, p, json.RawMessage(`{"valid":true,"at":"y"}`), []string{"at"})
}
