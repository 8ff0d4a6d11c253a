package assertx

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/sjson"
)

func PrettifyJSONPayload(t *testing.T, payload interface{}) string {
	o, err := json.MarshalIndent(payload, "", "  ")
	require.NoError(t, err)
	return string(o)
}

// EqualAsJSON asserts that expected and actual encode to the same JSON.
func EqualAsJSON(t *testing.T, expected, actual interface{}, args ...interface{}) {
	t.Helper()
	EqualAsJSONExcept(t, expected, actual, nil, args...)
}

// EqualAsJSONExcept is like EqualAsJSON but first removes the sjson paths in
// except from both documents. Use it for values that depend on the machine,
// such as absolute file URLs.
func EqualAsJSONExcept(t *testing.T, expected, actual interface{}, except []string, args ...interface{}) {
	t.Helper()
	if len(args) == 0 {
		args = []interface{}{PrettifyJSONPayload(t, actual)}
	}

	ebs, abs := encode(t, expected, args), encode(t, actual, args)

	var err error
	for _, k := range except {
		ebs, err = sjson.Delete(ebs, k)
		require.NoError(t, err)

		abs, err = sjson.Delete(abs, k)
		require.NoError(t, err)
	}

	assert.JSONEq(t, ebs, abs, args...)
}

// EqualAsJSONFile compares actual with the JSON document stored at path.
func EqualAsJSONFile(t *testing.T, path string, actual interface{}, except []string, args ...interface{}) {
	t.Helper()
	expected, err := os.ReadFile(path)
	require.NoError(t, err)
	EqualAsJSONExcept(t, json.RawMessage(expected), actual, except, args...)
}

func encode(t *testing.T, v interface{}, args []interface{}) string {
	var b bytes.Buffer
	require.NoError(t, json.NewEncoder(&b).Encode(v), args...)
	return strings.TrimSpace(b.String())
}
