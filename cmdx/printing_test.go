package cmdx

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xbrlgl/glvalidate/stringsx"
)

type testReport struct {
	Valid  bool       `json:"valid"`
	Errors [][]string `json:"errors,omitempty"`
}

func (testReport) Header() []string {
	return []string{"LOCATION", "MESSAGE"}
}

func (r testReport) Table() [][]string {
	return r.Errors
}

func (r testReport) Interface() interface{} {
	return r
}

func (r testReport) Len() int {
	return len(r.Errors)
}

func (r testReport) Summary() string {
	if r.Valid {
		return "valid"
	}
	return "invalid"
}

func (r testReport) String() string {
	if r.Valid {
		return "valid\n"
	}
	return "invalid\n"
}

func newTestCommand(t *testing.T, args ...string) (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{Use: "test"}
	RegisterFormatFlags(cmd.Flags())
	require.NoError(t, cmd.ParseFlags(args))

	var out bytes.Buffer
	cmd.SetOut(&out)
	return cmd, &out
}

func TestPrinter(t *testing.T) {
	invalid := testReport{Errors: [][]string{{"/a", "missing property b"}}}

	for _, tc := range []struct {
		format   string
		args     []string
		expected string
	}{
		{format: "default", expected: "invalid\n"},
		{format: "json", expected: `{"valid":false,"errors":[["/a","missing property b"]]}` + "\n"},
		{format: "json-pretty", expected: "{\n  \"valid\": false,\n  \"errors\": [\n    [\n      \"/a\",\n      \"missing property b\"\n    ]\n  ]\n}\n"},
		{format: "yaml", expected: "errors:\n- - /a\n  - missing property b\nvalid: false\n"},
		{format: "json", args: []string{"--quiet"}, expected: ""},
	} {
		t.Run("format="+tc.format, func(t *testing.T) {
			cmd, out := newTestCommand(t, tc.args...)
			p, err := NewPrinter(cmd, tc.format)
			require.NoError(t, err)
			require.NoError(t, p.PrintReport(invalid))
			assert.Equal(t, tc.expected, out.String())
		})
	}

	t.Run("format=table", func(t *testing.T) {
		cmd, out := newTestCommand(t)
		p, err := NewPrinter(cmd, "table")
		require.NoError(t, err)
		require.NoError(t, p.PrintReport(invalid))
		assert.Regexp(t, "^invalid\nLOCATION\t+MESSAGE\t+\n/a\t+missing property b\t+\n$", out.String())
	})

	t.Run("case=empty tables print nothing", func(t *testing.T) {
		cmd, out := newTestCommand(t)
		p, err := NewPrinter(cmd, "table")
		require.NoError(t, err)
		require.NoError(t, p.PrintTable(testReport{Valid: true}))
		assert.Empty(t, out.String())
	})

	t.Run("case=unknown format", func(t *testing.T) {
		cmd, _ := newTestCommand(t)
		_, err := NewPrinter(cmd, "xml")
		require.Error(t, err)
		assert.True(t, errors.Is(err, stringsx.ErrUnknownCase))
	})

	t.Run("case=quiet wins", func(t *testing.T) {
		cmd, _ := newTestCommand(t, "-q")
		p, err := NewPrinter(cmd, "xml")
		require.NoError(t, err)
		assert.Equal(t, FormatQuiet, p.Format())
	})
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitValid, ExitCode(nil))
	assert.Equal(t, ExitInvalid, ExitCode(FailSilently(ExitInvalid)))
	assert.Equal(t, ExitRuntimeError, ExitCode(errors.New("boom")))
	assert.Equal(t, ExitRuntimeError, ExitCode(errors.WithStack(&ExitError{Code: ExitRuntimeError, Err: errors.New("boom")})))
	assert.Equal(t, "exit status 1", FailSilently(ExitInvalid).Error())
}

type testRow struct {
	Name string `json:"name"`
}

func (testRow) Header() []string { return []string{"NAME"} }

func (r testRow) Columns() []string { return []string{r.Name} }

func (r testRow) Interface() interface{} { return r }

func TestPrintRow(t *testing.T) {
	for _, tc := range []struct {
		args     []string
		expected string
	}{
		{args: []string{"--format", "json"}, expected: `{"name":"gl-cor"}` + "\n"},
		{args: []string{"--format", "yaml"}, expected: "name: gl-cor\n"},
		{args: []string{"--quiet"}, expected: ""},
	} {
		t.Run("case="+strings.Join(tc.args, " "), func(t *testing.T) {
			cmd, out := newTestCommand(t, tc.args...)
			f, _ := cmd.Flags().GetString(FlagFormat)
			p, err := NewPrinter(cmd, f)
			require.NoError(t, err)
			require.NoError(t, p.PrintRow(testRow{Name: "gl-cor"}))
			assert.Equal(t, tc.expected, out.String())
		})
	}

	t.Run("case=default prints one line per column", func(t *testing.T) {
		cmd, out := newTestCommand(t)
		p, err := NewPrinter(cmd, string(FormatDefault))
		require.NoError(t, err)
		require.NoError(t, p.PrintRow(testRow{Name: "gl-cor"}))
		assert.Regexp(t, `^NAME\s+gl-cor\s*\n$`, out.String())
	})
}
