package cmdx

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/xbrlgl/glvalidate/stringsx"
)

type (
	TableHeader interface {
		Header() []string
	}
	TableRow interface {
		TableHeader
		Columns() []string
		Interface() interface{}
	}
	Table interface {
		TableHeader
		Table() [][]string
		Interface() interface{}
		Len() int
	}
	// Report is a table with a human readable form for the default format and
	// a one line summary printed above the table.
	Report interface {
		Table
		Summary() string
		String() string
	}

	Format string

	// Printer writes command output in one format.
	Printer struct {
		w io.Writer
		f Format
	}
)

const (
	FormatQuiet      Format = "quiet"
	FormatTable      Format = "table"
	FormatJSON       Format = "json"
	FormatYAML       Format = "yaml"
	FormatJSONPretty Format = "json-pretty"
	FormatDefault    Format = "default"

	FlagFormat = "format"
)

// ParseFormat returns the Format named s.
func ParseFormat(s string) (Format, error) {
	switch f := stringsx.SwitchExact(s); {
	case f.AddCase(string(FormatDefault)):
		return FormatDefault, nil
	case f.AddCase(string(FormatTable)):
		return FormatTable, nil
	case f.AddCase(string(FormatJSON)):
		return FormatJSON, nil
	case f.AddCase(string(FormatJSONPretty)):
		return FormatJSONPretty, nil
	case f.AddCase(string(FormatYAML)):
		return FormatYAML, nil
	default:
		return "", errors.Wrap(f.ToUnknownCaseErr(), "invalid output format")
	}
}

// NewPrinter returns a printer for format. --quiet takes precedence over format.
func NewPrinter(cmd *cobra.Command, format string) (*Printer, error) {
	if getQuiet(cmd) {
		return &Printer{w: cmd.OutOrStdout(), f: FormatQuiet}, nil
	}

	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return &Printer{w: cmd.OutOrStdout(), f: f}, nil
}

func (p *Printer) Format() Format {
	return p.f
}

func (p *Printer) PrintRow(row TableRow) error {
	switch p.f {
	case FormatQuiet:
		return nil
	case FormatJSON:
		return printJSON(p.w, row.Interface(), false)
	case FormatJSONPretty:
		return printJSON(p.w, row.Interface(), true)
	case FormatYAML:
		return printYAML(p.w, row.Interface())
	default:
		w := tabwriter.NewWriter(p.w, 0, 8, 1, '\t', 0)

		fields := row.Columns()
		for i, h := range row.Header() {
			_, _ = fmt.Fprintf(w, "%s\t%s\t\n", h, fields[i])
		}

		return errors.WithStack(w.Flush())
	}
}

func (p *Printer) PrintTable(table Table) error {
	switch p.f {
	case FormatQuiet:
		return nil
	case FormatJSON:
		return printJSON(p.w, table.Interface(), false)
	case FormatJSONPretty:
		return printJSON(p.w, table.Interface(), true)
	case FormatYAML:
		return printYAML(p.w, table.Interface())
	default:
		return printTabular(p.w, table)
	}
}

// PrintReport prints r as text in the default format, as a table in the table
// format and as structured data otherwise.
func (p *Printer) PrintReport(r Report) error {
	switch p.f {
	case FormatDefault:
		_, err := fmt.Fprint(p.w, r.String())
		return errors.WithStack(err)
	case FormatTable:
		if s := r.Summary(); s != "" {
			if _, err := fmt.Fprintln(p.w, s); err != nil {
				return errors.WithStack(err)
			}
		}
		return printTabular(p.w, r)
	default:
		return p.PrintTable(r)
	}
}

func printTabular(out io.Writer, table Table) error {
	if table.Len() == 0 {
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 8, 1, '\t', 0)

	for _, h := range table.Header() {
		_, _ = fmt.Fprintf(w, "%s\t", h)
	}
	_, _ = fmt.Fprintln(w)

	for _, row := range table.Table() {
		_, _ = fmt.Fprintln(w, strings.Join(row, "\t")+"\t")
	}

	return errors.WithStack(w.Flush())
}

func printJSON(w io.Writer, v interface{}, pretty bool) error {
	e := json.NewEncoder(w)
	if pretty {
		e.SetIndent("", "  ")
	}
	return errors.Wrap(e.Encode(v), "unable to encode JSON")
}

func printYAML(w io.Writer, v interface{}) error {
	e, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "unable to encode YAML")
	}
	_, err = w.Write(e)
	return errors.WithStack(err)
}

// RegisterFormatFlags registers --format and --quiet.
func RegisterFormatFlags(flags *pflag.FlagSet) {
	RegisterNoiseFlags(flags)
	flags.String(FlagFormat, string(FormatDefault), fmt.Sprintf("Set the output format. One of %s, %s, %s, %s, and %s.", FormatDefault, FormatTable, FormatJSON, FormatJSONPretty, FormatYAML))
}
