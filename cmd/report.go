package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xbrlgl/glvalidate/validation"
)

type (
	outputReport struct {
		*validation.Result
	}
	outputDocuments struct {
		URIs      []string
		Documents []any
	}
	outputDocument struct {
		URI      string `json:"uri"`
		Document any    `json:"document"`
	}
	outputRoutes []string
)

func (*outputReport) Header() []string {
	return []string{"INSTANCE LOCATION", "MESSAGE", "SCHEMA LOCATION"}
}

func (r *outputReport) Table() [][]string {
	rows := make([][]string, len(r.Errors))
	for i, e := range r.Errors {
		loc := e.InstanceLocation
		if loc == "" {
			loc = "(root)"
		}
		rows[i] = []string{loc, e.Message, e.SchemaLocation}
	}
	return rows
}

func (r *outputReport) Interface() interface{} {
	return r.Result
}

func (r *outputReport) Len() int {
	return len(r.Errors)
}

func (r *outputReport) Summary() string {
	if r.Valid {
		return validation.SuccessMarker
	}
	return validation.ErrorsMarker
}

func (r *outputReport) String() string {
	if r.Valid {
		return validation.SuccessMarker + "\n"
	}
	return validation.ErrorsMarker + "\n" + prettyJSON(r.Errors) + "\n"
}

func (*outputDocuments) Header() []string {
	return []string{"URI", "DOCUMENT"}
}

func (d *outputDocuments) Table() [][]string {
	rows := make([][]string, len(d.URIs))
	for i, uri := range d.URIs {
		doc, _ := json.Marshal(d.Documents[i])
		rows[i] = []string{uri, string(doc)}
	}
	return rows
}

func (d *outputDocuments) Interface() interface{} {
	docs := make([]outputDocument, len(d.URIs))
	for i, uri := range d.URIs {
		docs[i] = outputDocument{URI: uri, Document: d.Documents[i]}
	}
	return docs
}

func (d *outputDocuments) Len() int {
	return len(d.URIs)
}

func (*outputDocuments) Summary() string {
	return ""
}

func (d *outputDocuments) String() string {
	var b strings.Builder
	for i, uri := range d.URIs {
		_, _ = fmt.Fprintf(&b, "# %s\n%s\n", uri, prettyJSON(d.Documents[i]))
	}
	return b.String()
}

func (outputRoutes) Header() []string {
	return []string{"ROUTE"}
}

func (r outputRoutes) Table() [][]string {
	rows := make([][]string, len(r))
	for i, name := range r {
		rows[i] = []string{name}
	}
	return rows
}

func (r outputRoutes) Interface() interface{} {
	return []string(r)
}

func (r outputRoutes) Len() int {
	return len(r)
}

func prettyJSON(v interface{}) string {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(out)
}
