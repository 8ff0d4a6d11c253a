package validation

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/tidwall/gjson"
	"golang.org/x/text/message"

	"github.com/xbrlgl/glvalidate/jsonschemax"
	"github.com/xbrlgl/glvalidate/stringsx"
)

const (
	// SuccessMarker is printed when the instance conforms.
	SuccessMarker = "Validation successful: data is valid against the schema."
	// ErrorsMarker precedes the list of error records.
	ErrorsMarker = "Validation errors:"
	// RuntimeErrorPrefix precedes the message of fatal errors.
	RuntimeErrorPrefix = "Runtime error: "

	excerptLength = 80
)

// Result is the outcome of validating one instance. Errors is empty when Valid
// is true and non-empty otherwise, in the order the engine reported them.
type Result struct {
	Valid  bool          `json:"valid"`
	Errors []ErrorRecord `json:"errors,omitempty"`
}

// ErrorRecord is a single failed assertion.
type ErrorRecord struct {
	// InstanceLocation is a JSON Pointer into the instance, "" for the root.
	InstanceLocation string `json:"instanceLocation"`
	// SchemaLocation is the absolute location of the failing keyword.
	SchemaLocation string `json:"schemaLocation"`
	Message        string `json:"message"`
	// Value is a JSON excerpt of the offending value.
	Value string `json:"value,omitempty"`
}

// NewResult converts the outcome of jsonschema.Schema.Validate. It returns
// err unchanged when it is not a validation error.
func NewResult(err error, p *message.Printer, instance []byte) (*Result, error) {
	if err == nil {
		return &Result{Valid: true}, nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, err
	}

	r := &Result{Valid: false}
	r.Errors = appendLeaves(r.Errors, ve, p, instance)
	return r, nil
}

func appendLeaves(records []ErrorRecord, e *jsonschema.ValidationError, p *message.Printer, instance []byte) []ErrorRecord {
	if len(e.Causes) > 0 {
		for _, c := range e.Causes {
			records = appendLeaves(records, c, p, instance)
		}
		return records
	}

	return append(records, ErrorRecord{
		InstanceLocation: jsonschemax.JSONPointer(e.InstanceLocation),
		SchemaLocation:   schemaLocation(e),
		Message:          e.ErrorKind.LocalizedString(p),
		Value:            excerpt(instance, e.InstanceLocation),
	})
}

func schemaLocation(e *jsonschema.ValidationError) string {
	kw := e.ErrorKind.KeywordPath()
	if len(kw) == 0 {
		return e.SchemaURL
	}

	loc := e.SchemaURL
	if !strings.Contains(loc, "#") {
		loc += "#"
	}
	return loc + jsonschemax.JSONPointer(kw)
}

func excerpt(instance []byte, location []string) string {
	if len(instance) == 0 {
		return ""
	}

	path := "@this"
	if len(location) > 0 {
		path = jsonschemax.JSONPointerToDotNotation(jsonschemax.JSONPointer(location))
	}

	v := gjson.GetBytes(instance, path)
	if !v.Exists() {
		return ""
	}
	return stringsx.Excerpt(v.Raw, excerptLength)
}
