package jsonschemax

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"github.com/tidwall/gjson"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatValidationErrorForCLI writes every leaf of a validation error next to
// the offending value of doc. Errors that are not validation errors are ignored.
func FormatValidationErrorForCLI(w io.Writer, doc []byte, err error) {
	var e *jsonschema.ValidationError
	if !errors.As(err, &e) {
		return
	}
	formatValidationError(w, doc, e, message.NewPrinter(language.English))
}

func formatValidationError(w io.Writer, doc []byte, e *jsonschema.ValidationError, p *message.Printer) {
	if len(e.Causes) == 0 {
		pointer := JSONPointerToDotNotation(JSONPointer(e.InstanceLocation))
		validation := e.ErrorKind.LocalizedString(p)
		if r, ok := e.ErrorKind.(*kind.Required); ok && len(r.Missing) > 0 {
			validation = "one or more required properties are missing"
			pointer = strings.TrimPrefix(pointer+"."+r.Missing[0], ".")
		}

		if pointer == "" {
			_, _ = fmt.Fprintln(w, "(root)")
			_, _ = fmt.Fprintln(w, "^-- "+validation)
			_, _ = fmt.Fprintln(w, "")
		} else {
			_, _ = fmt.Fprintf(w, "%s: %+v", pointer, gjson.GetBytes(doc, pointer).Value())
			_, _ = fmt.Fprintln(w, "")
			_, _ = fmt.Fprintf(w, "%s^-- %s", strings.Repeat(" ", len(pointer)+2), validation)
			_, _ = fmt.Fprintln(w, "")
			_, _ = fmt.Fprintln(w, "")
		}
	}

	for _, cause := range e.Causes {
		formatValidationError(w, doc, cause, p)
	}
}
