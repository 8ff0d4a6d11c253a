package logrusx

import (
	"bytes"
	_ "embed"

	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed config.schema.json
var ConfigSchema []byte

const ConfigSchemaID = "glvalidate://logging-config"

// AddConfigSchema adds the logging schema to the compiler.
// The interface is specified instead of `jsonschema.Compiler` to allow the use of any jsonschema library fork or version.
func AddConfigSchema(c interface {
	AddResource(url string, doc any) error
}) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(ConfigSchema))
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(c.AddResource(ConfigSchemaID, doc))
}
