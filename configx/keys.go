package configx

import (
	_ "embed"
)

//go:embed config.schema.json
var ConfigSchema []byte

const ConfigSchemaID = "glvalidate://config"

const (
	KeyLogLevel        = "log.level"
	KeyLogFormat       = "log.format"
	KeyBaseDir         = "paths.base"
	KeySchema          = "paths.schema"
	KeyInstance        = "paths.instance"
	KeyMetaSchema      = "paths.metaschema"
	KeyVocabularies    = "paths.vocabularies"
	KeyBasicComponents = "paths.basiccomponents"
	KeyCodelists       = "paths.codelists"
	KeyPreloadTarget   = "preload.target"
	KeyPreloadInstance = "preload.instance"
	KeyPreloadSchemas  = "preload.schemas"
	KeyOutputFormat    = "output.format"
	KeyLanguage        = "output.lang"
	KeyAssertFormat    = "validation.assertformat"
	KeyRemoteAllow     = "remote.allow"
	KeyRemoteTimeout   = "remote.timeout"
)

const (
	uncefactLibrary = "../uncefact/spec-JSONschema/JSONschema2020-12/library/BuyShipPay/D23B"

	// BasicComponentsID and CoreSchemaID are the identifiers the preload
	// validator registers its documents under by default.
	BasicComponentsID = "https://example.com/UNECE-BasicComponents.json"
	CoreSchemaID      = "https://xbrl.org/XBRL-GL-YYYY-MM-DD/schemas/gl-cor.json"
)

// Defaults returns the built-in configuration. It mirrors the layout of the
// XBRL-GL JSON Schema repository: schemas/ and samples/ next to each other,
// the UN/CEFACT library one level up.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		KeyLogLevel:        "info",
		KeyLogFormat:       "text",
		KeyBaseDir:         ".",
		KeySchema:          "schemas/xbrl-gl-cor-schema.json",
		KeyInstance:        "samples/xbrl-gl-instance.json",
		KeyMetaSchema:      "schemas/draft2020-12.json",
		KeyVocabularies:    "schemas/meta",
		KeyBasicComponents: uncefactLibrary + "/UNECE-BasicComponents.json",
		KeyCodelists:       uncefactLibrary + "/codelists",
		KeyPreloadTarget:   CoreSchemaID,
		KeyPreloadInstance: "xbrl-gl-instance.json",
		KeyPreloadSchemas: []interface{}{
			map[string]interface{}{"id": BasicComponentsID, "path": "D23B/UNECE-BasicComponents.json"},
			map[string]interface{}{"id": CoreSchemaID, "path": "xbrl-gl-core-schema.json"},
		},
		KeyOutputFormat:  "default",
		KeyLanguage:      "en",
		KeyAssertFormat:  true,
		KeyRemoteAllow:   false,
		KeyRemoteTimeout: "1m",
	}
}
