package cmd

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/xbrlgl/glvalidate/cmdx"
	"github.com/xbrlgl/glvalidate/configx"
	"github.com/xbrlgl/glvalidate/validation"
)

const (
	FlagTarget   = "target"
	FlagRegister = "register"
)

var preloadFlagKeys = map[string]string{
	FlagTarget:   configx.KeyPreloadTarget,
	FlagInstance: configx.KeyPreloadInstance,
}

func NewPreloadCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "preload [instance]",
		Short: "Validate an instance against schemas registered under fixed identifiers",
		Long: `Register schema files under fixed identifiers and validate an instance against
the schema registered as --target.

Schemas are not loaded lazily: a reference to an identifier that was not registered
fails. Register schemas with --register <id>=<path> or in the config file under
preload.schemas.`,
		Example: `{{ .CommandPath }} \
  --register https://example.com/UNECE-BasicComponents.json=D23B/UNECE-BasicComponents.json \
  --register https://xbrl.org/XBRL-GL-YYYY-MM-DD/schemas/gl-cor.json=xbrl-gl-core-schema.json \
  --target https://xbrl.org/XBRL-GL-YYYY-MM-DD/schemas/gl-cor.json \
  xbrl-gl-instance.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []configx.OptionModifier
			if len(args) == 1 {
				opts = append(opts, configx.WithValue(configx.KeyPreloadInstance, args[0]))
			}

			if cmd.Flags().Changed(FlagRegister) {
				values, _ := cmd.Flags().GetStringArray(FlagRegister)
				schemas, err := parseRegistrations(values)
				if err != nil {
					return err
				}
				opts = append(opts, configx.WithValue(configx.KeyPreloadSchemas, schemas))
			}

			s, err := newSession(cmd, preloadFlagKeys, opts...)
			if err != nil {
				return err
			}

			vo, err := s.validationOptions()
			if err != nil {
				return err
			}

			schemas, err := s.cfg.PreloadSchemas()
			if err != nil {
				return err
			}

			docs := make([]validation.Document, len(schemas))
			for i, schema := range schemas {
				docs[i] = validation.Document{ID: schema.ID, Location: schema.Path}
			}

			res, err := validation.NewPreloader(s.inputFetcher(), vo...).
				Run(cmd.Context(), docs, s.cfg.String(configx.KeyPreloadTarget), s.cfg.Path(configx.KeyPreloadInstance))
			if err != nil {
				return s.fail(err, "Unable to validate the instance.")
			}

			return s.report(res)
		},
	}

	flags := c.Flags()
	flags.String(FlagTarget, configx.CoreSchemaID, "Identifier of the schema to validate against.")
	flags.String(FlagInstance, "xbrl-gl-instance.json", "The instance to validate.")
	flags.StringArray(FlagRegister, nil, "Register a schema file as <id>=<path>. Replaces the configured schemas. Can be repeated.")

	cmdx.SetExitCodes(c, validationExitCodes)
	return c
}

// parseRegistrations turns <id>=<path> pairs into preload.schemas entries.
// The path is everything after the last "=".
func parseRegistrations(values []string) ([]interface{}, error) {
	schemas := make([]interface{}, 0, len(values))
	for _, v := range values {
		i := strings.LastIndex(v, "=")
		if i <= 0 || i == len(v)-1 {
			return nil, errors.Errorf("expected --%s <id>=<path> but got %q", FlagRegister, v)
		}
		schemas = append(schemas, map[string]interface{}{"id": v[:i], "path": v[i+1:]})
	}
	return schemas, nil
}
