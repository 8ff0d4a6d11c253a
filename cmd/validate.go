package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xbrlgl/glvalidate/cmdx"
	"github.com/xbrlgl/glvalidate/configx"
	"github.com/xbrlgl/glvalidate/validation"
)

const (
	FlagSchema          = "schema"
	FlagInstance        = "instance"
	FlagMetaSchema      = "meta-schema"
	FlagVocabularies    = "vocabularies"
	FlagBasicComponents = "basic-components"
	FlagCodelists       = "codelists"
)

var validateFlagKeys = map[string]string{
	FlagSchema:          configx.KeySchema,
	FlagInstance:        configx.KeyInstance,
	FlagMetaSchema:      configx.KeyMetaSchema,
	FlagVocabularies:    configx.KeyVocabularies,
	FlagBasicComponents: configx.KeyBasicComponents,
	FlagCodelists:       configx.KeyCodelists,
}

func NewValidateCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "validate [instance]",
		Short: "Compile an XBRL-GL schema and validate an instance against it",
		Long: `Compile the root schema and validate an instance against it.

References the schema makes to the draft 2020-12 meta-schema and vocabularies, to
UNECE-BasicComponents.json or to files in a codelists/ directory are loaded from the
configured local files. Any other reference aborts with "Unknown schema URI".

The instance can be given as the only argument, with --instance or in the config file.
Files ending in .yaml or .yml are read as YAML.`,
		Example: `{{ .CommandPath }} --schema schemas/xbrl-gl-cor-schema.json samples/xbrl-gl-instance.json
{{ .CommandPath }} --base-dir ~/xbrl-gl --format table`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []configx.OptionModifier
			if len(args) == 1 {
				opts = append(opts, configx.WithValue(configx.KeyInstance, args[0]))
			}

			s, err := newSession(cmd, validateFlagKeys, opts...)
			if err != nil {
				return err
			}

			vo, err := s.validationOptions()
			if err != nil {
				return err
			}

			res, err := validation.NewDriver(s.inputFetcher(), s.resolver(), vo...).
				Run(cmd.Context(), s.cfg.Path(configx.KeySchema), s.cfg.Path(configx.KeyInstance))
			if err != nil {
				return s.fail(err, "Unable to validate the instance.")
			}

			return s.report(res)
		},
	}

	flags := c.Flags()
	flags.String(FlagSchema, "schemas/xbrl-gl-cor-schema.json", "The root schema.")
	flags.String(FlagInstance, "samples/xbrl-gl-instance.json", "The instance to validate.")
	flags.String(FlagMetaSchema, "schemas/draft2020-12.json", "The draft 2020-12 meta-schema.")
	flags.String(FlagVocabularies, "schemas/meta", "Directory of the draft 2020-12 vocabulary meta-schemas.")
	flags.String(FlagBasicComponents, "", "The UNECE-BasicComponents.json file.")
	flags.String(FlagCodelists, "", "Directory of the UN/CEFACT codelists.")

	cmdx.SetExitCodes(c, validationExitCodes)
	return c
}
