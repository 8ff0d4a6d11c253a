package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/xbrlgl/glvalidate/cmdx"
	"github.com/xbrlgl/glvalidate/configx"
	"github.com/xbrlgl/glvalidate/validation"
)

// Build information, set with -ldflags.
var (
	Version = "master"
	Commit  = "undefined"
	Date    = "undefined"
)

const (
	FlagBaseDir        = "base-dir"
	FlagLogLevel       = "log-level"
	FlagLogFormat      = "log-format"
	FlagLang           = "lang"
	FlagAllowRemote    = "allow-remote"
	FlagRemoteTimeout  = "remote-timeout"
	FlagNoAssertFormat = "no-assert-format"
)

var globalFlagKeys = map[string]string{
	FlagBaseDir:        configx.KeyBaseDir,
	FlagLogLevel:       configx.KeyLogLevel,
	FlagLogFormat:      configx.KeyLogFormat,
	FlagLang:           configx.KeyLanguage,
	FlagAllowRemote:    configx.KeyRemoteAllow,
	FlagRemoteTimeout:  configx.KeyRemoteTimeout,
	FlagNoAssertFormat: configx.NegateFlag + configx.KeyAssertFormat,
	cmdx.FlagFormat:    configx.KeyOutputFormat,
}

var validationExitCodes = map[string]string{
	"0": "the instance is valid",
	"1": "the instance is not valid",
	"2": "a runtime error occurred",
}

func NewRootCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "glvalidate",
		Short: "Validate XBRL Global Ledger instances against their JSON Schemas",
		Long: `Validate XBRL Global Ledger (XBRL-GL) instance documents against the XBRL-GL JSON Schemas.

Schema references to the draft 2020-12 meta-schemas, the UN/CEFACT basic components
library and its codelists are resolved from local files. All paths are relative to
--base-dir and can be set in a config file, with flags or with GLVALIDATE_* environment
variables.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	flags := c.PersistentFlags()
	configx.RegisterConfigFlag(flags, nil)
	cmdx.RegisterFormatFlags(flags)
	flags.String(FlagBaseDir, ".", "Directory relative paths are resolved against.")
	flags.String(FlagLogLevel, "info", "Log level, one of trace, debug, info, warn, error, fatal, panic.")
	flags.String(FlagLogFormat, "text", "Log format, one of text, json, json_pretty.")
	flags.String(FlagLang, "en", "Language of validation error messages as a BCP 47 tag.")
	flags.Bool(FlagAllowRemote, false, "Allow the schema and instance to be fetched over http and https.")
	flags.String(FlagRemoteTimeout, "1m", "Timeout for fetching remote schemas and instances.")
	flags.Bool(FlagNoAssertFormat, false, `Do not validate the "format" keyword.`)

	c.AddCommand(
		NewValidateCmd(),
		NewPreloadCmd(),
		NewResolveCmd(),
		NewVersionCmd(),
	)

	cmdx.EnableUsageTemplating(c)
	return c
}

// Execute runs c and returns the exit code for the process. Errors that were
// not reported by the command itself are printed as runtime errors.
func Execute(c *cobra.Command) int {
	err := c.Execute()

	var e *cmdx.ExitError
	if err != nil && !errors.As(err, &e) {
		_, _ = fmt.Fprintln(c.ErrOrStderr(), validation.RuntimeErrorPrefix+err.Error())
	}
	return cmdx.ExitCode(err)
}
