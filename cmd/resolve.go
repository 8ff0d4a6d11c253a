package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/xbrlgl/glvalidate/configx"
)

const FlagRoutes = "routes"

var resolveFlagKeys = map[string]string{
	FlagMetaSchema:      configx.KeyMetaSchema,
	FlagVocabularies:    configx.KeyVocabularies,
	FlagBasicComponents: configx.KeyBasicComponents,
	FlagCodelists:       configx.KeyCodelists,
}

func NewResolveCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "resolve <uri> [<uri>...]",
		Short: "Print the documents schema URIs resolve to",
		Long: `Resolve schema URIs the way the validate command does and print the resulting
documents in the order given. Use --routes to list the routing table instead.`,
		Example: `{{ .CommandPath }} http://json-schema.org/draft/2020-12/meta/core
{{ .CommandPath }} --format yaml https://example.com/codelists/ISO_ISO3AlphaCurrencyCode.json
{{ .CommandPath }} --routes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			routes, _ := cmd.Flags().GetBool(FlagRoutes)
			if !routes && len(args) == 0 {
				return errors.New("at least one schema URI is required")
			}

			s, err := newSession(cmd, resolveFlagKeys)
			if err != nil {
				return err
			}

			p, err := s.printer()
			if err != nil {
				return err
			}

			r := s.resolver()
			if routes {
				return p.PrintTable(outputRoutes(r.Routes()))
			}

			docs := make([]any, len(args))
			eg, ctx := errgroup.WithContext(cmd.Context())
			for i, uri := range args {
				i, uri := i, uri
				eg.Go(func() (err error) {
					docs[i], err = r.Resolve(ctx, uri)
					return err
				})
			}
			if err := eg.Wait(); err != nil {
				return s.fail(err, "Unable to resolve schema URI.")
			}

			return p.PrintReport(&outputDocuments{URIs: args, Documents: docs})
		},
	}

	flags := c.Flags()
	flags.Bool(FlagRoutes, false, "List the routes URIs are matched against, in order.")
	flags.String(FlagMetaSchema, "schemas/draft2020-12.json", "The draft 2020-12 meta-schema.")
	flags.String(FlagVocabularies, "schemas/meta", "Directory of the draft 2020-12 vocabulary meta-schemas.")
	flags.String(FlagBasicComponents, "", "The UNECE-BasicComponents.json file.")
	flags.String(FlagCodelists, "", "Directory of the UN/CEFACT codelists.")

	return c
}
