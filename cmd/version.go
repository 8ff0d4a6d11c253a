package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xbrlgl/glvalidate/cmdx"
)

type outputVersion struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

func (outputVersion) Header() []string {
	return []string{"Version:", "Git Hash:", "Build Time:"}
}

func (v outputVersion) Columns() []string {
	return []string{v.Version, v.Commit, v.Date}
}

func (v outputVersion) Interface() interface{} {
	return v
}

func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display this binary's version, build time and git hash",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, _ := cmd.Flags().GetString(cmdx.FlagFormat)
			p, err := cmdx.NewPrinter(cmd, format)
			if err != nil {
				return err
			}
			return p.PrintRow(outputVersion{Version: Version, Commit: Commit, Date: Date})
		},
	}
}
