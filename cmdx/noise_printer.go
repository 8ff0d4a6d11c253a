package cmdx

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	FlagQuiet = "quiet"
)

func RegisterNoiseFlags(flags *pflag.FlagSet) {
	flags.BoolP(FlagQuiet, FlagQuiet[:1], false, "Be quiet with output printing. The exit code tells whether the instance is valid.")
}

func getQuiet(cmd *cobra.Command) bool {
	q, err := cmd.Flags().GetBool(FlagQuiet)
	// ignore the error here as we use this function also when the flag might not be registered
	if err != nil {
		return false
	}
	return q
}
