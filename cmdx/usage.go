package cmdx

import (
	"bytes"
	"sort"
	"text/template"

	"github.com/spf13/cobra"
)

// AnnotationExitCodes is the cobra annotation holding a command's exit code
// documentation. Keys are exit codes, values describe them.
const AnnotationExitCodes = "exit-codes"

// EnableUsageTemplating enables gotemplates for usage strings, i.e. cmd.Short, cmd.Long, and cmd.Example.
// The data for the template is the command itself. Especially useful are `.Root.Name` and `.CommandPath`.
// This will be inherited by all subcommands, so enabling it on the root command is sufficient.
//
// Commands documenting their exit codes with SetExitCodes get an extra section in their usage.
func EnableUsageTemplating(cmd *cobra.Command) {
	cobra.AddTemplateFunc("insertTemplate", func(cmd *cobra.Command, tmpl string) (string, error) {
		t, err := template.New("").Parse(tmpl)
		if err != nil {
			return "", err
		}
		var out bytes.Buffer
		if err := t.Execute(&out, cmd); err != nil {
			return "", err
		}
		return out.String(), nil
	})
	cobra.AddTemplateFunc("exitCodes", exitCodes)
	cmd.SetHelpTemplate(`{{insertTemplate . (or .Long .Short) | trimTrailingWhitespaces}}

{{if or .Runnable .HasSubCommands}}{{.UsageString}}{{end}}`)
	cmd.SetUsageTemplate(`Usage:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if .HasExample}}

Examples:
{{insertTemplate . .Example}}{{end}}{{if .HasAvailableSubCommands}}

Available Commands:{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{with exitCodes .}}

Exit Codes:{{range .}}
  {{.}}{{end}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`)
}

// SetExitCodes documents the exit codes of cmd.
func SetExitCodes(cmd *cobra.Command, codes map[string]string) {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	for code, desc := range codes {
		cmd.Annotations[AnnotationExitCodes+"/"+code] = desc
	}
}

func exitCodes(cmd *cobra.Command) []string {
	var lines []string
	prefix := AnnotationExitCodes + "/"
	for k, v := range cmd.Annotations {
		if len(k) > len(prefix) && k[:len(prefix)] == prefix {
			lines = append(lines, k[len(prefix):]+"  "+v)
		}
	}
	sort.Strings(lines)
	return lines
}
