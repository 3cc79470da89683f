package cmd

import (
	"fmt"

	"github.com/qawatake/md2jira/internal/extension"
	"github.com/spf13/cobra"
)

var extensionCmd = &cobra.Command{
	Use:   "extension",
	Short: "Manage md2jira extensions",
	Long:  `Manage md2jira extensions. Extensions are executables named md2jira-* in your PATH.`,
}

var extensionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed extensions",
	Long:  `List all md2jira extensions available in your PATH.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		extensions, err := extension.NewManager(cfg.File).FindExtensions()
		if err != nil {
			return fmt.Errorf("failed to find extensions: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(extensions) == 0 {
			fmt.Fprintln(out, "No extensions found.")
			fmt.Fprintf(out, "Extensions are executables named '%s*' in your PATH.\n", extension.Prefix)
			return nil
		}

		fmt.Fprintf(out, "Found %d extension(s):\n", len(extensions))
		for _, ext := range extensions {
			fmt.Fprintf(out, "  %s\t%s\n", ext.Name, faintStyle.Render(ext.Path))
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Usage: md2jira <extension-name> [args...]")
		return nil
	},
}

var extensionExecCmd = &cobra.Command{
	Use:                "exec NAME [args...]",
	Short:              "Run an extension",
	Args:               cobra.MinimumNArgs(1),
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		var file string
		if cfg != nil {
			file = cfg.File
		}
		return extension.NewManager(file).Execute(cmd.Context(), args[0], args[1:])
	},
}

func init() {
	extensionCmd.AddCommand(extensionListCmd)
	extensionCmd.AddCommand(extensionExecCmd)
	rootCmd.AddCommand(extensionCmd)
}
