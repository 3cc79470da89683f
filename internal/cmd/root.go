package cmd

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/qawatake/md2jira/internal/config"
	"github.com/qawatake/md2jira/internal/extension"
	"github.com/qawatake/md2jira/internal/verbose"
	"github.com/qawatake/md2jira/pkg/markdown"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "md2jira",
	Short: "Convert Markdown to Jira wiki markup",
	Long: `md2jira converts Markdown, including embedded HTML, into Jira wiki markup.

The result can be printed, written next to the source, previewed, or posted
to a Jira issue. Executables named md2jira-* in your PATH run as subcommands.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		cfg = c
		if cfg.File != "" {
			verbose.Printf("config: %s\n", cfg.File)
		}
		return nil
	},
}

// Execute executes the root command. An unknown first argument naming an
// installed extension runs that extension instead.
func Execute() error {
	if ext, args, ok := lookupExtension(os.Args[1:]); ok {
		return runExtension(ext, args)
	}
	return rootCmd.Execute()
}

func lookupExtension(args []string) (string, []string, bool) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return "", nil, false
	}
	if c, _, err := rootCmd.Find(args); err == nil && c != rootCmd {
		return "", nil, false
	}
	_, ok, err := extension.NewManager("").Find(args[0])
	if err != nil || !ok {
		return "", nil, false
	}
	return args[0], args[1:], true
}

func runExtension(name string, args []string) error {
	var file string
	if c, err := config.LoadConfig(""); err == nil {
		file = c.File
	}
	return extension.NewManager(file).Execute(context.Background(), name, args)
}

// markdownOptions returns the conversion options from the configuration,
// with node tracing when --verbose is set.
func markdownOptions() []markdown.Option {
	var opts []markdown.Option
	if cfg != nil {
		opts = cfg.MarkdownOptions()
	}
	if verbose.Enabled {
		opts = append(opts, markdown.WithDebugf(verbose.Debugf))
	}
	return opts
}

var errNoInput = errors.New("no input")

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./.md2jira.yml or ~/.config/md2jira/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose.Enabled, "verbose", "v", false, "print diagnostics to stderr")
}
