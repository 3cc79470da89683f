package cmd

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/qawatake/md2jira/internal/derrors"
	"github.com/qawatake/md2jira/internal/document"
	"github.com/qawatake/md2jira/internal/preview"
	"github.com/spf13/cobra"
)

var previewFlags struct {
	html  bool
	jira  bool
	out   string
	width int
}

var previewCmd = &cobra.Command{
	Use:   "preview [file]",
	Short: "Preview a Markdown file before converting it",
	Long: `Preview a Markdown file before converting it.

By default the Markdown is rendered for the terminal. --html renders a
standalone HTML page with highlighted code blocks instead, and --jira also
prints the Jira markup under the rendered Markdown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer derrors.Wrap(&err)

		srcs, err := readSources(args, cmd.InOrStdin())
		if err != nil {
			return err
		}
		src := srcs[0]
		doc, err := document.Parse(src.Content)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if previewFlags.out != "" {
			f, err := os.Create(previewFlags.out)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := f.Close(); err == nil {
					err = cerr
				}
			}()
			out = f
		}

		if previewFlags.html {
			page, err := preview.Page(doc.Markdown(), pageTitle(doc, src.Path))
			if err != nil {
				return err
			}
			_, err = io.WriteString(out, page)
			return err
		}

		style := cfg.Preview.Style
		if !isTerminal(out) {
			style = "notty"
		}
		term, err := preview.NewTerminal(style, previewFlags.width)
		if err != nil {
			return err
		}
		rendered, err := term.Render(doc.Markdown())
		if err != nil {
			return err
		}
		if !isTerminal(out) {
			rendered = preview.Strip(rendered)
		}
		var b strings.Builder
		b.WriteString(rendered + "\n")
		if previewFlags.jira {
			res, err := document.Convert(src.Content, markdownOptions()...)
			if err != nil {
				return err
			}
			b.WriteString("\n" + faintStyle.Render("── Jira markup ──") + "\n\n")
			b.WriteString(strings.TrimSpace(res.Markup) + "\n")
		}
		_, err = io.WriteString(out, b.String())
		return err
	},
}

func pageTitle(doc *document.Document, path string) string {
	switch {
	case doc.Title != "":
		return doc.Title
	case path != "":
		return filepath.Base(path)
	default:
		return "md2jira preview"
	}
}

func init() {
	previewCmd.Flags().BoolVar(&previewFlags.html, "html", false, "render an HTML page instead of terminal output")
	previewCmd.Flags().BoolVar(&previewFlags.jira, "jira", false, "also print the converted Jira markup")
	previewCmd.Flags().StringVarP(&previewFlags.out, "out", "o", "", "write the preview to a file")
	previewCmd.Flags().IntVarP(&previewFlags.width, "width", "w", 100, "wrap terminal output at this width")
	rootCmd.AddCommand(previewCmd)
}
