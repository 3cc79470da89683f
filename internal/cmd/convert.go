package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/mattn/go-isatty"
	"github.com/qawatake/md2jira/internal/derrors"
	"github.com/qawatake/md2jira/internal/diff"
	"github.com/qawatake/md2jira/internal/document"
	"github.com/qawatake/md2jira/internal/verbose"
	"github.com/qawatake/md2jira/pkg/markdown"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"
)

// Extension of written markup files.
const jiraExt = ".jira"

var convertFlags struct {
	out      string
	diff     bool
	copy     bool
	pick     bool
	fromHTML bool
	jobs     int
}

var convertCmd = &cobra.Command{
	Use:   "convert [file...]",
	Short: "Convert Markdown files to Jira wiki markup",
	Long: `Convert Markdown files to Jira wiki markup.

With no file, or with "-", Markdown is read from stdin. A single input is
printed to stdout unless --out is given. Several inputs are written as
<name>.jira files into --out, or next to their sources.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer derrors.Wrap(&err)

		if convertFlags.pick {
			picked, err := pickMarkdownFile(".")
			if err != nil {
				return err
			}
			args = append(args, picked)
		}

		srcs, err := readSources(args, cmd.InOrStdin())
		if err != nil {
			return err
		}
		results, err := convertSources(cmd.Context(), srcs, convertFlags.fromHTML, convertFlags.jobs, markdownOptions())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch {
		case convertFlags.diff:
			err = diffResults(out, results, convertFlags.out, isTerminal(out))
		case len(results) == 1 && convertFlags.out == "" && !convertFlags.copy:
			_, err = io.WriteString(out, results[0].Body())
		case len(results) == 1 && convertFlags.out == "":
			// --copy alone only fills the clipboard.
		default:
			err = writeResults(cmd.ErrOrStderr(), results, convertFlags.out)
		}
		if err != nil {
			return err
		}

		if convertFlags.copy {
			if err := copyResults(results); err != nil {
				return err
			}
			printSuccess(cmd.ErrOrStderr(), "copied to clipboard")
		}
		return nil
	},
}

type source struct {
	// Path is empty for stdin.
	Path    string
	Content string
}

type converted struct {
	source
	Title  string
	Issue  string
	Markup string
}

// Body is the markup as written to files and stdout.
func (c *converted) Body() string {
	return strings.TrimSpace(c.Markup) + "\n"
}

func readSources(args []string, stdin io.Reader) ([]source, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}
	srcs := make([]source, 0, len(args))
	for _, arg := range args {
		if arg == "-" {
			b, err := io.ReadAll(stdin)
			if err != nil {
				return nil, fmt.Errorf("failed to read stdin: %w", err)
			}
			srcs = append(srcs, source{Content: string(b)})
			continue
		}
		b, err := os.ReadFile(arg)
		if err != nil {
			return nil, err
		}
		srcs = append(srcs, source{Path: arg, Content: string(b)})
	}
	return srcs, nil
}

// convertSources converts srcs concurrently, with at most jobs conversions
// in flight, and returns the results in the order of srcs.
func convertSources(ctx context.Context, srcs []source, fromHTML bool, jobs int, opts []markdown.Option) ([]*converted, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]*converted, len(srcs))
	p := pool.New().WithContext(ctx).WithMaxGoroutines(jobs).WithCancelOnError()
	for i, src := range srcs {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			verbose.Printf("converting %s\n", displayName(src.Path))
			var (
				res *document.Result
				err error
			)
			if fromHTML {
				res, err = document.ConvertHTML(src.Content, opts...)
			} else {
				res, err = document.Convert(src.Content, opts...)
			}
			if err != nil {
				return fmt.Errorf("%s: %w", displayName(src.Path), err)
			}
			results[i] = &converted{source: src, Title: res.Title, Issue: res.Issue, Markup: res.Markup}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// targetPath is where the markup converted from path is written.
func targetPath(outDir, path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + jiraExt
	if outDir == "" {
		return filepath.Join(filepath.Dir(path), name)
	}
	return filepath.Join(outDir, name)
}

func writeResults(status io.Writer, results []*converted, outDir string) error {
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return err
		}
	}
	for _, r := range results {
		if r.Path == "" {
			return errors.New("stdin can only be printed; drop --out or pass files")
		}
		target := targetPath(outDir, r.Path)
		if err := os.WriteFile(target, []byte(r.Body()), 0o644); err != nil {
			return err
		}
		printSuccess(status, "%s -> %s", r.Path, pathStyle.Render(target))
	}
	return nil
}

func diffResults(w io.Writer, results []*converted, outDir string, color bool) error {
	for _, r := range results {
		if r.Path == "" {
			return errors.New("--diff needs file arguments")
		}
		target := targetPath(outDir, r.Path)
		old, err := os.ReadFile(target)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		d, err := diff.Unified(target, string(old), r.Body(), color)
		if err != nil {
			return err
		}
		if !d.Changed {
			verbose.Printf("%s is up to date\n", target)
			continue
		}
		if _, err := io.WriteString(w, d.Text); err != nil {
			return err
		}
	}
	return nil
}

func copyResults(results []*converted) error {
	bodies := make([]string, len(results))
	for i, r := range results {
		bodies[i] = r.Body()
	}
	if err := clipboard.WriteAll(strings.Join(bodies, "\n")); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}

func displayName(path string) string {
	if path == "" {
		return "<stdin>"
	}
	return path
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func init() {
	convertCmd.Flags().StringVarP(&convertFlags.out, "out", "o", "", "directory to write <name>.jira files into")
	convertCmd.Flags().BoolVar(&convertFlags.diff, "diff", false, "show a diff against the existing .jira file instead of writing")
	convertCmd.Flags().BoolVar(&convertFlags.copy, "copy", false, "copy the markup to the clipboard")
	convertCmd.Flags().BoolVar(&convertFlags.pick, "pick", false, "pick a Markdown file with a fuzzy finder")
	convertCmd.Flags().BoolVar(&convertFlags.fromHTML, "from-html", false, "treat the input as HTML")
	convertCmd.Flags().IntVarP(&convertFlags.jobs, "jobs", "j", 0, "number of files converted concurrently (default GOMAXPROCS)")
	rootCmd.AddCommand(convertCmd)
}
