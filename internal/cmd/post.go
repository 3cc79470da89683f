package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/qawatake/md2jira/internal/derrors"
	"github.com/qawatake/md2jira/internal/diff"
	"github.com/qawatake/md2jira/internal/jira"
	"github.com/qawatake/md2jira/internal/ui"
	"github.com/spf13/cobra"
)

var postFlags struct {
	issue   string
	comment bool
	yes     bool
}

var postCmd = &cobra.Command{
	Use:   "post FILE",
	Short: "Convert a Markdown file and post it to a Jira issue",
	Long: `Convert a Markdown file and post it to a Jira issue.

The issue is taken from --issue or from the "issue" key of the front matter.
By default the issue description is replaced, after showing a diff against
the current description. --comment adds a comment instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer derrors.Wrap(&err)

		srcs, err := readSources(args, cmd.InOrStdin())
		if err != nil {
			return err
		}
		results, err := convertSources(cmd.Context(), srcs, false, 1, markdownOptions())
		if err != nil {
			return err
		}
		res := results[0]

		key := postFlags.issue
		if key == "" {
			key = res.Issue
		}
		if key == "" {
			return errors.New("no issue: pass --issue or set issue in the front matter")
		}
		if !jira.IsValidIssueKey(key) {
			return fmt.Errorf("invalid issue key: %s", key)
		}

		client, err := jira.NewClient(cfg)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if postFlags.comment {
			if !postFlags.yes {
				ok, err := confirm(cmd, fmt.Sprintf("Comment on %s?", key), summarize(res.Body()))
				if err != nil || !ok {
					return err
				}
			}
			id, err := ui.WithSpinnerValue("Posting comment...", func() (string, error) {
				return client.AddComment(ctx, key, res.Body())
			})
			if err != nil {
				return err
			}
			printSuccess(cmd.ErrOrStderr(), "commented on %s (comment %s)", pathStyle.Render(key), id)
			fmt.Fprintln(cmd.OutOrStdout(), client.IssueURL(key))
			return nil
		}

		issue, err := ui.WithSpinnerValue("Fetching "+key+"...", func() (*jira.Issue, error) {
			return client.GetIssue(ctx, key)
		})
		if err != nil {
			return err
		}
		d, err := diff.Unified(key, normalizeDescription(issue.Description), res.Body(), isTerminal(cmd.OutOrStdout()))
		if err != nil {
			return err
		}
		if !d.Changed {
			printWarn(cmd.ErrOrStderr(), "%s is already up to date", key)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), d.Text)

		if !postFlags.yes {
			ok, err := confirm(cmd, fmt.Sprintf("Update the description of %s?", key), issue.Summary)
			if err != nil || !ok {
				return err
			}
		}
		if err := ui.WithSpinner("Updating "+key+"...", func() error {
			return client.UpdateDescription(ctx, key, res.Body())
		}); err != nil {
			return err
		}
		printSuccess(cmd.ErrOrStderr(), "updated %s", pathStyle.Render(key))
		fmt.Fprintln(cmd.OutOrStdout(), client.IssueURL(key))
		return nil
	},
}

// normalizeDescription makes a stored description comparable to Body output.
func normalizeDescription(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n"))
	if s == "" {
		return ""
	}
	return s + "\n"
}

func summarize(markup string) string {
	const limit = 200
	r := []rune(markup)
	if len(r) <= limit {
		return markup
	}
	return string(r[:limit]) + "…"
}

// confirm asks the user and reports a refusal on stderr. Refusing is not an
// error.
func confirm(cmd *cobra.Command, title, description string) (bool, error) {
	ok, err := ui.Confirm(title, description)
	if err != nil && !errors.Is(err, ui.ErrCancelled) {
		return false, err
	}
	if !ok {
		printWarn(cmd.ErrOrStderr(), "aborted")
	}
	return ok, nil
}

func init() {
	postCmd.Flags().StringVarP(&postFlags.issue, "issue", "i", "", "issue key such as PRJ-123")
	postCmd.Flags().BoolVar(&postFlags.comment, "comment", false, "add a comment instead of replacing the description")
	postCmd.Flags().BoolVarP(&postFlags.yes, "yes", "y", false, "do not ask for confirmation")
	rootCmd.AddCommand(postCmd)
}
