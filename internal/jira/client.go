// Package jira publishes converted markup to Jira through its REST API.
package jira

import (
	"context"
	"fmt"
	"regexp"

	jiralib "github.com/andygrunwald/go-jira"
	"github.com/qawatake/md2jira/internal/config"
	"github.com/qawatake/md2jira/internal/derrors"
	"github.com/qawatake/md2jira/internal/verbose"
)

// Client wraps the Jira API client.
type Client struct {
	jiraClient *jiralib.Client
	config     *config.Config
}

// Issue is the part of a Jira issue md2jira reads.
type Issue struct {
	Key         string
	Summary     string
	Description string
}

var issueKey = regexp.MustCompile(`^[A-Z][A-Z0-9_]*-[1-9][0-9]*$`)

// IsValidIssueKey reports whether key looks like PRJ-123.
func IsValidIssueKey(key string) bool {
	return issueKey.MatchString(key)
}

// NewClient creates a client authenticated as configured by cfg.
func NewClient(cfg *config.Config) (*Client, error) {
	if err := cfg.ValidateJira(); err != nil {
		return nil, fmt.Errorf("jira is not configured: %w", err)
	}

	var (
		jiraClient *jiralib.Client
		err        error
	)
	switch cfg.AuthType {
	case "basic":
		tp := jiralib.BasicAuthTransport{
			Username: cfg.Login,
			Password: cfg.Token,
		}
		jiraClient, err = jiralib.NewClient(tp.Client(), cfg.Server)
	case "bearer":
		tp := jiralib.BearerAuthTransport{
			Token: cfg.Token,
		}
		jiraClient, err = jiralib.NewClient(tp.Client(), cfg.Server)
	default:
		return nil, fmt.Errorf("unsupported auth type: %s", cfg.AuthType)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create jira client: %w", err)
	}

	return &Client{jiraClient: jiraClient, config: cfg}, nil
}

// GetIssue fetches the summary and description of key.
func (c *Client) GetIssue(ctx context.Context, key string) (_ *Issue, err error) {
	defer derrors.Wrap(&err)
	issue, resp, err := c.jiraClient.Issue.GetWithContext(ctx, key, &jiralib.GetQueryOptions{
		Fields: "summary,description",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get issue %s: %w", key, responseError(resp, err))
	}

	got := &Issue{Key: issue.Key}
	if issue.Fields != nil {
		got.Summary = issue.Fields.Summary
		got.Description = issue.Fields.Description
	}
	return got, nil
}

// UpdateDescription replaces the description of key with markup.
func (c *Client) UpdateDescription(ctx context.Context, key, markup string) (err error) {
	defer derrors.Wrap(&err)
	verbose.Printf("updating description of %s (%d bytes)\n", key, len(markup))

	resp, err := c.jiraClient.Issue.UpdateIssueWithContext(ctx, key, map[string]any{
		"fields": map[string]any{
			"description": markup,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to update issue %s: %w", key, responseError(resp, err))
	}
	return nil
}

// AddComment posts markup as a new comment on key and returns its ID.
func (c *Client) AddComment(ctx context.Context, key, markup string) (_ string, err error) {
	defer derrors.Wrap(&err)
	verbose.Printf("adding comment to %s (%d bytes)\n", key, len(markup))

	comment, resp, err := c.jiraClient.Issue.AddCommentWithContext(ctx, key, &jiralib.Comment{Body: markup})
	if err != nil {
		return "", fmt.Errorf("failed to comment on issue %s: %w", key, responseError(resp, err))
	}
	return comment.ID, nil
}

// IssueURL is the browser URL of key.
func (c *Client) IssueURL(key string) string {
	u := c.jiraClient.GetBaseURL()
	return u.JoinPath("browse", key).String()
}

func responseError(resp *jiralib.Response, err error) error {
	if resp == nil || resp.Response == nil {
		return err
	}
	return fmt.Errorf("%s: %w", resp.Status, err)
}
