package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const codeOpen = "{code:language=bash|borderStyle=solid|theme=RDark|linenumbers=true|collapse=false}"

func TestFixCommentedCodeBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "markers lose comment prefixes",
			input: "# " + codeOpen + "\n#echo hi\n# {code}",
			want:  codeOpen + "\necho hi\n{code}",
		},
		{
			name:  "only one leading hash is removed from body lines",
			input: codeOpen + "\n## title\n{code}",
			want:  codeOpen + "\n# title\n{code}",
		},
		{
			name:  "plain lines keep their hashes",
			input: "# heading-like\n" + codeOpen + "\nx\n{code}",
			want:  "# heading-like\n" + codeOpen + "\nx\n{code}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FixCommentedCodeBlocks(tt.input))
		})
	}
}

func TestFixDoubleUnderscore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain lines are escaped",
			input: "my__key and __x__",
			want:  `my\_\_key and \_\_x\_\_`,
		},
		{
			name:  "code regions are untouched",
			input: codeOpen + "\nmy__key\n{code}\nafter__x",
			want:  codeOpen + "\nmy__key\n{code}\nafter\\_\\_x",
		},
		{
			name:  "single underscores are untouched",
			input: "_em_ snake_case",
			want:  "_em_ snake_case",
		},
		{
			name:  "longer runs are escaped whole",
			input: "a___b ____",
			want:  `a\_\_\_b \_\_\_\_`,
		},
		{
			name:  "partly escaped runs are completed",
			input: `a\__b`,
			want:  `a\_\_\_b`,
		},
		{
			name:  "a stray {code in prose opens a region",
			input: "type {code:x to start\nmy__key",
			want:  "type {code:x to start\nmy__key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			once := FixDoubleUnderscore(tt.input)
			assert.Equal(t, tt.want, once)
			assert.Equal(t, once, FixDoubleUnderscore(once), "second run must be a no-op")
		})
	}
}

func TestEscapeAPIEndpoints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "verbs",
			input: "DELETE /items/{id}\nPATCH /items/{id}/tags/{tag}",
			want:  "DELETE /items/\\{id\\}\nPATCH /items/\\{id\\}/tags/\\{tag\\}",
		},
		{
			name:  "dotted and dashed paths",
			input: "fetch v1.2/my-res/{res-id}.json",
			want:  `fetch v1.2/my-res/\{res-id\}.json`,
		},
		{
			name:  "double braces are skipped",
			input: "{{x}} /a/{b}",
			want:  "{{x}} /a/{b}",
		},
		{
			name:  "code regions are skipped",
			input: codeOpen + "\nGET /a/{b}\n{code}",
			want:  codeOpen + "\nGET /a/{b}\n{code}",
		},
		{
			name:  "quote and noformat macros keep their braces",
			input: "{quote}GET /a/{b}{quote}\n{noformat}",
			want:  "{quote}GET /a/\\{b\\}{quote}\n{noformat}",
		},
		{
			name:  "other brace words are still escaped",
			input: "see {panel} here",
			want:  `see \{panel\} here`,
		},
		{
			name:  "empty braces are not parameters",
			input: "GET /a/{}",
			want:  "GET /a/{}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, EscapeAPIEndpoints(tt.input))
		})
	}
}

func TestCleanup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "entities",
			input: "&lt;a&gt; &amp; &quot;q&quot; &#39;s&#39; x&nbsp;y",
			want:  `<a> & "q" 's' x y`,
		},
		{
			name:  "entities decode once",
			input: "&amp;lt;",
			want:  "&lt;",
		},
		{
			name:  "whitespace around newlines",
			input: "a  \n\t b",
			want:  "a\nb",
		},
		{
			name:  "edges of the markup keep one space",
			input: "   lead\nmid  \n  tail   ",
			want:  " lead\nmid\ntail ",
		},
		{
			name:  "code regions keep indentation",
			input: codeOpen + "\n    x  =  1\n{code}",
			want:  codeOpen + "\n    x  =  1\n{code}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cleanup(tt.input))
		})
	}
}
