package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "heading and emphasis",
			input: "# Title\n\nsome *text*\n",
			want:  []string{"<h1>Title</h1>", "<em>text</em>"},
		},
		{
			name:  "known language is highlighted",
			input: "```go\nx := 1\n```\n",
			want:  []string{`<pre><code class="hljs go">`, `<span class="`, "</code></pre>"},
		},
		{
			name:  "unknown language is escaped",
			input: "```nosuchlang\na<b\n```\n",
			want:  []string{`<pre><code class="hljs nosuchlang">`, "a&lt;b"},
		},
		{
			name:  "table",
			input: "| a |\n|---|\n| 1 |\n",
			want:  []string{"<table>", "<td>1</td>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := HTML(tt.input)
			for _, want := range tt.want {
				assert.Contains(t, got, want)
			}
		})
	}
}

func TestPage(t *testing.T) {
	t.Parallel()

	got, err := Page("text", "a <title>")
	require.NoError(t, err)
	assert.Contains(t, got, "<title>a &lt;title&gt;</title>")
	assert.Contains(t, got, ".chroma")
	assert.Contains(t, got, "<p>text</p>")
}

func TestTerminal(t *testing.T) {
	t.Parallel()

	term, err := NewTerminal("dark", 60)
	require.NoError(t, err)
	got, err := term.Render("# Hello\n\n**bold** words\n")
	require.NoError(t, err)

	plain := Strip(got)
	assert.Contains(t, plain, "Hello")
	assert.Contains(t, plain, "bold words")
	assert.NotContains(t, plain, "\x1b[")
}

func TestNewTerminal_UnknownStyle(t *testing.T) {
	t.Parallel()

	_, err := NewTerminal("no-such-style", 0)
	assert.Error(t, err)
}
