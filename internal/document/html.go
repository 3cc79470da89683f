package document

import (
	"regexp"
	"strings"

	htmltomd "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
	"github.com/qawatake/md2jira/pkg/markdown"
)

var languageClass = regexp.MustCompile(`(?:^|\s)(?:language|lang)-([a-zA-Z0-9_+#-]+)(?:\s|$)`)

// FromHTML turns an HTML page into GitHub flavored Markdown. Code blocks keep
// the language named by a language-* class on their <code> element.
func FromHTML(html string) (string, error) {
	conv := htmltomd.NewConverter("", true, &htmltomd.Options{
		HeadingStyle:     "atx",
		CodeBlockStyle:   "fenced",
		BulletListMarker: "-",
	})
	conv.Use(plugin.GitHubFlavored())
	conv.AddRules(codeBlockRule())

	out, err := conv.ConvertString(html)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out) + "\n", nil
}

// ConvertHTML converts an HTML page into Jira markup by way of Markdown.
func ConvertHTML(html string, opts ...markdown.Option) (*Result, error) {
	md, err := FromHTML(html)
	if err != nil {
		return nil, err
	}
	return Convert(md, opts...)
}

func codeBlockRule() htmltomd.Rule {
	return htmltomd.Rule{
		Filter: []string{"pre"},
		Replacement: func(_ string, selec *goquery.Selection, _ *htmltomd.Options) *string {
			code := selec.Find("code").First()
			if code.Length() == 0 {
				return nil
			}

			text := strings.ReplaceAll(code.Text(), "\r\n", "\n")
			text = strings.TrimSuffix(text, "\n")
			fence := "```"
			if strings.Contains(text, fence) {
				fence = "````"
			}

			out := "\n" + fence + detectLanguage(code) + "\n" + text + "\n" + fence + "\n"
			return &out
		},
	}
}

func detectLanguage(code *goquery.Selection) string {
	m := languageClass.FindStringSubmatch(code.AttrOr("class", ""))
	if len(m) != 2 {
		return ""
	}
	return strings.ToLower(m[1])
}
