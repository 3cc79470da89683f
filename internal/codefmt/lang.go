package codefmt

import "strings"

// languages maps fence info strings to the names accepted by the language
// parameter of Jira's {code} macro.
var languages = map[string]string{
	"shell":         "bash",
	"bash":          "bash",
	"zsh":           "bash",
	"actionscript3": "actionscript3",
	"csharp":        "csharp",
	"coldfusion":    "coldfusion",
	"cpp":           "cpp",
	"css":           "css",
	"delphi":        "delphi",
	"diff":          "diff",
	"erlang":        "erlang",
	"groovy":        "groovy",
	"java":          "java",
	"javafx":        "javafx",
	"js":            "javascript",
	"javascript":    "javascript",
	"json":          "json",
	"ts":            "typescript",
	"typescript":    "typescript",
	"perl":          "perl",
	"php":           "php",
	"none":          "none",
	"powershell":    "powershell",
	"python":        "python",
	"ruby":          "ruby",
	"scala":         "scala",
	"rust":          "rust",
	"sql":           "sql",
	"vb":            "vb",
	"html/xml":      "html/xml",
}

// JiraLanguage returns the {code} language for a fence info string, or ""
// when Jira has no highlighter for it.
func JiraLanguage(language string) string {
	return languages[strings.ToLower(language)]
}
