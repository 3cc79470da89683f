package codefmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		code     string
		language string
		want     string
	}{
		{
			name:     "json is re-indented keeping key order",
			code:     `{"name":"test","value":123,"a":[1,2]}`,
			language: "json",
			want:     "{\n  \"name\": \"test\",\n  \"value\": 123,\n  \"a\": [\n    1,\n    2\n  ]\n}",
		},
		{
			name:     "json values are normalized on re-encoding",
			code:     `{"a":1.0,"b":"\u0041","a":2}`,
			language: "json",
			want:     "{\n  \"a\": 2,\n  \"b\": \"A\"\n}",
		},
		{
			name:     "json index keys come first and numbers take their shortest form",
			code:     `{"b":1e2,"10":0.0000001,"2":[],"c":{},"d":"tab\there"}`,
			language: "json",
			want:     "{\n  \"2\": [],\n  \"10\": 1e-7,\n  \"b\": 100,\n  \"c\": {},\n  \"d\": \"tab\\there\"\n}",
		},
		{
			name:     "json with trailing content is returned unchanged",
			code:     `{"a":1} {"b":2}`,
			language: "json",
			want:     `{"a":1} {"b":2}`,
		},
		{
			name:     "invalid json is returned unchanged",
			code:     `{"name": "test",`,
			language: "JSON",
			want:     `{"name": "test",`,
		},
		{
			name:     "typescript uses two spaces and all bracket kinds",
			code:     "interface Example{\nfield1:string;\nnested:{\nvalue:boolean;\n}\n}",
			language: "typescript",
			want:     "interface Example{\n  field1:string;\n  nested:{\n    value:boolean;\n  }\n}",
		},
		{
			name:     "javascript alias re-indents arrays and calls",
			code:     "call(\nconst a = [\n1,\n]\n)",
			language: "js",
			want:     "call(\n  const a = [\n    1,\n  ]\n)",
		},
		{
			name:     "depth never goes negative",
			code:     "}\n}\nx",
			language: "ts",
			want:     "}\n}\nx",
		},
		{
			name:     "java uses four spaces and braces only",
			code:     "@RestController\npublic class Test {\npublic void method() {\nreturn;\n}\n}",
			language: "java",
			want:     "@RestController\npublic class Test {\n    public void method() {\n        return;\n    }\n}",
		},
		{
			name:     "java ignores parentheses",
			code:     "foo(\nbar)",
			language: "java",
			want:     "foo(\nbar)",
		},
		{
			name:     "braces in strings shift indentation",
			code:     "const s = \"{\nx;",
			language: "ts",
			want:     "const s = \"{\n  x;",
		},
		{
			name:     "unsupported language is untouched",
			code:     "  def f():\n      pass",
			language: "python",
			want:     "  def f():\n      pass",
		},
		{
			name:     "empty language is untouched",
			code:     "  x",
			language: "",
			want:     "  x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Format(tt.code, tt.language))
		})
	}
}

func TestJiraLanguage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "typescript", JiraLanguage("ts"))
	assert.Equal(t, "bash", JiraLanguage("Shell"))
	assert.Equal(t, "json", JiraLanguage("json"))
	assert.Equal(t, "", JiraLanguage("brainfuck"))
	assert.Equal(t, "", JiraLanguage(""))
}
