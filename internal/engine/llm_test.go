package engine

import "testing"

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"type": "general"}`, `{"type": "general"}`},
		{"json fence", "```json\n{\"type\": \"general\"}\n```", `{"type": "general"}`},
		{"bare fence", "```\nhello\n```", "hello"},
		{"whitespace", "  hello  ", "hello"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFences(tt.in); got != tt.want {
				t.Errorf("stripFences() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractJSONAnswer(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "valid json",
			raw:  `{"answer": "hello world"}`,
			want: "hello world",
		},
		{
			name: "escaped quotes",
			raw:  `{"answer": "use \"fmt.Println\" for output"}`,
			want: `use "fmt.Println" for output`,
		},
		{
			name: "escaped newlines",
			raw:  `{"answer": "line1\nline2"}`,
			want: "line1\nline2",
		},
		{
			name: "no answer field",
			raw:  `{"result": "something"}`,
			want: "",
		},
		{
			name: "empty input",
			raw:  "",
			want: "",
		},
		{
			name: "malformed - no closing quote",
			raw:  `{"answer": "unclosed`,
			want: "unclosed",
		},
		{
			name: "extra whitespace",
			raw:  `{  "answer" :  "spaced out"  }`,
			want: "spaced out",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractJSONAnswer(tt.raw)
			if got != tt.want {
				t.Errorf("ExtractJSONAnswer() = %q, want %q", got, tt.want)
			}
		})
	}
}
