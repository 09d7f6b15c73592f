package entity

import "testing"

func TestParseToolID(t *testing.T) {
	cases := []struct {
		raw  string
		want ToolID
		ok   bool
	}{
		{"github", ToolGitHub, true},
		{"GitHubTool", ToolGitHub, true},
		{"repository-search", ToolGitHub, true},
		{"news", ToolNews, true},
		{"NewsTool", ToolNews, true},
		{" News API ", ToolNews, true},
		{"llm", ToolLLM, true},
		{"LLM", ToolLLM, true},
		{"language model", ToolLLM, true},
		{"", "", false},
		{"calculator", "", false},
		{"browser", "", false},
	}

	for _, tc := range cases {
		got, ok := ParseToolID(tc.raw)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseToolID(%q) = (%q, %v), want (%q, %v)", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}
