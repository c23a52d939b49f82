package indent

import (
	"errors"
	"testing"

	"github.com/andrew-pa/pk/internal/engine/buffer"
)

const twoSpaceRule = `
unit = "  "
function level(line)
	local n = 0
	while line:sub(n * 2 + 1, (n + 1) * 2) == "  " do
		n = n + 1
	end
	return n
end
`

func TestTabsSense(t *testing.T) {
	b := buffer.WithText("\t\tabc\ndef")
	if got := (Tabs{}).SenseIndentLevel(b, 3); got != 2 {
		t.Errorf("SenseIndentLevel(3) = %d, want 2", got)
	}
	if got := (Tabs{}).SenseIndentLevel(b, 7); got != 0 {
		t.Errorf("SenseIndentLevel(7) = %d, want 0", got)
	}
}

func TestTabsIndent(t *testing.T) {
	b := buffer.WithText("abc")
	n, err := Tabs{}.Indent(b, 0, 1)
	if err != nil || n != 1 {
		t.Fatalf("Indent(+1) = %d, %v, want 1", n, err)
	}
	if got := b.Text.Text(); got != "\tabc" {
		t.Fatalf("text = %q, want %q", got, "\tabc")
	}
	n, err = Tabs{}.Indent(b, 0, -1)
	if err != nil || n != -1 {
		t.Fatalf("Indent(-1) = %d, %v, want -1", n, err)
	}
	if got := b.Text.Text(); got != "abc" {
		t.Fatalf("text = %q, want %q", got, "abc")
	}
	// Outdenting an unindented line changes nothing.
	n, err = Tabs{}.Indent(b, 0, -1)
	if err != nil || n != 0 {
		t.Errorf("Indent(-1) on flat line = %d, %v, want 0", n, err)
	}
}

func TestLoadScriptRejectsBadRules(t *testing.T) {
	if _, err := LoadScript("function level(line) return"); err == nil {
		t.Error("LoadScript(syntax error) = nil error")
	}
	if _, err := LoadScript("x = 1"); !errors.Is(err, ErrNotIndentRule) {
		t.Errorf("LoadScript(no level) error = %v, want ErrNotIndentRule", err)
	}
}

func TestScriptSense(t *testing.T) {
	s, err := LoadScript(twoSpaceRule)
	if err != nil {
		t.Fatalf("LoadScript error = %v", err)
	}
	defer s.Close()
	if s.Unit() != "  " {
		t.Fatalf("Unit() = %q, want two spaces", s.Unit())
	}
	b := buffer.WithText("    deep\n  shallow\nflat")
	cases := []struct {
		at   int
		want int
	}{
		{2, 2},
		{10, 1},
		{20, 0},
	}
	for _, tc := range cases {
		if got := s.SenseIndentLevel(b, tc.at); got != tc.want {
			t.Errorf("SenseIndentLevel(%d) = %d, want %d", tc.at, got, tc.want)
		}
	}
}

func TestScriptIndent(t *testing.T) {
	s, err := LoadScript(twoSpaceRule)
	if err != nil {
		t.Fatalf("LoadScript error = %v", err)
	}
	defer s.Close()
	b := buffer.WithText("abc\ndef")
	n, err := s.Indent(b, 4, 2)
	if err != nil || n != 4 {
		t.Fatalf("Indent(+2) = %d, %v, want 4", n, err)
	}
	if got := b.Text.Text(); got != "abc\n    def" {
		t.Errorf("text = %q, want %q", got, "abc\n    def")
	}
}
