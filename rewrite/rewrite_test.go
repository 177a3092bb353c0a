package rewrite

import (
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"
)

func TestApplyCommandWords(t *testing.T) {
	rules := Rules{
		{Pattern: "slash ", Replacement: "/"},
		{Pattern: ", enter.", Replacement: "\n"},
	}
	got := rules.Apply("slash test, enter.")
	if got != "/test\n" {
		t.Errorf("got %q, want %q", got, "/test\n")
	}
}

func TestApplyCaseInsensitive(t *testing.T) {
	rules := Rules{{Pattern: "slash ", Replacement: "/"}}
	if got := rules.Apply("SLASH test"); got != "/test" {
		t.Errorf("got %q, want %q", got, "/test")
	}
	if got := rules.Apply("Slash Test"); got != "/Test" {
		t.Errorf("got %q, want %q", got, "/Test")
	}
}

func TestApplyCaseFoldingWidthChange(t *testing.T) {
	// Some runes change byte length when lowercased: Ⱥ grows from two
	// bytes to three, İ shrinks from two bytes to one. Matches after
	// such runes must land at the right offset and keep valid UTF-8.
	rules := Rules{{Pattern: "x", Replacement: "/"}}
	if got := rules.Apply("ȺȺȺ x"); got != "ȺȺȺ /" {
		t.Errorf("got %q, want %q", got, "ȺȺȺ /")
	}

	rules = Rules{{Pattern: "slash ", Replacement: "/"}}
	if got := rules.Apply("İ slash test"); got != "İ /test" {
		t.Errorf("got %q, want %q", got, "İ /test")
	}
	got := rules.Apply("İİİ slash x")
	if !utf8.ValidString(got) {
		t.Fatalf("invalid UTF-8: %q", got)
	}
	if got != "İİİ /x" {
		t.Errorf("got %q, want %q", got, "İİİ /x")
	}
}

func TestApplyFoldedPattern(t *testing.T) {
	rules := Rules{{Pattern: "ⱥb", Replacement: "!"}}
	if got := rules.Apply("Ⱥb done"); got != "! done" {
		t.Errorf("got %q, want %q", got, "! done")
	}
}

func TestApplyStripsTrailingPeriod(t *testing.T) {
	rules := Rules{{Pattern: "open paren", Replacement: "("}}
	if got := rules.Apply("open paren. hello"); got != "( hello" {
		t.Errorf("got %q, want %q", got, "( hello")
	}
}

func TestApplyFirstRuleWins(t *testing.T) {
	// "slash slash" should be consumed by the first rule before the
	// shorter pattern gets a chance.
	rules := Rules{
		{Pattern: "slash slash", Replacement: "//"},
		{Pattern: "slash", Replacement: "/"},
	}
	if got := rules.Apply("slash slash comment"); got != "// comment" {
		t.Errorf("got %q, want %q", got, "// comment")
	}
}

func TestApplyMultipleOccurrences(t *testing.T) {
	rules := Rules{{Pattern: " dot ", Replacement: "."}}
	if got := rules.Apply("www dot example dot com"); got != "www.example.com" {
		t.Errorf("got %q", got)
	}
}

func TestApplyNoRules(t *testing.T) {
	var rules Rules
	if got := rules.Apply("unchanged"); got != "unchanged" {
		t.Errorf("got %q", got)
	}
}

func TestParsePreservesOrder(t *testing.T) {
	data := []byte(`replacements:
  "slash slash ": "//"
  "slash ": "/"
  ", enter.": "\n"
`)
	rules, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(rules) != 3 {
		t.Fatalf("got %d rules, want 3", len(rules))
	}
	if rules[0].Pattern != "slash slash " || rules[1].Pattern != "slash " {
		t.Errorf("order not preserved: %+v", rules)
	}
	if rules[2].Replacement != "\n" {
		t.Errorf("escaped newline not decoded: %q", rules[2].Replacement)
	}
}

func TestParseNewlineWords(t *testing.T) {
	data := []byte(`replacements:
  "press enter": newline
  "run it": execute
`)
	rules, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range rules {
		if r.Replacement != "\n" {
			t.Errorf("%q -> %q, want newline", r.Pattern, r.Replacement)
		}
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse([]byte("replacements:\n  - a\n  - b\n")); err == nil {
		t.Error("expected error for sequence under replacements")
	}
	if _, err := Parse([]byte("- just\n- a list\n")); err == nil {
		t.Error("expected error for non-mapping document")
	}
}

func TestLoadMissingFile(t *testing.T) {
	rules, err := Load(filepath.Join(t.TempDir(), "replacements.yml"))
	if err != nil {
		t.Fatal(err)
	}
	if rules != nil {
		t.Errorf("got %v, want nil", rules)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "replacements.yml")
	if err := os.WriteFile(path, []byte("replacements:\n  \"at sign \": \"@\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	rules, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(rules) != 1 || rules[0].Replacement != "@" {
		t.Errorf("got %+v", rules)
	}
}
