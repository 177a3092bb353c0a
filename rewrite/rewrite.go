// Package rewrite applies configured spoken-phrase replacements to
// recognized text, e.g. "slash" -> "/" or ", enter." -> newline.
package rewrite

import (
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

type Rule struct {
	Pattern     string
	Replacement string
}

// Rules is an ordered replacement list. Order is the file order; when
// patterns overlap, the earlier rule wins because it runs first.
type Rules []Rule

// Replacement values that mean "press Enter" rather than literal text.
var newlineWords = map[string]bool{
	"newline": true,
	"execute": true,
	"enter":   true,
}

// Load reads rules from a YAML file with a top-level "replacements"
// mapping. A missing file yields an empty rule set.
func Load(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML rules, preserving mapping order. encoding into a map
// would lose it, so this walks the yaml.Node tree directly.
func Parse(data []byte) (Rules, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing replacements: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("replacements file: expected a mapping at top level")
	}

	var mapping *yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == "replacements" {
			mapping = root.Content[i+1]
			break
		}
	}
	if mapping == nil {
		return nil, nil
	}
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("replacements: expected a mapping of pattern to replacement")
	}

	var rules Rules
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		pattern := mapping.Content[i].Value
		repl := mapping.Content[i+1].Value
		if pattern == "" {
			continue
		}
		if newlineWords[strings.ToLower(repl)] {
			repl = "\n"
		}
		rules = append(rules, Rule{Pattern: pattern, Replacement: repl})
	}
	return rules, nil
}

// Apply runs every rule in order over text. Matching is case-insensitive
// substring matching; a period immediately following a replaced span is
// dropped, undoing the recognizer's auto-punctuation after command words.
func (rs Rules) Apply(text string) string {
	for _, r := range rs {
		text = replaceAll(text, r.Pattern, r.Replacement)
	}
	return text
}

// replaceAll walks text rune by rune rather than searching a folded
// copy: case folding changes byte length for some runes, so offsets
// into a lowered copy do not line up with the original.
func replaceAll(text, pattern, repl string) string {
	if pattern == "" {
		return text
	}
	var b strings.Builder
	for pos := 0; pos < len(text); {
		if n, ok := foldPrefixLen(text[pos:], pattern); ok {
			b.WriteString(repl)
			pos += n
			if pos < len(text) && text[pos] == '.' {
				pos++
			}
			continue
		}
		_, size := utf8.DecodeRuneInString(text[pos:])
		b.WriteString(text[pos : pos+size])
		pos += size
	}
	return b.String()
}

// foldPrefixLen reports whether s starts with pattern, ignoring case,
// and returns the byte length of the matched prefix of s.
func foldPrefixLen(s, pattern string) (int, bool) {
	n := 0
	for _, pr := range pattern {
		sr, size := utf8.DecodeRuneInString(s[n:])
		if size == 0 {
			return 0, false
		}
		if sr != pr && unicode.ToLower(sr) != unicode.ToLower(pr) {
			return 0, false
		}
		n += size
	}
	return n, true
}
