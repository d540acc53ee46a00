// Package langdetect guesses the language of unlabeled code blocks. It
// combines go-enry's shebang and classifier detection with a few patterns
// that are reliable on short snippets.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Fence tags returned by Detect.
const (
	Go         = "go"
	Python     = "python"
	JavaScript = "javascript"
	JSON       = "json"
	YAML       = "yaml"
	HTML       = "html"
	SQL        = "sql"
	Rust       = "rust"
	Dockerfile = "dockerfile"
	Bash       = "bash"
)

// candidates limits the classifier to languages common in documentation.
var candidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Dockerfile",
}

// snippet is code prepared once for the pattern checks.
type snippet struct {
	raw     []byte
	trimmed []byte
	text    string
}

// patterns are checked in order; the first match wins.
var patterns = []struct {
	lang  string
	match func(s snippet) bool
}{
	{Go, func(s snippet) bool { return bytes.HasPrefix(s.trimmed, []byte("package ")) }},
	{Python, isPython},
	{HTML, isHTML},
	{JSON, func(s snippet) bool {
		return (s.trimmed[0] == '{' || s.trimmed[0] == '[') && bytes.ContainsRune(s.trimmed, '"')
	}},
	{Dockerfile, isDockerfile},
	{SQL, isSQL},
	{Rust, func(s snippet) bool {
		return containsAny(s.text, "fn main()", "println!", "let mut ")
	}},
	{JavaScript, func(s snippet) bool {
		return containsAny(s.text, "=>", "const ", "let ", "console.log")
	}},
	{YAML, isYAML},
}

// Detect returns the fence tag for code, or "" when no language is a
// confident match. It has the signature of parser.LanguageDetector.
func Detect(code []byte) string {
	s := snippet{raw: code, trimmed: bytes.TrimSpace(code), text: string(code)}
	if len(s.trimmed) == 0 {
		return ""
	}

	if lang, safe := enry.GetLanguageByShebang(code); safe {
		return normalize(lang)
	}

	for _, p := range patterns {
		if p.match(s) {
			return p.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(code, candidates); safe && lang != "" {
		return normalize(lang)
	}

	return ""
}

func isPython(s snippet) bool {
	if strings.Contains(s.text, "def ") && strings.Contains(s.text, "):") {
		return true
	}

	// Go imports use "import (".
	if strings.Contains(s.text, "import ") && !strings.Contains(s.text, "import (") &&
		(strings.Contains(s.text, "from ") || bytes.HasPrefix(s.trimmed, []byte("import "))) {
		return true
	}

	return containsAny(s.text, "__name__", "__main__")
}

func isHTML(s snippet) bool {
	lower := strings.ToLower(string(s.trimmed))
	return containsAny(lower, "<!doctype html", "<html", "<head>", "<body>")
}

func isDockerfile(s snippet) bool {
	return bytes.HasPrefix(s.trimmed, []byte("FROM ")) ||
		(strings.Contains(s.text, "\nFROM ") && strings.Contains(s.text, "\nRUN ")) ||
		(strings.Contains(s.text, "WORKDIR ") && strings.Contains(s.text, "COPY "))
}

func isSQL(s snippet) bool {
	upper := strings.ToUpper(string(s.trimmed))
	for _, keyword := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
		if strings.HasPrefix(upper, keyword) {
			return true
		}
	}
	return false
}

// isYAML needs at least two "key: value" or "- item" lines that do not
// look like code.
func isYAML(s snippet) bool {
	count := 0

	for line := range bytes.Lines(s.raw) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		if bytes.Contains(line, []byte(": ")) && !bytes.ContainsAny(line, "({") && line[0] != '"' {
			count++
		}

		if bytes.HasPrefix(line, []byte("- ")) {
			count++
		}
	}

	return count >= 2
}

func containsAny(text string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return Bash
	}
	return strings.ToLower(lang)
}
